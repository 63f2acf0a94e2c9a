package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/log"

	"route-cli/internal/board"
	"route-cli/internal/logging"
	"route-cli/internal/view"
)

type pane int

const (
	paneTimetable pane = iota
	paneSide
)

type modalKind int

const (
	modalNone modalKind = iota
	modalForm
	modalConfirm
	modalImport
	modalExport
)

type rowKind int

const (
	rowTask rowKind = iota
	rowStep
	rowRequired
)

// timetableRow is one line of the flattened timetable: a task, or a step or
// required entry of an expanded task.
type timetableRow struct {
	kind   rowKind
	taskID string
	idx    int

	task view.TimetableRow
	step view.StepRow
	req  view.RequiredRow
}

func (r timetableRow) same(o timetableRow) bool {
	return r.kind == o.kind && r.taskID == o.taskID && r.idx == o.idx
}

type appModel struct {
	ctx   context.Context
	board *board.Board
	log   *log.Logger
	keys  keyMap
	help  help.Model

	useClipboard bool
	openURL      func(string) error

	width  int
	height int

	pane   pane
	drawer bool

	rows   []timetableRow
	cursor int

	invList     list.Model
	listFocused *bool
	inspector   viewport.Model
	inspectKey  view.Selection

	modal      modalKind
	form       *formModal
	confirm    confirmState
	textarea   textarea.Model
	exportView viewport.Model
	modalErr   string

	status    string
	statusErr bool
}

func newAppModel(ctx context.Context, b *board.Board, opts Options) appModel {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	focused := new(bool)
	m := appModel{
		ctx:          ctx,
		board:        b,
		log:          logger,
		keys:         defaultKeyMap(),
		help:         help.New(),
		useClipboard: opts.Clipboard,
		openURL:      openInBrowser,
		invList:      newInventoryList(focused),
		listFocused:  focused,
		inspector:    viewport.New(40, 10),
		textarea:     newImportTextarea(),
		exportView:   viewport.New(60, 12),
	}
	if b.Seeded {
		m.status = "Showing demo data."
	}
	m.resize()
	m.refresh()
	return m
}

func newImportTextarea() textarea.Model {
	ta := textarea.New()
	ta.Placeholder = "Paste JSON exported from route…"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.SetHeight(10)
	return ta
}

func (m appModel) paneWidths() (left, right int) {
	w := m.width
	if w <= 0 {
		w = 100
	}
	left = w * 55 / 100
	right = w - left - 1
	return left, max(right, 10)
}

// bodyHeight leaves room for the header, status line and help line.
func (m appModel) bodyHeight() int {
	h := m.height
	if h <= 0 {
		h = 30
	}
	return max(h-3, 3)
}

func (m *appModel) resize() {
	_, rw := m.paneWidths()
	bh := m.bodyHeight()
	m.invList.SetSize(rw, bh-1)
	m.inspector.Width = rw
	m.inspector.Height = bh - 1
	bodyW := modalBodyWidth(m.width)
	m.textarea.SetWidth(bodyW)
	m.exportView.Width = bodyW
	m.exportView.Height = max(min(bh-8, 20), 3)
	m.help.Width = m.width
	m.syncInspector(true)
}

// refresh re-reads the board frame into the widgets, keeping the cursor on the
// same logical row when it still exists.
func (m *appModel) refresh() {
	fr := m.board.Frame()

	var prev timetableRow
	hadPrev := m.cursor >= 0 && m.cursor < len(m.rows)
	if hadPrev {
		prev = m.rows[m.cursor]
	}
	rows := make([]timetableRow, 0, len(fr.Timetable))
	for _, t := range fr.Timetable {
		rows = append(rows, timetableRow{kind: rowTask, taskID: t.TaskID, task: t})
		for _, s := range t.Steps {
			rows = append(rows, timetableRow{kind: rowStep, taskID: t.TaskID, idx: s.Index, step: s})
		}
		for _, r := range t.Required {
			rows = append(rows, timetableRow{kind: rowRequired, taskID: t.TaskID, idx: r.Index, req: r})
		}
	}
	m.rows = rows
	if hadPrev {
		for i, r := range rows {
			if r.same(prev) {
				m.cursor = i
				break
			}
		}
	}
	m.cursor = clamp(m.cursor, 0, len(rows)-1)

	selName := ""
	if it, ok := m.invList.SelectedItem().(inventoryItem); ok {
		selName = it.row.Name
	}
	idx := m.invList.Index()
	items := make([]list.Item, 0, len(fr.Inventory))
	for i, r := range fr.Inventory {
		items = append(items, inventoryItem{row: r})
		if r.Name == selName {
			idx = i
		}
	}
	m.invList.SetItems(items)
	if len(items) > 0 {
		m.invList.Select(clamp(idx, 0, len(items)-1))
	}

	m.syncInspector(false)
}

// syncInspector re-renders the inspector; the scroll position resets when the
// selection changed.
func (m *appModel) syncInspector(force bool) {
	sel := m.board.Selection()
	changed := sel != m.inspectKey
	m.inspectKey = sel
	m.inspector.SetContent(renderInspector(m.board.Frame().Inspector, m.inspector.Width))
	if changed || force {
		m.inspector.GotoTop()
	}
}

func (m appModel) currentRow() (timetableRow, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return timetableRow{}, false
	}
	return m.rows[m.cursor], true
}

// currentTaskID is the task under the cursor, else the task in the inspector.
func (m appModel) currentTaskID() (string, bool) {
	if r, ok := m.currentRow(); ok {
		return r.taskID, true
	}
	if sel := m.board.Selection(); sel.TaskID != "" {
		return sel.TaskID, true
	}
	return "", false
}

func (m appModel) drawerItem() (string, bool) {
	it, ok := m.invList.SelectedItem().(inventoryItem)
	if !ok {
		return "", false
	}
	return it.row.Name, true
}

// focusedItemName is the inventory item the quantity keys act on.
func (m appModel) focusedItemName() string {
	if m.drawer && m.pane == paneSide {
		if n, ok := m.drawerItem(); ok {
			return n
		}
	}
	if m.pane == paneTimetable {
		if r, ok := m.currentRow(); ok && r.kind == rowRequired {
			return r.req.Name
		}
	}
	sel := m.board.Selection()
	switch sel.Kind {
	case view.SelItem:
		return sel.ItemName
	case view.SelRequirement:
		if in := m.board.Frame().Inspector; in.Requirement != nil {
			return in.Requirement.Name
		}
	}
	return ""
}

func (m *appModel) setStatus(msg string) {
	m.status, m.statusErr = msg, false
}

func (m *appModel) setError(msg string) {
	m.status, m.statusErr = msg, true
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}
