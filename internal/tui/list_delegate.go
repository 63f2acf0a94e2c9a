package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"route-cli/internal/view"
)

type inventoryItem struct {
	row view.InventoryRow
}

func (i inventoryItem) FilterValue() string { return i.row.Name }
func (i inventoryItem) Title() string       { return i.row.Name }

// inventoryDelegate draws one line per item: name on the left, quantity pill
// on the right.
type inventoryDelegate struct {
	focused *bool
}

func (d inventoryDelegate) Height() int                             { return 1 }
func (d inventoryDelegate) Spacing() int                            { return 0 }
func (d inventoryDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d inventoryDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(inventoryItem)
	contentW := m.Width()
	if !ok || contentW < 4 {
		return
	}
	qty := stylePill().Render(it.row.QtyText)
	name := it.row.Name
	if it.row.UsedBy > 0 {
		name += styleMuted().Render(fmt.Sprintf(" (%d)", it.row.UsedBy))
	}
	gap := contentW - lipgloss.Width(name) - lipgloss.Width(qty)
	if gap < 1 {
		gap = 1
	}
	line := fitLine(name+spaces(gap)+qty, contentW)
	if index == m.Index() && d.focused != nil && *d.focused {
		line = styleSelected().Render(line)
	}
	fmt.Fprint(w, line)
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}

func newInventoryList(focused *bool) list.Model {
	l := list.New(nil, inventoryDelegate{focused: focused}, 40, 10)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(true)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	return l
}
