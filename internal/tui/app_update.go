package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"route-cli/internal/form"
	"route-cli/internal/model"
	"route-cli/internal/mutate"
	"route-cli/internal/store"
)

const importFailedMsg = "Import failed. Paste valid JSON exported from this app."

func (m appModel) Init() tea.Cmd { return nil }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case exportDoneMsg:
		if msg.err != nil {
			m.log.Warn("clipboard write failed", "err", msg.err)
			m.openExport(msg.text)
			m.setError("Clipboard unavailable; copy the JSON below.")
			return m, nil
		}
		m.setStatus("Copied!")
		return m, nil

	case externalEditorDoneMsg:
		m.applyExternalEditorResult(msg)
		return m, nil

	case linkOpenDoneMsg:
		if msg.err != nil {
			m.log.Warn("open link failed", "url", msg.url, "err", msg.err)
			m.setError("Could not open " + msg.url)
			return m, nil
		}
		m.setStatus("Opened " + msg.url)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.modal {
		case modalForm:
			return m.updateForm(msg)
		case modalConfirm:
			return m.updateConfirm(msg)
		case modalImport:
			return m.updateImport(msg)
		case modalExport:
			return m.updateExport(msg)
		}
		return m.updateBoard(msg)
	}

	// Cursor blink and other input plumbing.
	switch m.modal {
	case modalForm:
		return m, m.form.update(msg)
	case modalImport:
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m appModel) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit

	case key.Matches(msg, k.Back):
		if m.drawer {
			m.drawer = false
			m.pane = paneTimetable
			return m, nil
		}
		m.board.ClearSelection()
		m.refresh()

	case key.Matches(msg, k.Up):
		m.move(-1)
	case key.Matches(msg, k.Down):
		m.move(1)

	case key.Matches(msg, k.Focus):
		if m.pane == paneTimetable {
			m.pane = paneSide
		} else {
			m.pane = paneTimetable
		}

	case key.Matches(msg, k.Select):
		m.activate()

	case key.Matches(msg, k.Drawer):
		m.drawer = !m.drawer
		if m.drawer {
			m.pane = paneSide
		} else {
			m.pane = paneTimetable
		}

	case key.Matches(msg, k.AddTask):
		cmd := m.openForm(form.TaskForm(), "", nil)
		return m, cmd

	case key.Matches(msg, k.AddStep), key.Matches(msg, k.AddRequired):
		id, ok := m.currentTaskID()
		t, found := m.board.State().FindTask(id)
		if !ok || !found {
			m.setError("Select a task first.")
			return m, nil
		}
		def := form.StepForm(t.Title)
		if key.Matches(msg, k.AddRequired) {
			def = form.RequiredForm(t.Title)
		}
		cmd := m.openForm(def, t.ID, nil)
		return m, cmd

	case key.Matches(msg, k.AddItem):
		prefill := map[string]string{}
		if name := m.focusedItemName(); name != "" {
			if stored, it, ok := m.board.State().FindItem(name); ok {
				prefill["name"] = stored
				prefill["qty"] = model.FormatNumber(it.Qty)
				prefill["unit"] = it.Unit
			} else {
				prefill["name"] = name
			}
		}
		cmd := m.openForm(form.ItemForm(), "", prefill)
		return m, cmd

	case key.Matches(msg, k.Consume):
		m.consume()
	case key.Matches(msg, k.Open):
		u, ok := m.linkUnderCursor()
		if !ok {
			m.setError("No link here.")
			return m, nil
		}
		return m, openURLCmd(m.openURL, u)
	case key.Matches(msg, k.Inc):
		m.adjust(1)
	case key.Matches(msg, k.Dec):
		m.adjust(-1)

	case key.Matches(msg, k.Delete):
		m.askDelete()

	case key.Matches(msg, k.Export):
		return m.export()

	case key.Matches(msg, k.Import):
		m.textarea.Reset()
		m.modalErr = ""
		m.modal = modalImport
		return m, tea.Batch(m.textarea.Focus(), textarea.Blink)

	case key.Matches(msg, k.Reset):
		m.confirm = confirmState{action: confirmReset, title: "Reset", body: "Reset to demo data?", label: "Reset"}
		m.modal = modalConfirm
	}
	return m, nil
}

func (m *appModel) move(delta int) {
	if m.pane == paneSide {
		switch {
		case m.drawer && delta < 0:
			m.invList.CursorUp()
		case m.drawer:
			m.invList.CursorDown()
		case delta < 0:
			m.inspector.LineUp(1)
		default:
			m.inspector.LineDown(1)
		}
		return
	}
	m.cursor = clamp(m.cursor+delta, 0, len(m.rows)-1)
}

// activate handles enter/space: tasks toggle open and become the inspected
// task, required rows and drawer items become the inspected entry.
func (m *appModel) activate() {
	if m.pane == paneSide && m.drawer {
		if name, ok := m.drawerItem(); ok {
			m.board.SelectItem(name)
		}
		m.refresh()
		return
	}
	r, ok := m.currentRow()
	if !ok {
		return
	}
	switch r.kind {
	case rowTask:
		m.board.ToggleTask(r.taskID)
		m.board.SelectTask(r.taskID)
	case rowStep:
		m.board.SelectTask(r.taskID)
	case rowRequired:
		m.board.SelectRequirement(r.taskID, r.idx)
	}
	m.refresh()
}

func (m *appModel) consume() {
	var (
		name string
		it   model.InventoryItem
		err  error
	)
	if r, ok := m.currentRow(); ok && m.pane == paneTimetable && r.kind == rowRequired {
		m.board.SelectRequirement(r.taskID, r.idx)
		name, it, err = m.board.ConsumeRequirement(m.ctx, r.taskID, r.idx)
	} else {
		name, it, err = m.board.ConsumeSelected(m.ctx)
	}
	m.refresh()
	if err != nil {
		m.reportErr(err)
		return
	}
	m.setStatus(fmt.Sprintf("%s: %s left", name, model.FormatQty(it.Qty, it.Unit)))
}

func (m *appModel) adjust(delta float64) {
	name := m.focusedItemName()
	if name == "" {
		m.setError("Select an inventory item first.")
		return
	}
	stored, it, err := m.board.AdjustItem(m.ctx, name, delta)
	m.refresh()
	if err != nil {
		m.reportErr(err)
		return
	}
	m.setStatus(fmt.Sprintf("%s: %s", stored, model.FormatQty(it.Qty, it.Unit)))
}

func (m *appModel) askDelete() {
	if m.pane == paneSide && m.drawer {
		name, ok := m.drawerItem()
		if !ok {
			return
		}
		m.confirm = confirmState{action: confirmDeleteItem, title: "Delete item", body: fmt.Sprintf("Delete inventory item %q?", name), label: "Delete", item: name}
		m.modal = modalConfirm
		return
	}
	r, ok := m.currentRow()
	if !ok {
		return
	}
	c := confirmState{taskID: r.taskID, idx: r.idx, label: "Delete"}
	switch r.kind {
	case rowTask:
		c.action, c.title, c.body = confirmDeleteTask, "Delete task", fmt.Sprintf("Delete task %q?", r.task.Title)
	case rowStep:
		c.action, c.title, c.body = confirmDeleteStep, "Delete step", fmt.Sprintf("Delete step %q?", r.step.Name)
	case rowRequired:
		c.action, c.title, c.body = confirmDeleteRequired, "Remove required item", fmt.Sprintf("Remove %q from this task?", r.req.Name)
	}
	m.confirm = c
	m.modal = modalConfirm
}

func (m appModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "n", "q":
		m.modal = modalNone
	case "tab", "shift+tab", "left", "right", "h", "l":
		if m.confirm.focus == confirmFocusConfirm {
			m.confirm.focus = confirmFocusCancel
		} else {
			m.confirm.focus = confirmFocusConfirm
		}
	case "y":
		m.runConfirm()
	case "enter", " ":
		if m.confirm.focus == confirmFocusConfirm {
			m.runConfirm()
		} else {
			m.modal = modalNone
		}
	}
	return m, nil
}

func (m *appModel) runConfirm() {
	c := m.confirm
	m.modal = modalNone
	var err error
	status := "Deleted."
	switch c.action {
	case confirmDeleteTask:
		_, err = m.board.RemoveTask(m.ctx, c.taskID)
	case confirmDeleteStep:
		err = m.board.RemoveStep(m.ctx, c.taskID, c.idx)
	case confirmDeleteRequired:
		err = m.board.RemoveRequired(m.ctx, c.taskID, c.idx)
	case confirmDeleteItem:
		_, err = m.board.RemoveItem(m.ctx, c.item)
	case confirmReset:
		err = m.board.Reset(m.ctx)
		status = "Reset done."
	}
	m.refresh()
	if err != nil {
		m.reportErr(err)
		return
	}
	m.setStatus(status)
}

func (m *appModel) openForm(def form.Form, taskID string, prefill map[string]string) tea.Cmd {
	m.form = newFormModal(def, taskID, prefill, m.width)
	m.modal = modalForm
	return textinput.Blink
}

func (m appModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.modal = modalNone
		m.form = nil
		return m, nil
	case "tab", "down":
		return m, m.form.move(1)
	case "shift+tab", "up":
		return m, m.form.move(-1)
	case "enter":
		m.submitForm()
		return m, nil
	}
	return m, m.form.update(msg)
}

// submitForm applies the form through the board. Input problems keep the
// modal open with the message inline.
func (m *appModel) submitForm() {
	f := m.form
	res := f.result()
	if err := res.Validate(f.def); err != nil {
		f.err = err.Error()
		return
	}

	var (
		err    error
		status string
	)
	switch f.def.ID {
	case form.TaskID:
		var t model.Task
		t, err = m.board.AddTask(m.ctx, res.TaskInput())
		if t.ID != "" {
			m.board.SelectTask(t.ID)
			status = "Added " + t.Title + "."
		}
	case form.StepID:
		err = m.board.AddStep(m.ctx, f.taskID, res.Get("name"), res.Get("link"))
		status = "Step added."
	case form.RequiredID:
		err = m.board.AddRequired(m.ctx, f.taskID, res.Get("name"), res.Get("qty"), res.Get("unit"))
		status = "Required item added."
	case form.ItemID:
		var stored string
		stored, err = m.board.UpsertItem(m.ctx, res.Get("name"), res.Get("qty"), res.Get("unit"))
		if stored != "" {
			m.board.SelectItem(stored)
			status = "Saved " + stored + "."
		}
	}
	if isInputErr(err) {
		f.err = err.Error()
		return
	}
	m.modal = modalNone
	m.form = nil
	m.refresh()
	if err != nil {
		m.reportErr(err)
		return
	}
	m.setStatus(status)
}

func (m appModel) updateImport(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.modal = modalNone
		m.textarea.Blur()
		return m, nil
	case "ctrl+e":
		cmd, err := editInExternalEditor(m.textarea.Value())
		if err != nil {
			m.modalErr = "Could not start editor: " + err.Error()
			return m, nil
		}
		return m, cmd
	case "ctrl+s", "ctrl+d":
		err := m.board.Import(m.ctx, []byte(m.textarea.Value()))
		var ie *store.ImportError
		if errors.As(err, &ie) {
			m.modalErr = importFailedMsg + "\n" + ie.Error()
			return m, nil
		}
		m.modal = modalNone
		m.textarea.Blur()
		m.refresh()
		if err != nil {
			m.reportErr(err)
			return m, nil
		}
		m.setStatus("Imported.")
		return m, nil
	}
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

func (m appModel) export() (tea.Model, tea.Cmd) {
	text, err := m.board.Export()
	if err != nil {
		m.reportErr(err)
		return m, nil
	}
	if !m.useClipboard {
		m.openExport(text)
		return m, nil
	}
	m.setStatus("Copying…")
	return m, copyToClipboardCmd(text)
}

func (m *appModel) openExport(text string) {
	m.exportView.SetContent(text)
	m.exportView.GotoTop()
	m.modal = modalExport
}

func (m appModel) updateExport(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "q":
		m.modal = modalNone
	case "j", "down":
		m.exportView.LineDown(1)
	case "k", "up":
		m.exportView.LineUp(1)
	default:
		var cmd tea.Cmd
		m.exportView, cmd = m.exportView.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *appModel) reportErr(err error) {
	m.log.Error("command failed", "err", err)
	m.setError(err.Error())
}

func isInputErr(err error) bool {
	var ve mutate.ValidationError
	var nf mutate.NotFoundError
	return errors.As(err, &ve) || errors.As(err, &nf)
}
