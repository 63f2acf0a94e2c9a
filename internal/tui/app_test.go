package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"route-cli/internal/board"
	"route-cli/internal/model"
	"route-cli/internal/mutate"
	"route-cli/internal/store"
	"route-cli/internal/view"
)

func newTestModel(t *testing.T) appModel {
	t.Helper()
	b, err := board.Open(context.Background(), store.Store{Dir: t.TempDir()}, nil)
	if err != nil {
		t.Fatalf("board.Open: %v", err)
	}
	m := newAppModel(context.Background(), b, Options{})
	mm, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return mm.(appModel)
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func press(m appModel, keys ...string) appModel {
	for _, k := range keys {
		mm, _ := m.Update(keyMsg(k))
		m = mm.(appModel)
	}
	return m
}

func taskID(t *testing.T, m appModel, title string) string {
	t.Helper()
	for _, tk := range m.board.State().Schedule {
		if tk.Title == title {
			return tk.ID
		}
	}
	t.Fatalf("no task %q", title)
	return ""
}

func TestTimetable_EnterExpandsAndSelects(t *testing.T) {
	m := newTestModel(t)
	if len(m.rows) != 3 {
		t.Fatalf("rows=%d want 3 collapsed tasks", len(m.rows))
	}
	m = press(m, "j", "j", "enter")
	cooking := taskID(t, m, "Cooking")
	if !m.board.Expanded(cooking) {
		t.Fatalf("cooking not expanded")
	}
	if sel := m.board.Selection(); sel.Kind != view.SelTask || sel.TaskID != cooking {
		t.Fatalf("selection=%+v", sel)
	}
	// task + 1 step + 2 required
	if len(m.rows) != 6 || m.cursor != 2 {
		t.Fatalf("rows=%d cursor=%d", len(m.rows), m.cursor)
	}
	if !strings.Contains(m.View(), "Omelette (basic)") {
		t.Fatalf("expanded step missing from view")
	}
}

func TestConsumeOnRequiredRow_UpdatesBadge(t *testing.T) {
	m := newTestModel(t)
	m = press(m, "j", "j", "enter", "j", "j")
	if r, _ := m.currentRow(); r.kind != rowRequired || r.req.Name != "Eggs" {
		t.Fatalf("cursor row=%+v", r)
	}
	m = press(m, "c")
	if got := m.board.State().Inventory["Eggs"].Qty; got != 4 {
		t.Fatalf("eggs=%v", got)
	}
	if m.board.Selection().Kind != view.SelRequirement {
		t.Fatalf("selection=%+v", m.board.Selection())
	}
	out := m.View()
	if !strings.Contains(out, "4 pcs have") {
		t.Fatalf("badge not updated:\n%s", out)
	}
	if !strings.Contains(m.status, "Eggs: 4 pcs left") {
		t.Fatalf("status=%q", m.status)
	}
}

func TestDeleteSelectedTask_ConfirmResetsInspector(t *testing.T) {
	m := newTestModel(t)
	m = press(m, "j", "j", "enter")
	cooking := taskID(t, m, "Cooking")

	m = press(m, "x")
	if m.modal != modalConfirm || m.confirm.action != confirmDeleteTask {
		t.Fatalf("modal=%v action=%v", m.modal, m.confirm.action)
	}
	m = press(m, "enter")
	if m.modal != modalNone {
		t.Fatalf("modal still open")
	}
	if _, ok := m.board.State().FindTask(cooking); ok {
		t.Fatalf("task not deleted")
	}
	if m.board.Frame().Inspector.Kind != view.SelNone {
		t.Fatalf("inspector still shows %v", m.board.Frame().Inspector.Kind)
	}
	for _, r := range m.rows {
		if r.taskID == cooking {
			t.Fatalf("deleted task still listed")
		}
	}
}

func TestDeleteSelectedRequired_ConfirmClearsInspector(t *testing.T) {
	m := newTestModel(t)
	m = press(m, "j", "j", "enter", "j", "j", "enter")
	if sel := m.board.Selection(); sel.Kind != view.SelRequirement || sel.ReqIndex != 0 {
		t.Fatalf("selection=%+v", sel)
	}

	m = press(m, "x")
	if m.confirm.action != confirmDeleteRequired {
		t.Fatalf("action=%v", m.confirm.action)
	}
	m = press(m, "enter")
	if m.board.Selection().Kind != view.SelNone || m.board.Frame().Inspector.Kind != view.SelNone {
		t.Fatalf("inspector still points at %+v", m.board.Selection())
	}
	if _, _, err := m.board.ConsumeSelected(context.Background()); err == nil {
		t.Fatalf("consume after delete should need a new selection")
	}
	if got := m.board.State().Inventory["Milk"].Qty; got != 500 {
		t.Fatalf("milk=%v", got)
	}
}

func TestDeleteEarlierRequired_SelectionFollowsEntry(t *testing.T) {
	m := newTestModel(t)
	m = press(m, "j", "j", "enter", "j", "j", "j", "enter")
	if r, _ := m.currentRow(); r.kind != rowRequired || r.req.Name != "Milk" {
		t.Fatalf("cursor row=%+v", r)
	}

	m = press(m, "k", "x", "enter")
	sel := m.board.Selection()
	if sel.Kind != view.SelRequirement || sel.ReqIndex != 0 {
		t.Fatalf("selection=%+v", sel)
	}
	if d := m.board.Frame().Inspector.Requirement; d == nil || d.Name != "Milk" {
		t.Fatalf("inspector requirement=%+v", d)
	}
}

func TestDeleteCancel(t *testing.T) {
	m := newTestModel(t)
	before := len(m.board.State().Schedule)
	m = press(m, "x", "tab", "enter")
	if m.modal != modalNone || len(m.board.State().Schedule) != before {
		t.Fatalf("cancel deleted something: modal=%v tasks=%d", m.modal, len(m.board.State().Schedule))
	}
	m = press(m, "x", "esc")
	if len(m.board.State().Schedule) != before {
		t.Fatalf("esc deleted something")
	}
}

func TestAddTaskForm_InvalidKeepsModalOpen(t *testing.T) {
	m := newTestModel(t)
	m = press(m, "a")
	if m.modal != modalForm {
		t.Fatalf("modal=%v", m.modal)
	}
	m.form.setValue("time", "25:00")
	m.form.setValue("title", "Nap")
	m = press(m, "enter")
	if m.modal != modalForm || !strings.Contains(m.form.err, "time") {
		t.Fatalf("modal=%v err=%q", m.modal, m.form.err)
	}
	if len(m.board.State().Schedule) != 3 {
		t.Fatalf("invalid task was added")
	}

	m.form.setValue("time", "13:00")
	m = press(m, "enter")
	if m.modal != modalNone {
		t.Fatalf("modal still open: %q", m.form.err)
	}
	nap := taskID(t, m, "Nap")
	if sel := m.board.Selection(); sel.TaskID != nap {
		t.Fatalf("new task not inspected: %+v", sel)
	}
}

func TestAddTaskForm_TypingAndMissingField(t *testing.T) {
	m := newTestModel(t)
	m = press(m, "a", "0", "6", ":", "0", "0")
	if got := m.form.inputs[0].Value(); got != "06:00" {
		t.Fatalf("typed time=%q", got)
	}
	m = press(m, "enter")
	if m.modal != modalForm || !strings.Contains(m.form.err, "Task name") {
		t.Fatalf("err=%q", m.form.err)
	}
	m = press(m, "esc")
	if m.modal != modalNone || m.form != nil {
		t.Fatalf("esc did not close the form")
	}
}

func TestAddRequiredForm_BlankQtyIsUnspecified(t *testing.T) {
	m := newTestModel(t)
	m = press(m, "r")
	if m.modal != modalForm || m.form.def.ID != "required" {
		t.Fatalf("modal=%v", m.modal)
	}
	m.form.setValue("name", "Salt")
	m = press(m, "enter")
	if m.modal != modalNone {
		t.Fatalf("form err=%q", m.form.err)
	}
	tk, _ := m.board.State().FindTask(taskID(t, m, "Morning prep"))
	last := tk.Required[len(tk.Required)-1]
	if last.Name != "Salt" || last.Qty.Set {
		t.Fatalf("required=%+v", last)
	}
}

func TestImport_RejectedPayloadKeepsModalAndState(t *testing.T) {
	m := newTestModel(t)
	before := m.board.State().Clone()

	m = press(m, "I")
	if m.modal != modalImport {
		t.Fatalf("modal=%v", m.modal)
	}
	m.textarea.SetValue(`{"inventory": {}}`)
	m = press(m, "ctrl+s")
	if m.modal != modalImport || !strings.Contains(m.modalErr, importFailedMsg) {
		t.Fatalf("modal=%v err=%q", m.modal, m.modalErr)
	}
	if diff := cmp.Diff(before, m.board.State()); diff != "" {
		t.Fatalf("state changed (-want +got):\n%s", diff)
	}
}

func TestImport_ReplacesState(t *testing.T) {
	m := newTestModel(t)
	m = press(m, "I")
	m.textarea.SetValue(`{"inventory": {"Salt": {"qty": 1, "unit": "kg"}}, "schedule": []}`)
	m = press(m, "ctrl+s")
	if m.modal != modalNone {
		t.Fatalf("modal=%v err=%q", m.modal, m.modalErr)
	}
	if len(m.rows) != 0 || len(m.board.State().Inventory) != 1 {
		t.Fatalf("rows=%d inventory=%v", len(m.rows), m.board.State().Inventory)
	}
	if m.status != "Imported." {
		t.Fatalf("status=%q", m.status)
	}
}

func TestExport_WithoutClipboardShowsJSON(t *testing.T) {
	m := newTestModel(t)
	m = press(m, "e")
	if m.modal != modalExport {
		t.Fatalf("modal=%v", m.modal)
	}
	if !strings.Contains(m.View(), `"inventory": {`) {
		t.Fatalf("export modal missing JSON")
	}
	m = press(m, "esc")
	if m.modal != modalNone {
		t.Fatalf("export modal not closed")
	}
}

func TestExport_ClipboardFailureFallsBack(t *testing.T) {
	m := newTestModel(t)
	mm, _ := m.Update(exportDoneMsg{text: `{"inventory": {}}`, err: errors.New("no clipboard")})
	m = mm.(appModel)
	if m.modal != modalExport || !m.statusErr {
		t.Fatalf("modal=%v statusErr=%v", m.modal, m.statusErr)
	}

	mm, _ = m.Update(exportDoneMsg{text: "x"})
	m = mm.(appModel)
	if m.status != "Copied!" {
		t.Fatalf("status=%q", m.status)
	}
}

func TestDrawer_SelectAdjustDelete(t *testing.T) {
	m := newTestModel(t)
	m = press(m, "i")
	if !m.drawer || m.pane != paneSide {
		t.Fatalf("drawer=%v pane=%v", m.drawer, m.pane)
	}
	m = press(m, "enter")
	if sel := m.board.Selection(); sel.Kind != view.SelItem || sel.ItemName != "Eggs" {
		t.Fatalf("selection=%+v", sel)
	}
	m = press(m, "+", "-", "-")
	if got := m.board.State().Inventory["Eggs"].Qty; got != 5 {
		t.Fatalf("eggs=%v", got)
	}

	m = press(m, "j")
	if name, _ := m.drawerItem(); name != "Headphones" {
		t.Fatalf("drawer cursor on %q", name)
	}
	m = press(m, "x", "y")
	if _, ok := m.board.State().Inventory["Headphones"]; ok {
		t.Fatalf("headphones not deleted")
	}

	m = press(m, "esc")
	if m.drawer || m.pane != paneTimetable {
		t.Fatalf("esc did not close drawer")
	}
}

func TestAdjust_NeedsItem(t *testing.T) {
	m := newTestModel(t)
	m = press(m, "+")
	if !m.statusErr || !strings.Contains(m.status, "inventory item") {
		t.Fatalf("status=%q", m.status)
	}
}

func TestReset_Confirm(t *testing.T) {
	m := newTestModel(t)
	m = press(m, "x", "y")
	if len(m.board.State().Schedule) != 2 {
		t.Fatalf("setup delete failed")
	}
	m = press(m, "R")
	if m.modal != modalConfirm || m.confirm.action != confirmReset {
		t.Fatalf("modal=%v", m.modal)
	}
	m = press(m, "y")
	if len(m.board.State().Schedule) != 3 || m.status != "Reset done." {
		t.Fatalf("tasks=%d status=%q", len(m.board.State().Schedule), m.status)
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestOpenLink_StepRowAndNotes(t *testing.T) {
	m := newTestModel(t)
	var opened []string
	m.openURL = func(u string) error { opened = append(opened, u); return nil }

	m = press(m, "j", "j", "enter", "j")
	if r, ok := m.currentRow(); !ok || r.kind != rowStep {
		t.Fatalf("expected cursor on the omelette step, got %+v", r)
	}
	mm, cmd := m.Update(keyMsg("o"))
	m = mm.(appModel)
	if cmd == nil {
		t.Fatalf("expected an open command")
	}
	mm, _ = m.Update(cmd())
	m = mm.(appModel)
	want := "https://www.youtube.com/results?search_query=basic+omelette+recipe"
	if diff := cmp.Diff([]string{want}, opened); diff != "" {
		t.Fatalf("opened mismatch (-want +got):\n%s", diff)
	}
	if m.statusErr || !strings.Contains(m.status, "Opened") {
		t.Fatalf("status=%q err=%v", m.status, m.statusErr)
	}

	mm, _ = m.Update(linkOpenDoneMsg{url: want, err: errors.New("no browser")})
	m = mm.(appModel)
	if !m.statusErr {
		t.Fatalf("expected failed open to be reported")
	}
}

func TestOpenLink_NoLink(t *testing.T) {
	m := newTestModel(t)
	if _, err := m.board.AddTask(context.Background(), mutate.TaskInput{Time: "05:00", Duration: "10", Title: "Wake up"}); err != nil {
		t.Fatal(err)
	}
	m.refresh()
	m.cursor = 0
	mm, cmd := m.Update(keyMsg("o"))
	m = mm.(appModel)
	if cmd != nil || !m.statusErr {
		t.Fatalf("expected an error status without a command; status=%q", m.status)
	}
}

func TestTaskLinks(t *testing.T) {
	t.Parallel()
	tk := model.Task{
		Steps: []model.Step{{Name: "a", Link: "https://a.example"}, {Name: "b"}},
		Notes: "See [recipe](https://b.example/r) and https://A.example or https://c.example.",
	}
	got := taskLinks(tk)
	want := []string{"https://a.example", "https://b.example/r", "https://c.example"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("links mismatch (-want +got):\n%s", diff)
	}
}
