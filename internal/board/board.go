// Package board owns the live application state and runs the render cycle.
//
// Every mutating command goes through a mutate operation and, when it
// succeeds, through RenderAll: sort, persist, project. Selection changes only
// re-project.
package board

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"route-cli/internal/logging"
	"route-cli/internal/model"
	"route-cli/internal/mutate"
	"route-cli/internal/store"
	"route-cli/internal/view"
)

// Frame is the last projection of the three views.
type Frame struct {
	Timetable []view.TimetableRow
	Inventory []view.InventoryRow
	Inspector view.Inspector
}

type Board struct {
	store    store.Store
	st       *store.State
	sel      view.Selection
	expanded map[string]bool
	log      *log.Logger
	frame    Frame

	// Seeded reports that the demo dataset replaced a missing or unreadable slot.
	Seeded bool
}

// Open loads the persisted state (or the demo dataset) and renders it once.
// Only a seeded state is written back; a loaded slot is left as stored.
func Open(ctx context.Context, s store.Store, logger *log.Logger) (*Board, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	res, err := s.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	if res.Seeded {
		logger.Warn("using demo data", "reason", res.Reason)
	}
	b := &Board{
		store:    s,
		st:       res.State,
		expanded: map[string]bool{},
		log:      logger,
		Seeded:   res.Seeded,
	}
	if !res.Seeded {
		b.st.SortSchedule()
		b.project()
		return b, nil
	}
	if err := b.RenderAll(ctx); err != nil {
		return nil, err
	}
	return b, nil
}

// State exposes the live state for read-only callers.
func (b *Board) State() *store.State { return b.st }

func (b *Board) Frame() Frame { return b.frame }

func (b *Board) Selection() view.Selection { return b.sel }

func (b *Board) Expanded(taskID string) bool { return b.expanded[taskID] }

// RenderAll sorts the schedule, persists the state and re-projects the views.
// The views are projected even when the save fails.
func (b *Board) RenderAll(ctx context.Context) error {
	b.st.SortSchedule()
	err := b.store.Save(ctx, b.st)
	if err != nil {
		b.log.Error("save state", "err", err)
		err = fmt.Errorf("save state: %w", err)
	}
	b.project()
	return err
}

// project rebuilds the frame without persisting. A selection that no longer
// resolves is cleared.
func (b *Board) project() {
	for id := range b.expanded {
		if _, ok := b.st.FindTask(id); !ok {
			delete(b.expanded, id)
		}
	}
	sel, ok := b.sel.Resolve(b.st)
	if !ok {
		b.log.Debug("selection cleared", "kind", b.sel.Kind.String())
		sel = view.None()
	}
	b.sel = sel
	b.frame = Frame{
		Timetable: view.Timetable(b.st, b.expanded),
		Inventory: view.Inventory(b.st),
		Inspector: view.ProjectInspector(b.st, b.sel),
	}
}

func (b *Board) AddTask(ctx context.Context, in mutate.TaskInput) (model.Task, error) {
	t, err := mutate.AddTask(b.st, in)
	if err != nil {
		return model.Task{}, err
	}
	b.log.Info("task added", "id", t.ID, "time", t.Time)
	return t, b.RenderAll(ctx)
}

func (b *Board) RemoveTask(ctx context.Context, id string) (bool, error) {
	if !mutate.RemoveTask(b.st, id) {
		return false, nil
	}
	b.log.Info("task removed", "id", id)
	return true, b.RenderAll(ctx)
}

func (b *Board) AddStep(ctx context.Context, taskID, name, link string) error {
	if _, err := mutate.AddStep(b.st, taskID, name, link); err != nil {
		return err
	}
	return b.RenderAll(ctx)
}

func (b *Board) AddRequired(ctx context.Context, taskID, name, qty, unit string) error {
	if _, err := mutate.AddRequired(b.st, taskID, name, qty, unit); err != nil {
		return err
	}
	return b.RenderAll(ctx)
}

func (b *Board) RemoveStep(ctx context.Context, taskID string, idx int) error {
	if err := mutate.RemoveStep(b.st, taskID, idx); err != nil {
		return err
	}
	return b.RenderAll(ctx)
}

// RemoveRequired deletes a required entry. A selection on that entry is
// cleared; one on a later entry of the same task follows it down.
func (b *Board) RemoveRequired(ctx context.Context, taskID string, idx int) error {
	if err := mutate.RemoveRequired(b.st, taskID, idx); err != nil {
		return err
	}
	if b.sel.Kind == view.SelRequirement && b.sel.TaskID == strings.TrimSpace(taskID) {
		switch {
		case b.sel.ReqIndex == idx:
			b.sel = view.None()
		case b.sel.ReqIndex > idx:
			b.sel.ReqIndex--
		}
	}
	return b.RenderAll(ctx)
}

func (b *Board) UpsertItem(ctx context.Context, name, qty, unit string) (string, error) {
	key, err := mutate.UpsertInventoryItem(b.st, name, qty, unit)
	if err != nil {
		return "", err
	}
	return key, b.RenderAll(ctx)
}

// ConsumeRequirement subtracts the needed quantity of a task's required entry
// from the inventory. An entry without a quantity consumes nothing.
func (b *Board) ConsumeRequirement(ctx context.Context, taskID string, idx int) (string, model.InventoryItem, error) {
	t, ok := b.st.FindTask(taskID)
	if !ok {
		return "", model.InventoryItem{}, mutate.NotFoundError{Kind: "task", ID: taskID}
	}
	if idx < 0 || idx >= len(t.Required) {
		return "", model.InventoryItem{}, mutate.NotFoundError{Kind: "required item", ID: fmt.Sprint(idx)}
	}
	req := t.Required[idx]
	need := 0.0
	if req.Qty.Set {
		need = req.Qty.Value
	}
	key, it, _ := mutate.Consume(b.st, req.Name, need, req.Unit)
	if key == "" {
		key = model.NormalizeName(req.Name)
	}
	b.log.Info("consumed", "item", key, "amount", need, "left", it.Qty)
	return key, it, b.RenderAll(ctx)
}

// ConsumeItem subtracts amount from the named item, clamped at zero.
func (b *Board) ConsumeItem(ctx context.Context, name string, amount float64, unit string) (string, model.InventoryItem, error) {
	if amount < 0 {
		return "", model.InventoryItem{}, mutate.ValidationError{Field: "amount", Msg: "must not be negative"}
	}
	key, it, ok := mutate.Consume(b.st, name, amount, unit)
	if !ok {
		return "", model.InventoryItem{}, mutate.NotFoundError{Kind: "item", ID: model.NormalizeName(name)}
	}
	return key, it, b.RenderAll(ctx)
}

// ConsumeSelected consumes the required entry shown in the inspector.
func (b *Board) ConsumeSelected(ctx context.Context) (string, model.InventoryItem, error) {
	if b.sel.Kind != view.SelRequirement {
		return "", model.InventoryItem{}, mutate.ValidationError{Field: "selection", Msg: "select a required item first"}
	}
	return b.ConsumeRequirement(ctx, b.sel.TaskID, b.sel.ReqIndex)
}

func (b *Board) AdjustItem(ctx context.Context, name string, delta float64) (string, model.InventoryItem, error) {
	key, it, err := mutate.AdjustQuantity(b.st, name, delta)
	if err != nil {
		return "", model.InventoryItem{}, err
	}
	return key, it, b.RenderAll(ctx)
}

func (b *Board) RemoveItem(ctx context.Context, name string) (bool, error) {
	if !mutate.RemoveInventoryItem(b.st, name) {
		return false, nil
	}
	return true, b.RenderAll(ctx)
}

// Import replaces the whole state with raw. A rejected payload leaves both the
// live state and the persisted slot untouched.
func (b *Board) Import(ctx context.Context, raw []byte) error {
	if err := mutate.ImportState(b.st, raw); err != nil {
		b.log.Warn("import rejected", "err", err)
		return err
	}
	b.Seeded = false
	b.log.Info("imported", "tasks", len(b.st.Schedule), "items", len(b.st.Inventory))
	return b.RenderAll(ctx)
}

// Reset clears the persisted slot and reverts to the demo dataset.
func (b *Board) Reset(ctx context.Context) error {
	if err := b.store.Reset(ctx); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	*b.st = *store.DemoState()
	b.sel = view.None()
	b.expanded = map[string]bool{}
	b.Seeded = true
	b.log.Info("reset to demo data")
	return b.RenderAll(ctx)
}

// Export returns the pretty-printed persisted layout.
func (b *Board) Export() (string, error) {
	out, err := b.st.Encode(true)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (b *Board) SelectTask(id string) bool {
	return b.selectIfLive(view.TaskSelection(id))
}

func (b *Board) SelectRequirement(taskID string, idx int) bool {
	return b.selectIfLive(view.RequirementSelection(taskID, idx))
}

func (b *Board) SelectItem(name string) bool {
	return b.selectIfLive(view.ItemSelection(name))
}

func (b *Board) ClearSelection() {
	b.sel = view.None()
	b.project()
}

func (b *Board) selectIfLive(sel view.Selection) bool {
	if _, ok := sel.Resolve(b.st); !ok {
		return false
	}
	b.sel = sel
	b.project()
	return true
}

// ToggleTask flips a task row between collapsed and expanded.
func (b *Board) ToggleTask(id string) bool {
	id = strings.TrimSpace(id)
	if _, ok := b.st.FindTask(id); !ok {
		return false
	}
	b.expanded[id] = !b.expanded[id]
	if !b.expanded[id] {
		delete(b.expanded, id)
	}
	b.project()
	return b.expanded[id]
}
