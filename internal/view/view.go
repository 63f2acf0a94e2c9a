// Package view projects application state into the three read-only views:
// timetable, inventory and inspector.
package view

import (
	"route-cli/internal/model"
	"route-cli/internal/store"
)

type StepRow struct {
	Index int
	Name  string
	Link  string
}

type RequiredRow struct {
	Index    int
	Name     string
	NeedText string
	HaveText string
	Avail    store.Availability
}

type TimetableRow struct {
	TaskID       string
	Title        string
	Start        string
	End          string
	DurationMins int
	Expanded     bool
	Steps        []StepRow
	Required     []RequiredRow
}

type InventoryRow struct {
	Name    string
	Qty     float64
	Unit    string
	QtyText string
	UsedBy  int
}

// Timetable projects the schedule in its current order. Steps and required
// entries are only projected for expanded tasks.
func Timetable(st *store.State, expanded map[string]bool) []TimetableRow {
	rows := make([]TimetableRow, 0, len(st.Schedule))
	for _, t := range st.Schedule {
		row := TimetableRow{
			TaskID:       t.ID,
			Title:        t.Title,
			Start:        t.Time,
			End:          t.EndTime(),
			DurationMins: t.DurationMins,
			Expanded:     expanded[t.ID],
		}
		if row.Expanded {
			row.Steps = stepRows(t)
			row.Required = requiredRows(st, t)
		}
		rows = append(rows, row)
	}
	return rows
}

func stepRows(t model.Task) []StepRow {
	out := make([]StepRow, 0, len(t.Steps))
	for i, s := range t.Steps {
		out = append(out, StepRow{Index: i, Name: s.Name, Link: s.Link})
	}
	return out
}

func requiredRows(st *store.State, t model.Task) []RequiredRow {
	out := make([]RequiredRow, 0, len(t.Required))
	for i, r := range t.Required {
		a := st.Availability(r)
		out = append(out, RequiredRow{
			Index:    i,
			Name:     r.Name,
			NeedText: NeedText(r),
			HaveText: HaveText(a),
			Avail:    a,
		})
	}
	return out
}

// NeedText is "" when the entry has no quantity.
func NeedText(r model.Requirement) string {
	if !r.Qty.Set {
		return ""
	}
	return model.FormatQty(r.Qty.Value, r.Unit)
}

// HaveText renders the stock for a required entry; missing items read "0".
func HaveText(a store.Availability) string {
	if !a.InStock {
		return "0"
	}
	return model.FormatQty(a.Have, a.HaveUnit)
}

// Badge is the short have-label shown next to a required entry.
func (r RequiredRow) Badge() string {
	return r.HaveText + " have"
}

// Inventory lists all items alphabetically.
func Inventory(st *store.State) []InventoryRow {
	names := st.ItemNames()
	rows := make([]InventoryRow, 0, len(names))
	for _, n := range names {
		it := st.Inventory[n]
		rows = append(rows, InventoryRow{
			Name:    n,
			Qty:     it.Qty,
			Unit:    it.Unit,
			QtyText: model.FormatQty(it.Qty, it.Unit),
			UsedBy:  len(st.TasksReferencing(n)),
		})
	}
	return rows
}
