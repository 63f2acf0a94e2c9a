package view

import (
	"route-cli/internal/model"
	"route-cli/internal/store"
)

const (
	StatusEnough  = "You have enough."
	StatusShort   = "You may need to buy more."
	StatusNoQty   = "No required quantity set."
	PlaceholderNA = "Select a task, a required item or an inventory item."
)

type TaskRef struct {
	ID    string
	Title string
	Time  string
	End   string
}

type TaskDetail struct {
	Task     model.Task
	End      string
	Steps    []StepRow
	Required []RequiredRow
}

type RequirementDetail struct {
	Task     TaskRef
	Index    int
	Name     string
	NeedText string
	HaveText string
	Status   string
	Avail    store.Availability
}

type ItemDetail struct {
	Name    string
	Qty     float64
	Unit    string
	QtyText string
	UsedBy  []TaskRef
}

// Inspector is the detail view for one selection. Exactly one of the detail
// pointers is set unless Kind is SelNone.
type Inspector struct {
	Kind        SelectionKind
	Placeholder string
	Task        *TaskDetail
	Requirement *RequirementDetail
	Item        *ItemDetail
}

// AvailabilityStatus is the one-line verdict for a required entry.
func AvailabilityStatus(a store.Availability) string {
	switch {
	case a.Sufficient == nil:
		return StatusNoQty
	case *a.Sufficient:
		return StatusEnough
	default:
		return StatusShort
	}
}

// ProjectInspector renders sel. The caller must have resolved sel already; an
// unresolvable selection yields the placeholder.
func ProjectInspector(st *store.State, sel Selection) Inspector {
	sel, ok := sel.Resolve(st)
	if !ok || sel.Kind == SelNone {
		return Inspector{Kind: SelNone, Placeholder: PlaceholderNA}
	}
	switch sel.Kind {
	case SelTask:
		t, _ := st.FindTask(sel.TaskID)
		return Inspector{Kind: SelTask, Task: &TaskDetail{
			Task:     *t,
			End:      t.EndTime(),
			Steps:    stepRows(*t),
			Required: requiredRows(st, *t),
		}}
	case SelRequirement:
		t, _ := st.FindTask(sel.TaskID)
		r := t.Required[sel.ReqIndex]
		a := st.Availability(r)
		return Inspector{Kind: SelRequirement, Requirement: &RequirementDetail{
			Task:     taskRef(*t),
			Index:    sel.ReqIndex,
			Name:     r.Name,
			NeedText: NeedText(r),
			HaveText: HaveText(a),
			Status:   AvailabilityStatus(a),
			Avail:    a,
		}}
	default:
		it := st.Inventory[sel.ItemName]
		d := &ItemDetail{
			Name:    sel.ItemName,
			Qty:     it.Qty,
			Unit:    it.Unit,
			QtyText: model.FormatQty(it.Qty, it.Unit),
			UsedBy:  []TaskRef{},
		}
		for _, t := range st.TasksReferencing(sel.ItemName) {
			d.UsedBy = append(d.UsedBy, taskRef(t))
		}
		return Inspector{Kind: SelItem, Item: d}
	}
}

func taskRef(t model.Task) TaskRef {
	return TaskRef{ID: t.ID, Title: t.Title, Time: t.Time, End: t.EndTime()}
}
