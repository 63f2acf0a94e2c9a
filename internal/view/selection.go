package view

import (
	"strings"

	"route-cli/internal/store"
)

type SelectionKind int

const (
	SelNone SelectionKind = iota
	SelTask
	SelRequirement
	SelItem
)

func (k SelectionKind) String() string {
	switch k {
	case SelTask:
		return "task"
	case SelRequirement:
		return "requirement"
	case SelItem:
		return "item"
	default:
		return "none"
	}
}

// Selection is what the inspector currently shows. It is never persisted.
type Selection struct {
	Kind     SelectionKind
	TaskID   string
	ReqIndex int
	ItemName string
}

func None() Selection { return Selection{} }

func TaskSelection(taskID string) Selection {
	return Selection{Kind: SelTask, TaskID: taskID}
}

func RequirementSelection(taskID string, idx int) Selection {
	return Selection{Kind: SelRequirement, TaskID: taskID, ReqIndex: idx}
}

func ItemSelection(name string) Selection {
	return Selection{Kind: SelItem, ItemName: strings.TrimSpace(name)}
}

// Resolve reports whether the selection still points at live entities. Item
// selections are rewritten to the item's current key.
func (s Selection) Resolve(st *store.State) (Selection, bool) {
	switch s.Kind {
	case SelTask:
		_, ok := st.FindTask(s.TaskID)
		return s, ok
	case SelRequirement:
		t, ok := st.FindTask(s.TaskID)
		if !ok || s.ReqIndex < 0 || s.ReqIndex >= len(t.Required) {
			return s, false
		}
		return s, true
	case SelItem:
		key, ok := st.ItemKey(s.ItemName)
		if !ok {
			return s, false
		}
		s.ItemName = key
		return s, true
	default:
		return None(), true
	}
}
