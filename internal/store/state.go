package store

import (
	"encoding/json"
	"sort"
	"strings"

	"route-cli/internal/model"
)

// State is the whole application state: the inventory keyed by normalized
// item name and the ordered schedule.
type State struct {
	Inventory map[string]model.InventoryItem `json:"inventory"`
	Schedule  []model.Task                   `json:"schedule"`
}

func NewState() *State {
	return &State{Inventory: map[string]model.InventoryItem{}, Schedule: []model.Task{}}
}

// ensure replaces nil collections so encodings are stable ({} / [] rather than null).
func (st *State) ensure() {
	if st.Inventory == nil {
		st.Inventory = map[string]model.InventoryItem{}
	}
	if st.Schedule == nil {
		st.Schedule = []model.Task{}
	}
	for i := range st.Schedule {
		if st.Schedule[i].Steps == nil {
			st.Schedule[i].Steps = []model.Step{}
		}
		if st.Schedule[i].Required == nil {
			st.Schedule[i].Required = []model.Requirement{}
		}
	}
}

// SortSchedule orders tasks ascending by start time. HH:MM is fixed width, so
// string order is time order. The sort is stable for equal start times.
func (st *State) SortSchedule() {
	sort.SliceStable(st.Schedule, func(i, j int) bool {
		return st.Schedule[i].Time < st.Schedule[j].Time
	})
}

func (st *State) FindTask(id string) (*model.Task, bool) {
	id = strings.TrimSpace(id)
	for i := range st.Schedule {
		if st.Schedule[i].ID == id {
			return &st.Schedule[i], true
		}
	}
	return nil, false
}

// ItemKey resolves a name to the inventory key it refers to.
//
// All joins between Task.Required and the inventory go through here: the name
// is trimmed, an exact key wins, otherwise a case-insensitive match is used
// (lowest key first when several differ only by case).
func (st *State) ItemKey(name string) (string, bool) {
	name = model.NormalizeName(name)
	if name == "" {
		return "", false
	}
	if _, ok := st.Inventory[name]; ok {
		return name, true
	}
	match := ""
	for k := range st.Inventory {
		if strings.EqualFold(k, name) && (match == "" || k < match) {
			match = k
		}
	}
	return match, match != ""
}

func (st *State) FindItem(name string) (string, model.InventoryItem, bool) {
	key, ok := st.ItemKey(name)
	if !ok {
		return "", model.InventoryItem{}, false
	}
	return key, st.Inventory[key], true
}

// ItemNames returns inventory keys sorted case-insensitively (ties by exact name).
func (st *State) ItemNames() []string {
	out := make([]string, 0, len(st.Inventory))
	for k := range st.Inventory {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := strings.ToLower(out[i]), strings.ToLower(out[j])
		if a != b {
			return a < b
		}
		return out[i] < out[j]
	})
	return out
}

// Availability is the have-vs-need comparison for one required entry.
// Need and Sufficient are nil when the entry has no quantity.
type Availability struct {
	Item       string   `json:"item"`
	Have       float64  `json:"have"`
	HaveUnit   string   `json:"haveUnit"`
	InStock    bool     `json:"inInventory"`
	Need       *float64 `json:"need"`
	NeedUnit   string   `json:"needUnit"`
	Sufficient *bool    `json:"sufficient"`
}

func (st *State) Availability(req model.Requirement) Availability {
	a := Availability{Item: model.NormalizeName(req.Name), NeedUnit: req.Unit}
	if _, it, ok := st.FindItem(req.Name); ok {
		a.Have = it.Qty
		a.HaveUnit = it.Unit
		a.InStock = true
	}
	if req.Qty.Set {
		need := req.Qty.Value
		ok := a.Have >= need
		a.Need = &need
		a.Sufficient = &ok
	}
	return a
}

// TasksReferencing returns, in schedule order, the tasks whose required list
// names the item.
func (st *State) TasksReferencing(name string) []model.Task {
	name = model.NormalizeName(name)
	if name == "" {
		return nil
	}
	out := []model.Task{}
	for _, t := range st.Schedule {
		for _, r := range t.Required {
			if strings.EqualFold(model.NormalizeName(r.Name), name) {
				out = append(out, t)
				break
			}
		}
	}
	return out
}

// Clone returns a deep copy.
func (st *State) Clone() *State {
	out := &State{
		Inventory: make(map[string]model.InventoryItem, len(st.Inventory)),
		Schedule:  make([]model.Task, len(st.Schedule)),
	}
	for k, v := range st.Inventory {
		out.Inventory[k] = v
	}
	for i, t := range st.Schedule {
		t.Steps = append([]model.Step{}, t.Steps...)
		t.Required = append([]model.Requirement{}, t.Required...)
		out.Schedule[i] = t
	}
	return out
}

// Encode serializes the state in the persisted layout. Pretty output uses a
// two-space indent and is what export hands to the user.
func (st *State) Encode(pretty bool) ([]byte, error) {
	st.ensure()
	if pretty {
		return json.MarshalIndent(st, "", "  ")
	}
	return json.Marshal(st)
}
