package mutate

import (
	"math"
	"strconv"
	"strings"

	"route-cli/internal/model"
	"route-cli/internal/store"
)

// TaskInput is the raw form input for a new task.
type TaskInput struct {
	Time     string
	Duration string
	Title    string
	Notes    string

	Steps    []model.Step
	Required []model.Requirement
}

// ParseDuration accepts a finite, non-negative whole number of minutes.
func ParseDuration(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, invalid("duration", "required")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, invalid("duration", "must be a number of minutes")
	}
	if v < 0 {
		return 0, invalid("duration", "must not be negative")
	}
	if v != math.Trunc(v) {
		return 0, invalid("duration", "must be whole minutes")
	}
	if v > model.MaxDurationMins {
		return 0, invalid("duration", "too long")
	}
	return int(v), nil
}

// ValidateTask checks in and returns the task it describes (without an id).
func ValidateTask(in TaskInput) (model.Task, error) {
	tm := strings.TrimSpace(in.Time)
	if tm == "" {
		return model.Task{}, invalid("time", "required")
	}
	if _, err := model.ParseClock(tm); err != nil {
		return model.Task{}, invalid("time", err.Error())
	}
	title := model.NormalizeName(in.Title)
	if title == "" {
		return model.Task{}, invalid("title", "required")
	}
	mins, err := ParseDuration(in.Duration)
	if err != nil {
		return model.Task{}, err
	}
	t := model.Task{
		Time:         tm,
		DurationMins: mins,
		Title:        title,
		Notes:        strings.TrimSpace(in.Notes),
		Steps:        append([]model.Step{}, in.Steps...),
		Required:     append([]model.Requirement{}, in.Required...),
	}
	return t, nil
}

// AddTask validates in, assigns a fresh id and appends the task.
func AddTask(st *store.State, in TaskInput) (model.Task, error) {
	t, err := ValidateTask(in)
	if err != nil {
		return model.Task{}, err
	}
	t.ID = model.NewTaskID()
	st.Schedule = append(st.Schedule, t)
	return t, nil
}

// RemoveTask deletes the task with id. An unknown id is a no-op.
func RemoveTask(st *store.State, id string) bool {
	id = strings.TrimSpace(id)
	for i := range st.Schedule {
		if st.Schedule[i].ID == id {
			st.Schedule = append(st.Schedule[:i], st.Schedule[i+1:]...)
			return true
		}
	}
	return false
}

func AddStep(st *store.State, taskID, name, link string) (*model.Task, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("step", "name required")
	}
	t, ok := st.FindTask(taskID)
	if !ok {
		return nil, NotFoundError{Kind: "task", ID: taskID}
	}
	t.Steps = append(t.Steps, model.Step{Name: name, Link: strings.TrimSpace(link)})
	return t, nil
}

// AddRequired appends a required entry. A blank qtyRaw leaves the needed
// quantity unspecified, which is not the same as 0.
func AddRequired(st *store.State, taskID, name, qtyRaw, unit string) (*model.Task, error) {
	name = model.NormalizeName(name)
	if name == "" {
		return nil, invalid("item", "name required")
	}
	q, err := model.ParseQuantity(qtyRaw)
	if err != nil {
		return nil, invalid("quantity", err.Error())
	}
	if q.Set && q.Value < 0 {
		return nil, invalid("quantity", "must not be negative")
	}
	t, ok := st.FindTask(taskID)
	if !ok {
		return nil, NotFoundError{Kind: "task", ID: taskID}
	}
	t.Required = append(t.Required, model.Requirement{Name: name, Qty: q, Unit: strings.TrimSpace(unit)})
	return t, nil
}

func RemoveStep(st *store.State, taskID string, idx int) error {
	t, ok := st.FindTask(taskID)
	if !ok {
		return NotFoundError{Kind: "task", ID: taskID}
	}
	if idx < 0 || idx >= len(t.Steps) {
		return NotFoundError{Kind: "step", ID: strconv.Itoa(idx)}
	}
	t.Steps = append(t.Steps[:idx], t.Steps[idx+1:]...)
	return nil
}

func RemoveRequired(st *store.State, taskID string, idx int) error {
	t, ok := st.FindTask(taskID)
	if !ok {
		return NotFoundError{Kind: "task", ID: taskID}
	}
	if idx < 0 || idx >= len(t.Required) {
		return NotFoundError{Kind: "required item", ID: strconv.Itoa(idx)}
	}
	t.Required = append(t.Required[:idx], t.Required[idx+1:]...)
	return nil
}
