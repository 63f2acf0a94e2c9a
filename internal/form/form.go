// Package form describes the small input forms used to add tasks, steps,
// required items and inventory items. The TUI renders them as modals; the CLI
// can fill them with a line prompter.
package form

import (
	"strings"

	"route-cli/internal/mutate"
)

type ID string

const (
	TaskID     ID = "task"
	StepID     ID = "step"
	RequiredID ID = "required"
	ItemID     ID = "item"
)

type Field struct {
	Key         string
	Label       string
	Placeholder string
	Required    bool
	Default     string
}

type Form struct {
	ID     ID
	Title  string
	Fields []Field
}

// Result is what a filled form produced. Values holds trimmed input by key.
type Result struct {
	Values    map[string]string
	Cancelled bool
}

func (r Result) Get(key string) string {
	return strings.TrimSpace(r.Values[key])
}

// Missing returns the first required field left blank.
func (r Result) Missing(f Form) (Field, bool) {
	for _, fl := range f.Fields {
		if fl.Required && r.Get(fl.Key) == "" {
			return fl, true
		}
	}
	return Field{}, false
}

// Validate turns a missing required field into a ValidationError.
func (r Result) Validate(f Form) error {
	if fl, ok := r.Missing(f); ok {
		return mutate.ValidationError{Field: fl.Key, Msg: fl.Label + " is required"}
	}
	return nil
}

func TaskForm() Form {
	return Form{
		ID:    TaskID,
		Title: "Add task",
		Fields: []Field{
			{Key: "time", Label: "Start time", Placeholder: "HH:MM", Required: true},
			{Key: "duration", Label: "Duration (mins)", Placeholder: "30", Required: true, Default: "30"},
			{Key: "title", Label: "Task name", Required: true},
			{Key: "notes", Label: "Notes", Placeholder: "optional"},
		},
	}
}

func StepForm(taskTitle string) Form {
	return Form{
		ID:    StepID,
		Title: "Add step for " + quote(taskTitle),
		Fields: []Field{
			{Key: "name", Label: "Step name", Required: true},
			{Key: "link", Label: "Link", Placeholder: "optional"},
		},
	}
}

func RequiredForm(taskTitle string) Form {
	return Form{
		ID:    RequiredID,
		Title: "Add required item for " + quote(taskTitle),
		Fields: []Field{
			{Key: "name", Label: "Item name", Required: true},
			{Key: "qty", Label: "Needed quantity", Placeholder: "blank if not needed"},
			{Key: "unit", Label: "Unit", Placeholder: "optional"},
		},
	}
}

func ItemForm() Form {
	return Form{
		ID:    ItemID,
		Title: "Add / update inventory item",
		Fields: []Field{
			{Key: "name", Label: "Item name", Required: true},
			{Key: "qty", Label: "Quantity", Placeholder: "0"},
			{Key: "unit", Label: "Unit", Placeholder: "optional"},
		},
	}
}

// TaskInput maps a filled task form onto mutate's input.
func (r Result) TaskInput() mutate.TaskInput {
	return mutate.TaskInput{
		Time:     r.Get("time"),
		Duration: r.Get("duration"),
		Title:    r.Get("title"),
		Notes:    r.Get("notes"),
	}
}

func quote(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "task"
	}
	return `"` + s + `"`
}
