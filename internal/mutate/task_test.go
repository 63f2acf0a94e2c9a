package mutate

import (
	"errors"
	"testing"

	"route-cli/internal/model"
	"route-cli/internal/store"
)

func TestAddTask_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		in    TaskInput
		field string
	}{
		{name: "missing time", in: TaskInput{Duration: "30", Title: "Run"}, field: "time"},
		{name: "bad time", in: TaskInput{Time: "25:00", Duration: "30", Title: "Run"}, field: "time"},
		{name: "blank title", in: TaskInput{Time: "06:00", Duration: "30", Title: "   "}, field: "title"},
		{name: "missing duration", in: TaskInput{Time: "06:00", Title: "Run"}, field: "duration"},
		{name: "negative duration", in: TaskInput{Time: "06:00", Duration: "-1", Title: "Run"}, field: "duration"},
		{name: "nan duration", in: TaskInput{Time: "06:00", Duration: "NaN", Title: "Run"}, field: "duration"},
		{name: "inf duration", in: TaskInput{Time: "06:00", Duration: "Inf", Title: "Run"}, field: "duration"},
		{name: "fractional duration", in: TaskInput{Time: "06:00", Duration: "2.5", Title: "Run"}, field: "duration"},
		{name: "huge duration", in: TaskInput{Time: "06:00", Duration: "1e19", Title: "Run"}, field: "duration"},
		{name: "text duration", in: TaskInput{Time: "06:00", Duration: "soon", Title: "Run"}, field: "duration"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			st := store.NewState()
			_, err := AddTask(st, tt.in)
			var ve ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError; got %v", err)
			}
			if ve.Field != tt.field {
				t.Fatalf("expected field %q; got %q (%v)", tt.field, ve.Field, err)
			}
			if len(st.Schedule) != 0 {
				t.Fatalf("state mutated on invalid input")
			}
		})
	}
}

func TestAddTask_Appends(t *testing.T) {
	t.Parallel()

	st := store.NewState()
	got, err := AddTask(st, TaskInput{Time: "06:00", Duration: "0", Title: "  Stretch ", Notes: " loosen up "})
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	if !model.IsTaskID(got.ID) || got.Title != "Stretch" || got.Notes != "loosen up" || got.DurationMins != 0 {
		t.Fatalf("unexpected task %#v", got)
	}
	if got.Steps == nil || got.Required == nil || len(got.Steps) != 0 || len(got.Required) != 0 {
		t.Fatalf("expected empty steps/required; got %#v", got)
	}
	if len(st.Schedule) != 1 || st.Schedule[0].ID != got.ID {
		t.Fatalf("expected task appended")
	}
}

func TestRemoveTask_NoopWhenAbsent(t *testing.T) {
	t.Parallel()

	st := store.DemoState()
	n := len(st.Schedule)
	if RemoveTask(st, "task-missing") {
		t.Fatalf("expected no-op")
	}
	if len(st.Schedule) != n {
		t.Fatalf("schedule changed")
	}
	id := st.Schedule[1].ID
	if !RemoveTask(st, id) {
		t.Fatalf("expected removal")
	}
	if _, ok := st.FindTask(id); ok {
		t.Fatalf("task still present")
	}
}

func TestAddStepAndRequired(t *testing.T) {
	t.Parallel()

	st := store.DemoState()
	id := st.Schedule[2].ID

	if _, err := AddStep(st, id, "  ", ""); err == nil {
		t.Fatalf("expected error for blank step name")
	}
	tk, err := AddStep(st, id, "Whisk", " https://example.com/whisk ")
	if err != nil {
		t.Fatalf("AddStep: %v", err)
	}
	last := tk.Steps[len(tk.Steps)-1]
	if last.Name != "Whisk" || last.Link != "https://example.com/whisk" {
		t.Fatalf("unexpected step %#v", last)
	}

	if _, err := AddRequired(st, id, "Salt", "a pinch", ""); err == nil {
		t.Fatalf("expected error for non-numeric quantity")
	}
	if _, err := AddRequired(st, id, "", "1", ""); err == nil {
		t.Fatalf("expected error for blank name")
	}
	tk, err = AddRequired(st, id, " Salt ", "", "")
	if err != nil {
		t.Fatalf("AddRequired: %v", err)
	}
	salt := tk.Required[len(tk.Required)-1]
	if salt.Name != "Salt" || salt.Qty.Set {
		t.Fatalf("expected unspecified qty; got %#v", salt)
	}
	tk, err = AddRequired(st, id, "Butter", "0", "g")
	if err != nil {
		t.Fatalf("AddRequired: %v", err)
	}
	butter := tk.Required[len(tk.Required)-1]
	if !butter.Qty.Set || butter.Qty.Value != 0 || butter.Unit != "g" {
		t.Fatalf("expected explicit zero; got %#v", butter)
	}

	var nf NotFoundError
	if _, err := AddStep(st, "task-nope", "x", ""); !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError; got %v", err)
	}
}

func TestRemoveStepAndRequired(t *testing.T) {
	t.Parallel()

	st := store.DemoState()
	id := st.Schedule[0].ID
	if err := RemoveRequired(st, id, 0); err != nil {
		t.Fatalf("RemoveRequired: %v", err)
	}
	tk, _ := st.FindTask(id)
	if len(tk.Required) != 3 || tk.Required[0].Name != "Pen" {
		t.Fatalf("unexpected required after removal: %#v", tk.Required)
	}
	if err := RemoveStep(st, id, 5); err == nil {
		t.Fatalf("expected error for out of range step")
	}
	if err := RemoveStep(st, id, 1); err != nil {
		t.Fatalf("RemoveStep: %v", err)
	}
	if len(tk.Steps) != 1 {
		t.Fatalf("expected 1 step; got %d", len(tk.Steps))
	}
}
