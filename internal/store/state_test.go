package store

import (
	"testing"

	"route-cli/internal/model"
)

func TestState_SortSchedule(t *testing.T) {
	t.Parallel()

	st := NewState()
	for _, tm := range []string{"19:00", "07:30", "12:15", "00:05", "07:30"} {
		st.Schedule = append(st.Schedule, model.Task{ID: model.NewTaskID(), Time: tm, Title: tm})
	}
	first730 := st.Schedule[1].ID
	st.SortSchedule()

	for i := 1; i < len(st.Schedule); i++ {
		if st.Schedule[i-1].Time > st.Schedule[i].Time {
			t.Fatalf("not sorted at %d: %q > %q", i, st.Schedule[i-1].Time, st.Schedule[i].Time)
		}
	}
	if st.Schedule[1].ID != first730 {
		t.Fatalf("expected stable order for equal times")
	}
}

func TestState_Availability(t *testing.T) {
	t.Parallel()

	st := NewState()
	st.Inventory["Screws"] = model.InventoryItem{Qty: 3, Unit: "pcs"}

	need5 := model.Requirement{Name: "Screws", Qty: model.Qty(5), Unit: "pcs"}
	a := st.Availability(need5)
	if a.Sufficient == nil || *a.Sufficient || a.Have != 3 || *a.Need != 5 {
		t.Fatalf("expected insufficient 3/5; got %#v", a)
	}

	st.Inventory["Screws"] = model.InventoryItem{Qty: 5, Unit: "pcs"}
	if a := st.Availability(need5); a.Sufficient == nil || !*a.Sufficient {
		t.Fatalf("expected sufficient at 5/5; got %#v", a)
	}
	st.Inventory["Screws"] = model.InventoryItem{Qty: 9, Unit: "pcs"}
	if a := st.Availability(need5); a.Sufficient == nil || !*a.Sufficient {
		t.Fatalf("expected sufficient at 9/5; got %#v", a)
	}

	unset := st.Availability(model.Requirement{Name: " screws "})
	if unset.Sufficient != nil || unset.Need != nil || unset.Have != 9 {
		t.Fatalf("expected unknown sufficiency with have=9; got %#v", unset)
	}

	missing := st.Availability(model.Requirement{Name: "Glue", Qty: model.Qty(1)})
	if missing.InStock || missing.Have != 0 || *missing.Sufficient {
		t.Fatalf("expected missing item to have 0; got %#v", missing)
	}
}

func TestState_ItemKeyAndTasksReferencing(t *testing.T) {
	t.Parallel()

	st := DemoState()
	if k, ok := st.ItemKey("  eggs "); !ok || k != "Eggs" {
		t.Fatalf("ItemKey(eggs) = %q, %v", k, ok)
	}
	if _, ok := st.ItemKey("   "); ok {
		t.Fatalf("blank name must not resolve")
	}

	tasks := st.TasksReferencing("timer")
	if len(tasks) != 2 || tasks[0].Title != "Morning prep" || tasks[1].Title != "Deep work sprint" {
		t.Fatalf("unexpected referencing tasks: %#v", tasks)
	}
	if got := st.TasksReferencing("Yoga mat"); len(got) != 0 {
		t.Fatalf("expected no tasks for Yoga mat; got %d", len(got))
	}
}

func TestState_ItemNamesAlphabetical(t *testing.T) {
	t.Parallel()

	st := NewState()
	for _, n := range []string{"pen", "Apple", "banana", "Pen"} {
		st.Inventory[n] = model.InventoryItem{Qty: 1}
	}
	got := st.ItemNames()
	want := []string{"Apple", "banana", "Pen", "pen"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ItemNames = %v; want %v", got, want)
		}
	}
}

func TestState_CloneIsDeep(t *testing.T) {
	t.Parallel()

	st := DemoState()
	cp := st.Clone()
	cp.Schedule[0].Steps[0].Name = "changed"
	cp.Inventory["Eggs"] = model.InventoryItem{Qty: 0}
	if st.Schedule[0].Steps[0].Name == "changed" || st.Inventory["Eggs"].Qty != 6 {
		t.Fatalf("clone shares memory with original")
	}
}
