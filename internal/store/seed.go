package store

import "route-cli/internal/model"

// DemoState is the dataset used on first launch, after a reset, and whenever
// the persisted slot is missing or unreadable.
func DemoState() *State {
	return &State{
		Inventory: map[string]model.InventoryItem{
			"Notebook":   {Qty: 2},
			"Pen":        {Qty: 6},
			"Tea leaves": {Qty: 1, Unit: "pack"},
			"Timer":      {Qty: 1},
			"Headphones": {Qty: 1},
			"Yoga mat":   {Qty: 1},
			"Eggs":       {Qty: 6, Unit: "pcs"},
			"Milk":       {Qty: 500, Unit: "ml"},
		},
		Schedule: []model.Task{
			{
				ID:           model.NewTaskID(),
				Time:         "07:30",
				DurationMins: 45,
				Title:        "Morning prep",
				Steps: []model.Step{
					{Name: "Review daily agenda", Link: "https://www.youtube.com/results?search_query=morning+planning+routine"},
					{Name: "Steep tea and hydrate", Link: "https://www.youtube.com/results?search_query=how+to+make+tea"},
				},
				Required: []model.Requirement{
					{Name: "Notebook", Qty: model.Qty(1)},
					{Name: "Pen", Qty: model.Qty(1)},
					{Name: "Tea leaves", Qty: model.Qty(1), Unit: "pack"},
					{Name: "Timer", Qty: model.Qty(1)},
				},
			},
			{
				ID:           model.NewTaskID(),
				Time:         "09:00",
				DurationMins: 90,
				Title:        "Deep work sprint",
				Steps: []model.Step{
					{Name: "Focus music (optional)", Link: "https://www.youtube.com/results?search_query=deep+work+music"},
					{Name: "Pomodoro 45/10", Link: "https://www.youtube.com/results?search_query=pomodoro+timer+45+10"},
				},
				Required: []model.Requirement{
					{Name: "Headphones", Qty: model.Qty(1)},
					{Name: "Timer", Qty: model.Qty(1)},
				},
			},
			{
				ID:           model.NewTaskID(),
				Time:         "19:00",
				DurationMins: 60,
				Title:        "Cooking",
				Steps: []model.Step{
					{Name: "Omelette (basic)", Link: "https://www.youtube.com/results?search_query=basic+omelette+recipe"},
				},
				Required: []model.Requirement{
					{Name: "Eggs", Qty: model.Qty(2), Unit: "pcs"},
					{Name: "Milk", Qty: model.Qty(50), Unit: "ml"},
				},
			},
		},
	}
}
