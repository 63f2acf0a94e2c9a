package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"route-cli/internal/board"
	"route-cli/internal/form"
	"route-cli/internal/model"
	"route-cli/internal/mutate"
	"route-cli/internal/store"
)

type taskOut struct {
	model.Task
	End string `json:"end"`
}

type taskShowOut struct {
	model.Task
	End          string               `json:"end"`
	Availability []store.Availability `json:"availability"`
}

func newTaskOut(t model.Task) taskOut {
	return taskOut{Task: t, End: t.EndTime()}
}

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"task"},
		Short:   "Timetable tasks",
	}

	cmd.AddCommand(newTasksListCmd(app))
	cmd.AddCommand(newTasksShowCmd(app))
	cmd.AddCommand(newTasksAddCmd(app))
	cmd.AddCommand(newTasksRmCmd(app))
	cmd.AddCommand(newTasksAddStepCmd(app))
	cmd.AddCommand(newTasksAddRequiredCmd(app))
	cmd.AddCommand(newTasksRmEntryCmd(app, "rm-step", "Remove a step by index", (*board.Board).RemoveStep))
	cmd.AddCommand(newTasksRmEntryCmd(app, "rm-required", "Remove a required item by index", (*board.Board).RemoveRequired))

	return cmd
}

func newTasksListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tasks in start-time order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBoard(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			out := make([]taskOut, 0, len(b.State().Schedule))
			for _, t := range b.State().Schedule {
				out = append(out, newTaskOut(t))
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}
}

func newTasksShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show a task with the availability of everything it requires",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBoard(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			st := b.State()
			t, ok := st.FindTask(args[0])
			if !ok {
				return writeErr(cmd, mutate.NotFoundError{Kind: "task", ID: args[0]})
			}
			out := taskShowOut{Task: *t, End: t.EndTime(), Availability: []store.Availability{}}
			for _, r := range t.Required {
				out.Availability = append(out.Availability, st.Availability(r))
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}
}

func newTasksAddCmd(app *App) *cobra.Command {
	var start clockValue
	var duration string
	var title string
	var notes string
	var interactive bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task",
		Example: strings.TrimSpace(`
  route tasks add --time 07:30 --duration 45 --title "Breakfast"
  route tasks add --interactive
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := mutate.TaskInput{
				Time:     start.s,
				Duration: duration,
				Title:    title,
				Notes:    notes,
			}
			if interactive {
				got, err := promptTask(app)
				if err != nil {
					return writeErr(cmd, err)
				}
				in = got
			}
			b, err := openBoard(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			t, err := b.AddTask(cmd.Context(), in)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": newTaskOut(t),
				"_hints": []string{
					"route tasks add-step " + t.ID + " --name <step>",
					"route tasks add-required " + t.ID + " --name <item> --qty <n>",
				},
			})
		},
	}

	cmd.Flags().Var(&start, "time", "Start time (HH:MM)")
	cmd.Flags().StringVar(&duration, "duration", "30", "Duration in minutes")
	cmd.Flags().StringVar(&title, "title", "", "Task name")
	cmd.Flags().StringVar(&notes, "notes", "", "Notes (Markdown)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Prompt for each field")
	return cmd
}

func promptTask(app *App) (mutate.TaskInput, error) {
	p, closeFn := app.newPrompter()
	defer closeFn()

	f := form.TaskForm()
	res, err := form.Fill(p, f)
	if err != nil {
		return mutate.TaskInput{}, err
	}
	if res.Cancelled {
		return mutate.TaskInput{}, errors.New("cancelled")
	}
	if err := res.Validate(f); err != nil {
		return mutate.TaskInput{}, err
	}
	return res.TaskInput(), nil
}

func newTasksRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <task-id>",
		Short: "Remove a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBoard(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			removed, err := b.RemoveTask(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if !removed {
				return writeErr(cmd, mutate.NotFoundError{Kind: "task", ID: args[0]})
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": args[0], "removed": true}})
		},
	}
}

func newTasksAddStepCmd(app *App) *cobra.Command {
	var name string
	var link string

	cmd := &cobra.Command{
		Use:   "add-step <task-id>",
		Short: "Append a step to a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBoard(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := b.AddStep(cmd.Context(), args[0], name, link); err != nil {
				return writeErr(cmd, err)
			}
			return writeTask(cmd, app, b, args[0])
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Step name")
	cmd.Flags().StringVar(&link, "link", "", "Optional link")
	return cmd
}

func newTasksAddRequiredCmd(app *App) *cobra.Command {
	var name string
	var qty quantityValue
	var unit string

	cmd := &cobra.Command{
		Use:   "add-required <task-id>",
		Short: "Append a required inventory item to a task",
		Long:  "Append a required inventory item to a task. Without --qty the needed quantity is left unspecified.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBoard(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := b.AddRequired(cmd.Context(), args[0], name, qty.String(), unit); err != nil {
				return writeErr(cmd, err)
			}
			return writeTask(cmd, app, b, args[0])
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Inventory item name")
	cmd.Flags().Var(&qty, "qty", "Needed quantity")
	cmd.Flags().StringVar(&unit, "unit", "", "Unit")
	return cmd
}

func newTasksRmEntryCmd(app *App, use, short string, rm func(*board.Board, context.Context, string, int) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <task-id> <index>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parseIndex(args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			b, err := openBoard(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := rm(b, cmd.Context(), args[0], idx); err != nil {
				return writeErr(cmd, err)
			}
			return writeTask(cmd, app, b, args[0])
		},
	}
}

func writeTask(cmd *cobra.Command, app *App, b *board.Board, id string) error {
	t, ok := b.State().FindTask(id)
	if !ok {
		return writeErr(cmd, mutate.NotFoundError{Kind: "task", ID: id})
	}
	return writeOut(cmd, app, map[string]any{"data": newTaskOut(*t)})
}

func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid index %q", s)
	}
	return n, nil
}
