package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"route-cli/internal/mutate"
	"route-cli/internal/store"
	"route-cli/internal/view"
)

type requirementOut struct {
	TaskID    string `json:"taskId"`
	TaskTitle string `json:"taskTitle"`
	Index     int    `json:"index"`
	store.Availability
	NeedText string `json:"needText"`
	HaveText string `json:"haveText"`
	Status   string `json:"status"`
}

func newInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <task-id> <required-index>",
		Short: "Compare what a task requires with what is on hand",
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
			if _, ok := b.State().FindTask(args[0]); !ok {
				return writeErr(cmd, mutate.NotFoundError{Kind: "task", ID: args[0]})
			}
			ins := view.ProjectInspector(b.State(), view.RequirementSelection(args[0], idx))
			if ins.Requirement == nil {
				return writeErr(cmd, mutate.NotFoundError{Kind: "required item", ID: fmt.Sprintf("%s[%d]", args[0], idx)})
			}
			d := ins.Requirement
			return writeOut(cmd, app, map[string]any{"data": requirementOut{
				TaskID:       d.Task.ID,
				TaskTitle:    d.Task.Title,
				Index:        d.Index,
				Availability: d.Avail,
				NeedText:     d.NeedText,
				HaveText:     d.HaveText,
				Status:       d.Status,
			}})
		},
	}
}
