package cli

import (
	"time"

	"github.com/spf13/cobra"

	"route-cli/internal/store"
)

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show where state lives and what it holds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := store.Store{Dir: app.Dir}
			res, err := s.Load(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			updated, err := s.SlotUpdatedAt(cmd.Context(), store.StateKey)
			if err != nil {
				return writeErr(cmd, err)
			}
			data := map[string]any{
				"dir":    app.Dir,
				"config": app.cfg.Path,
				"seeded": res.Seeded,
				"tasks":  len(res.State.Schedule),
				"items":  len(res.State.Inventory),
			}
			if res.Seeded {
				data["seedReason"] = res.Reason
			}
			if !updated.IsZero() {
				data["updatedAt"] = updated.UTC().Format(time.RFC3339)
			}
			return writeOut(cmd, app, map[string]any{"data": data})
		},
	}
}
