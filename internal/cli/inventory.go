package cli

import (
	"github.com/spf13/cobra"

	"route-cli/internal/board"
	"route-cli/internal/model"
	"route-cli/internal/mutate"
	"route-cli/internal/view"
)

type itemOut struct {
	Name   string  `json:"name"`
	Qty    float64 `json:"qty"`
	Unit   string  `json:"unit"`
	UsedBy int     `json:"usedBy"`
}

func newItemOut(b *board.Board, key string) itemOut {
	it := b.State().Inventory[key]
	return itemOut{Name: key, Qty: it.Qty, Unit: it.Unit, UsedBy: len(b.State().TasksReferencing(key))}
}

func newInventoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "inventory",
		Aliases: []string{"inv"},
		Short:   "Inventory items and quantities on hand",
	}

	cmd.AddCommand(newInventoryListCmd(app))
	cmd.AddCommand(newInventorySetCmd(app))
	cmd.AddCommand(newInventoryConsumeCmd(app))
	cmd.AddCommand(newInventoryAdjustCmd(app))
	cmd.AddCommand(newInventoryRmCmd(app))
	cmd.AddCommand(newInventoryUsesCmd(app))

	return cmd
}

func newInventoryListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List inventory items by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBoard(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			rows := view.Inventory(b.State())
			out := make([]itemOut, 0, len(rows))
			for _, r := range rows {
				out = append(out, itemOut{Name: r.Name, Qty: r.Qty, Unit: r.Unit, UsedBy: r.UsedBy})
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}
}

func newInventorySetCmd(app *App) *cobra.Command {
	var qty quantityValue
	var unit string

	cmd := &cobra.Command{
		Use:   "set <name>",
		Short: "Create or replace an inventory item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBoard(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			key, err := b.UpsertItem(cmd.Context(), args[0], qty.String(), unit)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": newItemOut(b, key)})
		},
	}
	cmd.Flags().Var(&qty, "qty", "Quantity on hand (default 0)")
	cmd.Flags().StringVar(&unit, "unit", "", "Unit")
	return cmd
}

func newInventoryConsumeCmd(app *App) *cobra.Command {
	var amount quantityValue
	var unit string

	cmd := &cobra.Command{
		Use:   "consume <name>",
		Short: "Subtract an amount from an item, never below zero",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !amount.q.Set {
				return writeErr(cmd, mutate.ValidationError{Field: "amount", Msg: "required"})
			}
			b, err := openBoard(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			key, _, err := b.ConsumeItem(cmd.Context(), args[0], amount.q.Value, unit)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": newItemOut(b, key)})
		},
	}
	cmd.Flags().Var(&amount, "amount", "Amount to consume")
	cmd.Flags().StringVar(&unit, "unit", "", "Unit for an item created by this call")
	return cmd
}

func newInventoryAdjustCmd(app *App) *cobra.Command {
	var by float64

	cmd := &cobra.Command{
		Use:   "adjust <name>",
		Short: "Add a delta (may be negative) to an item's quantity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBoard(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			key, _, err := b.AdjustItem(cmd.Context(), args[0], by)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": newItemOut(b, key)})
		},
	}
	cmd.Flags().Float64Var(&by, "by", 1, "Delta to add")
	return cmd
}

func newInventoryRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <name>",
		Short: "Remove an inventory item",
		Long:  "Remove an inventory item. Tasks that require it keep their entries and show 0 on hand.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBoard(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			name := model.NormalizeName(args[0])
			removed, err := b.RemoveItem(cmd.Context(), name)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !removed {
				return writeErr(cmd, mutate.NotFoundError{Kind: "item", ID: name})
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"name": name, "removed": true}})
		},
	}
}

func newInventoryUsesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "uses <name>",
		Short: "List the tasks that require an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBoard(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			tasks := b.State().TasksReferencing(args[0])
			out := make([]taskOut, 0, len(tasks))
			for _, t := range tasks {
				out = append(out, newTaskOut(t))
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}
}
