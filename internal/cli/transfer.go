package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var copyOut bool
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the full state as JSON (the import format)",
		Example: strings.TrimSpace(`
  route export > backup.json
  route export --out backup.json
  route export --copy
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBoard(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			text, err := b.Export()
			if err != nil {
				return writeErr(cmd, err)
			}

			outPath = strings.TrimSpace(outPath)
			if outPath != "" {
				if err := atomic.WriteFile(outPath, strings.NewReader(text+"\n")); err != nil {
					return writeErr(cmd, fmt.Errorf("write %s: %w", outPath, err))
				}
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"written": outPath, "bytes": len(text) + 1}})
			}
			if copyOut {
				err := app.copyText(text)
				if err == nil {
					return writeOut(cmd, app, map[string]any{"data": map[string]any{"copied": true, "bytes": len(text)}})
				}
				app.log.Warn("clipboard unavailable, printing export instead", "err", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}
	cmd.Flags().BoolVar(&copyOut, "copy", false, "Copy to the clipboard (falls back to stdout)")
	cmd.Flags().StringVar(&outPath, "out", "", "Write to a file instead of stdout")
	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace the whole state with an exported JSON document",
		Long:  "Replace the whole state with an exported JSON document read from --file or stdin. Invalid input is rejected and nothing changes.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var raw []byte
			var err error
			if f := strings.TrimSpace(file); f != "" && f != "-" {
				raw, err = os.ReadFile(f)
			} else {
				raw, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			b, err := openBoard(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := b.Import(cmd.Context(), raw); err != nil {
				return writeErr(cmd, err)
			}
			st := b.State()
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"tasks": len(st.Schedule),
				"items": len(st.Inventory),
			}})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Read from a file (default: stdin)")
	return cmd
}

func newResetCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Discard everything and reload the demo data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return writeErr(cmd, errors.New("refusing to reset without --yes"))
			}
			b, err := openBoard(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := b.Reset(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			st := b.State()
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"reset": true,
				"tasks": len(st.Schedule),
				"items": len(st.Inventory),
			}})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the reset")
	return cmd
}

func (app *App) copyText(text string) error {
	if app.copyFn != nil {
		return app.copyFn(text)
	}
	return clipboard.WriteAll(text)
}
