package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"route-cli/internal/config"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the config file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the resolved settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := app.cfg
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"path":      c.Path,
				"dir":       c.Dir,
				"format":    c.Format,
				"pretty":    c.Pretty,
				"logLevel":  c.LogLevel,
				"logFormat": c.LogFormat,
				"clipboard": c.Clipboard,
				"glyphs":    c.Glyphs,
			}})
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a commented starter config",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultPath()
			if len(args) == 1 {
				path = strings.TrimSpace(args[0])
			}
			if path == "" {
				return writeErr(cmd, errors.New("no config path; pass one explicitly"))
			}
			if _, err := os.Stat(path); err == nil && !force {
				return writeErr(cmd, fmt.Errorf("refusing to overwrite existing file: %s", path))
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return writeErr(cmd, err)
			}
			if err := atomic.WriteFile(path, strings.NewReader(config.Example)); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"written": path}})
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	cmd.AddCommand(initCmd)

	return cmd
}
