package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"route-cli/internal/board"
	"route-cli/internal/config"
	"route-cli/internal/form"
	"route-cli/internal/format"
	"route-cli/internal/logging"
	"route-cli/internal/store"
	"route-cli/internal/tui"
)

type App struct {
	Dir        string
	ConfigPath string
	Format     string
	PrettyJSON bool
	LogLevel   string

	cfg config.Config
	log *log.Logger

	// newPrompter opens the line prompter used by `tasks add --interactive`.
	newPrompter func() (form.Prompter, func() error)
	// copyFn replaces the system clipboard in tests.
	copyFn func(string) error
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(&App{})
}

func newRootCmd(app *App) *cobra.Command {
	if app.newPrompter == nil {
		app.newPrompter = func() (form.Prompter, func() error) {
			l := form.NewLiner()
			return l, l.Close
		}
	}

	cmd := &cobra.Command{
		Use:          "route",
		Short:        "Daily route planner: timetable, inventory and what each task needs",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive board
  route

  # Scriptable commands
  route tasks list
  route inventory set Eggs --qty 6 --unit pcs
  route inspect task-0a1b2c3d4e5f 0

  # Direct task lookup (shortcut for: route tasks show <task-id>)
  route task-0a1b2c3d4e5f
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runTUI(cmd.Context(), app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.resolve(cmd)
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr(config.EnvDir, ""), "Path to the data dir holding route.sqlite")
	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", envOr(config.EnvConfig, ""), "Path to route.toml")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr(config.EnvFormat, "json"), "Output format (json|edn|yaml)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", envOr(config.EnvLogLevel, ""), "Log level (debug|info|warn|error)")

	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newInventoryCmd(app))
	cmd.AddCommand(newInspectCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newResetCmd(app))
	cmd.AddCommand(newPublishCmd(app))
	cmd.AddCommand(newStatusCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

// resolve layers flags that were set explicitly over the loaded config.
func (app *App) resolve(cmd *cobra.Command) error {
	cfg, err := config.Load(app.ConfigPath)
	if err != nil {
		return writeErr(cmd, err)
	}
	flags := cmd.Flags()
	if flags.Changed("dir") {
		cfg.Dir = strings.TrimSpace(app.Dir)
	}
	if flags.Changed("format") {
		cfg.Format = strings.TrimSpace(app.Format)
	}
	if flags.Changed("pretty") {
		cfg.Pretty = app.PrettyJSON
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = strings.TrimSpace(app.LogLevel)
	}
	if err := cfg.Validate(); err != nil {
		return writeErr(cmd, err)
	}
	if cfg.Dir == "" {
		d, err := store.DefaultDir()
		if err != nil {
			return writeErr(cmd, fmt.Errorf("resolve data dir: %w", err))
		}
		cfg.Dir = d
	}

	app.cfg = cfg
	app.Dir = cfg.Dir
	app.Format = cfg.Format
	app.PrettyJSON = cfg.Pretty
	app.LogLevel = cfg.LogLevel
	app.log = logging.New(cmd.ErrOrStderr(), app.logOptions())
	return nil
}

func (app *App) logOptions() logging.Options {
	opts := logging.DefaultOptions()
	if app.cfg.LogLevel != "" {
		opts.Level = app.cfg.LogLevel
	}
	if app.cfg.LogFormat != "" {
		opts.Format = app.cfg.LogFormat
	}
	return opts
}

func runTUI(ctx context.Context, app *App) error {
	logger, closer, err := logging.OpenFile(app.Dir, app.logOptions())
	if err != nil {
		return err
	}
	defer closer.Close()

	b, err := board.Open(ctx, store.Store{Dir: app.Dir}, logger)
	if err != nil {
		return err
	}
	return tui.Run(ctx, b, tui.Options{
		Clipboard: app.cfg.Clipboard,
		Glyphs:    app.cfg.Glyphs,
		Logger:    logger,
	})
}

func openBoard(cmd *cobra.Command, app *App) (*board.Board, error) {
	return board.Open(cmd.Context(), store.Store{Dir: app.Dir}, app.log)
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
