package main

import (
	"context"
	"os"
	"os/signal"
	"strings"

	"route-cli/internal/cli"
	"route-cli/internal/model"
)

// Persistent flags that take a separate value token.
var valueFlags = map[string]bool{
	"--dir":       true,
	"--config":    true,
	"--format":    true,
	"--log-level": true,
}

// rewriteDirectTaskLookupArgs makes `route <task-id>` behave like
// `route tasks show <task-id>`. Cobra would read the id as a subcommand, so
// argv is rewritten before parsing. Persistent flags may come first, so the
// first positional token is located rather than assuming argv[1].
func rewriteDirectTaskLookupArgs(argv []string) []string {
	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		switch {
		case a == "":
			continue
		case a == "--":
			if i+1 < len(argv) && model.IsTaskID(argv[i+1]) {
				return insertShow(argv, i+1)
			}
			return argv
		case strings.HasPrefix(a, "-"):
			// Unknown flags are skipped without consuming a value so the id is never eaten.
			if !strings.Contains(a, "=") && valueFlags[a] {
				i++
			}
			continue
		case model.IsTaskID(a):
			return insertShow(argv, i)
		default:
			return argv
		}
	}
	return argv
}

func insertShow(argv []string, at int) []string {
	out := make([]string, 0, len(argv)+2)
	out = append(out, argv[:at]...)
	out = append(out, "tasks", "show")
	return append(out, argv[at:]...)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := cli.NewRootCmd()
	cmd.SetArgs(rewriteDirectTaskLookupArgs(os.Args)[1:])
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
