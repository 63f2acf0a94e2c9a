package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"route-cli/internal/publish"
)

func newPublishCmd(app *App) *cobra.Command {
	var toDir string
	var title string
	var html bool
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Write a read-only Markdown snapshot of the board (not canonical)",
		Example: strings.TrimSpace(`
  route publish --to ./site
  route publish --to ./site --html --overwrite
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBoard(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := publish.WriteBoard(b.State(), toDir, publish.WriteOptions{
				Title:     title,
				HTML:      html,
				Overwrite: overwrite,
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": res,
				"_hints": []string{
					"git -C " + strings.TrimSpace(toDir) + " status",
				},
			})
		},
	}
	cmd.Flags().StringVar(&toDir, "to", "", "Output directory")
	cmd.Flags().StringVar(&title, "title", "", "Page title (default: Route)")
	cmd.Flags().BoolVar(&html, "html", false, "Also render .html pages")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing files")
	return cmd
}
