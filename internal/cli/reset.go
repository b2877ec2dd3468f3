package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newResetCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Replace all content with the built-in defaults",
		Long: strings.TrimSpace(`
Drop every project, post, photo, social profile and tech stack category and
reseed the built-in content. Ids restart at 1. This cannot be undone.
`),
		Example: "deskfolio reset --yes",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return writeErr(cmd, errUsage("reset: this deletes all content; pass --yes to confirm"))
			}
			b, err := appBackend(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := b.Reset(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"reset": true},
			})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the reset")
	return cmd
}
