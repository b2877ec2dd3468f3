package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"deskfolio/internal/store"
)

func newSeedCmd(app *App) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Add the built-in (or a YAML file's) content to the local store",
		Long: strings.TrimSpace(`
Insert content rows that are missing from the local store.

Projects match by name, posts and photos by title, socials by text; tech
stack categories are replaced. Running seed twice adds nothing the second
time.
`),
		Example: strings.TrimSpace(`
deskfolio seed
deskfolio --dir ./.deskfolio seed --file content.yaml
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolveDir(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			st := store.Store{Dir: dir}

			var res store.SeedResult
			if strings.TrimSpace(file) == "" {
				res, err = seedDefaults(cmd.Context(), st)
			} else {
				res, err = seedFile(cmd.Context(), st, file)
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": res})
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "YAML seed file (default: built-in content)")
	return cmd
}

func seedDefaults(ctx context.Context, st store.Store) (store.SeedResult, error) {
	seed, err := store.DefaultSeed()
	if err != nil {
		return store.SeedResult{}, err
	}
	res, err := st.Seed(ctx, seed)
	if err != nil {
		return res, fmt.Errorf("seed: %w", err)
	}
	return res, nil
}

func seedFile(ctx context.Context, st store.Store, path string) (store.SeedResult, error) {
	seed, err := store.LoadSeedFile(path)
	if err != nil {
		return store.SeedResult{}, err
	}
	res, err := st.Seed(ctx, seed)
	if err != nil {
		return res, fmt.Errorf("seed %s: %w", path, err)
	}
	return res, nil
}
