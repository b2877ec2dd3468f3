package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"deskfolio/internal/content"
	"deskfolio/internal/format"
	"deskfolio/internal/logging"
	"deskfolio/internal/store"
	"deskfolio/internal/tui"
)

type App struct {
	Dir        string
	APIURL     string
	AdminToken string
	PrettyJSON bool
	Format     string
	Verbose    bool

	// cfg is loaded once in PersistentPreRunE.
	cfg *store.GlobalConfig
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "deskfolio",
		Short:        "Portfolio desktop in the terminal, plus its content API",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Open the desktop
  deskfolio

  # Serve the content API other desktops can point --api at
  deskfolio serve --addr 127.0.0.1:5000

  # Scriptable content access
  deskfolio content projects list
  deskfolio content add-photo --title "Lake" --url https://example.com/lake.png --tags places
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => desktop.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := store.LoadConfig()
		if err != nil {
			return writeErr(cmd, fmt.Errorf("load config: %w", err))
		}
		app.cfg = cfg
		if strings.TrimSpace(app.APIURL) == "" {
			app.APIURL = strings.TrimSpace(cfg.APIURL)
		}
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("DESKFOLIO_DIR", ""), "Data directory (default: nearest .deskfolio, then ~/.deskfolio/data)")
	cmd.PersistentFlags().StringVar(&app.APIURL, "api", envOr("DESKFOLIO_API", ""), "Content API base URL; empty reads the local store")
	cmd.PersistentFlags().StringVar(&app.AdminToken, "admin-token", envOr("DESKFOLIO_ADMIN_TOKEN", ""), "Bearer token sent on writes through --api")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("DESKFOLIO_FORMAT", "json"), "Output format (json|yaml)")
	cmd.PersistentFlags().BoolVar(&app.Verbose, "verbose", false, "Debug logging")

	cmd.AddCommand(newServeCmd(app))
	cmd.AddCommand(newSeedCmd(app))
	cmd.AddCommand(newContentCmd(app))
	cmd.AddCommand(newWindowsCmd(app))
	cmd.AddCommand(newResetCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func runTUI(app *App) error {
	dir, err := resolveDir(app)
	if err != nil {
		return err
	}
	st := store.Store{Dir: dir}
	if err := st.Ensure(); err != nil {
		return err
	}
	log, err := logging.New(logging.Options{Verbose: app.Verbose, File: st.LogPath()})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	backend, err := backendFor(app, dir)
	if err != nil {
		return err
	}
	log.Info("desktop starting", zap.String("dir", dir), zap.String("api", app.APIURL))
	return tui.Run(tui.Options{
		Dir:     dir,
		Backend: backend,
		Log:     log,
		Config:  app.cfg.TUIOrDefault(),
	})
}

// resolveDir picks the data directory: --dir, then DESKFOLIO_DIR (already
// folded into the flag default), then store.DefaultDir.
func resolveDir(app *App) (string, error) {
	if dir := strings.TrimSpace(app.Dir); dir != "" {
		return dir, nil
	}
	dir, err := store.DefaultDir()
	if err != nil {
		return "", err
	}
	app.Dir = dir
	return dir, nil
}

// backendFor reads and writes through the API when one is configured, and
// the local store otherwise.
func backendFor(app *App, dir string) (content.Backend, error) {
	if api := strings.TrimSpace(app.APIURL); api != "" {
		src := content.NewHTTPSource(api)
		src.AdminToken = strings.TrimSpace(app.AdminToken)
		return src, nil
	}
	src := content.NewStoreSource(dir)
	if err := src.Ensure(); err != nil {
		return nil, err
	}
	return src, nil
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
