package cli

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"deskfolio/internal/logging"
	"deskfolio/internal/store"
	"deskfolio/internal/web"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string
	var readOnly bool
	var watch bool
	var seed bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the content API",
		Long: strings.TrimSpace(`
Serve the content API over HTTP.

Reads are always open. Writes can be switched off with --read-only or
guarded with --admin-token. /api/events streams a content version that
bumps on every write, including writes from other processes when --watch
is on.
`),
		Example: strings.TrimSpace(`
# Serve the local store on localhost
deskfolio serve --addr 127.0.0.1:5000

# Public, read-only
deskfolio serve --addr :5000 --read-only
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolveDir(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			serveCfg := app.cfg.ServeOrDefault()
			if !cmd.Flags().Changed("addr") && serveCfg.Addr != "" {
				addr = serveCfg.Addr
			}
			if !cmd.Flags().Changed("read-only") && serveCfg.ReadOnly {
				readOnly = true
			}
			listenAddr := strings.TrimSpace(addr)
			if listenAddr == "" {
				return writeErr(cmd, errors.New("serve: missing --addr"))
			}

			log, err := logging.New(logging.Options{Verbose: app.Verbose})
			if err != nil {
				return writeErr(cmd, err)
			}
			defer func() { _ = log.Sync() }()

			if seed {
				res, err := seedDefaults(cmd.Context(), store.Store{Dir: dir})
				if err != nil {
					return writeErr(cmd, err)
				}
				log.Info("seeded", zap.Any("added", res))
			}

			srv, err := web.NewServer(web.ServerConfig{
				Addr:       listenAddr,
				Dir:        dir,
				ReadOnly:   readOnly,
				AdminToken: strings.TrimSpace(app.AdminToken),
				Watch:      watch,
				Log:        log,
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			defer srv.Close()

			ln, err := net.Listen("tcp", listenAddr)
			if err != nil {
				return writeErr(cmd, err)
			}
			actualAddr := ln.Addr().String()
			url := "http://" + actualAddr + "/"

			_ = writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"addr":      actualAddr,
					"url":       url,
					"dir":       dir,
					"readOnly":  readOnly,
					"watch":     watch,
					"startedAt": time.Now().UTC().Format(time.RFC3339Nano),
				},
				"_hints": []string{"deskfolio --api " + url},
			})
			fmt.Fprintf(cmd.ErrOrStderr(), "Deskfolio API running at %s\n", url)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := srv.Serve(ctx, ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return writeErr(cmd, err)
			}
			log.Info("server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:5000", "Bind address (host:port or :port)")
	cmd.Flags().BoolVar(&readOnly, "read-only", false, "Refuse every write with 403")
	cmd.Flags().BoolVar(&watch, "watch", true, "Watch the data directory for writes from other processes")
	cmd.Flags().BoolVar(&seed, "seed", false, "Add the built-in content before serving (idempotent)")
	return cmd
}
