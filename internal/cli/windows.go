package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"deskfolio/internal/store"
	"deskfolio/internal/wm"
)

type windowRow struct {
	Key         string   `json:"key" yaml:"key"`
	Title       string   `json:"title" yaml:"title"`
	IsOpen      bool     `json:"isOpen" yaml:"isOpen"`
	IsMinimized bool     `json:"isMinimized" yaml:"isMinimized"`
	IsMaximized bool     `json:"isMaximized" yaml:"isMaximized"`
	ZIndex      int      `json:"zIndex" yaml:"zIndex"`
	Width       int      `json:"width" yaml:"width"`
	Height      int      `json:"height" yaml:"height"`
	Home        wm.Point `json:"home" yaml:"home"`
}

func newWindowsCmd(app *App) *cobra.Command {
	var forget bool

	cmd := &cobra.Command{
		Use:   "windows",
		Short: "Show the window registry the desktop will restore",
		Long: strings.TrimSpace(`
Print every window in the catalog with the state saved when the desktop
last exited. --forget drops the saved state so the next start uses the
catalog defaults.
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolveDir(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			st := store.Store{Dir: dir}

			if forget {
				if err := st.SaveDeskState(&store.DeskState{}); err != nil {
					return writeErr(cmd, err)
				}
			}
			desk, err := st.LoadDeskState()
			if err != nil {
				return writeErr(cmd, err)
			}

			reg := wm.NewStore(wm.DefaultCatalog())
			if desk.Windows != nil {
				reg.Load(*desk.Windows)
			}
			rows := make([]windowRow, 0, len(wm.Keys()))
			for _, w := range reg.Windows() {
				rows = append(rows, windowRow{
					Key:         w.Key.String(),
					Title:       w.Key.Title(),
					IsOpen:      w.IsOpen,
					IsMinimized: w.IsMinimized,
					IsMaximized: w.IsMaximized,
					ZIndex:      w.ZIndex,
					Width:       w.Width,
					Height:      w.Height,
					Home:        w.Home,
				})
			}

			var top string
			if w, ok := reg.Top(); ok {
				top = w.Key.String()
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"windows":          rows,
					"top":              top,
					"nextZ":            reg.NextZ(),
					"finderLocationId": desk.FinderLocationID,
					"photosAlbum":      desk.PhotosAlbum,
				},
			})
		},
	}

	cmd.Flags().BoolVar(&forget, "forget", false, "Drop the saved layout first")
	return cmd
}
