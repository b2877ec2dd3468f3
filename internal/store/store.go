package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	dirName        = ".deskfolio"
	sqliteFileName = "content.sqlite"
	logFileName    = "deskfolio.log"
)

// ErrNotFound is returned when a mutation targets a row that does not exist.
var ErrNotFound = errors.New("not found")

// nowFunc is swapped in tests so default dates are stable.
var nowFunc = time.Now

// Store is a data directory holding the content database, the desk state
// file and the TUI log.
type Store struct {
	Dir string
}

// DiscoverDir walks up from start looking for a .deskfolio directory.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, dirName)
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// DefaultDir resolves the data directory: a .deskfolio directory found from
// the working directory upward, then the configured data dir, then
// ~/.deskfolio/data.
func DefaultDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	cfg, err := LoadConfig()
	if err == nil && strings.TrimSpace(cfg.DataDir) != "" {
		return cfg.DataDir, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "data"), nil
}

func (s Store) Ensure() error {
	if strings.TrimSpace(s.Dir) == "" {
		return errors.New("store: missing dir")
	}
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) SQLitePath() string {
	return filepath.Join(s.Dir, sqliteFileName)
}

func (s Store) LogPath() string {
	return filepath.Join(s.Dir, logFileName)
}
