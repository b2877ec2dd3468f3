package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestSaveConfig_ConcurrentWriters_DoesNotCorruptConfig(t *testing.T) {
	cfgDir := t.TempDir()
	t.Setenv("DESKFOLIO_CONFIG_DIR", cfgDir)

	if err := SaveConfig(&GlobalConfig{APIURL: "http://localhost:3000"}); err != nil {
		t.Fatalf("SaveConfig(seed): %v", err)
	}

	const n = 32
	errCh := make(chan error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cfg, err := LoadConfig()
			if err != nil {
				errCh <- err
				return
			}
			cfg.DataDir = fmt.Sprintf("/tmp/data-%d", i)
			cfg.TUI = &TUIConfig{MinWidth: 40 + i}
			if err := SaveConfig(cfg); err != nil {
				errCh <- err
			}
		}(i)
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Fatalf("concurrent writer: %v", err)
	}

	b, err := os.ReadFile(filepath.Join(cfgDir, "config.json"))
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	var got GlobalConfig
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("config is not valid json after concurrent writes: %v\n%s", err, b)
	}
	if got.APIURL != "http://localhost:3000" {
		t.Fatalf("apiUrl lost: %+v", got)
	}
	if _, err := os.Stat(filepath.Join(cfgDir, "config.json.bak")); err != nil {
		t.Fatalf("expected backup copy: %v", err)
	}
}

func TestLoadConfig_MissingFileIsEmpty(t *testing.T) {
	t.Setenv("DESKFOLIO_CONFIG_DIR", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.APIURL != "" || cfg.TUI != nil {
		t.Fatalf("expected empty config; got %+v", cfg)
	}
	if tui := cfg.TUIOrDefault(); tui.MinWidth != 0 {
		t.Fatalf("TUIOrDefault: %+v", tui)
	}
}

func TestDefaultDir_DiscoversDotDir(t *testing.T) {
	root := t.TempDir()
	want := filepath.Join(root, ".deskfolio")
	if err := os.MkdirAll(want, 0o755); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	got, ok := DiscoverDir(nested)
	if !ok || got != want {
		t.Fatalf("DiscoverDir: got %q,%v want %q", got, ok, want)
	}
}
