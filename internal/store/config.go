package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

type GlobalConfig struct {
	// APIURL is the content API the desktop reads from. Empty means read the
	// local SQLite store directly.
	APIURL string `json:"apiUrl,omitempty"`

	// DataDir overrides ~/.deskfolio/data when no .deskfolio directory is found.
	DataDir string `json:"dataDir,omitempty"`

	Serve *ServeConfig `json:"serve,omitempty"`

	// TUI holds optional user preferences for the desktop.
	TUI *TUIConfig `json:"tui,omitempty"`
}

type ServeConfig struct {
	Addr     string `json:"addr,omitempty"`
	ReadOnly bool   `json:"readOnly,omitempty"`
}

type TUIConfig struct {
	// Theme is one of: auto|dark|light.
	Theme string `json:"theme,omitempty"`

	// MarkdownStyle is a glamour standard style name ("dark", "light", "notty").
	MarkdownStyle string `json:"markdownStyle,omitempty"`

	// MinWidth/MinHeight floor interactive resizes, in cells.
	MinWidth  int `json:"minWidth,omitempty"`
	MinHeight int `json:"minHeight,omitempty"`

	// SplashMs is the minimum time the splash screen stays up.
	SplashMs int `json:"splashMs,omitempty"`

	// ResumeURL is where the Resume window's download points.
	ResumeURL string `json:"resumeUrl,omitempty"`
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.deskfolio).
	if v := strings.TrimSpace(os.Getenv("DESKFOLIO_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".deskfolio"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

func LoadConfig() (*GlobalConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &GlobalConfig{}, nil
		}
		return nil, err
	}
	var cfg GlobalConfig
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func SaveConfig(cfg *GlobalConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	// Keep the previous config around; failures here never block the write.
	if prev, err := os.ReadFile(path); err == nil && len(prev) > 0 {
		_ = atomicWriteFile(dir, "config.json.bak.*.tmp", path+".bak", prev, 0o644)
	}
	return atomicWriteFile(dir, "config.json.*.tmp", path, b, 0o600)
}

// TUIOrDefault never returns nil.
func (c *GlobalConfig) TUIOrDefault() TUIConfig {
	if c == nil || c.TUI == nil {
		return TUIConfig{}
	}
	return *c.TUI
}

func (c *GlobalConfig) ServeOrDefault() ServeConfig {
	if c == nil || c.Serve == nil {
		return ServeConfig{}
	}
	return *c.Serve
}
