package tui

import (
	"errors"
	"io"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// copyToClipboard is swapped out in tests.
var copyToClipboard = func(s string) error {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	if clipboard.Unsupported {
		return errors.New("no clipboard utility found")
	}
	return clipboard.WriteAll(s)
}

type linkOpenedMsg struct {
	url    string
	copied bool
	err    error
}

// openLinkCmd copies u to the clipboard and hands it to the system browser.
// Either succeeding counts as opened.
func openLinkCmd(u string) tea.Cmd {
	u = strings.TrimSpace(u)
	if u == "" {
		return nil
	}
	return func() tea.Msg {
		copyErr := copyToClipboard(u)
		openErr := openURL(u)
		msg := linkOpenedMsg{url: u, copied: copyErr == nil}
		if copyErr != nil && openErr != nil {
			msg.err = openErr
		}
		return msg
	}
}

// openURL is swapped out in tests.
var openURL = func(u string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", u)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", u)
	default:
		cmd = exec.Command("xdg-open", u)
	}
	// Keep the browser's output off the alt screen.
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Wait()
}
