package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the desktop until the user quits.
func Run(opts Options) error {
	applyColorProfilePreference()
	applyThemePreference(opts.Config.Theme)
	applyGlyphPreference()
	mdConfiguredStyle = opts.Config.MarkdownStyle

	m := newDesktop(opts)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
