package tui

import tea "github.com/charmbracelet/bubbletea"

// Run starts the editor program. Mouse motion reporting is required for
// drag gestures, so all-motion mode is always enabled.
func Run(e *Editor) error {
	p := tea.NewProgram(e, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
