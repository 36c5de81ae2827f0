package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case planLoadedMsg:
		if msg.err != nil {
			m.Err = msg.err
			return m, nil
		}
		m.Plan = msg.plan
		m.Cursor = 0
		return m, nil
	}
	return m, nil
}

// handleKeyPress processes keyboard input.
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Plan != nil && m.Cursor < len(m.Plan.Entries)-1 {
			m.Cursor++
		}
	case "g":
		m.Cursor = 0
	case "G":
		if m.Plan != nil && len(m.Plan.Entries) > 0 {
			m.Cursor = len(m.Plan.Entries) - 1
		}
	}
	return m, nil
}
