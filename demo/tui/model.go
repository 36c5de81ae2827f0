// Package tui is an interactive inspector for composition plans: it shows the
// planned timeline entry by entry so matching, timing and effect decisions can
// be reviewed before a render.
package tui

import (
	"encoding/json"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"clipsmith/types"
)

// Model is the inspector state: one loaded plan and a cursor over its entries.
type Model struct {
	Plan     *types.CompositionPlan
	Cursor   int
	PlanPath string
	Err      error
}

// NewModel creates a model for the plan at path. Loading happens in Init so
// startup failures surface inside the TUI instead of on a half-drawn screen.
func NewModel(path string) Model {
	return Model{PlanPath: path}
}

// planLoadedMsg carries the result of loading the plan file.
type planLoadedMsg struct {
	plan *types.CompositionPlan
	err  error
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return loadPlan(m.PlanPath)
}

func loadPlan(path string) tea.Cmd {
	return func() tea.Msg {
		raw, err := os.ReadFile(path)
		if err != nil {
			return planLoadedMsg{err: fmt.Errorf("failed to read plan: %w", err)}
		}
		var plan types.CompositionPlan
		if err := json.Unmarshal(raw, &plan); err != nil {
			return planLoadedMsg{err: fmt.Errorf("failed to parse plan: %w", err)}
		}
		return planLoadedMsg{plan: &plan}
	}
}
