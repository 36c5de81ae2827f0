// Plan inspector: browse a composition plan JSON produced by the planner.
//
// Usage:
//
//	go run ./cmd/demo -plan output/<video-id>.plan.json
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"clipsmith/demo/tui"
)

func main() {
	planPath := flag.String("plan", "", "path to a .plan.json file")
	flag.Parse()

	if *planPath == "" {
		fmt.Fprintln(os.Stderr, "usage: demo -plan output/<video-id>.plan.json")
		os.Exit(2)
	}

	program := tea.NewProgram(tui.NewModel(*planPath))
	if _, err := program.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
