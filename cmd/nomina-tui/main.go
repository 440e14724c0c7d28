package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nominamx/nomina/internal/tui"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: nomina-tui <input-file> [regulatory-file]")
		os.Exit(1)
	}
	inputPath := os.Args[1]
	regulatoryPath := ""
	if len(os.Args) > 2 {
		regulatoryPath = os.Args[2]
	}

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		fmt.Printf("Error: input file not found: %s\n", inputPath)
		os.Exit(1)
	}

	model := tui.NewModel(inputPath, regulatoryPath)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
