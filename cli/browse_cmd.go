package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/capmap-hq/capmap/cli/tui"
)

// runBrowse opens the interactive capability browser.
func runBrowse(args []string) int {
	fs := flag.NewFlagSet("browse", flag.ContinueOnError)

	var seedPath string
	fs.StringVar(&seedPath, "seed", "", "capability seed file (default: configured or built-in framework)")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	store, err := loadStore(seedPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}
	all, err := store.FetchAll(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}

	p := tea.NewProgram(tui.New(all), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: TUI: %v\n", err)
		return 2
	}
	return 0
}
