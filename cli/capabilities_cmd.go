package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
)

// runCapabilities lists the capability knowledge base.
func runCapabilities(args []string) int {
	fs := flag.NewFlagSet("capabilities", flag.ContinueOnError)

	var (
		seedPath string
		jsonFlag bool
	)
	fs.StringVar(&seedPath, "seed", "", "capability seed file (default: configured or built-in framework)")
	fs.BoolVar(&jsonFlag, "json", false, "output as JSON")

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

	if jsonFlag {
		data, err := json.MarshalIndent(all, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: encoding capabilities: %v\n", err)
			return 2
		}
		fmt.Println(string(data))
		return 0
	}

	for _, c := range all {
		subprocesses := 0
		for _, p := range c.Processes {
			subprocesses += len(p.Subprocesses)
		}
		fmt.Printf("%s — %d core processes, %d subprocesses\n", c.Name, len(c.Processes), subprocesses)
		for _, p := range c.Processes {
			fmt.Printf("  %s\n", p.Name)
			for _, sp := range p.Subprocesses {
				fmt.Printf("    - %s (%s)\n", sp.Name, sp.LifecyclePhase)
			}
		}
	}
	return 0
}
