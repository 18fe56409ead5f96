package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/capmap-hq/capmap/core/capability"
)

// runGenerate asks the configured deployment for a process breakdown of one
// capability.
func runGenerate(args []string) int {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)

	var (
		seedPath        string
		withDescription bool
		jsonFlag        bool
	)
	fs.StringVar(&seedPath, "seed", "", "capability seed file (default: configured or built-in framework)")
	fs.BoolVar(&withDescription, "with-description", false, "include the stored capability description as a context section")
	fs.BoolVar(&jsonFlag, "json", false, "output the full result as JSON")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: capmap generate <capability> [flags]")
		return 2
	}
	query := strings.Join(fs.Args(), " ")

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}
	if seedPath == "" {
		seedPath = cfg.Server.Seed
	}

	ctx := context.Background()

	var sections []string
	if withDescription {
		store, err := capability.LoadSeedFile(seedPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 2
		}
		rec, err := store.FetchByName(ctx, query)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %q not in the knowledge base, generating without description\n", query)
		} else if rec.Description != "" {
			sections = append(sections, rec.Description)
		}
	}

	client := newGenerator(cfg)
	result, err := client.Generate(ctx, query, sections...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}

	if jsonFlag {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: encoding result: %v\n", err)
			return 2
		}
		fmt.Println(string(data))
		return 0
	}

	fmt.Println(result.Content)
	fmt.Printf("\n[tokens] context: %d, response: %d\n", result.ContextTokens, result.ResponseTokens)
	return 0
}
