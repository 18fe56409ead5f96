package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/capmap-hq/capmap/server"
)

// runServe starts the MCP server on stdio.
func runServe(args []string) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)

	var seedPath string
	fs.StringVar(&seedPath, "seed", "", "capability seed file (default: configured or built-in framework)")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}
	if seedPath == "" {
		seedPath = cfg.Server.Seed
	}

	store, err := loadStore(seedPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}

	srv := server.NewMCP(version, store, newGenerator(cfg))
	if err := srv.Serve(); err != nil {
		fmt.Fprintf(os.Stderr, "error: MCP server: %v\n", err)
		return 2
	}
	return 0
}
