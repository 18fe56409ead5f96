// Package main is the entry point for the capmap CLI.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/capmap-hq/capmap/core"
	"github.com/capmap-hq/capmap/core/capability"
	"github.com/capmap-hq/capmap/genai"
	"github.com/capmap-hq/capmap/secrets"
	"github.com/capmap-hq/capmap/tokens"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the CLI and returns the exit code. 0 = success, 2 = error.
func run(args []string) int {
	fs := flag.NewFlagSet("capmap", flag.ContinueOnError)

	var versionFlag bool
	fs.BoolVar(&versionFlag, "version", false, "print version and exit")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: capmap <command> [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  generate <capability>  Generate a process breakdown via the LLM\n")
		fmt.Fprintf(os.Stderr, "  capabilities           List the capability knowledge base\n")
		fmt.Fprintf(os.Stderr, "  browse                 Browse capabilities in an interactive TUI\n")
		fmt.Fprintf(os.Stderr, "  serve                  Start MCP server on stdio\n")
		fmt.Fprintf(os.Stderr, "  api                    Start the HTTP JSON API\n")
		fmt.Fprintf(os.Stderr, "  version                Print version and exit\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if versionFlag {
		printVersion()
		return 0
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		fs.Usage()
		return 2
	}

	switch command := remaining[0]; command {
	case "generate":
		return runGenerate(remaining[1:])
	case "capabilities":
		return runCapabilities(remaining[1:])
	case "browse":
		return runBrowse(remaining[1:])
	case "serve":
		return runServe(remaining[1:])
	case "api":
		return runAPI(remaining[1:])
	case "version":
		printVersion()
		return 0
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", command)
		fs.Usage()
		return 2
	}
}

func printVersion() {
	fmt.Printf("capmap %s (commit: %s, built: %s)\n", version, commit, date)
}

// loadConfig reads .capmap.yaml from the working directory.
func loadConfig() (*core.Config, error) {
	return core.LoadConfig(".")
}

// loadStore loads the capability knowledge base from the given seed file,
// falling back to the configured path and then the built-in framework.
func loadStore(seedPath string) (*capability.MemoryStore, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if seedPath == "" {
		seedPath = cfg.Server.Seed
	}
	return capability.LoadSeedFile(seedPath)
}

// newGenerator builds the production generation client from config: vault
// discovery per VaultSettings and token accounting under the configured
// tokenizer model.
func newGenerator(cfg *core.Config) *genai.Client {
	var resolverOpts []secrets.ResolverOption
	if cfg.Vault.URL != nil {
		resolverOpts = append(resolverOpts, secrets.WithVaultURL(*cfg.Vault.URL))
	}
	resolver := secrets.NewResolver(resolverOpts...)

	model := cfg.Tokens.Model
	counter := func(text string) int {
		return tokens.CountForModel(text, model)
	}
	return genai.NewClient(resolver, genai.WithTokenCounter(counter))
}
