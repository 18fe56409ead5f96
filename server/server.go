// Package server exposes the capability knowledge base and the breakdown
// generator to callers: over MCP on stdio for agent clients, and over HTTP
// as a JSON API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/capmap-hq/capmap/core/capability"
	"github.com/capmap-hq/capmap/genai"
)

// Generator produces a process breakdown for a capability query.
// *genai.Client is the production implementation.
type Generator interface {
	Generate(ctx context.Context, prompt string, contextSections ...string) (*genai.Result, error)
}

// MCP is the capmap MCP server.
type MCP struct {
	version string
	store   capability.Store
	gen     Generator
}

// NewMCP creates an MCP server over the given store and generator.
func NewMCP(version string, store capability.Store, gen Generator) *MCP {
	return &MCP{version: version, store: store, gen: gen}
}

// Serve starts the MCP server on stdio and blocks until the client
// disconnects.
func (s *MCP) Serve() error {
	srv := mcpserver.NewMCPServer(
		"capmap",
		s.version,
		mcpserver.WithRecovery(),
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithResourceCapabilities(false, false),
	)

	s.registerTools(srv)
	s.registerResources(srv)

	return mcpserver.ServeStdio(srv)
}

func (s *MCP) registerTools(srv *mcpserver.MCPServer) {
	srv.AddTool(
		mcp.NewTool("list_capabilities",
			mcp.WithDescription("List all capabilities in the knowledge base with their core processes"),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		s.handleListCapabilities,
	)

	srv.AddTool(
		mcp.NewTool("get_capability",
			mcp.WithDescription("Get one capability by name"),
			mcp.WithString("name",
				mcp.Description("Capability name, e.g. \"Performance & Assurance\""),
				mcp.Required(),
			),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		s.handleGetCapability,
	)

	srv.AddTool(
		mcp.NewTool("generate_breakdown",
			mcp.WithDescription("Generate a structured process breakdown for a capability via the LLM"),
			mcp.WithString("capability",
				mcp.Description("Capability name to break down"),
				mcp.Required(),
			),
			mcp.WithString("context",
				mcp.Description("Optional workspace content included in token accounting"),
			),
		),
		s.handleGenerateBreakdown,
	)
}

func (s *MCP) registerResources(srv *mcpserver.MCPServer) {
	srv.AddResource(
		mcp.NewResource("capmap://capabilities", "Capability Knowledge Base",
			mcp.WithResourceDescription("All capabilities with processes and lifecycle phases"),
			mcp.WithMIMEType("application/json"),
		),
		s.handleResourceCapabilities,
	)
}

func (s *MCP) handleListCapabilities(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	all, err := s.store.FetchAll(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("fetching capabilities: %v", err)), nil
	}
	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding capabilities: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *MCP) handleGetCapability(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("missing required argument: name"), nil
	}

	rec, err := findByName(ctx, s.store, name)
	if err != nil {
		if errors.Is(err, capability.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("capability %q not found", name)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("fetching capability: %v", err)), nil
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding capability: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *MCP) handleGenerateBreakdown(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("capability")
	if err != nil {
		return mcp.NewToolResultError("missing required argument: capability"), nil
	}

	var sections []string
	if extra := request.GetString("context", ""); extra != "" {
		sections = append(sections, extra)
	}

	result, err := s.gen.Generate(ctx, query, sections...)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("generation failed: %v", err)), nil
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *MCP) handleResourceCapabilities(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	all, err := s.store.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching capabilities: %w", err)
	}
	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding capabilities: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// findByName scans the store for a non-deleted capability with the given
// name. The Store interface is id-keyed; name lookup is a view over it.
func findByName(ctx context.Context, store capability.Store, name string) (*capability.Capability, error) {
	all, err := store.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range all {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, capability.ErrNotFound
}
