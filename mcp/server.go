package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	ai "github.com/spetersoncode/conform"
	"github.com/spetersoncode/conform/tool"
)

// ServerOption configures a served registry.
type ServerOption func(*serverConfig)

type serverConfig struct {
	name    string
	version string
}

// WithName sets the server name reported to MCP clients.
func WithName(name string) ServerOption {
	return func(c *serverConfig) {
		c.name = name
	}
}

// WithVersion sets the server version reported to MCP clients.
func WithVersion(version string) ServerOption {
	return func(c *serverConfig) {
		c.version = version
	}
}

// NewServer creates an MCP server exposing every tool in the registry, in
// registration order. Calls go through [tool.Registry.Execute], so argument
// validation applies and handler failures come back as error results rather
// than protocol errors.
func NewServer(registry *tool.Registry, opts ...ServerOption) *server.MCPServer {
	cfg := &serverConfig{
		name:    "conform-mcp-server",
		version: ai.Version,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	s := server.NewMCPServer(
		cfg.name,
		cfg.version,
		server.WithToolCapabilities(true),
	)

	for _, t := range registry.Tools() {
		s.AddTool(toMCPTool(t), callHandler(registry, t.Name))
	}
	return s
}

// callHandler adapts registry execution to the MCP handler signature.
func callHandler(registry *tool.Registry, name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := "{}"
		if req.Params.Arguments != nil {
			data, err := json.Marshal(req.Params.Arguments)
			if err != nil {
				return mcp.NewToolResultError("arguments do not serialize: " + err.Error()), nil
			}
			args = string(data)
		}

		result := registry.Execute(ctx, ai.ToolCall{Name: name, Arguments: args})
		if result.IsError {
			return mcp.NewToolResultError(result.Content), nil
		}
		return mcp.NewToolResultText(result.Content), nil
	}
}

// ServeStdio serves the registry over stdin/stdout, the standard transport
// for MCP servers invoked as subprocesses. Blocks until the stream closes.
func ServeStdio(registry *tool.Registry, opts ...ServerOption) error {
	return server.ServeStdio(NewServer(registry, opts...))
}
