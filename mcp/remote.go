package mcp

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"

	ai "github.com/spetersoncode/conform"
	"github.com/spetersoncode/conform/tool"
)

// Remote is a connection to an MCP server whose tools can be offered to a
// model. The tool list is fetched once at connect time and cached; Refresh
// re-fetches it. Remote is safe for concurrent use.
type Remote struct {
	client *client.Client

	mu    sync.RWMutex
	tools []ai.Tool
}

// Connect starts an MCP server as a subprocess and connects over stdio.
// The command is the server executable; env and args are passed through.
func Connect(ctx context.Context, command string, env []string, args ...string) (*Remote, error) {
	c, err := client.NewStdioMCPClient(command, env, args...)
	if err != nil {
		return nil, fmt.Errorf("mcp: create stdio client: %w", err)
	}
	return connect(ctx, c)
}

// ConnectSSE connects to an MCP server over SSE at baseURL.
func ConnectSSE(ctx context.Context, baseURL string) (*Remote, error) {
	c, err := client.NewSSEMCPClient(baseURL)
	if err != nil {
		return nil, fmt.Errorf("mcp: create SSE client: %w", err)
	}
	return connect(ctx, c)
}

// ConnectClient wraps an existing MCP client. The client is started,
// initialized, and its tool list fetched.
func ConnectClient(ctx context.Context, c *client.Client) (*Remote, error) {
	return connect(ctx, c)
}

func connect(ctx context.Context, c *client.Client) (*Remote, error) {
	if err := c.Start(ctx); err != nil {
		return nil, fmt.Errorf("mcp: start client: %w", err)
	}

	_, err := c.Initialize(ctx, mcp.InitializeRequest{
		Params: mcp.InitializeParams{
			ProtocolVersion: mcp.LATEST_PROTOCOL_VERSION,
			Capabilities:    mcp.ClientCapabilities{},
			ClientInfo: mcp.Implementation{
				Name:    "conform-mcp-client",
				Version: ai.Version,
			},
		},
	})
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("mcp: initialize session: %w", err)
	}

	r := &Remote{client: c}
	if err := r.Refresh(ctx); err != nil {
		c.Close()
		return nil, fmt.Errorf("mcp: list tools: %w", err)
	}
	return r, nil
}

// Close closes the connection to the MCP server.
func (r *Remote) Close() error {
	return r.client.Close()
}

// Refresh re-fetches the server's tool list, preserving the order the
// server reports.
func (r *Remote) Refresh(ctx context.Context) error {
	result, err := r.client.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return err
	}

	tools := make([]ai.Tool, len(result.Tools))
	for i, t := range result.Tools {
		tools[i] = fromMCPTool(t)
	}

	r.mu.Lock()
	r.tools = tools
	r.mu.Unlock()
	return nil
}

// Tools returns the cached tool descriptors in server order.
func (r *Remote) Tools() []ai.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]ai.Tool(nil), r.tools...)
}

// Names returns the cached tool names in server order.
func (r *Remote) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.tools))
	for i, t := range r.tools {
		names[i] = t.Name
	}
	return names
}

// Len returns the number of cached tools.
func (r *Remote) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// Call invokes a tool on the server. Protocol and server-side failures come
// back as error-carrying results, matching local registry execution, so a
// completion loop treats remote tools like any other.
func (r *Remote) Call(ctx context.Context, call ai.ToolCall) ai.ToolResult {
	result, err := r.client.CallTool(ctx, toCallRequest(call))
	if err != nil {
		return ai.ToolResult{
			ToolCallID: call.ID,
			Name:       call.Name,
			Content:    err.Error(),
			IsError:    true,
		}
	}
	return fromCallResult(call.ID, call.Name, result)
}

// Registry folds the cached tools into a registry the builder accepts.
// Handlers proxy each call to the server over the open connection; the
// registry stays valid for the connection's lifetime and does not observe
// later Refresh calls.
func (r *Remote) Registry() (*tool.Registry, error) {
	defs := make([]tool.Definition, 0, r.Len())
	for _, t := range r.Tools() {
		defs = append(defs, tool.NewRaw(t.Name, t.Description, t.Parameters,
			func(ctx context.Context, call ai.ToolCall) (string, error) {
				result := r.Call(ctx, call)
				if result.IsError {
					return "", errors.New(result.Content)
				}
				return result.Content, nil
			}))
	}
	return tool.NewRegistry(defs...)
}
