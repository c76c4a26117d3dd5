// Package mcp bridges conform tools and the Model Context Protocol.
//
// The bridge runs in both directions:
//
//   - Server: expose a [tool.Registry] as an MCP server, so MCP clients
//     can discover and call the same tools a completion loop uses.
//   - Client: connect to an MCP server with [Connect] and fold its tools
//     into a registry the builder accepts; calls proxy to the server.
//
// # Exposing Tools as an MCP Server
//
//	registry := tool.MustNewRegistry(weatherDef, searchDef)
//
//	// Serve over stdio (for subprocess-based MCP clients).
//	if err := mcp.ServeStdio(registry); err != nil {
//	    log.Fatal(err)
//	}
//
// # Consuming MCP Servers
//
//	remote, err := mcp.Connect(ctx, "./my-mcp-server", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer remote.Close()
//
//	registry, err := remote.Registry()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := llm.Complete[Answer](ctx, llm.With(conform.ProviderOpenAI).
//	    APIKeyFromEnv().
//	    Model(models.DefaultOpenAI).
//	    Messages(conform.NewUserMessage("...")).
//	    Tools(registry))
package mcp

import (
	"encoding/json"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	ai "github.com/spetersoncode/conform"
)

// toMCPTool converts a conform tool descriptor to an MCP tool. The
// parameter schema rides as the raw input schema, byte for byte.
func toMCPTool(t ai.Tool) mcp.Tool {
	return mcp.NewToolWithRawSchema(t.Name, t.Description, t.Parameters)
}

// fromMCPTool converts an MCP tool to a conform descriptor, preferring the
// raw schema when the server supplied one.
func fromMCPTool(t mcp.Tool) ai.Tool {
	var params json.RawMessage
	if len(t.RawInputSchema) > 0 {
		params = t.RawInputSchema
	} else if data, err := json.Marshal(t.InputSchema); err == nil {
		params = data
	}
	return ai.Tool{
		Name:        t.Name,
		Description: t.Description,
		Parameters:  params,
	}
}

// toCallRequest converts a tool call to an MCP call request. Arguments
// arrive as a JSON string on the conform side and as decoded values on the
// MCP side.
func toCallRequest(call ai.ToolCall) mcp.CallToolRequest {
	var args any
	if call.Arguments != "" {
		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			args = call.Arguments
		}
	}
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      call.Name,
			Arguments: args,
		},
	}
}

// fromCallResult converts an MCP call result to a tool result, flattening
// content parts to text. Structured content is appended as JSON.
func fromCallResult(callID, name string, result *mcp.CallToolResult) ai.ToolResult {
	if result == nil {
		return ai.ToolResult{
			ToolCallID: callID,
			Name:       name,
			IsError:    true,
		}
	}

	var parts []string
	for _, c := range result.Content {
		switch content := c.(type) {
		case mcp.TextContent:
			parts = append(parts, content.Text)
		case *mcp.TextContent:
			parts = append(parts, content.Text)
		default:
			if data, err := json.Marshal(content); err == nil {
				parts = append(parts, string(data))
			}
		}
	}
	if result.StructuredContent != nil {
		if data, err := json.Marshal(result.StructuredContent); err == nil {
			parts = append(parts, string(data))
		}
	}

	return ai.ToolResult{
		ToolCallID: callID,
		Name:       name,
		Content:    strings.Join(parts, "\n"),
		IsError:    result.IsError,
	}
}
