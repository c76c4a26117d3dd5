package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "github.com/spetersoncode/conform"
	"github.com/spetersoncode/conform/tool"
)

func testRegistry(t *testing.T) *tool.Registry {
	t.Helper()

	echo, err := tool.New("echo", "Echo the given text.\ntext: Text to echo back.",
		func(_ context.Context, args struct {
			Text string `json:"text"`
		}) (string, error) {
			return args.Text, nil
		})
	require.NoError(t, err)

	add, err := tool.New("add", "Add two integers.\na: First addend.\nb: Second addend.",
		func(_ context.Context, args struct {
			A int `json:"a"`
			B int `json:"b"`
		}) (string, error) {
			data, err := json.Marshal(args.A + args.B)
			return string(data), err
		})
	require.NoError(t, err)

	return tool.MustNewRegistry(echo, add)
}

func connectInProcess(t *testing.T, registry *tool.Registry) *Remote {
	t.Helper()

	c, err := client.NewInProcessClient(NewServer(registry, WithName("test-server")))
	require.NoError(t, err)

	remote, err := ConnectClient(context.Background(), c)
	require.NoError(t, err)
	t.Cleanup(func() { remote.Close() })
	return remote
}

func TestToolConversion(t *testing.T) {
	t.Run("to MCP keeps the raw schema", func(t *testing.T) {
		schema := json.RawMessage(`{"type":"object","properties":{"name":{"type":"string"}},"required":["name"],"additionalProperties":false}`)
		mcpTool := toMCPTool(ai.Tool{Name: "greet", Description: "Greet someone.", Parameters: schema})

		assert.Equal(t, "greet", mcpTool.Name)
		assert.Equal(t, "Greet someone.", mcpTool.Description)
		assert.Equal(t, schema, mcpTool.RawInputSchema)
	})

	t.Run("from MCP prefers the raw schema", func(t *testing.T) {
		schema := json.RawMessage(`{"type":"object"}`)
		got := fromMCPTool(mcp.NewToolWithRawSchema("weather", "Get weather.", schema))

		assert.Equal(t, "weather", got.Name)
		assert.JSONEq(t, `{"type":"object"}`, string(got.Parameters))
	})

	t.Run("from MCP marshals a structured schema", func(t *testing.T) {
		got := fromMCPTool(mcp.NewTool("search",
			mcp.WithDescription("Search the web."),
			mcp.WithString("query", mcp.Required(), mcp.Description("Search query.")),
		))

		assert.Equal(t, "search", got.Name)
		assert.NotNil(t, got.Parameters)
	})
}

func TestCallConversion(t *testing.T) {
	t.Run("arguments decode into the request", func(t *testing.T) {
		req := toCallRequest(ai.ToolCall{ID: "call_1", Name: "calculate", Arguments: `{"a": 10, "b": 5}`})

		assert.Equal(t, "calculate", req.Params.Name)
		args, ok := req.Params.Arguments.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, float64(10), args["a"])
	})

	t.Run("empty arguments stay nil", func(t *testing.T) {
		req := toCallRequest(ai.ToolCall{Name: "noargs"})
		assert.Nil(t, req.Params.Arguments)
	})

	t.Run("text result flattens", func(t *testing.T) {
		result := fromCallResult("call_1", "echo", mcp.NewToolResultText("Hello!"))

		assert.Equal(t, "call_1", result.ToolCallID)
		assert.Equal(t, "echo", result.Name)
		assert.Equal(t, "Hello!", result.Content)
		assert.False(t, result.IsError)
	})

	t.Run("error result carries the flag", func(t *testing.T) {
		result := fromCallResult("call_2", "echo", mcp.NewToolResultError("something went wrong"))

		assert.Equal(t, "something went wrong", result.Content)
		assert.True(t, result.IsError)
	})

	t.Run("nil result is an error", func(t *testing.T) {
		result := fromCallResult("call_3", "echo", nil)
		assert.True(t, result.IsError)
	})
}

func TestServerExposesRegistry(t *testing.T) {
	remote := connectInProcess(t, testRegistry(t))

	assert.Equal(t, 2, remote.Len())
	assert.ElementsMatch(t, []string{"echo", "add"}, remote.Names())

	var echoTool ai.Tool
	for _, tl := range remote.Tools() {
		if tl.Name == "echo" {
			echoTool = tl
		}
	}
	require.Equal(t, "echo", echoTool.Name)
	assert.Equal(t, "Echo the given text.", echoTool.Description)
	require.NotNil(t, echoTool.Parameters)
	assert.Contains(t, string(echoTool.Parameters), `"text"`)
}

func TestRemoteCall(t *testing.T) {
	remote := connectInProcess(t, testRegistry(t))

	t.Run("executes a tool on the server", func(t *testing.T) {
		result := remote.Call(context.Background(), ai.ToolCall{
			ID:        "call_1",
			Name:      "add",
			Arguments: `{"a": 10, "b": 5}`,
		})

		assert.Equal(t, "call_1", result.ToolCallID)
		assert.Equal(t, "15", result.Content)
		assert.False(t, result.IsError)
	})

	t.Run("invalid arguments come back as an error result", func(t *testing.T) {
		result := remote.Call(context.Background(), ai.ToolCall{
			ID:        "call_2",
			Name:      "add",
			Arguments: `{"a": 10, "total": 5}`,
		})

		assert.True(t, result.IsError)
		assert.Contains(t, result.Content, "invalid arguments")
	})
}

func TestRemoteRegistry(t *testing.T) {
	remote := connectInProcess(t, testRegistry(t))

	registry, err := remote.Registry()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"echo", "add"}, registry.Names())

	// Proxied execution behaves like a local registry.
	result := registry.Execute(context.Background(), ai.ToolCall{
		ID:        "call_1",
		Name:      "echo",
		Arguments: `{"text":"roundtrip"}`,
	})
	assert.Equal(t, "roundtrip", result.Content)
	assert.False(t, result.IsError)
}

func TestRemoteRefresh(t *testing.T) {
	remote := connectInProcess(t, testRegistry(t))

	require.NoError(t, remote.Refresh(context.Background()))
	assert.Equal(t, 2, remote.Len())
}
