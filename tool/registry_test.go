package tool

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	ai "github.com/spetersoncode/conform"
)

type echoArgs struct {
	Text string `json:"text"`
}

func echoDef(t *testing.T, name string) Definition {
	t.Helper()
	def, err := New(name, name+" echoes its input.\ntext: Text to echo back.",
		func(_ context.Context, args echoArgs) (string, error) {
			return args.Text, nil
		})
	require.NoError(t, err)
	return def
}

func TestNewRegistryPreservesOrder(t *testing.T) {
	r, err := NewRegistry(echoDef(t, "alpha"), echoDef(t, "zulu"), echoDef(t, "mike"))
	require.NoError(t, err)

	assert.Equal(t, 3, r.Len())
	assert.Equal(t, []string{"alpha", "zulu", "mike"}, r.Names())

	tools := r.Tools()
	require.Len(t, tools, 3)
	assert.Equal(t, "alpha", tools[0].Name)
	assert.Equal(t, "zulu", tools[1].Name)
	assert.Equal(t, "mike", tools[2].Name)
}

func TestNewRegistryRejectsDuplicates(t *testing.T) {
	_, err := NewRegistry(echoDef(t, "echo"), echoDef(t, "echo"))
	require.Error(t, err)
	assert.True(t, ai.IsDefinitionError(err))
}

func TestNewRegistryRejectsUnnamedTool(t *testing.T) {
	_, err := NewRegistry(Definition{})
	require.Error(t, err)
	assert.True(t, ai.IsDefinitionError(err))
}

func TestRegistryLookup(t *testing.T) {
	r := MustNewRegistry(echoDef(t, "echo"))

	def, ok := r.Lookup("echo")
	assert.True(t, ok)
	assert.Equal(t, "echo", def.Tool.Name)

	_, ok = r.Lookup("missing")
	assert.False(t, ok)
}

func TestRegistryExecute(t *testing.T) {
	failing, err := New("fail", "Always fails.", func(_ context.Context, _ struct{}) (string, error) {
		return "", errors.New("backend unavailable")
	})
	require.NoError(t, err)

	r := MustNewRegistry(echoDef(t, "echo"), failing)

	t.Run("successful call", func(t *testing.T) {
		result := r.Execute(context.Background(), ai.ToolCall{
			ID:        "call_1",
			Name:      "echo",
			Arguments: `{"text":"hello"}`,
		})
		assert.Equal(t, "call_1", result.ToolCallID)
		assert.Equal(t, "echo", result.Name)
		assert.Equal(t, "hello", result.Content)
		assert.False(t, result.IsError)
	})

	t.Run("handler failure becomes error result", func(t *testing.T) {
		result := r.Execute(context.Background(), ai.ToolCall{
			ID:        "call_2",
			Name:      "fail",
			Arguments: `{}`,
		})
		assert.Equal(t, "call_2", result.ToolCallID)
		assert.True(t, result.IsError)
		assert.Contains(t, result.Content, "backend unavailable")
	})

	t.Run("unknown tool becomes error result", func(t *testing.T) {
		result := r.Execute(context.Background(), ai.ToolCall{
			ID:   "call_3",
			Name: "phantom",
		})
		assert.Equal(t, "call_3", result.ToolCallID)
		assert.True(t, result.IsError)
		assert.Contains(t, result.Content, "phantom")
	})

	t.Run("invalid arguments become error result", func(t *testing.T) {
		result := r.Execute(context.Background(), ai.ToolCall{
			ID:        "call_4",
			Name:      "echo",
			Arguments: `{"text":"hello","volume":11}`,
		})
		assert.True(t, result.IsError)
		assert.Contains(t, result.Content, "invalid arguments")
	})
}

func TestRegistryConcurrentExecute(t *testing.T) {
	defer goleak.VerifyNone(t)

	r := MustNewRegistry(echoDef(t, "echo"))

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			text := fmt.Sprintf("msg-%d", n)
			result := r.Execute(context.Background(), ai.ToolCall{
				ID:        fmt.Sprintf("call_%d", n),
				Name:      "echo",
				Arguments: fmt.Sprintf(`{"text":%q}`, text),
			})
			assert.False(t, result.IsError)
			assert.Equal(t, text, result.Content)
		}(i)
	}
	wg.Wait()
}

func TestRegistryCall(t *testing.T) {
	r := MustNewRegistry(echoDef(t, "echo"))

	t.Run("dispatches directly", func(t *testing.T) {
		content, err := r.Call(context.Background(), "echo", echoArgs{Text: "direct"})
		require.NoError(t, err)
		assert.Equal(t, "direct", content)
	})

	t.Run("unknown tool returns ToolError", func(t *testing.T) {
		_, err := r.Call(context.Background(), "phantom", nil)
		require.Error(t, err)
		assert.True(t, ai.IsToolError(err))
	})

	t.Run("handler failure returns ToolError", func(t *testing.T) {
		failing, err := New("fail", "Always fails.", func(_ context.Context, _ struct{}) (string, error) {
			return "", errors.New("nope")
		})
		require.NoError(t, err)
		r := MustNewRegistry(failing)

		_, err = r.Call(context.Background(), "fail", struct{}{})
		require.Error(t, err)
		assert.True(t, ai.IsToolError(err))
	})
}
