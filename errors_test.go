package conform

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefinitionError(t *testing.T) {
	t.Run("formats subject and reason", func(t *testing.T) {
		err := &DefinitionError{Subject: "get_weather", Reason: "tool arguments must be a struct"}
		assert.Equal(t, "conform: invalid definition of get_weather: tool arguments must be a struct", err.Error())
	})

	t.Run("lists offending parameters", func(t *testing.T) {
		err := &DefinitionError{
			Subject: "get_weather",
			Reason:  "documented parameters do not match the signature",
			Params:  []string{"unit"},
		}
		assert.Contains(t, err.Error(), "unit")
	})

	t.Run("unwraps the cause", func(t *testing.T) {
		cause := errors.New("boom")
		err := &DefinitionError{Subject: "x", Reason: "y", Err: cause}
		assert.ErrorIs(t, err, cause)
	})

	t.Run("detected through wrapping", func(t *testing.T) {
		err := fmt.Errorf("registering: %w", &DefinitionError{Subject: "x", Reason: "y"})
		assert.True(t, IsDefinitionError(err))
		assert.False(t, IsDefinitionError(errors.New("other")))
	})
}

func TestBuilderError(t *testing.T) {
	t.Run("out of order names state and operation", func(t *testing.T) {
		err := &BuilderError{State: "credentials_set", Operation: "Messages"}
		assert.Equal(t, "conform: builder: cannot call Messages in state credentials_set", err.Error())
	})

	t.Run("reason replaces the ordering message", func(t *testing.T) {
		err := &BuilderError{State: "messages_set", Operation: "Messages", Reason: "at least one message is required"}
		assert.Equal(t, "conform: builder: at least one message is required", err.Error())
	})

	t.Run("predicate", func(t *testing.T) {
		assert.True(t, IsBuilderError(&BuilderError{State: "a", Operation: "b"}))
		assert.False(t, IsBuilderError(errors.New("other")))
	})
}

func TestTransportError(t *testing.T) {
	cause := errors.New("connection refused")
	err := &TransportError{URL: "https://api.openai.com/v1/responses", Err: cause}

	assert.Equal(t, "conform: transport: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsTransportError(err))

	t.Run("always transient", func(t *testing.T) {
		assert.Equal(t, ErrorTransient, err.Category())
		assert.True(t, err.Retryable())
		assert.Zero(t, err.StatusCode())
		assert.Zero(t, err.RetryAfter())
	})
}

func TestProviderError(t *testing.T) {
	t.Run("formats with api code", func(t *testing.T) {
		err := &ProviderError{
			Provider: ProviderOpenAI,
			Code:     429,
			APICode:  "rate_limit_error",
			Message:  "Rate limit reached",
		}
		assert.Equal(t, "conform: openai: Rate limit reached (status 429, code rate_limit_error)", err.Error())
	})

	t.Run("formats without api code", func(t *testing.T) {
		err := &ProviderError{Provider: ProviderGemini, Code: 500, Message: "internal error"}
		assert.Equal(t, "conform: gemini: internal error (status 500)", err.Error())
	})

	t.Run("categorizes by status", func(t *testing.T) {
		tests := []struct {
			code     int
			category ErrorCategory
		}{
			{429, ErrorTransient},
			{500, ErrorTransient},
			{503, ErrorTransient},
			{400, ErrorPermanent},
			{401, ErrorPermanent},
			{404, ErrorPermanent},
		}
		for _, tt := range tests {
			err := &ProviderError{Code: tt.code}
			assert.Equal(t, tt.category, err.Category(), "status %d", tt.code)
			assert.Equal(t, tt.category == ErrorTransient, err.Retryable())
		}
	})

	t.Run("carries the retry delay", func(t *testing.T) {
		err := &ProviderError{Code: 429, RetryDelay: 7 * time.Second}
		assert.Equal(t, 7*time.Second, err.RetryAfter())
		assert.Equal(t, 429, err.StatusCode())
	})
}

func TestToolError(t *testing.T) {
	cause := errors.New("invalid arguments: missing city")
	err := &ToolError{Tool: "get_weather", CallID: "call_1", Err: cause}

	assert.Equal(t, "conform: tool get_weather: invalid arguments: missing city", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsToolError(err))

	t.Run("message is what the model sees", func(t *testing.T) {
		assert.Equal(t, "tool get_weather failed: invalid arguments: missing city", err.Message())
	})
}

func TestCompletionError(t *testing.T) {
	t.Run("schema violation includes the path", func(t *testing.T) {
		err := &CompletionError{
			Kind:   CompletionSchemaViolation,
			Path:   "/profile/age",
			Detail: "expected integer",
		}
		assert.Equal(t, "conform: schema_violation at /profile/age: expected integer", err.Error())
	})

	t.Run("tool loop carries the turn count", func(t *testing.T) {
		err := &CompletionError{
			Kind:   CompletionToolLoopExceeded,
			Detail: "no terminal content after 3 turns",
			Turns:  3,
		}
		assert.Equal(t, 3, err.Turns)
		assert.Contains(t, err.Error(), "tool_loop_exceeded")
	})

	t.Run("unwraps the cause", func(t *testing.T) {
		cause := errors.New("unexpected end of JSON input")
		err := &CompletionError{Kind: CompletionMalformed, Err: cause}
		assert.ErrorIs(t, err, cause)
	})

	t.Run("kind predicates", func(t *testing.T) {
		malformed := &CompletionError{Kind: CompletionMalformed}
		violation := &CompletionError{Kind: CompletionSchemaViolation}
		exceeded := &CompletionError{Kind: CompletionToolLoopExceeded}
		refusal := &CompletionError{Kind: CompletionRefusal}

		assert.True(t, IsCompletionError(malformed))
		assert.True(t, IsMalformedResponse(malformed))
		assert.False(t, IsMalformedResponse(violation))
		assert.True(t, IsSchemaViolation(violation))
		assert.True(t, IsToolLoopExceeded(exceeded))
		assert.True(t, IsRefusal(refusal))
		assert.False(t, IsRefusal(errors.New("other")))
	})
}

func TestIsTransient(t *testing.T) {
	assert.True(t, IsTransient(&ProviderError{Code: 429}))
	assert.True(t, IsTransient(&TransportError{Err: errors.New("reset")}))
	assert.False(t, IsTransient(&ProviderError{Code: 401}))
	assert.False(t, IsTransient(errors.New("plain")))

	t.Run("checks the chain", func(t *testing.T) {
		wrapped := fmt.Errorf("completing: %w", &ProviderError{Code: 503})
		assert.True(t, IsTransient(wrapped))
	})
}

func TestStatusCodeOf(t *testing.T) {
	require.Equal(t, 429, StatusCodeOf(&ProviderError{Code: 429}))
	assert.Zero(t, StatusCodeOf(&TransportError{Err: errors.New("x")}))
	assert.Zero(t, StatusCodeOf(errors.New("plain")))
}
