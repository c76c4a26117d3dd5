package gemini

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "github.com/spetersoncode/conform"
)

func TestAdapterIdentity(t *testing.T) {
	a := New()

	assert.Equal(t, ai.ProviderGemini, a.Provider())
	assert.Equal(t,
		"https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-flash:generateContent",
		a.Endpoint("gemini-2.5-flash"))
}

func TestHeaders(t *testing.T) {
	a := New()
	h := a.Headers(ai.Credentials{APIKey: "g-test"})

	assert.Equal(t, "g-test", h.Get("x-goog-api-key"))
	assert.Equal(t, "application/json", h.Get("Content-Type"))
	assert.Empty(t, h.Get("Authorization"))
}

func TestEncodeRequestText(t *testing.T) {
	a := New()
	req := &ai.CompletionRequest{
		Provider: ai.ProviderGemini,
		Model:    "gemini-2.5-flash",
		Messages: []ai.Message{ai.NewUserMessage("hello")},
		Options:  *ai.ApplyOptions(),
	}

	payload, err := a.EncodeRequest(req)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"contents": [{"role": "user", "parts": [{"text": "hello"}]}]
	}`, string(payload))
}

func TestEncodeRequestSystemInstruction(t *testing.T) {
	a := New()
	req := &ai.CompletionRequest{
		Provider: ai.ProviderGemini,
		Model:    "gemini-2.5-flash",
		Messages: []ai.Message{
			ai.NewSystemMessage("You are terse."),
			ai.NewSystemMessage("Answer in French."),
			ai.NewUserMessage("hello"),
		},
		Options: *ai.ApplyOptions(),
	}

	payload, err := a.EncodeRequest(req)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"contents": [{"role": "user", "parts": [{"text": "hello"}]}],
		"systemInstruction": {"parts": [{"text": "You are terse."}, {"text": "Answer in French."}]}
	}`, string(payload))
}

func TestEncodeRequestGenerationSettings(t *testing.T) {
	a := New()
	req := &ai.CompletionRequest{
		Provider: ai.ProviderGemini,
		Model:    "gemini-2.5-flash",
		Messages: []ai.Message{ai.NewUserMessage("hi")},
		Options: *ai.ApplyOptions(
			ai.WithMaxTokens(512),
			ai.WithTemperature(0.3),
			ai.WithTopP(0.8),
			ai.WithSeed(42),
			ai.WithStopSequences("DONE", "END"),
		),
	}

	payload, err := a.EncodeRequest(req)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"contents": [{"role": "user", "parts": [{"text": "hi"}]}],
		"generationConfig": {
			"maxOutputTokens": 512,
			"temperature": 0.3,
			"topP": 0.8,
			"seed": 42,
			"stopSequences": ["DONE", "END"]
		}
	}`, string(payload))
}

func TestEncodeRequestStructured(t *testing.T) {
	schema := json.RawMessage(`{
		"type": "object",
		"properties": {
			"sentiment": {"type": "string", "enum": ["positive", "negative", "neutral"]},
			"confidence": {"type": "number"}
		},
		"required": ["sentiment", "confidence"],
		"additionalProperties": false
	}`)
	a := New()
	req := &ai.CompletionRequest{
		Provider: ai.ProviderGemini,
		Model:    "gemini-2.5-flash",
		Messages: []ai.Message{ai.NewUserMessage("Review: loved it")},
		Schema:   &ai.ResponseSchema{Name: "sentiment_result", Schema: schema},
		Options:  *ai.ApplyOptions(),
	}

	payload, err := a.EncodeRequest(req)
	require.NoError(t, err)

	// additionalProperties is not part of Gemini's schema dialect and is
	// dropped in conversion.
	assert.JSONEq(t, `{
		"contents": [{"role": "user", "parts": [{"text": "Review: loved it"}]}],
		"generationConfig": {
			"responseMimeType": "application/json",
			"responseSchema": {
				"type": "OBJECT",
				"properties": {
					"sentiment": {"type": "STRING", "enum": ["positive", "negative", "neutral"]},
					"confidence": {"type": "NUMBER"}
				},
				"required": ["sentiment", "confidence"]
			}
		}
	}`, string(payload))
}

func TestEncodeRequestWrappedEnum(t *testing.T) {
	schema := json.RawMessage(`{
		"type": "object",
		"properties": {"value": {"type": "string", "enum": ["Low", "Medium", "High", "Critical"]}},
		"required": ["value"],
		"additionalProperties": false
	}`)
	a := New()
	req := &ai.CompletionRequest{
		Provider: ai.ProviderGemini,
		Model:    "gemini-2.5-flash",
		Messages: []ai.Message{ai.NewUserMessage("How severe?")},
		Schema:   &ai.ResponseSchema{Name: "severity", Schema: schema},
		Options:  *ai.ApplyOptions(),
	}

	payload, err := a.EncodeRequest(req)
	require.NoError(t, err)

	var decoded struct {
		GenerationConfig struct {
			ResponseSchema json.RawMessage `json:"responseSchema"`
		} `json:"generationConfig"`
	}
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.JSONEq(t, `{
		"type": "OBJECT",
		"properties": {"value": {"type": "STRING", "enum": ["Low", "Medium", "High", "Critical"]}},
		"required": ["value"]
	}`, string(decoded.GenerationConfig.ResponseSchema))
}

func TestEncodeRequestToolTranscript(t *testing.T) {
	params := json.RawMessage(`{
		"type": "object",
		"properties": {"city": {"type": "string", "description": "City name."}},
		"required": ["city"],
		"additionalProperties": false
	}`)
	a := New()
	req := &ai.CompletionRequest{
		Provider: ai.ProviderGemini,
		Model:    "gemini-2.5-flash",
		Messages: []ai.Message{
			ai.NewUserMessage("Weather in Paris?"),
			ai.NewToolCallMessage(
				ai.ToolCall{ID: "11111111-1111-1111-1111-111111111111", Name: "get_weather", Arguments: `{"city":"Paris"}`},
			),
			ai.NewToolResultMessage(
				ai.ToolResult{ToolCallID: "11111111-1111-1111-1111-111111111111", Name: "get_weather", Content: "18C, sunny"},
			),
		},
		Tools: []ai.Tool{{
			Name:        "get_weather",
			Description: "Get current weather for a city.",
			Parameters:  params,
		}},
		Options: *ai.ApplyOptions(),
	}

	payload, err := a.EncodeRequest(req)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"contents": [
			{"role": "user", "parts": [{"text": "Weather in Paris?"}]},
			{"role": "model", "parts": [{"functionCall": {"name": "get_weather", "args": {"city": "Paris"}}}]},
			{"role": "user", "parts": [{"functionResponse": {"name": "get_weather", "response": {"name": "get_weather", "content": "18C, sunny"}}}]}
		],
		"tools": [{
			"functionDeclarations": [{
				"name": "get_weather",
				"description": "Get current weather for a city.",
				"parameters": {
					"type": "OBJECT",
					"properties": {"city": {"type": "STRING", "description": "City name."}},
					"required": ["city"]
				}
			}]
		}],
		"toolConfig": {"functionCallingConfig": {"mode": "AUTO"}}
	}`, string(payload))
}

func TestEncodeRequestToolChoiceModes(t *testing.T) {
	params := json.RawMessage(`{"type": "object", "properties": {}, "additionalProperties": false}`)
	encode := func(choice ai.ToolChoice) map[string]any {
		a := New()
		req := &ai.CompletionRequest{
			Provider: ai.ProviderGemini,
			Model:    "gemini-2.5-flash",
			Messages: []ai.Message{ai.NewUserMessage("go")},
			Tools:    []ai.Tool{{Name: "ping", Parameters: params}},
			Options:  *ai.ApplyOptions(ai.WithToolChoice(choice)),
		}
		payload, err := a.EncodeRequest(req)
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(payload, &decoded))
		cfg := decoded["toolConfig"].(map[string]any)
		return cfg["functionCallingConfig"].(map[string]any)
	}

	assert.Equal(t, "AUTO", encode(ai.ToolChoiceAuto)["mode"])
	assert.Equal(t, "NONE", encode(ai.ToolChoiceNone)["mode"])
	assert.Equal(t, "ANY", encode(ai.ToolChoiceRequired)["mode"])
}

func TestDecodeResponseText(t *testing.T) {
	a := New()
	body := `{
		"candidates": [{
			"content": {"role": "model", "parts": [{"text": "{\"value\":\"High\"}"}]},
			"finishReason": "STOP"
		}],
		"usageMetadata": {"promptTokenCount": 20, "candidatesTokenCount": 6, "totalTokenCount": 26},
		"modelVersion": "gemini-2.5-flash",
		"responseId": "abc123"
	}`

	resp, err := a.DecodeResponse(200, []byte(body))
	require.NoError(t, err)

	assert.Equal(t, "abc123", resp.ID)
	assert.Equal(t, "gemini-2.5-flash", resp.Model)
	assert.Equal(t, `{"value":"High"}`, resp.Content)
	assert.Equal(t, ai.FinishStop, resp.FinishReason)
	assert.Equal(t, ai.Usage{InputTokens: 20, OutputTokens: 6, TotalTokens: 26}, resp.Usage)
}

func TestDecodeResponseToolCalls(t *testing.T) {
	a := New()
	body := `{
		"candidates": [{
			"content": {"role": "model", "parts": [
				{"functionCall": {"name": "get_weather", "args": {"city":"Paris"}}},
				{"functionCall": {"name": "get_time", "args": {}}}
			]},
			"finishReason": "STOP"
		}],
		"usageMetadata": {"promptTokenCount": 15, "candidatesTokenCount": 8, "totalTokenCount": 23}
	}`

	resp, err := a.DecodeResponse(200, []byte(body))
	require.NoError(t, err)

	require.Len(t, resp.ToolCalls, 2)
	assert.Equal(t, "get_weather", resp.ToolCalls[0].Name)
	assert.JSONEq(t, `{"city":"Paris"}`, resp.ToolCalls[0].Arguments)
	assert.Equal(t, "get_time", resp.ToolCalls[1].Name)
	assert.Equal(t, "{}", resp.ToolCalls[1].Arguments)
	assert.Equal(t, ai.FinishToolCalls, resp.FinishReason)

	// Gemini assigns no call IDs; the adapter synthesizes unique UUIDs.
	_, err = uuid.Parse(resp.ToolCalls[0].ID)
	require.NoError(t, err)
	_, err = uuid.Parse(resp.ToolCalls[1].ID)
	require.NoError(t, err)
	assert.NotEqual(t, resp.ToolCalls[0].ID, resp.ToolCalls[1].ID)
}

func TestDecodeResponseFinishReasons(t *testing.T) {
	a := New()
	decode := func(finish string) *ai.NormalizedResponse {
		body := `{
			"candidates": [{
				"content": {"role": "model", "parts": [{"text": "partial"}]},
				"finishReason": "` + finish + `"
			}]
		}`
		resp, err := a.DecodeResponse(200, []byte(body))
		require.NoError(t, err)
		return resp
	}

	assert.Equal(t, ai.FinishLength, decode("MAX_TOKENS").FinishReason)
	assert.Equal(t, ai.FinishContentFilter, decode("SAFETY").FinishReason)
	assert.Equal(t, ai.FinishUnknown, decode("OTHER").FinishReason)
}

func TestDecodeResponseBlockedPrompt(t *testing.T) {
	a := New()
	body := `{
		"promptFeedback": {"blockReason": "SAFETY"},
		"usageMetadata": {"promptTokenCount": 12, "candidatesTokenCount": 0, "totalTokenCount": 12}
	}`

	resp, err := a.DecodeResponse(200, []byte(body))
	require.NoError(t, err)

	assert.Equal(t, "prompt blocked: SAFETY", resp.Refusal)
	assert.Equal(t, ai.FinishContentFilter, resp.FinishReason)
}

func TestDecodeResponseMalformed(t *testing.T) {
	a := New()

	t.Run("no candidates", func(t *testing.T) {
		_, err := a.DecodeResponse(200, []byte(`{}`))
		require.Error(t, err)
		assert.True(t, ai.IsMalformedResponse(err))
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := a.DecodeResponse(200, []byte("<html>"))
		require.Error(t, err)
		assert.True(t, ai.IsMalformedResponse(err))
	})
}

func TestDecodeResponseErrors(t *testing.T) {
	a := New()

	t.Run("rate limited with retry info", func(t *testing.T) {
		body := `{
			"error": {
				"code": 429,
				"message": "Resource has been exhausted",
				"status": "RESOURCE_EXHAUSTED",
				"details": [{"@type": "type.googleapis.com/google.rpc.RetryInfo", "retryDelay": "21s"}]
			}
		}`

		_, err := a.DecodeResponse(429, []byte(body))
		require.Error(t, err)
		require.True(t, ai.IsProviderError(err))

		perr := err.(*ai.ProviderError)
		assert.Equal(t, ai.ProviderGemini, perr.Provider)
		assert.Equal(t, 429, perr.Code)
		assert.Equal(t, "RESOURCE_EXHAUSTED", perr.APICode)
		assert.Equal(t, 21*time.Second, perr.RetryAfter())
		assert.True(t, perr.Retryable())
	})

	t.Run("invalid argument", func(t *testing.T) {
		body := `{"error": {"code": 400, "message": "Invalid JSON payload received.", "status": "INVALID_ARGUMENT"}}`

		_, err := a.DecodeResponse(400, []byte(body))
		require.Error(t, err)
		require.True(t, ai.IsProviderError(err))

		perr := err.(*ai.ProviderError)
		assert.Equal(t, "INVALID_ARGUMENT", perr.APICode)
		assert.False(t, perr.Retryable())
		assert.Zero(t, perr.RetryAfter())
	})
}
