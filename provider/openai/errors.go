package openai

import (
	"encoding/json"
	"net/http"
	"strings"

	ai "github.com/spetersoncode/conform"
)

type errorEnvelope struct {
	Error *apiError `json:"error"`
}

type apiError struct {
	Message string          `json:"message"`
	Type    string          `json:"type"`
	Code    json.RawMessage `json:"code"`
}

// decodeError maps a non-2xx exchange onto *ai.ProviderError, preserving
// the provider's message and code when the body carries the standard error
// envelope. Bodies in any other shape are kept verbatim as the message.
func decodeError(provider ai.Provider, status int, body []byte) *ai.ProviderError {
	perr := &ai.ProviderError{
		Provider: provider,
		Code:     status,
		Message:  http.StatusText(status),
	}

	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error != nil {
		if env.Error.Message != "" {
			perr.Message = env.Error.Message
		}
		perr.APICode = apiCode(env.Error)
		return perr
	}

	if msg := strings.TrimSpace(string(body)); msg != "" {
		perr.Message = msg
	}
	return perr
}

// apiCode prefers the error's code field, falling back to its type. The code
// is a string for OpenAI and a number for some compatible providers.
func apiCode(e *apiError) string {
	raw := string(e.Code)
	switch raw {
	case "", "null":
		return e.Type
	}
	var s string
	if err := json.Unmarshal(e.Code, &s); err == nil {
		return s
	}
	return raw
}
