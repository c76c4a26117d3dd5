package gemini

import (
	"net/http"
	"strings"

	ai "github.com/spetersoncode/conform"
)

// DefaultBaseURL is the Generative Language API base used when no override
// is given.
const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// EnvAPIKey is the environment variable the API key is conventionally read from.
const EnvAPIKey = "GEMINI_API_KEY"

// Adapter translates between conform requests and the Gemini
// generateContent API.
type Adapter struct {
	baseURL string
}

// New creates a Gemini adapter.
func New(opts ...Option) *Adapter {
	a := &Adapter{baseURL: DefaultBaseURL}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Option configures the adapter.
type Option func(*Adapter)

// WithBaseURL overrides the API base URL.
func WithBaseURL(url string) Option {
	return func(a *Adapter) {
		a.baseURL = strings.TrimRight(url, "/")
	}
}

// Provider identifies this adapter as the Gemini variant.
func (a *Adapter) Provider() ai.Provider { return ai.ProviderGemini }

// Endpoint returns the generateContent URL for the given model. Unlike the
// OpenAI wire, the model is part of the path.
func (a *Adapter) Endpoint(model string) string {
	return a.baseURL + "/models/" + model + ":generateContent"
}

// Headers returns the API-key headers for a request. Gemini authenticates
// with a dedicated header rather than a bearer token.
func (a *Adapter) Headers(creds ai.Credentials) http.Header {
	h := http.Header{}
	h.Set("x-goog-api-key", creds.APIKey)
	h.Set("Content-Type", "application/json")
	return h
}

var _ ai.Adapter = (*Adapter)(nil)
