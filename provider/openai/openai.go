package openai

import (
	"net/http"
	"strings"

	ai "github.com/spetersoncode/conform"
)

// DefaultBaseURL is the OpenAI API base used when no override is given.
const DefaultBaseURL = "https://api.openai.com/v1"

// EnvAPIKey is the environment variable the API key is conventionally read from.
const EnvAPIKey = "OPENAI_API_KEY"

// Adapter translates between conform requests and the OpenAI Responses API.
// It holds no mutable state and is safe for concurrent use.
type Adapter struct {
	baseURL string
}

// New creates an OpenAI adapter.
func New(opts ...Option) *Adapter {
	a := &Adapter{baseURL: DefaultBaseURL}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Option configures the adapter.
type Option func(*Adapter)

// WithBaseURL overrides the API base URL, e.g. for a proxy or an
// API-compatible self-hosted endpoint. A trailing slash is trimmed.
func WithBaseURL(url string) Option {
	return func(a *Adapter) {
		a.baseURL = strings.TrimRight(url, "/")
	}
}

// Provider identifies this adapter as the OpenAI variant.
func (a *Adapter) Provider() ai.Provider { return ai.ProviderOpenAI }

// Endpoint returns the Responses API URL. The model travels in the payload,
// not in the path.
func (a *Adapter) Endpoint(model string) string {
	return a.baseURL + "/responses"
}

// Headers returns the bearer-token headers for a request.
func (a *Adapter) Headers(creds ai.Credentials) http.Header {
	h := http.Header{}
	h.Set("Authorization", "Bearer "+creds.APIKey)
	h.Set("Content-Type", "application/json")
	return h
}

// EncodeRequest serializes the request into Responses API wire JSON.
func (a *Adapter) EncodeRequest(req *ai.CompletionRequest) ([]byte, error) {
	return EncodeRequest(req)
}

// DecodeResponse parses a Responses API reply into the normalized envelope.
func (a *Adapter) DecodeResponse(status int, body []byte) (*ai.NormalizedResponse, error) {
	return DecodeResponse(ai.ProviderOpenAI, status, body)
}

var _ ai.Adapter = (*Adapter)(nil)
