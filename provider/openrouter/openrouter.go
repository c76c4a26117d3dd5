// Package openrouter implements the conform adapter for OpenRouter.
//
// OpenRouter speaks the OpenAI Responses API wire format, so encoding and
// decoding are shared with the openai package; only the base URL, the key
// convention, and the optional attribution headers differ.
package openrouter

import (
	"net/http"
	"strings"

	ai "github.com/spetersoncode/conform"
	"github.com/spetersoncode/conform/provider/openai"
)

// DefaultBaseURL is the OpenRouter API base used when no override is given.
const DefaultBaseURL = "https://openrouter.ai/api/v1"

// EnvAPIKey is the environment variable the API key is conventionally read from.
const EnvAPIKey = "OPENROUTER_API_KEY"

// Adapter translates between conform requests and the OpenRouter API.
type Adapter struct {
	baseURL string
	referer string
	title   string
}

// New creates an OpenRouter adapter.
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

// WithReferer sets the HTTP-Referer attribution header, which OpenRouter
// uses to credit the calling application on its leaderboards.
func WithReferer(url string) Option {
	return func(a *Adapter) {
		a.referer = url
	}
}

// WithTitle sets the X-Title attribution header.
func WithTitle(title string) Option {
	return func(a *Adapter) {
		a.title = title
	}
}

// Provider identifies this adapter as the OpenRouter variant.
func (a *Adapter) Provider() ai.Provider { return ai.ProviderOpenRouter }

// Endpoint returns the Responses API URL on the OpenRouter base.
func (a *Adapter) Endpoint(model string) string {
	return a.baseURL + "/responses"
}

// Headers returns the bearer-token headers plus any attribution headers.
func (a *Adapter) Headers(creds ai.Credentials) http.Header {
	h := http.Header{}
	h.Set("Authorization", "Bearer "+creds.APIKey)
	h.Set("Content-Type", "application/json")
	if a.referer != "" {
		h.Set("HTTP-Referer", a.referer)
	}
	if a.title != "" {
		h.Set("X-Title", a.title)
	}
	return h
}

// EncodeRequest serializes the request into Responses API wire JSON.
func (a *Adapter) EncodeRequest(req *ai.CompletionRequest) ([]byte, error) {
	return openai.EncodeRequest(req)
}

// DecodeResponse parses a Responses API reply into the normalized envelope.
func (a *Adapter) DecodeResponse(status int, body []byte) (*ai.NormalizedResponse, error) {
	return openai.DecodeResponse(ai.ProviderOpenRouter, status, body)
}

var _ ai.Adapter = (*Adapter)(nil)
