// Package provider resolves provider identifiers to their adapters and
// credential conventions. It is the single place that knows which concrete
// adapter speaks for which [conform.Provider].
package provider

import (
	"fmt"

	ai "github.com/spetersoncode/conform"
	"github.com/spetersoncode/conform/provider/gemini"
	"github.com/spetersoncode/conform/provider/openai"
	"github.com/spetersoncode/conform/provider/openrouter"
)

// ForProvider returns the adapter for p with its default configuration.
func ForProvider(p ai.Provider) (ai.Adapter, error) {
	switch p {
	case ai.ProviderOpenAI:
		return openai.New(), nil
	case ai.ProviderOpenRouter:
		return openrouter.New(), nil
	case ai.ProviderGemini:
		return gemini.New(), nil
	default:
		return nil, fmt.Errorf("conform: unknown provider %q", p)
	}
}

// EnvAPIKey returns the name of the environment variable that
// conventionally holds the API key for p, or "" for an unknown provider.
func EnvAPIKey(p ai.Provider) string {
	switch p {
	case ai.ProviderOpenAI:
		return openai.EnvAPIKey
	case ai.ProviderOpenRouter:
		return openrouter.EnvAPIKey
	case ai.ProviderGemini:
		return gemini.EnvAPIKey
	default:
		return ""
	}
}
