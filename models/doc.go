// Package models provides model identifier constants for the supported
// providers, so call sites can name models without scattering string
// literals.
//
// Identifiers are plain strings and feed the builder's Model stage:
//
//	import (
//	    "github.com/spetersoncode/conform/llm"
//	    "github.com/spetersoncode/conform/models"
//	)
//
//	b := llm.With(conform.ProviderOpenAI).
//	    APIKeyFromEnv().
//	    Model(models.DefaultOpenAI).
//	    Messages(conform.NewUserMessage("..."))
//
// # OpenRouter Identifiers
//
// OpenRouter routes by prefixed identifiers (vendor/model); the constants
// here carry the prefix already:
//
//	b := llm.With(conform.ProviderOpenRouter).
//	    APIKeyFromEnv().
//	    Model(models.OpenRouterClaudeSonnet45)
//
// # Defaults
//
// The Default* constants name a reasonable general-purpose model per
// provider; Default resolves the same choice from a runtime provider
// value. The catalog is not exhaustive; any identifier the provider
// accepts can be passed to Model directly.
package models
