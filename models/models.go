package models

import ai "github.com/spetersoncode/conform"

// OpenAI models.
const (
	// GPT-5.2 Series (Latest - December 2025)
	GPT52    = "gpt-5.2"
	GPT52Pro = "gpt-5.2-pro"

	// GPT-5.1 Series
	GPT51     = "gpt-5.1"
	GPT51Mini = "gpt-5.1-mini"

	// GPT-5 Series
	GPT5     = "gpt-5"
	GPT5Mini = "gpt-5-mini"
	GPT5Nano = "gpt-5-nano"

	// O-Series Reasoning Models
	O3     = "o3"
	O4Mini = "o4-mini"

	// DefaultOpenAI is the recommended default OpenAI model.
	DefaultOpenAI = GPT5Mini
)

// Google Gemini models.
const (
	// Gemini 3.0 (Latest - November 2025)
	Gemini3Pro = "gemini-3.0-pro"

	// Gemini 2.5 Series
	Gemini25Pro       = "gemini-2.5-pro"
	Gemini25Flash     = "gemini-2.5-flash"
	Gemini25FlashLite = "gemini-2.5-flash-lite"

	// DefaultGemini is the recommended default Gemini model.
	DefaultGemini = Gemini25Flash
)

// OpenRouter models. OpenRouter fronts many vendors behind one API; the
// identifier names the vendor as a prefix.
const (
	OpenRouterGPT5Mini       = "openai/gpt-5-mini"
	OpenRouterClaudeSonnet45 = "anthropic/claude-sonnet-4-5"
	OpenRouterGemini25Flash  = "google/gemini-2.5-flash"
	OpenRouterLlama4Maverick = "meta-llama/llama-4-maverick"

	// DefaultOpenRouter is the recommended default OpenRouter model.
	DefaultOpenRouter = OpenRouterGPT5Mini
)

// Default returns the recommended default model for a provider, or "" for
// an unknown provider.
func Default(p ai.Provider) string {
	switch p {
	case ai.ProviderOpenAI:
		return DefaultOpenAI
	case ai.ProviderOpenRouter:
		return DefaultOpenRouter
	case ai.ProviderGemini:
		return DefaultGemini
	default:
		return ""
	}
}
