package conform

// Provider identifies an LLM provider.
type Provider string

// String returns the provider identifier.
func (p Provider) String() string { return string(p) }

// Supported providers.
const (
	ProviderOpenAI     Provider = "openai"
	ProviderOpenRouter Provider = "openrouter"
	ProviderGemini     Provider = "gemini"
)

// Known reports whether p is one of the supported providers.
func (p Provider) Known() bool {
	switch p {
	case ProviderOpenAI, ProviderOpenRouter, ProviderGemini:
		return true
	}
	return false
}

// Credentials holds the authentication material for a provider. How the
// material is presented on the wire (bearer header, provider-specific header)
// is the adapter's concern.
type Credentials struct {
	APIKey string
}

// Empty reports whether no authentication material is present.
func (c Credentials) Empty() bool {
	return c.APIKey == ""
}
