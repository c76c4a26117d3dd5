package llm

import (
	"fmt"
	"os"

	ai "github.com/spetersoncode/conform"
	"github.com/spetersoncode/conform/provider"
	"github.com/spetersoncode/conform/tool"
)

// Builder states, in the order they are reached. Each configuration method
// is valid from exactly one state; the terminal operations accept any state
// from StateMessages on. The names appear in BuilderError.State.
const (
	StateProvider    = "provider_selected"
	StateCredentials = "credentials_set"
	StateModel       = "model_set"
	StateMessages    = "messages_set"
	StateTools       = "tools_attached"
	StateConfig      = "config_set"
)

// Builder assembles a completion request one stage at a time: provider,
// credentials, model, messages, then optionally tools and config. Calling a
// method out of sequence does not panic and does not silently reorder;
// it records a *conform.BuilderError that the terminal operation returns
// before any network activity. Only the first error is kept, so the failure
// names the operation that actually broke the sequence.
//
// A Builder is single-use and not safe for concurrent use. Construct one per
// completion with With.
type Builder struct {
	state string
	err   error

	provider ai.Provider
	creds    ai.Credentials
	model    string
	messages []ai.Message
	registry *tool.Registry
	config   []ai.Option
}

// With starts a builder for the given provider. An unsupported provider is
// recorded immediately rather than at completion time.
func With(p ai.Provider) *Builder {
	b := &Builder{state: StateProvider, provider: p}
	if !p.Known() {
		b.err = &ai.BuilderError{
			State:     StateProvider,
			Operation: "With",
			Reason:    fmt.Sprintf("unsupported provider %q", p),
		}
	}
	return b
}

// APIKey sets the credential for the selected provider. Valid only
// immediately after With.
func (b *Builder) APIKey(key string) *Builder {
	if !b.advance("APIKey", StateProvider, StateCredentials) {
		return b
	}
	b.creds = ai.Credentials{APIKey: key}
	return b
}

// APIKeyFromEnv reads the credential from the provider's conventional
// environment variable (OPENAI_API_KEY, OPENROUTER_API_KEY, GEMINI_API_KEY).
// An empty variable is recorded as ErrMissingAPIKey.
func (b *Builder) APIKeyFromEnv() *Builder {
	if !b.advance("APIKeyFromEnv", StateProvider, StateCredentials) {
		return b
	}
	name := provider.EnvAPIKey(b.provider)
	key := os.Getenv(name)
	if key == "" {
		b.err = &ErrMissingAPIKey{Provider: b.provider, EnvVar: name}
		return b
	}
	b.creds = ai.Credentials{APIKey: key}
	return b
}

// Model sets the model identifier. Valid only after the credential stage.
func (b *Builder) Model(id string) *Builder {
	if !b.advance("Model", StateCredentials, StateModel) {
		return b
	}
	if id == "" {
		b.err = &ai.BuilderError{
			State:     StateModel,
			Operation: "Model",
			Reason:    "model identifier is empty",
		}
		return b
	}
	b.model = id
	return b
}

// Messages sets the conversation. At least one message is required. Valid
// only after Model.
func (b *Builder) Messages(messages ...ai.Message) *Builder {
	if !b.advance("Messages", StateModel, StateMessages) {
		return b
	}
	if len(messages) == 0 {
		b.err = &ai.BuilderError{
			State:     StateMessages,
			Operation: "Messages",
			Reason:    "at least one message is required",
		}
		return b
	}
	b.messages = append([]ai.Message(nil), messages...)
	return b
}

// Tools attaches a registry whose descriptors are offered to the model and
// whose handlers serve the tool-call loop. Optional; valid only directly
// after Messages.
func (b *Builder) Tools(registry *tool.Registry) *Builder {
	if !b.advance("Tools", StateMessages, StateTools) {
		return b
	}
	b.registry = registry
	return b
}

// Config applies generation settings and loop policy. Optional; valid after
// Messages or Tools, at most once.
func (b *Builder) Config(opts ...ai.Option) *Builder {
	if b.err != nil {
		return b
	}
	if b.state != StateMessages && b.state != StateTools {
		b.err = &ai.BuilderError{State: b.stateName(), Operation: "Config"}
		return b
	}
	b.state = StateConfig
	b.config = append(b.config, opts...)
	return b
}

// Err returns the first recorded builder error, or nil. The terminal
// operations return it themselves; Err exists for callers that assemble a
// builder in several places and want to check between stages.
func (b *Builder) Err() error { return b.err }

// advance moves the builder from the expected state to next, recording an
// out-of-order error when the builder is anywhere else.
func (b *Builder) advance(op, from, next string) bool {
	if b.err != nil {
		return false
	}
	if b.state != from {
		b.err = &ai.BuilderError{State: b.stateName(), Operation: op}
		return false
	}
	b.state = next
	return true
}

// ready validates the builder for a terminal operation. It returns the first
// recorded error, or an out-of-order error when messages were never set.
func (b *Builder) ready(op string) error {
	if b.err != nil {
		return b.err
	}
	switch b.state {
	case StateMessages, StateTools, StateConfig:
		return nil
	}
	return &ai.BuilderError{State: b.stateName(), Operation: op}
}

func (b *Builder) stateName() string {
	if b.state == "" {
		return "uninitialized"
	}
	return b.state
}

// ErrMissingAPIKey is recorded when APIKeyFromEnv finds no credential in the
// environment.
type ErrMissingAPIKey struct {
	Provider ai.Provider
	EnvVar   string
}

func (e *ErrMissingAPIKey) Error() string {
	return fmt.Sprintf("no API key configured for %s: set %s or use APIKey", e.Provider, e.EnvVar)
}
