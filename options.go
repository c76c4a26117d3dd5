package conform

import (
	"log/slog"
	"net/http"
	"time"
)

// Default policy values. The turn limit and wrapper property are policy
// choices, not constants of the system; override them per request with
// options.
const (
	// DefaultMaxToolTurns bounds model/tool round trips per completion.
	DefaultMaxToolTurns = 50
	// DefaultToolTimeout bounds a single tool invocation.
	DefaultToolTimeout = 30 * time.Second
	// DefaultLoopTimeout bounds the whole tool-calling loop.
	DefaultLoopTimeout = 5 * time.Minute
	// DefaultWrapProperty is the wrapper property name for non-object
	// target roots.
	DefaultWrapProperty = "value"
)

// Options contains configuration for a completion request.
type Options struct {
	// Generation settings. Nil pointer fields are omitted from the wire
	// payload so provider defaults apply.
	MaxTokens     int
	Temperature   *float64
	TopP          *float64
	Seed          *int
	StopSequences []string

	// Tool behavior.
	ToolChoice        ToolChoice
	ParallelToolCalls bool
	MaxToolTurns      int
	ToolTimeout       time.Duration
	LoopTimeout       time.Duration

	// WrapProperty is the property name used to wrap non-object-rooted
	// schemas on the wire.
	WrapProperty string

	// SchemaName overrides the schema name derived from the target type.
	SchemaName string

	// Headers are added to every exchange after the adapter's own headers.
	Headers http.Header

	// Transport delivers exchanges. Nil means DefaultTransport.
	Transport Transport

	// Logger receives per-turn debug logging. Nil means slog.Default().
	Logger *slog.Logger

	// Events receives loop lifecycle events; emission never blocks.
	Events chan<- Event

	// RequestInspector observes the exact payload bytes before each send.
	RequestInspector func([]byte)
	// ResponseInspector observes the raw response bytes after each receive.
	ResponseInspector func([]byte)
}

// Option is a functional option for configuring completion requests.
type Option func(*Options)

// DefaultOptions returns the baseline configuration.
func DefaultOptions() *Options {
	return &Options{
		ToolChoice:        ToolChoiceAuto,
		ParallelToolCalls: true,
		MaxToolTurns:      DefaultMaxToolTurns,
		ToolTimeout:       DefaultToolTimeout,
		LoopTimeout:       DefaultLoopTimeout,
		WrapProperty:      DefaultWrapProperty,
	}
}

// ApplyOptions applies functional options on top of the defaults.
func ApplyOptions(opts ...Option) *Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithMaxTokens sets the maximum number of tokens to generate.
func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

// WithTemperature sets the sampling temperature (0.0 to 2.0).
func WithTemperature(t float64) Option {
	return func(o *Options) {
		o.Temperature = &t
	}
}

// WithTopP sets the nucleus sampling parameter.
func WithTopP(p float64) Option {
	return func(o *Options) {
		o.TopP = &p
	}
}

// WithSeed requests deterministic sampling where the provider supports it.
func WithSeed(seed int) Option {
	return func(o *Options) {
		o.Seed = &seed
	}
}

// WithStopSequences sets sequences that halt generation.
func WithStopSequences(sequences ...string) Option {
	return func(o *Options) {
		o.StopSequences = sequences
	}
}

// WithToolChoice controls whether the model may, must, or must not use tools.
func WithToolChoice(choice ToolChoice) Option {
	return func(o *Options) {
		o.ToolChoice = choice
	}
}

// WithParallelToolCalls toggles concurrent dispatch of tool calls issued in
// a single model turn.
func WithParallelToolCalls(enabled bool) Option {
	return func(o *Options) {
		o.ParallelToolCalls = enabled
	}
}

// WithMaxToolTurns bounds the number of model/tool round trips before the
// completion fails with a tool-loop-exceeded error.
func WithMaxToolTurns(n int) Option {
	return func(o *Options) {
		o.MaxToolTurns = n
	}
}

// WithToolTimeout bounds a single tool invocation. Zero disables the bound.
func WithToolTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.ToolTimeout = d
	}
}

// WithLoopTimeout bounds the whole completion including all loop turns.
// Zero disables the bound and leaves cancellation to the caller's context.
func WithLoopTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.LoopTimeout = d
	}
}

// WithWrapProperty sets the wrapper property name used when the target shape
// is not object-rooted.
func WithWrapProperty(name string) Option {
	return func(o *Options) {
		o.WrapProperty = name
	}
}

// WithSchemaName overrides the schema name derived from the target type.
func WithSchemaName(name string) Option {
	return func(o *Options) {
		o.SchemaName = name
	}
}

// WithHeaders adds headers to every exchange, e.g. OpenRouter's HTTP-Referer
// and X-Title attribution headers.
func WithHeaders(headers http.Header) Option {
	return func(o *Options) {
		o.Headers = headers
	}
}

// WithTransport substitutes the transport used for exchanges. The main uses
// are custom HTTP clients (proxies, instrumentation) and fakes in tests.
func WithTransport(t Transport) Option {
	return func(o *Options) {
		o.Transport = t
	}
}

// WithLogger sets the logger for per-turn debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithEvents directs loop lifecycle events to ch. Emission is non-blocking:
// events are dropped if the channel is full.
func WithEvents(ch chan<- Event) Option {
	return func(o *Options) {
		o.Events = ch
	}
}

// WithRequestInspector observes the exact wire payload before each send.
func WithRequestInspector(fn func([]byte)) Option {
	return func(o *Options) {
		o.RequestInspector = fn
	}
}

// WithResponseInspector observes the raw response bytes after each receive.
func WithResponseInspector(fn func([]byte)) Option {
	return func(o *Options) {
		o.ResponseInspector = fn
	}
}
