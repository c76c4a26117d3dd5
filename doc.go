// Package conform constrains LLM completions to statically-declared Go shapes.
//
// Instead of prompting for JSON and hoping the model complies, conform derives
// a strict JSON Schema from a target type, sends it with the request in the
// provider's structured-output format, and validates the reply against the
// same schema before handing back a typed value. A response either matches the
// declared shape exactly or the call fails with an error naming what went
// wrong and where.
//
// # Core Pieces
//
// The library is organized around a small set of packages:
//
//   - [github.com/spetersoncode/conform/shape]: describes target shapes
//     (structs, enums, unions) independently of reflection
//   - [github.com/spetersoncode/conform/schema]: derives strict JSON Schema
//     documents from shapes and validates JSON against them
//   - [github.com/spetersoncode/conform/tool]: builds schema-validated tools
//     from Go functions and documentation text
//   - [github.com/spetersoncode/conform/llm]: the staged request builder and
//     the completion entry points
//
// This root package holds the shared vocabulary: messages, tools, responses,
// options, transport, and the error taxonomy.
//
// # Basic Usage
//
// Request a completion shaped like a struct:
//
//	type Sentiment struct {
//	    Sentiment  string  `json:"sentiment" desc:"positive, negative, or neutral"`
//	    Confidence float64 `json:"confidence" desc:"confidence between 0 and 1"`
//	}
//
//	result, err := llm.Complete[Sentiment](ctx,
//	    llm.With(conform.ProviderOpenAI).
//	        APIKeyFromEnv().
//	        Model(models.DefaultOpenAI).
//	        Messages(conform.NewUserMessage("Classify: 'I love this library!'")),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Data.Sentiment, result.Data.Confidence)
//
// The builder is staged: provider, then credentials, then model, then
// messages, then optional tools and config. Calling a step out of order is
// reported as a [BuilderError] before any network activity.
//
// # Non-Object Roots
//
// Providers require an object-rooted schema, so shapes like enums or slices
// are wrapped under a single property (by default "value") on the wire and
// unwrapped transparently before decoding:
//
//	type Severity string // enum declared via shape.Describer
//
//	result, err := llm.Complete[Severity](ctx, b) // wire: {"value": "High"}
//
// # Tool Calling
//
// Tools pair a Go function with documentation text; parameter names in the
// documentation must match the function's argument struct exactly, checked
// when the tool is built:
//
//	weather, err := tool.New[WeatherArgs]("get_weather", `
//	    Get current weather for a city.
//
//	    city: Name of the city
//	    unit: Temperature unit, celsius or fahrenheit
//	`, getWeather)
//
//	registry, err := tool.NewRegistry(weather)
//
// Attached to a request, tool calls from the model are dispatched through the
// registry and results fed back until the model produces terminal content or
// the configured turn limit is hit.
//
// # Configuration Options
//
// Generation settings and loop policy use functional options:
//
//	b.Config(
//	    conform.WithTemperature(0.2),
//	    conform.WithMaxTokens(1024),
//	    conform.WithMaxToolTurns(8),
//	)
//
// # Errors
//
// Failures are typed: [DefinitionError] for invalid shapes and tool
// definitions, [BuilderError] for out-of-order construction,
// [TransportError] and [ProviderError] for exchange failures, and
// [CompletionError] for replies that do not satisfy the declared schema.
// Predicates such as [IsSchemaViolation] classify errors without string
// matching.
package conform
