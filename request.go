package conform

import "encoding/json"

// ResponseSchema names the JSON Schema a completion must conform to. Schema
// is the wire-ready document: when the target shape is not object-rooted it
// has already been wrapped under the configured wrapper property.
type ResponseSchema struct {
	Name   string
	Schema json.RawMessage
}

// CompletionRequest is the finalized, immutable payload handed to a provider
// adapter. It is assembled once by the request builder and never mutated;
// each loop turn derives a fresh request with the extended transcript.
type CompletionRequest struct {
	Provider Provider
	Model    string
	// Messages is the conversation in order, including any tool-call and
	// tool-result follow-ups appended by the completion loop.
	Messages []Message
	// Tools lists the descriptors exposed to the model, in registration
	// order. Empty when no registry is attached.
	Tools []Tool
	// Schema is the structured-output target, nil for plain text
	// completions.
	Schema *ResponseSchema
	// Options carries generation settings and loop policy.
	Options Options
}

// WithMessages returns a copy of the request with the message sequence
// replaced. The copy shares tools and schema with the original, which are
// immutable.
func (r CompletionRequest) WithMessages(messages []Message) CompletionRequest {
	r.Messages = messages
	return r
}
