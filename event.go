package conform

import "time"

// EventType identifies the kind of completion lifecycle event.
type EventType string

// Exchange lifecycle events
const (
	// EventExchangeStart fires before each network exchange.
	EventExchangeStart EventType = "exchange_start"

	// EventExchangeEnd fires after each exchange has been decoded.
	EventExchangeEnd EventType = "exchange_end"
)

// Tool lifecycle events
const (
	// EventToolStart fires before a tool invocation is dispatched.
	EventToolStart EventType = "tool_start"

	// EventToolEnd fires when a tool invocation returns, including
	// recovered failures.
	EventToolEnd EventType = "tool_end"
)

// Completion lifecycle events
const (
	// EventCompleteOK fires once when a completion resolves successfully.
	EventCompleteOK EventType = "complete_ok"

	// EventCompleteError fires once when a completion fails.
	EventCompleteError EventType = "complete_error"
)

// Event is a single completion lifecycle notification. Events are emitted
// best-effort: a full channel drops the event rather than blocking the loop.
type Event struct {
	Type     EventType `json:"type"`
	Provider Provider  `json:"provider"`
	Model    string    `json:"model"`
	// Turn is the loop turn the event belongs to, starting at 1.
	Turn int `json:"turn,omitempty"`
	// ToolName and ToolCallID are set on tool events.
	ToolName   string `json:"toolName,omitempty"`
	ToolCallID string `json:"toolCallId,omitempty"`
	// ToolIsError marks a recovered tool failure on EventToolEnd.
	ToolIsError bool `json:"toolIsError,omitempty"`
	// Usage is set on exchange-end and completion events.
	Usage *Usage `json:"usage,omitempty"`
	// Err is the failure text on EventCompleteError.
	Err string `json:"err,omitempty"`
	// At is when the event was emitted.
	At time.Time `json:"at"`
}
