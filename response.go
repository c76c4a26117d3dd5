package conform

// FinishReason normalizes the provider-specific reason a generation stopped.
type FinishReason string

const (
	// FinishStop means the model completed its reply.
	FinishStop FinishReason = "stop"
	// FinishToolCalls means the model stopped to request tool invocations.
	FinishToolCalls FinishReason = "tool_calls"
	// FinishLength means generation hit the token limit.
	FinishLength FinishReason = "length"
	// FinishContentFilter means the provider suppressed content.
	FinishContentFilter FinishReason = "content_filter"
	// FinishUnknown is used when the provider reports nothing recognizable.
	FinishUnknown FinishReason = "unknown"
)

// Usage contains token usage information for a request.
type Usage struct {
	InputTokens  int `json:"inputTokens"`
	OutputTokens int `json:"outputTokens"`
	TotalTokens  int `json:"totalTokens"`
}

// Add returns the sum of two usage records. Used to accumulate usage across
// the turns of a tool-calling loop.
func (u Usage) Add(other Usage) Usage {
	return Usage{
		InputTokens:  u.InputTokens + other.InputTokens,
		OutputTokens: u.OutputTokens + other.OutputTokens,
		TotalTokens:  u.TotalTokens + other.TotalTokens,
	}
}

// NormalizedResponse is the provider-agnostic envelope produced by an
// adapter's decode step. Exactly one is produced per network exchange; it is
// never persisted or mutated.
type NormalizedResponse struct {
	// ID is the provider's identifier for the response, when supplied.
	ID string `json:"id,omitempty"`
	// Model is the model that actually served the request.
	Model string `json:"model,omitempty"`
	// Content is the terminal text or JSON content, empty when the model
	// stopped to call tools.
	Content string `json:"content,omitempty"`
	// Refusal carries an explicit refusal message when the model declined
	// to answer. Mutually exclusive with Content.
	Refusal string `json:"refusal,omitempty"`
	// ToolCalls lists tool invocation requests in the order the model
	// issued them.
	ToolCalls []ToolCall `json:"toolCalls,omitempty"`
	// FinishReason reports why generation stopped.
	FinishReason FinishReason `json:"finishReason,omitempty"`
	// Usage reports token consumption for this exchange.
	Usage Usage `json:"usage"`
}

// HasToolCalls reports whether the model stopped to request tool invocations.
func (r *NormalizedResponse) HasToolCalls() bool {
	return len(r.ToolCalls) > 0
}
