package conform

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrorCategory classifies exchange errors by how a caller should react.
// The library itself never retries; the category tells the caller whether a
// retry on their side could help.
type ErrorCategory string

const (
	// ErrorTransient indicates the failure is temporary (rate limits,
	// network hiccups, server overload).
	ErrorTransient ErrorCategory = "transient"

	// ErrorPermanent indicates the failure will not go away on its own
	// (invalid API key, unknown model, malformed request).
	ErrorPermanent ErrorCategory = "permanent"
)

// CategorizedError is implemented by exchange errors that can advise the
// caller on handling.
type CategorizedError interface {
	error
	Category() ErrorCategory
	Retryable() bool           // convenience: Category == ErrorTransient
	StatusCode() int           // HTTP status code if applicable, 0 otherwise
	RetryAfter() time.Duration // server-suggested delay, 0 if not available
}

// DefinitionError reports an invalid shape or tool definition. It is always
// raised before any network activity and is fatal to that definition.
type DefinitionError struct {
	// Subject is the shape or tool being defined.
	Subject string
	// Reason describes what is wrong with the definition.
	Reason string
	// Params names the offending parameters for documentation/signature
	// mismatches, in a stable order.
	Params []string
	// Err is the underlying cause, when one exists.
	Err error
}

// Error returns the error message.
func (e *DefinitionError) Error() string {
	msg := fmt.Sprintf("conform: invalid definition of %s: %s", e.Subject, e.Reason)
	if len(e.Params) > 0 {
		msg += ": " + strings.Join(e.Params, ", ")
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *DefinitionError) Unwrap() error { return e.Err }

// BuilderError reports a builder operation invoked out of sequence, or a
// builder transition fed invalid input. The completion call that surfaces it
// has not touched the network.
type BuilderError struct {
	// State is the builder state the operation was attempted from.
	State string
	// Operation is the operation that was attempted.
	Operation string
	// Reason replaces the out-of-order message for failures that are not
	// ordering violations, such as an empty message list.
	Reason string
}

// Error returns the error message.
func (e *BuilderError) Error() string {
	if e.Reason != "" {
		return "conform: builder: " + e.Reason
	}
	return fmt.Sprintf("conform: builder: cannot call %s in state %s", e.Operation, e.State)
}

// TransportError reports a network-level failure delivering the exchange.
// Propagated unchanged; the core performs no retry.
type TransportError struct {
	URL string
	Err error
}

// Error returns the error message.
func (e *TransportError) Error() string {
	return fmt.Sprintf("conform: transport: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error { return e.Err }

// Category classifies transport failures as transient.
func (e *TransportError) Category() ErrorCategory { return ErrorTransient }

// Retryable returns true; transport failures are transient by definition.
func (e *TransportError) Retryable() bool { return true }

// StatusCode returns 0; no HTTP status was obtained.
func (e *TransportError) StatusCode() int { return 0 }

// RetryAfter returns 0; no server guidance is available.
func (e *TransportError) RetryAfter() time.Duration { return 0 }

// ProviderError reports an API-level rejection: the provider answered, and
// the answer was an error. The provider's own context is preserved.
type ProviderError struct {
	Provider Provider
	// Code is the HTTP status of the exchange.
	Code int
	// APICode is the provider's own error code string, when supplied.
	APICode string
	// Message is the provider's error message.
	Message string
	// RetryDelay is parsed from a Retry-After header or error body, 0 when
	// absent.
	RetryDelay time.Duration
}

// Error returns the error message.
func (e *ProviderError) Error() string {
	if e.APICode != "" {
		return fmt.Sprintf("conform: %s: %s (status %d, code %s)", e.Provider, e.Message, e.Code, e.APICode)
	}
	return fmt.Sprintf("conform: %s: %s (status %d)", e.Provider, e.Message, e.Code)
}

// Category classifies the rejection from its status code.
func (e *ProviderError) Category() ErrorCategory {
	switch {
	case e.Code == 429, e.Code >= 500:
		return ErrorTransient
	default:
		return ErrorPermanent
	}
}

// Retryable returns true for rate limits and server-side failures.
func (e *ProviderError) Retryable() bool { return e.Category() == ErrorTransient }

// StatusCode returns the HTTP status of the exchange.
func (e *ProviderError) StatusCode() int { return e.Code }

// RetryAfter returns the server-suggested delay, or 0.
func (e *ProviderError) RetryAfter() time.Duration { return e.RetryDelay }

// ToolError reports a failed tool invocation. Inside the completion loop it
// is recovered: the message is fed back to the model as an error-carrying
// tool result rather than aborting the call.
type ToolError struct {
	// Tool is the name of the tool that failed.
	Tool string
	// CallID is the provider's identifier for the invocation, when known.
	CallID string
	// Err is the failure returned by (or recovered from) the tool.
	Err error
}

// Error returns the error message.
func (e *ToolError) Error() string {
	return fmt.Sprintf("conform: tool %s: %v", e.Tool, e.Err)
}

// Unwrap returns the underlying error.
func (e *ToolError) Unwrap() error { return e.Err }

// Message returns the text fed back to the model for this failure.
func (e *ToolError) Message() string {
	return fmt.Sprintf("tool %s failed: %v", e.Tool, e.Err)
}

// CompletionErrorKind distinguishes the ways a completion can fail after a
// successful exchange.
type CompletionErrorKind string

const (
	// CompletionMalformed means provider output did not parse as expected
	// (invalid JSON, missing wrapper property, empty output).
	CompletionMalformed CompletionErrorKind = "malformed_response"
	// CompletionSchemaViolation means the output parsed but did not satisfy
	// the declared schema.
	CompletionSchemaViolation CompletionErrorKind = "schema_violation"
	// CompletionToolLoopExceeded means the tool-call loop hit its turn
	// limit without terminal content.
	CompletionToolLoopExceeded CompletionErrorKind = "tool_loop_exceeded"
	// CompletionRefusal means the model explicitly declined to answer.
	CompletionRefusal CompletionErrorKind = "refusal"
)

// CompletionError reports that a completed exchange produced output the
// caller cannot use. The output is never coerced or defaulted.
type CompletionError struct {
	Kind CompletionErrorKind
	// Path locates the offending JSON node for schema violations, e.g.
	// "/profile/age". Empty when the failure has no single location.
	Path string
	// Detail is a human-readable description of the failure.
	Detail string
	// Turns is the number of loop turns consumed when the kind is
	// CompletionToolLoopExceeded.
	Turns int
	// Err is the underlying cause, when one exists.
	Err error
}

// Error returns the error message.
func (e *CompletionError) Error() string {
	msg := "conform: " + string(e.Kind)
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *CompletionError) Unwrap() error { return e.Err }

// IsDefinitionError reports whether err is or wraps a *DefinitionError.
func IsDefinitionError(err error) bool {
	var de *DefinitionError
	return errors.As(err, &de)
}

// IsBuilderError reports whether err is or wraps a *BuilderError.
func IsBuilderError(err error) bool {
	var be *BuilderError
	return errors.As(err, &be)
}

// IsTransportError reports whether err is or wraps a *TransportError.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsProviderError reports whether err is or wraps a *ProviderError.
func IsProviderError(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe)
}

// IsToolError reports whether err is or wraps a *ToolError.
func IsToolError(err error) bool {
	var te *ToolError
	return errors.As(err, &te)
}

// IsCompletionError reports whether err is or wraps a *CompletionError.
func IsCompletionError(err error) bool {
	var ce *CompletionError
	return errors.As(err, &ce)
}

func completionErrorOfKind(err error, kind CompletionErrorKind) bool {
	var ce *CompletionError
	if errors.As(err, &ce) {
		return ce.Kind == kind
	}
	return false
}

// IsMalformedResponse reports whether err is a malformed-response failure.
func IsMalformedResponse(err error) bool {
	return completionErrorOfKind(err, CompletionMalformed)
}

// IsSchemaViolation reports whether err is a schema-violation failure.
func IsSchemaViolation(err error) bool {
	return completionErrorOfKind(err, CompletionSchemaViolation)
}

// IsToolLoopExceeded reports whether err is a tool-loop-limit failure.
func IsToolLoopExceeded(err error) bool {
	return completionErrorOfKind(err, CompletionToolLoopExceeded)
}

// IsRefusal reports whether err is an explicit model refusal.
func IsRefusal(err error) bool {
	return completionErrorOfKind(err, CompletionRefusal)
}

// IsTransient reports whether err advises the caller that a retry could
// help. It checks the error chain for a CategorizedError.
func IsTransient(err error) bool {
	var ce CategorizedError
	if errors.As(err, &ce) {
		return ce.Category() == ErrorTransient
	}
	return false
}

// StatusCodeOf returns the HTTP status carried by a categorized error, or 0.
func StatusCodeOf(err error) int {
	var ce CategorizedError
	if errors.As(err, &ce) {
		return ce.StatusCode()
	}
	return 0
}
