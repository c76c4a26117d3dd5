package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	ai "github.com/spetersoncode/conform"
	"github.com/spetersoncode/conform/provider"
)

// outcome accumulates what the loop learned across its turns.
type outcome struct {
	usage ai.Usage
	turns int
}

// run drives the exchange loop until the model produces terminal content:
// encode, send, decode, then either return the response or dispatch the
// requested tools and go around again with the extended transcript. Exactly
// one network exchange happens per turn; there is no retry.
func (b *Builder) run(ctx context.Context, options *ai.Options, respSchema *ai.ResponseSchema) (*ai.NormalizedResponse, outcome, error) {
	var out outcome

	adapter, err := provider.ForProvider(b.provider)
	if err != nil {
		return nil, out, err
	}
	transport := options.Transport
	if transport == nil {
		transport = ai.DefaultTransport
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if options.LoopTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, options.LoopTimeout)
		defer cancel()
	}

	endpoint := adapter.Endpoint(b.model)
	headers := adapter.Headers(b.creds)
	for key, values := range options.Headers {
		for _, v := range values {
			headers.Add(key, v)
		}
	}

	req := ai.CompletionRequest{
		Provider: b.provider,
		Model:    b.model,
		Schema:   respSchema,
		Options:  *options,
	}
	if b.registry != nil {
		req.Tools = b.registry.Tools()
	}

	transcript := append([]ai.Message(nil), b.messages...)

	for {
		out.turns++
		if options.MaxToolTurns > 0 && out.turns > options.MaxToolTurns {
			out.turns = options.MaxToolTurns
			return nil, out, &ai.CompletionError{
				Kind:   ai.CompletionToolLoopExceeded,
				Detail: fmt.Sprintf("no terminal content after %d turns", options.MaxToolTurns),
				Turns:  options.MaxToolTurns,
			}
		}
		if err := ctx.Err(); err != nil {
			return nil, out, err
		}

		turnReq := req.WithMessages(transcript)
		payload, err := adapter.EncodeRequest(&turnReq)
		if err != nil {
			return nil, out, err
		}
		if options.RequestInspector != nil {
			options.RequestInspector(payload)
		}

		logger.Debug("completion exchange",
			"provider", b.provider,
			"model", b.model,
			"turn", out.turns,
			"messages", len(transcript))
		b.emit(options, ai.Event{Type: ai.EventExchangeStart, Turn: out.turns})

		resp, err := transport.Send(ctx, &ai.TransportRequest{
			URL:     endpoint,
			Headers: headers,
			Body:    payload,
		})
		if err != nil {
			return nil, out, err
		}
		if options.ResponseInspector != nil {
			options.ResponseInspector(resp.Body)
		}

		normalized, err := adapter.DecodeResponse(resp.StatusCode, resp.Body)
		if err != nil {
			// The adapter only sees the body; the Retry-After header is
			// filled in here when the body carried no retry hint.
			var pe *ai.ProviderError
			if errors.As(err, &pe) && pe.RetryDelay == 0 {
				pe.RetryDelay = retryAfter(resp.Header)
			}
			return nil, out, err
		}

		out.usage = out.usage.Add(normalized.Usage)
		b.emit(options, ai.Event{Type: ai.EventExchangeEnd, Turn: out.turns, Usage: &normalized.Usage})
		logger.Debug("exchange decoded",
			"provider", b.provider,
			"model", b.model,
			"turn", out.turns,
			"finish", normalized.FinishReason,
			"tool_calls", len(normalized.ToolCalls))

		if normalized.Refusal != "" {
			return nil, out, &ai.CompletionError{
				Kind:   ai.CompletionRefusal,
				Detail: normalized.Refusal,
			}
		}

		if !normalized.HasToolCalls() {
			if normalized.Content == "" {
				return nil, out, &ai.CompletionError{
					Kind:   ai.CompletionMalformed,
					Detail: "terminal response contained no content",
				}
			}
			return normalized, out, nil
		}

		if b.registry == nil || b.registry.Len() == 0 {
			return nil, out, &ai.CompletionError{
				Kind:   ai.CompletionMalformed,
				Detail: "model requested tool calls but no tools were attached",
			}
		}

		results := b.dispatchTools(ctx, options, logger, normalized.ToolCalls, out.turns)
		transcript = append(transcript,
			ai.Message{Role: ai.RoleAssistant, Content: normalized.Content, ToolCalls: normalized.ToolCalls},
			ai.NewToolResultMessage(results...),
		)
	}
}

// dispatchTools executes one turn's tool calls and returns their results in
// call order. Calls run concurrently unless parallel dispatch is disabled;
// the indexed results slice keeps the order stable either way. Failures stay
// inside the results, so the group never aborts early.
func (b *Builder) dispatchTools(ctx context.Context, options *ai.Options, logger *slog.Logger, calls []ai.ToolCall, turn int) []ai.ToolResult {
	results := make([]ai.ToolResult, len(calls))

	if options.ParallelToolCalls && len(calls) > 1 {
		g, gctx := errgroup.WithContext(ctx)
		for i, call := range calls {
			g.Go(func() error {
				results[i] = b.runTool(gctx, options, logger, call, turn)
				return nil
			})
		}
		_ = g.Wait()
		return results
	}

	for i, call := range calls {
		results[i] = b.runTool(ctx, options, logger, call, turn)
	}
	return results
}

// runTool executes a single tool call under the per-tool timeout. Tool
// failures come back as error-carrying results, never as errors: the loop
// feeds them to the model, which may correct the call.
func (b *Builder) runTool(ctx context.Context, options *ai.Options, logger *slog.Logger, call ai.ToolCall, turn int) ai.ToolResult {
	b.emit(options, ai.Event{
		Type:       ai.EventToolStart,
		Turn:       turn,
		ToolName:   call.Name,
		ToolCallID: call.ID,
	})

	if options.ToolTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, options.ToolTimeout)
		defer cancel()
	}

	start := time.Now()
	result := b.registry.Execute(ctx, call)
	logger.Debug("tool call dispatched",
		"tool", call.Name,
		"call_id", call.ID,
		"duration", time.Since(start),
		"is_error", result.IsError)

	b.emit(options, ai.Event{
		Type:        ai.EventToolEnd,
		Turn:        turn,
		ToolName:    call.Name,
		ToolCallID:  call.ID,
		ToolIsError: result.IsError,
	})
	return result
}

// finishOK reports a resolved completion with its summed usage. Completion
// events bracket the loop: pre-loop failures (builder sequence, shape
// derivation) return without emitting anything.
func (b *Builder) finishOK(options *ai.Options, usage ai.Usage) {
	u := usage
	b.emit(options, ai.Event{Type: ai.EventCompleteOK, Usage: &u})
}

// finishErr reports a failed completion.
func (b *Builder) finishErr(options *ai.Options, err error) {
	b.emit(options, ai.Event{Type: ai.EventCompleteError, Err: err.Error()})
}

// emit sends a loop event without blocking. The provider and model are
// stamped here so call sites only fill the event-specific fields.
func (b *Builder) emit(options *ai.Options, ev ai.Event) {
	if options.Events == nil {
		return
	}
	ev.Provider = b.provider
	ev.Model = b.model
	ev.At = time.Now()
	select {
	case options.Events <- ev:
	default:
	}
}

// retryAfter reads the Retry-After header, accepting both the delta-seconds
// and the HTTP-date forms.
func retryAfter(header http.Header) time.Duration {
	value := header.Get("Retry-After")
	if value == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(value); err == nil {
		if delay := time.Until(t); delay > 0 {
			return delay
		}
	}
	return 0
}
