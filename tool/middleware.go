package tool

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	ai "github.com/spetersoncode/conform"
)

// Middleware wraps a Handler with cross-cutting behavior.
type Middleware func(Handler) Handler

// Wrap returns a copy of the definition with middleware applied to its
// handler. The first middleware listed is outermost.
//
//	def = def.Wrap(tool.WithLogging(logger), tool.WithRecovery())
func (d Definition) Wrap(mws ...Middleware) Definition {
	h := d.Handler
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	d.Handler = h
	return d
}

// WithLogging logs each call with its outcome and duration.
func WithLogging(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next Handler) Handler {
		return func(ctx context.Context, call ai.ToolCall) (string, error) {
			start := time.Now()
			content, err := next(ctx, call)
			if err != nil {
				logger.Warn("tool call failed",
					"tool", call.Name,
					"call_id", call.ID,
					"duration", time.Since(start),
					"error", err)
				return content, err
			}
			logger.Debug("tool call completed",
				"tool", call.Name,
				"call_id", call.ID,
				"duration", time.Since(start))
			return content, nil
		}
	}
}

// WithRecovery converts a handler panic into an ordinary error, so one
// misbehaving tool surfaces as a recoverable tool failure instead of
// tearing down the whole completion.
func WithRecovery() Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, call ai.ToolCall) (content string, err error) {
			defer func() {
				if r := recover(); r != nil {
					content = ""
					err = fmt.Errorf("panic: %v", r)
				}
			}()
			return next(ctx, call)
		}
	}
}

// WithTimeout bounds each call to d. A zero or negative d leaves the
// handler unwrapped.
func WithTimeout(d time.Duration) Middleware {
	return func(next Handler) Handler {
		if d <= 0 {
			return next
		}
		return func(ctx context.Context, call ai.ToolCall) (string, error) {
			ctx, cancel := context.WithTimeout(ctx, d)
			defer cancel()
			return next(ctx, call)
		}
	}
}
