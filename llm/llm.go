package llm

import (
	"context"
	"reflect"
	"strings"
	"unicode"

	ai "github.com/spetersoncode/conform"
	"github.com/spetersoncode/conform/schema"
)

// Result carries the typed outcome of a completion together with what it
// cost to obtain.
type Result[T any] struct {
	// Data is the validated, decoded value.
	Data T
	// Usage is the token consumption summed across all loop turns.
	Usage ai.Usage
	// Model is the model that served the request, as reported by the
	// provider when available.
	Model string
	// Provider is the provider the completion ran against.
	Provider ai.Provider
	// FinishReason is the terminal exchange's finish reason.
	FinishReason ai.FinishReason
	// Turns is the number of model exchanges the completion took. 1 means
	// the model answered without calling tools.
	Turns int
}

// Complete runs the completion and decodes the terminal content into T. The
// response is constrained to T's derived schema on the wire; non-object
// roots are wrapped for transmission and unwrapped before validation, so T
// can be an enum-like string type or a slice just as well as a struct.
//
// The call performs one network exchange per loop turn and no retries. Any
// recorded builder error, and any shape that cannot be derived, surfaces
// here before the transport is touched.
func Complete[T any](ctx context.Context, b *Builder) (*Result[T], error) {
	if err := b.ready("Complete"); err != nil {
		return nil, err
	}
	options := ai.ApplyOptions(b.config...)

	target, err := schema.For[T]()
	if err != nil {
		return nil, err
	}
	wire, err := target.WireSchema(options.WrapProperty)
	if err != nil {
		return nil, err
	}
	name := options.SchemaName
	if name == "" {
		name = schemaNameFor[T]()
	}

	resp, out, err := b.run(ctx, options, &ai.ResponseSchema{Name: name, Schema: wire})
	if err != nil {
		b.finishErr(options, err)
		return nil, err
	}

	raw, err := target.Unwrap([]byte(resp.Content), options.WrapProperty)
	if err != nil {
		b.finishErr(options, err)
		return nil, err
	}
	data, err := schema.Decode[T](target, raw)
	if err != nil {
		b.finishErr(options, err)
		return nil, err
	}

	b.finishOK(options, out.usage)
	return &Result[T]{
		Data:         data,
		Usage:        out.usage,
		Model:        servedModel(resp, b.model),
		Provider:     b.provider,
		FinishReason: resp.FinishReason,
		Turns:        out.turns,
	}, nil
}

// CompleteText runs the same pipeline and tool loop without a response
// schema and returns the terminal text unconstrained.
func CompleteText(ctx context.Context, b *Builder) (*Result[string], error) {
	if err := b.ready("CompleteText"); err != nil {
		return nil, err
	}
	options := ai.ApplyOptions(b.config...)

	resp, out, err := b.run(ctx, options, nil)
	if err != nil {
		b.finishErr(options, err)
		return nil, err
	}

	b.finishOK(options, out.usage)
	return &Result[string]{
		Data:         resp.Content,
		Usage:        out.usage,
		Model:        servedModel(resp, b.model),
		Provider:     b.provider,
		FinishReason: resp.FinishReason,
		Turns:        out.turns,
	}, nil
}

func servedModel(resp *ai.NormalizedResponse, requested string) string {
	if resp.Model != "" {
		return resp.Model
	}
	return requested
}

// schemaNameFor derives the wire schema name from T's type name using
// snake_case conversion, falling back to "response" for anonymous types.
func schemaNameFor[T any]() string {
	t := reflect.TypeOf((*T)(nil)).Elem()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	name := toSnakeCase(t.Name())
	if name == "" {
		return "response"
	}
	return name
}

// toSnakeCase converts a CamelCase string to snake_case.
func toSnakeCase(s string) string {
	if s == "" {
		return ""
	}

	var result strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				result.WriteRune('_')
			}
			result.WriteRune(unicode.ToLower(r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}
