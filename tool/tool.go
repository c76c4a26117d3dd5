package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	ai "github.com/spetersoncode/conform"
	"github.com/spetersoncode/conform/schema"
	"github.com/spetersoncode/conform/shape"
)

// Handler executes a tool call and returns the result content.
// The context carries the per-call timeout and cancellation.
type Handler func(ctx context.Context, call ai.ToolCall) (string, error)

// TypedHandler executes a tool call whose arguments have already been
// validated and unmarshaled into T.
type TypedHandler[T any] func(ctx context.Context, args T) (string, error)

// Definition pairs a wire-level tool with the handler that serves its
// calls.
type Definition struct {
	Tool    ai.Tool
	Handler Handler
}

// New builds a tool definition from a typed function and its documentation
// text. The parameter schema is derived from Args; descriptions come from
// the documentation.
//
// The documented parameter names and the fields of Args must match
// exactly. Any name present on one side only fails registration with a
// *conform.DefinitionError naming the offenders, so a drifted doc comment
// is caught before the tool can ever be offered to a model.
//
// Example:
//
//	type WeatherArgs struct {
//	    City string `json:"city"`
//	    Unit string `json:"unit"`
//	}
//
//	def, err := tool.New("get_weather",
//	    `Get current weather for a city.
//	     city: Name of the city to query.
//	     unit: Temperature unit, celsius or fahrenheit.`,
//	    func(ctx context.Context, args WeatherArgs) (string, error) {
//	        return lookupWeather(args.City, args.Unit)
//	    })
func New[Args any](name, doc string, fn TypedHandler[Args]) (Definition, error) {
	d, err := shape.For[Args]()
	if err != nil {
		return Definition{}, err
	}
	if d.Kind != shape.Object {
		return Definition{}, &ai.DefinitionError{
			Subject: name,
			Reason:  "tool arguments must be a struct",
		}
	}

	dc, err := ParseDoc(name, doc)
	if err != nil {
		return Definition{}, err
	}

	documented := make(map[string]string, len(dc.Params))
	for _, p := range dc.Params {
		documented[p.Name] = p.Description
	}

	var offenders []string
	inSignature := make(map[string]bool, len(d.Fields))
	for i := range d.Fields {
		f := &d.Fields[i]
		inSignature[f.Name] = true
		desc, ok := documented[f.Name]
		if !ok {
			offenders = append(offenders, f.Name)
			continue
		}
		f.Doc = desc
	}
	for _, p := range dc.Params {
		if !inSignature[p.Name] {
			offenders = append(offenders, p.Name)
		}
	}
	if len(offenders) > 0 {
		sort.Strings(offenders)
		return Definition{}, &ai.DefinitionError{
			Subject: name,
			Reason:  "documented parameters do not match the signature",
			Params:  offenders,
		}
	}

	target, err := schema.Derive(d)
	if err != nil {
		return Definition{}, err
	}
	params, err := json.Marshal(target.Doc)
	if err != nil {
		return Definition{}, &ai.DefinitionError{
			Subject: name,
			Reason:  "parameter schema does not serialize",
			Err:     err,
		}
	}

	handler := func(ctx context.Context, call ai.ToolCall) (string, error) {
		raw := call.Arguments
		if strings.TrimSpace(raw) == "" {
			raw = "{}"
		}
		if err := target.Validate([]byte(raw)); err != nil {
			return "", fmt.Errorf("invalid arguments: %w", err)
		}
		var args Args
		if err := json.Unmarshal([]byte(raw), &args); err != nil {
			return "", fmt.Errorf("invalid arguments: %w", err)
		}
		return fn(ctx, args)
	}

	return Definition{
		Tool: ai.Tool{
			Name:        name,
			Description: dc.Description,
			Parameters:  params,
		},
		Handler: handler,
	}, nil
}

// MustNew is like New but panics on error. Useful for package-level tool
// variables where a bad definition should fail at startup.
func MustNew[Args any](name, doc string, fn TypedHandler[Args]) Definition {
	def, err := New(name, doc, fn)
	if err != nil {
		panic(err)
	}
	return def
}

// NewRaw builds a definition from a pre-built JSON Schema and handler. The
// handler receives the raw arguments without validation. Intended for
// bridging tools whose schemas come from elsewhere, such as MCP servers.
func NewRaw(name, description string, params json.RawMessage, h Handler) Definition {
	return Definition{
		Tool: ai.Tool{
			Name:        name,
			Description: description,
			Parameters:  params,
		},
		Handler: h,
	}
}
