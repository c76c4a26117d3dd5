package tool

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	ai "github.com/spetersoncode/conform"
)

// Registry holds an ordered set of tool definitions. It is immutable after
// construction, so concurrent completion calls share it without locking,
// and Tools always lists definitions in registration order.
type Registry struct {
	defs  []Definition
	index map[string]int
}

// NewRegistry builds a registry from the given definitions. Duplicate tool
// names fail with a *conform.DefinitionError.
func NewRegistry(defs ...Definition) (*Registry, error) {
	r := &Registry{
		defs:  make([]Definition, len(defs)),
		index: make(map[string]int, len(defs)),
	}
	copy(r.defs, defs)

	for i, def := range r.defs {
		if def.Tool.Name == "" {
			return nil, &ai.DefinitionError{
				Subject: "registry",
				Reason:  "tool has no name",
			}
		}
		if _, exists := r.index[def.Tool.Name]; exists {
			return nil, &ai.DefinitionError{
				Subject: def.Tool.Name,
				Reason:  "tool registered twice",
				Params:  []string{def.Tool.Name},
			}
		}
		r.index[def.Tool.Name] = i
	}
	return r, nil
}

// MustNewRegistry is like NewRegistry but panics on error.
func MustNewRegistry(defs ...Definition) *Registry {
	r, err := NewRegistry(defs...)
	if err != nil {
		panic(err)
	}
	return r
}

// Len returns the number of registered tools.
func (r *Registry) Len() int { return len(r.defs) }

// Names returns the tool names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.defs))
	for i, def := range r.defs {
		names[i] = def.Tool.Name
	}
	return names
}

// Tools returns the wire-level tool definitions in registration order.
func (r *Registry) Tools() []ai.Tool {
	tools := make([]ai.Tool, len(r.defs))
	for i, def := range r.defs {
		tools[i] = def.Tool
	}
	return tools
}

// Lookup returns the definition for a name.
func (r *Registry) Lookup(name string) (Definition, bool) {
	i, ok := r.index[name]
	if !ok {
		return Definition{}, false
	}
	return r.defs[i], true
}

// Execute runs the handler for a tool call. Failures never escape as
// errors: a missing tool or a handler failure becomes an error-carrying
// result whose content is fed back to the model, which may recover by
// correcting the call.
func (r *Registry) Execute(ctx context.Context, call ai.ToolCall) ai.ToolResult {
	def, ok := r.Lookup(call.Name)
	if !ok {
		toolErr := &ai.ToolError{
			Tool:   call.Name,
			CallID: call.ID,
			Err:    errors.New("not registered"),
		}
		return ai.ToolResult{
			ToolCallID: call.ID,
			Name:       call.Name,
			Content:    toolErr.Message(),
			IsError:    true,
		}
	}

	content, err := def.Handler(ctx, call)
	if err != nil {
		toolErr := &ai.ToolError{Tool: call.Name, CallID: call.ID, Err: err}
		return ai.ToolResult{
			ToolCallID: call.ID,
			Name:       call.Name,
			Content:    toolErr.Message(),
			IsError:    true,
		}
	}

	return ai.ToolResult{
		ToolCallID: call.ID,
		Name:       call.Name,
		Content:    content,
	}
}

// Call dispatches a tool directly, bypassing any model exchange. The args
// value is marshaled to JSON and passed through the same validation the
// completion loop applies. Unlike Execute, failures return as errors.
func (r *Registry) Call(ctx context.Context, name string, args any) (string, error) {
	def, ok := r.Lookup(name)
	if !ok {
		return "", &ai.ToolError{Tool: name, Err: errors.New("not registered")}
	}

	raw, err := json.Marshal(args)
	if err != nil {
		return "", &ai.ToolError{Tool: name, Err: err}
	}

	call := ai.ToolCall{
		ID:        uuid.NewString(),
		Name:      name,
		Arguments: string(raw),
	}
	content, err := def.Handler(ctx, call)
	if err != nil {
		return "", &ai.ToolError{Tool: name, CallID: call.ID, Err: err}
	}
	return content, nil
}
