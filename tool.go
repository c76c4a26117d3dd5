package conform

import "encoding/json"

// Tool describes a function the model may call. The descriptor is what
// travels over the wire; the callable side lives in the tool package's
// Registry.
type Tool struct {
	// Name is the unique identifier for the tool.
	Name string
	// Description explains what the tool does (helps the model decide when
	// to use it).
	Description string
	// Parameters is a strict JSON Schema object describing the arguments:
	// additionalProperties is false and every non-optional parameter is
	// required.
	Parameters json.RawMessage
}

// ToolChoice controls how the model uses tools.
type ToolChoice string

const (
	// ToolChoiceAuto lets the model decide when to use tools (default).
	ToolChoiceAuto ToolChoice = "auto"
	// ToolChoiceNone disables tool use for the request.
	ToolChoiceNone ToolChoice = "none"
	// ToolChoiceRequired forces the model to use a tool.
	ToolChoiceRequired ToolChoice = "required"
)
