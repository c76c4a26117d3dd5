package schema

import (
	"encoding/json"
	"sort"
	"strconv"

	"github.com/google/jsonschema-go/jsonschema"

	ai "github.com/spetersoncode/conform"
)

// Target pairs a derived schema document with the metadata the completion
// pipeline needs: whether the root is an object (and therefore ships as-is)
// and the compiled validator for checking responses. Targets are immutable
// and safe for concurrent use.
type Target struct {
	// Name is the declared type name the schema was derived from. Empty
	// for anonymous shapes.
	Name string
	// Doc is the unwrapped document; responses are validated against it
	// after any unwrapping.
	Doc *Document
	// RootIsObject records whether Doc's root is an object node. When
	// false, the wire form wraps Doc under a single property.
	RootIsObject bool

	resolved *jsonschema.Resolved
}

// compile turns a document into a resolved validator. Compilation failures
// surface at derivation time so a bad shape never reaches the network.
func compile(doc *Document) (*jsonschema.Resolved, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var s jsonschema.Schema
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return s.Resolve(nil)
}

// Wrap returns a new strict object document holding doc under the given
// property. The original document is shared, never mutated.
func Wrap(doc *Document, property string) *Document {
	return &Document{
		Type:                 "object",
		Properties:           []Property{{Name: property, Schema: doc}},
		Required:             []string{property},
		AdditionalProperties: boolPtr(false),
	}
}

// WireDocument returns the document to transmit: Doc itself for object
// roots, otherwise Doc wrapped under wrapProperty. An empty wrapProperty
// means the default.
func (t *Target) WireDocument(wrapProperty string) *Document {
	if t.RootIsObject {
		return t.Doc
	}
	if wrapProperty == "" {
		wrapProperty = ai.DefaultWrapProperty
	}
	return Wrap(t.Doc, wrapProperty)
}

// WireSchema serializes the wire document.
func (t *Target) WireSchema(wrapProperty string) (json.RawMessage, error) {
	return json.Marshal(t.WireDocument(wrapProperty))
}

// Unwrap reverses root-wrapping on a raw response. For object-rooted
// targets it returns the input unchanged. The wrapper must be a JSON object
// holding exactly the wrapper property: a missing property is a
// malformed-response error, any extra property is a schema violation naming
// its path.
func (t *Target) Unwrap(raw []byte, wrapProperty string) (json.RawMessage, error) {
	if t.RootIsObject {
		return raw, nil
	}
	if wrapProperty == "" {
		wrapProperty = ai.DefaultWrapProperty
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil, &ai.CompletionError{
			Kind:   ai.CompletionMalformed,
			Detail: "response is not a JSON object",
			Err:    err,
		}
	}

	inner, ok := wrapper[wrapProperty]
	if !ok {
		return nil, &ai.CompletionError{
			Kind:   ai.CompletionMalformed,
			Detail: "wrapper property " + strconv.Quote(wrapProperty) + " absent",
		}
	}

	if len(wrapper) > 1 {
		extras := make([]string, 0, len(wrapper)-1)
		for k := range wrapper {
			if k != wrapProperty {
				extras = append(extras, k)
			}
		}
		sort.Strings(extras)
		return nil, &ai.CompletionError{
			Kind:   ai.CompletionSchemaViolation,
			Path:   "/" + extras[0],
			Detail: "unknown property beside wrapper",
		}
	}

	return inner, nil
}

// Validate checks a raw (unwrapped) JSON instance against the target's
// document. Invalid JSON is a malformed-response error; a structural
// mismatch is a schema violation carrying the validator's diagnosis.
func (t *Target) Validate(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return &ai.CompletionError{
			Kind:   ai.CompletionMalformed,
			Detail: "response is not valid JSON",
			Err:    err,
		}
	}
	if err := t.resolved.Validate(v); err != nil {
		return &ai.CompletionError{
			Kind:   ai.CompletionSchemaViolation,
			Detail: err.Error(),
			Err:    err,
		}
	}
	return nil
}
