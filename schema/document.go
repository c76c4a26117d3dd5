// Package schema derives strict JSON Schema documents from shape
// descriptors and validates JSON instances against them.
//
// Derivation is pure and deterministic: the same descriptor always produces
// byte-identical documents, with object properties in declaration order.
// Every object node is strict, with additionalProperties false and all
// non-optional properties required, so a validated instance contains
// exactly the declared fields and nothing else.
//
// Shapes that are not objects at the root (enums, arrays, scalars, unions)
// are recorded as such on the [Target]; the wire form wraps them under a
// single property so providers that demand object roots accept them, and
// [Target.Unwrap] reverses the wrapping exactly.
package schema

import (
	"bytes"
	"encoding/json"
)

// Document is a single node of a JSON Schema tree. The zero value is not
// meaningful; documents are produced by [Derive] or built as literals for
// hand-written tool schemas.
//
// Document marshals with a fixed key order and properties in declaration
// order, which is what makes derivation byte-deterministic.
type Document struct {
	// Type is the JSON Schema type keyword: "object", "array", "string",
	// "number", "integer", "boolean", "null". Empty for pure anyOf nodes.
	Type string
	// Description is the node's human-readable description.
	Description string
	// Enum restricts a string node to a closed set of values, in
	// declaration order.
	Enum []string
	// Properties lists an object node's properties in declaration order.
	Properties []Property
	// Required names the properties that must be present.
	Required []string
	// AdditionalProperties, when non-nil, is emitted verbatim. Strict
	// object nodes always carry false.
	AdditionalProperties *bool
	// Items is an array node's element schema.
	Items *Document
	// AnyOf lists alternative schemas: union variants, or a value/null
	// pair for optional fields.
	AnyOf []*Document
}

// Property is one named, ordered property of an object node.
type Property struct {
	Name   string
	Schema *Document
}

// MarshalJSON emits the node with a fixed key order so equal documents
// always serialize to equal bytes.
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true

	writeKey := func(key string) {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		buf.WriteByte('"')
		buf.WriteString(key)
		buf.WriteString(`":`)
	}
	writeValue := func(v any) error {
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		buf.Write(b)
		return nil
	}

	if d.Type != "" {
		writeKey("type")
		if err := writeValue(d.Type); err != nil {
			return nil, err
		}
	}
	if d.Description != "" {
		writeKey("description")
		if err := writeValue(d.Description); err != nil {
			return nil, err
		}
	}
	if len(d.Enum) > 0 {
		writeKey("enum")
		if err := writeValue(d.Enum); err != nil {
			return nil, err
		}
	}
	if d.Properties != nil {
		writeKey("properties")
		buf.WriteByte('{')
		for i, p := range d.Properties {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeValue(p.Name); err != nil {
				return nil, err
			}
			buf.WriteByte(':')
			if err := writeValue(p.Schema); err != nil {
				return nil, err
			}
		}
		buf.WriteByte('}')
	}
	if len(d.Required) > 0 {
		writeKey("required")
		if err := writeValue(d.Required); err != nil {
			return nil, err
		}
	}
	if d.AdditionalProperties != nil {
		writeKey("additionalProperties")
		if err := writeValue(*d.AdditionalProperties); err != nil {
			return nil, err
		}
	}
	if d.Items != nil {
		writeKey("items")
		if err := writeValue(d.Items); err != nil {
			return nil, err
		}
	}
	if len(d.AnyOf) > 0 {
		writeKey("anyOf")
		if err := writeValue(d.AnyOf); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// IsObject reports whether the node is an object type.
func (d *Document) IsObject() bool {
	return d.Type == "object"
}

func boolPtr(b bool) *bool { return &b }
