package schema

import (
	"fmt"
	"slices"

	ai "github.com/spetersoncode/conform"
	"github.com/spetersoncode/conform/shape"
)

// DiscriminantProperty is the property that tags which union variant an
// object represents. Its value is the variant name.
const DiscriminantProperty = "kind"

// Derive converts a shape descriptor into a validation-ready [Target]. It is
// pure and deterministic: equal descriptors produce byte-identical schema
// documents, with properties in declaration order. A shape the engine cannot
// represent fails here, before any network activity, with a
// *conform.DefinitionError.
func Derive(d shape.Descriptor) (*Target, error) {
	subject := d.Name
	if subject == "" {
		subject = string(d.Kind)
	}

	doc, err := deriveNode(d, subject)
	if err != nil {
		return nil, err
	}

	resolved, err := compile(doc)
	if err != nil {
		return nil, &ai.DefinitionError{
			Subject: subject,
			Reason:  "derived schema does not compile",
			Err:     err,
		}
	}

	return &Target{
		Name:         d.Name,
		Doc:          doc,
		RootIsObject: doc.IsObject(),
		resolved:     resolved,
	}, nil
}

func deriveNode(d shape.Descriptor, subject string) (*Document, error) {
	switch d.Kind {
	case shape.String:
		return &Document{Type: "string", Description: d.Doc}, nil

	case shape.Integer:
		return &Document{Type: "integer", Description: d.Doc}, nil

	case shape.Number:
		return &Document{Type: "number", Description: d.Doc}, nil

	case shape.Boolean:
		return &Document{Type: "boolean", Description: d.Doc}, nil

	case shape.Enum:
		if len(d.Values) == 0 {
			return nil, &ai.DefinitionError{Subject: subject, Reason: "enum declares no variants"}
		}
		return &Document{
			Type:        "string",
			Description: d.Doc,
			Enum:        slices.Clone(d.Values),
		}, nil

	case shape.Array:
		if d.Elem == nil {
			return nil, &ai.DefinitionError{Subject: subject, Reason: "array declares no element shape"}
		}
		items, err := deriveNode(*d.Elem, subject)
		if err != nil {
			return nil, err
		}
		return &Document{Type: "array", Description: d.Doc, Items: items}, nil

	case shape.Object:
		node := &Document{
			Type:                 "object",
			Description:          d.Doc,
			Properties:           []Property{},
			AdditionalProperties: boolPtr(false),
		}
		if err := addFields(node, d.Fields, subject, false); err != nil {
			return nil, err
		}
		return node, nil

	case shape.Union:
		return deriveUnion(d, subject)

	default:
		return nil, &ai.DefinitionError{
			Subject: subject,
			Reason:  fmt.Sprintf("unknown shape kind %q", d.Kind),
		}
	}
}

// addFields appends fields as ordered properties of an object node. With
// positional set, fields may be unnamed and receive deterministic names by
// index.
func addFields(node *Document, fields []shape.Field, subject string, positional bool) error {
	seen := make(map[string]bool, len(fields))
	for _, p := range node.Properties {
		seen[p.Name] = true
	}

	for i, f := range fields {
		name := f.Name
		if name == "" {
			if !positional {
				return &ai.DefinitionError{Subject: subject, Reason: "object field has no name"}
			}
			name = fmt.Sprintf("value%d", i)
		}
		if seen[name] {
			return &ai.DefinitionError{
				Subject: subject,
				Reason:  "duplicate property name",
				Params:  []string{name},
			}
		}
		seen[name] = true

		child, err := deriveNode(f.Shape, subject)
		if err != nil {
			return err
		}
		if f.Doc != "" && child.Description == "" {
			child.Description = f.Doc
		}

		// Optional fields keep the inner document as one branch of a
		// value/null pair and stay out of required.
		if f.Optional {
			inner := *child
			inner.Description = ""
			child = &Document{
				Description: child.Description,
				AnyOf:       []*Document{&inner, {Type: "null"}},
			}
		} else {
			node.Required = append(node.Required, name)
		}

		node.Properties = append(node.Properties, Property{Name: name, Schema: child})
	}
	return nil
}

func deriveUnion(d shape.Descriptor, subject string) (*Document, error) {
	if len(d.Variants) == 0 {
		return nil, &ai.DefinitionError{Subject: subject, Reason: "union declares no variants"}
	}

	node := &Document{Description: d.Doc}
	seen := make(map[string]bool, len(d.Variants))

	for _, v := range d.Variants {
		if v.Name == "" {
			return nil, &ai.DefinitionError{Subject: subject, Reason: "union variant has no name"}
		}
		if seen[v.Name] {
			return nil, &ai.DefinitionError{
				Subject: subject,
				Reason:  "duplicate union variant",
				Params:  []string{v.Name},
			}
		}
		seen[v.Name] = true

		for _, f := range v.Fields {
			if f.Name == DiscriminantProperty {
				return nil, &ai.DefinitionError{
					Subject: subject,
					Reason:  fmt.Sprintf("variant %s: field collides with discriminant property %q", v.Name, DiscriminantProperty),
					Params:  []string{f.Name},
				}
			}
		}

		alt := &Document{
			Type: "object",
			Properties: []Property{{
				Name:   DiscriminantProperty,
				Schema: &Document{Type: "string", Enum: []string{v.Name}},
			}},
			Required:             []string{DiscriminantProperty},
			AdditionalProperties: boolPtr(false),
		}
		if err := addFields(alt, v.Fields, subject, true); err != nil {
			return nil, err
		}
		node.AnyOf = append(node.AnyOf, alt)
	}

	return node, nil
}
