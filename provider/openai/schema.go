package openai

import (
	"bytes"
	"encoding/json"
)

// Strict mode requires every top-level property to appear in required and
// undeclared properties to be rejected. Optional parameters stay optional
// because their schemas admit null; the model simply sends null instead of
// omitting the key.
//
// strictParameters rewrites a parameter schema accordingly and reports
// whether the rewrite applied. Schemas using vocabulary outside the derived
// document shape (bridged tools with exotic keywords) pass through unchanged
// with strict mode off, since forcing it could make them invalid.
func strictParameters(params json.RawMessage) (json.RawMessage, bool) {
	names, err := propertyNames(params)
	if err != nil || names == nil {
		return params, false
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(params, &top); err != nil {
		return params, false
	}
	for key := range top {
		switch key {
		case "type", "description", "enum", "properties", "required", "additionalProperties", "items", "anyOf":
		default:
			return params, false
		}
	}

	falseVal := false
	strict := strictSchema{
		Type:                 "object",
		Description:          rawString(top["description"]),
		Properties:           top["properties"],
		Required:             names,
		AdditionalProperties: &falseVal,
	}
	out, err := json.Marshal(strict)
	if err != nil {
		return params, false
	}
	return out, true
}

// strictSchema round-trips the top level of a parameter document. Properties
// passes through as raw bytes so nested schemas and key order survive.
type strictSchema struct {
	Type                 string          `json:"type"`
	Description          string          `json:"description,omitempty"`
	Properties           json.RawMessage `json:"properties"`
	Required             []string        `json:"required,omitempty"`
	AdditionalProperties *bool           `json:"additionalProperties,omitempty"`
}

func rawString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// propertyNames returns the keys of the top-level "properties" object in
// document order. A schema without one yields nil names and no error.
func propertyNames(schema []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(schema))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, nil
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, nil
		}
		if key != "properties" {
			if err := skipValue(dec); err != nil {
				return nil, err
			}
			continue
		}
		open, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if d, ok := open.(json.Delim); !ok || d != '{' {
			return nil, nil
		}
		var names []string
		for dec.More() {
			nameTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			name, ok := nameTok.(string)
			if !ok {
				return nil, nil
			}
			names = append(names, name)
			if err := skipValue(dec); err != nil {
				return nil, err
			}
		}
		if names == nil {
			names = []string{}
		}
		return names, nil
	}
	return nil, nil
}

// skipValue consumes one complete JSON value from the decoder.
func skipValue(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	d, ok := tok.(json.Delim)
	if !ok || (d != '{' && d != '[') {
		return nil
	}
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
	}
	return nil
}
