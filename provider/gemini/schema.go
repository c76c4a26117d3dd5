package gemini

import (
	"encoding/json"

	"google.golang.org/genai"
)

// convertSchema converts a JSON Schema document to the genai Schema the
// generateContent API accepts. Keywords outside the API's vocabulary, such
// as additionalProperties, are dropped; Gemini rejects unknown schema fields.
func convertSchema(schemaJSON json.RawMessage) *genai.Schema {
	if len(schemaJSON) == 0 {
		return nil
	}

	var schema map[string]any
	if err := json.Unmarshal(schemaJSON, &schema); err != nil {
		return nil
	}

	return convertSchemaObject(schema)
}

func convertSchemaObject(schema map[string]any) *genai.Schema {
	if schema == nil {
		return nil
	}

	if anyOf, ok := schema["anyOf"].([]any); ok {
		return convertAnyOf(schema, anyOf)
	}

	result := &genai.Schema{}

	if typeVal, ok := schema["type"].(string); ok {
		switch typeVal {
		case "string":
			result.Type = genai.TypeString
		case "number":
			result.Type = genai.TypeNumber
		case "integer":
			result.Type = genai.TypeInteger
		case "boolean":
			result.Type = genai.TypeBoolean
		case "array":
			result.Type = genai.TypeArray
		case "object":
			result.Type = genai.TypeObject
		}
	}

	if desc, ok := schema["description"].(string); ok {
		result.Description = desc
	}

	if enumVal, ok := schema["enum"].([]any); ok {
		for _, e := range enumVal {
			if s, ok := e.(string); ok {
				result.Enum = append(result.Enum, s)
			}
		}
	}

	if props, ok := schema["properties"].(map[string]any); ok {
		result.Properties = make(map[string]*genai.Schema)
		for name, propSchema := range props {
			if propMap, ok := propSchema.(map[string]any); ok {
				result.Properties[name] = convertSchemaObject(propMap)
			}
		}
	}

	if required, ok := schema["required"].([]any); ok {
		for _, r := range required {
			if s, ok := r.(string); ok {
				result.Required = append(result.Required, s)
			}
		}
	}

	if items, ok := schema["items"].(map[string]any); ok {
		result.Items = convertSchemaObject(items)
	}

	return result
}

// convertAnyOf maps a union node. The optional-field encoding, a schema
// alongside the null type, collapses to the inner schema marked nullable;
// genuine unions carry their variants through as anyOf.
func convertAnyOf(schema map[string]any, anyOf []any) *genai.Schema {
	if inner, ok := nullableInner(anyOf); ok {
		result := convertSchemaObject(inner)
		if result == nil {
			return nil
		}
		nullable := true
		result.Nullable = &nullable
		if desc, ok := schema["description"].(string); ok {
			result.Description = desc
		}
		return result
	}

	result := &genai.Schema{}
	if desc, ok := schema["description"].(string); ok {
		result.Description = desc
	}
	for _, variant := range anyOf {
		if m, ok := variant.(map[string]any); ok {
			if converted := convertSchemaObject(m); converted != nil {
				result.AnyOf = append(result.AnyOf, converted)
			}
		}
	}
	return result
}

// nullableInner reports whether anyOf is the two-element optional pattern
// and returns the non-null member.
func nullableInner(anyOf []any) (map[string]any, bool) {
	if len(anyOf) != 2 {
		return nil, false
	}
	for i, variant := range anyOf {
		m, ok := variant.(map[string]any)
		if !ok {
			return nil, false
		}
		if t, ok := m["type"].(string); ok && t == "null" && len(m) == 1 {
			inner, ok := anyOf[1-i].(map[string]any)
			return inner, ok
		}
	}
	return nil, false
}
