package gemini

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func convertJSON(t *testing.T, schema string) string {
	t.Helper()
	converted := convertSchema(json.RawMessage(schema))
	require.NotNil(t, converted)
	out, err := json.Marshal(converted)
	require.NoError(t, err)
	return string(out)
}

func TestConvertSchemaScalars(t *testing.T) {
	tests := []struct {
		name   string
		schema string
		want   string
	}{
		{"string", `{"type":"string"}`, `{"type":"STRING"}`},
		{"integer", `{"type":"integer"}`, `{"type":"INTEGER"}`},
		{"number", `{"type":"number"}`, `{"type":"NUMBER"}`},
		{"boolean", `{"type":"boolean"}`, `{"type":"BOOLEAN"}`},
		{
			"enum",
			`{"type":"string","enum":["Low","Medium","High","Critical"]}`,
			`{"type":"STRING","enum":["Low","Medium","High","Critical"]}`,
		},
		{
			"array",
			`{"type":"array","items":{"type":"string"}}`,
			`{"type":"ARRAY","items":{"type":"STRING"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.JSONEq(t, tt.want, convertJSON(t, tt.schema))
		})
	}
}

func TestConvertSchemaObject(t *testing.T) {
	schema := `{
		"type": "object",
		"properties": {
			"name": {"type": "string", "description": "Full name."},
			"age": {"type": "integer"}
		},
		"required": ["name", "age"],
		"additionalProperties": false
	}`

	assert.JSONEq(t, `{
		"type": "OBJECT",
		"properties": {
			"name": {"type": "STRING", "description": "Full name."},
			"age": {"type": "INTEGER"}
		},
		"required": ["name", "age"]
	}`, convertJSON(t, schema))
}

func TestConvertSchemaOptionalCollapsesToNullable(t *testing.T) {
	schema := `{
		"description": "Days ahead.",
		"anyOf": [{"type": "integer"}, {"type": "null"}]
	}`

	assert.JSONEq(t, `{
		"type": "INTEGER",
		"description": "Days ahead.",
		"nullable": true
	}`, convertJSON(t, schema))
}

func TestConvertSchemaNullFirstVariant(t *testing.T) {
	schema := `{"anyOf": [{"type": "null"}, {"type": "string"}]}`

	assert.JSONEq(t, `{"type": "STRING", "nullable": true}`, convertJSON(t, schema))
}

func TestConvertSchemaUnion(t *testing.T) {
	schema := `{
		"anyOf": [
			{
				"type": "object",
				"properties": {
					"kind": {"type": "string", "enum": ["circle"]},
					"radius": {"type": "number"}
				},
				"required": ["kind", "radius"],
				"additionalProperties": false
			},
			{
				"type": "object",
				"properties": {
					"kind": {"type": "string", "enum": ["rect"]},
					"width": {"type": "number"},
					"height": {"type": "number"}
				},
				"required": ["kind", "width", "height"],
				"additionalProperties": false
			}
		]
	}`

	assert.JSONEq(t, `{
		"anyOf": [
			{
				"type": "OBJECT",
				"properties": {
					"kind": {"type": "STRING", "enum": ["circle"]},
					"radius": {"type": "NUMBER"}
				},
				"required": ["kind", "radius"]
			},
			{
				"type": "OBJECT",
				"properties": {
					"kind": {"type": "STRING", "enum": ["rect"]},
					"width": {"type": "NUMBER"},
					"height": {"type": "NUMBER"}
				},
				"required": ["kind", "width", "height"]
			}
		]
	}`, convertJSON(t, schema))
}

func TestConvertSchemaNested(t *testing.T) {
	schema := `{
		"type": "object",
		"properties": {
			"profile": {
				"type": "object",
				"properties": {
					"tags": {"type": "array", "items": {"type": "string"}}
				},
				"required": ["tags"],
				"additionalProperties": false
			}
		},
		"required": ["profile"],
		"additionalProperties": false
	}`

	assert.JSONEq(t, `{
		"type": "OBJECT",
		"properties": {
			"profile": {
				"type": "OBJECT",
				"properties": {
					"tags": {"type": "ARRAY", "items": {"type": "STRING"}}
				},
				"required": ["tags"]
			}
		},
		"required": ["profile"]
	}`, convertJSON(t, schema))
}

func TestConvertSchemaEmptyAndInvalid(t *testing.T) {
	assert.Nil(t, convertSchema(nil))
	assert.Nil(t, convertSchema(json.RawMessage("")))
	assert.Nil(t, convertSchema(json.RawMessage("{not json")))
}
