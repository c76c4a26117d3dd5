package openai

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrictParametersAllRequired(t *testing.T) {
	params := json.RawMessage(`{"type":"object","properties":{"city":{"type":"string"}},"required":["city"],"additionalProperties":false}`)

	out, strict := strictParameters(params)
	require.True(t, strict)
	assert.JSONEq(t, string(params), string(out))
}

func TestStrictParametersPromotesOptional(t *testing.T) {
	params := json.RawMessage(`{"type":"object","properties":{"city":{"type":"string"},"days":{"anyOf":[{"type":"integer"},{"type":"null"}]}},"required":["city"],"additionalProperties":false}`)

	out, strict := strictParameters(params)
	require.True(t, strict)

	// The optional parameter joins required; its schema already admits
	// null, so the model sends null instead of omitting the key.
	assert.JSONEq(t, `{
		"type": "object",
		"properties": {
			"city": {"type": "string"},
			"days": {"anyOf": [{"type": "integer"}, {"type": "null"}]}
		},
		"required": ["city", "days"],
		"additionalProperties": false
	}`, string(out))

	// Property order survives the rewrite.
	s := string(out)
	assert.Less(t, strings.Index(s, `"city"`), strings.Index(s, `"days"`))
}

func TestStrictParametersKeepsDescription(t *testing.T) {
	params := json.RawMessage(`{"type":"object","description":"Search filters.","properties":{"query":{"type":"string"}},"required":["query"],"additionalProperties":false}`)

	out, strict := strictParameters(params)
	require.True(t, strict)
	assert.JSONEq(t, string(params), string(out))
}

func TestStrictParametersEmptyObject(t *testing.T) {
	params := json.RawMessage(`{"type":"object","properties":{},"additionalProperties":false}`)

	out, strict := strictParameters(params)
	require.True(t, strict)
	assert.JSONEq(t, `{"type":"object","properties":{},"additionalProperties":false}`, string(out))
}

func TestStrictParametersPassThrough(t *testing.T) {
	tests := []struct {
		name   string
		params string
	}{
		{"no properties", `{"type":"object"}`},
		{"non-object root", `{"type":"string"}`},
		{"foreign vocabulary", `{"type":"object","properties":{"a":{"type":"string"}},"patternProperties":{"^x-":{}}}`},
		{"array root", `[1,2,3]`},
		{"invalid json", `{"type":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, strict := strictParameters(json.RawMessage(tt.params))
			assert.False(t, strict)
			assert.Equal(t, tt.params, string(out))
		})
	}
}

func TestPropertyNamesOrder(t *testing.T) {
	schema := []byte(`{"type":"object","properties":{"zeta":{"type":"string"},"alpha":{"type":"object","properties":{"nested":{"type":"integer"}}},"mid":{"type":"boolean"}},"required":["zeta"]}`)

	names, err := propertyNames(schema)
	require.NoError(t, err)

	// Document order, not alphabetical, and nested properties stay out.
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, names)
}
