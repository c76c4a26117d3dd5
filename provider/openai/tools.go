package openai

import (
	"encoding/json"

	ai "github.com/spetersoncode/conform"
)

type wireTool struct {
	Type        string          `json:"type"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Parameters  json.RawMessage `json:"parameters"`
	Strict      bool            `json:"strict"`
}

func convertTools(tools []ai.Tool) []wireTool {
	result := make([]wireTool, len(tools))
	for i, t := range tools {
		params, strict := strictParameters(t.Parameters)
		result[i] = wireTool{
			Type:        "function",
			Name:        t.Name,
			Description: t.Description,
			Parameters:  params,
			Strict:      strict,
		}
	}
	return result
}
