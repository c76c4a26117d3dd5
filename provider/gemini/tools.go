package gemini

import (
	ai "github.com/spetersoncode/conform"
	"google.golang.org/genai"
)

type toolDeclaration struct {
	FunctionDeclarations []functionDeclaration `json:"functionDeclarations"`
}

type functionDeclaration struct {
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Parameters  *genai.Schema `json:"parameters,omitempty"`
}

type toolConfig struct {
	FunctionCallingConfig functionCallingConfig `json:"functionCallingConfig"`
}

type functionCallingConfig struct {
	Mode string `json:"mode"`
}

func convertTools(tools []ai.Tool) []toolDeclaration {
	decls := make([]functionDeclaration, len(tools))
	for i, t := range tools {
		decls[i] = functionDeclaration{
			Name:        t.Name,
			Description: t.Description,
			Parameters:  convertSchema(t.Parameters),
		}
	}
	return []toolDeclaration{{FunctionDeclarations: decls}}
}

// convertToolChoice maps the shared tool choice onto Gemini's function
// calling modes. ANY is Gemini's spelling of required.
func convertToolChoice(choice ai.ToolChoice) *toolConfig {
	mode := "AUTO"
	switch choice {
	case ai.ToolChoiceNone:
		mode = "NONE"
	case ai.ToolChoiceRequired:
		mode = "ANY"
	}
	return &toolConfig{FunctionCallingConfig: functionCallingConfig{Mode: mode}}
}
