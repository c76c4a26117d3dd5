package openai

import (
	"encoding/json"

	ai "github.com/spetersoncode/conform"
)

// Wire types for the Responses API. Input is heterogeneous: plain role
// messages, function calls being replayed, and function call outputs.
type request struct {
	Model             string      `json:"model"`
	Input             []any       `json:"input"`
	MaxOutputTokens   int         `json:"max_output_tokens,omitempty"`
	ParallelToolCalls *bool       `json:"parallel_tool_calls,omitempty"`
	Temperature       *float64    `json:"temperature,omitempty"`
	Text              textPayload `json:"text"`
	ToolChoice        string      `json:"tool_choice,omitempty"`
	Tools             []wireTool  `json:"tools,omitempty"`
	TopP              *float64    `json:"top_p,omitempty"`
}

type textPayload struct {
	Format formatSpec `json:"format"`
}

type formatSpec struct {
	Type   string          `json:"type"`
	Name   string          `json:"name,omitempty"`
	Schema json.RawMessage `json:"schema,omitempty"`
}

type messageItem struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type functionCallItem struct {
	Type      string `json:"type"`
	CallID    string `json:"call_id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type functionCallOutputItem struct {
	Type   string `json:"type"`
	CallID string `json:"call_id"`
	Output string `json:"output"`
}

type response struct {
	ID     string       `json:"id"`
	Model  string       `json:"model"`
	Output []outputItem `json:"output"`
	Usage  usagePayload `json:"usage"`
}

type outputItem struct {
	Type      string        `json:"type"`
	CallID    string        `json:"call_id"`
	Name      string        `json:"name"`
	Arguments string        `json:"arguments"`
	Status    string        `json:"status"`
	Content   []contentPart `json:"content"`
}

type contentPart struct {
	Type    string `json:"type"`
	Text    string `json:"text"`
	Refusal string `json:"refusal"`
}

type usagePayload struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// EncodeRequest builds the Responses API payload. It is shared by every
// adapter speaking this wire format; OpenRouter reuses it verbatim.
func EncodeRequest(req *ai.CompletionRequest) ([]byte, error) {
	body := request{
		Model:           req.Model,
		Input:           convertMessages(req.Messages),
		MaxOutputTokens: req.Options.MaxTokens,
		Temperature:     req.Options.Temperature,
		TopP:            req.Options.TopP,
		Text:            textPayload{Format: formatSpec{Type: "text"}},
	}
	if req.Schema != nil {
		body.Text.Format = formatSpec{
			Type:   "json_schema",
			Name:   req.Schema.Name,
			Schema: req.Schema.Schema,
		}
	}
	if len(req.Tools) > 0 {
		body.Tools = convertTools(req.Tools)
		body.ToolChoice = string(req.Options.ToolChoice)
		parallel := req.Options.ParallelToolCalls
		body.ParallelToolCalls = &parallel
	}
	return json.Marshal(body)
}

func convertMessages(messages []ai.Message) []any {
	input := make([]any, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case ai.RoleAssistant:
			if msg.Content != "" {
				input = append(input, messageItem{Role: "assistant", Content: msg.Content})
			}
			// Tool calls replay as function_call items so the model can
			// correlate the outputs that follow.
			for _, tc := range msg.ToolCalls {
				input = append(input, functionCallItem{
					Type:      "function_call",
					CallID:    tc.ID,
					Name:      tc.Name,
					Arguments: tc.Arguments,
				})
			}
		case ai.RoleTool:
			for _, tr := range msg.ToolResults {
				input = append(input, functionCallOutputItem{
					Type:   "function_call_output",
					CallID: tr.ToolCallID,
					Output: tr.Content,
				})
			}
		default:
			if msg.Content != "" {
				input = append(input, messageItem{Role: string(msg.Role), Content: msg.Content})
			}
		}
	}
	return input
}

// DecodeResponse parses a Responses API reply on behalf of provider, which
// is stamped into any resulting error.
func DecodeResponse(provider ai.Provider, status int, body []byte) (*ai.NormalizedResponse, error) {
	if status < 200 || status > 299 {
		return nil, decodeError(provider, status, body)
	}

	var resp response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &ai.CompletionError{
			Kind:   ai.CompletionMalformed,
			Detail: "response body is not valid JSON",
			Err:    err,
		}
	}
	if len(resp.Output) == 0 {
		return nil, &ai.CompletionError{
			Kind:   ai.CompletionMalformed,
			Detail: "response contained no output items",
		}
	}

	out := &ai.NormalizedResponse{
		ID:    resp.ID,
		Model: resp.Model,
		Usage: ai.Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}

	incomplete := false
	for _, item := range resp.Output {
		switch item.Type {
		case "function_call":
			out.ToolCalls = append(out.ToolCalls, ai.ToolCall{
				ID:        item.CallID,
				Name:      item.Name,
				Arguments: item.Arguments,
			})
		case "message":
			if item.Status == "incomplete" {
				incomplete = true
			}
			for _, part := range item.Content {
				switch part.Type {
				case "output_text":
					out.Content += part.Text
				case "refusal":
					out.Refusal = part.Refusal
				}
			}
		}
	}

	switch {
	case len(out.ToolCalls) > 0:
		out.FinishReason = ai.FinishToolCalls
	case incomplete:
		out.FinishReason = ai.FinishLength
	default:
		out.FinishReason = ai.FinishStop
	}
	return out, nil
}
