package gemini

import (
	"encoding/json"

	"github.com/google/uuid"
	ai "github.com/spetersoncode/conform"
	"google.golang.org/genai"
)

// Wire types for the generateContent API. Field names are camelCase on the
// wire; schema fields reuse genai.Schema, which marshals to the shape the
// API expects.
type request struct {
	Contents          []content         `json:"contents"`
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
	Tools             []toolDeclaration `json:"tools,omitempty"`
	ToolConfig        *toolConfig       `json:"toolConfig,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text             string            `json:"text,omitempty"`
	FunctionCall     *functionCall     `json:"functionCall,omitempty"`
	FunctionResponse *functionResponse `json:"functionResponse,omitempty"`
}

type functionCall struct {
	Name string          `json:"name"`
	Args json.RawMessage `json:"args,omitempty"`
}

type functionResponse struct {
	Name     string          `json:"name"`
	Response responsePayload `json:"response"`
}

type responsePayload struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

type generationConfig struct {
	MaxOutputTokens  int           `json:"maxOutputTokens,omitempty"`
	Temperature      *float64      `json:"temperature,omitempty"`
	TopP             *float64      `json:"topP,omitempty"`
	Seed             *int          `json:"seed,omitempty"`
	StopSequences    []string      `json:"stopSequences,omitempty"`
	ResponseMIMEType string        `json:"responseMimeType,omitempty"`
	ResponseSchema   *genai.Schema `json:"responseSchema,omitempty"`
}

type response struct {
	Candidates     []candidate     `json:"candidates"`
	PromptFeedback *promptFeedback `json:"promptFeedback"`
	UsageMetadata  *usageMetadata  `json:"usageMetadata"`
	ModelVersion   string          `json:"modelVersion"`
	ResponseID     string          `json:"responseId"`
}

type candidate struct {
	Content      *content `json:"content"`
	FinishReason string   `json:"finishReason"`
}

type promptFeedback struct {
	BlockReason string `json:"blockReason"`
}

type usageMetadata struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
	TotalTokenCount      int `json:"totalTokenCount"`
}

// EncodeRequest serializes the request into generateContent wire JSON.
func (a *Adapter) EncodeRequest(req *ai.CompletionRequest) ([]byte, error) {
	body := request{}
	body.Contents, body.SystemInstruction = convertMessages(req.Messages)

	cfg := generationConfig{
		MaxOutputTokens: req.Options.MaxTokens,
		Temperature:     req.Options.Temperature,
		TopP:            req.Options.TopP,
		Seed:            req.Options.Seed,
		StopSequences:   req.Options.StopSequences,
	}
	if req.Schema != nil {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = convertSchema(req.Schema.Schema)
	}
	if cfg.MaxOutputTokens > 0 || cfg.Temperature != nil || cfg.TopP != nil ||
		cfg.Seed != nil || len(cfg.StopSequences) > 0 || cfg.ResponseMIMEType != "" {
		body.GenerationConfig = &cfg
	}

	if len(req.Tools) > 0 {
		body.Tools = convertTools(req.Tools)
		body.ToolConfig = convertToolChoice(req.Options.ToolChoice)
	}
	return json.Marshal(body)
}

// convertMessages splits the transcript into contents and the system
// instruction. Gemini has no system role; system messages become
// systemInstruction parts in order.
func convertMessages(messages []ai.Message) ([]content, *content) {
	var contents []content
	var system *content
	for _, msg := range messages {
		switch msg.Role {
		case ai.RoleSystem:
			if msg.Content != "" {
				if system == nil {
					system = &content{}
				}
				system.Parts = append(system.Parts, part{Text: msg.Content})
			}
		case ai.RoleAssistant:
			c := content{Role: "model"}
			if msg.Content != "" {
				c.Parts = append(c.Parts, part{Text: msg.Content})
			}
			for _, tc := range msg.ToolCalls {
				c.Parts = append(c.Parts, part{FunctionCall: &functionCall{
					Name: tc.Name,
					Args: callArgs(tc.Arguments),
				}})
			}
			if len(c.Parts) > 0 {
				contents = append(contents, c)
			}
		case ai.RoleTool:
			c := content{Role: "user"}
			for _, tr := range msg.ToolResults {
				c.Parts = append(c.Parts, part{FunctionResponse: &functionResponse{
					Name: tr.Name,
					Response: responsePayload{
						Name:    tr.Name,
						Content: tr.Content,
					},
				}})
			}
			if len(c.Parts) > 0 {
				contents = append(contents, c)
			}
		default:
			if msg.Content != "" {
				contents = append(contents, content{
					Role:  "user",
					Parts: []part{{Text: msg.Content}},
				})
			}
		}
	}
	return contents, system
}

// callArgs turns a tool call's argument string into the args object Gemini
// expects. Arguments that are not valid JSON are dropped rather than
// corrupting the payload.
func callArgs(arguments string) json.RawMessage {
	if arguments == "" || !json.Valid([]byte(arguments)) {
		return nil
	}
	return json.RawMessage(arguments)
}

// DecodeResponse parses a generateContent reply into the normalized
// envelope. Gemini does not assign tool call IDs, so the adapter synthesizes
// one per call for result correlation.
func (a *Adapter) DecodeResponse(status int, body []byte) (*ai.NormalizedResponse, error) {
	if status < 200 || status > 299 {
		return nil, decodeError(status, body)
	}

	var resp response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &ai.CompletionError{
			Kind:   ai.CompletionMalformed,
			Detail: "response body is not valid JSON",
			Err:    err,
		}
	}

	out := &ai.NormalizedResponse{
		ID:    resp.ResponseID,
		Model: resp.ModelVersion,
	}
	if resp.UsageMetadata != nil {
		out.Usage = ai.Usage{
			InputTokens:  resp.UsageMetadata.PromptTokenCount,
			OutputTokens: resp.UsageMetadata.CandidatesTokenCount,
			TotalTokens:  resp.UsageMetadata.TotalTokenCount,
		}
	}

	if len(resp.Candidates) == 0 {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			out.Refusal = "prompt blocked: " + resp.PromptFeedback.BlockReason
			out.FinishReason = ai.FinishContentFilter
			return out, nil
		}
		return nil, &ai.CompletionError{
			Kind:   ai.CompletionMalformed,
			Detail: "response contained no candidates",
		}
	}

	cand := resp.Candidates[0]
	if cand.Content != nil {
		for _, p := range cand.Content.Parts {
			if p.Text != "" {
				out.Content += p.Text
			}
			if p.FunctionCall != nil {
				out.ToolCalls = append(out.ToolCalls, ai.ToolCall{
					ID:        uuid.NewString(),
					Name:      p.FunctionCall.Name,
					Arguments: argumentsString(p.FunctionCall.Args),
				})
			}
		}
	}

	if len(out.ToolCalls) > 0 {
		out.FinishReason = ai.FinishToolCalls
	} else {
		out.FinishReason = convertFinishReason(cand.FinishReason)
	}
	return out, nil
}

func argumentsString(args json.RawMessage) string {
	if len(args) == 0 {
		return "{}"
	}
	return string(args)
}

func convertFinishReason(reason string) ai.FinishReason {
	switch reason {
	case "STOP":
		return ai.FinishStop
	case "MAX_TOKENS":
		return ai.FinishLength
	case "SAFETY", "PROHIBITED_CONTENT", "BLOCKLIST":
		return ai.FinishContentFilter
	default:
		return ai.FinishUnknown
	}
}
