// Package openai implements the conform adapter for the OpenAI Responses
// API.
//
// The adapter is a pure codec: EncodeRequest produces the exact payload
// bytes and DecodeResponse interprets the reply, while delivery belongs to
// the configured [conform.Transport]. Structured output rides the request's
// text.format field as a named JSON schema; tools are encoded as strict
// function declarations with every parameter required, which is how the
// Responses API expects schema-constrained tools to be declared.
//
// # Usage
//
//	adapter := openai.New()
//	payload, err := adapter.EncodeRequest(req)
//
// The adapter is normally constructed indirectly through
// [provider.ForProvider] and driven by the llm package's completion loop.
// OpenRouter shares this wire format; see the openrouter sibling package.
package openai
