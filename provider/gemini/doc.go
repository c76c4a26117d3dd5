// Package gemini implements the conform adapter for the Gemini
// generateContent API.
//
// The wire format differs from the OpenAI family in several ways the
// adapter absorbs: the model rides in the URL path, authentication uses the
// x-goog-api-key header, system messages become a systemInstruction block,
// structured output is declared through generationConfig.responseSchema in
// the API's own schema dialect, and tool calls carry no identifiers, so the
// adapter synthesizes UUIDs to correlate results.
package gemini
