package conform

import "net/http"

// Adapter translates between the provider-agnostic request and a provider's
// wire format. Implementations are stateless and safe for concurrent use.
//
// An adapter never performs network I/O itself: EncodeRequest produces the
// exact payload bytes, the Transport delivers them, and DecodeResponse
// interprets whatever came back, mapping provider-level failures into
// [ProviderError].
type Adapter interface {
	// Provider identifies which provider this adapter speaks for.
	Provider() Provider

	// Endpoint returns the full request URL for the given model.
	Endpoint(model string) string

	// Headers returns the headers for a request, including the provider's
	// authentication convention applied to creds.
	Headers(creds Credentials) http.Header

	// EncodeRequest serializes the request into the provider's wire format,
	// embedding the response schema and tool descriptors where the provider
	// expects them.
	EncodeRequest(req *CompletionRequest) ([]byte, error)

	// DecodeResponse parses raw response bytes into the normalized
	// envelope. A non-2xx status or an error object in the body yields a
	// *ProviderError with the provider's context preserved.
	DecodeResponse(status int, body []byte) (*NormalizedResponse, error)
}
