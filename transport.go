package conform

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"
)

// TransportRequest is a fully-formed provider exchange: the adapter has
// already chosen the URL, headers, and payload bytes.
type TransportRequest struct {
	URL     string
	Headers http.Header
	Body    []byte
}

// TransportResponse carries the raw result of an exchange. The status code is
// passed through untouched so the adapter can map provider error bodies.
type TransportResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Transport performs a single HTTP exchange. Implementations own timeout
// policy; the completion pipeline never retries. A network-level failure is
// returned as *TransportError, while non-2xx statuses are not errors here:
// they flow to the adapter, which understands the provider's error bodies.
type Transport interface {
	Send(ctx context.Context, req *TransportRequest) (*TransportResponse, error)
}

// DefaultTransportTimeout bounds a single exchange through the default
// transport. LLM generations are slow; this is deliberately generous.
const DefaultTransportTimeout = 60 * time.Second

// DefaultTransport is the shared transport used when a request does not
// configure its own.
var DefaultTransport Transport = NewHTTPTransport(HTTPTransportConfig{})

// HTTPTransport is the default Transport built on net/http.
type HTTPTransport struct {
	client    *http.Client
	userAgent string
}

// HTTPTransportConfig configures the default transport.
type HTTPTransportConfig struct {
	// Timeout bounds the whole exchange. Zero means
	// DefaultTransportTimeout.
	Timeout time.Duration
	// UserAgent overrides the User-Agent header. Empty means the library
	// default.
	UserAgent string
	// Client supplies a custom *http.Client. When set, Timeout is ignored.
	Client *http.Client
}

// NewHTTPTransport creates the default transport with the given config.
func NewHTTPTransport(cfg HTTPTransportConfig) *HTTPTransport {
	client := cfg.Client
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTransportTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = "conform/" + Version
	}
	return &HTTPTransport{client: client, userAgent: ua}
}

// Send posts the payload and reads the full response body. The context
// governs cancellation; the configured client timeout governs duration.
func (t *HTTPTransport) Send(ctx context.Context, req *TransportRequest) (*TransportResponse, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.URL, bytes.NewReader(req.Body))
	if err != nil {
		return nil, &TransportError{URL: req.URL, Err: err}
	}

	for key, values := range req.Headers {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}
	if httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if httpReq.Header.Get("User-Agent") == "" {
		httpReq.Header.Set("User-Agent", t.userAgent)
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, &TransportError{URL: req.URL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: req.URL, Err: err}
	}

	return &TransportResponse{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}
