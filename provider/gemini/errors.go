package gemini

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	ai "github.com/spetersoncode/conform"
)

type errorEnvelope struct {
	Error *apiError `json:"error"`
}

type apiError struct {
	Code    int           `json:"code"`
	Message string        `json:"message"`
	Status  string        `json:"status"`
	Details []errorDetail `json:"details"`
}

type errorDetail struct {
	Type       string `json:"@type"`
	RetryDelay string `json:"retryDelay"`
}

// decodeError maps a non-2xx exchange onto *ai.ProviderError. Rate limit
// responses carry a RetryInfo detail with the server-suggested delay, which
// is surfaced through the error's RetryAfter.
func decodeError(status int, body []byte) *ai.ProviderError {
	perr := &ai.ProviderError{
		Provider: ai.ProviderGemini,
		Code:     status,
		Message:  http.StatusText(status),
	}

	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error != nil {
		if env.Error.Message != "" {
			perr.Message = env.Error.Message
		}
		perr.APICode = env.Error.Status
		perr.RetryDelay = retryDelay(env.Error.Details)
		return perr
	}

	if msg := strings.TrimSpace(string(body)); msg != "" {
		perr.Message = msg
	}
	return perr
}

func retryDelay(details []errorDetail) time.Duration {
	for _, d := range details {
		if !strings.HasSuffix(d.Type, "RetryInfo") || d.RetryDelay == "" {
			continue
		}
		if delay, err := time.ParseDuration(d.RetryDelay); err == nil && delay > 0 {
			return delay
		}
	}
	return 0
}
