package utils

import (
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly,
// while allowing extension with additional application-specific behavior.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates and returns a new HTTPClient instance
// with a default-configured underlying resty.Client.
//
// Each call returns an independent client instance with its own
// configuration, connection pool, and state.
func NewHTTPClient() *HTTPClient {
	return &HTTPClient{Client: resty.New()}
}

// NewHTTPClientWithRetry returns a client that retries transport failures
// and 5xx responses of idempotent requests retryCount times with backoff
// starting at waitTime. POST is never repeated.
// Retries live here, in the transport, never in the crypto code.
func NewHTTPClientWithRetry(timeout time.Duration, retryCount int, waitTime time.Duration) *HTTPClient {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(retryCount).
		SetRetryWaitTime(waitTime).
		SetRetryMaxWaitTime(8 * waitTime).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if !idempotent(r) {
				return false
			}
			return err != nil || r.StatusCode() >= 500
		})

	return &HTTPClient{Client: client}
}

func idempotent(r *resty.Response) bool {
	if r == nil || r.Request == nil {
		return false
	}
	switch r.Request.Method {
	case http.MethodGet, http.MethodHead, http.MethodPut, http.MethodDelete:
		return true
	}
	return false
}
