package httpinfra

import (
	"net/http"
	"time"

	"github.com/hashicorp/go-cleanhttp"

	"braindrive.ai/plugindev/internal/core/domain"
)

// NewClient returns a client on a fresh, unshared transport. A nil base
// keeps the clean default transport; tests inject their own.
func NewClient(base http.RoundTripper, timeout time.Duration) *http.Client {
	client := cleanhttp.DefaultClient()
	if base != nil {
		client.Transport = base
	}
	client.Timeout = timeout
	return client
}

// NewAuthorizedClient returns a client that sends token on every request
func NewAuthorizedClient(base http.RoundTripper, token domain.AuthToken, timeout time.Duration) *http.Client {
	client := NewClient(base, timeout)
	client.Transport = NewRoundTripperWithAuth(client.Transport, token)
	return client
}

// IsSuccess reports whether status is a 2xx code
func IsSuccess(status int) bool {
	return status >= 200 && status < 300
}
