package httpinfra

import (
	"net/http"

	"braindrive.ai/plugindev/internal/core/domain"
)

// RoundTripperWithAuth adds a bearer Authorization header to every request.
// The token is fixed for the lifetime of the round tripper and never refreshed.
type RoundTripperWithAuth struct {
	base  http.RoundTripper
	token domain.AuthToken
}

func NewRoundTripperWithAuth(base http.RoundTripper, token domain.AuthToken) *RoundTripperWithAuth {
	if base == nil {
		base = http.DefaultTransport
	}
	return &RoundTripperWithAuth{base: base, token: token}
}

func (t *RoundTripperWithAuth) RoundTrip(req *http.Request) (*http.Response, error) {
	newReq := req.Clone(req.Context())
	newReq.Header.Set("Authorization", t.token.AuthorizationHeader())
	return t.base.RoundTrip(newReq)
}
