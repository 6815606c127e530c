package httpinfra

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"braindrive.ai/plugindev/internal/core/domain"
)

func TestAuthorizedClient_SendsBearerToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Seen-Authorization", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewAuthorizedClient(nil, domain.AuthToken{Token: "abc123", Type: "bearer"}, 5*time.Second)

	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	require.NoError(t, err)
	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "Bearer abc123", resp.Header.Get("X-Seen-Authorization"))
	assert.Empty(t, req.Header.Get("Authorization"), "original request must not be modified")
}

func TestNewClient_AppliesTimeoutAndTransport(t *testing.T) {
	transport := &http.Transport{}
	client := NewClient(transport, 42*time.Second)

	assert.Equal(t, 42*time.Second, client.Timeout)
	assert.Same(t, transport, client.Transport)
}

func TestMergeHeaders_ExtraWins(t *testing.T) {
	merged := MergeHeaders(DefaultHeaders("1.2.3"), map[string]string{"Accept": "*/*"})

	assert.Equal(t, "braindrive-plugin-dev/1.2.3", merged["User-Agent"])
	assert.Equal(t, "*/*", merged["Accept"])
}

func TestIsSuccess(t *testing.T) {
	assert.True(t, IsSuccess(200))
	assert.True(t, IsSuccess(204))
	assert.False(t, IsSuccess(199))
	assert.False(t, IsSuccess(301))
	assert.False(t, IsSuccess(500))
}
