package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	dkplog "github.com/deckhouse/deckhouse/pkg/log"

	"braindrive.ai/plugindev/internal/core/domain"
	"braindrive.ai/plugindev/internal/core/ports"
	httpinfra "braindrive.ai/plugindev/internal/infrastructure/http"
)

const loginPath = "/api/v1/auth/login"

// LoginTokenProvider obtains a bearer token from the login endpoint
type LoginTokenProvider struct {
	apiEndpoint string
	credentials domain.Credentials
	httpClient  *http.Client
	headers     map[string]string
	logger      *dkplog.Logger
}

// NewLoginTokenProvider creates a provider that logs in with credentials.
// A nil transport uses a clean default transport.
func NewLoginTokenProvider(
	apiEndpoint string,
	credentials domain.Credentials,
	timeout time.Duration,
	transport http.RoundTripper,
	headers map[string]string,
	logger *dkplog.Logger,
) *LoginTokenProvider {
	return &LoginTokenProvider{
		apiEndpoint: apiEndpoint,
		credentials: credentials,
		httpClient:  httpinfra.NewClient(transport, timeout),
		headers:     headers,
		logger:      logger,
	}
}

// Account returns the email used to log in
func (p *LoginTokenProvider) Account() string {
	return p.credentials.Email
}

// LoginURL returns the login endpoint
func (p *LoginTokenProvider) LoginURL() string {
	return p.apiEndpoint + loginPath
}

// Login exchanges the credentials for a token. Every failure is an *domain.AuthError.
func (p *LoginTokenProvider) Login(ctx context.Context) (domain.AuthToken, error) {
	requestBody, err := json.Marshal(p.credentials)
	if err != nil {
		return domain.AuthToken{}, &domain.AuthError{Err: fmt.Errorf("failed to marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.LoginURL(), bytes.NewReader(requestBody))
	if err != nil {
		return domain.AuthToken{}, &domain.AuthError{Err: fmt.Errorf("failed to create request: %w", err)}
	}
	httpinfra.ApplyHeaders(req, httpinfra.MergeHeaders(p.headers, map[string]string{
		"Content-Type": "application/json",
	}))

	p.logger.Debug("Sending login request", slog.String("url", p.LoginURL()))

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return domain.AuthToken{}, &domain.AuthError{Err: fmt.Errorf("failed to send request: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.AuthToken{}, &domain.AuthError{Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if !httpinfra.IsSuccess(resp.StatusCode) {
		return domain.AuthToken{}, &domain.AuthError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var tokenResp domain.TokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return domain.AuthToken{}, &domain.AuthError{Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	if tokenResp.AccessToken == "" {
		return domain.AuthToken{}, &domain.AuthError{Err: domain.ErrMissingAccessToken}
	}

	p.logger.Debug("Login succeeded", slog.String("token_type", tokenResp.TokenType))

	return tokenResp.ToAuthToken(), nil
}

var _ ports.Authenticator = (*LoginTokenProvider)(nil)
