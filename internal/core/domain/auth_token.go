package domain

import "time"

// Credentials identify the account used against the plugin management API
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthToken represents a bearer token obtained for a single process run
type AuthToken struct {
	Token    string
	Type     string // as reported by the server, e.g. "bearer"
	IssuedAt time.Time
}

// AuthorizationHeader returns the value for the Authorization header.
// The API always expects the Bearer scheme regardless of the reported type.
func (t AuthToken) AuthorizationHeader() string {
	return "Bearer " + t.Token
}

// TokenResponse represents the response from the login endpoint
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}

// ToAuthToken converts the response to an AuthToken
func (r *TokenResponse) ToAuthToken() AuthToken {
	return AuthToken{
		Token:    r.AccessToken,
		Type:     r.TokenType,
		IssuedAt: time.Now(),
	}
}
