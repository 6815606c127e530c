package domain

import (
	"bytes"
	"encoding/json"
)

// ServerResponse is the answer of the plugin management API, kept verbatim
type ServerResponse struct {
	StatusCode int
	Body       []byte
}

// IsJSON reports whether the body parses as a JSON document
func (r *ServerResponse) IsJSON() bool {
	return len(bytes.TrimSpace(r.Body)) > 0 && json.Valid(r.Body)
}

// Text returns the body as received, without surrounding whitespace
func (r *ServerResponse) Text() string {
	return string(bytes.TrimSpace(r.Body))
}
