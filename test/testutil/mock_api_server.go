package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"braindrive.ai/plugindev/internal/core/domain"
)

const (
	LoginPath   = "/api/v1/auth/login"
	InstallPath = "/api/v1/plugins/install"
)

// UninstallPath returns the uninstall endpoint path for slug
func UninstallPath(slug string) string {
	return "/api/v1/plugins/" + slug + "/uninstall"
}

// MockAPIServer is a fake BrainDrive plugin management API for tests
type MockAPIServer struct {
	*httptest.Server
	Config     MockAPIConfig
	RequestLog []RequestInfo
	Uploads    []UploadInfo
	mu         sync.Mutex
}

// MockAPIConfig contains all configuration options for the mock server
type MockAPIConfig struct {
	// Login settings
	Credentials domain.Credentials
	AccessToken string

	// Plugins that can be uninstalled, by slug
	InstalledPlugins map[string]bool

	// A non-zero InstallStatus rejects uploads with InstallBody
	InstallStatus int
	InstallBody   string

	ResponseDelay time.Duration

	// Custom handlers for specific paths
	CustomHandlers map[string]http.HandlerFunc
}

// RequestInfo captures information about each request for test assertions
type RequestInfo struct {
	Method  string
	Path    string
	Headers http.Header
	Body    []byte
}

// UploadInfo describes one multipart install upload
type UploadInfo struct {
	Method      string
	FileName    string
	PartName    string
	ContentType string
	Content     []byte
}

// MockAPIServerBuilder provides a fluent interface for configuring the mock server
type MockAPIServerBuilder struct {
	t      *testing.T
	config MockAPIConfig
}

// NewMockAPIServer creates a new mock API server builder
func NewMockAPIServer(t *testing.T) *MockAPIServerBuilder {
	return &MockAPIServerBuilder{
		t: t,
		config: MockAPIConfig{
			Credentials:      domain.Credentials{Email: "dev@example.com", Password: "secret"},
			AccessToken:      "test-token",
			InstalledPlugins: make(map[string]bool),
			CustomHandlers:   make(map[string]http.HandlerFunc),
		},
	}
}

// WithCredentials sets the only credentials the login endpoint accepts
func (b *MockAPIServerBuilder) WithCredentials(email, password string) *MockAPIServerBuilder {
	b.config.Credentials = domain.Credentials{Email: email, Password: password}
	return b
}

// WithAccessToken sets the token issued on login
func (b *MockAPIServerBuilder) WithAccessToken(token string) *MockAPIServerBuilder {
	b.config.AccessToken = token
	return b
}

// WithInstalledPlugin marks slug as installed
func (b *MockAPIServerBuilder) WithInstalledPlugin(slug string) *MockAPIServerBuilder {
	b.config.InstalledPlugins[slug] = true
	return b
}

// WithInstallRejection makes every upload fail with status and body
func (b *MockAPIServerBuilder) WithInstallRejection(status int, body string) *MockAPIServerBuilder {
	b.config.InstallStatus = status
	b.config.InstallBody = body
	return b
}

// WithResponseDelay adds artificial delay to responses
func (b *MockAPIServerBuilder) WithResponseDelay(delay time.Duration) *MockAPIServerBuilder {
	b.config.ResponseDelay = delay
	return b
}

// WithCustomHandler adds a custom handler for a specific path
func (b *MockAPIServerBuilder) WithCustomHandler(path string, handler http.HandlerFunc) *MockAPIServerBuilder {
	b.config.CustomHandlers[path] = handler
	return b
}

// Build starts the configured mock API server. It is closed when the test ends.
func (b *MockAPIServerBuilder) Build() *MockAPIServer {
	mock := &MockAPIServer{
		Config:     b.config,
		RequestLog: []RequestInfo{},
	}

	mock.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.logRequest(r)

		if b.config.ResponseDelay > 0 {
			select {
			case <-time.After(b.config.ResponseDelay):
			case <-r.Context().Done():
				return
			}
		}

		if handler, exists := b.config.CustomHandlers[r.URL.Path]; exists {
			handler(w, r)
			return
		}

		switch {
		case r.URL.Path == LoginPath && r.Method == http.MethodPost:
			mock.handleLogin(w, r)

		case r.URL.Path == InstallPath && r.Method == http.MethodPost:
			mock.handleInstall(w, r)

		case r.Method == http.MethodDelete:
			if slug, ok := matchUninstallPath(r.URL.Path); ok {
				mock.handleUninstall(w, r, slug)
				return
			}
			http.NotFound(w, r)

		default:
			http.NotFound(w, r)
		}
	}))
	b.t.Cleanup(mock.Close)

	return mock
}

func (m *MockAPIServer) logRequest(r *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var body []byte
	if r.Body != nil {
		body, _ = io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewBuffer(body))
	}

	m.RequestLog = append(m.RequestLog, RequestInfo{
		Method:  r.Method,
		Path:    r.URL.Path,
		Headers: r.Header.Clone(),
		Body:    body,
	})
}

func (m *MockAPIServer) authorized(r *http.Request) bool {
	return r.Header.Get("Authorization") == "Bearer "+m.Config.AccessToken
}

func (m *MockAPIServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds domain.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"detail": "Invalid request body"})
		return
	}

	if creds != m.Config.Credentials {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "Invalid email or password"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"access_token": m.Config.AccessToken,
		"token_type":   "bearer",
	})
}

func (m *MockAPIServer) handleInstall(w http.ResponseWriter, r *http.Request) {
	if !m.authorized(r) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "Not authenticated"})
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"detail": err.Error()})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "file is required"})
		return
	}
	defer file.Close()
	content, _ := io.ReadAll(file)

	m.mu.Lock()
	m.Uploads = append(m.Uploads, UploadInfo{
		Method:      r.FormValue("method"),
		FileName:    r.FormValue("filename"),
		PartName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Content:     content,
	})
	m.mu.Unlock()

	if m.Config.InstallStatus != 0 {
		w.WriteHeader(m.Config.InstallStatus)
		w.Write([]byte(m.Config.InstallBody))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"message": "Plugin installed successfully",
		"data":    map[string]any{"filename": header.Filename},
	})
}

func (m *MockAPIServer) handleUninstall(w http.ResponseWriter, r *http.Request, slug string) {
	if !m.authorized(r) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "Not authenticated"})
		return
	}

	m.mu.Lock()
	installed := m.Config.InstalledPlugins[slug]
	delete(m.Config.InstalledPlugins, slug)
	m.mu.Unlock()

	if !installed {
		writeJSON(w, http.StatusNotFound, map[string]any{"detail": "Plugin '" + slug + "' not found"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"message": "Plugin '" + slug + "' deleted successfully",
	})
}

func matchUninstallPath(path string) (string, bool) {
	rest, ok := strings.CutPrefix(path, "/api/v1/plugins/")
	if !ok {
		return "", false
	}
	slug, ok := strings.CutSuffix(rest, "/uninstall")
	if !ok || slug == "" {
		return "", false
	}
	return slug, true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// Utility methods for test assertions

// GetRequestCount returns the number of requests made to a specific path
func (m *MockAPIServer) GetRequestCount(path string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, req := range m.RequestLog {
		if req.Path == path {
			count++
		}
	}
	return count
}

// TotalRequests returns the number of requests made to any path
func (m *MockAPIServer) TotalRequests() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.RequestLog)
}

// GetLastRequest returns the most recent request to a specific path
func (m *MockAPIServer) GetLastRequest(path string) *RequestInfo {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := len(m.RequestLog) - 1; i >= 0; i-- {
		if m.RequestLog[i].Path == path {
			req := m.RequestLog[i]
			return &req
		}
	}
	return nil
}

// LastUpload returns the most recent install upload
func (m *MockAPIServer) LastUpload() *UploadInfo {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.Uploads) == 0 {
		return nil
	}
	upload := m.Uploads[len(m.Uploads)-1]
	return &upload
}

// IsInstalled reports whether slug is still installed
func (m *MockAPIServer) IsInstalled(slug string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Config.InstalledPlugins[slug]
}
