package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"time"

	dkplog "github.com/deckhouse/deckhouse/pkg/log"

	"braindrive.ai/plugindev/internal/core/domain"
	"braindrive.ai/plugindev/internal/core/ports"
	httpinfra "braindrive.ai/plugindev/internal/infrastructure/http"
)

const (
	installPath        = "/api/v1/plugins/install"
	uninstallPathFmt   = "/api/v1/plugins/%s/uninstall"
	archiveContentType = "application/gzip"
	installMethodLocal = "local-file"
)

// PluginClientOptions configures a PluginApiClient
type PluginClientOptions struct {
	InstallTimeout   time.Duration
	UninstallTimeout time.Duration
	Headers          map[string]string
	// Transport replaces the clean default transport, mainly for tests
	Transport http.RoundTripper
}

// PluginApiClient handles the plugin lifecycle endpoints
type PluginApiClient struct {
	baseURL string
	opts    PluginClientOptions
	logger  *dkplog.Logger
}

// NewPluginApiClient creates a new plugin API client for baseURL
func NewPluginApiClient(baseURL string, opts PluginClientOptions, logger *dkplog.Logger) *PluginApiClient {
	return &PluginApiClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		opts:    opts,
		logger:  logger,
	}
}

// InstallURL returns the install endpoint
func (c *PluginApiClient) InstallURL() string {
	return c.baseURL + installPath
}

// UninstallURL returns the uninstall endpoint for slug. The slug is used verbatim.
func (c *PluginApiClient) UninstallURL(slug string) string {
	return c.baseURL + fmt.Sprintf(uninstallPathFmt, slug)
}

// Install uploads the archive as a multipart form with the file and its metadata.
// The archive file is closed before Install returns.
func (c *PluginApiClient) Install(ctx context.Context, token domain.AuthToken, archivePath string) (*domain.ServerResponse, error) {
	body, contentType, err := buildInstallForm(archivePath)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.InstallURL(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpinfra.ApplyHeaders(req, c.opts.Headers)
	req.Header.Set("Content-Type", contentType)

	c.logger.Debug("Uploading plugin archive",
		slog.String("url", c.InstallURL()),
		slog.String("archive", archivePath),
		slog.Int("size", body.Len()))

	resp, err := c.do(req, token, c.opts.InstallTimeout)
	if err != nil {
		return nil, err
	}

	if !httpinfra.IsSuccess(resp.StatusCode) {
		return nil, &domain.InstallError{StatusCode: resp.StatusCode, Body: resp.Body}
	}

	return resp, nil
}

// Uninstall issues DELETE on the uninstall endpoint of slug
func (c *PluginApiClient) Uninstall(ctx context.Context, token domain.AuthToken, slug string) (*domain.ServerResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.UninstallURL(slug), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpinfra.ApplyHeaders(req, c.opts.Headers)

	c.logger.Debug("Deleting plugin", slog.String("url", c.UninstallURL(slug)), slog.String("slug", slug))

	resp, err := c.do(req, token, c.opts.UninstallTimeout)
	if err != nil {
		return nil, err
	}

	if !httpinfra.IsSuccess(resp.StatusCode) {
		return nil, &domain.UninstallError{Slug: slug, StatusCode: resp.StatusCode, Body: resp.Body}
	}

	return resp, nil
}

func (c *PluginApiClient) do(req *http.Request, token domain.AuthToken, timeout time.Duration) (*domain.ServerResponse, error) {
	client := httpinfra.NewAuthorizedClient(c.opts.Transport, token, timeout)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug("Received response", slog.Int("status", resp.StatusCode), slog.Int("bytes", len(body)))

	return &domain.ServerResponse{StatusCode: resp.StatusCode, Body: body}, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// buildInstallForm encodes the metadata fields followed by the archive part
func buildInstallForm(archivePath string) (*bytes.Buffer, string, error) {
	archiveFile, err := os.Open(archivePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", &domain.MissingArtifactError{Path: archivePath}
		}
		return nil, "", fmt.Errorf("failed to open archive: %w", err)
	}
	defer archiveFile.Close()

	fileName := filepath.Base(archivePath)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if err := writer.WriteField("method", installMethodLocal); err != nil {
		return nil, "", fmt.Errorf("failed to write form field: %w", err)
	}
	if err := writer.WriteField("filename", fileName); err != nil {
		return nil, "", fmt.Errorf("failed to write form field: %w", err)
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(fileName)))
	header.Set("Content-Type", archiveContentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := io.Copy(part, archiveFile); err != nil {
		return nil, "", fmt.Errorf("failed to read archive: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finish form: %w", err)
	}

	return &buf, writer.FormDataContentType(), nil
}

var _ ports.PluginGateway = (*PluginApiClient)(nil)
