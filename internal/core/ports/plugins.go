package ports

import (
	"context"

	"braindrive.ai/plugindev/internal/core/domain"
)

// Authenticator exchanges the configured credentials for a bearer token
type Authenticator interface {
	// Login performs one call to the login endpoint
	Login(ctx context.Context) (domain.AuthToken, error)

	// Account returns the identity used to log in, for display
	Account() string
}

// ArchiveBuilder produces a versioned plugin archive and returns its path
type ArchiveBuilder interface {
	Build(ctx context.Context, name, version string) (string, error)
}

// PluginGateway talks to the plugin management endpoints
type PluginGateway interface {
	// Install uploads the archive at archivePath
	Install(ctx context.Context, token domain.AuthToken, archivePath string) (*domain.ServerResponse, error)

	// Uninstall removes the plugin identified by slug
	Uninstall(ctx context.Context, token domain.AuthToken, slug string) (*domain.ServerResponse, error)

	// InstallURL returns the endpoint used by Install
	InstallURL() string

	// UninstallURL returns the endpoint used by Uninstall for slug
	UninstallURL(slug string) string
}

// ProgressReporter announces workflow steps to the operator
type ProgressReporter interface {
	Step(format string, args ...any)
	Success(message string)
	Failure(message string, err error)
	Response(resp *domain.ServerResponse)
}
