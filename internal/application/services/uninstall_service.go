package services

import (
	"context"
	"fmt"
	"log/slog"

	dkplog "github.com/deckhouse/deckhouse/pkg/log"

	"braindrive.ai/plugindev/internal/core/domain"
	"braindrive.ai/plugindev/internal/core/ports"
)

// UninstallService removes an installed plugin through the API
type UninstallService struct {
	auth        ports.Authenticator
	gateway     ports.PluginGateway
	reporter    ports.ProgressReporter
	defaultSlug string
	logger      *dkplog.Logger
}

// NewUninstallService creates a service that falls back to defaultSlug
// when the operator names no plugin
func NewUninstallService(
	auth ports.Authenticator,
	gateway ports.PluginGateway,
	reporter ports.ProgressReporter,
	defaultSlug string,
	logger *dkplog.Logger,
) *UninstallService {
	return &UninstallService{
		auth:        auth,
		gateway:     gateway,
		reporter:    reporter,
		defaultSlug: defaultSlug,
		logger:      logger,
	}
}

// Uninstall resolves the slug, logs in and deletes the plugin
func (s *UninstallService) Uninstall(ctx context.Context, selector domain.PluginSelector) (*domain.ServerResponse, error) {
	slug := selector.ResolveSlug(s.defaultSlug)
	if slug == "" {
		return nil, fmt.Errorf("cannot uninstall %q: %w", selector.CompositeID, domain.ErrEmptySlug)
	}

	s.logger.Debug("Resolved plugin slug",
		slog.String("slug", slug),
		slog.String("id", selector.CompositeID))

	token, err := authenticate(ctx, s.auth, s.reporter)
	if err != nil {
		return nil, err
	}

	s.reporter.Step("Deleting plugin '%s' via %s", slug, s.gateway.UninstallURL(slug))

	resp, err := s.gateway.Uninstall(ctx, token, slug)
	if err != nil {
		s.reporter.Failure("Plugin deletion failed", err)
		return nil, err
	}

	s.logger.Info("Plugin uninstalled", slog.String("slug", slug), slog.Int("status", resp.StatusCode))
	s.reporter.Success("Plugin deletion request succeeded.")
	s.reporter.Response(resp)

	return resp, nil
}
