package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	dkplog "github.com/deckhouse/deckhouse/pkg/log"

	"braindrive.ai/plugindev/internal/core/domain"
	"braindrive.ai/plugindev/internal/core/ports"
)

// InstallService uploads a built plugin archive to the API
type InstallService struct {
	auth     ports.Authenticator
	gateway  ports.PluginGateway
	reporter ports.ProgressReporter
	logger   *dkplog.Logger
}

// NewInstallService creates a new install service
func NewInstallService(
	auth ports.Authenticator,
	gateway ports.PluginGateway,
	reporter ports.ProgressReporter,
	logger *dkplog.Logger,
) *InstallService {
	return &InstallService{
		auth:     auth,
		gateway:  gateway,
		reporter: reporter,
		logger:   logger,
	}
}

// Install checks the archive exists, logs in and uploads it.
// Nothing is sent over the network when the archive is missing.
func (s *InstallService) Install(ctx context.Context, archivePath string) (*domain.ServerResponse, error) {
	if err := checkArchive(archivePath); err != nil {
		return nil, err
	}

	token, err := authenticate(ctx, s.auth, s.reporter)
	if err != nil {
		return nil, err
	}

	s.reporter.Step("Uploading %s to %s", filepath.Base(archivePath), s.gateway.InstallURL())

	resp, err := s.gateway.Install(ctx, token, archivePath)
	if err != nil {
		s.reporter.Failure("Installation request failed", err)
		return nil, err
	}

	s.logger.Info("Plugin installed", slog.String("archive", archivePath), slog.Int("status", resp.StatusCode))
	s.reporter.Success("Installation request succeeded.")
	s.reporter.Response(resp)

	return resp, nil
}

func checkArchive(archivePath string) error {
	info, err := os.Stat(archivePath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &domain.MissingArtifactError{Path: archivePath}
	case err != nil:
		return fmt.Errorf("failed to inspect archive: %w", err)
	case info.IsDir():
		return &domain.MissingArtifactError{Path: archivePath}
	}
	return nil
}
