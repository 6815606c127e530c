package plugininfra

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	dkplog "github.com/deckhouse/deckhouse/pkg/log"

	"braindrive.ai/plugindev/internal/core/domain"
	"braindrive.ai/plugindev/internal/core/ports"
)

// bytecodeCacheDir is removed from the plugin sources before packaging
const bytecodeCacheDir = "__pycache__"

// ArchiveBuilder packages plugin sources by running the external build script
type ArchiveBuilder struct {
	pluginDir    string
	buildCommand string
	executor     ports.CommandExecutor
	reporter     ports.ProgressReporter
	logger       *dkplog.Logger
}

// NewArchiveBuilder creates a builder that runs buildCommand inside pluginDir.
// buildCommand may carry its own arguments, e.g. "python3 build_archive.py".
func NewArchiveBuilder(
	pluginDir string,
	buildCommand string,
	executor ports.CommandExecutor,
	reporter ports.ProgressReporter,
	logger *dkplog.Logger,
) *ArchiveBuilder {
	return &ArchiveBuilder{
		pluginDir:    pluginDir,
		buildCommand: buildCommand,
		executor:     executor,
		reporter:     reporter,
		logger:       logger,
	}
}

// Build cleans stale bytecode caches, runs "<build command> <name> <version>"
// and returns the path of the produced archive
func (b *ArchiveBuilder) Build(ctx context.Context, name, version string) (string, error) {
	if _, err := semver.NewVersion(version); err != nil {
		return "", fmt.Errorf("invalid plugin version %q: %w", version, err)
	}

	archive := domain.ArchivePackage{Name: name, Version: version, Dir: b.pluginDir}

	removed := b.cleanBytecodeCaches(archive.SourceDir())
	b.logger.Debug("Removed bytecode caches",
		slog.String("source", archive.SourceDir()),
		slog.Int("count", removed))

	var executable string
	var args []string
	if fields := strings.Fields(b.buildCommand); len(fields) > 0 {
		executable, args = fields[0], fields[1:]
	}

	cmd, err := domain.NewCommand(executable, append(args, name, version), b.pluginDir)
	if err != nil {
		return "", fmt.Errorf("invalid build command: %w", err)
	}
	cmd = cmd.WithEnv("PYTHONDONTWRITEBYTECODE", "1")

	b.reporter.Step("Running: %s", cmd)
	if err := b.executor.Run(ctx, cmd); err != nil {
		return "", err
	}

	if _, err := os.Stat(archive.Path()); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &domain.MissingArtifactError{Path: archive.Path()}
		}
		return "", fmt.Errorf("failed to inspect archive: %w", err)
	}

	b.logger.Info("Built plugin archive", slog.String("archive", archive.Path()))

	return archive.Path(), nil
}

// cleanBytecodeCaches removes every __pycache__ directory below root and
// returns how many were removed. Removal failures are ignored.
func (b *ArchiveBuilder) cleanBytecodeCaches(root string) int {
	var caches []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() && d.Name() == bytecodeCacheDir {
			caches = append(caches, path)
			return filepath.SkipDir
		}
		return nil
	})
	if err != nil {
		b.logger.Debug("Failed to scan plugin sources", slog.String("error", err.Error()))
	}

	removed := 0
	for _, cache := range caches {
		if err := os.RemoveAll(cache); err != nil {
			b.logger.Debug("Failed to remove cache", slog.String("path", cache), slog.String("error", err.Error()))
			continue
		}
		removed++
	}

	return removed
}

var _ ports.ArchiveBuilder = (*ArchiveBuilder)(nil)
