package services

import (
	"context"

	"braindrive.ai/plugindev/internal/core/domain"
	"braindrive.ai/plugindev/internal/core/ports"
)

// WorkflowMode selects which steps of the developer workflow run
type WorkflowMode int

const (
	ModeBuildAndInstall WorkflowMode = iota
	ModeBuildOnly
	ModeInstallOnly
)

// ModeFromFlags maps the --build and --install flags to a mode.
// --build wins when both are set.
func ModeFromFlags(buildOnly, installOnly bool) WorkflowMode {
	switch {
	case buildOnly:
		return ModeBuildOnly
	case installOnly:
		return ModeInstallOnly
	default:
		return ModeBuildAndInstall
	}
}

func (m WorkflowMode) String() string {
	switch m {
	case ModeBuildOnly:
		return "build"
	case ModeInstallOnly:
		return "install"
	default:
		return "build+install"
	}
}

// DevWorkflow builds the plugin archive and installs it
type DevWorkflow struct {
	builder   ports.ArchiveBuilder
	installer *InstallService
	archive   domain.ArchivePackage
}

// NewDevWorkflow creates a workflow for the given archive
func NewDevWorkflow(builder ports.ArchiveBuilder, installer *InstallService, archive domain.ArchivePackage) *DevWorkflow {
	return &DevWorkflow{
		builder:   builder,
		installer: installer,
		archive:   archive,
	}
}

// Run executes the steps of mode in order. A build failure stops the
// workflow before any install attempt. The response is nil for build-only runs.
func (w *DevWorkflow) Run(ctx context.Context, mode WorkflowMode) (*domain.ServerResponse, error) {
	archivePath := w.archive.Path()

	if mode != ModeInstallOnly {
		built, err := w.builder.Build(ctx, w.archive.Name, w.archive.Version)
		if err != nil {
			return nil, err
		}
		archivePath = built
	}

	if mode == ModeBuildOnly {
		return nil, nil
	}

	return w.installer.Install(ctx, archivePath)
}
