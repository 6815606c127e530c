package ports

import (
	"context"

	"braindrive.ai/plugindev/internal/core/domain"
)

// CommandExecutor runs external commands to completion
type CommandExecutor interface {
	// Run blocks until the command exits. A non-zero exit is reported as an error.
	Run(ctx context.Context, cmd domain.Command) error
}
