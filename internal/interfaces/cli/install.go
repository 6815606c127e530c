package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"braindrive.ai/plugindev/internal/application/services"
)

// NewInstallCommand creates the bd-plugin-install command
func NewInstallCommand() *cobra.Command {
	var (
		flags       configFlags
		buildOnly   bool
		installOnly bool
	)

	cmd := newToolCommand(&cobra.Command{
		Use:   "bd-plugin-install",
		Short: "Build and install a BrainDrive plugin",
		Long: `Build the plugin archive with the plugin's build script and upload it
to a BrainDrive instance.

Without flags the archive is built and then installed. Credentials are read
from the config file, BRAINDRIVE_EMAIL and BRAINDRIVE_PASSWORD, or the
--email and --password flags.`,
		Example: `  # Build and install
  bd-plugin-install --email dev@example.com --password secret

  # Only build the archive
  bd-plugin-install --build

  # Install an archive built earlier
  bd-plugin-install --install --plugin-version 1.2.0`,
	})

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		mode := services.ModeFromFlags(buildOnly, installOnly)

		cfg, err := flags.load(cmd.Flags())
		if err != nil {
			return err
		}
		if err := cfg.Validate(mode != services.ModeBuildOnly); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		container := newContainer(cmd, cfg)
		container.Logger.Debug("Starting plugin workflow",
			slog.String("mode", mode.String()),
			slog.String("config", cfg.Source),
			slog.String("archive", cfg.Archive().Path()))

		_, err = container.Workflow.Run(cmd.Context(), mode)
		return err
	}

	flags.register(cmd.Flags())
	cmd.Flags().BoolVar(&buildOnly, "build", false, "Only build the plugin archive")
	cmd.Flags().BoolVar(&installOnly, "install", false, "Only install the previously built archive")

	return cmd
}
