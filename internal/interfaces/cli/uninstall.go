package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"braindrive.ai/plugindev/internal/core/domain"
)

// NewUninstallCommand creates the bd-plugin-uninstall command
func NewUninstallCommand() *cobra.Command {
	var (
		flags    configFlags
		selector domain.PluginSelector
	)

	cmd := newToolCommand(&cobra.Command{
		Use:   "bd-plugin-uninstall",
		Short: "Uninstall a BrainDrive plugin",
		Long: `Delete an installed plugin from a BrainDrive instance.

The plugin is named by its slug or by the composite id shown by the API
("<owner>_<slug>"). When both are given the id wins; with neither the
configured default slug is used.`,
		Example: `  # Uninstall the default plugin
  bd-plugin-uninstall

  # Uninstall by slug
  bd-plugin-uninstall --slug Kanban

  # Uninstall by composite id
  bd-plugin-uninstall --id 0c1f2e_Kanban`,
	})

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := flags.load(cmd.Flags())
		if err != nil {
			return err
		}
		if err := cfg.Validate(true); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		_, err = newContainer(cmd, cfg).UninstallService.Uninstall(cmd.Context(), selector)
		return err
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringVar(&selector.Slug, "slug", "", "Slug of the plugin to uninstall")
	cmd.Flags().StringVar(&selector.CompositeID, "id", "", "Composite plugin id (<owner>_<slug>); overrides --slug")

	return cmd
}
