package cli

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	configinfra "braindrive.ai/plugindev/internal/infrastructure/config"
	"braindrive.ai/plugindev/internal/interfaces/di"
)

var (
	Version   = "dev"     // Overridden by ldflags
	BuildTime = "unknown" // Overridden by ldflags
)

// newToolCommand applies the settings shared by both tools
func newToolCommand(cmd *cobra.Command) *cobra.Command {
	cmd.Version = Version
	cmd.Args = cobra.NoArgs
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	cmd.SetVersionTemplate(fmt.Sprintf("{{.Name}} version {{.Version}}\nBuild time: %s\nGo version: %s\nPlatform: %s/%s\n",
		BuildTime, goVersion(), runtime.GOOS, runtime.GOARCH))

	return cmd
}

// goVersion returns the Go version used to build the binary
func goVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		return info.GoVersion
	}
	return "unknown"
}

// newContainer wires a run against the command's output streams
func newContainer(cmd *cobra.Command, cfg *configinfra.Config) *di.Container {
	return di.NewContainer(cfg, di.Options{
		Reporter: NewConsoleReporter(cmd.OutOrStdout(), cmd.ErrOrStderr()),
		Version:  Version,
		Stdout:   cmd.OutOrStdout(),
		Stderr:   cmd.ErrOrStderr(),
	})
}

// Execute runs cmd and exits with status 1 on failure
func Execute(ctx context.Context, cmd *cobra.Command) {
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		os.Exit(1)
	}
}
