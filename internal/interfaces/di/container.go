package di

import (
	"io"
	"net/http"
	"os"

	dkplog "github.com/deckhouse/deckhouse/pkg/log"

	"braindrive.ai/plugindev/internal/application/services"
	"braindrive.ai/plugindev/internal/core/ports"
	pluginhttp "braindrive.ai/plugindev/internal/http"
	"braindrive.ai/plugindev/internal/infrastructure/auth"
	configinfra "braindrive.ai/plugindev/internal/infrastructure/config"
	httpinfra "braindrive.ai/plugindev/internal/infrastructure/http"
	"braindrive.ai/plugindev/internal/infrastructure/logging"
	plugininfra "braindrive.ai/plugindev/internal/infrastructure/plugin"
	"braindrive.ai/plugindev/internal/infrastructure/process"
)

// Options carries the process-level collaborators of the container
type Options struct {
	Reporter ports.ProgressReporter
	Version  string

	// Stdout and Stderr receive the build script output; nil means os.Stdout and os.Stderr
	Stdout io.Writer
	Stderr io.Writer

	// Transport replaces the default HTTP transport, used by tests
	Transport http.RoundTripper

	// Logger replaces the logger built from the configuration
	Logger *dkplog.Logger
}

// Container holds all application dependencies for one run
type Container struct {
	Config *configinfra.Config
	Logger *dkplog.Logger

	// Infrastructure
	Authenticator *auth.LoginTokenProvider
	Gateway       *pluginhttp.PluginApiClient
	Executor      *process.Executor
	Builder       *plugininfra.ArchiveBuilder

	// Application services
	InstallService   *services.InstallService
	UninstallService *services.UninstallService
	Workflow         *services.DevWorkflow
}

// NewContainer wires infrastructure and services from cfg
func NewContainer(cfg *configinfra.Config, opts Options) *Container {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewLogger(cfg.LogLevel, cfg.Debug)
	}

	stdout, stderr := opts.Stdout, opts.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	headers := httpinfra.DefaultHeaders(opts.Version)

	c := &Container{
		Config: cfg,
		Logger: logger,
	}

	// 1. Infrastructure
	c.Authenticator = auth.NewLoginTokenProvider(
		cfg.APIEndpoint,
		cfg.Credentials,
		cfg.LoginTimeout,
		opts.Transport,
		headers,
		logger.Named("auth"),
	)
	c.Gateway = pluginhttp.NewPluginApiClient(cfg.APIEndpoint, pluginhttp.PluginClientOptions{
		InstallTimeout:   cfg.InstallTimeout,
		UninstallTimeout: cfg.UninstallTimeout,
		Headers:          headers,
		Transport:        opts.Transport,
	}, logger.Named("plugins"))
	c.Executor = process.NewExecutor(cfg.BuildTimeout, stdout, stderr, logger.Named("exec"))
	c.Builder = plugininfra.NewArchiveBuilder(
		cfg.PluginDir,
		cfg.BuildCommand,
		c.Executor,
		opts.Reporter,
		logger.Named("build"),
	)

	// 2. Application services
	c.InstallService = services.NewInstallService(c.Authenticator, c.Gateway, opts.Reporter, logger.Named("install"))
	c.UninstallService = services.NewUninstallService(
		c.Authenticator,
		c.Gateway,
		opts.Reporter,
		cfg.DefaultSlug,
		logger.Named("uninstall"),
	)
	c.Workflow = services.NewDevWorkflow(c.Builder, c.InstallService, cfg.Archive())

	logger.Debug("Container initialized")

	return c
}
