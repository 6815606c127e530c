package configinfra

import (
	"time"

	"braindrive.ai/plugindev/internal/core/domain"
)

const (
	DefaultAPIEndpoint      = "http://localhost:8205"
	DefaultPluginName       = "BrainDrive-InfiniteCraft-Community-Plugin"
	DefaultPluginVersion    = "1.0.0"
	DefaultBuildCommand     = "./build_archive.py"
	DefaultSlug             = "InfiniteCraft"
	DefaultConfigFile       = "plugin-dev.json"
	DefaultLoginTimeout     = 30 * time.Second
	DefaultInstallTimeout   = 180 * time.Second
	DefaultUninstallTimeout = 60 * time.Second
	DefaultBuildTimeout     = 5 * time.Minute
)

// Config holds everything both tools need for one run
type Config struct {
	APIEndpoint   string
	Credentials   domain.Credentials
	PluginName    string
	PluginVersion string
	PluginDir     string
	BuildCommand  string
	DefaultSlug   string
	LogLevel      string
	Debug         bool

	LoginTimeout     time.Duration
	InstallTimeout   time.Duration
	UninstallTimeout time.Duration
	BuildTimeout     time.Duration

	// Source is the config file that was read, empty when none was found
	Source string
}

// DefaultConfig returns the built-in configuration. Credentials have no default.
func DefaultConfig() *Config {
	return &Config{
		APIEndpoint:      DefaultAPIEndpoint,
		PluginName:       DefaultPluginName,
		PluginVersion:    DefaultPluginVersion,
		PluginDir:        ".",
		BuildCommand:     DefaultBuildCommand,
		DefaultSlug:      DefaultSlug,
		LogLevel:         "warn",
		LoginTimeout:     DefaultLoginTimeout,
		InstallTimeout:   DefaultInstallTimeout,
		UninstallTimeout: DefaultUninstallTimeout,
		BuildTimeout:     DefaultBuildTimeout,
	}
}

// Archive describes the archive the configured plugin builds into
func (c *Config) Archive() domain.ArchivePackage {
	return domain.ArchivePackage{
		Name:    c.PluginName,
		Version: c.PluginVersion,
		Dir:     c.PluginDir,
	}
}
