package configinfra

import (
	"fmt"
	"os"
	"strings"
)

// Overrides carries values given on the command line. Nil fields are unset.
type Overrides struct {
	APIEndpoint   *string
	Email         *string
	Password      *string
	PluginName    *string
	PluginVersion *string
	PluginDir     *string
	Debug         bool
}

// LoadOptions controls where configuration is read from
type LoadOptions struct {
	// ConfigPath is an explicit config file; it must exist when set
	ConfigPath string
	Overrides  Overrides
}

// Load builds the configuration from defaults, the config file, the
// environment and command-line overrides, in increasing precedence
func Load(opts LoadOptions) (*Config, error) {
	cfg := DefaultConfig()

	path, required := opts.ConfigPath, true
	if path == "" {
		if fromEnv := os.Getenv(EnvConfigPath); fromEnv != "" {
			path = fromEnv
		} else {
			path, required = DefaultConfigFile, false
		}
	}

	read, err := NewFileLoader(path, required).Apply(cfg)
	if err != nil {
		return nil, err
	}
	if read {
		cfg.Source = path
	}

	if err := NewEnvLoader().Apply(cfg); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	opts.Overrides.apply(cfg)

	cfg.APIEndpoint = strings.TrimRight(cfg.APIEndpoint, "/")

	return cfg, nil
}

func (o Overrides) apply(cfg *Config) {
	setString(&cfg.APIEndpoint, o.APIEndpoint)
	setString(&cfg.Credentials.Email, o.Email)
	setString(&cfg.Credentials.Password, o.Password)
	setString(&cfg.PluginName, o.PluginName)
	setString(&cfg.PluginVersion, o.PluginVersion)
	setString(&cfg.PluginDir, o.PluginDir)
	if o.Debug {
		cfg.Debug = true
	}
}
