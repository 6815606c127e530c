package configinfra

import (
	"fmt"
	"os"
	"time"
)

const envPrefix = "BRAINDRIVE_"

// EnvConfigPath names the variable that points at the config file
const EnvConfigPath = envPrefix + "CONFIG_PATH"

// EnvLoader applies BRAINDRIVE_* environment variables
type EnvLoader struct {
	lookup func(string) (string, bool)
}

func NewEnvLoader() *EnvLoader { return &EnvLoader{lookup: os.LookupEnv} }

// Apply overlays every non-empty variable onto cfg
func (l *EnvLoader) Apply(cfg *Config) error {
	values := map[string]*string{
		"API_ENDPOINT":   &cfg.APIEndpoint,
		"EMAIL":          &cfg.Credentials.Email,
		"PASSWORD":       &cfg.Credentials.Password,
		"PLUGIN_NAME":    &cfg.PluginName,
		"PLUGIN_VERSION": &cfg.PluginVersion,
		"PLUGIN_DIR":     &cfg.PluginDir,
		"BUILD_COMMAND":  &cfg.BuildCommand,
		"DEFAULT_SLUG":   &cfg.DefaultSlug,
		"LOG_LEVEL":      &cfg.LogLevel,
	}
	for suffix, dst := range values {
		if v, ok := l.lookup(envPrefix + suffix); ok && v != "" {
			*dst = v
		}
	}

	durations := map[string]*time.Duration{
		"LOGIN_TIMEOUT":     &cfg.LoginTimeout,
		"INSTALL_TIMEOUT":   &cfg.InstallTimeout,
		"UNINSTALL_TIMEOUT": &cfg.UninstallTimeout,
		"BUILD_TIMEOUT":     &cfg.BuildTimeout,
	}
	for suffix, dst := range durations {
		v, ok := l.lookup(envPrefix + suffix)
		if !ok || v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s%s: %w", envPrefix, suffix, err)
		}
		*dst = parsed
	}

	return nil
}
