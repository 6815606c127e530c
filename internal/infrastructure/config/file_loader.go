package configinfra

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/tidwall/jsonc"
)

// fileConfig mirrors the JSON config file. Durations are strings such as "30s".
type fileConfig struct {
	APIEndpoint      *string `json:"api_endpoint"`
	Email            *string `json:"email"`
	Password         *string `json:"password"`
	PluginName       *string `json:"plugin_name"`
	PluginVersion    *string `json:"plugin_version"`
	PluginDir        *string `json:"plugin_dir"`
	BuildCommand     *string `json:"build_command"`
	DefaultSlug      *string `json:"default_slug"`
	LogLevel         *string `json:"log_level"`
	LoginTimeout     *string `json:"login_timeout"`
	InstallTimeout   *string `json:"install_timeout"`
	UninstallTimeout *string `json:"uninstall_timeout"`
	BuildTimeout     *string `json:"build_timeout"`
}

// FileLoader applies a JSON config file. Comments and trailing commas are accepted.
type FileLoader struct {
	path     string
	required bool
}

// NewFileLoader creates a loader for path. When required is false a missing
// file is silently skipped.
func NewFileLoader(path string, required bool) *FileLoader {
	return &FileLoader{path: path, required: required}
}

// Apply overlays the file values onto cfg and reports whether a file was read
func (l *FileLoader) Apply(cfg *Config) (bool, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !l.required {
			return false, nil
		}
		return false, fmt.Errorf("failed to read config file %s: %w", l.path, err)
	}

	var fc fileConfig
	if err := json.Unmarshal(jsonc.ToJSON(data), &fc); err != nil {
		return false, fmt.Errorf("failed to parse config file %s: %w", l.path, err)
	}

	setString(&cfg.APIEndpoint, fc.APIEndpoint)
	setString(&cfg.Credentials.Email, fc.Email)
	setString(&cfg.Credentials.Password, fc.Password)
	setString(&cfg.PluginName, fc.PluginName)
	setString(&cfg.PluginVersion, fc.PluginVersion)
	setString(&cfg.PluginDir, fc.PluginDir)
	setString(&cfg.BuildCommand, fc.BuildCommand)
	setString(&cfg.DefaultSlug, fc.DefaultSlug)
	setString(&cfg.LogLevel, fc.LogLevel)

	durations := []struct {
		key   string
		value *string
		dst   *time.Duration
	}{
		{"login_timeout", fc.LoginTimeout, &cfg.LoginTimeout},
		{"install_timeout", fc.InstallTimeout, &cfg.InstallTimeout},
		{"uninstall_timeout", fc.UninstallTimeout, &cfg.UninstallTimeout},
		{"build_timeout", fc.BuildTimeout, &cfg.BuildTimeout},
	}
	for _, d := range durations {
		if d.value == nil {
			continue
		}
		parsed, err := time.ParseDuration(*d.value)
		if err != nil {
			return false, fmt.Errorf("invalid %s in %s: %w", d.key, l.path, err)
		}
		*d.dst = parsed
	}

	return true, nil
}

func setString(dst *string, value *string) {
	if value != nil {
		*dst = *value
	}
}
