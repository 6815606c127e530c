package configinfra

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/hashicorp/go-multierror"
)

// Validate checks the configuration and reports every problem at once.
// Credentials are only required for runs that talk to the API.
func (c *Config) Validate(requireCredentials bool) error {
	var result *multierror.Error

	if err := ValidateAPIEndpoint(c.APIEndpoint); err != nil {
		result = multierror.Append(result, err)
	}

	if requireCredentials {
		if strings.TrimSpace(c.Credentials.Email) == "" {
			result = multierror.Append(result, fmt.Errorf("email is required (set %sEMAIL or --email)", envPrefix))
		}
		if c.Credentials.Password == "" {
			result = multierror.Append(result, fmt.Errorf("password is required (set %sPASSWORD or --password)", envPrefix))
		}
	}

	if strings.TrimSpace(c.PluginName) == "" {
		result = multierror.Append(result, fmt.Errorf("plugin name cannot be empty"))
	}
	if _, err := semver.NewVersion(c.PluginVersion); err != nil {
		result = multierror.Append(result, fmt.Errorf("invalid plugin version %q: %w", c.PluginVersion, err))
	}
	if strings.TrimSpace(c.BuildCommand) == "" {
		result = multierror.Append(result, fmt.Errorf("build command cannot be empty"))
	}

	timeouts := []struct {
		name  string
		value time.Duration
	}{
		{"login timeout", c.LoginTimeout},
		{"install timeout", c.InstallTimeout},
		{"uninstall timeout", c.UninstallTimeout},
		{"build timeout", c.BuildTimeout},
	}
	for _, t := range timeouts {
		if t.value <= 0 {
			result = multierror.Append(result, fmt.Errorf("%s must be positive, got %s", t.name, t.value))
		}
	}

	return result.ErrorOrNil()
}

// ValidateAPIEndpoint validates the API base URL
func ValidateAPIEndpoint(endpoint string) error {
	if endpoint == "" {
		return fmt.Errorf("API endpoint cannot be empty")
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("invalid URL format: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported URL scheme: %s (must be http or https)", u.Scheme)
	}

	if u.Host == "" {
		return fmt.Errorf("URL must include host")
	}

	return nil
}
