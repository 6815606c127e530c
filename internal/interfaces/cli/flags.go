package cli

import (
	"github.com/spf13/pflag"

	configinfra "braindrive.ai/plugindev/internal/infrastructure/config"
)

// configFlags are the configuration overrides accepted by both tools
type configFlags struct {
	configPath    string
	apiURL        string
	email         string
	password      string
	pluginName    string
	pluginVersion string
	pluginDir     string
	debug         bool
}

func (f *configFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.configPath, "config", "", "Config file path (default is ./"+configinfra.DefaultConfigFile+" when present)")
	fs.StringVar(&f.apiURL, "api-url", configinfra.DefaultAPIEndpoint, "BrainDrive API base URL")
	fs.StringVar(&f.email, "email", "", "Account email used to log in")
	fs.StringVar(&f.password, "password", "", "Account password used to log in")
	fs.StringVar(&f.pluginName, "plugin-name", configinfra.DefaultPluginName, "Plugin name used for the archive")
	fs.StringVar(&f.pluginVersion, "plugin-version", configinfra.DefaultPluginVersion, "Plugin version used for the archive")
	fs.StringVar(&f.pluginDir, "plugin-dir", ".", "Directory holding the build script and the plugin sources")
	fs.BoolVar(&f.debug, "debug", false, "Enable debug logging")
}

// load reads the configuration, letting only explicitly set flags override it
func (f *configFlags) load(fs *pflag.FlagSet) (*configinfra.Config, error) {
	return configinfra.Load(configinfra.LoadOptions{
		ConfigPath: f.configPath,
		Overrides: configinfra.Overrides{
			APIEndpoint:   changed(fs, "api-url", f.apiURL),
			Email:         changed(fs, "email", f.email),
			Password:      changed(fs, "password", f.password),
			PluginName:    changed(fs, "plugin-name", f.pluginName),
			PluginVersion: changed(fs, "plugin-version", f.pluginVersion),
			PluginDir:     changed(fs, "plugin-dir", f.pluginDir),
			Debug:         f.debug,
		},
	})
}

func changed(fs *pflag.FlagSet, name, value string) *string {
	if !fs.Changed(name) {
		return nil
	}
	return &value
}
