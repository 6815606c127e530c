package di

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	dkplog "github.com/deckhouse/deckhouse/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"braindrive.ai/plugindev/internal/application/services"
	"braindrive.ai/plugindev/internal/core/domain"
	configinfra "braindrive.ai/plugindev/internal/infrastructure/config"
	"braindrive.ai/plugindev/test/testutil"
)

type nopReporter struct{}

func (nopReporter) Step(string, ...any)             {}
func (nopReporter) Success(string)                  {}
func (nopReporter) Failure(string, error)           {}
func (nopReporter) Response(*domain.ServerResponse) {}

func testConfig(apiEndpoint, pluginDir string) *configinfra.Config {
	cfg := configinfra.DefaultConfig()
	cfg.APIEndpoint = apiEndpoint
	cfg.Credentials = domain.Credentials{Email: "dev@example.com", Password: "secret"}
	cfg.PluginName = "MyPlugin"
	cfg.PluginDir = pluginDir
	return cfg
}

func TestNewContainer_WiresInstallWorkflow(t *testing.T) {
	api := testutil.NewMockAPIServer(t).Build()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "MyPlugin-v1.0.0.tar.gz"), []byte("archive"), 0o644))

	container := NewContainer(testConfig(api.URL, dir), Options{
		Reporter: nopReporter{},
		Version:  "1.2.3",
		Stdout:   &bytes.Buffer{},
		Stderr:   &bytes.Buffer{},
		Logger:   dkplog.NewNop(),
	})

	resp, err := container.Workflow.Run(context.Background(), services.ModeInstallOnly)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	for _, path := range []string{testutil.LoginPath, testutil.InstallPath} {
		req := api.GetLastRequest(path)
		require.NotNil(t, req, path)
		assert.Equal(t, "braindrive-plugin-dev/1.2.3", req.Headers.Get("User-Agent"))
	}
	assert.Equal(t, "Bearer test-token", api.GetLastRequest(testutil.InstallPath).Headers.Get("Authorization"))
}

func TestNewContainer_WiresUninstallService(t *testing.T) {
	api := testutil.NewMockAPIServer(t).WithInstalledPlugin("Kanban").Build()
	cfg := testConfig(api.URL, t.TempDir())
	cfg.DefaultSlug = "Kanban"

	container := NewContainer(cfg, Options{Reporter: nopReporter{}, Logger: dkplog.NewNop()})

	_, err := container.UninstallService.Uninstall(context.Background(), domain.PluginSelector{})

	require.NoError(t, err)
	assert.False(t, api.IsInstalled("Kanban"))
}

func TestNewContainer_UsesConfiguredEndpoints(t *testing.T) {
	cfg := testConfig("http://localhost:8205", t.TempDir())
	cfg.DefaultSlug = "Kanban"

	container := NewContainer(cfg, Options{Reporter: nopReporter{}, Logger: dkplog.NewNop()})

	assert.Equal(t, "http://localhost:8205/api/v1/auth/login", container.Authenticator.LoginURL())
	assert.Equal(t, "http://localhost:8205/api/v1/plugins/install", container.Gateway.InstallURL())
	assert.Equal(t, "dev@example.com", container.Authenticator.Account())
	assert.NotNil(t, container.UninstallService)
	assert.Same(t, cfg, container.Config)
}
