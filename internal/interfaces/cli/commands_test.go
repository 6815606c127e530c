package cli

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"braindrive.ai/plugindev/internal/core/domain"
	"braindrive.ai/plugindev/test/testutil"
)

func runCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("BRAINDRIVE_CONFIG_PATH", "")
	t.Setenv("BRAINDRIVE_EMAIL", "")
	t.Setenv("BRAINDRIVE_PASSWORD", "")

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func credentialArgs(apiURL string) []string {
	return []string{"--api-url", apiURL, "--email", "dev@example.com", "--password", "secret"}
}

func writePluginArchive(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "MyPlugin-v1.0.0.tar.gz"), []byte("archive"), 0o644))
	return dir
}

func TestInstallCommand_InstallOnly(t *testing.T) {
	api := testutil.NewMockAPIServer(t).Build()

	dir := writePluginArchive(t)
	args := append(credentialArgs(api.URL), "--install", "--plugin-name", "MyPlugin", "--plugin-dir", dir)
	stdout, _, err := runCommand(t, NewInstallCommand(), args...)

	require.NoError(t, err)
	upload := api.LastUpload()
	require.NotNil(t, upload)
	assert.Equal(t, "local-file", upload.Method)
	assert.Equal(t, "MyPlugin-v1.0.0.tar.gz", upload.FileName)
	assert.Equal(t, "archive", string(upload.Content))

	assert.Contains(t, stdout, "➤ Logging in as dev@example.com")
	assert.Contains(t, stdout, "➤ Uploading MyPlugin-v1.0.0.tar.gz to "+api.URL+"/api/v1/plugins/install")
	assert.Contains(t, stdout, "✅ Installation request succeeded.")
	assert.Contains(t, stdout, "Server response:")
	assert.Contains(t, stdout, `"filename":"MyPlugin-v1.0.0.tar.gz"`)
}

func TestInstallCommand_MissingArchiveMakesNoRequest(t *testing.T) {
	api := testutil.NewMockAPIServer(t).Build()

	args := append(credentialArgs(api.URL), "--install", "--plugin-name", "MyPlugin", "--plugin-dir", t.TempDir())
	_, _, err := runCommand(t, NewInstallCommand(), args...)

	var missing *domain.MissingArtifactError
	require.True(t, errors.As(err, &missing))
	assert.Zero(t, api.TotalRequests())
}

func TestInstallCommand_RejectedInstallShowsServerBody(t *testing.T) {
	api := testutil.NewMockAPIServer(t).
		WithInstallRejection(http.StatusBadRequest, `{"detail":"plugin already installed"}`).
		Build()

	args := append(credentialArgs(api.URL), "--install", "--plugin-name", "MyPlugin", "--plugin-dir", writePluginArchive(t))
	_, stderr, err := runCommand(t, NewInstallCommand(), args...)

	var installErr *domain.InstallError
	require.True(t, errors.As(err, &installErr))
	assert.Equal(t, http.StatusBadRequest, installErr.StatusCode)
	assert.Contains(t, stderr, "❌ Installation request failed: install request failed with status 400")
	assert.Contains(t, stderr, "Server response:\n{\"detail\":\"plugin already installed\"}\n")
}

func TestInstallCommand_RequiresCredentials(t *testing.T) {
	_, _, err := runCommand(t, NewInstallCommand(), "--install", "--api-url", "http://127.0.0.1:1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "email is required")
	assert.Contains(t, err.Error(), "password is required")
}

func TestInstallCommand_RejectsUnknownArguments(t *testing.T) {
	_, _, err := runCommand(t, NewInstallCommand(), "extra")

	require.Error(t, err)
}

func TestUninstallCommand_CompositeIDWinsOverSlug(t *testing.T) {
	api := testutil.NewMockAPIServer(t).WithInstalledPlugin("Kanban").Build()

	args := append(credentialArgs(api.URL), "--slug", "Ignored", "--id", "user42_Kanban")
	stdout, _, err := runCommand(t, NewUninstallCommand(), args...)

	require.NoError(t, err)
	assert.False(t, api.IsInstalled("Kanban"))
	assert.Zero(t, api.GetRequestCount(testutil.UninstallPath("Ignored")))
	assert.Contains(t, stdout, "➤ Deleting plugin 'Kanban' via "+api.URL+"/api/v1/plugins/Kanban/uninstall")
	assert.Contains(t, stdout, "✅ Plugin deletion request succeeded.")
}

func TestUninstallCommand_DefaultSlug(t *testing.T) {
	api := testutil.NewMockAPIServer(t).WithInstalledPlugin("InfiniteCraft").Build()

	stdout, _, err := runCommand(t, NewUninstallCommand(), credentialArgs(api.URL)...)

	require.NoError(t, err)
	assert.Equal(t, 1, api.GetRequestCount(testutil.UninstallPath("InfiniteCraft")))
	assert.Contains(t, stdout, "Server response:")
}

func TestUninstallCommand_PlainTextResponse(t *testing.T) {
	api := testutil.NewMockAPIServer(t).
		WithCustomHandler(testutil.UninstallPath("Kanban"), func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("deleted\n"))
		}).
		Build()

	args := append(credentialArgs(api.URL), "--slug", "Kanban")
	stdout, _, err := runCommand(t, NewUninstallCommand(), args...)

	require.NoError(t, err)
	assert.Contains(t, stdout, "Server response text:\ndeleted\n")
}

func TestUninstallCommand_LoginRejected(t *testing.T) {
	api := testutil.NewMockAPIServer(t).WithInstalledPlugin("InfiniteCraft").Build()

	_, stderr, err := runCommand(t, NewUninstallCommand(),
		"--api-url", api.URL,
		"--email", "dev@example.com",
		"--password", "wrong",
	)

	var authErr *domain.AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, http.StatusUnauthorized, authErr.StatusCode)
	assert.True(t, api.IsInstalled("InfiniteCraft"))
	assert.Equal(t, 1, api.TotalRequests())
	assert.Contains(t, stderr, "❌ Login failed")
}

func TestUninstallCommand_NotFound(t *testing.T) {
	api := testutil.NewMockAPIServer(t).Build()

	args := append(credentialArgs(api.URL), "--slug", "Ghost")
	_, stderr, err := runCommand(t, NewUninstallCommand(), args...)

	var uninstallErr *domain.UninstallError
	require.True(t, errors.As(err, &uninstallErr))
	assert.Equal(t, http.StatusNotFound, uninstallErr.StatusCode)
	assert.Contains(t, stderr, "❌ Plugin deletion failed:")
	assert.Contains(t, stderr, `{"detail":"Plugin 'Ghost' not found"}`)
}

func TestUninstallCommand_EmptySlugFromID(t *testing.T) {
	api := testutil.NewMockAPIServer(t).Build()

	args := append(credentialArgs(api.URL), "--id", "user42_")
	_, _, err := runCommand(t, NewUninstallCommand(), args...)

	assert.ErrorIs(t, err, domain.ErrEmptySlug)
	assert.Zero(t, api.TotalRequests())
}
