//go:build !windows

package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"braindrive.ai/plugindev/test/testutil"
)

const fakeBuildScript = `#!/bin/sh
echo "packaging $1 $2"
touch "$1-v$2.tar.gz"
`

func writeBuildScript(t *testing.T, dir, script string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "build_archive.py"), []byte(script), 0o755))
}

func TestInstallCommand_BuildOnly(t *testing.T) {
	dir := t.TempDir()
	writeBuildScript(t, dir, fakeBuildScript)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "MyPlugin", "__pycache__"), 0o755))

	stdout, _, err := runCommand(t, NewInstallCommand(),
		"--build",
		"--plugin-name", "MyPlugin",
		"--plugin-version", "2.0.1",
		"--plugin-dir", dir,
	)

	require.NoError(t, err)
	assert.Contains(t, stdout, "➤ Running: ./build_archive.py MyPlugin 2.0.1")
	assert.Contains(t, stdout, "packaging MyPlugin 2.0.1")
	assert.FileExists(t, filepath.Join(dir, "MyPlugin-v2.0.1.tar.gz"))
	assert.NoDirExists(t, filepath.Join(dir, "MyPlugin", "__pycache__"))
}

func TestInstallCommand_BuildAndInstall(t *testing.T) {
	api := testutil.NewMockAPIServer(t).Build()
	dir := t.TempDir()
	writeBuildScript(t, dir, fakeBuildScript)

	args := append(credentialArgs(api.URL), "--plugin-name", "MyPlugin", "--plugin-dir", dir)
	stdout, _, err := runCommand(t, NewInstallCommand(), args...)

	require.NoError(t, err)
	upload := api.LastUpload()
	require.NotNil(t, upload)
	assert.Equal(t, "MyPlugin-v1.0.0.tar.gz", upload.FileName)
	assert.Contains(t, stdout, "✅ Installation request succeeded.")
}

func TestInstallCommand_FailingBuildStopsWorkflow(t *testing.T) {
	api := testutil.NewMockAPIServer(t).Build()
	dir := t.TempDir()
	writeBuildScript(t, dir, "#!/bin/sh\nexit 3\n")

	args := append(credentialArgs(api.URL), "--plugin-name", "MyPlugin", "--plugin-dir", dir)
	_, _, err := runCommand(t, NewInstallCommand(), args...)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "exited with code 3")
	assert.Zero(t, api.TotalRequests())
}
