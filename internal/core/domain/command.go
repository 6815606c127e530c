package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Command represents an external command such as the archive build script
type Command struct {
	executable string
	args       []string
	workingDir string
	env        map[string]string
}

// NewCommand creates a Command that runs executable with args inside workingDir.
// An empty workingDir means the current directory.
func NewCommand(executable string, args []string, workingDir string) (Command, error) {
	if strings.TrimSpace(executable) == "" {
		return Command{}, fmt.Errorf("executable cannot be empty")
	}

	if workingDir != "" && !filepath.IsAbs(workingDir) {
		if absDir, err := filepath.Abs(workingDir); err == nil {
			workingDir = absDir
		}
	}

	return Command{
		executable: executable,
		args:       append([]string(nil), args...),
		workingDir: workingDir,
		env:        make(map[string]string),
	}, nil
}

// Executable returns the command executable
func (c Command) Executable() string {
	return c.executable
}

// Args returns a copy of the command arguments
func (c Command) Args() []string {
	return append([]string(nil), c.args...)
}

// WorkingDir returns the working directory for the command
func (c Command) WorkingDir() string {
	return c.workingDir
}

// Env returns a copy of the extra environment variables
func (c Command) Env() map[string]string {
	envCopy := make(map[string]string, len(c.env))
	for k, v := range c.env {
		envCopy[k] = v
	}
	return envCopy
}

// WithEnv returns a new Command with an additional environment variable
func (c Command) WithEnv(key, value string) Command {
	newEnv := c.Env()
	newEnv[key] = value

	return Command{
		executable: c.executable,
		args:       c.Args(),
		workingDir: c.workingDir,
		env:        newEnv,
	}
}

// String returns the command line as shown to the operator
func (c Command) String() string {
	if len(c.args) == 0 {
		return c.executable
	}
	return fmt.Sprintf("%s %s", c.executable, strings.Join(c.args, " "))
}
