package domain

import (
	"errors"
	"fmt"
)

var (
	ErrMissingAccessToken = errors.New("login response did not include access_token")
	ErrEmptySlug          = errors.New("plugin slug is empty")
)

// AuthError is returned when the login endpoint rejects the credentials or
// answers without a usable token
type AuthError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *AuthError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("login failed with status %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("login failed: %v", e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// BuildError is returned when the external archive build command fails
type BuildError struct {
	Command  string
	ExitCode int
	Err      error
}

func (e *BuildError) Error() string {
	if e.ExitCode > 0 {
		return fmt.Sprintf("build command %q exited with code %d", e.Command, e.ExitCode)
	}
	return fmt.Sprintf("build command %q failed: %v", e.Command, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

// MissingArtifactError is returned when the archive to install is not on disk
type MissingArtifactError struct {
	Path string
}

func (e *MissingArtifactError) Error() string {
	return fmt.Sprintf("archive not found: %s. Build it first", e.Path)
}

// InstallError carries the server answer of a rejected install request
type InstallError struct {
	StatusCode int
	Body       []byte
}

func (e *InstallError) Error() string {
	return fmt.Sprintf("install request failed with status %d", e.StatusCode)
}

// Response exposes the rejected answer for display
func (e *InstallError) Response() *ServerResponse {
	return &ServerResponse{StatusCode: e.StatusCode, Body: e.Body}
}

// UninstallError carries the server answer of a rejected uninstall request
type UninstallError struct {
	Slug       string
	StatusCode int
	Body       []byte
}

func (e *UninstallError) Error() string {
	return fmt.Sprintf("uninstall of %q failed with status %d", e.Slug, e.StatusCode)
}

// Response exposes the rejected answer for display
func (e *UninstallError) Response() *ServerResponse {
	return &ServerResponse{StatusCode: e.StatusCode, Body: e.Body}
}
