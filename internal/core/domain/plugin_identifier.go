package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ArchiveExtension is appended to every built plugin archive
const ArchiveExtension = ".tar.gz"

// ExtractSlug converts a composite plugin id of the form "<owner>_<slug>" into the slug.
// Everything after the first underscore is kept, so "a_b_c" yields "b_c".
// Identifiers without an underscore are returned unchanged.
func ExtractSlug(pluginID string) string {
	_, slug, found := strings.Cut(pluginID, "_")
	if !found {
		return pluginID
	}
	return slug
}

// PluginSelector captures how the operator identified the plugin to uninstall
type PluginSelector struct {
	Slug        string
	CompositeID string
}

// ResolveSlug picks the slug to act on. A composite id wins over an explicit
// slug; with neither present the fallback is used.
func (s PluginSelector) ResolveSlug(fallback string) string {
	switch {
	case s.CompositeID != "":
		return ExtractSlug(s.CompositeID)
	case s.Slug != "":
		return s.Slug
	default:
		return fallback
	}
}

// ArchivePackage identifies a versioned plugin archive on disk
type ArchivePackage struct {
	Name    string
	Version string
	Dir     string
}

// FileName returns "<name>-v<version>.tar.gz"
func (a ArchivePackage) FileName() string {
	return fmt.Sprintf("%s-v%s%s", a.Name, a.Version, ArchiveExtension)
}

// Path returns the absolute-or-relative path of the archive inside Dir
func (a ArchivePackage) Path() string {
	return filepath.Join(a.Dir, a.FileName())
}

// SourceDir is the directory holding the plugin sources that get packaged
func (a ArchivePackage) SourceDir() string {
	return filepath.Join(a.Dir, a.Name)
}
