// FILE: lixenwraith/petmaster/discovery.go
package petmaster

import (
	"os"
	"path/filepath"
	"strings"
)

// DiscoveryOptions configures data directory discovery
type DiscoveryOptions struct {
	// Application name used for XDG directories
	Name string

	// Settings file whose presence marks a data directory
	SettingsFile string

	// Explicit directory, e.g. from a CLI flag (highest priority)
	Explicit string

	// Environment variable holding an explicit directory
	EnvVar string

	// Custom search paths, tried before XDG directories
	Paths []string

	// Whether to search in XDG config directories
	UseXDG bool
}

// DefaultDiscoveryOptions returns sensible defaults
func DefaultDiscoveryOptions(appName string) DiscoveryOptions {
	return DiscoveryOptions{
		Name:         appName,
		SettingsFile: DefaultSettingsFile,
		EnvVar:       strings.ToUpper(appName) + "_DATA_DIR",
		UseXDG:       true,
	}
}

// DiscoverDataDir picks the directory holding the documents.
// Order: explicit value, environment variable, the first search path that already
// contains the settings file, then the current directory.
func DiscoverDataDir(opts DiscoveryOptions) string {
	if opts.Explicit != "" {
		return opts.Explicit
	}

	if opts.EnvVar != "" {
		if dir := os.Getenv(opts.EnvVar); dir != "" {
			return dir
		}
	}

	settingsFile := opts.SettingsFile
	if settingsFile == "" {
		settingsFile = DefaultSettingsFile
	}

	var searchPaths []string
	searchPaths = append(searchPaths, opts.Paths...)
	if opts.UseXDG && opts.Name != "" {
		searchPaths = append(searchPaths, getXDGConfigPaths(opts.Name)...)
	}

	for _, dir := range searchPaths {
		if _, err := os.Stat(filepath.Join(dir, settingsFile)); err == nil {
			return dir
		}
	}

	// Nothing found: documents are created in the working directory on first start
	if cwd, err := os.Getwd(); err == nil {
		return cwd
	}
	return "."
}

// getXDGConfigPaths returns XDG-compliant config search paths
func getXDGConfigPaths(appName string) []string {
	var paths []string

	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		paths = append(paths, filepath.Join(xdgHome, appName))
	} else if home := os.Getenv("HOME"); home != "" {
		paths = append(paths, filepath.Join(home, ".config", appName))
	}

	if xdgDirs := os.Getenv("XDG_CONFIG_DIRS"); xdgDirs != "" {
		for _, dir := range filepath.SplitList(xdgDirs) {
			paths = append(paths, filepath.Join(dir, appName))
		}
	} else {
		paths = append(paths, filepath.Join("/etc/xdg", appName))
	}

	return paths
}
