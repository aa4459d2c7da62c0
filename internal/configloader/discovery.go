package configloader

import (
	"os"
	"path/filepath"

	"github.com/j2kun/chktex-action/pkg/config"
)

// ConfigPaths represents discovered configuration file paths.
type ConfigPaths struct {
	// Project is the workspace config file (e.g., <workspace>/.chktex-action.yml).
	Project string

	// Explicit is a config path provided via --config flag.
	Explicit string

	// ChkTeXRC is the workspace .chktexrc, passed to chktex with -l.
	ChkTeXRC string
}

// projectConfigFiles are the config file names we search for, in order of preference.
//
//nolint:gochecknoglobals // Read-only lookup table.
var projectConfigFiles = []string{
	config.ProjectConfigFile,
	".chktex-action.yaml",
}

// DiscoverPaths finds configuration files in the workspace root.
// Unlike a linter run from a shell, the action always runs from the
// checkout root, so no upward search is done.
func DiscoverPaths(workspace string) *ConfigPaths {
	paths := &ConfigPaths{}

	for _, name := range projectConfigFiles {
		candidate := filepath.Join(workspace, name)
		if isFile(candidate) {
			paths.Project = candidate
			break
		}
	}

	if candidate := filepath.Join(workspace, config.ChkTeXRCFile); isFile(candidate) {
		paths.ChkTeXRC = candidate
	}

	return paths
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
