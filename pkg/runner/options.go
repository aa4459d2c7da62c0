// Package runner discovers the TeX files of a workspace and lints them one
// by one with chktex.
package runner

import (
	"github.com/j2kun/chktex-action/pkg/config"
)

// Options controls file selection.
type Options struct {
	// Workspace is the directory paths are resolved against and reported
	// relative to. If empty, the current process working directory is used.
	Workspace string

	// Extensions is the set of file extensions (with leading dot) linted.
	// Defaults to config.DefaultExtensions().
	Extensions []string

	// SkipDirs lists directory names never descended into.
	// Defaults to config.DefaultSkipDirs().
	SkipDirs []string

	// Ignore are doublestar glob patterns, relative to Workspace, for files
	// to skip.
	Ignore []string
}

// OptionsFromConfig builds Options from a resolved configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Workspace:  cfg.GitHub.Workspace,
		Extensions: cfg.Extensions,
		SkipDirs:   cfg.SkipDirs,
		Ignore:     cfg.Ignore,
	}
}

// effectiveExtensions returns the extensions to use, defaulting if empty.
func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return config.DefaultExtensions()
	}
	return o.Extensions
}

// effectiveSkipDirs returns the skipped directory names, defaulting if nil.
func (o Options) effectiveSkipDirs() []string {
	if o.SkipDirs == nil {
		return config.DefaultSkipDirs()
	}
	return o.SkipDirs
}
