// Package configloader provides configuration loading and resolution.
// It merges defaults, the workspace config file, the Actions environment
// and command-line flags into one validated config.Config.
package configloader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/j2kun/chktex-action/pkg/config"
)

// ErrInvalidConfig is returned for any configuration that cannot be used.
var ErrInvalidConfig = errors.New("invalid configuration")

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir overrides the workspace. When empty GITHUB_WORKSPACE is
	// used, then the current working directory.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	// If set, the workspace config file is not loaded.
	ExplicitPath string

	// IgnoreProjectConfig skips loading the workspace config file.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// LookupEnv reads environment variables. Defaults to os.LookupEnv.
	LookupEnv LookupFunc

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (GITHUB_*, INPUT_*, RUNNER_DEBUG, CHKTEX_ACTION_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Workspace config (.chktex-action.yml)
//  5. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}

	// The environment is read first because it names the workspace the
	// config file lives in; it is merged after the file.
	envCfg := &config.Config{}
	if !opts.IgnoreEnv {
		if err := LoadFromEnv(envCfg, lookup); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	workspace, err := resolveWorkspace(opts, envCfg)
	if err != nil {
		return nil, err
	}

	result := &LoadResult{
		Paths: DiscoverPaths(workspace),
	}

	layers := []*config.Config{config.NewConfig()}

	switch {
	case opts.ExplicitPath != "":
		result.Paths.Explicit = opts.ExplicitPath
		fileCfg, err := loadConfigFile(opts.ExplicitPath)
		if err != nil {
			return nil, fmt.Errorf("load explicit config: %w", err)
		}
		layers = append(layers, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, opts.ExplicitPath)
	case !opts.IgnoreProjectConfig && result.Paths.Project != "":
		fileCfg, err := loadConfigFile(result.Paths.Project)
		if err != nil {
			return nil, fmt.Errorf("load project config: %w", err)
		}
		layers = append(layers, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, result.Paths.Project)
	}

	layers = append(layers, envCfg)
	if opts.CLIConfig != nil {
		layers = append(layers, opts.CLIConfig)
	}

	cfg := MergeAll(layers...)
	cfg.GitHub.Workspace = workspace

	resolveChkTeXConfig(cfg, result.Paths)

	validation := Validate(cfg)
	if !validation.Valid() {
		errs := make([]error, 0, len(validation.Errors))
		for i := range validation.Errors {
			errs = append(errs, &validation.Errors[i])
		}
		return nil, errors.Join(errs...)
	}

	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// resolveWorkspace picks the workspace and makes it absolute.
func resolveWorkspace(opts LoadOptions, envCfg *config.Config) (string, error) {
	workspace := opts.WorkingDir
	if workspace == "" {
		workspace = envCfg.GitHub.Workspace
	}
	if workspace == "" {
		var err error
		workspace, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
	}

	abs, err := filepath.Abs(workspace)
	if err != nil {
		return "", fmt.Errorf("resolve workspace %s: %w", workspace, err)
	}
	return abs, nil
}

// resolveChkTeXConfig anchors a relative chktexrc to the workspace and falls
// back to the workspace .chktexrc.
func resolveChkTeXConfig(cfg *config.Config, paths *ConfigPaths) {
	switch {
	case cfg.ChkTeX.Config == "":
		cfg.ChkTeX.Config = paths.ChkTeXRC
	case !filepath.IsAbs(cfg.ChkTeX.Config):
		cfg.ChkTeX.Config = filepath.Join(cfg.GitHub.Workspace, cfg.ChkTeX.Config)
	}
}

// loadConfigFile loads a configuration from a YAML file.
func loadConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrInvalidConfig, path, err)
	}

	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}

	return cfg, nil
}
