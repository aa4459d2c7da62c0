package configloader

import "github.com/j2kun/chktex-action/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Pointer booleans: override overwrites base if non-nil
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.ChkTeX.Binary != "" {
		result.ChkTeX.Binary = override.ChkTeX.Binary
	}
	if override.ChkTeX.Config != "" {
		result.ChkTeX.Config = override.ChkTeX.Config
	}
	if override.ChkTeX.Timeout != 0 {
		result.ChkTeX.Timeout = override.ChkTeX.Timeout
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Output != "" {
		result.Output = override.Output
	}
	if override.Color != "" {
		result.Color = override.Color
	}

	// Debug can only be switched on by a later source.
	if override.Debug {
		result.Debug = true
	}

	if override.Annotate != nil {
		result.Annotate = override.Annotate
	}
	if override.OnlyChangedLines != nil {
		result.OnlyChangedLines = override.OnlyChangedLines
	}
	if override.LintAll != nil {
		result.LintAll = override.LintAll
	}

	if override.Extensions != nil {
		result.Extensions = override.Extensions
	}
	if override.SkipDirs != nil {
		result.SkipDirs = override.SkipDirs
	}
	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}

	result.GitHub = mergeGitHub(base.GitHub, override.GitHub)

	return &result
}

// mergeGitHub merges workflow context fields.
func mergeGitHub(base, override config.GitHubContext) config.GitHubContext {
	result := base

	if override.InActions {
		result.InActions = true
	}

	for _, field := range []struct {
		dst *string
		src string
	}{
		{&result.Workspace, override.Workspace},
		{&result.EventName, override.EventName},
		{&result.EventPath, override.EventPath},
		{&result.Repository, override.Repository},
		{&result.RefName, override.RefName},
		{&result.HeadRef, override.HeadRef},
		{&result.SHA, override.SHA},
		{&result.StepSummary, override.StepSummary},
		{&result.APIURL, override.APIURL},
		{&result.Token, override.Token},
	} {
		if field.src != "" {
			*field.dst = field.src
		}
	}

	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
