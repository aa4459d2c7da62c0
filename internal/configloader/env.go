package configloader

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/j2kun/chktex-action/pkg/config"
)

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeDuration
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field string
	typ   envFieldType
	desc  string
}

// envMappings maps environment variable names to config fields.
// GITHUB_* and RUNNER_* are set by the Actions runner, INPUT_* by the
// action's inputs, CHKTEX_ACTION_* by users.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"GITHUB_ACTIONS":        {field: "github.in_actions", typ: envTypeBool, desc: "Set to true by the Actions runner"},
	"GITHUB_WORKSPACE":      {field: "github.workspace", typ: envTypeString, desc: "Checkout directory"},
	"GITHUB_EVENT_NAME":     {field: "github.event_name", typ: envTypeString, desc: "Triggering event"},
	"GITHUB_EVENT_PATH":     {field: "github.event_path", typ: envTypeString, desc: "Webhook payload file"},
	"GITHUB_REPOSITORY":     {field: "github.repository", typ: envTypeString, desc: "owner/name"},
	"GITHUB_REF_NAME":       {field: "github.ref_name", typ: envTypeString, desc: "Short ref name"},
	"GITHUB_HEAD_REF":       {field: "github.head_ref", typ: envTypeString, desc: "Pull request head branch"},
	"GITHUB_SHA":            {field: "github.sha", typ: envTypeString, desc: "Triggering commit"},
	"GITHUB_STEP_SUMMARY":   {field: "github.step_summary", typ: envTypeString, desc: "Job summary file"},
	"GITHUB_API_URL":        {field: "github.api_url", typ: envTypeString, desc: "REST API base URL"},
	"RUNNER_DEBUG":          {field: "debug", typ: envTypeBool, desc: "Debug logging: 1 or 0"},
	"INPUT_GITHUB-TOKEN":    {field: "github.token", typ: envTypeString, desc: "Token for the REST API"},
	"INPUT_LINT-ALL":        {field: "lint_all", typ: envTypeBool, desc: "Lint every file: true or false"},
	"CHKTEX_ACTION_TIMEOUT": {field: "chktex.timeout", typ: envTypeDuration, desc: "Per-file chktex timeout, e.g. 30s"},
	"CHKTEX_ACTION_FORMAT":  {field: "format", typ: envTypeString, desc: "Output format: text, markdown or json"},
	"CHKTEX_ACTION_IGNORE":  {field: "ignore", typ: envTypeSlice, desc: "Comma-separated list of ignore globs"},
}

// LookupFunc looks up an environment variable.
type LookupFunc func(key string) (string, bool)

// LoadFromEnv applies environment variable overrides to the configuration.
// Unset and empty variables are skipped.
func LoadFromEnv(cfg *config.Config, lookup LookupFunc) error {
	if cfg == nil {
		return nil
	}

	for envVar, mapping := range envMappings {
		value, ok := lookup(envVar)
		if !ok || value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%w: invalid boolean for %s: %q (expected true/false/1/0)", ErrInvalidConfig, envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeDuration:
		d, err := time.ParseDuration(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%w: invalid duration for %s: %q", ErrInvalidConfig, envVar, value)
		}
		return setDurationField(cfg, mapping.field, d)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// setStringField sets a string field on the config by field path.
func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "github.workspace":
		cfg.GitHub.Workspace = value
	case "github.event_name":
		cfg.GitHub.EventName = value
	case "github.event_path":
		cfg.GitHub.EventPath = value
	case "github.repository":
		cfg.GitHub.Repository = value
	case "github.ref_name":
		cfg.GitHub.RefName = value
	case "github.head_ref":
		cfg.GitHub.HeadRef = value
	case "github.sha":
		cfg.GitHub.SHA = value
	case "github.step_summary":
		cfg.GitHub.StepSummary = value
	case "github.api_url":
		cfg.GitHub.APIURL = value
	case "github.token":
		cfg.GitHub.Token = value
	case "format":
		cfg.Format = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the config by field path.
func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "github.in_actions":
		cfg.GitHub.InActions = value
	case "debug":
		cfg.Debug = value
	case "lint_all":
		cfg.LintAll = config.Bool(value)
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// setDurationField sets a duration field on the config by field path.
func setDurationField(cfg *config.Config, field string, value time.Duration) error {
	switch field {
	case "chktex.timeout":
		cfg.ChkTeX.Timeout = value
	default:
		return fmt.Errorf("unknown duration field: %s", field)
	}
	return nil
}

// setSliceField sets a slice field on the config by field path.
func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "ignore":
		cfg.Ignore = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for name, mapping := range envMappings {
		vars[name] = mapping.desc
	}
	return vars
}
