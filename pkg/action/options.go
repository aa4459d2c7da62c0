// Package action runs chktex the way the GitHub Action does: it selects the
// files for the triggering event, lints them, writes the step summary and
// annotates the pull request or commit.
package action

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/j2kun/chktex-action/internal/logging"
	"github.com/j2kun/chktex-action/pkg/chktex"
	"github.com/j2kun/chktex-action/pkg/config"
	"github.com/j2kun/chktex-action/pkg/pullrequest"
	"github.com/j2kun/chktex-action/pkg/runner"
)

// Options configures one action run.
type Options struct {
	// Config is the loaded configuration. Required.
	Config *config.Config

	// Linter runs chktex. Defaults to a chktex.Invoker built from Config.
	Linter runner.Linter

	// API is the GitHub client. Defaults to a pullrequest.Client built from
	// Config when a token is configured.
	API pullrequest.API

	// Console receives workflow commands. Defaults to a console on Stdout.
	Console *logging.Console

	// Stdout receives the report. Defaults to os.Stdout.
	Stdout io.Writer
}

func (o *Options) linter() runner.Linter {
	if o.Linter != nil {
		return o.Linter
	}
	return &chktex.Invoker{
		Binary:     o.Config.ChkTeX.Binary,
		ConfigFile: o.Config.ChkTeX.Config,
		Timeout:    o.Config.ChkTeX.Timeout,
	}
}

func (o *Options) stdout() io.Writer {
	if o.Stdout != nil {
		return o.Stdout
	}
	return os.Stdout
}

// api returns the configured client, or nil when no token is available.
func (o *Options) api() (pullrequest.API, error) {
	if o.API != nil {
		return o.API, nil
	}

	gh := o.Config.GitHub
	if gh.Token == "" {
		return nil, nil //nolint:nilnil // no token means no API
	}

	client, err := pullrequest.NewClient(gh.Token, gh.APIURL, gh.Repository)
	if err != nil {
		return nil, fmt.Errorf("create GitHub client: %w", err)
	}
	return client, nil
}

// consoleLinter emits a debug command for every file before linting it.
type consoleLinter struct {
	runner.Linter

	console   *logging.Console
	workspace string
}

func (l *consoleLinter) Run(ctx context.Context, path string) (*chktex.Output, error) {
	display := path
	if rel, err := filepath.Rel(l.workspace, path); err == nil {
		display = filepath.ToSlash(rel)
	}
	l.console.Debug("Linting file: " + display)

	return l.Linter.Run(ctx, path)
}
