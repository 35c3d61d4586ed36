// Package pipeline wires the engine components together: it builds the
// shared check context from run options, and supplies the built-in
// default stage list the driver falls back to when no user configuration
// is found.
package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/hexvalidate/hex-validate/internal/checkapi"
	"github.com/hexvalidate/hex-validate/internal/checkregistry"
	"github.com/hexvalidate/hex-validate/internal/checks/secscan"
	"github.com/hexvalidate/hex-validate/internal/checks/workflowlint"
	"github.com/hexvalidate/hex-validate/internal/engineconfig"
	"github.com/hexvalidate/hex-validate/internal/gitscope"
	"github.com/hexvalidate/hex-validate/internal/pathresolve"
	"github.com/hexvalidate/hex-validate/internal/scheduler"
)

// Options mirrors the driver's run options record.
type Options struct {
	Scope      checkapi.Scope
	E2E        checkapi.E2EMode
	CI         bool
	MaxWorkers int
	Report     checkapi.ReportFormat
	Quiet      bool
	Verbose    bool
	Paths      []string
	Cwd        string
}

// NewRegistry returns a Registry with every bundled check constructor
// registered under its configuration identifier.
func NewRegistry() *checkregistry.Registry {
	r := checkregistry.New()
	r.Register("workflow/lint", workflowlint.New)
	r.Register("security/secscan", secscan.New)
	return r
}

// Default returns the built-in default pipeline configuration: a fast
// parallel analysis stage, followed by a sequential security stage that
// aborts the pipeline on any finding at warn or above.
func Default() *engineconfig.Config {
	return &engineconfig.Config{
		DefaultE2E:    checkapi.E2EOff,
		DefaultReport: checkapi.ReportSummary,
		Stages: []engineconfig.StageSpec{
			{
				Name:     "analyze",
				Parallel: true,
				Checks: []engineconfig.CheckSpec{
					{Use: "workflow/lint"},
				},
			},
			{
				Name:       "security",
				FailOnWarn: true,
				Checks: []engineconfig.CheckSpec{
					{Use: "security/secscan"},
				},
			},
		},
	}
}

// BuildStages resolves a loaded configuration's check specs against a
// registry into runnable scheduler.Stage values.
func BuildStages(cfg *engineconfig.Config, registry *checkregistry.Registry) ([]scheduler.Stage, error) {
	stages := make([]scheduler.Stage, 0, len(cfg.Stages))
	for _, ss := range cfg.Stages {
		checks := make([]checkapi.Check, 0, len(ss.Checks))
		for _, cs := range ss.Checks {
			check, err := registry.Build(cs.Use, cs.Options)
			if err != nil {
				return nil, fmt.Errorf("stage %q: %w", ss.Name, err)
			}
			checks = append(checks, check)
		}
		stages = append(stages, scheduler.Stage{
			Name:       ss.Name,
			Parallel:   ss.Parallel,
			FailOnWarn: ss.FailOnWarn,
			Checks:     checks,
		})
	}
	return stages, nil
}

// BuildContext produces the immutable check context shared read-only
// across every check in the run, resolving staged/changed file lists via
// git and any explicit --paths via the path resolver.
func BuildContext(ctx context.Context, opts Options, cfg *engineconfig.Config) (*checkapi.Context, error) {
	scope := opts.Scope
	if scope == "" {
		scope = checkapi.ScopeFull
	}

	// --e2e overrides the config's default-e2e, per the CLI-flags-override-
	// defaults precedence rule; falling back to off if neither is set.
	e2e := opts.E2E
	if e2e == "" {
		e2e = cfg.DefaultE2E
	}
	if e2e == "" {
		e2e = checkapi.E2EOff
	}

	git := gitscope.New(opts.Cwd)
	cc := &checkapi.Context{
		Cwd:          opts.Cwd,
		CI:           opts.CI,
		Scope:        scope,
		E2E:          e2e,
		StagedFiles:  git.StagedFiles(ctx),
		ChangedFiles: git.ChangedFiles(ctx),
		Config:       cfg,
		RunID:        uuid.New().String(),
		Environment:  os.Environ(),
	}

	if len(opts.Paths) > 0 {
		resolved, err := pathresolve.Resolve(opts.Cwd, opts.Paths)
		if err != nil {
			return nil, fmt.Errorf("resolving --paths: %w", err)
		}
		target := make([]string, 0, len(resolved))
		for _, abs := range resolved {
			target = append(target, abs)
		}
		cc.TargetFiles = target
	}

	return cc, nil
}
