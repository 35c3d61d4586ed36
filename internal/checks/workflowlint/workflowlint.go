// Package workflowlint implements a sample check that lints
// .github/workflows/*.yml files using the actionlint library, illustrating
// a check that is pure in-process analysis rather than a spawned
// subprocess — the other shape a check may take. It also consults the
// file hash cache so a second run re-lints only files that changed since
// the last one.
package workflowlint

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/rhysd/actionlint"

	"github.com/hexvalidate/hex-validate/internal/checkapi"
	"github.com/hexvalidate/hex-validate/internal/hashcache"
	"github.com/hexvalidate/hex-validate/internal/pathresolve"
)

const Name = "Workflow Lint"

const cacheTool = "workflowlint"

// Check lints GitHub Actions workflow files in scope.
type Check struct{}

func New(options map[string]any) (checkapi.Check, error) {
	return Check{}, nil
}

func (Check) Name() string { return Name }

func (c Check) Run(ctx context.Context, cc *checkapi.Context) (checkapi.Result, error) {
	files := workflowFiles(cc)
	if len(files) == 0 {
		return checkapi.Result{
			Name:   Name,
			Status: checkapi.StatusSkipped,
			Stdout: "no .github/workflows/*.yml files in scope",
		}, nil
	}

	cache := hashcache.Load(hashcache.Path(cc.Cwd, cacheTool))
	partition := cache.Partition(Name)

	toLint, hashes := partitionByHash(files, cc.Cwd, partition)
	if len(toLint) == 0 {
		return checkapi.Result{
			Name:   Name,
			Status: checkapi.StatusSkipped,
			Stdout: "all workflow files unchanged since last run",
		}, nil
	}

	linter, err := actionlint.NewLinter(io.Discard, &actionlint.LinterOptions{})
	if err != nil {
		return checkapi.Result{}, err
	}

	var findings []checkapi.Finding
	for _, f := range toLint {
		errs, err := linter.LintFile(f, nil)
		if err != nil {
			findings = append(findings, checkapi.Finding{
				File:     f,
				Severity: checkapi.SeverityError,
				Code:     "workflow/lint-failure",
				Message:  err.Error(),
			})
			continue
		}
		for _, e := range errs {
			findings = append(findings, checkapi.Finding{
				File:     relativeTo(cc.Cwd, f),
				Line:     e.Line,
				Column:   e.Column,
				Severity: severityFor(e.Kind),
				Code:     "workflow/" + e.Kind,
				Message:  e.Message,
			})
		}
	}

	for rel, hash := range hashes {
		partition[rel] = hash
	}
	cache.SetPartition(Name, partition)
	cache.Save()

	return checkapi.Result{
		Name:     Name,
		Status:   checkapi.DeriveStatus(findings),
		Findings: findings,
	}, nil
}

// partitionByHash splits files into the subset whose content hash differs
// from (or is absent from) the cache partition, and returns every file's
// freshly computed hash so the caller can update the partition after
// linting. A file that cannot be hashed (e.g. removed mid-run) is linted
// unconditionally rather than silently skipped.
func partitionByHash(files []string, root string, partition map[string]string) (toLint []string, hashes map[string]string) {
	hashes = make(map[string]string, len(files))
	for _, f := range files {
		hash, err := hashcache.HashFile(f)
		if err != nil {
			toLint = append(toLint, f)
			continue
		}
		rel := relativeTo(root, f)
		hashes[rel] = hash
		if !hashcache.Unchanged(partition, rel, hash) {
			toLint = append(toLint, f)
		}
	}
	return toLint, hashes
}

// severityFor maps actionlint's rule kinds to our severity scale. Syntax
// errors are load-bearing (error); style/shellcheck-style advisories warn.
func severityFor(kind string) checkapi.Severity {
	switch kind {
	case "syntax-check", "expression", "permissions":
		return checkapi.SeverityError
	default:
		return checkapi.SeverityWarn
	}
}

func workflowFiles(cc *checkapi.Context) []string {
	candidates := cc.FilesInScope()
	if candidates == nil && cc.Scope == checkapi.ScopeFull {
		dir := filepath.Join(cc.Cwd, ".github", "workflows")
		resolved, err := pathresolve.Resolve(cc.Cwd, []string{dir})
		if err == nil {
			candidates = nil
			for _, abs := range resolved {
				rel, relErr := filepath.Rel(cc.Cwd, abs)
				if relErr == nil {
					candidates = append(candidates, rel)
				}
			}
		}
	}

	var out []string
	for _, f := range candidates {
		if strings.Contains(f, ".github/workflows/") && (strings.HasSuffix(f, ".yml") || strings.HasSuffix(f, ".yaml")) {
			out = append(out, filepath.Join(cc.Cwd, f))
		}
	}
	return out
}

func relativeTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}
