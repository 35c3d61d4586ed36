// Package gitscope resolves the staged and changed-vs-upstream file lists
// the engine uses to scope checks. It shells out to git and treats any
// failure (including "not a git repository") as an empty list rather than
// a fatal error, so the engine stays usable outside version-controlled
// trees.
package gitscope

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"
)

const probeTimeout = 10 * time.Second

// Resolver resolves file lists against a git working tree rooted at Dir.
type Resolver struct {
	Dir string
}

// New returns a Resolver rooted at dir.
func New(dir string) *Resolver {
	return &Resolver{Dir: dir}
}

// StagedFiles returns modified/added/renamed files in the index against
// HEAD, as repository-relative paths in git's reported order.
func (r *Resolver) StagedFiles(ctx context.Context) []string {
	out, ok := r.run(ctx, "diff", "--name-only", "--cached", "--diff-filter=ACMR")
	if !ok {
		return nil
	}
	return splitLines(out)
}

// ChangedFiles returns the symmetric difference against the tracked
// upstream; if there is no upstream, it falls back to HEAD~1.
func (r *Resolver) ChangedFiles(ctx context.Context) []string {
	upstream, ok := r.run(ctx, "rev-parse", "--abbrev-ref", "--symbolic-full-name", "@{upstream}")
	if ok {
		ref := strings.TrimSpace(upstream)
		if out, ok := r.run(ctx, "diff", "--name-only", ref+"...HEAD"); ok {
			return splitLines(out)
		}
		return nil
	}
	if out, ok := r.run(ctx, "diff", "--name-only", "HEAD~1...HEAD"); ok {
		return splitLines(out)
	}
	return nil
}

// run executes a git subcommand rooted at r.Dir. A non-zero exit, a spawn
// error, or a timeout all yield ok=false — never a panic or propagated
// error, per the contract that scope resolution degrades to "empty" in
// non-git trees.
func (r *Resolver) run(ctx context.Context, args ...string) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.Dir
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = nil // discard; a failed probe is silent, not diagnosed

	if err := cmd.Run(); err != nil {
		return "", false
	}
	return stdout.String(), true
}

func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
