// Package doctor provides the `hex-validate doctor` subcommand: a
// read-only summary of the most recent run's failing and warning checks,
// for a developer re-running locally after CI failed. It adds no new
// engine semantics — it rereads the JSON reporter's last output and feeds
// it back through the aggregator and terminal reporter.
package doctor

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hexvalidate/hex-validate/internal/aggregator"
	"github.com/hexvalidate/hex-validate/internal/checkapi"
	"github.com/hexvalidate/hex-validate/internal/reporters"
)

// LastRunPath returns the well-known location the driver stashes the most
// recent run's results to, alongside the hash cache.
func LastRunPath(repoRoot string) string {
	return filepath.Join(repoRoot, ".cache", "last-run.json")
}

type lastRunDocument struct {
	Results []checkapi.Result `json:"results"`
}

// SaveLastRun persists results for a later `doctor` invocation to read
// back. Write failures are non-fatal: doctor is a convenience, not part of
// the engine contract, so a failure here must never affect the run's exit
// code.
func SaveLastRun(repoRoot string, results []checkapi.Result) {
	path := LastRunPath(repoRoot)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "warning: hex-validate: could not create cache dir: %v\n", err)
		return
	}
	data, err := json.MarshalIndent(lastRunDocument{Results: results}, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: hex-validate: could not encode last-run report: %v\n", err)
		return
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "warning: hex-validate: could not save last-run report: %v\n", err)
	}
}

// Run prints a focused summary of the last run's failing and warning
// checks. It returns nil whether or not the last run failed: doctor reports
// on history, it does not re-validate. A last-run report that is present
// but not valid JSON is returned as an error.
func Run(repoRoot string) error {
	path := LastRunPath(repoRoot)
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Println("No previous run found. Run `hex-validate fast` or `hex-validate full` first.")
		return nil
	}

	var doc lastRunDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("doctor: malformed last-run report at %s: %w", path, err)
	}

	summary := aggregator.Aggregate(doc.Results)
	if summary.Counts.Failed == 0 && summary.Counts.Warned == 0 {
		fmt.Println("Last run had no failures or warnings.")
		return nil
	}

	fmt.Printf("%s%s══ Doctor: last run summary ══%s\n\n", reporters.Bold, reporters.Cyan, reporters.Reset)
	reporters.Terminal{Verbose: true}.Write(os.Stdout, summary)
	return nil
}
