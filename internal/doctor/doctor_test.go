package doctor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hexvalidate/hex-validate/internal/checkapi"
)

func TestLastRunPath(t *testing.T) {
	got := LastRunPath("/repo")
	want := filepath.Join("/repo", ".cache", "last-run.json")
	if got != want {
		t.Fatalf("LastRunPath = %q, want %q", got, want)
	}
}

func TestSaveLastRun_RoundTrips(t *testing.T) {
	dir := t.TempDir()
	results := []checkapi.Result{
		{Name: "workflow/lint", Status: checkapi.StatusFail, Findings: []checkapi.Finding{
			{Severity: checkapi.SeverityError, Code: "workflow/syntax", Message: "bad yaml", File: "ci.yml"},
		}},
		{Name: "security/secscan", Status: checkapi.StatusPass},
	}
	SaveLastRun(dir, results)

	data, err := os.ReadFile(LastRunPath(dir))
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty saved report")
	}
}

func TestSaveLastRun_NonexistentParentCreatesCacheDir(t *testing.T) {
	dir := t.TempDir()
	SaveLastRun(dir, []checkapi.Result{{Name: "x", Status: checkapi.StatusPass}})

	if _, err := os.Stat(filepath.Join(dir, ".cache")); err != nil {
		t.Fatalf("expected .cache dir to be created: %v", err)
	}
}

func TestRun_NoPreviousRun(t *testing.T) {
	dir := t.TempDir()
	if err := Run(dir); err != nil {
		t.Fatalf("Run() with no prior report should not error: %v", err)
	}
}

func TestRun_NoFailuresOrWarnings(t *testing.T) {
	dir := t.TempDir()
	SaveLastRun(dir, []checkapi.Result{{Name: "workflow/lint", Status: checkapi.StatusPass}})

	if err := Run(dir); err != nil {
		t.Fatalf("Run() with an all-pass report should not error: %v", err)
	}
}

func TestRun_PrintsFailureSummary(t *testing.T) {
	dir := t.TempDir()
	SaveLastRun(dir, []checkapi.Result{
		{Name: "workflow/lint", Status: checkapi.StatusFail, Findings: []checkapi.Finding{
			{Severity: checkapi.SeverityError, Code: "workflow/syntax", Message: "bad yaml", File: "ci.yml"},
		}},
	})

	if err := Run(dir); err != nil {
		t.Fatalf("Run() with a failing report should not error: %v", err)
	}
}

func TestRun_MalformedReportErrors(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, ".cache"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(LastRunPath(dir), []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Run(dir); err == nil {
		t.Fatal("expected an error for a malformed last-run report")
	}
}
