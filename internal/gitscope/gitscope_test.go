package gitscope

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

func hasGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
}

func initRepo(t *testing.T, dir string) {
	t.Helper()
	run := func(args ...string) {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v: %v\n%s", args, err, out)
		}
	}
	run("init", "-q")
	run("config", "user.email", "test@example.com")
	run("config", "user.name", "test")
}

func TestStagedFiles_NonGitTreeIsEmpty(t *testing.T) {
	hasGit(t)
	dir := t.TempDir()
	r := New(dir)
	if got := r.StagedFiles(context.Background()); got != nil {
		t.Fatalf("StagedFiles() in non-git tree = %v, want nil", got)
	}
	if got := r.ChangedFiles(context.Background()); got != nil {
		t.Fatalf("ChangedFiles() in non-git tree = %v, want nil", got)
	}
}

func TestStagedFiles_ReportsIndexedFile(t *testing.T) {
	hasGit(t)
	dir := t.TempDir()
	initRepo(t, dir)

	path := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(path, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}
	cmd := exec.Command("git", "add", "a.txt")
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git add: %v\n%s", err, out)
	}

	r := New(dir)
	got := r.StagedFiles(context.Background())
	if len(got) != 1 || got[0] != "a.txt" {
		t.Fatalf("StagedFiles() = %v, want [a.txt]", got)
	}
}
