package engineconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "hexvalidate.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
stages:
  - name: lint
    parallel: true
    checks:
      - use: composition/no-barrels
  - name: security
    fail-on-warn: true
    checks:
      - use: security/secscan
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Stages) != 2 {
		t.Fatalf("Stages = %+v", cfg.Stages)
	}
	if cfg.DefaultReport != "summary" {
		t.Fatalf("DefaultReport = %q, want default summary", cfg.DefaultReport)
	}
}

func TestLoad_RejectsEmptyStages(t *testing.T) {
	path := writeConfig(t, `stages: []`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for empty stages")
	}
}

func TestLoad_RejectsMissingCheckUse(t *testing.T) {
	path := writeConfig(t, `
stages:
  - name: lint
    checks:
      - options: {}
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected schema validation error for missing 'use'")
	}
}

func TestLoad_RejectsUnknownReporter(t *testing.T) {
	path := writeConfig(t, `
default-report: xml
stages:
  - name: lint
    checks:
      - use: composition/no-barrels
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown reporter")
	}
}

func TestLoad_MissingFileIsNotFoundError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !os.IsNotExist(err) {
		t.Fatalf("expected os.IsNotExist, got %v", err)
	}
}
