package toolprobe

import (
	"context"
	"testing"
)

func TestProbe_MissingToolIsUnavailable(t *testing.T) {
	p := New()
	info := p.Probe(context.Background(), "definitely-not-a-real-tool-xyz", t.TempDir())
	if info.Available {
		t.Fatal("expected Available=false for missing tool")
	}
}

func TestProbe_MemoizesResult(t *testing.T) {
	p := New()
	dir := t.TempDir()
	first := p.Probe(context.Background(), "sh", dir, "-c", "echo v1.2.3; exit 0")
	second := p.Probe(context.Background(), "sh", dir, "-c", "echo v9.9.9; exit 0")
	if first != second {
		t.Fatalf("expected memoized result, got %+v then %+v", first, second)
	}
}

func TestProbe_ParsesVersionFromStdout(t *testing.T) {
	p := New()
	info := p.Probe(context.Background(), "sh", t.TempDir(), "-c", "echo tool version 2.10.4; exit 0")
	if !info.Available {
		t.Fatal("expected Available=true")
	}
	if info.Version != "2.10.4" {
		t.Fatalf("Version = %q, want 2.10.4", info.Version)
	}
}

func TestProbe_FallsBackToStderrForVersion(t *testing.T) {
	p := New()
	info := p.Probe(context.Background(), "sh", t.TempDir(), "-c", "echo v3.4.5 1>&2; exit 0")
	if !info.Available {
		t.Fatal("expected Available=true")
	}
	if info.Version != "3.4.5" {
		t.Fatalf("Version = %q, want 3.4.5", info.Version)
	}
}

func TestProbe_NonZeroExitIsUnavailable(t *testing.T) {
	p := New()
	info := p.Probe(context.Background(), "sh", t.TempDir(), "-c", "exit 1")
	if info.Available {
		t.Fatal("expected Available=false for non-zero exit")
	}
}
