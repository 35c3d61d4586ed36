package pipeline

import (
	"context"
	"testing"

	"github.com/hexvalidate/hex-validate/internal/checkapi"
)

func TestBuildStages_ResolvesRegisteredChecks(t *testing.T) {
	cfg := Default()
	registry := NewRegistry()

	stages, err := BuildStages(cfg, registry)
	if err != nil {
		t.Fatal(err)
	}
	if len(stages) != 2 {
		t.Fatalf("stages = %+v", stages)
	}
	if stages[0].Name != "analyze" || !stages[0].Parallel {
		t.Fatalf("stages[0] = %+v", stages[0])
	}
	if stages[1].Name != "security" || !stages[1].FailOnWarn {
		t.Fatalf("stages[1] = %+v", stages[1])
	}
}

func TestBuildStages_UnknownCheckErrors(t *testing.T) {
	cfg := Default()
	cfg.Stages[0].Checks[0].Use = "nonexistent/check"
	registry := NewRegistry()

	if _, err := BuildStages(cfg, registry); err == nil {
		t.Fatal("expected error for unknown check identifier")
	}
}

func TestBuildContext_DefaultsToFullScope(t *testing.T) {
	cc, err := BuildContext(context.Background(), Options{Cwd: t.TempDir()}, Default())
	if err != nil {
		t.Fatal(err)
	}
	if cc.Scope != checkapi.ScopeFull {
		t.Fatalf("Scope = %v, want full", cc.Scope)
	}
	if cc.RunID == "" {
		t.Fatal("expected a non-empty run ID")
	}
}
