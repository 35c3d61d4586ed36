package aggregator

import (
	"testing"

	"github.com/hexvalidate/hex-validate/internal/checkapi"
)

func TestAggregate_CountsPartitionByStatus(t *testing.T) {
	results := []checkapi.Result{
		{Name: "a", Status: checkapi.StatusPass},
		{Name: "b", Status: checkapi.StatusWarn},
		{Name: "c", Status: checkapi.StatusFail},
		{Name: "d", Status: checkapi.StatusSkipped},
		{Name: "e", Status: checkapi.StatusPass},
	}
	s := Aggregate(results)
	if s.Counts.Total != 5 || s.Counts.Passed != 2 || s.Counts.Warned != 1 || s.Counts.Failed != 1 || s.Counts.Skipped != 1 {
		t.Fatalf("Counts = %+v", s.Counts)
	}
}

func TestAggregate_GroupsBySeverityThenCode(t *testing.T) {
	results := []checkapi.Result{
		{
			Name:   "Demo",
			Status: checkapi.StatusFail,
			Findings: []checkapi.Finding{
				{File: "b.ts", Severity: checkapi.SeverityWarn, Code: "zzz/late"},
				{File: "a.ts", Severity: checkapi.SeverityError, Code: "aaa/early"},
				{File: "a.ts", Severity: checkapi.SeverityError, Code: "aaa/early"},
			},
		},
	}
	s := Aggregate(results)
	if len(s.Checks) != 1 {
		t.Fatalf("Checks = %+v", s.Checks)
	}
	groups := s.Checks[0].Groups
	if len(groups) != 2 {
		t.Fatalf("groups = %+v", groups)
	}
	if groups[0].Code != "aaa/early" || groups[0].Severity != checkapi.SeverityError {
		t.Fatalf("groups[0] = %+v, want aaa/early error first", groups[0])
	}
	if groups[0].Count != 2 {
		t.Fatalf("groups[0].Count = %d, want 2", groups[0].Count)
	}
	if groups[1].Code != "zzz/late" {
		t.Fatalf("groups[1] = %+v, want zzz/late", groups[1])
	}
}

func TestAggregate_FilesWithinGroupSortedLexicographically(t *testing.T) {
	results := []checkapi.Result{
		{
			Name:   "Demo",
			Status: checkapi.StatusFail,
			Findings: []checkapi.Finding{
				{File: "z.ts", Severity: checkapi.SeverityError, Code: "x/y"},
				{File: "a.ts", Severity: checkapi.SeverityError, Code: "x/y"},
			},
		},
	}
	s := Aggregate(results)
	files := s.Checks[0].Groups[0].Files
	if len(files) != 2 || files[0].File != "a.ts" || files[1].File != "z.ts" {
		t.Fatalf("files = %+v, want [a.ts, z.ts]", files)
	}
}

func TestAggregate_IsPureFunctionOfInput(t *testing.T) {
	results := []checkapi.Result{
		{Name: "a", Status: checkapi.StatusFail, Findings: []checkapi.Finding{
			{Severity: checkapi.SeverityError, Code: "x/y", Message: "m"},
		}},
	}
	s1 := Aggregate(results)
	s2 := Aggregate(results)
	if s1.Counts != s2.Counts {
		t.Fatalf("Aggregate() not pure: %+v vs %+v", s1.Counts, s2.Counts)
	}
}
