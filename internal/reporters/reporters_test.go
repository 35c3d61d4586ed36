package reporters

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/hexvalidate/hex-validate/internal/aggregator"
	"github.com/hexvalidate/hex-validate/internal/checkapi"
)

func sampleResults() []checkapi.Result {
	return []checkapi.Result{
		{Name: "Pass", Status: checkapi.StatusPass},
		{Name: "Skip", Status: checkapi.StatusSkipped},
		{
			Name:   "Demo",
			Status: checkapi.StatusFail,
			Findings: []checkapi.Finding{
				{File: "src/a.ts", Line: 3, Severity: checkapi.SeverityError, Code: "demo/x", Message: "bad"},
			},
		},
	}
}

func TestTerminal_SummaryCountsMatchAggregator(t *testing.T) {
	s := aggregator.Aggregate(sampleResults())
	var buf bytes.Buffer
	Terminal{}.Write(&buf, s)
	out := buf.String()
	if !strings.Contains(out, "Tasks: 3") {
		t.Fatalf("output missing Tasks: 3:\n%s", out)
	}
	if !strings.Contains(out, "Demo") {
		t.Fatalf("output missing failing check name:\n%s", out)
	}
}

func TestTerminal_QuietOmitsFindingDetail(t *testing.T) {
	s := aggregator.Aggregate(sampleResults())
	var buf bytes.Buffer
	Terminal{Quiet: true}.Write(&buf, s)
	if strings.Contains(buf.String(), "Demo") {
		t.Fatalf("quiet output should omit per-check detail:\n%s", buf.String())
	}
}

func TestJSON_RoundTrips(t *testing.T) {
	results := sampleResults()
	data, err := JSON(results)
	if err != nil {
		t.Fatal(err)
	}

	var doc struct {
		Results []checkapi.Result `json:"results"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if len(doc.Results) != len(results) {
		t.Fatalf("round-tripped %d results, want %d", len(doc.Results), len(results))
	}
	if doc.Results[2].Status != checkapi.StatusFail || doc.Results[2].Findings[0].Line != 3 {
		t.Fatalf("round-tripped result mismatch: %+v", doc.Results[2])
	}
}

func TestJUnit_EscapesSpecialCharsAndCountsFailures(t *testing.T) {
	results := []checkapi.Result{
		{Name: "A & B <tag>", Status: checkapi.StatusFail, Findings: []checkapi.Finding{
			{Severity: checkapi.SeverityError, Code: "x/y", Message: "bad"},
		}},
		{Name: "Pass", Status: checkapi.StatusPass},
	}
	out := JUnit("hex-validator", results)
	if !strings.Contains(out, `tests="2" failures="1"`) {
		t.Fatalf("missing counts:\n%s", out)
	}
	if !strings.Contains(out, "A &amp; B &lt;tag&gt;") {
		t.Fatalf("name not escaped:\n%s", out)
	}
	if !strings.Contains(out, "<![CDATA[") {
		t.Fatalf("missing CDATA failure block:\n%s", out)
	}
}
