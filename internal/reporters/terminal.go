package reporters

import (
	"fmt"
	"io"

	"github.com/hexvalidate/hex-validate/internal/aggregator"
	"github.com/hexvalidate/hex-validate/internal/checkapi"
)

// Terminal renders a Summary as human-readable, line-oriented text: a
// summary block, then (unless Quiet) one header and grouped findings per
// failing or warning check. In Verbose mode, per-check durations are
// included.
type Terminal struct {
	Quiet   bool
	Verbose bool
}

func (t Terminal) Write(w io.Writer, s aggregator.Summary) {
	c := s.Counts
	fmt.Fprintf(w, "%s%s%s\n", Bold, fmt.Sprintf("Tasks: %d", c.Total), Reset)
	fmt.Fprintf(w, "%s%s%s\n", Green, fmt.Sprintf("  Passed: %d", c.Passed), Reset)
	fmt.Fprintf(w, "%s%s%s\n", Yellow, fmt.Sprintf("  Warned: %d", c.Warned), Reset)
	fmt.Fprintf(w, "%s%s%s\n", Red, fmt.Sprintf("  Failed: %d", c.Failed), Reset)
	fmt.Fprintf(w, "%s%s%s\n", Dim, fmt.Sprintf("  Skipped: %d", c.Skipped), Reset)

	if t.Quiet {
		return
	}

	for _, cs := range s.Checks {
		t.writeCheck(w, cs)
	}
}

func (t Terminal) writeCheck(w io.Writer, cs aggregator.CheckSummary) {
	color := Yellow
	label := "WARN"
	if cs.Result.Status == checkapi.StatusFail {
		color = Red
		label = "FAIL"
	}

	fmt.Fprintf(w, "\n%s%s %s%s\n", color, label, cs.Result.Name, Reset)
	if t.Verbose {
		fmt.Fprintf(w, "%s  (%dms)%s\n", Dim, cs.Result.DurationMS, Reset)
	}

	for _, g := range cs.Groups {
		fmt.Fprintf(w, "  %s[%s] %s (%d)%s\n", Dim, g.Severity, g.Code, g.Count, Reset)
		for _, fo := range g.Files {
			fmt.Fprintf(w, "    %s %d occurrence(s)\n", fo.File, fo.Count)
		}
		if g.Suggestion != "" {
			fmt.Fprintf(w, "    %ssuggestion: %s%s\n", Dim, g.Suggestion, Reset)
		}
	}
}
