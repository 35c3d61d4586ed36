// Package aggregator groups check results into the structured summary
// every reporter renders from.
package aggregator

import (
	"sort"

	"github.com/hexvalidate/hex-validate/internal/checkapi"
)

// FileOccurrence is one finding location within a finding group.
type FileOccurrence struct {
	File  string
	Count int
}

// Group is the aggregator's grouping of one check's findings by rule code.
type Group struct {
	Code       string
	Severity   checkapi.Severity
	Count      int
	Files      []FileOccurrence
	Suggestion string
}

// CheckSummary pairs a result with its finding groups, for checks that
// failed or warned.
type CheckSummary struct {
	Result checkapi.Result
	Groups []Group
}

// Counts is the top-line tally of check statuses.
type Counts struct {
	Total   int
	Passed  int
	Warned  int
	Failed  int
	Skipped int
}

// Summary is the aggregator's pure output: given the same result list, the
// same Summary is produced every time.
type Summary struct {
	Counts  Counts
	Checks  []CheckSummary // failing or warning checks only, in input order
	Results []checkapi.Result
}

// Aggregate computes top-line counts and per-code finding groups for every
// failing or warning result in results.
func Aggregate(results []checkapi.Result) Summary {
	summary := Summary{Results: results}
	summary.Counts.Total = len(results)

	for _, r := range results {
		switch r.Status {
		case checkapi.StatusPass:
			summary.Counts.Passed++
		case checkapi.StatusWarn:
			summary.Counts.Warned++
		case checkapi.StatusFail:
			summary.Counts.Failed++
		case checkapi.StatusSkipped:
			summary.Counts.Skipped++
		}

		if r.Status == checkapi.StatusFail || r.Status == checkapi.StatusWarn {
			summary.Checks = append(summary.Checks, CheckSummary{
				Result: r,
				Groups: groupFindings(r.Findings),
			})
		}
	}

	return summary
}

func groupFindings(findings []checkapi.Finding) []Group {
	byCode := make(map[string]*Group)
	var order []string
	fileCounts := make(map[string]map[string]int) // code -> file -> count

	for _, f := range findings {
		g, ok := byCode[f.Code]
		if !ok {
			g = &Group{Code: f.Code, Severity: f.Severity}
			byCode[f.Code] = g
			fileCounts[f.Code] = make(map[string]int)
			order = append(order, f.Code)
		}
		g.Count++
		if f.Severity.Rank() < g.Severity.Rank() {
			g.Severity = f.Severity
		}
		if g.Suggestion == "" && f.Suggestion != "" {
			g.Suggestion = f.Suggestion
		}
		if f.File != "" {
			fileCounts[f.Code][f.File]++
		}
	}

	groups := make([]Group, 0, len(order))
	for _, code := range order {
		g := byCode[code]
		var files []string
		for file := range fileCounts[code] {
			files = append(files, file)
		}
		sort.Strings(files)
		for _, file := range files {
			g.Files = append(g.Files, FileOccurrence{File: file, Count: fileCounts[code][file]})
		}
		groups = append(groups, *g)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Severity.Rank() != groups[j].Severity.Rank() {
			return groups[i].Severity.Rank() < groups[j].Severity.Rank()
		}
		return groups[i].Code < groups[j].Code
	})

	return groups
}
