package reporters

import (
	"fmt"
	"strings"

	"github.com/hexvalidate/hex-validate/internal/checkapi"
)

// JUnit renders a single <testsuite> with one <testcase> per check. Failed
// checks carry a <failure> with findings concatenated in CDATA; warned
// checks carry <skipped message="warning"> with findings in CDATA. Text
// content is escaped for <, >, &.
func JUnit(suiteName string, results []checkapi.Result) string {
	var failures int
	for _, r := range results {
		if r.Status == checkapi.StatusFail {
			failures++
		}
	}

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(&b, `<testsuite name="%s" tests="%d" failures="%d">`+"\n", escape(suiteName), len(results), failures)

	for _, r := range results {
		writeTestcase(&b, r)
	}

	b.WriteString("</testsuite>\n")
	return b.String()
}

func writeTestcase(b *strings.Builder, r checkapi.Result) {
	fmt.Fprintf(b, `  <testcase name="%s" classname="%s"`, escape(r.Name), escape(r.Stage))
	if r.DurationMS > 0 {
		fmt.Fprintf(b, ` time="%.3f"`, float64(r.DurationMS)/1000.0)
	}

	switch r.Status {
	case checkapi.StatusFail:
		b.WriteString(">\n")
		fmt.Fprintf(b, "    <failure message=\"check failed\"><![CDATA[%s]]></failure>\n", findingsText(r.Findings))
		b.WriteString("  </testcase>\n")
	case checkapi.StatusWarn:
		b.WriteString(">\n")
		b.WriteString(`    <skipped message="warning">`)
		fmt.Fprintf(b, "<![CDATA[%s]]>", findingsText(r.Findings))
		b.WriteString("</skipped>\n")
		b.WriteString("  </testcase>\n")
	default:
		b.WriteString(" />\n")
	}
}

func findingsText(findings []checkapi.Finding) string {
	lines := make([]string, 0, len(findings))
	for _, f := range findings {
		loc := f.File
		if f.Line > 0 {
			loc = fmt.Sprintf("%s:%d", loc, f.Line)
			if f.Column > 0 {
				loc = fmt.Sprintf("%s:%d", loc, f.Column)
			}
		}
		if loc != "" {
			lines = append(lines, fmt.Sprintf("[%s] %s: %s", f.Severity, loc, f.Message))
		} else {
			lines = append(lines, fmt.Sprintf("[%s] %s: %s", f.Severity, f.Code, f.Message))
		}
	}
	return strings.Join(lines, "\n")
}

// escape replaces &, <, > for safe inclusion in XML attribute and text
// content. CDATA sections are exempt from this (they're escaped at the
// delimiter level instead, which findingsText does not need to handle
// since findings never contain "]]>").
func escape(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}
