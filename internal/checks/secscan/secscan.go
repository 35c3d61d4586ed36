// Package secscan implements a sample check that shells out to gosec: it
// probes for the tool, spawns it, and parses its JSON summary using
// gosec's own report types. gosec exits non-zero whenever it finds
// issues, so this check treats "non-zero but parseable" as the normal
// case and only a genuinely malformed report as a check failure.
package secscan

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/securego/gosec/v2"

	"github.com/hexvalidate/hex-validate/internal/checkapi"
	"github.com/hexvalidate/hex-validate/internal/procrunner"
	"github.com/hexvalidate/hex-validate/internal/toolprobe"
)

const Name = "Security Scan"

const envRetries = "VALIDATOR_RETRIES"
const envRetryDelayMS = "VALIDATOR_RETRY_DELAY_MS"

// Check shells out to `gosec -fmt=json ./...` and maps its findings.
type Check struct {
	prober *toolprobe.Prober
}

func New(options map[string]any) (checkapi.Check, error) {
	return &Check{prober: toolprobe.New()}, nil
}

func (c *Check) Name() string { return Name }

func (c *Check) Run(ctx context.Context, cc *checkapi.Context) (checkapi.Result, error) {
	info := c.prober.Probe(ctx, "gosec", cc.Cwd)
	if !info.Available {
		return checkapi.Result{
			Name:   Name,
			Status: checkapi.StatusSkipped,
			Stdout: "gosec not found; install with `go install github.com/securego/gosec/v2/cmd/gosec@latest`",
		}, nil
	}

	retries, delay := retryPolicy()

	var res procrunner.Result
	var err error
	for attempt := 0; attempt <= retries; attempt++ {
		res, err = procrunner.Run(ctx, cc.Cwd, nil, "gosec", "-fmt=json", "-quiet", "./...")
		if err == nil {
			break
		}
		if attempt < retries {
			time.Sleep(time.Duration(delay) * time.Millisecond)
		}
	}
	if err != nil {
		return checkapi.Result{
			Name:   Name,
			Status: checkapi.StatusFail,
			Findings: []checkapi.Finding{{
				Severity: checkapi.SeverityError,
				Code:     "security/spawn-failure",
				Message:  err.Error(),
			}},
		}, nil
	}

	// gosec exits non-zero when it finds issues; only a genuinely
	// unparseable report is treated as a check failure distinct from
	// "issues found".
	var report gosec.ReportInfo
	if jsonErr := json.Unmarshal([]byte(res.Stdout), &report); jsonErr != nil {
		return checkapi.Result{
			Name:   Name,
			Status: checkapi.StatusFail,
			Stdout: res.Stdout,
			Stderr: res.Stderr,
			Findings: []checkapi.Finding{{
				Severity: checkapi.SeverityError,
				Code:     "security/unparseable-output",
				Message:  fmt.Sprintf("gosec output could not be parsed: %v", jsonErr),
			}},
		}, nil
	}

	findings := make([]checkapi.Finding, 0, len(report.Issues))
	for _, issue := range report.Issues {
		line, _ := strconv.Atoi(issue.Line)
		findings = append(findings, checkapi.Finding{
			File:       issue.File,
			Line:       line,
			Severity:   severityFor(issue.Severity.String()),
			Code:       "security/" + issue.RuleID,
			Message:    issue.What,
			Suggestion: issue.Cwe.URL,
		})
	}

	return checkapi.Result{
		Name:     Name,
		Status:   checkapi.DeriveStatus(findings),
		Findings: findings,
		Stdout:   res.Stdout,
		Stderr:   res.Stderr,
	}, nil
}

func severityFor(gosecSeverity string) checkapi.Severity {
	switch gosecSeverity {
	case "HIGH", "MEDIUM":
		return checkapi.SeverityError
	default:
		return checkapi.SeverityWarn
	}
}

// retryPolicy reads the per-check retry convention: the engine itself
// never retries, but a check may opt in via these two environment
// variables.
func retryPolicy() (retries int, delayMS int) {
	if v := os.Getenv(envRetries); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			retries = n
		}
	}
	if v := os.Getenv(envRetryDelayMS); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			delayMS = n
		}
	}
	return retries, delayMS
}
