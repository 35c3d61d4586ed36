// Package checkapi defines the data model and contract every check in the
// hex-validate pipeline must satisfy: the immutable context a check
// receives, and the result shape it returns.
package checkapi

import "context"

// Severity orders findings and derived statuses from most to least severe.
type Severity string

const (
	SeverityError Severity = "error"
	SeverityWarn  Severity = "warn"
	SeverityInfo  Severity = "info"
)

// Rank returns a numeric ordering for severity comparisons: lower is more
// severe. Unknown severities sort last.
func (s Severity) Rank() int {
	switch s {
	case SeverityError:
		return 0
	case SeverityWarn:
		return 1
	case SeverityInfo:
		return 2
	default:
		return 3
	}
}

// Status is the terminal disposition of a single check.
type Status string

const (
	StatusPass    Status = "pass"
	StatusWarn    Status = "warn"
	StatusFail    Status = "fail"
	StatusSkipped Status = "skipped"
)

// Scope names the file-selection mode a run was invoked with.
type Scope string

const (
	ScopeStaged  Scope = "staged"
	ScopeChanged Scope = "changed"
	ScopeFull    Scope = "full"
)

// E2EMode controls whether end-to-end-flavored checks run.
type E2EMode string

const (
	E2EAuto   E2EMode = "auto"
	E2EAlways E2EMode = "always"
	E2EOff    E2EMode = "off"
)

// ReportFormat names a reporter.
type ReportFormat string

const (
	ReportSummary ReportFormat = "summary"
	ReportJSON    ReportFormat = "json"
	ReportJUnit   ReportFormat = "junit"
)

// Finding is the atomic diagnostic record a check emits.
//
// (File, Line, Column, Code) is the natural identity for de-duplication
// within a single check's output; codes are stable across versions.
type Finding struct {
	File       string   `json:"file,omitempty"`
	Line       int      `json:"line,omitempty"`
	Column     int      `json:"column,omitempty"`
	Severity   Severity `json:"severity"`
	Code       string   `json:"code"`
	Message    string   `json:"message"`
	Suggestion string   `json:"suggestion,omitempty"`
	Fixable    bool     `json:"fixable,omitempty"`
}

// DeriveStatus computes a check's status from its findings: any
// error finding fails the check; else any warn finding warns it; otherwise
// it is left to the caller to decide between pass and skipped, since that
// distinction (no relevant files vs. ran clean) is not recoverable from the
// findings alone.
func DeriveStatus(findings []Finding) Status {
	warn := false
	for _, f := range findings {
		switch f.Severity {
		case SeverityError:
			return StatusFail
		case SeverityWarn:
			warn = true
		}
	}
	if warn {
		return StatusWarn
	}
	return StatusPass
}

// Result is produced by one check execution.
type Result struct {
	Name       string                 `json:"name"`
	Status     Status                 `json:"status"`
	Findings   []Finding              `json:"findings"`
	Stdout     string                 `json:"stdout,omitempty"`
	Stderr     string                 `json:"stderr,omitempty"`
	DurationMS int64                  `json:"durationMs,omitempty"`
	Artifacts  map[string]any         `json:"artifacts,omitempty"`
	Stage      string                 `json:"stage,omitempty"`
}

// Context is the read-only record given to every check. It is built once
// per run, before any stage starts, and is immutable and shared read-only
// across concurrent checks. Nothing in this package mutates it after
// construction; checks MUST NOT mutate it either.
type Context struct {
	Cwd          string
	CI           bool
	Scope        Scope
	E2E          E2EMode
	StagedFiles  []string
	ChangedFiles []string
	TargetFiles  []string
	Environment  []string
	Config       any
	RunID        string
}

// FilesInScope returns the file list a check should restrict itself to,
// honoring an explicit --paths override ahead of the run's scope.
func (c *Context) FilesInScope() []string {
	if c.TargetFiles != nil {
		return c.TargetFiles
	}
	switch c.Scope {
	case ScopeStaged:
		return c.StagedFiles
	case ScopeChanged:
		return c.ChangedFiles
	default:
		return nil // full scope: checks walk the tree themselves
	}
}

// Check is a value with a display name and a single operation: given an
// immutable check context, asynchronously produce a check result.
//
// A check SHOULD return StatusSkipped when it has no work (no relevant
// files, required external tool absent) rather than StatusPass. A check
// MAY spawn subprocesses, read files, and consult its own cache partition.
// It MUST NOT mutate ctx, the configuration, or any other check's state.
type Check interface {
	Name() string
	Run(ctx context.Context, cc *Context) (Result, error)
}

// Func adapts a plain function to the Check interface, for checks with no
// state beyond their closure.
type Func struct {
	CheckName string
	Fn        func(ctx context.Context, cc *Context) (Result, error)
}

func (f Func) Name() string { return f.CheckName }

func (f Func) Run(ctx context.Context, cc *Context) (Result, error) {
	return f.Fn(ctx, cc)
}
