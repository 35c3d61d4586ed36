// Package scheduler executes stages of checks with bounded concurrency,
// with a hard worker-count ceiling.
package scheduler

import (
	"context"
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
	"time"

	"github.com/hexvalidate/hex-validate/internal/checkapi"
)

// Stage is an ordered list of checks with a concurrency flag and a
// warn-fatality policy flag.
type Stage struct {
	Name       string
	Parallel   bool
	Checks     []checkapi.Check
	FailOnWarn bool
}

// ClampWorkers bounds a requested worker count to [1, 8], the hard
// ceiling that prevents runaway subprocess fan-out on large machines.
func ClampWorkers(requested int) int {
	if requested < 1 {
		requested = 1
	}
	if requested > 8 {
		requested = 8
	}
	return requested
}

// DefaultWorkers picks a sensible default worker count: clamp(cpu-1, 2, 4).
func DefaultWorkers() int {
	n := runtime.NumCPU() - 1
	if n < 2 {
		n = 2
	}
	if n > 4 {
		n = 4
	}
	return n
}

// Scheduler runs stages in declaration order, stopping at the first stage
// that fails its termination policy.
type Scheduler struct {
	MaxWorkers int
}

// New returns a Scheduler with workers clamped to [1, 8].
func New(maxWorkers int) *Scheduler {
	return &Scheduler{MaxWorkers: ClampWorkers(maxWorkers)}
}

// Run executes stages against cc in declaration order. It returns the
// accumulated result list and whether every executed stage passed its
// policy. When a stage aborts the pipeline, the results produced so far
// (including every result from the aborting stage) are still returned;
// no later stage is started.
func (s *Scheduler) Run(ctx context.Context, cc *checkapi.Context, stages []Stage) (bool, []checkapi.Result) {
	var all []checkapi.Result

	for _, stage := range stages {
		var results []checkapi.Result
		if stage.Parallel {
			results = s.runParallel(ctx, cc, stage)
		} else {
			results = runSequential(ctx, cc, stage)
		}

		for i := range results {
			results[i].Stage = stage.Name
		}
		all = append(all, results...)

		if stageFailed(results, stage.FailOnWarn) {
			return false, all
		}
	}

	return true, all
}

func stageFailed(results []checkapi.Result, failOnWarn bool) bool {
	for _, r := range results {
		if r.Status == checkapi.StatusFail {
			return true
		}
		if failOnWarn && r.Status == checkapi.StatusWarn {
			return true
		}
	}
	return false
}

func runSequential(ctx context.Context, cc *checkapi.Context, stage Stage) []checkapi.Result {
	results := make([]checkapi.Result, len(stage.Checks))
	for i, check := range stage.Checks {
		results[i] = invoke(ctx, cc, check)
	}
	return results
}

// runParallel runs a stage's checks through a bounded worker pool of size
// max(1, min(MaxWorkers, 8)). Results arrive in completion order and each
// is stored at its check's declaration index, so the returned slice is in
// declaration order and reporting is deterministic regardless of scheduling.
func (s *Scheduler) runParallel(ctx context.Context, cc *checkapi.Context, stage Stage) []checkapi.Result {
	type indexed struct {
		idx int
		res checkapi.Result
	}

	n := len(stage.Checks)
	workers := s.MaxWorkers
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int, n)
	out := make(chan indexed, n)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for idx := range jobs {
				out <- indexed{idx: idx, res: invoke(ctx, cc, stage.Checks[idx])}
			}
		}()
	}
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(out)
	}()

	// Slotting each result directly by its original index, rather than
	// appending in completion order, is what gives the stage deterministic
	// declaration-order output regardless of which worker finished first.
	results := make([]checkapi.Result, n)
	for r := range out {
		results[r.idx] = r.res
	}
	return results
}

// invoke runs a single check, converting a panic or returned error into a
// fail-status result so other checks continue. The scheduler stamps
// duration here.
func invoke(ctx context.Context, cc *checkapi.Context, check checkapi.Check) (result checkapi.Result) {
	start := time.Now()
	defer func() {
		result.DurationMS = time.Since(start).Milliseconds()
		if r := recover(); r != nil {
			result = checkapi.Result{
				Name:   check.Name(),
				Status: checkapi.StatusFail,
				Findings: []checkapi.Finding{{
					Severity: checkapi.SeverityError,
					Code:     "engine/panic",
					Message:  fmt.Sprintf("check %q panicked: %v", check.Name(), r),
				}},
				Stderr:     string(debug.Stack()),
				DurationMS: time.Since(start).Milliseconds(),
			}
		}
	}()

	res, err := check.Run(ctx, cc)
	if err != nil {
		return checkapi.Result{
			Name:   check.Name(),
			Status: checkapi.StatusFail,
			Findings: []checkapi.Finding{{
				Severity: checkapi.SeverityError,
				Code:     "engine/check-error",
				Message:  err.Error(),
			}},
			Stderr: err.Error(),
		}
	}
	if res.Name == "" {
		res.Name = check.Name()
	}
	return res
}
