package docs

var topics = []Topic{
	{
		Name:    "quickstart",
		Title:   "Quick Start",
		Summary: "Getting started with hex-validate",
		Content: topicQuickstart,
	},
	{
		Name:    "config",
		Title:   "Pipeline Configuration Reference",
		Summary: "Stage and check syntax, fields, and defaults",
		Content: topicConfig,
	},
	{
		Name:    "checks",
		Title:   "Writing a Check",
		Summary: "The Check interface, results, findings, and scoping",
		Content: topicChecks,
	},
	{
		Name:    "scopes",
		Title:   "Scopes and the Driver",
		Summary: "staged/changed/full scope, CI mode, and subcommands",
		Content: topicScopes,
	},
	{
		Name:    "reporters",
		Title:   "Reporters",
		Summary: "Terminal, JSON, and JUnit output formats",
		Content: topicReporters,
	},
	{
		Name:    "cache",
		Title:   "The Hash Cache",
		Summary: "How checks skip unchanged files between runs",
		Content: topicCache,
	},
}

const topicQuickstart = `Quick Start
===========

1. Create .hex-validate/pipeline.yaml in your repository root. If this
   file is absent, hex-validate falls back to a small built-in default
   pipeline (a workflow lint stage, then a security scan stage).

2. Run the staged-scope pipeline before committing:

    hex-validate fast

3. Run the full-scope pipeline, as CI would:

    hex-validate ci

4. Get a focused recap of the last run's failures:

    hex-validate doctor

Run 'hex-validate docs <topic>' to read any topic listed above.`

const topicConfig = `Pipeline Configuration Reference
=================================

hex-validate reads its pipeline from .hex-validate/pipeline.yaml:

    stages:
      - name: analyze
        parallel: true
        checks:
          - use: workflow/lint
      - name: security
        fail-on-warn: true
        checks:
          - use: security/secscan
            options:
              exclude: ["testdata/**"]
    default-e2e: off
    default-report: summary

Top-level fields:

  stages           Ordered list of stages. At least one is required.
  default-e2e      auto | always | off. Defaults to off.
  default-report   summary | json | junit. Defaults to summary.

Stage fields:

  name             Required, unique within the pipeline.
  parallel         Run this stage's checks through the bounded worker
                    pool instead of sequentially. Default false.
  fail-on-warn     Abort the pipeline if any check in this stage warns,
                    not just on fail. Default false.
  checks           Ordered list of check specs. At least one is
                    required.

Check spec fields:

  use              A registry identifier, e.g. "workflow/lint" or
                    "security/secscan". Unknown identifiers are a
                    configuration error caught before any check runs.
  options           Free-form map passed to the check's constructor.

The configuration is validated twice: once against a bundled JSON
Schema (catching shape errors with a precise pointer to the offending
field), then against the narrower field rules above.`

const topicChecks = `Writing a Check
===============

A check is anything satisfying:

    type Check interface {
        Name() string
        Run(ctx context.Context, cc *checkapi.Context) (checkapi.Result, error)
    }

Context is built once per run and is shared read-only across every
concurrently running check. Use cc.FilesInScope() to honor an explicit
--paths override ahead of the run's --scope.

A Result carries a Status and zero or more Findings. Prefer returning
StatusSkipped over StatusPass when a check has no relevant files or its
external tool is unavailable — the two cases are not recoverable from
an empty finding list alone, so the check must decide.

checkapi.DeriveStatus(findings) computes a status from a finding list:
any error-severity finding fails the check; otherwise any warn-severity
finding warns it; otherwise it is left pass.

A check that returns an error, or panics, is converted by the scheduler
into a fail-status result — a misbehaving check never stops its
siblings or crashes the run.

Checks opt into retries on their own terms; the engine itself never
retries a check. security/secscan demonstrates the convention: it reads
VALIDATOR_RETRIES and VALIDATOR_RETRY_DELAY_MS from the environment.`

const topicScopes = `Scopes and the Driver
=====================

Subcommands:

  fast    scope=staged by default — fast pre-commit pass.
  full    scope=full by default.
  ci      scope=full by default, CI mode forced on.
  doctor  Summarize the last run's failures and warnings.

Flags (override subcommand defaults):

  --scope=staged|changed|full
  --e2e=auto|always|off
  --report=summary|json|junit
  --max-workers=<N>
  --quiet
  --verbose
  --paths=<csv>
  --cwd=<path>

CI mode is implied by either the 'ci' subcommand or a truthy CI
environment variable, and is threaded through to every check as
cc.CI so a check can, for instance, refuse to autofix outside a
human's working tree.

Exit code is 0 iff every executed stage passed its policy (no fail,
and no warn in a fail-on-warn stage); 1 otherwise. A fatal error before
the scheduler starts (bad config, unknown check identifier) is printed
to standard error and also exits 1.`

const topicReporters = `Reporters
=========

--report=summary (default)
  Human-readable terminal output: a "Tasks: N" counts block, then
  (unless --quiet) one block per failing or warning check, findings
  grouped by rule code. --verbose adds per-check durations.

--report=json
  { "results": [ <checkapi.Result>, ... ] } — every finding, captured
  stdout/stderr, and artifact reproduced verbatim, suitable for
  feeding into other tooling.

--report=junit
  A single <testsuite> with one <testcase> per check. Failing checks
  carry a <failure> with their findings in CDATA; warning checks carry
  <skipped message="warning">, so CI dashboards that only understand
  JUnit still surface a distinct warn state.`

const topicCache = `The Hash Cache
==============

Checks that want to skip unchanged files keep a partition in
.cache/<tool-name>.json, keyed by the check's own name and a
repository-relative file path, value the file's SHA-256 content hash.

A check loads its cache with hashcache.Load(hashcache.Path(repoRoot,
toolName)), takes its partition with Partition(checkName), consults hashcache.Unchanged(partition, file, hash) per
file, and calls Save() when it's done. Writes go through a temp file
and rename so a crash mid-write never corrupts the cache; if rename
isn't available, the writer falls back to copy-then-unlink. Read and
write failures degrade silently to an empty/unsaved cache with a
single warning line on stderr — a broken cache must never fail a run.`
