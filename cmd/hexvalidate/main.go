package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	cli "github.com/urfave/cli/v3"

	"github.com/hexvalidate/hex-validate/internal/aggregator"
	"github.com/hexvalidate/hex-validate/internal/checkapi"
	"github.com/hexvalidate/hex-validate/internal/doctor"
	"github.com/hexvalidate/hex-validate/internal/docs"
	"github.com/hexvalidate/hex-validate/internal/engineconfig"
	"github.com/hexvalidate/hex-validate/internal/pipeline"
	"github.com/hexvalidate/hex-validate/internal/reporters"
	"github.com/hexvalidate/hex-validate/internal/scheduler"
	"github.com/hexvalidate/hex-validate/internal/workspace"
)

const configRelPath = ".hex-validate/pipeline.yaml"

const version = "0.1.0"

func main() {
	app := &cli.Command{
		Name:        "hex-validate",
		Usage:       "Architecture and policy validator for a repository",
		Description: "Runs a configurable pipeline of checks against a repository and reports pass/warn/fail findings.",
		Version:     version,
		Commands: []*cli.Command{
			validateCmd("fast", "Run the staged-scope pipeline, for a pre-commit check"),
			validateCmd("full", "Run the full-scope pipeline"),
			validateCmd("ci", "Run the full-scope pipeline in CI mode"),
			initCmd(),
			doctorCmd(),
			docsCmd(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%serror:%s %v\n", reporters.Red, reporters.Reset, err)
		os.Exit(1)
	}
}

func sharedFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "scope", Usage: "staged | changed | full"},
		&cli.StringFlag{Name: "e2e", Usage: "auto | always | off"},
		&cli.StringFlag{Name: "report", Usage: "summary | json | junit"},
		&cli.IntFlag{Name: "max-workers", Usage: "Bounded worker count for parallel stages"},
		&cli.BoolFlag{Name: "quiet", Usage: "Summary only"},
		&cli.BoolFlag{Name: "verbose", Usage: "Include per-check durations"},
		&cli.StringFlag{Name: "paths", Usage: "Restrict to these files/directories (comma-separated)"},
		&cli.StringFlag{Name: "cwd", Usage: "Run as if invoked from this directory"},
	}
}

// validateCmd builds the fast/full/ci subcommands. They share every flag
// and the whole wiring; only the scope/CI defaults differ.
func validateCmd(name, usage string) *cli.Command {
	return &cli.Command{
		Name:  name,
		Usage: usage,
		Flags: sharedFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runValidate(ctx, cmd, name)
		},
	}
}

func runValidate(ctx context.Context, cmd *cli.Command, subcommand string) error {
	opts, err := optionsFromFlags(cmd, subcommand)
	if err != nil {
		return err
	}

	root, err := resolveRoot(opts.Cwd)
	if err != nil {
		return fmt.Errorf("locating repository root: %w", err)
	}
	opts.Cwd = root

	cfg, err := loadConfig(root)
	if err != nil {
		return fmt.Errorf("loading pipeline config: %w", err)
	}
	if cmd.String("report") == "" && cfg.DefaultReport != "" {
		opts.Report = cfg.DefaultReport
	}

	registry := pipeline.NewRegistry()
	stages, err := pipeline.BuildStages(cfg, registry)
	if err != nil {
		return fmt.Errorf("building pipeline: %w", err)
	}

	cc, err := pipeline.BuildContext(ctx, opts, cfg)
	if err != nil {
		return fmt.Errorf("building check context: %w", err)
	}

	sched := scheduler.New(opts.MaxWorkers)
	ok, results := sched.Run(ctx, cc, stages)

	doctor.SaveLastRun(root, results)

	if err := writeReport(os.Stdout, opts.Report, results, opts.Quiet, opts.Verbose); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	if !ok {
		os.Exit(1)
	}
	return nil
}

// optionsFromFlags resolves CLI flags into pipeline.Options, applying the
// subcommand-keyed defaults and CI-mode detection: CLI
// flags override subcommand defaults, and CI mode is implied by either the
// `ci` subcommand or a truthy `CI` environment variable.
func optionsFromFlags(cmd *cli.Command, subcommand string) (pipeline.Options, error) {
	opts := pipeline.Options{
		Scope:      checkapi.ScopeStaged,
		Report:     checkapi.ReportSummary,
		MaxWorkers: scheduler.DefaultWorkers(),
		Cwd:        cmd.String("cwd"),
		Quiet:      cmd.Bool("quiet"),
		Verbose:    cmd.Bool("verbose"),
	}

	if subcommand == "full" || subcommand == "ci" {
		opts.Scope = checkapi.ScopeFull
	}
	opts.CI = subcommand == "ci" || isTruthy(os.Getenv("CI"))

	if v := cmd.String("scope"); v != "" {
		scope := checkapi.Scope(v)
		switch scope {
		case checkapi.ScopeStaged, checkapi.ScopeChanged, checkapi.ScopeFull:
			opts.Scope = scope
		default:
			return opts, fmt.Errorf("--scope: unknown value %q", v)
		}
	}

	if v := cmd.String("report"); v != "" {
		report := checkapi.ReportFormat(v)
		switch report {
		case checkapi.ReportSummary, checkapi.ReportJSON, checkapi.ReportJUnit:
			opts.Report = report
		default:
			return opts, fmt.Errorf("--report: unknown value %q", v)
		}
	}

	// --e2e overrides the pipeline config's default-e2e (pipeline.BuildContext
	// resolves the final precedence); individual checks decide whether to
	// honor it.
	if v := cmd.String("e2e"); v != "" {
		e2e := checkapi.E2EMode(v)
		switch e2e {
		case checkapi.E2EAuto, checkapi.E2EAlways, checkapi.E2EOff:
			opts.E2E = e2e
		default:
			return opts, fmt.Errorf("--e2e: unknown value %q", v)
		}
	}

	if n := cmd.Int("max-workers"); n > 0 {
		opts.MaxWorkers = scheduler.ClampWorkers(int(n))
	}

	if v := cmd.String("paths"); v != "" {
		for _, p := range strings.Split(v, ",") {
			p = strings.TrimSpace(p)
			if p != "" {
				opts.Paths = append(opts.Paths, p)
			}
		}
	}

	return opts, nil
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "0", "false", "no":
		return false
	default:
		return true
	}
}

func resolveRoot(cwd string) (string, error) {
	if cwd != "" {
		return workspace.Locate(cwd), nil
	}
	return workspace.LocateFromCwd()
}

// loadConfig loads the repository's pipeline configuration, falling back to
// the built-in default stage list when none is present.
func loadConfig(root string) (*engineconfig.Config, error) {
	path := root + string(os.PathSeparator) + configRelPath
	cfg, err := engineconfig.Load(path)
	if err != nil {
		if os.IsNotExist(err) {
			return pipeline.Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

func writeReport(w *os.File, format checkapi.ReportFormat, results []checkapi.Result, quiet, verbose bool) error {
	switch format {
	case checkapi.ReportJSON:
		data, err := reporters.JSON(results)
		if err != nil {
			return err
		}
		_, err = w.Write(append(data, '\n'))
		return err
	case checkapi.ReportJUnit:
		_, err := w.WriteString(reporters.JUnit("hex-validate", results))
		return err
	default:
		summary := aggregator.Aggregate(results)
		reporters.Terminal{Quiet: quiet, Verbose: verbose}.Write(w, summary)
		return nil
	}
}

func doctorCmd() *cli.Command {
	return &cli.Command{
		Name:  "doctor",
		Usage: "Summarize the most recent run's failures and warnings",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "cwd", Usage: "Run as if invoked from this directory"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			root, err := resolveRoot(cmd.String("cwd"))
			if err != nil {
				return fmt.Errorf("locating repository root: %w", err)
			}
			return doctor.Run(root)
		},
	}
}

// initCmd is a stub: scaffolding a new pipeline configuration is explicitly
// out of scope for the engine core.
func initCmd() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "(out of scope) scaffold a new pipeline configuration",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return fmt.Errorf("init is not implemented; create %s by hand", configRelPath)
		},
	}
}

func docsCmd() *cli.Command {
	return &cli.Command{
		Name:      "docs",
		Usage:     "Show documentation",
		ArgsUsage: "[topic]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				fmt.Print("\nAvailable topics:\n\n")
				for _, t := range docs.All() {
					fmt.Printf("  %-12s %s\n", t.Name, t.Summary)
				}
				fmt.Println("\nRun 'hex-validate docs <topic>' to read a topic.")
				return nil
			}
			t, err := docs.Get(name)
			if err != nil {
				return err
			}
			fmt.Println(t.Title)
			fmt.Println(t.Content)
			return nil
		},
	}
}
