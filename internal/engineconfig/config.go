// Package engineconfig loads and validates the pipeline configuration: an
// ordered list of stages, each an ordered list of check specifications.
package engineconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hexvalidate/hex-validate/internal/checkapi"
)

// CheckSpec names a check to construct by a registry identifier, with
// free-form options passed through to its constructor.
type CheckSpec struct {
	Use     string         `yaml:"use"`
	Options map[string]any `yaml:"options"`
}

// StageSpec is one stage: name, parallel flag, ordered check specs, and
// the warn-fatality policy flag.
type StageSpec struct {
	Name       string      `yaml:"name"`
	Parallel   bool        `yaml:"parallel"`
	FailOnWarn bool        `yaml:"fail-on-warn"`
	Checks     []CheckSpec `yaml:"checks"`
}

// Config is the full pipeline configuration.
type Config struct {
	Stages        []StageSpec           `yaml:"stages"`
	DefaultE2E    checkapi.E2EMode      `yaml:"default-e2e"`
	DefaultReport checkapi.ReportFormat `yaml:"default-report"`
}

// Load reads a YAML config file at path. A missing file is returned as the
// underlying read error, which satisfies os.IsNotExist; the driver treats
// that case as "use the built-in default pipeline" rather than as fatal.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := ValidateSchema(data); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the config for structural errors and fills defaults.
func Validate(cfg *Config) error {
	if len(cfg.Stages) == 0 {
		return fmt.Errorf("config: at least one stage is required")
	}

	if cfg.DefaultE2E == "" {
		cfg.DefaultE2E = checkapi.E2EOff
	}
	switch cfg.DefaultE2E {
	case checkapi.E2EAuto, checkapi.E2EAlways, checkapi.E2EOff:
	default:
		return fmt.Errorf("config: default-e2e: unknown mode %q", cfg.DefaultE2E)
	}

	if cfg.DefaultReport == "" {
		cfg.DefaultReport = checkapi.ReportSummary
	}
	switch cfg.DefaultReport {
	case checkapi.ReportSummary, checkapi.ReportJSON, checkapi.ReportJUnit:
	default:
		return fmt.Errorf("config: default-report: unknown reporter %q", cfg.DefaultReport)
	}

	seenStage := make(map[string]bool)
	for i := range cfg.Stages {
		st := &cfg.Stages[i]
		if st.Name == "" {
			return fmt.Errorf("config: stage %d: 'name' is required", i+1)
		}
		if seenStage[st.Name] {
			return fmt.Errorf("config: duplicate stage name %q", st.Name)
		}
		seenStage[st.Name] = true

		if len(st.Checks) == 0 {
			return fmt.Errorf("config: stage %q: at least one check is required", st.Name)
		}
		for _, c := range st.Checks {
			if c.Use == "" {
				return fmt.Errorf("config: stage %q: check entry missing 'use'", st.Name)
			}
		}
	}

	return nil
}
