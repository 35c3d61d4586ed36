// Package toolprobe detects whether an external executable is available
// and, if so, what version it reports.
package toolprobe

import (
	"context"
	"os/exec"
	"regexp"
	"sync"
	"time"

	"github.com/hexvalidate/hex-validate/internal/procrunner"
)

// Timeout bounds how long a single probe may take.
const Timeout = 5 * time.Second

var versionRe = regexp.MustCompile(`v?(\d+\.\d+\.\d+)`)

// Info is the outcome of probing a tool.
type Info struct {
	Available bool
	Version   string
	Path      string
}

// Prober memoizes probe results in process memory, keyed by (command,
// cwd). Memoization is effectively permanent within a run but does not
// persist across runs. The zero value is ready to use.
type Prober struct {
	mu    sync.Mutex
	cache map[key]Info
}

type key struct {
	command string
	cwd     string
}

// New returns a ready-to-use Prober.
func New() *Prober {
	return &Prober{cache: make(map[key]Info)}
}

// Probe reports whether command is available in cwd, running
// `command args...` (defaulting to `command --version` when args is
// empty) under a 5-second timeout. A non-zero exit code, a spawn error, or
// a timeout all yield Available=false without raising.
func (p *Prober) Probe(ctx context.Context, command, cwd string, args ...string) Info {
	k := key{command: command, cwd: cwd}

	p.mu.Lock()
	if info, ok := p.cache[k]; ok {
		p.mu.Unlock()
		return info
	}
	p.mu.Unlock()

	info := probe(ctx, command, cwd, args...)

	p.mu.Lock()
	if p.cache == nil {
		p.cache = make(map[key]Info)
	}
	p.cache[k] = info
	p.mu.Unlock()

	return info
}

func probe(ctx context.Context, command, cwd string, args ...string) Info {
	path, err := exec.LookPath(command)
	if err != nil {
		return Info{Available: false}
	}

	if len(args) == 0 {
		args = []string{"--version"}
	}

	ctx, cancel := context.WithTimeout(ctx, Timeout)
	defer cancel()

	res, err := procrunner.Run(ctx, cwd, nil, command, args...)
	if err != nil || res.ExitCode != 0 {
		return Info{Available: false}
	}

	version := parseVersion(res.Stdout)
	if version == "" {
		version = parseVersion(res.Stderr)
	}

	return Info{Available: true, Version: version, Path: path}
}

func parseVersion(s string) string {
	m := versionRe.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return m[1]
}
