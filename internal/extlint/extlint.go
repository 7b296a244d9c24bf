// Package extlint shells out to optional external linters (yamllint for
// YAML, jsonlint for JSON) and normalizes their output into warnings.
//
// The linters are optional collaborators: a missing executable degrades
// to zero warnings with a diagnostic-level notice, never an error.
package extlint

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/input-output-hk/catalyst-forge-libs/executor"

	"github.com/garagon/yarara/internal/document"
	"github.com/garagon/yarara/internal/log"
	"github.com/garagon/yarara/internal/types"
)

// ErrToolNotFound reports that the external executable is not installed.
var ErrToolNotFound = errors.New("external linter not found")

// DefaultTimeout bounds a single linter invocation.
const DefaultTimeout = 30 * time.Second

// StreamKind says which stream a linter writes its diagnostics to.
type StreamKind int

const (
	StreamStdout StreamKind = iota
	StreamStderr
)

// Tool describes one external checker: the executable name and where it
// reports problems.
type Tool struct {
	Name        string
	Diagnostics StreamKind
}

// toolsByFormat maps each resolvable format to its checker. yamllint
// reports on stdout; jsonlint writes errors to stderr.
var toolsByFormat = map[document.Format]Tool{
	document.FormatYAML: {Name: "yamllint", Diagnostics: StreamStdout},
	document.FormatJSON: {Name: "jsonlint", Diagnostics: StreamStderr},
}

// ToolFor returns the checker for a format, if one is configured.
func ToolFor(format document.Format) (Tool, bool) {
	t, ok := toolsByFormat[format]
	return t, ok
}

// Result carries the outcome of one linter invocation.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner abstracts subprocess execution so tests can stub the tools.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (*Result, error)
}

// ExecRunner runs real subprocesses.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) (*Result, error) {
	res, err := executor.New(name, args...).Execute(ctx, executor.SilentMode())
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, ErrToolNotFound
		}
		if res == nil {
			return nil, err
		}
		// Non-zero exits land here with captured output; that is a
		// normal linter outcome, not a failure of the adapter.
	}
	return &Result{Stdout: res.Stdout, Stderr: res.Stderr, ExitCode: res.ExitCode}, nil
}

// Linter invokes the format's external checker against a file path.
type Linter struct {
	runner  Runner
	log     *log.Logger
	timeout time.Duration
}

// New creates a Linter. A nil runner uses real subprocesses; a zero
// timeout uses DefaultTimeout.
func New(runner Runner, logger *log.Logger, timeout time.Duration) *Linter {
	if runner == nil {
		runner = ExecRunner{}
	}
	if logger == nil {
		logger = log.Discard()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Linter{runner: runner, log: logger, timeout: timeout}
}

// Lint runs the external checker for the format, invoked as
// "<tool> <path>". Exit code 0 with no output means clean. A non-zero
// exit surfaces the tool's diagnostic stream; a clean exit that still
// produced stdout is reported as well.
func (l *Linter) Lint(ctx context.Context, path string, format document.Format) []types.Warning {
	tool, ok := ToolFor(format)
	if !ok {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	res, err := l.runner.Run(ctx, tool.Name, path)
	if err != nil {
		if errors.Is(err, ErrToolNotFound) {
			l.log.Info("external linter not installed, skipping", "tool", tool.Name)
			return nil
		}
		if ctx.Err() != nil {
			l.log.Warn("external linter timed out, skipping", "tool", tool.Name, "timeout", l.timeout)
			return nil
		}
		l.log.Warn("external linter failed to run, skipping", "tool", tool.Name, "error", err)
		return nil
	}

	var text string
	switch {
	case res.ExitCode != 0:
		text = l.diagnosticText(tool, res)
	case strings.TrimSpace(res.Stdout) != "":
		text = res.Stdout
	default:
		l.log.Debug("external linter reported no issues", "tool", tool.Name)
		return nil
	}

	return toWarnings(tool.Name, text)
}

func (l *Linter) diagnosticText(tool Tool, res *Result) string {
	if tool.Diagnostics == StreamStderr {
		return res.Stderr
	}
	return res.Stdout
}

// toWarnings converts each non-empty diagnostic line into one warning.
func toWarnings(toolName, text string) []types.Warning {
	var warnings []types.Warning
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		warnings = append(warnings, types.Warning{
			Message:  fmt.Sprintf("%s: %s", toolName, line),
			Severity: types.SeverityWarning,
			Source:   types.SourceExternalLinter,
		})
	}
	return warnings
}
