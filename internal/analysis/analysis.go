// Package analysis sequences the full pipeline for one configuration
// file: format resolution, comment scanning, parsing, semantic rule
// evaluation, optional external linting, and the opt-in secret
// heuristic. Warnings are concatenated in that fixed order.
package analysis

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/garagon/yarara/internal/document"
	"github.com/garagon/yarara/internal/engine/comments"
	"github.com/garagon/yarara/internal/engine/secrets"
	"github.com/garagon/yarara/internal/extlint"
	"github.com/garagon/yarara/internal/log"
	"github.com/garagon/yarara/internal/semantic"
	"github.com/garagon/yarara/internal/types"
)

// Request fully determines one analysis run; there is no hidden state.
type Request struct {
	Path         string
	Format       document.Format // FormatAuto resolves from the path suffix
	FindSecrets  bool
	ExternalLint bool
}

// Analyzer runs analysis requests. It holds no per-run state: the
// registry and linter are read-only after construction, so one Analyzer
// is safe to use from multiple goroutines.
type Analyzer struct {
	log      *log.Logger
	registry *semantic.Registry
	linter   *extlint.Linter
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the diagnostic logger.
func WithLogger(l *log.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.log = l
		}
	}
}

// WithRegistry replaces the built-in semantic rule registry.
func WithRegistry(r *semantic.Registry) Option {
	return func(a *Analyzer) {
		if r != nil {
			a.registry = r
		}
	}
}

// WithLinter replaces the external linter adapter. Pass nil to disable
// external linting entirely.
func WithLinter(l *extlint.Linter) Option {
	return func(a *Analyzer) {
		a.linter = l
	}
}

// New builds an Analyzer with the built-in rules, a discard logger, and
// the real subprocess linter.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		log:      log.Discard(),
		registry: semantic.Builtin(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.linter == nil {
		a.linter = extlint.New(nil, a.log, 0)
	}
	return a
}

// Analyze reads and analyzes the file named by the request. The only
// fatal condition is an unreadable target: in that case the returned
// report carries a single error-severity warning describing the failure
// and the returned error is non-nil so the caller can exit non-zero.
// Every other problem is recovered into warnings.
func (a *Analyzer) Analyze(ctx context.Context, req Request) (*types.Report, error) {
	start := time.Now()

	content, err := os.ReadFile(req.Path)
	if err != nil {
		a.log.Error("cannot read file", "path", req.Path, "error", err)
		report := &types.Report{
			FilePath: req.Path,
			Format:   document.FormatUnknown.String(),
			Warnings: []types.Warning{{
				Message:  fmt.Sprintf("cannot read %s: %v", req.Path, err),
				Severity: types.SeverityError,
				Source:   types.SourceParseError,
			}},
			Duration: time.Since(start),
		}
		return report, fmt.Errorf("reading %s: %w", req.Path, err)
	}

	report := a.analyze(ctx, content, req, true)
	report.Duration = time.Since(start)
	return report, nil
}

// AnalyzeContent runs the pipeline on in-memory content. The request's
// Path is used only as a display name and for format detection; the
// external linter is skipped because there is no file for it to read.
func (a *Analyzer) AnalyzeContent(ctx context.Context, content []byte, req Request) *types.Report {
	start := time.Now()
	report := a.analyze(ctx, content, req, false)
	report.Duration = time.Since(start)
	return report
}

func (a *Analyzer) analyze(ctx context.Context, content []byte, req Request, onDisk bool) *types.Report {
	report := &types.Report{
		FilePath:    req.Path,
		RulesLoaded: a.registry.Len(),
	}

	format := req.Format
	if format == document.FormatAuto {
		format = document.Detect(req.Path)
	}
	report.Format = format.String()

	if !utf8.Valid(content) {
		a.log.Error("content is not valid UTF-8", "path", req.Path)
		report.Warnings = append(report.Warnings, types.Warning{
			Message:  fmt.Sprintf("cannot decode %s: content is not valid UTF-8", req.Path),
			Severity: types.SeverityError,
			Source:   types.SourceParseError,
		})
		return report
	}

	lines := strings.Split(string(content), "\n")

	// Comment scanning runs unconditionally, whatever the format.
	report.Warnings = append(report.Warnings, comments.Scan(lines)...)

	parsed := false
	switch format {
	case document.FormatYAML, document.FormatJSON:
		doc, err := document.Parse(content, format)
		if err != nil {
			report.Warnings = append(report.Warnings, parseWarning(format, err))
		} else {
			parsed = true
			report.Warnings = append(report.Warnings, a.registry.Evaluate(doc)...)
		}
	default:
		a.log.Warn("could not determine file type, running comment analysis only", "path", req.Path)
	}

	if parsed && req.ExternalLint && a.linter != nil {
		if onDisk {
			report.Warnings = append(report.Warnings, a.linter.Lint(ctx, req.Path, format)...)
		} else {
			a.log.Debug("skipping external linter for in-memory content", "path", req.Path)
		}
	}

	if req.FindSecrets {
		report.Warnings = append(report.Warnings, secrets.Scan(lines)...)
	}

	return report
}

func parseWarning(format document.Format, err error) types.Warning {
	w := types.Warning{
		Message:  fmt.Sprintf("error parsing %s: %v", strings.ToUpper(format.String()), err),
		Severity: types.SeverityError,
		Source:   types.SourceParseError,
	}
	if pe, ok := err.(*document.ParseError); ok {
		w.Line = pe.Line
	}
	return w
}
