// Package yarara provides a public API for auditing YAML and JSON
// configuration files: stale marker comments, risky values, parse
// errors, optional external linters, and an opt-in credential heuristic.
//
// This is the library entry point. For the CLI tool, see cmd/yarara/.
package yarara

import (
	"context"
	"fmt"
	"strings"

	"github.com/garagon/yarara/internal/analysis"
	"github.com/garagon/yarara/internal/document"
	"github.com/garagon/yarara/internal/extlint"
	"github.com/garagon/yarara/internal/log"
	"github.com/garagon/yarara/internal/semantic"
	"github.com/garagon/yarara/internal/types"
)

// Re-export core types from internal/types so consumers don't need to
// import internal packages.
type (
	Severity = types.Severity
	Source   = types.Source
	Warning  = types.Warning
	Report   = types.Report
	Format   = document.Format
)

const (
	SeverityInfo    = types.SeverityInfo
	SeverityWarning = types.SeverityWarning
	SeverityError   = types.SeverityError
)

const (
	SourceCommentScan    = types.SourceCommentScan
	SourceRuleEngine     = types.SourceRuleEngine
	SourceExternalLinter = types.SourceExternalLinter
	SourceSecretScan     = types.SourceSecretScan
	SourceParseError     = types.SourceParseError
)

const (
	FormatAuto    = document.FormatAuto
	FormatYAML    = document.FormatYAML
	FormatJSON    = document.FormatJSON
	FormatUnknown = document.FormatUnknown
)

// RuleInfo provides summary metadata about a semantic rule.
type RuleInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Format   string `json:"format"`
	Severity string `json:"severity"`
}

// RuleDetail provides full information about a semantic rule.
type RuleDetail struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Format      string `json:"format"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
}

// Analyze audits the configuration file at path. The returned error is
// non-nil only when the file cannot be read; every other problem is
// reported as a warning inside the report.
func Analyze(ctx context.Context, path string, opts ...Option) (*Report, error) {
	cfg := applyOpts(opts)
	return buildAnalyzer(cfg).Analyze(ctx, analysis.Request{
		Path:         path,
		Format:       cfg.format,
		FindSecrets:  cfg.findSecrets,
		ExternalLint: !cfg.noExternalLint,
	})
}

// AnalyzeContent audits inline content without touching the filesystem.
// filename is a hint for format detection (e.g. "config.yaml"); the
// external linters are skipped because they need a file on disk.
func AnalyzeContent(ctx context.Context, content []byte, filename string, opts ...Option) (*Report, error) {
	if filename == "" {
		filename = "config.yaml"
	}
	cfg := applyOpts(opts)
	report := buildAnalyzer(cfg).AnalyzeContent(ctx, content, analysis.Request{
		Path:        filename,
		Format:      cfg.format,
		FindSecrets: cfg.findSecrets,
	})
	return report, nil
}

// ListRules returns the semantic rules that would be applied, across all
// formats.
func ListRules(opts ...Option) []RuleInfo {
	cfg := applyOpts(opts)
	rules := buildRegistry(cfg).All()

	infos := make([]RuleInfo, len(rules))
	for i, r := range rules {
		infos[i] = RuleInfo{
			ID:       r.ID,
			Name:     r.Name,
			Format:   r.Format.String(),
			Severity: r.Severity.String(),
		}
	}
	return infos
}

// ExplainRule returns detailed information about a specific rule.
func ExplainRule(id string, opts ...Option) (*RuleDetail, error) {
	cfg := applyOpts(opts)
	rule, ok := buildRegistry(cfg).Find(strings.TrimSpace(id))
	if !ok {
		return nil, fmt.Errorf("rule %q not found", id)
	}
	return &RuleDetail{
		ID:          rule.ID,
		Name:        rule.Name,
		Format:      rule.Format.String(),
		Severity:    rule.Severity.String(),
		Description: rule.Description,
	}, nil
}

// --- internal helpers ---

func applyOpts(opts []Option) *auditConfig {
	cfg := &auditConfig{}
	for _, o := range opts {
		o(cfg)
	}
	return cfg
}

func buildRegistry(cfg *auditConfig) *semantic.Registry {
	registry := semantic.Builtin()
	registry.Disable(cfg.disabledRules...)
	return registry
}

func buildAnalyzer(cfg *auditConfig) *analysis.Analyzer {
	logger := log.Discard()
	if cfg.logOutput != nil {
		logger = log.New(cfg.logOutput, cfg.logLevel)
	}

	return analysis.New(
		analysis.WithLogger(logger),
		analysis.WithRegistry(buildRegistry(cfg)),
		analysis.WithLinter(extlint.New(cfg.lintRunner, logger, cfg.lintTimeout)),
	)
}
