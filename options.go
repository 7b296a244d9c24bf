package yarara

import (
	"io"
	"time"

	"github.com/garagon/yarara/internal/document"
	"github.com/garagon/yarara/internal/extlint"
	"github.com/garagon/yarara/internal/log"
)

// auditConfig holds the resolved configuration for an audit.
type auditConfig struct {
	format         document.Format
	findSecrets    bool
	noExternalLint bool
	disabledRules  []string
	logOutput      io.Writer
	logLevel       log.Level
	lintTimeout    time.Duration
	lintRunner     extlint.Runner
}

// Option configures an audit operation.
type Option func(*auditConfig)

// WithFormat declares the file format instead of detecting it from the
// path suffix.
func WithFormat(f Format) Option {
	return func(c *auditConfig) {
		c.format = f
	}
}

// WithSecretScan enables the opt-in credential heuristic.
func WithSecretScan() Option {
	return func(c *auditConfig) {
		c.findSecrets = true
	}
}

// WithoutExternalLint disables the external linter adapters.
func WithoutExternalLint() Option {
	return func(c *auditConfig) {
		c.noExternalLint = true
	}
}

// WithDisabledRules excludes specific semantic rule IDs.
func WithDisabledRules(ids ...string) Option {
	return func(c *auditConfig) {
		c.disabledRules = append(c.disabledRules, ids...)
	}
}

// WithDiagnostics directs diagnostic logging to w at the given level
// ("debug", "info", "warn", "error"). Diagnostics are discarded when no
// writer is configured.
func WithDiagnostics(w io.Writer, level string) Option {
	return func(c *auditConfig) {
		c.logOutput = w
		c.logLevel = log.ParseLevel(level)
	}
}

// WithLintTimeout bounds a single external linter invocation.
func WithLintTimeout(d time.Duration) Option {
	return func(c *auditConfig) {
		c.lintTimeout = d
	}
}

// WithLintRunner replaces the subprocess runner used for external
// linters. Intended for tests.
func WithLintRunner(r extlint.Runner) Option {
	return func(c *auditConfig) {
		c.lintRunner = r
	}
}
