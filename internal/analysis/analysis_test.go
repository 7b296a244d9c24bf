package analysis_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/garagon/yarara/internal/analysis"
	"github.com/garagon/yarara/internal/document"
	"github.com/garagon/yarara/internal/extlint"
	"github.com/garagon/yarara/internal/types"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// stubRunner replays a canned linter result.
type stubRunner struct {
	result *extlint.Result
	err    error
}

func (s *stubRunner) Run(ctx context.Context, name string, args ...string) (*extlint.Result, error) {
	return s.result, s.err
}

func sources(warnings []types.Warning) []types.Source {
	out := make([]types.Source, len(warnings))
	for i, w := range warnings {
		out[i] = w.Source
	}
	return out
}

func TestAnalyzeCleanYAML(t *testing.T) {
	path := writeFile(t, "app.yaml", "api_version: v2\nname: demo\n")
	a := analysis.New()

	report, err := a.Analyze(context.Background(), analysis.Request{Path: path})
	require.NoError(t, err)
	require.True(t, report.Clean())
	require.Equal(t, "yaml", report.Format)
	require.Equal(t, path, report.FilePath)
	require.Equal(t, 2, report.RulesLoaded)
}

func TestAnalyzeYAMLWithFindings(t *testing.T) {
	path := writeFile(t, "app.yaml", `# TODO revisit defaults
api_version: v1
name: demo
# deprecated block follows
old_setting: 1
`)
	a := analysis.New()

	report, err := a.Analyze(context.Background(), analysis.Request{Path: path})
	require.NoError(t, err)
	require.Len(t, report.Warnings, 3)

	// Comment warnings first, in line order, then the rule warning.
	require.Equal(t, types.SourceCommentScan, report.Warnings[0].Source)
	require.Equal(t, 1, report.Warnings[0].Line)
	require.Equal(t, types.SourceCommentScan, report.Warnings[1].Source)
	require.Equal(t, 4, report.Warnings[1].Line)
	require.Equal(t, types.SourceRuleEngine, report.Warnings[2].Source)
	require.Contains(t, report.Warnings[2].Message, "api_version is v1")
}

func TestAnalyzeJSONDebug(t *testing.T) {
	path := writeFile(t, "settings.json", `{"debug": true, "name": "demo"}`)
	a := analysis.New()

	report, err := a.Analyze(context.Background(), analysis.Request{Path: path})
	require.NoError(t, err)
	require.Equal(t, "json", report.Format)
	require.Len(t, report.Warnings, 1)
	require.Contains(t, report.Warnings[0].Message, "debug mode is enabled")
}

func TestAnalyzeMalformedJSONSkipsRules(t *testing.T) {
	path := writeFile(t, "broken.json", "{\n  \"debug\": true,\n}\n")
	a := analysis.New()

	report, err := a.Analyze(context.Background(), analysis.Request{Path: path})
	require.NoError(t, err)
	require.Len(t, report.Warnings, 1)

	w := report.Warnings[0]
	require.Equal(t, types.SourceParseError, w.Source)
	require.Equal(t, types.SeverityError, w.Severity)
	require.Contains(t, w.Message, "error parsing JSON")
	require.Equal(t, 3, w.Line)
}

func TestAnalyzeMalformedYAMLKeepsCommentWarnings(t *testing.T) {
	path := writeFile(t, "broken.yaml", "# FIXME broken below\nkey: value\n  nested: [\n")
	a := analysis.New()

	report, err := a.Analyze(context.Background(), analysis.Request{Path: path})
	require.NoError(t, err)
	require.Len(t, report.Warnings, 2)
	require.Equal(t, types.SourceCommentScan, report.Warnings[0].Source)
	require.Equal(t, types.SourceParseError, report.Warnings[1].Source)
	require.Contains(t, report.Warnings[1].Message, "error parsing YAML")
}

func TestAnalyzeUnreadableFile(t *testing.T) {
	a := analysis.New()

	report, err := a.Analyze(context.Background(), analysis.Request{Path: "/no/such/file.yaml"})
	require.Error(t, err)
	require.NotNil(t, report)
	require.Len(t, report.Warnings, 1)
	require.Equal(t, types.SeverityError, report.Warnings[0].Severity)
	require.Contains(t, report.Warnings[0].Message, "cannot read /no/such/file.yaml")
}

func TestAnalyzeUnknownExtensionCommentsOnly(t *testing.T) {
	path := writeFile(t, "config.toml", "# TODO migrate to yaml\nkey = 1\n")
	a := analysis.New()

	report, err := a.Analyze(context.Background(), analysis.Request{Path: path})
	require.NoError(t, err)
	require.Equal(t, "unknown", report.Format)
	require.Len(t, report.Warnings, 1)
	require.Equal(t, types.SourceCommentScan, report.Warnings[0].Source)
}

func TestAnalyzeDeclaredFormatOverridesSuffix(t *testing.T) {
	// A .txt file declared as YAML is parsed as YAML.
	path := writeFile(t, "config.txt", "api_version: v1\n")
	a := analysis.New()

	report, err := a.Analyze(context.Background(), analysis.Request{
		Path:   path,
		Format: document.FormatYAML,
	})
	require.NoError(t, err)
	require.Equal(t, "yaml", report.Format)
	require.Len(t, report.Warnings, 1)
	require.Contains(t, report.Warnings[0].Message, "api_version is v1")
}

func TestAnalyzeSecretsOptIn(t *testing.T) {
	content := "password: abcdefghijklmnopqrstuvwxyz\n"
	path := writeFile(t, "creds.yaml", content)
	a := analysis.New()

	report, err := a.Analyze(context.Background(), analysis.Request{Path: path})
	require.NoError(t, err)
	require.True(t, report.Clean())

	report, err = a.Analyze(context.Background(), analysis.Request{Path: path, FindSecrets: true})
	require.NoError(t, err)
	require.Len(t, report.Warnings, 1)
	require.Equal(t, types.SourceSecretScan, report.Warnings[0].Source)
}

func TestAnalyzeInvalidUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bin.yaml")
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0xfe, 0x00, 0x01}, 0644))
	a := analysis.New()

	report, err := a.Analyze(context.Background(), analysis.Request{Path: path})
	require.NoError(t, err)
	require.Len(t, report.Warnings, 1)
	require.Equal(t, types.SourceParseError, report.Warnings[0].Source)
	require.Contains(t, report.Warnings[0].Message, "not valid UTF-8")
}

func TestAnalyzePipelineOrderWithAllSources(t *testing.T) {
	path := writeFile(t, "full.yaml", `# TODO tune
api_version: v1
password: abcdefghijklmnopqrstuvwxyz
`)
	runner := &stubRunner{result: &extlint.Result{
		Stdout:   "full.yaml:1:1: [warning] missing document start\n",
		ExitCode: 1,
	}}
	a := analysis.New(analysis.WithLinter(extlint.New(runner, nil, 0)))

	report, err := a.Analyze(context.Background(), analysis.Request{
		Path:         path,
		FindSecrets:  true,
		ExternalLint: true,
	})
	require.NoError(t, err)
	require.Equal(t, []types.Source{
		types.SourceCommentScan,
		types.SourceRuleEngine,
		types.SourceExternalLinter,
		types.SourceSecretScan,
	}, sources(report.Warnings))
}

func TestAnalyzeExternalLintSkippedOnParseError(t *testing.T) {
	path := writeFile(t, "broken.json", "{\n")
	runner := &stubRunner{result: &extlint.Result{Stderr: "should not appear", ExitCode: 1}}
	a := analysis.New(analysis.WithLinter(extlint.New(runner, nil, 0)))

	report, err := a.Analyze(context.Background(), analysis.Request{
		Path:         path,
		ExternalLint: true,
	})
	require.NoError(t, err)
	require.Equal(t, []types.Source{types.SourceParseError}, sources(report.Warnings))
}

func TestAnalyzeIdempotent(t *testing.T) {
	path := writeFile(t, "app.yaml", "# TODO check\napi_version: v1\n")
	a := analysis.New()
	req := analysis.Request{Path: path, FindSecrets: true}

	first, err := a.Analyze(context.Background(), req)
	require.NoError(t, err)
	second, err := a.Analyze(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, first.Warnings, second.Warnings)
}

func TestAnalyzeContentMatchesOnDiskWarnings(t *testing.T) {
	content := []byte("# TODO compare\napi_version: v1\n")
	path := writeFile(t, "app.yaml", string(content))
	a := analysis.New()

	onDisk, err := a.Analyze(context.Background(), analysis.Request{Path: path})
	require.NoError(t, err)
	inMemory := a.AnalyzeContent(context.Background(), content, analysis.Request{Path: path})
	require.Equal(t, onDisk.Warnings, inMemory.Warnings)
}

func TestAnalyzeContentSkipsExternalLinter(t *testing.T) {
	runner := &stubRunner{result: &extlint.Result{Stdout: "should not appear", ExitCode: 1}}
	a := analysis.New(analysis.WithLinter(extlint.New(runner, nil, 0)))

	report := a.AnalyzeContent(context.Background(), []byte("api_version: v2\n"), analysis.Request{
		Path:         "mem.yaml",
		ExternalLint: true,
	})
	require.True(t, report.Clean())
}
