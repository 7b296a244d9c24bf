package types_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/garagon/yarara/internal/types"
)

func TestSeverityString(t *testing.T) {
	require.Equal(t, "INFO", types.SeverityInfo.String())
	require.Equal(t, "WARNING", types.SeverityWarning.String())
	require.Equal(t, "ERROR", types.SeverityError.String())
}

func TestParseSeverity(t *testing.T) {
	sev, err := types.ParseSeverity("warning")
	require.NoError(t, err)
	require.Equal(t, types.SeverityWarning, sev)

	sev, err = types.ParseSeverity("  ERROR ")
	require.NoError(t, err)
	require.Equal(t, types.SeverityError, sev)

	// "warn" is accepted as an alias.
	sev, err = types.ParseSeverity("warn")
	require.NoError(t, err)
	require.Equal(t, types.SeverityWarning, sev)

	_, err = types.ParseSeverity("fatal")
	require.Error(t, err)
}

func TestSeverityJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(types.SeverityError)
	require.NoError(t, err)
	require.Equal(t, `"ERROR"`, string(data))

	var sev types.Severity
	require.NoError(t, json.Unmarshal(data, &sev))
	require.Equal(t, types.SeverityError, sev)
}

func TestReportClean(t *testing.T) {
	report := &types.Report{}
	require.True(t, report.Clean())

	report.Warnings = append(report.Warnings, types.Warning{
		Message:  "something",
		Severity: types.SeverityInfo,
		Source:   types.SourceCommentScan,
	})
	require.False(t, report.Clean())
}

func TestReportMaxSeverity(t *testing.T) {
	report := &types.Report{}
	_, ok := report.MaxSeverity()
	require.False(t, ok)

	report.Warnings = []types.Warning{
		{Severity: types.SeverityWarning, Source: types.SourceCommentScan},
		{Severity: types.SeverityError, Source: types.SourceParseError},
		{Severity: types.SeverityInfo, Source: types.SourceRuleEngine},
	}
	sev, ok := report.MaxSeverity()
	require.True(t, ok)
	require.Equal(t, types.SeverityError, sev)
}

func TestReportMarshalJSON(t *testing.T) {
	report := types.Report{
		FilePath: "config.yaml",
		Format:   "yaml",
		Warnings: []types.Warning{
			{Message: "m", Line: 3, Severity: types.SeverityWarning, Source: types.SourceCommentScan},
		},
		RulesLoaded: 2,
		Duration:    1500 * time.Millisecond,
	}

	data, err := json.Marshal(report)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, float64(1500), decoded["duration_ms"])
	require.Equal(t, "config.yaml", decoded["file_path"])

	warnings, ok := decoded["warnings"].([]any)
	require.True(t, ok)
	require.Len(t, warnings, 1)
	first := warnings[0].(map[string]any)
	require.Equal(t, "comment-scan", first["source"])
	require.Equal(t, "WARNING", first["severity"])
	require.Equal(t, float64(3), first["line"])
}
