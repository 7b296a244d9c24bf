package output

import (
	"encoding/json"
	"io"

	"github.com/garagon/yarara/internal/types"
)

// SARIFFormatter outputs warnings in SARIF 2.1.0 format for GitHub Code
// Scanning. Each pipeline stage (comment-scan, rule-engine, ...) is
// reported as one SARIF rule.
type SARIFFormatter struct{}

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool       sarifTool      `json:"tool"`
	Results    []sarifResult  `json:"results"`
	Properties map[string]any `json:"properties,omitempty"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	ShortDescription sarifMessage       `json:"shortDescription"`
	DefaultConfig    sarifDefaultConfig `json:"defaultConfiguration"`
}

type sarifDefaultConfig struct {
	Level string `json:"level"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	RuleIndex int             `json:"ruleIndex"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           sarifRegion           `json:"region"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine int `json:"startLine"`
}

func (f *SARIFFormatter) Format(w io.Writer, report *types.Report) error {
	// Collect unique sources in order of first appearance.
	ruleIndex := map[types.Source]int{}
	var rules []sarifRule
	for _, warning := range report.Warnings {
		if _, ok := ruleIndex[warning.Source]; !ok {
			ruleIndex[warning.Source] = len(rules)
			rules = append(rules, sarifRule{
				ID:               string(warning.Source),
				Name:             sourceTitle(warning.Source),
				ShortDescription: sarifMessage{Text: sourceTitle(warning.Source)},
				DefaultConfig:    sarifDefaultConfig{Level: severityToLevel(warning.Severity)},
			})
		}
	}

	var results []sarifResult
	for _, warning := range report.Warnings {
		results = append(results, sarifResult{
			RuleID:    string(warning.Source),
			RuleIndex: ruleIndex[warning.Source],
			Level:     severityToLevel(warning.Severity),
			Message:   sarifMessage{Text: warning.Message},
			Locations: []sarifLocation{
				{
					PhysicalLocation: sarifPhysicalLocation{
						ArtifactLocation: sarifArtifactLocation{URI: report.FilePath},
						Region:           sarifRegion{StartLine: max(warning.Line, 1)},
					},
				},
			},
		})
	}

	log := sarifLog{
		Schema:  "https://docs.oasis-open.org/sarif/sarif/v2.1.0/sarif-schema-2.1.0.json",
		Version: "2.1.0",
		Runs: []sarifRun{
			{
				Tool: sarifTool{
					Driver: sarifDriver{
						Name:           "yarara",
						Version:        ToolVersion,
						InformationURI: "https://github.com/garagon/yarara",
						Rules:          rules,
					},
				},
				Results:    results,
				Properties: map[string]any{"duration_ms": report.Duration.Milliseconds()},
			},
		},
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(log)
}

func severityToLevel(sev types.Severity) string {
	switch sev {
	case types.SeverityError:
		return "error"
	case types.SeverityWarning:
		return "warning"
	case types.SeverityInfo:
		return "note"
	default:
		return "none"
	}
}
