// Package document parses raw configuration content into a generic tree
// (mapping/sequence/scalar) for semantic rule evaluation, and resolves
// file formats from declared values or path suffixes.
package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format identifies the configuration file format of a target.
type Format int

const (
	// FormatAuto means the format should be detected from the path suffix.
	FormatAuto Format = iota
	FormatYAML
	FormatJSON
	FormatUnknown
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	case FormatAuto:
		return "auto"
	default:
		return "unknown"
	}
}

// ParseFormat converts a string (CLI flag or config value) to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatUnknown, fmt.Errorf("unknown file format: %q", s)
	}
}

// Detect infers the format from the path suffix: .yaml/.yml is YAML,
// .json is JSON, anything else is unknown.
func Detect(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	default:
		return FormatUnknown
	}
}

// Document is the parsed tree of one configuration file. Root holds the
// generic decoding of the top-level value: map[string]any for mappings,
// []any for sequences, or a scalar. A Document is produced once per
// analysis run and discarded after rule evaluation.
type Document struct {
	Format Format
	Root   any
}

// TopMapping returns the top-level mapping and true when the document
// root is a mapping; rules that only apply to mappings use this and
// simply do not fire otherwise.
func (d *Document) TopMapping() (map[string]any, bool) {
	m, ok := d.Root.(map[string]any)
	return m, ok
}

// ParseError describes a syntax error in the target file. Line is
// 1-based and 0 when the underlying parser did not report one.
type ParseError struct {
	Format Format
	Line   int
	Msg    string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s syntax error at line %d: %s", e.Format, e.Line, e.Msg)
	}
	return fmt.Sprintf("%s syntax error: %s", e.Format, e.Msg)
}

// Parse decodes content as the given format. The format must already be
// resolved: FormatAuto and FormatUnknown are rejected. Any valid
// document is accepted, including non-mapping top-level scalars and
// sequences. Malformed input returns a *ParseError.
func Parse(content []byte, format Format) (*Document, error) {
	switch format {
	case FormatYAML:
		return parseYAML(content)
	case FormatJSON:
		return parseJSON(content)
	default:
		return nil, fmt.Errorf("cannot parse format %q", format)
	}
}

func parseYAML(content []byte) (*Document, error) {
	var root any
	if err := yaml.Unmarshal(content, &root); err != nil {
		return nil, &ParseError{
			Format: FormatYAML,
			Line:   yamlErrorLine(err),
			Msg:    strings.TrimPrefix(err.Error(), "yaml: "),
		}
	}
	return &Document{Format: FormatYAML, Root: root}, nil
}

func parseJSON(content []byte) (*Document, error) {
	var root any
	if err := json.Unmarshal(content, &root); err != nil {
		return nil, &ParseError{
			Format: FormatJSON,
			Line:   jsonErrorLine(content, err),
			Msg:    err.Error(),
		}
	}
	return &Document{Format: FormatJSON, Root: root}, nil
}

// yaml.v3 embeds positions in its error text ("yaml: line N: ..."); there
// is no structured accessor, so pull the first line number out of the text.
var yamlLineRe = regexp.MustCompile(`line (\d+)`)

func yamlErrorLine(err error) int {
	m := yamlLineRe.FindStringSubmatch(err.Error())
	if m == nil {
		return 0
	}
	var line int
	fmt.Sscanf(m[1], "%d", &line)
	return line
}

func jsonErrorLine(content []byte, err error) int {
	var offset int64
	switch e := err.(type) {
	case *json.SyntaxError:
		offset = e.Offset
	case *json.UnmarshalTypeError:
		offset = e.Offset
	default:
		return 0
	}
	if offset < 1 || offset > int64(len(content)) {
		return 0
	}
	return 1 + bytes.Count(content[:offset], []byte("\n"))
}
