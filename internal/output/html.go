package output

import (
	"bytes"
	"fmt"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/garagon/yarara/internal/types"
)

// HTMLFormatter renders the markdown report to a standalone HTML page.
// The GFM extension is required for the warning tables.
type HTMLFormatter struct{}

func (f *HTMLFormatter) Format(w io.Writer, report *types.Report) error {
	var md bytes.Buffer
	if err := (&MarkdownFormatter{}).Format(&md, report); err != nil {
		return err
	}

	var body bytes.Buffer
	renderer := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := renderer.Convert(md.Bytes(), &body); err != nil {
		return fmt.Errorf("rendering HTML report: %w", err)
	}

	fmt.Fprintf(w, `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Yarara report — %s</title>
<style>
body { font-family: sans-serif; max-width: 60em; margin: 2em auto; padding: 0 1em; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 0.3em 0.6em; text-align: left; }
code { background: #f4f4f4; padding: 0.1em 0.3em; }
</style>
</head>
<body>
`, htmlEscape(report.FilePath))
	if _, err := w.Write(body.Bytes()); err != nil {
		return err
	}
	_, err := io.WriteString(w, "</body>\n</html>\n")
	return err
}

func htmlEscape(s string) string {
	var b bytes.Buffer
	for _, r := range s {
		switch r {
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '&':
			b.WriteString("&amp;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
