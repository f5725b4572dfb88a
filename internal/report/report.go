// Package report renders lint results for people and for tools.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/agentic-research/a11yname/internal/linter"
	"github.com/charmbracelet/lipgloss"
	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
)

var (
	colorError = lipgloss.Color("#E74C3C")
	colorMuted = lipgloss.Color("#7F8C8D")
	colorOK    = lipgloss.Color("#2CD7C7")
)

var styles = struct {
	Location lipgloss.Style
	Rule     lipgloss.Style
	Problems lipgloss.Style
	Clean    lipgloss.Style
}{
	Location: lipgloss.NewStyle().Bold(true),
	Rule:     lipgloss.NewStyle().Foreground(colorMuted),
	Problems: lipgloss.NewStyle().Bold(true).Foreground(colorError),
	Clean:    lipgloss.NewStyle().Foreground(colorOK),
}

// TextOptions tunes Text.
type TextOptions struct {
	Color bool
}

// Text writes one line per diagnostic followed by a summary line.
func Text(w io.Writer, res *linter.Result, opts TextOptions) error {
	render := func(s lipgloss.Style, text string) string {
		if !opts.Color {
			return text
		}
		return s.Render(text)
	}

	var b strings.Builder
	for _, d := range res.Diagnostics {
		loc := fmt.Sprintf("%s:%d:%d:", d.File, d.Line+1, d.Column+1)
		fmt.Fprintf(&b, "%s %s %s", render(styles.Location, loc), d.Message, render(styles.Rule, "("+d.Rule+")"))
		if d.Fix != nil {
			b.WriteString(render(styles.Rule, " [fixable: "+d.Fix.Description+"]"))
		}
		b.WriteByte('\n')
	}
	if len(res.Diagnostics) == 0 {
		b.WriteString(render(styles.Clean, Summary(res)))
	} else {
		b.WriteString(render(styles.Problems, Summary(res)))
	}
	b.WriteByte('\n')

	_, err := io.WriteString(w, b.String())
	return err
}

// Summary describes res in one sentence.
func Summary(res *linter.Result) string {
	files := plural(len(res.Files), "file")
	if len(res.Diagnostics) == 0 {
		return "No problems found in " + files + "."
	}
	return fmt.Sprintf("%s in %s.", plural(len(res.Diagnostics), "problem"), files)
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// Records converts diagnostics into generic JSON values. Lines and columns
// are 1-based.
func Records(diags []linter.Diagnostic) []any {
	out := make([]any, 0, len(diags))
	for _, d := range diags {
		rec := map[string]any{
			"file":      d.File,
			"line":      int64(d.Line) + 1,
			"column":    int64(d.Column) + 1,
			"rule":      d.Rule,
			"messageId": d.MessageID,
			"message":   d.Message,
		}
		if d.Fix != nil {
			rec["fix"] = map[string]any{
				"description": d.Fix.Description,
				"start":       int64(d.Fix.Start),
				"end":         int64(d.Fix.End),
				"text":        d.Fix.Text,
			}
		}
		out = append(out, rec)
	}
	return out
}

// Query evaluates a JSONPath expression against records, e.g.
// $[?(@.rule == 'image-needs-alt')].
func Query(records []any, expr string) ([]any, error) {
	x, err := jp.ParseString(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid query %q: %w", expr, err)
	}
	return x.Get(records), nil
}

// Document is the JSON form of res.
func Document(res *linter.Result) map[string]any {
	byRule := make(map[string]any)
	for _, d := range res.Diagnostics {
		n, _ := byRule[d.Rule].(int64)
		byRule[d.Rule] = n + 1
	}
	return map[string]any{
		"files":       int64(len(res.Files)),
		"problems":    int64(len(res.Diagnostics)),
		"rules":       byRule,
		"diagnostics": Records(res.Diagnostics),
	}
}

// JSON writes res as an indented JSON document. With a query, only the
// matching diagnostic records are written, as an array.
func JSON(w io.Writer, res *linter.Result, query string) error {
	var v any = Document(res)
	if query != "" {
		matched, err := Query(Records(res.Diagnostics), query)
		if err != nil {
			return err
		}
		if matched == nil {
			matched = []any{}
		}
		v = matched
	}
	_, err := io.WriteString(w, oj.JSON(v, &oj.Options{Indent: 2, Sort: true})+"\n")
	return err
}
