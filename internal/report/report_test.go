package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/agentic-research/a11yname/internal/accname"
	"github.com/agentic-research/a11yname/internal/linter"
	"github.com/ohler55/ojg/oj"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *linter.Result {
	return &linter.Result{
		Files: []string{"src/a.tsx", "src/b.jsx"},
		Diagnostics: []linter.Diagnostic{
			{File: "src/a.tsx", Rule: "avatar-needs-name", MessageID: "missingAriaLabel", Message: "Avatar needs a name.", Line: 2, Column: 4},
			{File: "src/b.jsx", Rule: "input-needs-labelling", MessageID: "noUnlabelledInput", Message: "Input needs a label.", Line: 0, Column: 30,
				Fix: &accname.Fix{Description: "rename for to htmlFor", File: "src/b.jsx", Start: 7, End: 10, Text: "htmlFor"}},
			{File: "src/b.jsx", Rule: "avatar-needs-name", MessageID: "missingAriaLabel", Message: "Avatar needs a name.", Line: 4, Column: 0},
		},
	}
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, sample(), TextOptions{}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "src/a.tsx:3:5: Avatar needs a name. (avatar-needs-name)", lines[0])
	assert.Equal(t, "src/b.jsx:1:31: Input needs a label. (input-needs-labelling) [fixable: rename for to htmlFor]", lines[1])
	assert.Equal(t, "3 problems in 2 files.", lines[3])
}

func TestText_Color(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, sample(), TextOptions{Color: true}))
	assert.Contains(t, buf.String(), "Avatar needs a name.")
	assert.Contains(t, buf.String(), "problems in 2 files.")
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "No problems found in 1 file.", Summary(&linter.Result{Files: []string{"a.tsx"}}))
	assert.Equal(t, "No problems found in 0 files.", Summary(&linter.Result{}))

	one := &linter.Result{Files: []string{"a.tsx"}, Diagnostics: sample().Diagnostics[:1]}
	assert.Equal(t, "1 problem in 1 file.", Summary(one))
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, sample(), ""))

	v, err := oj.ParseString(buf.String())
	require.NoError(t, err)
	doc := v.(map[string]any)
	assert.Equal(t, int64(2), doc["files"])
	assert.Equal(t, int64(3), doc["problems"])
	assert.Equal(t, map[string]any{"avatar-needs-name": int64(2), "input-needs-labelling": int64(1)}, doc["rules"])

	diags := doc["diagnostics"].([]any)
	require.Len(t, diags, 3)
	first := diags[0].(map[string]any)
	assert.Equal(t, int64(3), first["line"])
	assert.Equal(t, int64(5), first["column"])
	assert.NotContains(t, first, "fix")

	fix := diags[1].(map[string]any)["fix"].(map[string]any)
	assert.Equal(t, "htmlFor", fix["text"])
}

func TestJSON_Query(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, sample(), `$[?(@.rule == 'avatar-needs-name')].file`))

	v, err := oj.ParseString(buf.String())
	require.NoError(t, err)
	assert.Equal(t, []any{"src/a.tsx", "src/b.jsx"}, v)

	buf.Reset()
	require.NoError(t, JSON(&buf, sample(), `$[?(@.rule == 'nothing')]`))
	assert.Equal(t, "[]\n", buf.String())

	assert.Error(t, JSON(&buf, sample(), `$[?(`))
}

func TestQuery_Nested(t *testing.T) {
	got, err := Query(Records(sample().Diagnostics), `$[?(@.messageId == 'noUnlabelledInput')].fix.text`)
	require.NoError(t, err)
	assert.Equal(t, []any{"htmlFor"}, got)
}
