package accname

import (
	"context"
	"testing"

	"github.com/agentic-research/a11yname/internal/markup"
	"github.com/stretchr/testify/require"
)

func parseFile(t *testing.T, src string) *markup.File {
	t.Helper()
	f, err := markup.Parse(context.Background(), []byte(src), "test.tsx")
	require.NoError(t, err)
	return f
}

// find returns the n-th element (0-based) with the given tag.
func find(t *testing.T, f *markup.File, tag string, n int) *markup.Element {
	t.Helper()
	for _, el := range f.Elements() {
		if el.Tag != tag {
			continue
		}
		if n == 0 {
			return el
		}
		n--
	}
	t.Fatalf("element <%s> not found", tag)
	return nil
}

// contextOf parses src and returns the n-th element with tag plus its Context.
func contextOf(t *testing.T, src, tag string, n int) (*markup.Element, Context) {
	t.Helper()
	f := parseFile(t, src)
	el := find(t, f, tag, n)
	return el, NewContext(f).At(el)
}

func named(name string, v *markup.Value) *markup.Attribute {
	return &markup.Attribute{Name: name, Value: v}
}

func str(s string) *markup.Value { return &markup.Value{Kind: markup.KindString, Str: s} }
