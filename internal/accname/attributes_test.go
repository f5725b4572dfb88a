package accname

import (
	"testing"

	"github.com/agentic-research/a11yname/internal/markup"
	"github.com/stretchr/testify/assert"
)

func TestHasAttribute(t *testing.T) {
	attrs := []*markup.Attribute{named("aria-label", str(""))}
	assert.True(t, HasAttribute(attrs, "aria-label"))
	assert.False(t, HasAttribute(attrs, "Aria-Label"), "names are case-sensitive")
	assert.False(t, HasAttribute(attrs, "title"))
	assert.False(t, HasAttribute(nil, "title"))

	withSpread := append(attrs, &markup.Attribute{Spread: true})
	assert.True(t, HasAttribute(withSpread, "title"), "a spread may carry any attribute")
}

func TestHasNonEmptyAttribute(t *testing.T) {
	cases := []struct {
		name  string
		value *markup.Value
		want  bool
	}{
		{"text", str("Jane Doe"), true},
		{"empty", str(""), false},
		{"whitespace", str("  \t"), false},
		{"dynamic", &markup.Value{Kind: markup.KindDynamic, Expr: "computedAlt"}, true},
		{"element", &markup.Value{Kind: markup.KindElement}, true},
		{"true", &markup.Value{Kind: markup.KindBool, Str: "true"}, true},
		{"false", &markup.Value{Kind: markup.KindBool, Str: "false"}, false},
		{"null", &markup.Value{Kind: markup.KindNull}, false},
		{"shorthand", nil, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			attrs := []*markup.Attribute{named("alt", tc.value)}
			assert.Equal(t, tc.want, HasNonEmptyAttribute(attrs, "alt"))
		})
	}
}

func TestHasNonEmptyAttribute_Missing(t *testing.T) {
	assert.False(t, HasNonEmptyAttribute(nil, "alt"))
	assert.False(t, HasNonEmptyAttribute([]*markup.Attribute{named("title", str("x"))}, "alt"))
	assert.True(t, HasNonEmptyAttribute([]*markup.Attribute{{Spread: true}}, "alt"))
}

func TestHasNonEmptyAttribute_ExplicitBeatsSpread(t *testing.T) {
	attrs := []*markup.Attribute{{Spread: true}, named("alt", str(""))}
	assert.False(t, HasNonEmptyAttribute(attrs, "alt"), "the empty value is written last")

	attrs = []*markup.Attribute{named("alt", str("")), {Spread: true}}
	assert.True(t, HasNonEmptyAttribute(attrs, "alt"), "a later spread may override the empty value")
}

func TestEvaluate_SpreadAfterEmptyLabel(t *testing.T) {
	p := Policy{Component: "Button", MessageID: "m", LabelProps: []string{"aria-label"}}

	el, ctx := contextOf(t, `const x = <Button aria-label="" {...rest} />;`, "Button", 0)
	assert.Equal(t, Accepted, Evaluate(el, p, ctx, nil).Outcome)

	el, ctx = contextOf(t, `const x = <Button {...rest} aria-label="" />;`, "Button", 0)
	assert.Equal(t, Rejected, Evaluate(el, p, ctx, nil).Outcome)
}

func TestLookup_LastWins(t *testing.T) {
	attrs := []*markup.Attribute{named("id", str("a")), {Spread: true}, named("id", str("b"))}
	a, ok := Lookup(attrs, "id")
	assert.True(t, ok)
	assert.Equal(t, "b", a.Value.Str)

	_, ok = Lookup([]*markup.Attribute{{Spread: true}}, "id")
	assert.False(t, ok, "spreads never satisfy a value lookup")
}

func TestStaticValue(t *testing.T) {
	attrs := []*markup.Attribute{
		named("id", str("x")),
		named("dyn", &markup.Value{Kind: markup.KindDynamic, Expr: "y"}),
	}
	v, ok := StaticValue(attrs, "id")
	assert.True(t, ok)
	assert.Equal(t, "x", v)

	_, ok = StaticValue(attrs, "dyn")
	assert.False(t, ok)
	_, ok = StaticValue(attrs, "missing")
	assert.False(t, ok)
}

func TestHasNonEmptyAttribute_Parsed(t *testing.T) {
	f := parseFile(t, "const x = <>\n"+
		"<Image alt=\"Sunset\" />\n"+
		"<Image alt=\"\" />\n"+
		"<Image alt={computedAlt} />\n"+
		"<Image alt={`${first} ${last}`} />\n"+
		"<Image alt={\"\" + \"\"} />\n"+
		"</>;")
	want := []bool{true, false, true, true, false}
	for i, w := range want {
		el := find(t, f, "Image", i)
		assert.Equal(t, w, HasNonEmptyAttribute(el.Attrs, "alt"), "Image #%d", i)
	}
}
