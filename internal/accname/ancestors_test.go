package accname

import (
	"testing"

	"github.com/agentic-research/a11yname/internal/markup"
	"github.com/stretchr/testify/assert"
)

func TestIsWrappedInLabel(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want bool
	}{
		{"native label", `<label>Name <Input /></label>`, true},
		{"component label", `<Label>Name <div><Input /></div></Label>`, true},
		{"no label", `<div><Input /></div>`, false},
		{"sibling label", `<div><Label>Name</Label><Input /></div>`, false},
		{"label in attribute", `<Field label={<Label><Input /></Label>} />`, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, ctx := contextOf(t, "const x = "+tc.src+";", "Input", 0)
			assert.Equal(t, tc.want, IsWrappedInLabel(ctx))
		})
	}
}

func TestIsLabelTag(t *testing.T) {
	assert.True(t, IsLabelTag("label"))
	assert.True(t, IsLabelTag("Label"))
	assert.True(t, IsLabelTag("lABEL"), "native tags match in any case")
	assert.False(t, IsLabelTag("LABEL"), "components match exactly")
	assert.False(t, IsLabelTag("LaBeL"))
	assert.False(t, IsLabelTag("Labels"))
	assert.False(t, IsLabelTag("InfoLabel"))
	assert.False(t, IsLabelTag(""))
}

func TestHasFieldAncestor(t *testing.T) {
	_, ctx := contextOf(t, `const x = <Field label="L"><div><Checkbox /></div></Field>;`, "Checkbox", 0)
	assert.True(t, HasFieldAncestor(ctx))

	_, ctx = contextOf(t, `const x = <field><Checkbox /></field>;`, "Checkbox", 0)
	assert.False(t, HasFieldAncestor(ctx), "component names are exact-case")

	_, ctx = contextOf(t, `const x = <Field label="L">{show && <Checkbox />}</Field>;`, "Checkbox", 0)
	assert.True(t, HasFieldAncestor(ctx))
}

func TestHasTooltipAncestor(t *testing.T) {
	_, ctx := contextOf(t, `const x = <Tooltip content="Bold" relationship="label"><Button icon={<BoldIcon />} /></Tooltip>;`, "Button", 0)
	assert.True(t, HasTooltipAncestor(ctx))

	_, ctx = contextOf(t, `const x = <Tooltip content="Bold" relationship="description"><Button /></Tooltip>;`, "Button", 0)
	assert.True(t, HasTooltipAncestor(ctx), "presence of the Tooltip is enough")

	_, ctx = contextOf(t, `const x = <Button />;`, "Button", 0)
	assert.False(t, HasTooltipAncestor(ctx))

	_, ctx = contextOf(t, `const x = <Tooltip content={<Button />} relationship="label"><span /></Tooltip>;`, "Button", 0)
	assert.False(t, HasTooltipAncestor(ctx), "tooltip content is not labelled by its own Tooltip")
}

func TestContext_AttributeHostIsNotAncestor(t *testing.T) {
	f := parseFile(t, `const x = <Field><Tooltip content={<div><Button /></div>} /></Field>;`)
	button := find(t, f, "Button", 0)

	var walked Context
	Walk(f, func(el *markup.Element, ctx Context) bool {
		if el == button {
			walked = ctx
		}
		return true
	})

	collect := func(ctx Context) []string {
		var tags []string
		for a := range ctx.Ancestors() {
			tags = append(tags, a.Tag)
		}
		return tags
	}
	assert.Equal(t, []string{"div", "Field"}, collect(walked))
	assert.Equal(t, collect(walked), collect(NewContext(f).At(button)))
}

func TestHasSameKindAncestor(t *testing.T) {
	src := `const x = <Tree aria-label="Files"><Tree><TreeItem /></Tree></Tree>;`
	_, outer := contextOf(t, src, "Tree", 0)
	_, inner := contextOf(t, src, "Tree", 1)
	assert.False(t, HasSameKindAncestor(outer, "Tree"))
	assert.True(t, HasSameKindAncestor(inner, "Tree"))
}

func TestHasAncestorMatching_ShortCircuits(t *testing.T) {
	_, ctx := contextOf(t, `const x = <a><b><c><Input /></c></b></a>;`, "Input", 0)

	var visited []string
	found := HasAncestorMatching(ctx, func(el *markup.Element) bool {
		visited = append(visited, el.Tag)
		return el.Tag == "b"
	})
	assert.True(t, found)
	assert.Equal(t, []string{"c", "b"}, visited, "innermost first, stop at first match")
}

func TestContext_EnterMatchesAt(t *testing.T) {
	f := parseFile(t, `const x = <Field><label><Input /></label></Field>;`)
	input := find(t, f, "Input", 0)

	var walked Context
	Walk(f, func(el *markup.Element, ctx Context) bool {
		if el == input {
			walked = ctx
		}
		return true
	})

	collect := func(ctx Context) []string {
		var tags []string
		for a := range ctx.Ancestors() {
			tags = append(tags, a.Tag)
		}
		return tags
	}
	assert.Equal(t, []string{"label", "Field"}, collect(walked))
	assert.Equal(t, collect(walked), collect(NewContext(f).At(input)))
}

func TestContext_EnterDoesNotMutate(t *testing.T) {
	f := parseFile(t, `const x = <div><span /><p /></div>;`)
	base := NewContext(f)
	div := find(t, f, "div", 0)

	ctx := base.Enter(div)
	_ = ctx.Enter(find(t, f, "span", 0))
	sibling := ctx.Enter(find(t, f, "p", 0))

	var tags []string
	for a := range sibling.Ancestors() {
		tags = append(tags, a.Tag)
	}
	assert.Equal(t, []string{"p", "div"}, tags)

	count := 0
	for range base.Ancestors() {
		count++
	}
	assert.Zero(t, count)
}
