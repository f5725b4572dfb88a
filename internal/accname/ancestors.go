package accname

import (
	"strings"
	"unicode"

	"github.com/agentic-research/a11yname/internal/markup"
)

const (
	labelTag   = "label"
	labelComp  = "Label"
	fieldTag   = "Field"
	tooltipTag = "Tooltip"
)

// HasAncestorMatching walks from the innermost ancestor up to the file
// root and stops at the first ancestor satisfying pred.
func HasAncestorMatching(ctx Context, pred func(*markup.Element) bool) bool {
	for a := range ctx.Ancestors() {
		if pred(a) {
			return true
		}
	}
	return false
}

// IsLabelTag reports whether tag is label-bearing: the native label, in
// any case, or exactly the Label component. Native tags start lowercase.
func IsLabelTag(tag string) bool {
	if tag == labelComp {
		return true
	}
	return tag != "" && unicode.IsLower(rune(tag[0])) && strings.ToLower(tag) == labelTag
}

// IsWrappedInLabel reports whether the element sits inside a label.
func IsWrappedInLabel(ctx Context) bool {
	return HasAncestorMatching(ctx, func(a *markup.Element) bool {
		return IsLabelTag(a.Tag)
	})
}

// HasFieldAncestor reports whether the element sits inside a Field.
func HasFieldAncestor(ctx Context) bool {
	return HasSameKindAncestor(ctx, fieldTag)
}

// HasTooltipAncestor reports whether the element sits inside a Tooltip.
// The Tooltip is not checked for a labelling relationship.
func HasTooltipAncestor(ctx Context) bool {
	return HasSameKindAncestor(ctx, tooltipTag)
}

// HasSameKindAncestor reports whether an ancestor has exactly this tag.
func HasSameKindAncestor(ctx Context, tag string) bool {
	return HasAncestorMatching(ctx, func(a *markup.Element) bool {
		return a.Tag == tag
	})
}
