package accname

import (
	"strings"

	"github.com/agentic-research/a11yname/internal/markup"
)

const (
	attrLabelledBy  = "aria-labelledby"
	attrDescribedBy = "aria-describedby"
	attrID          = "id"
	attrHTMLFor     = "htmlFor"
)

// ResolveLabelledBy reports whether aria-labelledby points at an element
// with text content anywhere in the file.
func ResolveLabelledBy(el *markup.Element, ctx Context) bool {
	return resolveReference(el, ctx, attrLabelledBy)
}

// ResolveDescribedBy is ResolveLabelledBy for aria-describedby.
func ResolveDescribedBy(el *markup.Element, ctx Context) bool {
	return resolveReference(el, ctx, attrDescribedBy)
}

func resolveReference(el *markup.Element, ctx Context, attr string) bool {
	a, ok := Lookup(el.Attrs, attr)
	if !ok || a.Value == nil {
		return false
	}
	switch a.Value.Kind {
	case markup.KindString:
		return LabelledByValueHasContent(strings.Fields(a.Value.Str), ctx)
	case markup.KindDynamic:
		// aria-labelledby={labelId} pairs with id={labelId}; a reference we
		// cannot see is trusted like any other dynamic value.
		if cand, ok := ctx.index.elementByKey("e:" + a.Value.Expr); ok {
			return HasTextContent(cand)
		}
		return true
	default:
		return false
	}
}

// LabelledByValueHasContent reports whether any of ids names an element
// with text content. Only the first element carrying an id is considered.
func LabelledByValueHasContent(ids []string, ctx Context) bool {
	for _, id := range ids {
		if cand, ok := ctx.index.ElementByID(id); ok && HasTextContent(cand) {
			return true
		}
	}
	return false
}

// ResolveHTMLFor reports whether a label elsewhere in the file targets the
// element's id through htmlFor and has text content.
func ResolveHTMLFor(el *markup.Element, ctx Context) bool {
	key, ok := attrKey(el.Attrs, attrID)
	if !ok {
		return false
	}
	label, ok := ctx.index.labelForKey(key)
	return ok && HasTextContent(label)
}
