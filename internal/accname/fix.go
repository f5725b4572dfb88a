package accname

import (
	"github.com/agentic-research/a11yname/internal/markup"
)

// Fix is a single text replacement that would make a rejected element pass.
type Fix struct {
	Description string
	File        string
	Start       uint32
	End         uint32
	Text        string
}

// SuggestFix returns a fix for an element rejected under p, or nil.
// A fix is only offered when applying it makes an enabled strategy
// succeed; the cases are attribute names React does not recognize:
// for= on a label and the aria-labeledby misspelling.
func SuggestFix(el *markup.Element, p Policy, ctx Context) *Fix {
	if el.Tag != p.Component || len(p.RequiredProps) > 0 {
		return nil
	}

	if p.AllowHTMLFor {
		if key, ok := attrKey(el.Attrs, attrID); ok {
			if label, ok := ctx.index.misspelledLabelForKey(key); ok && HasTextContent(label) {
				if _, has := Lookup(label.Attrs, attrHTMLFor); !has {
					a, _ := Lookup(label.Attrs, "for")
					return rename(ctx, a, attrHTMLFor)
				}
			}
		}
	}

	if p.AllowLabelledBy {
		const misspelled = "aria-labeledby"
		if a, ok := Lookup(el.Attrs, misspelled); ok {
			if _, has := Lookup(el.Attrs, attrLabelledBy); !has && resolveReference(el, ctx, misspelled) {
				return rename(ctx, a, attrLabelledBy)
			}
		}
	}
	return nil
}

func rename(ctx Context, a *markup.Attribute, name string) *Fix {
	f := &Fix{
		Description: "rename " + a.Name + " to " + name,
		Start:       a.NameSpan.Start,
		End:         a.NameSpan.End,
		Text:        name,
	}
	if ctx.file != nil {
		f.File = ctx.file.Path
	}
	return f
}
