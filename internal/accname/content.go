package accname

import (
	"iter"
	"strings"

	"github.com/agentic-research/a11yname/internal/markup"
)

// mediaTags are element names that render an image-like child.
var mediaTags = map[string]bool{
	"img":   true,
	"svg":   true,
	"Image": true,
	"Icon":  true,
}

// mediaLabelProps name a media element.
var mediaLabelProps = []string{"alt", "aria-label", "title"}

// Flatten yields every descendant text and element of el in pre-order.
// Fragment wrappers are inlined and not yielded themselves. JSX held in
// attribute values is not content and is skipped.
func Flatten(el *markup.Element) iter.Seq[markup.Node] {
	return func(yield func(markup.Node) bool) {
		flatten(el, yield)
	}
}

func flatten(el *markup.Element, yield func(markup.Node) bool) bool {
	for _, child := range el.Children {
		c, ok := child.(*markup.Element)
		if !ok {
			if !yield(child) {
				return false
			}
			continue
		}
		if !c.Fragment() && !yield(c) {
			return false
		}
		if !flatten(c, yield) {
			return false
		}
	}
	return true
}

// HasTextContent reports whether el contains text that is not just
// whitespace. Dynamic expression children count as text.
func HasTextContent(el *markup.Element) bool {
	for n := range Flatten(el) {
		if t, ok := n.(*markup.Text); ok && hasText(t) {
			return true
		}
	}
	return false
}

// HasDirectText is HasTextContent restricted to el's own children.
func HasDirectText(el *markup.Element) bool {
	for _, n := range el.Children {
		if t, ok := n.(*markup.Text); ok && hasText(t) {
			return true
		}
	}
	return false
}

func hasText(t *markup.Text) bool {
	return t.Dynamic || strings.TrimSpace(t.Value) != ""
}

// HasLabelledChildMedia reports whether el contains an image-like element
// that is not hidden from assistive technology and is itself labelled.
func HasLabelledChildMedia(el *markup.Element) bool {
	for n := range Flatten(el) {
		c, ok := n.(*markup.Element)
		if !ok || !mediaTags[c.Tag] {
			continue
		}
		if isTrue(c.Attrs, "aria-hidden") {
			continue
		}
		for _, prop := range mediaLabelProps {
			if HasNonEmptyAttribute(c.Attrs, prop) {
				return true
			}
		}
	}
	return false
}
