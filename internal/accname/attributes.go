package accname

import (
	"strings"

	"github.com/agentic-research/a11yname/internal/markup"
)

// HasAttribute reports whether a named attribute exists. A spread
// attribute may carry anything, so its presence satisfies every query.
func HasAttribute(attrs []*markup.Attribute, name string) bool {
	for _, a := range attrs {
		if a.Spread || a.Name == name {
			return true
		}
	}
	return false
}

// HasNonEmptyAttribute reports whether the attribute is present with a
// value that can name something. Dynamic values are trusted: a label
// computed at runtime must not be flagged. A spread written after the
// last named occurrence may override it, so it satisfies the query too.
func HasNonEmptyAttribute(attrs []*markup.Attribute, name string) bool {
	for i := len(attrs) - 1; i >= 0; i-- {
		a := attrs[i]
		if a.Spread {
			return true
		}
		if a.Name == name {
			return nonEmpty(a.Value)
		}
	}
	return false
}

// Lookup returns the last attribute with the given name; in JSX later
// attributes win. Spreads never match.
func Lookup(attrs []*markup.Attribute, name string) (*markup.Attribute, bool) {
	for i := len(attrs) - 1; i >= 0; i-- {
		if a := attrs[i]; !a.Spread && a.Name == name {
			return a, true
		}
	}
	return nil, false
}

// StaticValue returns the statically reduced string value of an attribute.
func StaticValue(attrs []*markup.Attribute, name string) (string, bool) {
	a, ok := Lookup(attrs, name)
	if !ok || !a.Value.Static() {
		return "", false
	}
	return a.Value.Str, true
}

func nonEmpty(v *markup.Value) bool {
	if v == nil {
		// <X aria-hidden /> means true.
		return true
	}
	switch v.Kind {
	case markup.KindString:
		return strings.TrimSpace(v.Str) != ""
	case markup.KindBool:
		return v.Str == "true"
	case markup.KindDynamic, markup.KindElement:
		return true
	default:
		return false
	}
}

// isTrue reports whether the attribute is set to "true" or true.
func isTrue(attrs []*markup.Attribute, name string) bool {
	a, ok := Lookup(attrs, name)
	if !ok {
		return false
	}
	if a.Value == nil {
		return true
	}
	return (a.Value.Kind == markup.KindString || a.Value.Kind == markup.KindBool) && a.Value.Str == "true"
}
