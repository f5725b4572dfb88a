package accname

import (
	"sort"

	"github.com/RoaringBitmap/roaring"
	"github.com/agentic-research/a11yname/internal/markup"
)

// Index maps identifiers to the elements that carry them. It is built once
// per file in a single pass; lookups never rescan the tree.
//
// Keys are the static id string, or the expression source for dynamic
// values so that id={inputId} pairs with htmlFor={inputId}. When several
// elements share a key the first in document order is authoritative.
type Index struct {
	elements []*markup.Element
	ids      map[string]*roaring.Bitmap // id key -> element ordinals
	htmlFor  map[string]*roaring.Bitmap // htmlFor key -> label ordinals
	forAttr  map[string]*roaring.Bitmap // for key -> label ordinals (misspelled htmlFor)
}

// DuplicateID is a static id carried by more than one element.
type DuplicateID struct {
	ID       string
	Elements []*markup.Element
}

// BuildIndex indexes every id and label htmlFor in file.
func BuildIndex(file *markup.File) *Index {
	ix := &Index{
		elements: file.Elements(),
		ids:      make(map[string]*roaring.Bitmap),
		htmlFor:  make(map[string]*roaring.Bitmap),
		forAttr:  make(map[string]*roaring.Bitmap),
	}
	for _, el := range ix.elements {
		ord := uint32(el.Ordinal)
		if key, ok := attrKey(el.Attrs, "id"); ok {
			add(ix.ids, key, ord)
		}
		if !IsLabelTag(el.Tag) {
			continue
		}
		if key, ok := attrKey(el.Attrs, "htmlFor"); ok {
			add(ix.htmlFor, key, ord)
		}
		if key, ok := attrKey(el.Attrs, "for"); ok {
			add(ix.forAttr, key, ord)
		}
	}
	return ix
}

func add(m map[string]*roaring.Bitmap, key string, ord uint32) {
	bm, ok := m[key]
	if !ok {
		bm = roaring.New()
		m[key] = bm
	}
	bm.Add(ord)
}

func attrKey(attrs []*markup.Attribute, name string) (string, bool) {
	a, ok := Lookup(attrs, name)
	if !ok {
		return "", false
	}
	return valueKey(a.Value)
}

func valueKey(v *markup.Value) (string, bool) {
	if v == nil {
		return "", false
	}
	switch v.Kind {
	case markup.KindString:
		if v.Str == "" {
			return "", false
		}
		return staticKey(v.Str), true
	case markup.KindDynamic:
		return "e:" + v.Expr, true
	default:
		return "", false
	}
}

func staticKey(id string) string { return "s:" + id }

func (ix *Index) first(m map[string]*roaring.Bitmap, key string) (*markup.Element, bool) {
	bm, ok := m[key]
	if !ok || bm.IsEmpty() {
		return nil, false
	}
	return ix.elements[bm.Minimum()], true
}

// ElementByID returns the first element whose id is the given string.
func (ix *Index) ElementByID(id string) (*markup.Element, bool) {
	return ix.first(ix.ids, staticKey(id))
}

func (ix *Index) elementByKey(key string) (*markup.Element, bool) {
	return ix.first(ix.ids, key)
}

func (ix *Index) labelForKey(key string) (*markup.Element, bool) {
	return ix.first(ix.htmlFor, key)
}

func (ix *Index) misspelledLabelForKey(key string) (*markup.Element, bool) {
	return ix.first(ix.forAttr, key)
}

// Duplicates returns the static ids carried by more than one element,
// ordered by first occurrence.
func (ix *Index) Duplicates() []DuplicateID {
	var dups []DuplicateID
	for key, bm := range ix.ids {
		if bm.GetCardinality() < 2 || key[:2] != "s:" {
			continue
		}
		d := DuplicateID{ID: key[2:]}
		it := bm.Iterator()
		for it.HasNext() {
			d.Elements = append(d.Elements, ix.elements[it.Next()])
		}
		dups = append(dups, d)
	}
	sort.Slice(dups, func(i, j int) bool {
		return dups[i].Elements[0].Ordinal < dups[j].Elements[0].Ordinal
	})
	return dups
}
