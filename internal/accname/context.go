package accname

import (
	"iter"

	"github.com/agentic-research/a11yname/internal/markup"
)

// Context is the per-element view of a file that resolvers read: the file,
// its identifier index and the ancestors of the element under evaluation.
// It is passed by value; Enter never modifies the receiver's stack, so one
// Context can fan out to many children and to parallel files.
type Context struct {
	file  *markup.File
	index *Index
	path  *frame
}

type frame struct {
	el   *markup.Element
	next *frame
}

// NewContext builds the identifier index for file and returns a Context
// positioned at the file root.
func NewContext(file *markup.File) Context {
	return Context{file: file, index: BuildIndex(file)}
}

// File returns the file being analyzed.
func (c Context) File() *markup.File { return c.file }

// Index returns the file's identifier index.
func (c Context) Index() *Index { return c.index }

// Enter returns a Context for the children of el.
func (c Context) Enter(el *markup.Element) Context {
	if el == nil || el.Root() {
		return c
	}
	c.path = &frame{el: el, next: c.path}
	return c
}

// At returns a Context for el built from its parent references, for
// callers that are not walking the tree. The host of JSX held in an
// attribute value is not its ancestor.
func (c Context) At(el *markup.Element) Context {
	var chain []*markup.Element
	for e := el; e.Parent != nil && !e.Parent.Root(); e = e.Parent {
		if !e.InAttribute {
			chain = append(chain, e.Parent)
		}
	}
	c.path = nil
	for i := len(chain) - 1; i >= 0; i-- {
		c.path = &frame{el: chain[i], next: c.path}
	}
	return c
}

// Ancestors yields the enclosing elements, innermost first.
func (c Context) Ancestors() iter.Seq[*markup.Element] {
	return func(yield func(*markup.Element) bool) {
		for f := c.path; f != nil; f = f.next {
			if !yield(f.el) {
				return
			}
		}
	}
}

// Walk visits every element of file in pre-order with its Context,
// including JSX held in attribute values, which sees the ancestors of its
// host but not the host. Returning false from fn skips the element's
// subtree.
func Walk(file *markup.File, fn func(el *markup.Element, ctx Context) bool) {
	walk(file.Root, NewContext(file), fn)
}

// WalkWith is Walk with a caller-supplied root Context.
func WalkWith(ctx Context, fn func(el *markup.Element, ctx Context) bool) {
	walk(ctx.file.Root, ctx, fn)
}

func walk(el *markup.Element, ctx Context, fn func(*markup.Element, Context) bool) {
	for _, a := range el.Attrs {
		for _, child := range a.Elements {
			if fn(child, ctx) {
				walk(child, ctx, fn)
			}
		}
	}
	inner := ctx.Enter(el)
	for _, n := range el.Children {
		child, ok := n.(*markup.Element)
		if !ok {
			continue
		}
		if fn(child, inner) {
			walk(child, inner, fn)
		}
	}
}
