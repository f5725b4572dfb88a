// Package markup turns JSX/TSX source into an immutable element tree.
//
// The tree keeps only what accessibility checks read: tag names, attributes
// with statically reduced values, text and element children, and parent
// back-references. Tree-sitter nodes do not escape this package.
package markup

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	sitter "github.com/smacker/go-tree-sitter"
	"golang.org/x/net/html"
)

// ErrUnsupportedLanguage is returned by Parse for files that cannot hold JSX.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Parse parses src with the grammar matching path's extension and builds
// the element tree. Syntax errors do not fail the parse: tree-sitter
// recovers, and the error locations are recorded on the File.
func Parse(ctx context.Context, src []byte, path string) (*File, error) {
	_, lang, ok := DetectLanguageFromExt(filepath.Ext(path))
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, path)
	}

	parser := sitter.NewParser()
	parser.SetLanguage(lang)
	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse failed for %s: %w", path, err)
	}
	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("tree-sitter returned nil root for %s", path)
	}

	f := &File{
		Path:   path,
		Source: src,
		Root:   &Element{Ordinal: -1, Span: spanOf(root)},
	}
	b := &builder{src: src, file: f}
	b.collect(root, f.Root, func(el *Element) {
		f.Root.Children = append(f.Root.Children, el)
	})

	if root.HasError() {
		collectErrors(root, &f.SyntaxErrors)
	}
	return f, nil
}

type builder struct {
	src  []byte
	file *File
}

func isJSX(n *sitter.Node) bool {
	switch n.Type() {
	case "jsx_element", "jsx_self_closing_element", "jsx_fragment":
		return true
	}
	return false
}

// collect finds the outermost JSX nodes below n and builds them under parent.
func (b *builder) collect(n *sitter.Node, parent *Element, emit func(*Element)) {
	if n == nil {
		return
	}
	if isJSX(n) {
		emit(b.element(n, parent))
		return
	}
	count := int(n.NamedChildCount())
	for i := 0; i < count; i++ {
		b.collect(n.NamedChild(i), parent, emit)
	}
}

// element builds an Element. The ordinal is taken before attributes and
// children are built so that File.Elements stays in pre-order.
func (b *builder) element(n *sitter.Node, parent *Element) *Element {
	open := n
	if n.Type() == "jsx_element" {
		if o := openingElement(n); o != nil {
			open = o
		}
	}

	el := &Element{
		Parent:  parent,
		Span:    spanOf(open),
		Ordinal: len(b.file.elements),
	}
	b.file.elements = append(b.file.elements, el)

	var name *sitter.Node
	if n.Type() != "jsx_fragment" {
		name = open.ChildByFieldName("name")
	}
	if name == nil {
		// <>...</>
		el.fragment = true
		el.NameEnd = open.StartByte() + 1
	} else {
		el.Tag = name.Content(b.src)
		el.NameEnd = name.EndByte()
		el.fragment = el.Tag == "Fragment" || el.Tag == "React.Fragment"
		b.attributes(open, el)
	}

	if n.Type() != "jsx_self_closing_element" {
		b.children(n, el)
	}
	return el
}

func openingElement(n *sitter.Node) *sitter.Node {
	if o := n.ChildByFieldName("open_tag"); o != nil {
		return o
	}
	count := int(n.NamedChildCount())
	for i := 0; i < count; i++ {
		if c := n.NamedChild(i); c != nil && c.Type() == "jsx_opening_element" {
			return c
		}
	}
	return nil
}

func (b *builder) attributes(open *sitter.Node, el *Element) {
	count := int(open.NamedChildCount())
	for i := 0; i < count; i++ {
		c := open.NamedChild(i)
		if c == nil {
			continue
		}
		switch c.Type() {
		case "jsx_attribute":
			el.Attrs = append(el.Attrs, b.attribute(c, el))
		case "jsx_expression":
			// {...props}
			el.Attrs = append(el.Attrs, &Attribute{Spread: true, Span: spanOf(c)})
		}
	}
}

func (b *builder) attribute(n *sitter.Node, host *Element) *Attribute {
	a := &Attribute{Span: spanOf(n)}
	count := int(n.NamedChildCount())
	if count == 0 {
		return a
	}
	nameNode := n.NamedChild(0)
	a.Name = nameNode.Content(b.src)
	a.NameSpan = spanOf(nameNode)
	if count < 2 {
		return a
	}

	v := n.NamedChild(count - 1)
	collectInto := func(el *Element) {
		el.InAttribute = true
		a.Elements = append(a.Elements, el)
	}
	switch {
	case isJSX(v):
		a.Value = &Value{Kind: KindElement}
		b.collect(v, host, collectInto)
	case v.Type() == "jsx_expression":
		inner := firstExpression(v)
		if inner == nil {
			a.Value = &Value{Kind: KindNull}
			return a
		}
		a.Value = resolveExpression(inner, b.src)
		if a.Value.Kind == KindElement || a.Value.Kind == KindDynamic {
			b.collect(inner, host, collectInto)
		}
	default:
		a.Value = resolveExpression(v, b.src)
	}
	return a
}

func (b *builder) children(n *sitter.Node, el *Element) {
	appendChild := func(child *Element) { el.Children = append(el.Children, child) }
	count := int(n.NamedChildCount())
	for i := 0; i < count; i++ {
		c := n.NamedChild(i)
		if c == nil {
			continue
		}
		switch c.Type() {
		case "jsx_opening_element", "jsx_closing_element":
		case "jsx_text", "html_character_reference":
			// JSX decodes entities in text: &nbsp; is whitespace, not content.
			el.Children = append(el.Children, &Text{Value: html.UnescapeString(c.Content(b.src)), Span: spanOf(c)})
		case "jsx_element", "jsx_self_closing_element", "jsx_fragment":
			appendChild(b.element(c, el))
		case "jsx_expression":
			b.expressionChild(c, el, appendChild)
		}
	}
}

// expressionChild handles {expr} inside an element body.
func (b *builder) expressionChild(c *sitter.Node, el *Element, appendChild func(*Element)) {
	inner := firstExpression(c)
	if inner == nil {
		return
	}
	v := resolveExpression(inner, b.src)
	switch v.Kind {
	case KindString:
		el.Children = append(el.Children, &Text{Value: v.Str, Span: spanOf(c)})
	case KindNull, KindBool:
		// renders nothing
	case KindElement:
		b.collect(inner, el, appendChild)
	default:
		found := false
		b.collect(inner, el, func(child *Element) {
			found = true
			appendChild(child)
		})
		if !found {
			el.Children = append(el.Children, &Text{Value: v.Expr, Dynamic: true, Span: spanOf(c)})
		}
	}
}

func spanOf(n *sitter.Node) Span {
	p := n.StartPoint()
	return Span{
		Start:  n.StartByte(),
		End:    n.EndByte(),
		Line:   p.Row,
		Column: p.Column,
	}
}

// collectErrors gathers ERROR/MISSING nodes without recursing into them.
func collectErrors(node *sitter.Node, errs *[]SyntaxError) {
	if node.IsError() || node.IsMissing() {
		p := node.StartPoint()
		msg := "syntax error"
		if node.IsMissing() {
			msg = fmt.Sprintf("missing %s", node.Type())
		}
		*errs = append(*errs, SyntaxError{Line: p.Row, Column: p.Column, Message: msg})
		return
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.HasError() || child.IsError() || child.IsMissing() {
			collectErrors(child, errs)
		}
	}
}
