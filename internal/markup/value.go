package markup

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// resolveExpression reduces an expression node to a Value. String and
// template literals, '+' concatenation, numbers, booleans and null/undefined
// are static. Anything else is dynamic.
func resolveExpression(n *sitter.Node, src []byte) *Value {
	if n == nil {
		return &Value{Kind: KindNull}
	}
	text := n.Content(src)

	switch n.Type() {
	case "string":
		return &Value{Kind: KindString, Str: unquote(text)}
	case "template_string":
		s, ok := reduceTemplate(n, src)
		if !ok {
			return dynamic(text)
		}
		return &Value{Kind: KindString, Str: s}
	case "number":
		return &Value{Kind: KindString, Str: text}
	case "true", "false":
		return &Value{Kind: KindBool, Str: text}
	case "null", "undefined":
		return &Value{Kind: KindNull}
	case "identifier":
		if text == "undefined" {
			return &Value{Kind: KindNull}
		}
		return dynamic(text)
	case "parenthesized_expression":
		if inner := firstExpression(n); inner != nil {
			return resolveExpression(inner, src)
		}
		return dynamic(text)
	case "binary_expression":
		op := n.ChildByFieldName("operator")
		if op == nil || op.Type() != "+" {
			return dynamic(text)
		}
		left := resolveExpression(n.ChildByFieldName("left"), src)
		right := resolveExpression(n.ChildByFieldName("right"), src)
		if left.Kind != KindString || right.Kind != KindString {
			return dynamic(text)
		}
		// 1 + 2 is arithmetic, not concatenation.
		if isNumberNode(n.ChildByFieldName("left")) && isNumberNode(n.ChildByFieldName("right")) {
			return dynamic(text)
		}
		return &Value{Kind: KindString, Str: left.Str + right.Str}
	case "jsx_element", "jsx_self_closing_element", "jsx_fragment":
		return &Value{Kind: KindElement}
	default:
		return dynamic(text)
	}
}

func dynamic(expr string) *Value {
	return &Value{Kind: KindDynamic, Expr: strings.TrimSpace(expr)}
}

func isNumberNode(n *sitter.Node) bool {
	return n != nil && n.Type() == "number"
}

// reduceTemplate concatenates the literal parts of a template string with
// its substitutions, provided every substitution is itself static.
func reduceTemplate(n *sitter.Node, src []byte) (string, bool) {
	start, end := n.StartByte(), n.EndByte()
	if end-start < 2 {
		return "", false
	}
	var b strings.Builder
	pos := start + 1 // skip opening backtick
	count := int(n.NamedChildCount())
	for i := 0; i < count; i++ {
		child := n.NamedChild(i)
		if child == nil || child.Type() != "template_substitution" {
			continue
		}
		b.Write(src[pos:child.StartByte()])
		v := resolveExpression(firstExpression(child), src)
		if v.Kind != KindString {
			return "", false
		}
		b.WriteString(v.Str)
		pos = child.EndByte()
	}
	b.Write(src[pos : end-1])
	return b.String(), true
}

// firstExpression returns the first named child that is not a comment.
func firstExpression(n *sitter.Node) *sitter.Node {
	count := int(n.NamedChildCount())
	for i := 0; i < count; i++ {
		child := n.NamedChild(i)
		if child != nil && child.Type() != "comment" {
			return child
		}
	}
	return nil
}

func unquote(s string) string {
	if len(s) >= 2 {
		q := s[0]
		if (q == '"' || q == '\'') && s[len(s)-1] == q {
			return s[1 : len(s)-1]
		}
	}
	return s
}
