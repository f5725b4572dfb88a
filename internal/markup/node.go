package markup

// Span locates a construct in its source file.
// Line and Column are 0-indexed, like tree-sitter points.
type Span struct {
	Start  uint32
	End    uint32
	Line   uint32
	Column uint32
}

// Node is a child of an Element: either *Element or *Text.
type Node interface {
	Location() Span
	isNode()
}

// Element is a JSX element: its opening tag plus children.
type Element struct {
	Tag      string
	Attrs    []*Attribute
	Children []Node
	// Parent is a back-reference for ancestor walks. The root has no parent.
	Parent *Element
	// InAttribute marks JSX written in an attribute value of Parent
	// (icon={<Icon />}); Parent is then the host, not an enclosing element.
	InAttribute bool
	Span   Span
	// NameEnd is the byte offset right after the tag name.
	NameEnd uint32
	// Ordinal is the pre-order position in File.Elements(), -1 for the root.
	Ordinal int

	fragment bool
}

func (e *Element) Location() Span { return e.Span }
func (e *Element) isNode()        {}

// Fragment reports whether the element only groups children
// (<>...</>, <Fragment>, <React.Fragment>).
func (e *Element) Fragment() bool { return e.fragment }

// Root reports whether e is the synthetic file root.
func (e *Element) Root() bool { return e.Parent == nil && e.Ordinal < 0 }

// Text is literal or expression child content.
type Text struct {
	Value string
	// Dynamic marks an expression child that cannot be reduced statically.
	Dynamic bool
	Span    Span
}

func (t *Text) Location() Span { return t.Span }
func (t *Text) isNode()        {}

// Attribute is a named attribute or a spread ({...props}).
type Attribute struct {
	Name string
	// Value is nil for boolean shorthand (<X disabled />) and for spreads.
	Value    *Value
	Spread   bool
	Span     Span
	NameSpan Span
	// Elements holds JSX written inside the value (icon={<Icon />}).
	Elements []*Element
}

// ValueKind classifies an attribute or expression value.
type ValueKind int

const (
	KindString ValueKind = iota
	KindBool
	KindNull
	KindDynamic
	KindElement
)

func (k ValueKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	case KindDynamic:
		return "dynamic"
	case KindElement:
		return "element"
	default:
		return "unknown"
	}
}

// Value is a resolved attribute value.
type Value struct {
	Kind ValueKind
	// Str is the resolved string for KindString, "true"/"false" for KindBool.
	Str string
	// Expr is the raw expression source for KindDynamic.
	Expr string
}

// Static reports whether the value reduced to a string.
func (v *Value) Static() bool { return v != nil && v.Kind == KindString }

// SyntaxError is a tree-sitter ERROR or MISSING node.
type SyntaxError struct {
	Line    uint32 // 0-indexed
	Column  uint32 // 0-indexed
	Message string
}

// File is the parsed markup of one source file.
type File struct {
	Path         string
	Source       []byte
	Root         *Element
	SyntaxErrors []SyntaxError

	elements []*Element
}

// Elements returns every element in pre-order, excluding the root.
func (f *File) Elements() []*Element { return f.elements }
