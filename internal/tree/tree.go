// Package tree builds a generic element tree from an XML token stream.
//
// The tree keeps what the metadata mapper needs and nothing more: element
// names with their resolved namespace URI, attributes in document order,
// non-blank text runs, and children in document order. Comments, processing
// instructions and directives are dropped.
package tree

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"weak"

	"github.com/vvka-141/ardmeta/pkg/ardmeta"
)

// Kind distinguishes element nodes from text nodes.
type Kind int

const (
	// ElementNode is a markup element.
	ElementNode Kind = iota
	// TextNode is a run of character data.
	TextNode
)

// Attr is a single attribute with its resolved namespace.
type Attr struct {
	Space string
	Name  string
	Value string
}

// Node is one element or text node.
type Node struct {
	Kind     Kind
	Name     string // local name, empty for text nodes
	Space    string // namespace URI, inherited per XML namespace rules
	Attrs    []Attr
	Text     string // text nodes only
	Children []*Node
	Line     int

	parent weak.Pointer[Node]
}

// Parent returns the enclosing element, or nil for the root.
// The link is for traversal only; the tree is owned from the root down.
func (n *Node) Parent() *Node {
	return n.parent.Value()
}

// Attr returns the value of the unqualified attribute name.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Space == "" && a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Elements returns the element children of n in document order.
func (n *Node) Elements() []*Node {
	out := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		if c.Kind == ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// Content concatenates the direct text children of n.
// ok is false when n has no text child at all.
func (n *Node) Content() (text string, ok bool) {
	var buf bytes.Buffer
	for _, c := range n.Children {
		if c.Kind == TextNode {
			buf.WriteString(c.Text)
			ok = true
		}
	}
	return buf.String(), ok
}

// TokenSource yields XML tokens. *xml.Decoder satisfies it.
type TokenSource interface {
	Token() (xml.Token, error)
}

// ErrTooDeep is wrapped by the BuildError returned when elements nest
// deeper than the configured limit.
var ErrTooDeep = errors.New("element nesting too deep")

// Option configures a build.
type Option func(*builder)

// WithMaxDepth limits element nesting. Zero or negative means no limit.
func WithMaxDepth(depth int) Option {
	return func(b *builder) { b.maxDepth = depth }
}

// Build decodes r and returns the root element.
func Build(r io.Reader, opts ...Option) (*Node, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = true
	return BuildFrom(dec, opts...)
}

// BuildFrom consumes src until the root element closes.
func BuildFrom(src TokenSource, opts ...Option) (*Node, error) {
	b := builder{src: src}
	for _, opt := range opts {
		opt(&b)
	}
	return b.run()
}

type builder struct {
	src      TokenSource
	root     *Node
	open     []*Node
	maxDepth int
}

func (b *builder) line() int {
	if p, ok := b.src.(interface{ InputPos() (int, int) }); ok {
		line, _ := p.InputPos()
		return line
	}
	return 0
}

func (b *builder) run() (*Node, error) {
	for {
		tok, err := b.src.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, b.malformed(err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if err := b.start(t); err != nil {
				return nil, err
			}
		case xml.EndElement:
			if err := b.end(t); err != nil {
				return nil, err
			}
		case xml.CharData:
			b.text(t)
		}
	}

	switch {
	case b.root == nil:
		return nil, &BuildError{Message: "document has no root element"}
	case len(b.open) > 0:
		return nil, &BuildError{
			Element: b.open[len(b.open)-1].Name,
			Line:    b.line(),
			Message: "document ended before the element was closed",
		}
	}
	return b.root, nil
}

func (b *builder) start(t xml.StartElement) error {
	node := &Node{
		Kind:  ElementNode,
		Name:  t.Name.Local,
		Space: t.Name.Space,
		Line:  b.line(),
	}
	if b.maxDepth > 0 && len(b.open) >= b.maxDepth {
		return &BuildError{
			Element: node.Name,
			Line:    node.Line,
			Message: fmt.Sprintf("elements nested deeper than %d levels", b.maxDepth),
			Err:     ErrTooDeep,
		}
	}
	if len(t.Attr) > 0 {
		node.Attrs = make([]Attr, 0, len(t.Attr))
		for _, a := range t.Attr {
			node.Attrs = append(node.Attrs, Attr{Space: a.Name.Space, Name: a.Name.Local, Value: a.Value})
		}
	}

	if len(b.open) == 0 {
		if b.root != nil {
			return &BuildError{Element: t.Name.Local, Line: node.Line, Message: "second root element"}
		}
		b.root = node
	} else {
		parent := b.open[len(b.open)-1]
		node.parent = weak.Make(parent)
		parent.Children = append(parent.Children, node)
	}
	b.open = append(b.open, node)
	return nil
}

func (b *builder) end(t xml.EndElement) error {
	if len(b.open) == 0 {
		return &BuildError{Element: t.Name.Local, Line: b.line(), Message: "end tag without open element"}
	}
	cur := b.open[len(b.open)-1]
	if cur.Name != t.Name.Local || cur.Space != t.Name.Space {
		return &BuildError{
			Element: t.Name.Local,
			Line:    b.line(),
			Message: fmt.Sprintf("end tag does not match open element <%s>", cur.Name),
		}
	}
	b.open = b.open[:len(b.open)-1]
	return nil
}

func (b *builder) text(t xml.CharData) {
	if len(b.open) == 0 || len(bytes.TrimSpace(t)) == 0 {
		return
	}
	parent := b.open[len(b.open)-1]
	parent.Children = append(parent.Children, &Node{
		Kind:   TextNode,
		Text:   string(t),
		Line:   b.line(),
		parent: weak.Make(parent),
	})
}

func (b *builder) malformed(err error) error {
	var syntaxErr *xml.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &BuildError{Line: syntaxErr.Line, Message: syntaxErr.Msg, Err: err}
	}
	return &BuildError{Line: b.line(), Message: err.Error(), Err: err}
}

// BuildError reports why the token stream could not form a tree.
// It matches ardmeta.ErrMalformedDocument under errors.Is.
type BuildError struct {
	Element string
	Line    int
	Message string
	Err     error
}

func (e *BuildError) Error() string {
	msg := "malformed document"
	if e.Line > 0 {
		msg += fmt.Sprintf(" (line %d)", e.Line)
	}
	if e.Element != "" {
		msg += fmt.Sprintf(" at <%s>", e.Element)
	}
	return msg + ": " + e.Message
}

func (e *BuildError) Unwrap() []error {
	if e.Err != nil {
		return []error{ardmeta.ErrMalformedDocument, e.Err}
	}
	return []error{ardmeta.ErrMalformedDocument}
}
