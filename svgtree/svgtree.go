// Provides an in-memory representation of SVG documents,
// preserving namespace prefixes, comments and processing instructions
// so that documents can be transformed and written back as text.
package svgtree

import (
	"encoding/xml"
	"strings"
)

// NodeKind identifies the type of a Node.
type NodeKind uint8

const (
	DocumentNode NodeKind = iota
	ElementNode
	TextNode
	CommentNode
	ProcInstNode
	DirectiveNode
)

func (k NodeKind) String() string {
	switch k {
	case DocumentNode:
		return "Document"
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	case CommentNode:
		return "Comment"
	case ProcInstNode:
		return "ProcInst"
	case DirectiveNode:
		return "Directive"
	default:
		return "<unknown NodeKind>"
	}
}

// Node is one node of a parsed document.
//
// For elements and attributes, Name.Space holds the raw prefix
// as written in the source (for instance "xlink"), not a resolved namespace URI.
// Data holds the content of text, comment and directive nodes,
// and the instruction of processing instructions (whose target is Name.Local).
type Node struct {
	Kind     NodeKind
	Name     xml.Name
	Attrs    []xml.Attr
	Data     string
	Children []*Node
	Parent   *Node
}

// NewDocument returns an empty document node.
func NewDocument() *Node { return &Node{Kind: DocumentNode} }

// NewElement returns a detached element with the given local name and attributes.
func NewElement(local string, attrs ...xml.Attr) *Node {
	return &Node{Kind: ElementNode, Name: xml.Name{Local: local}, Attrs: attrs}
}

// IsElement is a shortcut for n.Kind == ElementNode
func (n *Node) IsElement() bool { return n.Kind == ElementNode }

// AppendChild attaches c as the last child of n.
func (n *Node) AppendChild(c *Node) {
	c.Parent = n
	n.Children = append(n.Children, c)
}

// RootElement returns the first element child of n, or nil.
// For a document node, this is the root element.
func (n *Node) RootElement() *Node {
	for _, c := range n.Children {
		if c.IsElement() {
			return c
		}
	}
	return nil
}

// Elements returns the element children of n.
func (n *Node) Elements() []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.IsElement() {
			out = append(out, c)
		}
	}
	return out
}

// Attr looks up an unprefixed attribute.
func (n *Node) Attr(local string) (string, bool) {
	for _, attr := range n.Attrs {
		if attr.Name.Space == "" && attr.Name.Local == local {
			return attr.Value, true
		}
	}
	return "", false
}

// SetAttr sets the unprefixed attribute `local`, adding it if needed.
func (n *Node) SetAttr(local, value string) {
	for i, attr := range n.Attrs {
		if attr.Name.Space == "" && attr.Name.Local == local {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, xml.Attr{Name: xml.Name{Local: local}, Value: value})
}

// RemoveAttr deletes the unprefixed attribute `local`, and reports
// if it was present.
func (n *Node) RemoveAttr(local string) bool {
	for i, attr := range n.Attrs {
		if attr.Name.Space == "" && attr.Name.Local == local {
			n.Attrs = append(n.Attrs[:i], n.Attrs[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveChildren drops the direct children for which `remove` returns true,
// and returns how many were removed.
func (n *Node) RemoveChildren(remove func(*Node) bool) int {
	kept := n.Children[:0]
	removed := 0
	for _, c := range n.Children {
		if remove(c) {
			c.Parent = nil
			removed++
			continue
		}
		kept = append(kept, c)
	}
	for i := len(kept); i < len(n.Children); i++ {
		n.Children[i] = nil
	}
	n.Children = kept
	return removed
}

// Text returns the concatenated text content below n.
func (n *Node) Text() string {
	var b strings.Builder
	var rec func(*Node)
	rec = func(m *Node) {
		if m.Kind == TextNode {
			b.WriteString(m.Data)
		}
		for _, c := range m.Children {
			rec(c)
		}
	}
	rec(n)
	return b.String()
}

// String serializes n without indentation.
func (n *Node) String() string {
	var b strings.Builder
	_ = Serialize(&b, n, SerializeOptions{})
	return b.String()
}

// Walk visits every element below `n` in document order (pre-order),
// starting with `n` itself when it is an element.
// The children of an element are read after `fn` returns, so that `fn`
// may remove some of them before they are visited.
// The first error returned by `fn` stops the walk.
func Walk(n *Node, fn func(*Node) error) error {
	if n.IsElement() {
		if err := fn(n); err != nil {
			return err
		}
	}
	for i := 0; i < len(n.Children); i++ {
		c := n.Children[i]
		if c.Kind != ElementNode {
			continue
		}
		if err := Walk(c, fn); err != nil {
			return err
		}
	}
	return nil
}
