package svgtree

import (
	"bufio"
	"io"
	"strings"
)

// SerializeOptions controls the output of Serialize.
type SerializeOptions struct {
	// Indent is the number of spaces used for each nesting level.
	// Zero writes the document compactly, with its text content untouched.
	// Otherwise, whitespace-only text is dropped and each element
	// is written on its own line.
	Indent int
}

var (
	attrEscaper = strings.NewReplacer(`&`, "&amp;", `<`, "&lt;", `>`, "&gt;", `"`, "&quot;", "\n", "&#10;", "\t", "&#9;")
	textEscaper = strings.NewReplacer(`&`, "&amp;", `<`, "&lt;", `>`, "&gt;")
)

type printer struct {
	*bufio.Writer
	indent int
}

// Serialize writes `n` and its descendants as XML text to `w`.
func Serialize(w io.Writer, n *Node, opts SerializeOptions) error {
	p := printer{Writer: bufio.NewWriter(w), indent: opts.Indent}
	if n.Kind == DocumentNode {
		first := true
		for _, c := range n.Children {
			if p.skipped(c) {
				continue
			}
			if !first && p.indent > 0 {
				p.WriteByte('\n')
			}
			first = false
			p.node(c, 0)
		}
	} else {
		p.node(n, 0)
	}
	return p.Flush()
}

func (p printer) skipped(n *Node) bool {
	return p.indent > 0 && n.Kind == TextNode && strings.TrimSpace(n.Data) == ""
}

func (p printer) newLine(depth int) {
	if p.indent == 0 {
		return
	}
	p.WriteByte('\n')
	p.WriteString(strings.Repeat(" ", depth*p.indent))
}

// hasText reports if the element holds significant text,
// in which case its content is written inline.
func hasText(n *Node) bool {
	for _, c := range n.Children {
		if c.Kind == TextNode && strings.TrimSpace(c.Data) != "" {
			return true
		}
	}
	return false
}

func (p printer) node(n *Node, depth int) {
	switch n.Kind {
	case ElementNode:
		p.element(n, depth)
	case TextNode:
		textEscaper.WriteString(p, n.Data)
	case CommentNode:
		p.WriteString("<!--")
		p.WriteString(n.Data)
		p.WriteString("-->")
	case ProcInstNode:
		p.WriteString("<?")
		p.WriteString(n.Name.Local)
		if n.Data != "" {
			p.WriteByte(' ')
			p.WriteString(n.Data)
		}
		p.WriteString("?>")
	case DirectiveNode:
		p.WriteString("<!")
		p.WriteString(n.Data)
		p.WriteByte('>')
	case DocumentNode:
		for _, c := range n.Children {
			p.node(c, depth)
		}
	}
}

func (p printer) element(n *Node, depth int) {
	name := qualified(n.Name)
	p.WriteByte('<')
	p.WriteString(name)
	for _, attr := range n.Attrs {
		p.WriteByte(' ')
		p.WriteString(qualified(attr.Name))
		p.WriteString(`="`)
		attrEscaper.WriteString(p, attr.Value)
		p.WriteByte('"')
	}

	var children []*Node
	for _, c := range n.Children {
		if !p.skipped(c) {
			children = append(children, c)
		}
	}
	if len(children) == 0 {
		p.WriteString("/>")
		return
	}
	p.WriteByte('>')

	if p.indent == 0 || hasText(n) {
		compact := p.compact()
		for _, c := range n.Children {
			compact.node(c, depth+1)
		}
	} else {
		for _, c := range children {
			p.newLine(depth + 1)
			p.node(c, depth+1)
		}
		p.newLine(depth)
	}
	p.WriteString("</")
	p.WriteString(name)
	p.WriteByte('>')
}

// compact returns a copy of p writing without indentation,
// used for mixed content where whitespace is significant.
func (p printer) compact() printer {
	return printer{Writer: p.Writer}
}
