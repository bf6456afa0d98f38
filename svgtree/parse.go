package svgtree

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html/charset"
)

var (
	errMultipleRoots = errors.New("document has more than one root element")
	errTextOutside   = errors.New("unexpected text outside of the root element")
)

func qualified(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	return name.Space + ":" + name.Local
}

// Parse reads a whole document from `stream`.
// Namespace prefixes are kept as written, and the input encoding
// is honored through the XML declaration.
// A document without any element (empty or only made of comments)
// is not an error: its node simply has no element child.
func Parse(stream io.Reader) (*Node, error) {
	doc := NewDocument()
	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel
	decoder.Entity = xml.HTMLEntity

	stack := []*Node{doc}
	seenRoot := false
	for {
		t, err := decoder.RawToken()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		current := stack[len(stack)-1]
		// Inspect the type of the XML token
		switch tok := t.(type) {
		case xml.StartElement:
			if len(stack) == 1 {
				if seenRoot {
					return nil, errMultipleRoots
				}
				seenRoot = true
			}
			el := &Node{Kind: ElementNode, Name: tok.Name, Attrs: append([]xml.Attr(nil), tok.Attr...)}
			current.AppendChild(el)
			stack = append(stack, el)
		case xml.EndElement:
			if len(stack) == 1 || current.Name != tok.Name {
				return nil, fmt.Errorf("line %d: unexpected end element </%s>", lineOf(decoder), qualified(tok.Name))
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 1 {
				if strings.TrimSpace(string(tok)) != "" {
					return nil, errTextOutside
				}
				continue
			}
			current.AppendChild(&Node{Kind: TextNode, Data: string(tok)})
		case xml.Comment:
			current.AppendChild(&Node{Kind: CommentNode, Data: string(tok)})
		case xml.ProcInst:
			current.AppendChild(&Node{Kind: ProcInstNode, Name: xml.Name{Local: tok.Target}, Data: string(tok.Inst)})
		case xml.Directive:
			current.AppendChild(&Node{Kind: DirectiveNode, Data: string(tok)})
		}
	}
	if len(stack) > 1 {
		return nil, fmt.Errorf("unexpected end of document: element <%s> is not closed", qualified(stack[len(stack)-1].Name))
	}
	return doc, nil
}

func lineOf(decoder *xml.Decoder) int {
	line, _ := decoder.InputPos()
	return line
}

// ParseString is a convenience wrapper around Parse.
func ParseString(s string) (*Node, error) {
	return Parse(strings.NewReader(s))
}

// ParseFile reads the document from the named file.
func ParseFile(filename string) (*Node, error) {
	fin, errf := os.Open(filename)
	if errf != nil {
		return nil, errf
	}
	defer fin.Close()
	return Parse(fin)
}
