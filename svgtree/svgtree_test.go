package svgtree

import (
	"encoding/xml"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParsePreservesPrefixes(t *testing.T) {
	doc, err := ParseString(`<?xml version="1.0"?>
<!-- logo -->
<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="10">
  <use xlink:href="#a"/>
  <sodipodi:namedview/>
</svg>`)
	if err != nil {
		t.Fatal(err)
	}

	var kinds []NodeKind
	for _, c := range doc.Children {
		kinds = append(kinds, c.Kind)
	}
	if diff := cmp.Diff([]NodeKind{ProcInstNode, CommentNode, ElementNode}, kinds); diff != "" {
		t.Errorf("top level kinds (-want +got):\n%s", diff)
	}

	root := doc.RootElement()
	if root == nil || root.Name != (xml.Name{Local: "svg"}) {
		t.Fatalf("unexpected root %v", root)
	}
	if w, ok := root.Attr("width"); !ok || w != "10" {
		t.Errorf("expected width 10, got %q", w)
	}

	children := root.Elements()
	if len(children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(children))
	}
	if _, ok := children[0].Attr("href"); ok {
		t.Error("prefixed attribute must not match an unprefixed lookup")
	}
	if got := children[1].Name; got != (xml.Name{Space: "sodipodi", Local: "namedview"}) {
		t.Errorf("unexpected name %v", got)
	}
	if children[1].Parent != root {
		t.Error("missing parent link")
	}
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{
		`<svg><g></svg>`,
		`<svg>`,
		`<svg/><svg/>`,
		`text<svg/>`,
		`<svg></g>`,
	} {
		if _, err := ParseString(input); err == nil {
			t.Errorf("expected error for %q", input)
		}
	}
}

func TestParseWithoutElement(t *testing.T) {
	for _, input := range []string{"", "  \n", "<!-- nothing -->"} {
		doc, err := ParseString(input)
		if err != nil {
			t.Fatalf("unexpected error for %q: %s", input, err)
		}
		if doc.RootElement() != nil {
			t.Errorf("expected no root element for %q", input)
		}
	}
}

func TestWalkOrder(t *testing.T) {
	doc, err := ParseString(`<svg><g><rect/><circle/></g><path/><g><text>t</text></g></svg>`)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	err = Walk(doc, func(n *Node) error {
		names = append(names, n.Name.Local)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"svg", "g", "rect", "circle", "path", "g", "text"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("walk order (-want +got):\n%s", diff)
	}
}

func TestWalkStopsOnError(t *testing.T) {
	doc, err := ParseString(`<svg><a/><b/><c/></svg>`)
	if err != nil {
		t.Fatal(err)
	}
	stop := errors.New("stop")
	visited := 0
	err = Walk(doc, func(n *Node) error {
		visited++
		if n.Name.Local == "b" {
			return stop
		}
		return nil
	})
	if err != stop {
		t.Fatalf("expected stop error, got %v", err)
	}
	if visited != 3 {
		t.Errorf("expected 3 visited elements, got %d", visited)
	}
}

func TestWalkPruning(t *testing.T) {
	doc, err := ParseString(`<svg><title>x</title><g><title>y</title><rect/></g></svg>`)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	_ = Walk(doc, func(n *Node) error {
		names = append(names, n.Name.Local)
		n.RemoveChildren(func(c *Node) bool { return c.IsElement() && c.Name.Local == "title" })
		return nil
	})
	if diff := cmp.Diff([]string{"svg", "g", "rect"}, names); diff != "" {
		t.Errorf("walk order (-want +got):\n%s", diff)
	}
	if got := doc.String(); got != `<svg><g><rect/></g></svg>` {
		t.Errorf("unexpected output %s", got)
	}
}

func TestSerializeCompact(t *testing.T) {
	input := `<!DOCTYPE svg><svg xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 10 10">` +
		`<!-- c --><text x="1">a &amp; b</text><use xlink:href="#i"/></svg>`
	doc, err := ParseString(input)
	if err != nil {
		t.Fatal(err)
	}
	if got := doc.String(); got != input {
		t.Errorf("round trip mismatch:\n got %s\nwant %s", got, input)
	}
}

func TestSerializeIndent(t *testing.T) {
	doc, err := ParseString("<svg>\n<g>   <rect/>\n</g><text> a <tspan>b</tspan></text></svg>")
	if err != nil {
		t.Fatal(err)
	}
	var b strings.Builder
	if err := Serialize(&b, doc, SerializeOptions{Indent: 2}); err != nil {
		t.Fatal(err)
	}
	want := `<svg>
  <g>
    <rect/>
  </g>
  <text> a <tspan>b</tspan></text>
</svg>`
	if diff := cmp.Diff(want, b.String()); diff != "" {
		t.Errorf("indented output (-want +got):\n%s", diff)
	}
}

func TestAttributeHelpers(t *testing.T) {
	el := NewElement("svg", xml.Attr{Name: xml.Name{Local: "width"}, Value: "1"})
	el.SetAttr("width", "2")
	el.SetAttr("height", `3"`)
	if got := el.String(); got != `<svg width="2" height="3&quot;"/>` {
		t.Errorf("unexpected output %s", got)
	}
	if !el.RemoveAttr("width") || el.RemoveAttr("width") {
		t.Error("RemoveAttr should report presence once")
	}
}
