package svgopt

import (
	"strings"

	"github.com/benoitkugler/svgoptim/svgjobs"
	"github.com/benoitkugler/svgoptim/svgtree"
)

// Jobs enables the built-in optimisations, which
// all run before the custom jobs.
type Jobs struct {
	RemoveDoctype     bool `json:"removeDoctype" yaml:"removeDoctype"`
	RemoveXMLProcInst bool `json:"removeXMLProcInst" yaml:"removeXMLProcInst"`
	RemoveComments    bool `json:"removeComments" yaml:"removeComments"`
	RemoveMetadata    bool `json:"removeMetadata" yaml:"removeMetadata"`
	RemoveTitle       bool `json:"removeTitle" yaml:"removeTitle"`
	RemoveDesc        bool `json:"removeDesc" yaml:"removeDesc"`
	RemoveEmptyAttrs  bool `json:"removeEmptyAttrs" yaml:"removeEmptyAttrs"`
	RemoveScripts     bool `json:"removeScripts" yaml:"removeScripts"`
	RemoveDimensions  bool `json:"removeDimensions" yaml:"removeDimensions"`
}

// DefaultJobs is the default preset: every optimisation
// is enabled, except removeScripts and removeDimensions.
func DefaultJobs() Jobs {
	return Jobs{
		RemoveDoctype:     true,
		RemoveXMLProcInst: true,
		RemoveComments:    true,
		RemoveMetadata:    true,
		RemoveTitle:       true,
		RemoveDesc:        true,
		RemoveEmptyAttrs:  true,
	}
}

// list returns the jobs in execution order.
func (js Jobs) list() []svgjobs.Job {
	return []svgjobs.Job{
		documentJob{name: "removeDoctype", enabled: js.RemoveDoctype, remove: isKind(svgtree.DirectiveNode, "DOCTYPE")},
		documentJob{name: "removeXMLProcInst", enabled: js.RemoveXMLProcInst, remove: isXMLProcInst},
		childrenJob{name: "removeComments", enabled: js.RemoveComments, remove: isComment, inDocument: true},
		childrenJob{name: "removeMetadata", enabled: js.RemoveMetadata, remove: isElement("metadata")},
		childrenJob{name: "removeTitle", enabled: js.RemoveTitle, remove: isElement("title")},
		childrenJob{name: "removeDesc", enabled: js.RemoveDesc, remove: isElement("desc")},
		removeEmptyAttrs(js.RemoveEmptyAttrs),
		childrenJob{name: "removeScripts", enabled: js.RemoveScripts, remove: isElement("script")},
		removeDimensions(js.RemoveDimensions),
	}
}

func isKind(kind svgtree.NodeKind, prefix string) func(*svgtree.Node) bool {
	return func(n *svgtree.Node) bool {
		return n.Kind == kind && strings.HasPrefix(n.Data, prefix)
	}
}

func isXMLProcInst(n *svgtree.Node) bool {
	return n.Kind == svgtree.ProcInstNode && n.Name.Local == "xml"
}

// isComment keeps legal comments, starting with '!'
func isComment(n *svgtree.Node) bool {
	return n.Kind == svgtree.CommentNode && !strings.HasPrefix(n.Data, "!")
}

func isElement(local string) func(*svgtree.Node) bool {
	return func(n *svgtree.Node) bool {
		return n.IsElement() && n.Name.Space == "" && n.Name.Local == local
	}
}

func prepare(enabled bool) (svgjobs.PrepareOutcome, error) {
	if enabled {
		return svgjobs.PrepareNone, nil
	}
	return svgjobs.PrepareSkip, nil
}

// documentJob removes nodes found at the top level of the document.
type documentJob struct {
	name    string
	enabled bool
	remove  func(*svgtree.Node) bool
}

func (j documentJob) Name() string { return j.name }

func (j documentJob) Prepare(document *svgtree.Node) (svgjobs.PrepareOutcome, error) {
	if j.enabled && document.Kind == svgtree.DocumentNode {
		document.RemoveChildren(j.remove)
	}
	return prepare(j.enabled)
}

func (documentJob) Element(*svgtree.Node) error { return nil }

// childrenJob removes the matching children of every element,
// and optionally of the document node.
type childrenJob struct {
	name       string
	enabled    bool
	remove     func(*svgtree.Node) bool
	inDocument bool
}

func (j childrenJob) Name() string { return j.name }

func (j childrenJob) Prepare(document *svgtree.Node) (svgjobs.PrepareOutcome, error) {
	if j.enabled && j.inDocument && document.Kind == svgtree.DocumentNode {
		document.RemoveChildren(j.remove)
	}
	return prepare(j.enabled)
}

func (j childrenJob) Element(element *svgtree.Node) error {
	element.RemoveChildren(j.remove)
	return nil
}

// removeEmptyAttrs drops attributes with an empty value,
// except the ones where emptiness is meaningful.
type removeEmptyAttrs bool

func (removeEmptyAttrs) Name() string { return "removeEmptyAttrs" }

func (j removeEmptyAttrs) Prepare(*svgtree.Node) (svgjobs.PrepareOutcome, error) {
	return prepare(bool(j))
}

// conditional processing attributes: an empty value disables the element
var keptEmptyAttrs = map[string]bool{
	"requiredFeatures":   true,
	"requiredExtensions": true,
	"systemLanguage":     true,
}

func (removeEmptyAttrs) Element(element *svgtree.Node) error {
	kept := element.Attrs[:0]
	for _, attr := range element.Attrs {
		if strings.TrimSpace(attr.Value) == "" && attr.Name.Space == "" && !keptEmptyAttrs[attr.Name.Local] {
			continue
		}
		kept = append(kept, attr)
	}
	element.Attrs = kept
	return nil
}

// removeDimensions removes width and height on the root <svg>
// element, when a viewBox is available to replace them.
type removeDimensions bool

func (removeDimensions) Name() string { return "removeDimensions" }

func (j removeDimensions) Prepare(*svgtree.Node) (svgjobs.PrepareOutcome, error) {
	return prepare(bool(j))
}

func (removeDimensions) Element(element *svgtree.Node) error {
	if element.Name.Space != "" || element.Name.Local != "svg" {
		return nil
	}
	if element.Parent != nil && element.Parent.Kind != svgtree.DocumentNode {
		return nil
	}
	if _, ok := element.Attr("viewBox"); !ok {
		return nil
	}
	element.RemoveAttr("width")
	element.RemoveAttr("height")
	return nil
}
