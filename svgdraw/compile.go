package svgdraw

import (
	"encoding/xml"
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"strings"

	"github.com/benoitkugler/svgoptim/svgtree"
)

// ErrorMode sets how the compiler
// treats unsupported elements and invalid values.
type ErrorMode uint8

const (
	// IgnoreErrorMode skips unsupported elements and invalid values silently.
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode logs a warning and continues.
	WarnErrorMode
	// StrictErrorMode returns an error.
	StrictErrorMode
)

// Bounds defines a bounding box, such as a viewport
// or a path extent.
type Bounds struct{ X, Y, W, H float64 }

// PathStyle holds the state of the SVG style
type PathStyle struct {
	// nil disables filling or stroking
	FillerColor, LinerColor color.Color

	FillOpacity, LineOpacity float64
	// Opacity is the product of the `opacity` of the element and its ancestors
	Opacity           float64
	LineWidth         float64
	MiterLimit        float64
	LineJoin          JoinMode
	LineCap           CapMode
	UseNonZeroWinding bool

	transform Matrix2D // current transform
}

// DefaultStyle is the initial style: black fill, no stroke,
// nonzero winding, ButtCap line ends and Miter joins.
var DefaultStyle = PathStyle{
	FillerColor:       color.NRGBA{A: 0xff},
	FillOpacity:       1,
	LineOpacity:       1,
	Opacity:           1,
	LineWidth:         1,
	MiterLimit:        4,
	LineJoin:          Miter,
	LineCap:           ButtCap,
	UseNonZeroWinding: true,
	transform:         Identity,
}

// StyledPath binds a style to a path
type StyledPath struct {
	Path  Path
	Style PathStyle
}

// Image is the compiled form of an SVG document.
// See the `Draw` method to use it.
type Image struct {
	ViewBox Bounds
	Paths   []StyledPath

	// Transform is applied to every path, see SetTarget
	Transform Matrix2D

	Width, Height string // top level width and height attributes
}

var errNotSVG = errors.New("root element is not <svg>")

// subtrees which are never painted directly
var skippedElements = map[string]bool{
	"title":          true,
	"desc":           true,
	"metadata":       true,
	"defs":           true,
	"style":          true,
	"script":         true,
	"symbol":         true,
	"clipPath":       true,
	"mask":           true,
	"marker":         true,
	"pattern":        true,
	"linearGradient": true,
	"radialGradient": true,
}

type compiler struct {
	img        *Image
	errorMode  ErrorMode
	styleStack []PathStyle
	path       Path
}

// Compile builds the paths of the given tree, which is either a document
// or its root <svg> element.
// Only a sub-set of SVG is supported, which is enough to preview many documents.
// `mode` determines if unsupported elements and invalid values are ignored,
// logged or returned as errors.
func Compile(doc *svgtree.Node, mode ErrorMode) (*Image, error) {
	root := doc
	if doc.Kind == svgtree.DocumentNode {
		root = doc.RootElement()
	}
	if root == nil || !root.IsElement() || root.Name.Space != "" || root.Name.Local != "svg" {
		return nil, errNotSVG
	}
	c := &compiler{
		img:        &Image{Transform: Identity},
		errorMode:  mode,
		styleStack: []PathStyle{DefaultStyle},
	}
	if err := c.compileElement(root); err != nil {
		return nil, err
	}
	return c.img, nil
}

// handle reports `err` according to the error mode
func (c *compiler) handle(err error) error {
	switch c.errorMode {
	case StrictErrorMode:
		return err
	case WarnErrorMode:
		slog.Warn("svg preview", "error", err)
	}
	return nil
}

func (c *compiler) top() PathStyle { return c.styleStack[len(c.styleStack)-1] }

func (c *compiler) compileElement(el *svgtree.Node) error {
	if el.Name.Space != "" || skippedElements[el.Name.Local] {
		return nil
	}

	if err := c.pushStyle(el.Attrs); err != nil {
		return err
	}
	defer func() { c.styleStack = c.styleStack[:len(c.styleStack)-1] }()

	df, ok := drawFuncs[el.Name.Local]
	if !ok {
		if err := c.handle(fmt.Errorf("cannot process svg element %s", el.Name.Local)); err != nil {
			return err
		}
	} else if err := df(c, el); err != nil {
		if err := c.handle(fmt.Errorf("element %s: %w", el.Name.Local, err)); err != nil {
			return err
		}
	}

	if len(c.path) > 0 {
		pathCopy := append(Path{}, c.path...)
		c.img.Paths = append(c.img.Paths, StyledPath{Path: pathCopy, Style: c.top()})
		c.path = c.path[:0]
	}

	for _, child := range el.Children {
		if child.Kind != svgtree.ElementNode {
			continue
		}
		if err := c.compileElement(child); err != nil {
			return err
		}
	}
	return nil
}

// pushStyle reads the presentation attributes then the `style` attribute
// (which has precedence), and pushes the result on the style stack.
func (c *compiler) pushStyle(attrs []xml.Attr) error {
	var pairs []string
	var style string
	for _, attr := range attrs {
		if attr.Name.Space != "" {
			continue
		}
		if attr.Name.Local == "style" {
			style = attr.Value
			continue
		}
		pairs = append(pairs, attr.Name.Local+":"+attr.Value)
	}
	pairs = append(pairs, strings.Split(style, ";")...)

	curStyle := c.top()
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}
		k = strings.ToLower(strings.TrimSpace(k))
		v = strings.TrimSpace(v)
		if v == "inherit" {
			continue
		}
		if err := c.readStyleAttr(&curStyle, k, v); err != nil {
			if err := c.handle(fmt.Errorf("attribute %s: %w", k, err)); err != nil {
				return err
			}
		}
	}
	c.styleStack = append(c.styleStack, curStyle)
	return nil
}

func (c *compiler) readStyleAttr(curStyle *PathStyle, k, v string) error {
	switch k {
	case "fill":
		col, err := parseSVGColor(v)
		if err != nil {
			return err
		}
		curStyle.FillerColor = col
	case "stroke":
		col, err := parseSVGColor(v)
		if err != nil {
			return err
		}
		curStyle.LinerColor = col
	case "fill-rule":
		switch v {
		case "evenodd":
			curStyle.UseNonZeroWinding = false
		case "nonzero":
			curStyle.UseNonZeroWinding = true
		}
	case "stroke-linecap":
		switch v {
		case "butt":
			curStyle.LineCap = ButtCap
		case "round":
			curStyle.LineCap = RoundCap
		case "square":
			curStyle.LineCap = SquareCap
		}
	case "stroke-linejoin":
		switch v {
		case "miter", "miter-clip":
			curStyle.LineJoin = Miter
		case "round", "arc":
			curStyle.LineJoin = Round
		case "bevel":
			curStyle.LineJoin = Bevel
		}
	case "stroke-miterlimit":
		mLimit, err := parseLength(v)
		if err != nil {
			return err
		}
		curStyle.MiterLimit = mLimit
	case "stroke-width":
		width, err := parseLength(v)
		if err != nil {
			return err
		}
		curStyle.LineWidth = width
	case "opacity":
		op, err := readFraction(v)
		if err != nil {
			return err
		}
		curStyle.Opacity *= op
	case "fill-opacity":
		op, err := readFraction(v)
		if err != nil {
			return err
		}
		curStyle.FillOpacity = op
	case "stroke-opacity":
		op, err := readFraction(v)
		if err != nil {
			return err
		}
		curStyle.LineOpacity = op
	case "transform":
		m, err := parseTransform(c.top().transform, v)
		if err != nil {
			return err
		}
		curStyle.transform = m
	}
	return nil
}

func readTransformAttr(m1 Matrix2D, k string, points []float64) (Matrix2D, error) {
	ln := len(points)
	switch k {
	case "rotate":
		if ln == 1 {
			m1 = m1.Rotate(points[0] * math.Pi / 180)
		} else if ln == 3 {
			m1 = m1.Translate(points[1], points[2]).
				Rotate(points[0]*math.Pi/180).
				Translate(-points[1], -points[2])
		} else {
			return m1, errParamMismatch
		}
	case "translate":
		if ln == 1 {
			m1 = m1.Translate(points[0], 0)
		} else if ln == 2 {
			m1 = m1.Translate(points[0], points[1])
		} else {
			return m1, errParamMismatch
		}
	case "skewx":
		if ln != 1 {
			return m1, errParamMismatch
		}
		m1 = m1.SkewX(points[0] * math.Pi / 180)
	case "skewy":
		if ln != 1 {
			return m1, errParamMismatch
		}
		m1 = m1.SkewY(points[0] * math.Pi / 180)
	case "scale":
		if ln == 1 {
			m1 = m1.Scale(points[0], points[0])
		} else if ln == 2 {
			m1 = m1.Scale(points[0], points[1])
		} else {
			return m1, errParamMismatch
		}
	case "matrix":
		if ln != 6 {
			return m1, errParamMismatch
		}
		m1 = m1.Mult(Matrix2D{
			A: points[0],
			B: points[1],
			C: points[2],
			D: points[3],
			E: points[4],
			F: points[5],
		})
	default:
		return m1, errParamMismatch
	}
	return m1, nil
}

// parseTransform composes the transform list `v` on the right of `m1`
func parseTransform(m1 Matrix2D, v string) (Matrix2D, error) {
	for _, t := range strings.Split(v, ")") {
		t = strings.TrimSpace(t)
		t = strings.TrimLeft(t, ", ")
		if len(t) == 0 {
			continue
		}
		name, args, ok := strings.Cut(t, "(")
		if !ok || len(args) == 0 {
			return m1, errParamMismatch // badly formed transformation
		}
		points, err := parsePoints(args)
		if err != nil {
			return m1, err
		}
		m1, err = readTransformAttr(m1, strings.ToLower(strings.TrimSpace(name)), points)
		if err != nil {
			return m1, err
		}
	}
	return m1, nil
}
