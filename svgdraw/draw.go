// Given a parsed SVG document, implements how to
// draw it on screen.
// This requires a driver implementing the actual draw operations,
// such as a rasterizer to output .png images or a pdf writer.
// See for example svgoptim/svgraster or svgoptim/svgpdf .
package svgdraw

import (
	"image/color"

	"golang.org/x/image/math/fixed"
)

// Drawer knows how to do the actual draw operations
// but doesn't need any SVG kwowledge
// In particular, tranformations matrix are already applied to the points
// before sending them to the Drawer.
type Drawer interface {
	// Clear must reset the internal state (used before starting a new path painting)
	Clear()

	// Start starts a new path at the given point.
	Start(a fixed.Point26_6)

	// Line Adds a line for the current point to `b`
	Line(b fixed.Point26_6)

	// QuadBezier adds a quadratic bezier curve to the path
	QuadBezier(b, c fixed.Point26_6)

	// CubeBezier adds a cubic bezier curve to the path
	CubeBezier(b, c, d fixed.Point26_6)

	// Closes the path to the start point if `closeLoop` is true
	Stop(closeLoop bool)

	// SetColor set the color for the current path
	SetColor(color color.Color, opacity float64)

	// Draw fills or strokes the accumulated path using the current settings
	// depending on the filling mode
	Draw()
}

type Filler interface {
	Drawer

	// Decide to use or not the NonZeroWinding rule for the current path
	SetWinding(useNonZeroWinding bool)
}

type Stroker interface {
	Drawer

	// Parametrize the stroking style for the current path
	SetStrokeOptions(options StrokeOptions)
}

type Driver interface {
	// SetupDrawers returns the backend painters, and
	// will be called at the begining of every path.
	// If the `willXXX` boolean is false, the returned drawer should be nil
	// to avoid useless operations.
	SetupDrawers(willFill, willStroke bool) (Filler, Stroker)
}

// JoinMode type to specify how segments join.
type JoinMode uint8

const (
	Miter JoinMode = iota
	Round
	Bevel
)

func (s JoinMode) String() string {
	switch s {
	case Round:
		return "Round"
	case Bevel:
		return "Bevel"
	case Miter:
		return "Miter"
	default:
		return "<unknown JoinMode>"
	}
}

// CapMode defines how to draw caps on the ends of lines
type CapMode uint8

const (
	ButtCap CapMode = iota
	SquareCap
	RoundCap
)

func (c CapMode) String() string {
	switch c {
	case ButtCap:
		return "ButtCap"
	case SquareCap:
		return "SquareCap"
	case RoundCap:
		return "RoundCap"
	default:
		return "<unknown CapMode>"
	}
}

type StrokeOptions struct {
	LineWidth  fixed.Int26_6 // width of the line
	MiterLimit fixed.Int26_6
	LineJoin   JoinMode
	LineCap    CapMode
}

// SetTarget sets the Transform matrix to draw within the bounds of the rectangle arguments
func (s *Image) SetTarget(x, y, w, h float64) {
	scaleW, scaleH := 1., 1.
	if s.ViewBox.W > 0 {
		scaleW = w / s.ViewBox.W
	}
	if s.ViewBox.H > 0 {
		scaleH = h / s.ViewBox.H
	}
	s.Transform = Identity.Translate(x, y).Scale(scaleW, scaleH).Translate(-s.ViewBox.X, -s.ViewBox.Y)
}

// Draw the compiled SVG image into the driver `d`.
// All elements should be contained by the Bounds rectangle of the Image.
func (s *Image) Draw(d Driver, opacity float64) {
	for _, svgp := range s.Paths {
		svgp.drawTransformed(d, opacity, s.Transform)
	}
}

// drawTransformed draws the compiled StyledPath into the driver while applying transform t.
func (svgp StyledPath) drawTransformed(d Driver, opacity float64, t Matrix2D) {
	m := t.Mult(svgp.Style.transform)

	filler, stroker := d.SetupDrawers(svgp.Style.FillerColor != nil, svgp.Style.LinerColor != nil)
	if filler != nil { // nil color disable filling
		filler.Clear()
		filler.SetWinding(svgp.Style.UseNonZeroWinding)

		svgp.Path.replay(filler, m)

		filler.SetColor(svgp.Style.FillerColor, svgp.Style.FillOpacity*svgp.Style.Opacity*opacity)
		filler.Draw()
		filler.SetWinding(true) // default is true
	}

	if stroker != nil { // nil color disable lining
		stroker.Clear()

		stroker.SetStrokeOptions(StrokeOptions{
			LineWidth:  fixed.Int26_6(svgp.Style.LineWidth * m.scaleFactor() * 64),
			MiterLimit: fToFixed(svgp.Style.MiterLimit),
			LineJoin:   svgp.Style.LineJoin,
			LineCap:    svgp.Style.LineCap,
		})

		svgp.Path.replay(stroker, m)

		stroker.SetColor(svgp.Style.LinerColor, svgp.Style.LineOpacity*svgp.Style.Opacity*opacity)
		stroker.Draw()
	}
}
