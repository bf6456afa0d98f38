// Implements a PDF backend to render SVG previews,
// by wrapping github.com/jung-kurt/gofpdf.
package svgpdf

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/math/fixed"

	"github.com/benoitkugler/svgoptim/svgdraw"
	"github.com/benoitkugler/svgoptim/svgjobs"
	"github.com/benoitkugler/svgoptim/svgtree"
)

// assert interface conformance
var (
	_ svgdraw.Driver  = Renderer{}
	_ svgdraw.Filler  = (*filler)(nil)
	_ svgdraw.Stroker = stroker{}
)

// ErrNoDimensions is returned when the size of the
// document can't be deduced from its root element.
var ErrNoDimensions = errors.New("svg has no intrinsic dimensions")

type Renderer struct {
	pdf *gofpdf.Fpdf
}

// implements the common path commands,
// shared by the filler and the stroker
type pather struct {
	pdf *gofpdf.Fpdf
}

// implements the filling operation
type filler struct {
	pather
	useNonZeroWinding bool
}

// implements the stroking operation
type stroker struct {
	pather
}

// NewRenderer return a renderer which will
// write to the current page of `pdf`.
func NewRenderer(pdf *gofpdf.Fpdf) Renderer {
	return Renderer{pdf: pdf}
}

func (r Renderer) SetupDrawers(willFill, willStroke bool) (f svgdraw.Filler, s svgdraw.Stroker) {
	if willFill {
		f = &filler{pather: pather{r.pdf}, useNonZeroWinding: true}
	}
	if willStroke {
		s = stroker{pather{r.pdf}}
	}
	return f, s
}

func fixedTof(a fixed.Point26_6) (float64, float64) {
	return float64(a.X) / 64, float64(a.Y) / 64
}

// the path is written directly into the page content
func (p pather) Clear() {}

func (p pather) Start(a fixed.Point26_6) {
	p.pdf.MoveTo(fixedTof(a))
}

func (p pather) Line(b fixed.Point26_6) {
	p.pdf.LineTo(fixedTof(b))
}

func (p pather) QuadBezier(b fixed.Point26_6, c fixed.Point26_6) {
	cx, cy := fixedTof(b)
	x, y := fixedTof(c)
	p.pdf.CurveTo(cx, cy, x, y)
}

func (p pather) CubeBezier(b fixed.Point26_6, c fixed.Point26_6, d fixed.Point26_6) {
	cx0, cy0 := fixedTof(b)
	cx1, cy1 := fixedTof(c)
	x, y := fixedTof(d)
	p.pdf.CurveBezierCubicTo(cx0, cy0, cx1, cy1, x, y)
}

func (p pather) Stop(closeLoop bool) {
	if closeLoop {
		p.pdf.ClosePath()
	}
}

// toRGB returns the components of `c`, and the
// opacity multiplied by its alpha
func toRGB(c color.Color, opacity float64) (r, g, b int, alpha float64) {
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	return int(nc.R), int(nc.G), int(nc.B), opacity * float64(nc.A) / 255.
}

func (f *filler) SetColor(c color.Color, opacity float64) {
	r, g, b, alpha := toRGB(c, opacity)
	f.pdf.SetFillColor(r, g, b)
	f.pdf.SetAlpha(alpha, "")
}

func (f *filler) Draw() {
	styleStr := "F*"
	if f.useNonZeroWinding {
		styleStr = "F"
	}
	f.pdf.DrawPath(styleStr)
}

func (f *filler) SetWinding(useNonZeroWinding bool) {
	f.useNonZeroWinding = useNonZeroWinding
}

func (s stroker) SetColor(c color.Color, opacity float64) {
	r, g, b, alpha := toRGB(c, opacity)
	s.pdf.SetDrawColor(r, g, b)
	s.pdf.SetAlpha(alpha, "")
}

func (s stroker) Draw() {
	s.pdf.DrawPath("D")
}

var (
	joinToStyle = [...]string{
		svgdraw.Miter: "miter",
		svgdraw.Round: "round",
		svgdraw.Bevel: "bevel",
	}
	capToStyle = [...]string{
		svgdraw.ButtCap:   "butt",
		svgdraw.SquareCap: "square",
		svgdraw.RoundCap:  "round",
	}
)

func (s stroker) SetStrokeOptions(options svgdraw.StrokeOptions) {
	s.pdf.SetLineWidth(float64(options.LineWidth) / 64)
	s.pdf.SetLineJoinStyle(joinToStyle[options.LineJoin])
	s.pdf.SetLineCapStyle(capToStyle[options.LineCap])
}

// Render writes a one page PDF file to `out`,
// with `img` scaled to a page of `width` x `height` points.
func Render(img *svgdraw.Image, width, height float64, out io.Writer) error {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	img.SetTarget(0, 0, width, height)
	img.Draw(NewRenderer(pdf), 1.0)

	if err := pdf.Output(out); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// RenderSVGToPDF parses the document, and renders it on
// a page of its intrinsic size, as returned by the dimensions extraction.
func RenderSVGToPDF(r io.Reader, out io.Writer) error {
	doc, err := svgtree.Parse(r)
	if err != nil {
		return err
	}
	jobs := svgjobs.NewCustomJobs(svgjobs.DefaultConfig())
	if _, err := jobs.Run(doc); err != nil {
		return err
	}
	dims := jobs.Dimensions()
	if dims == nil {
		return ErrNoDimensions
	}
	if dims.Width <= 0 || dims.Height <= 0 {
		return fmt.Errorf("invalid page size %gx%g", dims.Width, dims.Height)
	}

	img, err := svgdraw.Compile(doc, svgdraw.IgnoreErrorMode)
	if err != nil {
		return err
	}
	return Render(img, dims.Width, dims.Height, out)
}
