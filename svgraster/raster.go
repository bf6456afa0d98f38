// Implements a raster backend to render SVG previews,
// by wrapping rasterx.
package svgraster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/srwiley/rasterx"

	"github.com/benoitkugler/svgoptim/svgdraw"
	"github.com/benoitkugler/svgoptim/svgjobs"
	"github.com/benoitkugler/svgoptim/svgtree"
)

var _ svgdraw.Driver = (*Renderer)(nil) // assert interface conformance

// ErrNoDimensions is returned when the size of the
// document can't be deduced from its root element.
var ErrNoDimensions = errors.New("svg has no intrinsic dimensions")

// MaxImageSize bounds the width and the height, in pixels,
// of the images created by RasterSVGToImage.
const MaxImageSize = 1 << 14

// Renderer draws on a rasterx.Scanner
type Renderer struct {
	dasher *rasterx.Dasher // we use separated instances
	filler *rasterx.Filler // to avoid shared state
}

// NewRenderer returns a renderer with default values.
// In addition to rasterizing lines like a Scanner,
// it can also rasterize quadratic and cubic bezier curves.
func NewRenderer(width, height int, scanner rasterx.Scanner) *Renderer {
	return &Renderer{dasher: rasterx.NewDasher(width, height, scanner), filler: rasterx.NewFiller(width, height, scanner)}
}

// Render draws `img` scaled to a `width` x `height` image.
func Render(img *svgdraw.Image, width, height int) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, out, out.Bounds())
	img.SetTarget(0, 0, float64(width), float64(height))
	img.Draw(NewRenderer(width, height, scanner), 1.0)
	return out
}

// RasterSVGToImage parses the document, and renders it at
// its intrinsic size, as returned by the dimensions extraction.
func RasterSVGToImage(r io.Reader) (*image.RGBA, error) {
	doc, err := svgtree.Parse(r)
	if err != nil {
		return nil, err
	}
	jobs := svgjobs.NewCustomJobs(svgjobs.DefaultConfig())
	if _, err := jobs.Run(doc); err != nil {
		return nil, err
	}
	dims := jobs.Dimensions()
	if dims == nil {
		return nil, ErrNoDimensions
	}
	if dims.Width+0.5 >= MaxImageSize+1 || dims.Height+0.5 >= MaxImageSize+1 {
		return nil, fmt.Errorf("image size %gx%g exceeds %d pixels", dims.Width, dims.Height, MaxImageSize)
	}
	w, h := int(dims.Width+0.5), int(dims.Height+0.5)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", w, h)
	}

	img, err := svgdraw.Compile(doc, svgdraw.IgnoreErrorMode)
	if err != nil {
		return nil, err
	}
	return Render(img, w, h), nil
}

func (rd *Renderer) SetupDrawers(willFill, willStroke bool) (f svgdraw.Filler, s svgdraw.Stroker) {
	if willFill {
		f = filler{rd.filler}
	}
	if willStroke {
		s = stroker{rd.dasher}
	}
	return f, s
}

type filler struct {
	*rasterx.Filler
}

func (f filler) SetColor(c color.Color, opacity float64) {
	f.Filler.SetColor(rasterx.ApplyOpacity(c, opacity))
}

type stroker struct {
	*rasterx.Dasher
}

func (s stroker) SetColor(c color.Color, opacity float64) {
	s.Dasher.SetColor(rasterx.ApplyOpacity(c, opacity))
}

var (
	joinToJoin = [...]rasterx.JoinMode{
		svgdraw.Round: rasterx.Round,
		svgdraw.Bevel: rasterx.Bevel,
		svgdraw.Miter: rasterx.Miter,
	}

	capToFunc = [...]rasterx.CapFunc{
		svgdraw.ButtCap:   rasterx.ButtCap,
		svgdraw.SquareCap: rasterx.SquareCap,
		svgdraw.RoundCap:  rasterx.RoundCap,
	}
)

func (s stroker) SetStrokeOptions(options svgdraw.StrokeOptions) {
	capFunc := capToFunc[options.LineCap]
	s.Dasher.SetStroke(
		options.LineWidth, options.MiterLimit, capFunc, capFunc,
		rasterx.FlatGap, joinToJoin[options.LineJoin], nil, 0,
	)
}
