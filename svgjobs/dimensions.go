package svgjobs

import (
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/benoitkugler/svgoptim/svgtree"
)

// Dimensions is the intrinsic size of a document.
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ExtractDimensions extracts the width and height of the document
// from the `width`/`height` attributes of the root <svg> element,
// or, as a fallback, from its `viewBox`.
//
// Only the first <svg> element of a document is inspected, and
// once dimensions are found, visiting other elements is a no-op.
type ExtractDimensions struct {
	Enabled bool

	dims     *Dimensions
	rootSeen bool
}

// viewBoxSeparator splits a viewBox into its components.
// Leading or trailing separators yield empty components.
var viewBoxSeparator = regexp.MustCompile(`[ ,]+`)

func (*ExtractDimensions) Name() string { return "extractDimensions" }

func (ed *ExtractDimensions) Prepare(*svgtree.Node) (PrepareOutcome, error) {
	if ed.Enabled {
		return PrepareNone, nil
	}
	return PrepareSkip, nil
}

// Element never returns an error: missing or invalid
// attributes simply leave the dimensions unset.
func (ed *ExtractDimensions) Element(element *svgtree.Node) error {
	if ed.dims != nil || ed.rootSeen {
		return nil
	}
	if element.Name.Space != "" || element.Name.Local != "svg" {
		return nil
	}
	ed.rootSeen = true

	if dims, ok := dimensionsFromAttributes(element); ok {
		ed.dims = &dims
		return nil
	}
	if dims, ok := dimensionsFromViewBox(element); ok {
		ed.dims = &dims
	}
	return nil
}

// Dimensions returns a copy of the extracted dimensions,
// or nil if none were found.
func (ed *ExtractDimensions) Dimensions() *Dimensions {
	if ed.dims == nil {
		return nil
	}
	out := *ed.dims
	return &out
}

// Reset forgets the extracted dimensions.
func (ed *ExtractDimensions) Reset() {
	ed.dims = nil
	ed.rootSeen = false
}

// dimensionsFromAttributes requires both `width` and `height`
// to be plain numbers.
func dimensionsFromAttributes(element *svgtree.Node) (Dimensions, bool) {
	widthAttr, okW := element.Attr("width")
	heightAttr, okH := element.Attr("height")
	if !okW || !okH {
		return Dimensions{}, false
	}
	width, okW := parseBasicFloat(widthAttr)
	height, okH := parseBasicFloat(heightAttr)
	if !okW || !okH {
		return Dimensions{}, false
	}
	return Dimensions{Width: width, Height: height}, true
}

// dimensionsFromViewBox uses the width and height components
// of the `viewBox`, which must have exactly 4 non-empty components.
// min-x and min-y are not checked.
func dimensionsFromViewBox(element *svgtree.Node) (Dimensions, bool) {
	viewBox, ok := element.Attr("viewBox")
	if !ok {
		return Dimensions{}, false
	}
	nums := viewBoxSeparator.Split(viewBox, -1)
	if len(nums) != 4 || slices.Contains(nums, "") {
		return Dimensions{}, false
	}
	width, okW := parseBasicFloat(nums[2])
	height, okH := parseBasicFloat(nums[3])
	if !okW || !okH {
		return Dimensions{}, false
	}
	return Dimensions{Width: width, Height: height}, true
}

// parseBasicFloat parses a finite decimal number, without units.
// Hexadecimal notation, infinities and NaN are rejected.
func parseBasicFloat(s string) (float64, bool) {
	if strings.ContainsAny(s, "xX_") {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}
