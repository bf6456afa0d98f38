package svgdraw

import (
	"errors"

	"github.com/benoitkugler/svgoptim/svgtree"
)

type svgFunc func(c *compiler, el *svgtree.Node) error

var drawFuncs = map[string]svgFunc{
	"svg":      svgF,
	"g":        gF,
	"a":        gF,
	"switch":   gF,
	"line":     lineF,
	"rect":     rectF,
	"circle":   circleF,
	"ellipse":  circleF, // circleF handles ellipse also
	"polyline": polylineF,
	"polygon":  polygonF,
	"path":     pathF,
}

// readLengths parses the given attributes, missing ones are left to 0
func readLengths(el *svgtree.Node, names []string, out []*float64) error {
	for i, name := range names {
		v, ok := el.Attr(name)
		if !ok {
			continue
		}
		f, err := parseLength(v)
		if err != nil {
			return err
		}
		*out[i] = f
	}
	return nil
}

func svgF(c *compiler, el *svgtree.Node) error {
	// nested <svg> only draws its content
	if el.Parent != nil && el.Parent.Kind == svgtree.ElementNode {
		return nil
	}
	c.img.Width, _ = el.Attr("width")
	c.img.Height, _ = el.Attr("height")
	if vb, ok := el.Attr("viewBox"); ok {
		points, err := parsePoints(vb)
		if err != nil {
			return err
		}
		if len(points) != 4 {
			return errParamMismatch
		}
		c.img.ViewBox = Bounds{X: points[0], Y: points[1], W: points[2], H: points[3]}
	}
	if c.img.ViewBox.W == 0 {
		if w, err := parseLength(c.img.Width); err == nil {
			c.img.ViewBox.W = w
		}
	}
	if c.img.ViewBox.H == 0 {
		if h, err := parseLength(c.img.Height); err == nil {
			c.img.ViewBox.H = h
		}
	}
	return nil
}

func gF(*compiler, *svgtree.Node) error { return nil } // g does nothing but push the style

func rectF(c *compiler, el *svgtree.Node) error {
	var x, y, w, h, rx, ry float64
	err := readLengths(el,
		[]string{"x", "y", "width", "height", "rx", "ry"},
		[]*float64{&x, &y, &w, &h, &rx, &ry})
	if err != nil {
		return err
	}
	if w <= 0 || h <= 0 {
		return nil
	}
	// a single radius applies to both axis
	_, hasRx := el.Attr("rx")
	_, hasRy := el.Attr("ry")
	if hasRx && !hasRy {
		ry = rx
	} else if hasRy && !hasRx {
		rx = ry
	}
	c.path.addRoundRect(x, y, x+w, y+h, rx, ry)
	return nil
}

func circleF(c *compiler, el *svgtree.Node) error {
	var cx, cy, r, rx, ry float64
	err := readLengths(el,
		[]string{"cx", "cy", "r", "rx", "ry"},
		[]*float64{&cx, &cy, &r, &rx, &ry})
	if err != nil {
		return err
	}
	if el.Name.Local == "circle" {
		rx, ry = r, r
	}
	if rx <= 0 || ry <= 0 { // not drawn, but not an error
		return nil
	}
	c.path.addEllipse(cx, cy, rx, ry)
	return nil
}

func lineF(c *compiler, el *svgtree.Node) error {
	var x1, y1, x2, y2 float64
	err := readLengths(el,
		[]string{"x1", "y1", "x2", "y2"},
		[]*float64{&x1, &y1, &x2, &y2})
	if err != nil {
		return err
	}
	c.path.addPolyline([]float64{x1, y1, x2, y2}, false)
	return nil
}

func readPoints(el *svgtree.Node) ([]float64, error) {
	v, _ := el.Attr("points")
	points, err := parsePoints(v)
	if err != nil {
		return nil, err
	}
	if len(points)%2 != 0 {
		return nil, errors.New("polygon has odd number of points")
	}
	return points, nil
}

func polylineF(c *compiler, el *svgtree.Node) error {
	points, err := readPoints(el)
	if err != nil {
		return err
	}
	if len(points) >= 4 {
		c.path.addPolyline(points, false)
	}
	return nil
}

func polygonF(c *compiler, el *svgtree.Node) error {
	points, err := readPoints(el)
	if err != nil {
		return err
	}
	if len(points) >= 4 {
		c.path.addPolyline(points, true)
	}
	return nil
}

func pathF(c *compiler, el *svgtree.Node) error {
	d, ok := el.Attr("d")
	if !ok {
		return nil
	}
	return c.path.compile(d)
}
