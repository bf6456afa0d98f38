package svgdraw

// This file implements the transformation from
// high level shapes to their path equivalent

// kappa is the distance of the control points used
// to approximate a quarter of circle with a cubic bezier curve
const kappa = 0.5522847498

func (p *Path) addRect(minX, minY, maxX, maxY float64) {
	p.moveTo(minX, minY)
	p.lineTo(maxX, minY)
	p.lineTo(maxX, maxY)
	p.lineTo(minX, maxY)
	p.closePath()
}

// addRoundRect adds a rectangle with rounded corners of radius
// rx in the x axis and ry in the y axis.
func (p *Path) addRoundRect(minX, minY, maxX, maxY, rx, ry float64) {
	if rx <= 0 || ry <= 0 {
		p.addRect(minX, minY, maxX, maxY)
		return
	}
	if w := maxX - minX; w < rx*2 {
		rx = w / 2
	}
	if h := maxY - minY; h < ry*2 {
		ry = h / 2
	}
	kx, ky := kappa*rx, kappa*ry

	p.moveTo(minX+rx, minY)
	p.lineTo(maxX-rx, minY)
	p.cubicTo(maxX-rx+kx, minY, maxX, minY+ry-ky, maxX, minY+ry)
	p.lineTo(maxX, maxY-ry)
	p.cubicTo(maxX, maxY-ry+ky, maxX-rx+kx, maxY, maxX-rx, maxY)
	p.lineTo(minX+rx, maxY)
	p.cubicTo(minX+rx-kx, maxY, minX, maxY-ry+ky, minX, maxY-ry)
	p.lineTo(minX, minY+ry)
	p.cubicTo(minX, minY+ry-ky, minX+rx-kx, minY, minX+rx, minY)
	p.closePath()
}

// addEllipse approximates the ellipse with four cubic bezier curves
func (p *Path) addEllipse(cx, cy, rx, ry float64) {
	kx, ky := kappa*rx, kappa*ry
	p.moveTo(cx+rx, cy)
	p.cubicTo(cx+rx, cy+ky, cx+kx, cy+ry, cx, cy+ry)
	p.cubicTo(cx-kx, cy+ry, cx-rx, cy+ky, cx-rx, cy)
	p.cubicTo(cx-rx, cy-ky, cx-kx, cy-ry, cx, cy-ry)
	p.cubicTo(cx+kx, cy-ry, cx+rx, cy-ky, cx+rx, cy)
	p.closePath()
}

// addPolyline joins the points given as x0, y0, x1, y1, ...
func (p *Path) addPolyline(points []float64, closed bool) {
	p.moveTo(points[0], points[1])
	for i := 2; i < len(points)-1; i += 2 {
		p.lineTo(points[i], points[i+1])
	}
	if closed {
		p.closePath()
	}
}
