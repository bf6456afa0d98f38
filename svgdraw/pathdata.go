package svgdraw

import (
	"fmt"

	"golang.org/x/image/math/fixed"
)

// Operation is one segment of a Path, in user space.
type Operation interface {
	replay(d Drawer, m Matrix2D)
}

type (
	MoveTo  fixed.Point26_6
	LineTo  fixed.Point26_6
	QuadTo  [2]fixed.Point26_6
	CubicTo [3]fixed.Point26_6
	Close   struct{}
)

func (op MoveTo) replay(d Drawer, m Matrix2D) {
	d.Stop(false) // a new subpath leaves the previous one open
	d.Start(m.TFixed(fixed.Point26_6(op)))
}

func (op LineTo) replay(d Drawer, m Matrix2D) { d.Line(m.TFixed(fixed.Point26_6(op))) }

func (op QuadTo) replay(d Drawer, m Matrix2D) { d.QuadBezier(m.TFixed(op[0]), m.TFixed(op[1])) }

func (op CubicTo) replay(d Drawer, m Matrix2D) {
	d.CubeBezier(m.TFixed(op[0]), m.TFixed(op[1]), m.TFixed(op[2]))
}

func (Close) replay(d Drawer, _ Matrix2D) { d.Stop(true) }

// Path is the outline produced by a shape element or
// by path data. Coordinates are rounded to 1/64 unit.
type Path []Operation

// replay sends the path to `d`, transformed by `m`,
// leaving the last subpath open.
func (p Path) replay(d Drawer, m Matrix2D) {
	for _, op := range p {
		op.replay(d, m)
	}
	d.Stop(false)
}

func (p *Path) moveTo(x, y float64) { *p = append(*p, MoveTo(toFixedP(x, y))) }

func (p *Path) lineTo(x, y float64) { *p = append(*p, LineTo(toFixedP(x, y))) }

func (p *Path) quadTo(x1, y1, x, y float64) {
	*p = append(*p, QuadTo{toFixedP(x1, y1), toFixedP(x, y)})
}

func (p *Path) cubicTo(x1, y1, x2, y2, x, y float64) {
	*p = append(*p, CubicTo{toFixedP(x1, y1), toFixedP(x2, y2), toFixedP(x, y)})
}

func (p *Path) closePath() { *p = append(*p, Close{}) }

// pathCursor holds the state needed
// to compile the `d` attribute of a <path>
type pathCursor struct {
	sc   numberScanner
	path *Path

	curX, curY     float64
	startX, startY float64
	// last control point, used by the S and T shorthands
	ctrlX, ctrlY float64
	lastCmd      byte

	args [7]float64
}

func isCommand(b byte) bool {
	switch b {
	case 'M', 'm', 'L', 'l', 'H', 'h', 'V', 'v', 'C', 'c', 'S', 's',
		'Q', 'q', 'T', 't', 'A', 'a', 'Z', 'z':
		return true
	}
	return false
}

// compile parses the path data `d` and appends it to the path.
// Elliptical arcs are replaced by a line to their end point.
func (p *Path) compile(d string) error {
	c := pathCursor{sc: numberScanner{s: d}, path: p}
	for {
		c.sc.skipSeparators()
		if c.sc.done() {
			break
		}
		cmd := c.sc.s[c.sc.pos]
		if isCommand(cmd) {
			c.sc.pos++
		} else if c.sc.startsNumber() && c.lastCmd != 0 && c.lastCmd != 'Z' && c.lastCmd != 'z' {
			// implicit repetition of the previous command
			cmd = c.lastCmd
			switch cmd {
			case 'M':
				cmd = 'L'
			case 'm':
				cmd = 'l'
			}
		} else {
			return fmt.Errorf("unexpected %q at offset %d in path data", cmd, c.sc.pos)
		}
		if c.lastCmd == 0 && cmd != 'M' && cmd != 'm' {
			return fmt.Errorf("path data must start with a moveto, got %q", cmd)
		}
		if err := c.exec(cmd); err != nil {
			return fmt.Errorf("path command %c: %w", cmd, err)
		}
		c.lastCmd = cmd
	}
	return nil
}

func (c *pathCursor) read(n int) error {
	return c.sc.numbers(c.args[:n])
}

// flag reads an arc flag, which may not be followed by a separator
func (c *pathCursor) flag() (float64, error) {
	c.sc.skipSeparators()
	if c.sc.done() {
		return 0, errParamMismatch
	}
	switch c.sc.s[c.sc.pos] {
	case '0':
		c.sc.pos++
		return 0, nil
	case '1':
		c.sc.pos++
		return 1, nil
	}
	return 0, errParamMismatch
}

// abs returns the absolute position of (x, y)
func (c *pathCursor) abs(relative bool, x, y float64) (float64, float64) {
	if relative {
		return c.curX + x, c.curY + y
	}
	return x, y
}

func (c *pathCursor) lineTo(x, y float64) {
	c.path.lineTo(x, y)
	c.curX, c.curY = x, y
	c.ctrlX, c.ctrlY = x, y
}

func (c *pathCursor) exec(cmd byte) error {
	relative := 'a' <= cmd && cmd <= 'z'
	switch cmd {
	case 'M', 'm':
		if err := c.read(2); err != nil {
			return err
		}
		x, y := c.abs(relative, c.args[0], c.args[1])
		c.path.moveTo(x, y)
		c.curX, c.curY = x, y
		c.startX, c.startY = x, y
		c.ctrlX, c.ctrlY = x, y
	case 'L', 'l':
		if err := c.read(2); err != nil {
			return err
		}
		c.lineTo(c.abs(relative, c.args[0], c.args[1]))
	case 'H', 'h':
		if err := c.read(1); err != nil {
			return err
		}
		x := c.args[0]
		if relative {
			x += c.curX
		}
		c.lineTo(x, c.curY)
	case 'V', 'v':
		if err := c.read(1); err != nil {
			return err
		}
		y := c.args[0]
		if relative {
			y += c.curY
		}
		c.lineTo(c.curX, y)
	case 'C', 'c':
		if err := c.read(6); err != nil {
			return err
		}
		x1, y1 := c.abs(relative, c.args[0], c.args[1])
		x2, y2 := c.abs(relative, c.args[2], c.args[3])
		x, y := c.abs(relative, c.args[4], c.args[5])
		c.cubeTo(x1, y1, x2, y2, x, y)
	case 'S', 's':
		if err := c.read(4); err != nil {
			return err
		}
		x1, y1 := c.curX, c.curY
		if c.follows('C', 'S') {
			x1, y1 = 2*c.curX-c.ctrlX, 2*c.curY-c.ctrlY
		}
		x2, y2 := c.abs(relative, c.args[0], c.args[1])
		x, y := c.abs(relative, c.args[2], c.args[3])
		c.cubeTo(x1, y1, x2, y2, x, y)
	case 'Q', 'q':
		if err := c.read(4); err != nil {
			return err
		}
		x1, y1 := c.abs(relative, c.args[0], c.args[1])
		x, y := c.abs(relative, c.args[2], c.args[3])
		c.quadTo(x1, y1, x, y)
	case 'T', 't':
		if err := c.read(2); err != nil {
			return err
		}
		x1, y1 := c.curX, c.curY
		if c.follows('Q', 'T') {
			x1, y1 = 2*c.curX-c.ctrlX, 2*c.curY-c.ctrlY
		}
		x, y := c.abs(relative, c.args[0], c.args[1])
		c.quadTo(x1, y1, x, y)
	case 'A', 'a':
		if err := c.read(3); err != nil {
			return err
		}
		var err error
		if c.args[3], err = c.flag(); err != nil {
			return err
		}
		if c.args[4], err = c.flag(); err != nil {
			return err
		}
		if err = c.sc.numbers(c.args[5:7]); err != nil {
			return err
		}
		c.lineTo(c.abs(relative, c.args[5], c.args[6]))
	case 'Z', 'z':
		c.path.closePath()
		c.curX, c.curY = c.startX, c.startY
		c.ctrlX, c.ctrlY = c.startX, c.startY
	}
	return nil
}

// follows returns true if the previous command is one of
// the given ones, ignoring relative forms
func (c *pathCursor) follows(cmds ...byte) bool {
	last := c.lastCmd &^ 0x20 // upper case
	for _, cmd := range cmds {
		if last == cmd {
			return true
		}
	}
	return false
}

func (c *pathCursor) cubeTo(x1, y1, x2, y2, x, y float64) {
	c.path.cubicTo(x1, y1, x2, y2, x, y)
	c.ctrlX, c.ctrlY = x2, y2
	c.curX, c.curY = x, y
}

func (c *pathCursor) quadTo(x1, y1, x, y float64) {
	c.path.quadTo(x1, y1, x, y)
	c.ctrlX, c.ctrlY = x1, y1
	c.curX, c.curY = x, y
}
