package svgdraw

import (
	"fmt"
	"strings"
	"testing"

	"golang.org/x/image/math/fixed"
)

func pt(p fixed.Point26_6) string {
	return fmt.Sprintf("%.3f,%.3f", float64(p.X)/64, float64(p.Y)/64)
}

// formatPath writes `p` back as path data, with 3 decimals
func formatPath(p Path) string {
	var chunks []string
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			chunks = append(chunks, "M"+pt(fixed.Point26_6(op)))
		case LineTo:
			chunks = append(chunks, "L"+pt(fixed.Point26_6(op)))
		case QuadTo:
			chunks = append(chunks, "Q"+pt(op[0])+","+pt(op[1]))
		case CubicTo:
			chunks = append(chunks, "C"+pt(op[0])+","+pt(op[1])+","+pt(op[2]))
		case Close:
			chunks = append(chunks, "Z")
		}
	}
	return strings.Join(chunks, " ")
}

func TestCompilePathData(t *testing.T) {
	for _, test := range []struct {
		d    string
		want string
	}{
		{"M1 2 L3 4", "M1.000,2.000 L3.000,4.000"},
		{"M1,2 3,4 5,6", "M1.000,2.000 L3.000,4.000 L5.000,6.000"},
		{"m1 1 2 2", "M1.000,1.000 L3.000,3.000"},
		{"M0 0 H5 V5 h-5 v-5 Z", "M0.000,0.000 L5.000,0.000 L5.000,5.000 L0.000,5.000 L0.000,0.000 Z"},
		{"M10-5l-1.5.5", "M10.000,-5.000 L8.500,-4.500"},
		{"M0 0 1e1 0", "M0.000,0.000 L10.000,0.000"},
		{"M0 0 C1 1 2 2 3 3", "M0.000,0.000 C1.000,1.000,2.000,2.000,3.000,3.000"},
		{"M0 0 C0 1 2 3 4 4 S6 6 8 8", "M0.000,0.000 C0.000,1.000,2.000,3.000,4.000,4.000 C6.000,5.000,6.000,6.000,8.000,8.000"},
		{"M0 0 s1 1 2 2", "M0.000,0.000 C0.000,0.000,1.000,1.000,2.000,2.000"},
		{"M0 0 Q1 1 2 0 T4 0", "M0.000,0.000 Q1.000,1.000,2.000,0.000 Q3.000,-1.000,4.000,0.000"},
		{"M0 0 A5 5 0 0 1 10 0", "M0.000,0.000 L10.000,0.000"},
		{"M0 0 a5 5 0 1110 0", "M0.000,0.000 L10.000,0.000"},
		{"M0 0 L1 1 Z m1 1 l1 0", "M0.000,0.000 L1.000,1.000 Z M1.000,1.000 L2.000,1.000"},
		{"", ""},
	} {
		var p Path
		if err := p.compile(test.d); err != nil {
			t.Fatalf("%q: %s", test.d, err)
		}
		if got := formatPath(p); got != test.want {
			t.Errorf("%q: expected %s, got %s", test.d, test.want, got)
		}
	}
}

func TestCompilePathDataInvalid(t *testing.T) {
	for _, d := range []string{
		"L1 1",
		"M1",
		"M1 1 Z 2 2",
		"M1 1 X 2",
		"M0 0 A5 5 0 2 1 10 0",
		"M0 0 L1 .",
	} {
		var p Path
		if err := p.compile(d); err == nil {
			t.Errorf("%q: expected error", d)
		}
	}
}
