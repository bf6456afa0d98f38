package svgdraw

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

var (
	errParamMismatch = errors.New("param mismatch")
	errInvalidNumber = errors.New("invalid number")
)

// numberScanner reads the numbers of a list or of
// path data, where separators are optional ("10-5" is two numbers)
type numberScanner struct {
	s   string
	pos int
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}

func isDigit(b byte) bool { return '0' <= b && b <= '9' }

func (sc *numberScanner) done() bool { return sc.pos >= len(sc.s) }

// skipSeparators skips whitespace and commas
func (sc *numberScanner) skipSeparators() {
	for sc.pos < len(sc.s) && (isSpace(sc.s[sc.pos]) || sc.s[sc.pos] == ',') {
		sc.pos++
	}
}

// startsNumber reports if the next byte may start a number
func (sc *numberScanner) startsNumber() bool {
	if sc.done() {
		return false
	}
	b := sc.s[sc.pos]
	return isDigit(b) || b == '.' || b == '-' || b == '+'
}

// number reads one number, after skipping separators
func (sc *numberScanner) number() (float64, error) {
	sc.skipSeparators()
	start := sc.pos
	s := sc.s
	i := sc.pos
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0, fmt.Errorf("%w at offset %d in %q", errInvalidNumber, start, s)
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			i = j
		}
	}
	sc.pos = i
	return strconv.ParseFloat(s[start:i], 64)
}

// numbers reads exactly len(out) numbers
func (sc *numberScanner) numbers(out []float64) error {
	for i := range out {
		var err error
		out[i], err = sc.number()
		if err != nil {
			return err
		}
	}
	return nil
}

// parsePoints returns the list of numbers in `s`,
// separated by whitespace and/or commas.
func parsePoints(s string) ([]float64, error) {
	sc := numberScanner{s: s}
	var out []float64
	for {
		sc.skipSeparators()
		if sc.done() {
			return out, nil
		}
		f, err := sc.number()
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
}

// parseLength parses a number, with an optional px unit.
func parseLength(s string) (float64, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errInvalidNumber, s)
	}
	return f, nil
}

// readFraction parses a number or a percentage
func readFraction(v string) (f float64, err error) {
	v = strings.TrimSpace(v)
	d := 1.0
	if strings.HasSuffix(v, "%") {
		d = 100
		v = strings.TrimSuffix(v, "%")
	}
	f, err = strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errInvalidNumber, v)
	}
	return f / d, nil
}

func clampByte(f float64) uint8 {
	if f < 0 {
		return 0
	}
	if f > 255 {
		return 255
	}
	return uint8(f + 0.5)
}

func parseHex(s string) (uint8, error) {
	v, err := strconv.ParseUint(s, 16, 8)
	return uint8(v), err
}

// parseSVGColor returns nil for "none".
// Paint servers (url(#id)) are not supported and also return nil.
func parseSVGColor(v string) (color.Color, error) {
	v = strings.TrimSpace(v)
	lower := strings.ToLower(v)
	switch {
	case lower == "none" || lower == "transparent" || strings.HasPrefix(lower, "url("):
		return nil, nil
	case lower == "currentcolor":
		return color.NRGBA{A: 0xff}, nil
	case strings.HasPrefix(v, "#"):
		hex := v[1:]
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) != 6 {
			return nil, fmt.Errorf("invalid color %q", v)
		}
		var rgb [3]uint8
		for i := range rgb {
			c, err := parseHex(hex[2*i : 2*i+2])
			if err != nil {
				return nil, fmt.Errorf("invalid color %q", v)
			}
			rgb[i] = c
		}
		return color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 0xff}, nil
	case strings.HasPrefix(lower, "rgb(") && strings.HasSuffix(lower, ")"):
		parts := strings.Split(v[4:len(v)-1], ",")
		if len(parts) != 3 {
			return nil, fmt.Errorf("invalid color %q", v)
		}
		var rgb [3]uint8
		for i, part := range parts {
			part = strings.TrimSpace(part)
			scale := 1.
			if strings.HasSuffix(part, "%") {
				part = strings.TrimSuffix(part, "%")
				scale = 2.55
			}
			f, err := strconv.ParseFloat(part, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid color %q", v)
			}
			rgb[i] = clampByte(f * scale)
		}
		return color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 0xff}, nil
	}
	if c, ok := colornames.Map[lower]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}
	return nil, fmt.Errorf("invalid color %q", v)
}
