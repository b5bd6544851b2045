package svgdimension

import (
	"strconv"
	"strings"
)

const embeddedImagePrefix = "data:image"

// Dimension is a declared width and height in user units. Both components
// are positive when it comes from ResolveDimension.
type Dimension struct {
	Width  int
	Height int
}

// ResolveDimension reads the width and height attributes of el. It reports
// false when either one is missing, not numeric or not positive.
func ResolveDimension(el *Element) (Dimension, bool) {
	width, ok := attrInt(el, "width")
	if !ok {
		return Dimension{}, false
	}
	height, ok := attrInt(el, "height")
	if !ok {
		return Dimension{}, false
	}
	return Dimension{Width: width, Height: height}, true
}

// Exceeds reports whether d is larger than limit scaled by ratio on either
// axis. A dimension of exactly limit*ratio does not exceed it.
func (d Dimension) Exceeds(limit Dimension, ratio float64) bool {
	return float64(d.Width) > float64(limit.Width)*ratio ||
		float64(d.Height) > float64(limit.Height)*ratio
}

// EmbeddedReference returns the data URI of an image element. href wins over
// xlink:href; anything that is not a data:image URI is ignored.
func EmbeddedReference(el *Element) (string, bool) {
	ref, ok := el.Attr("href")
	if !ok {
		ref, ok = el.xlinkAttr("href")
	}
	if !ok || !strings.HasPrefix(ref, embeddedImagePrefix) {
		return "", false
	}
	return ref, true
}

func attrInt(el *Element, name string) (int, bool) {
	raw, ok := el.Attr(name)
	if !ok {
		return 0, false
	}
	n, ok := parseLeadingInt(raw)
	if !ok || n <= 0 {
		return 0, false
	}
	return n, true
}

// parseLeadingInt parses the base-10 integer at the start of s and ignores
// whatever follows it, so "100px" and "100.5" both yield 100.
func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\n\r\f\v")

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, false
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
