// Package svgdimension flags raster images embedded in SVG files whose
// declared size is out of proportion with the SVG that contains them.
//
// Only declared width and height attributes are compared. Data URIs are
// never decoded and external image references are ignored.
package svgdimension

import (
	"fmt"
	"math"
)

const DefaultMaxSizeRatio = 2.0

type Config struct {
	// MaxSizeRatio is how many times larger than the root svg an embedded
	// image may be declared on either axis before it is reported.
	MaxSizeRatio float64
}

func DefaultConfig() Config {
	return Config{MaxSizeRatio: DefaultMaxSizeRatio}
}

func (c Config) Validate() error {
	if math.IsNaN(c.MaxSizeRatio) || math.IsInf(c.MaxSizeRatio, 0) || c.MaxSizeRatio <= 0 {
		return fmt.Errorf("maxSizeRatio must be a positive number, got %v", c.MaxSizeRatio)
	}
	return nil
}

// Validate checks a single SVG file. filePath is only used in the findings
// and should be relative to the working directory.
//
// A structural problem or missing root dimensions produce exactly one
// finding and stop the check. Otherwise there is one finding per oversized
// embedded image, in document order.
func Validate(filePath string, content []byte, cfg Config) []Finding {
	doc, err := Parse(content)
	if err != nil {
		return []Finding{invalidSvg(err.Error())}
	}

	root := doc.Root()
	if root.Name.Local != "svg" {
		return []Finding{invalidSvg(NotSVGMessage)}
	}

	svgSize, ok := ResolveDimension(root)
	if !ok {
		return []Finding{missingDimensions()}
	}

	var findings []Finding
	for _, image := range doc.ElementsByTagName("image") {
		if _, ok := EmbeddedReference(image); !ok {
			continue
		}
		imageSize, ok := ResolveDimension(image)
		if !ok {
			continue
		}
		if imageSize.Exceeds(svgSize, cfg.MaxSizeRatio) {
			findings = append(findings, oversizedImage(filePath, imageSize, svgSize))
		}
	}

	return findings
}
