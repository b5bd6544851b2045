package svgdimension

import (
	"fmt"
	"regexp"
)

type Kind string

const (
	KindInvalidSvg        Kind = "invalidSvg"
	KindMissingDimensions Kind = "missingSvgDimensions"
	KindOversizedImage    Kind = "oversizedImage"
)

// NotSVGMessage is the error text used when a well formed document does not
// have an svg root element.
const NotSVGMessage = "Not a valid SVG file"

var messageTemplates = map[Kind]string{
	KindInvalidSvg:        "Invalid SVG file: {error}",
	KindMissingDimensions: "SVG file is missing width or height attributes",
	KindOversizedImage:    "Image dimensions ({imageWidth}x{imageHeight}) are larger than SVG dimensions ({svgWidth}x{svgHeight}) in file {filename}.",
}

var placeholderRe = regexp.MustCompile(`\{(\w+)\}`)

// Location is where a finding is anchored in the file. Findings are not tied
// to individual elements, so it is always the start of the document.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

var documentStart = Location{Line: 1, Column: 0}

type Finding struct {
	Kind     Kind           `json:"kind"`
	Data     map[string]any `json:"data,omitempty"`
	Location Location       `json:"location"`
}

// MessageID identifies the message template of the finding.
func (f Finding) MessageID() string {
	return string(f.Kind)
}

// Message renders the template of the finding with its data. Placeholders
// without a value are left as they are.
func (f Finding) Message() string {
	return placeholderRe.ReplaceAllStringFunc(messageTemplates[f.Kind], func(m string) string {
		key := m[1 : len(m)-1]
		v, ok := f.Data[key]
		if !ok {
			return m
		}
		return fmt.Sprint(v)
	})
}

// Template returns the raw message template for kind.
func Template(kind Kind) string {
	return messageTemplates[kind]
}

func invalidSvg(reason string) Finding {
	return Finding{
		Kind:     KindInvalidSvg,
		Data:     map[string]any{"error": reason},
		Location: documentStart,
	}
}

func missingDimensions() Finding {
	return Finding{
		Kind:     KindMissingDimensions,
		Location: documentStart,
	}
}

func oversizedImage(filename string, image, svg Dimension) Finding {
	return Finding{
		Kind: KindOversizedImage,
		Data: map[string]any{
			"imageWidth":  image.Width,
			"imageHeight": image.Height,
			"svgWidth":    svg.Width,
			"svgHeight":   svg.Height,
			"filename":    filename,
		},
		Location: documentStart,
	}
}

// ReadError turns a failure to read a file into an invalidSvg finding so that
// IO problems are reported through the same channel as parse errors.
func ReadError(err error) Finding {
	return invalidSvg(err.Error())
}
