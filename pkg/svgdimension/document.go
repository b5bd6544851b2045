package svgdimension

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"regexp"

	"golang.org/x/net/html/charset"
)

const (
	xlinkNamespace = "http://www.w3.org/1999/xlink"
	xlinkPrefix    = "xlink"
)

var utf8BOM = []byte("\xef\xbb\xbf")

// entityDeclRe matches general internal entities in a DOCTYPE subset, for
// example Illustrator's <!ENTITY ns_svg "http://www.w3.org/2000/svg">.
// Parameter and external entities are left alone.
var entityDeclRe = regexp.MustCompile(`<!ENTITY\s+([A-Za-z_][\w.:-]*)\s+(?:"([^"]*)"|'([^']*)')`)

var (
	errEmptyDocument   = errors.New("document is empty")
	errNoRootElement   = errors.New("document has no root element")
	errMultipleRoots   = errors.New("document has more than one root element")
	errTextOutsideRoot = errors.New("text outside of the root element")
)

// Element is a parsed XML element. Only names, attributes and child elements
// are kept; text content is irrelevant for dimension checks.
type Element struct {
	Name     xml.Name
	Attrs    []xml.Attr
	Children []*Element
}

// Document is a transient tree view over an SVG file.
type Document struct {
	root *Element
}

// Parse reads content into a Document. Errors from the XML decoder are
// returned unchanged so their text can be shown to the user.
func Parse(content []byte) (*Document, error) {
	content = bytes.TrimPrefix(content, utf8BOM)
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, errEmptyDocument
	}

	decoder := xml.NewDecoder(bytes.NewReader(content))
	decoder.CharsetReader = charset.NewReaderLabel

	var (
		root  *Element
		stack []*Element
	)

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			t = t.Copy()
			el := &Element{Name: t.Name, Attrs: t.Attr}
			if len(stack) == 0 {
				if root != nil {
					return nil, errMultipleRoots
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.Directive:
			if entities := internalEntities(t); len(entities) > 0 {
				decoder.Entity = entities
			}
		case xml.CharData:
			if len(stack) == 0 && len(bytes.TrimSpace(t)) > 0 {
				return nil, errTextOutsideRoot
			}
		}
	}

	if root == nil {
		return nil, errNoRootElement
	}

	return &Document{root: root}, nil
}

// internalEntities collects the entities declared in a DOCTYPE internal
// subset. The decoder consults its Entity map lazily, so setting it once the
// DOCTYPE has been read covers every element that follows.
func internalEntities(directive xml.Directive) map[string]string {
	if !bytes.HasPrefix(directive, []byte("DOCTYPE")) {
		return nil
	}
	var entities map[string]string
	for _, m := range entityDeclRe.FindAllSubmatch(directive, -1) {
		if entities == nil {
			entities = make(map[string]string)
		}
		value := m[2]
		if value == nil {
			value = m[3]
		}
		// the first declaration of an entity is binding
		if _, ok := entities[string(m[1])]; !ok {
			entities[string(m[1])] = string(value)
		}
	}
	return entities
}

func (d *Document) Root() *Element {
	return d.root
}

// ElementsByTagName returns every element with the given local name, at any
// depth, in document order. The root itself is included when it matches.
func (d *Document) ElementsByTagName(name string) []*Element {
	var found []*Element
	var walk func(el *Element)
	walk = func(el *Element) {
		if el.Name.Local == name {
			found = append(found, el)
		}
		for _, child := range el.Children {
			walk(child)
		}
	}
	walk(d.root)
	return found
}

// Attr returns the value of an attribute that carries no namespace prefix.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name.Space == "" && a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// xlinkAttr looks up xlink:href style attributes. The decoder resolves the
// prefix to the namespace URI when xmlns:xlink is declared and leaves the raw
// prefix otherwise, so both forms are accepted.
func (e *Element) xlinkAttr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name.Local != name {
			continue
		}
		if a.Name.Space == xlinkNamespace || a.Name.Space == xlinkPrefix {
			return a.Value, true
		}
	}
	return "", false
}
