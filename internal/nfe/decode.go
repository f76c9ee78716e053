// Package nfe decodes Brazilian electronic invoice (NFe) XML documents and
// normalizes them into canonical delivery records.
//
// Real-world NFe files are inconsistent: elements may or may not carry a
// namespace prefix, a field may show up as an attribute or as a child
// element, and repeated blocks collapse to a single element when only one
// exists. The decoder absorbs all three quirks so callers work against a
// fixed shape.
package nfe

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"entregas/internal/domain"
)

// Element is one node of a decoded document: a local name, its attributes
// and child elements in document order, and accumulated character data.
type Element struct {
	name     string
	attrs    map[string]string
	children []*Element
	text     string
}

// Document is the decoded form of one XML entry. It is transient and
// discarded after normalization.
type Document struct {
	root *Element
}

// Decode parses raw bytes into a Document. Namespace prefixes are dropped,
// so ns:infNFe and infNFe decode to the same name.
func Decode(data []byte) (*Document, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	var root *Element
	var stack []*Element

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrMalformedDocument, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{name: t.Name.Local, attrs: make(map[string]string, len(t.Attr))}
			for _, a := range t.Attr {
				// xmlns declarations are namespace plumbing, not data.
				if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
					continue
				}
				el.attrs[a.Name.Local] = a.Value
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("%w: multiple root elements", domain.ErrMalformedDocument)
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, el)
			}
			stack = append(stack, el)

		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("%w: unbalanced end element", domain.ErrMalformedDocument)
			}
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text += string(t)
			}
		}
	}

	if root == nil {
		return nil, fmt.Errorf("%w: no root element", domain.ErrMalformedDocument)
	}
	if len(stack) != 0 {
		return nil, fmt.Errorf("%w: unclosed element <%s>", domain.ErrMalformedDocument, stack[len(stack)-1].name)
	}
	return &Document{root: root}, nil
}

// Root returns the document's root element.
func (d *Document) Root() *Element { return d.root }

// Name returns the element's local name, without any namespace prefix.
func (e *Element) Name() string {
	if e == nil {
		return ""
	}
	return e.name
}

// Text returns the element's trimmed character data.
func (e *Element) Text() string {
	if e == nil {
		return ""
	}
	return strings.TrimSpace(e.text)
}

// Child returns the first child element with the given name, or nil.
func (e *Element) Child(name string) *Element {
	if e == nil {
		return nil
	}
	for _, c := range e.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// Children returns every child element with the given name in document
// order. A block that appears once and a block that repeats both come back
// as a slice, so callers never branch on cardinality.
func (e *Element) Children(name string) []*Element {
	if e == nil {
		return nil
	}
	var out []*Element
	for _, c := range e.children {
		if c.name == name {
			out = append(out, c)
		}
	}
	return out
}

// Attr returns the named attribute value, or "" when absent.
func (e *Element) Attr(name string) string {
	if e == nil {
		return ""
	}
	return e.attrs[name]
}

// Field resolves a logical name that producers encode either as an
// attribute or as a child element: the attribute wins, the child element's
// text is the fallback.
func (e *Element) Field(name string) string {
	if e == nil {
		return ""
	}
	if v, ok := e.attrs[name]; ok && v != "" {
		return v
	}
	return e.Child(name).Text()
}

// ChildText returns the trimmed text of the first child with the given
// name, or "" when the child is absent.
func (e *Element) ChildText(name string) string {
	return e.Child(name).Text()
}
