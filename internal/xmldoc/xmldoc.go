// Package xmldoc parses raw XML into a generic element tree with
// subtree-scoped lookups. Lookups never cross into sibling subtrees, which
// keeps repeated structures (feed entries, CAP areas) from contaminating
// each other.
package xmldoc

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/golgrax/bayanihan-alerts/internal/domain"
)

// Element is one node of the parsed tree. Name is the namespace-local tag
// name. Text accumulates the character data directly under the element.
type Element struct {
	Name     string
	Text     string
	Children []*Element

	attrs map[string]string
}

// Parse builds an element tree from raw XML. Returns an error wrapping
// domain.ErrMalformedDocument when the input is not well-formed or has no
// root element. No side effects.
func Parse(data []byte) (*Element, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	var root *Element
	var stack []*Element

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrMalformedDocument, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Name: t.Name.Local}
			if len(t.Attr) > 0 {
				el.attrs = make(map[string]string, len(t.Attr))
				for _, a := range t.Attr {
					el.attrs[a.Name.Local] = a.Value
				}
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("%w: multiple root elements", domain.ErrMalformedDocument)
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				cur := stack[len(stack)-1]
				cur.Text += string(t)
			}
		}
	}

	if root == nil {
		return nil, fmt.Errorf("%w: no root element", domain.ErrMalformedDocument)
	}
	return root, nil
}

// Attr returns the value of the named attribute, or "" when absent.
func (e *Element) Attr(name string) string {
	return e.attrs[name]
}

// Find returns the first descendant with the given local name, depth-first
// in document order, or nil. The receiver itself is not considered.
func (e *Element) Find(name string) *Element {
	for _, c := range e.Children {
		if c.Name == name {
			return c
		}
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// FindText returns the trimmed text of the first descendant with the given
// local name, or "" when no such element exists.
func (e *Element) FindText(name string) string {
	el := e.Find(name)
	if el == nil {
		return ""
	}
	return strings.TrimSpace(el.Text)
}

// ChildElements returns the direct children with the given local name in
// document order.
func (e *Element) ChildElements(name string) []*Element {
	var out []*Element
	for _, c := range e.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}
