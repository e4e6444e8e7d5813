package nilfilter

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/KimNorgaard/go-xmlser/internal/xmltoken"
)

// scope tracks the namespace prefix bindings declared by one open element.
// bindings is nil for elements that declare nothing.
type scope struct {
	name     xml.Name
	bindings map[string]string
}

// prefixStack resolves namespace prefixes against the chain of open elements.
type prefixStack []scope

func (s prefixStack) resolve(prefix string) string {
	for i := len(s) - 1; i >= 0; i-- {
		if uri, ok := s[i].bindings[prefix]; ok {
			return uri
		}
	}
	return ""
}

// bindingsOf collects the xmlns declarations carried by a start element. Raw
// tokens leave prefixes untranslated, so a declaration appears either as
// xmlns="uri" (default) or as xmlns:p="uri" (Space "xmlns", Local "p").
func bindingsOf(t xml.StartElement) map[string]string {
	var m map[string]string
	for _, a := range t.Attr {
		if a.Name.Space != "xmlns" {
			continue
		}
		if m == nil {
			m = make(map[string]string, 1)
		}
		m[a.Name.Local] = a.Value
	}
	return m
}

// markedNil reports whether a start element carries a truthy nil marker:
// either an attribute whose prefix resolves to the XML-Schema-instance
// namespace, or, defensively, a bare attribute named nil.
func markedNil(t xml.StartElement, stack prefixStack) bool {
	for _, a := range t.Attr {
		if a.Name.Local != "nil" {
			continue
		}
		switch {
		case a.Name.Space == "":
			if xmltoken.Truthy(a.Value) {
				return true
			}
		case a.Name.Space != "xmlns" && stack.resolve(a.Name.Space) == xmltoken.XSINamespace:
			if xmltoken.Truthy(a.Value) {
				return true
			}
		}
	}
	return false
}

// Stream copies the XML document from r to w in a single forward pass,
// omitting every element subtree whose nil marker is truthy. Content outside
// removed subtrees (text, comments, processing instructions, the XML
// declaration) passes through unchanged and no indentation is added.
//
// The copy validates basic well-formedness as it goes: end tags must match
// their start tags and every open element must be closed before EOF. Raw
// tokens alone do not enforce this, and the fallback contract depends on
// malformed input being detected here.
func Stream(w io.Writer, r io.Reader) error {
	dec := xml.NewDecoder(r)
	tw := xmltoken.NewWriter(w)
	var stack prefixStack

	for {
		tok, err := dec.RawToken()
		if err == io.EOF {
			if len(stack) > 0 {
				return fmt.Errorf("unexpected EOF: element <%s> not closed", lexicalName(stack[len(stack)-1].name))
			}
			return tw.Flush()
		}
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			stack = append(stack, scope{name: t.Name, bindings: bindingsOf(t)})
			if markedNil(t, stack) {
				stack = stack[:len(stack)-1]
				if err := skipSubtree(dec); err != nil {
					return err
				}
				continue
			}
			if err := tw.WriteToken(t); err != nil {
				return err
			}
		case xml.EndElement:
			if len(stack) == 0 {
				return fmt.Errorf("unexpected end element </%s>", lexicalName(t.Name))
			}
			top := stack[len(stack)-1]
			if top.name != t.Name {
				return fmt.Errorf("element <%s> closed by </%s>", lexicalName(top.name), lexicalName(t.Name))
			}
			stack = stack[:len(stack)-1]
			if err := tw.WriteToken(t); err != nil {
				return err
			}
		default:
			if err := tw.WriteToken(tok); err != nil {
				return err
			}
		}
	}
}

// skipSubtree consumes tokens up to and including the end element matching
// the start element just read, without emitting anything. Descendants of a
// removed element are never inspected for markers of their own.
func skipSubtree(dec *xml.Decoder) error {
	depth := 1
	for depth > 0 {
		tok, err := dec.RawToken()
		if err == io.EOF {
			return io.ErrUnexpectedEOF
		}
		if err != nil {
			return err
		}
		switch tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return nil
}

func lexicalName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}
