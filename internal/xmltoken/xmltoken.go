// Package xmltoken provides shared helpers for working with raw XML tokens:
// the XML-Schema-instance nil marker convention and a forward-only token
// writer that preserves the lexical shape of a document.
package xmltoken

import (
	"bufio"
	"encoding/xml"
	"io"
	"strings"
)

// XSINamespace is the XML-Schema-instance namespace URI, the namespace of the
// standard nil marker attribute.
const XSINamespace = "http://www.w3.org/2001/XMLSchema-instance"

// Minimal escaping: whitespace stays literal so copied documents keep their
// exact spacing. xml.EscapeText would rewrite newlines and tabs as character
// references.
var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", `"`, "&quot;")
)

// Truthy reports whether an attribute value marks an element as nil. Only the
// single characters "1", "t", "T" and the case-insensitive literal "true"
// count; every other value (including "0" and "false") does not.
func Truthy(v string) bool {
	switch v {
	case "1", "t", "T":
		return true
	}
	return strings.EqualFold(v, "true")
}

// Writer emits raw XML tokens to an underlying stream without adding
// indentation or reordering anything. Token names are written as they were
// read (prefixes intact, namespaces untranslated), so a document copied
// token-by-token keeps its original shape.
type Writer struct {
	w *bufio.Writer
}

// NewWriter returns a Writer emitting to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// qualified returns the lexical form of a raw token name. For tokens obtained
// via RawToken, Space holds the prefix, not a resolved URI.
func qualified(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

// WriteToken writes a single raw token.
func (tw *Writer) WriteToken(tok xml.Token) error {
	switch t := tok.(type) {
	case xml.StartElement:
		return tw.writeStart(t)
	case xml.EndElement:
		tw.w.WriteString("</")
		tw.w.WriteString(qualified(t.Name))
		return tw.w.WriteByte('>')
	case xml.CharData:
		_, err := textEscaper.WriteString(tw.w, string(t))
		return err
	case xml.Comment:
		tw.w.WriteString("<!--")
		tw.w.Write(t)
		_, err := tw.w.WriteString("-->")
		return err
	case xml.ProcInst:
		tw.w.WriteString("<?")
		tw.w.WriteString(t.Target)
		if len(t.Inst) > 0 {
			tw.w.WriteByte(' ')
			tw.w.Write(t.Inst)
		}
		_, err := tw.w.WriteString("?>")
		return err
	case xml.Directive:
		tw.w.WriteString("<!")
		tw.w.Write(t)
		return tw.w.WriteByte('>')
	}
	return nil
}

func (tw *Writer) writeStart(t xml.StartElement) error {
	tw.w.WriteByte('<')
	tw.w.WriteString(qualified(t.Name))
	for _, a := range t.Attr {
		tw.w.WriteByte(' ')
		tw.w.WriteString(qualified(a.Name))
		tw.w.WriteString(`="`)
		if _, err := attrEscaper.WriteString(tw.w, a.Value); err != nil {
			return err
		}
		tw.w.WriteByte('"')
	}
	return tw.w.WriteByte('>')
}

// Flush writes any buffered output to the underlying stream.
func (tw *Writer) Flush() error {
	return tw.w.Flush()
}
