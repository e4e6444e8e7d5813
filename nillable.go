package xmlser

import (
	"encoding/xml"

	"github.com/KimNorgaard/go-xmlser/internal/xmltoken"
)

// Nillable is an optional value whose absence is serialized as an element
// carrying the XML-Schema-instance nil marker instead of being omitted. It is
// the natural producer of the elements the OmitNilElements filter removes:
// with the filter off the element self-describes as nil, with the filter on
// it disappears from the output.
type Nillable[T any] struct {
	Value *T
}

// Of returns a Nillable holding v.
func Of[T any](v T) Nillable[T] {
	return Nillable[T]{Value: &v}
}

// Null returns an absent Nillable.
func Null[T any]() Nillable[T] {
	return Nillable[T]{}
}

// IsNull reports whether the value is absent.
func (n Nillable[T]) IsNull() bool { return n.Value == nil }

// Get returns the held value and whether one is present.
func (n Nillable[T]) Get() (T, bool) {
	if n.Value == nil {
		var zero T
		return zero, false
	}
	return *n.Value, true
}

// MarshalXML writes either the wrapped value or an empty element marked
// xsi:nil="true" with the xsi namespace declared inline.
func (n Nillable[T]) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if n.Value == nil {
		start.Attr = append(start.Attr,
			xml.Attr{Name: xml.Name{Local: "xmlns:xsi"}, Value: xmltoken.XSINamespace},
			xml.Attr{Name: xml.Name{Local: "xsi:nil"}, Value: "true"},
		)
		if err := e.EncodeToken(start); err != nil {
			return err
		}
		return e.EncodeToken(start.End())
	}
	return e.EncodeElement(*n.Value, start)
}

// UnmarshalXML honors a truthy nil marker (namespaced or bare) by leaving the
// value absent; otherwise it decodes the element content.
func (n *Nillable[T]) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for _, a := range start.Attr {
		if a.Name.Local != "nil" {
			continue
		}
		if a.Name.Space != "" && a.Name.Space != xmltoken.XSINamespace && a.Name.Space != "xsi" {
			continue
		}
		if xmltoken.Truthy(a.Value) {
			n.Value = nil
			return d.Skip()
		}
	}
	var v T
	if err := d.DecodeElement(&v, &start); err != nil {
		return err
	}
	n.Value = &v
	return nil
}
