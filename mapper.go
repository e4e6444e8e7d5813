package xmlser

import (
	"bytes"
	"encoding/xml"
	"io"
	"reflect"

	"github.com/KimNorgaard/go-xmlser/internal/xmltoken"
)

// Instruction carries the per-call directives handed to a Mapper.
type Instruction struct {
	// OmitNamespaces asks the mapper to associate the empty prefix with the
	// empty namespace URI, which elides xmlns declarations from the output
	// entirely.
	OmitNamespaces bool
}

// Mapper converts between a typed value and its XML element representation,
// driven by the type's declared shape. The package depends only on this
// contract; the default implementation uses encoding/xml struct reflection,
// but any schema- or generator-driven mapper can stand in.
//
// Encode writes v as XML element content (no declaration) to w. Decode reads
// one document from r into the value pointed to by v. Implementations must be
// safe for concurrent use across calls.
type Mapper interface {
	Encode(w io.Writer, v any, inst Instruction) error
	Decode(r io.Reader, v any) error
}

// stdMapper is the default Mapper, backed by encoding/xml.
type stdMapper struct{}

// newStdMapper is the cache's construction callback. The stdlib mapper keeps
// no per-type state; the cache seam exists for Mapper implementations whose
// construction is expensive.
func newStdMapper(reflect.Type) Mapper { return stdMapper{} }

func (stdMapper) Encode(w io.Writer, v any, inst Instruction) error {
	if !inst.OmitNamespaces {
		return xml.NewEncoder(w).Encode(v)
	}
	var buf bytes.Buffer
	if err := xml.NewEncoder(&buf).Encode(v); err != nil {
		return err
	}
	return stripNamespaces(w, &buf)
}

func (stdMapper) Decode(r io.Reader, v any) error {
	return newGuardedDecoder(r).Decode(v)
}

// stripNamespaces rewrites the document with every xmlns declaration dropped
// and every element and attribute prefix cleared. Raw tokens keep prefixes
// lexical, so clearing Name.Space removes the prefix text itself.
func stripNamespaces(w io.Writer, r io.Reader) error {
	dec := xml.NewDecoder(r)
	tw := xmltoken.NewWriter(w)
	for {
		tok, err := dec.RawToken()
		if err == io.EOF {
			return tw.Flush()
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			t.Name.Space = ""
			kept := make([]xml.Attr, 0, len(t.Attr))
			for _, a := range t.Attr {
				if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
					continue
				}
				a.Name.Space = ""
				kept = append(kept, a)
			}
			t.Attr = kept
			if err := tw.WriteToken(t); err != nil {
				return err
			}
		case xml.EndElement:
			t.Name.Space = ""
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
