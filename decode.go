package xmlser

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/KimNorgaard/go-xmlser/internal/charset"
)

// Decoder reads an XML-serialized value from an input stream.
type Decoder struct {
	r     io.Reader
	codec *Codec
	opts  []Option
}

// Decode reads one XML document from the input and stores the result in the
// value pointed to by v.
//
// Empty input is not an error: when the stream's remaining length is
// determinably zero, or the content holds no XML token at all (empty,
// BOM-only or whitespace-only), v keeps its default value. A leading UTF-8
// byte-order marker is stripped. Document type definitions are rejected with
// ErrDoctype on every call regardless of input source; external entities are
// never resolved. All other reader and mapping errors propagate unchanged.
func (d *Decoder) Decode(v any) (err error) {
	o, rerr := d.codec.resolve(d.opts)
	if rerr != nil {
		return rerr
	}
	if d.r == nil {
		return fmt.Errorf("xmlser: Decode(nil reader)")
	}
	if o.closeStream {
		if c, ok := d.r.(io.Closer); ok {
			defer func() {
				if cerr := c.Close(); err == nil {
					err = cerr
				}
			}()
		}
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("xmlser: Decode(non-pointer %T or nil)", v)
	}

	if n, known := remainingLength(d.r); known && n == 0 {
		return nil
	}

	r, cerr := charset.NewReader(d.r, o.encoding)
	if cerr != nil {
		return &UnsupportedEncodingError{Name: o.encoding, Err: cerr}
	}
	r = skipBOM(r)

	m := o.mapperFor(rv.Type())
	if err := m.Decode(r, v); err != nil {
		// A bare io.EOF means no token was found at all: absent input, so
		// the default value stands. Truncated documents surface differently
		// (xml.SyntaxError) and still propagate.
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return nil
}

// remainingLength introspects the unread length of r without consuming it.
// Only sources that expose length or position support this; for everything
// else the second result is false.
func remainingLength(r io.Reader) (int64, bool) {
	switch s := r.(type) {
	case *bytes.Reader:
		return int64(s.Len()), true
	case *strings.Reader:
		return int64(s.Len()), true
	case *bytes.Buffer:
		return int64(s.Len()), true
	}
	s, ok := r.(io.Seeker)
	if !ok {
		return 0, false
	}
	cur, err := s.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, false
	}
	end, err := s.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, false
	}
	if _, err := s.Seek(cur, io.SeekStart); err != nil {
		return 0, false
	}
	return end - cur, true
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// skipBOM strips a leading UTF-8 byte-order marker, if present.
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if b, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(b, utf8BOM) {
		br.Discard(len(utf8BOM))
	}
	return br
}

// doctypeGuard rejects document type definitions before structural decoding
// sees them. Combined with encoding/xml's refusal to resolve anything beyond
// the five predeclared entities, this closes off entity-expansion and
// external-resource-fetch input. This is a security requirement, not an
// optimization, and applies to every deserialization.
type doctypeGuard struct {
	d *xml.Decoder
}

func (g doctypeGuard) Token() (xml.Token, error) {
	tok, err := g.d.Token()
	if err != nil {
		return nil, err
	}
	if dir, ok := tok.(xml.Directive); ok && isDoctype(dir) {
		return nil, ErrDoctype
	}
	return tok, nil
}

func isDoctype(dir xml.Directive) bool {
	s := strings.TrimSpace(string(dir))
	return len(s) >= 7 && strings.EqualFold(s[:7], "DOCTYPE")
}

// newGuardedDecoder returns the hardened decoder used for all structural
// decoding. The stream handed to it is already UTF-8 (the configured charset
// is transcoded upstream), so whatever encoding the declaration names is
// accepted as-is rather than triggering a second conversion.
func newGuardedDecoder(r io.Reader) *xml.Decoder {
	inner := xml.NewDecoder(r)
	inner.Strict = true
	inner.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) { return input, nil }
	return xml.NewTokenDecoder(doctypeGuard{d: inner})
}
