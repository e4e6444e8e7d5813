package xmlser

import (
	"bytes"
	"fmt"
	"io"
	"reflect"

	"github.com/KimNorgaard/go-xmlser/internal/charset"
	"github.com/KimNorgaard/go-xmlser/internal/nilfilter"
)

// BufferPool is the scoped byte-buffer provider used by the filter path. A
// pool must tolerate concurrent Get/Put from multiple goroutines. Each
// serialization call borrows exactly one buffer and returns it exactly once,
// on every exit path.
type BufferPool interface {
	Get() *bytes.Buffer
	Put(*bytes.Buffer)
}

// Encoder writes XML-serialized values to an output stream.
type Encoder struct {
	w     io.Writer
	codec *Codec
	opts  []Option
}

// Encode writes the XML encoding of v, declaration first, to the stream.
//
// A nil value (nil interface or nil pointer) is a true no-op: zero bytes are
// written. When nil-element removal is off, the mapper writes directly to the
// destination with no intermediate buffering. When it is on, the mapper
// renders into a pooled temporary buffer and the nil-filter stage copies the
// buffer to the destination.
func (e *Encoder) Encode(v any) (err error) {
	o, rerr := e.codec.resolve(e.opts)
	if rerr != nil {
		return rerr
	}
	if e.w == nil {
		return fmt.Errorf("xmlser: Encode(nil writer)")
	}
	if o.closeStream {
		if c, ok := e.w.(io.Closer); ok {
			defer func() {
				if cerr := c.Close(); err == nil {
					err = cerr
				}
			}()
		}
	}
	if isAbsent(v) {
		return nil
	}

	dst, flush, cerr := charset.NewWriter(e.w, o.encoding)
	if cerr != nil {
		return &UnsupportedEncodingError{Name: o.encoding, Err: cerr}
	}
	if _, err := fmt.Fprintf(dst, `<?xml version="1.0" encoding=%q?>`, o.encoding); err != nil {
		return err
	}

	m := o.mapperFor(reflect.TypeOf(v))
	inst := Instruction{OmitNamespaces: o.omitNamespaces}

	if !o.omitNil {
		if err := m.Encode(dst, v, inst); err != nil {
			return err
		}
		return flush()
	}

	buf := o.pool.Get()
	defer o.pool.Put(buf)
	if err := m.Encode(buf, v, inst); err != nil {
		return err
	}
	cfg := nilfilter.Config{
		Strategy: nilfilter.Strategy(o.strategy),
		Strict:   o.strictFilter,
	}
	if err := nilfilter.FromBytes(dst, buf.Bytes(), cfg); err != nil {
		return err
	}
	return flush()
}

// isAbsent reports whether v represents a null value: a nil interface or a
// typed nil pointer.
func isAbsent(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
