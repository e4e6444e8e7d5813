// Package charset resolves IANA character-set names and wraps byte streams
// with the matching transcoders from golang.org/x/text.
package charset

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// DefaultName is the encoding assumed when the caller specifies none.
const DefaultName = "UTF-8"

// IsUTF8 reports whether name denotes UTF-8 (or plain ASCII, which needs no
// transcoding either).
func IsUTF8(name string) bool {
	switch strings.ToUpper(name) {
	case "", "UTF-8", "UTF8", "US-ASCII", "ASCII":
		return true
	}
	return false
}

// Lookup resolves an IANA charset name to its encoding. UTF-8 aliases
// resolve to nil, meaning no transcoding is required.
func Lookup(name string) (encoding.Encoding, error) {
	if IsUTF8(name) {
		return nil, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	if enc == nil {
		// The index knows the name but has no implementation for it.
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
	return enc, nil
}

// NewWriter wraps w so that UTF-8 input is written out in the named charset.
// The returned close function flushes any partial transform state; it must be
// called before the destination is used, and never closes w itself. For UTF-8
// the writer is returned unwrapped with a no-op close.
func NewWriter(w io.Writer, name string) (io.Writer, func() error, error) {
	enc, err := Lookup(name)
	if err != nil {
		return nil, nil, err
	}
	if enc == nil {
		return w, func() error { return nil }, nil
	}
	tw := transform.NewWriter(w, enc.NewEncoder())
	return tw, tw.Close, nil
}

// NewReader wraps r so that content in the named charset is read as UTF-8.
func NewReader(r io.Reader, name string) (io.Reader, error) {
	enc, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return r, nil
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}
