package xmlser

import "errors"

// ErrDoctype is returned when deserialization input contains a document type
// definition. DTD processing is refused unconditionally; see Decoder.
var ErrDoctype = errors.New("xmlser: document type definitions are not allowed")

// An UnsupportedEncodingError reports a character-set name that could not be
// resolved to a usable encoding.
type UnsupportedEncodingError struct {
	Name string
	Err  error
}

func (e *UnsupportedEncodingError) Error() string {
	return "xmlser: unsupported encoding " + e.Name + ": " + e.Err.Error()
}

func (e *UnsupportedEncodingError) Unwrap() error { return e.Err }
