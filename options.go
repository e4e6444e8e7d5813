package xmlser

import (
	"fmt"
	"strings"
)

// Strategy selects the nil-filter implementation tried first on the filter
// path. Both strategies produce equivalent output on well-formed input.
type Strategy int

const (
	// StrategyStream filters in a single forward pass without materializing
	// the document. This is the default.
	StrategyStream Strategy = iota
	// StrategyDOM loads the document into an element tree, collects every
	// nil-marked element, removes them, and serializes the tree back.
	StrategyDOM
)

// options holds the effective configuration of one call.
type options struct {
	encoding       string
	omitNamespaces bool
	omitNil        bool
	strictFilter   bool
	strategy       Strategy
	closeStream    bool
	pool           BufferPool
	cache          *MapperCache
	mapper         Mapper
}

// Option configures a Codec or a single call.
type Option func(*options) error

// WithEncoding sets the IANA character-set name used to tag the XML
// declaration and to transcode the byte stream. The default is UTF-8. An
// unknown name surfaces as an UnsupportedEncodingError from the call.
func WithEncoding(name string) Option {
	return func(o *options) error {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("xmlser: encoding name must not be empty")
		}
		o.encoding = name
		return nil
	}
}

// OmitNamespaces instructs the mapper to bind the empty prefix to the empty
// namespace URI, eliding every xmlns declaration from serialized output. The
// suppression is total; there is no per-namespace control.
func OmitNamespaces() Option {
	return func(o *options) error {
		o.omitNamespaces = true
		return nil
	}
}

// OmitNilElements removes every element carrying a truthy nil marker from
// serialized output. Enabling it routes serialization through a temporary
// buffer and the filter stage instead of writing straight to the destination.
func OmitNilElements() Option {
	return func(o *options) error {
		o.omitNil = true
		return nil
	}
}

// StrictFiltering makes filter-stage failures surface as errors. Without it,
// content the filter cannot parse passes through unfiltered when the source
// can be re-read from the start.
func StrictFiltering() Option {
	return func(o *options) error {
		o.strictFilter = true
		return nil
	}
}

// WithFilterStrategy selects which nil-filter implementation runs first.
func WithFilterStrategy(s Strategy) Option {
	return func(o *options) error {
		if s != StrategyStream && s != StrategyDOM {
			return fmt.Errorf("xmlser: unknown filter strategy %d", s)
		}
		o.strategy = s
		return nil
	}
}

// WithBufferPool supplies the scoped byte-buffer provider used by the filter
// path. The pool must support concurrent use; the package borrows and returns
// exactly one buffer per call, on every exit path.
func WithBufferPool(p BufferPool) Option {
	return func(o *options) error {
		if p == nil {
			return fmt.Errorf("xmlser: buffer pool must not be nil")
		}
		o.pool = p
		return nil
	}
}

// WithMapper overrides the structural mapper for every type, bypassing the
// cache.
func WithMapper(m Mapper) Option {
	return func(o *options) error {
		if m == nil {
			return fmt.Errorf("xmlser: mapper must not be nil")
		}
		o.mapper = m
		return nil
	}
}

// WithMapperCache substitutes the mapper cache, allowing several Codecs to
// share one set of constructed mappers.
func WithMapperCache(c *MapperCache) Option {
	return func(o *options) error {
		if c == nil {
			return fmt.Errorf("xmlser: mapper cache must not be nil")
		}
		o.cache = c
		return nil
	}
}

// CloseStream closes the underlying writer or reader (when it implements
// io.Closer) as the Encode or Decode call finishes, on every exit path. By
// default streams are left open for the caller to manage.
func CloseStream() Option {
	return func(o *options) error {
		o.closeStream = true
		return nil
	}
}
