package xmlser

import (
	"bytes"
	"io"
	"reflect"
	"sync"

	"github.com/KimNorgaard/go-xmlser/internal/bufpool"
	"github.com/KimNorgaard/go-xmlser/internal/charset"
)

// Codec is the composition root of the package: it owns the mapper cache and
// the buffer pool used by the filter path, and carries the base options every
// call starts from. A Codec is safe for concurrent use; independent calls
// share nothing beyond the cache and pool, both of which tolerate concurrent
// access.
type Codec struct {
	opts  []Option
	cache *MapperCache
	pool  BufferPool
}

// New returns a Codec with the given base options. Options passed to
// individual calls are applied on top of these. Invalid options surface as
// errors from the call that uses them.
func New(opts ...Option) *Codec {
	return &Codec{
		opts:  opts,
		cache: NewMapperCache(),
		pool:  bufpool.New(),
	}
}

// resolve builds the effective options for one call: defaults, then the
// codec's base options, then the per-call ones.
func (c *Codec) resolve(extra []Option) (options, error) {
	o := options{
		encoding: charset.DefaultName,
		strategy: StrategyStream,
		cache:    c.cache,
		pool:     c.pool,
	}
	for _, opt := range c.opts {
		if err := opt(&o); err != nil {
			return options{}, err
		}
	}
	for _, opt := range extra {
		if err := opt(&o); err != nil {
			return options{}, err
		}
	}
	return o, nil
}

// Marshal returns the XML encoding of v, declaration included. A nil value
// (nil interface or nil pointer) yields a nil slice and no error.
func (c *Codec) Marshal(v any, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.NewEncoder(&buf, opts...).Encode(v); err != nil {
		return nil, err
	}
	if buf.Len() == 0 {
		return nil, nil
	}
	return buf.Bytes(), nil
}

// Unmarshal parses the XML-encoded data and stores the result in the value
// pointed to by v. Empty input leaves v at its current (default) value.
func (c *Codec) Unmarshal(data []byte, v any, opts ...Option) error {
	return c.NewDecoder(bytes.NewReader(data), opts...).Decode(v)
}

// NewEncoder returns an encoder writing to w with this codec's cache, pool
// and options.
func (c *Codec) NewEncoder(w io.Writer, opts ...Option) *Encoder {
	return &Encoder{w: w, codec: c, opts: opts}
}

// NewDecoder returns a decoder reading from r with this codec's cache and
// options.
func (c *Codec) NewDecoder(r io.Reader, opts ...Option) *Decoder {
	return &Decoder{r: r, codec: c, opts: opts}
}

// mapperFor returns the structural mapper for t, honoring a WithMapper
// override and keying the cache by the element type behind any pointers.
func (o *options) mapperFor(t reflect.Type) Mapper {
	if o.mapper != nil {
		return o.mapper
	}
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return o.cache.Get(t, newStdMapper)
}

// defaultCodec backs the package-level convenience functions, mirroring the
// net/http DefaultClient convention. Callers that need an isolated cache or
// pool construct their own Codec with New.
var defaultCodec = sync.OnceValue(func() *Codec { return New() })

// Marshal returns the XML encoding of v using the default Codec.
func Marshal(v any, opts ...Option) ([]byte, error) {
	return defaultCodec().Marshal(v, opts...)
}

// Unmarshal parses the XML-encoded data into v using the default Codec.
func Unmarshal(data []byte, v any, opts ...Option) error {
	return defaultCodec().Unmarshal(data, v, opts...)
}

// NewEncoder returns an encoder writing to w backed by the default Codec.
func NewEncoder(w io.Writer, opts ...Option) *Encoder {
	return defaultCodec().NewEncoder(w, opts...)
}

// NewDecoder returns a decoder reading from r backed by the default Codec.
func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	return defaultCodec().NewDecoder(r, opts...)
}
