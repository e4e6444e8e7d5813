// Package nilfilter removes XML elements marked nil by the XML-Schema-instance
// convention. It offers a single-pass streaming strategy and a tree-based one;
// both must produce equivalent output on well-formed input.
package nilfilter

import (
	"bytes"
	"io"
)

// Strategy selects which filter implementation runs first.
type Strategy int

const (
	// StrategyStream is the forward-only raw-token copy. It never
	// materializes the document and is the default.
	StrategyStream Strategy = iota
	// StrategyDOM loads the document into a tree, removes marked elements
	// collect-then-mutate, and serializes it back.
	StrategyDOM
)

// Config controls strategy selection and failure behavior.
type Config struct {
	Strategy Strategy
	// Strict disables the verbatim-copy fallback: when set, content that no
	// strategy can filter is an error instead of passing through unfiltered.
	Strict bool
}

type filterFunc func(io.Writer, io.Reader) error

func (c Config) order() (primary, secondary filterFunc) {
	if c.Strategy == StrategyDOM {
		return DOM, Stream
	}
	return Stream, DOM
}

// FromReader filters src into dst. Each attempt renders into a scratch buffer
// so that dst only ever sees one complete result. When src is rewindable the
// stage degrades on a parse failure: first to the alternate strategy, then
// (unless Strict) to a verbatim copy of the original content. A source that
// cannot be rewound propagates the first failure as-is.
func FromReader(dst io.Writer, src io.Reader, cfg Config) error {
	rs, seekable := src.(io.ReadSeeker)
	var scratch bytes.Buffer

	run := func(f filterFunc) (filtered bool, err error) {
		scratch.Reset()
		if err := f(&scratch, src); err != nil {
			return false, err
		}
		_, err = dst.Write(scratch.Bytes())
		return true, err
	}

	primary, secondary := cfg.order()

	filtered, err := run(primary)
	if filtered || !seekable {
		return err
	}

	if _, serr := rs.Seek(0, io.SeekStart); serr != nil {
		return err
	}
	if filtered, derr := run(secondary); filtered {
		return derr
	}
	if cfg.Strict {
		return err
	}

	if _, serr := rs.Seek(0, io.SeekStart); serr != nil {
		return err
	}
	_, cerr := io.Copy(dst, src)
	return cerr
}

// FromBytes filters an in-memory document, which is always rewindable.
func FromBytes(dst io.Writer, src []byte, cfg Config) error {
	return FromReader(dst, bytes.NewReader(src), cfg)
}
