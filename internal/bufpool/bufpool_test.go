package bufpool

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPool(t *testing.T) {
	t.Run("Get Returns Empty Buffer", func(t *testing.T) {
		p := New()
		b := p.Get()
		b.WriteString("dirty")
		p.Put(b)

		got := p.Get()
		require.Zero(t, got.Len(), "pooled buffers must come back reset")
	})

	t.Run("Put Nil Is Safe", func(t *testing.T) {
		p := New()
		p.Put(nil)
	})

	t.Run("Oversized Buffers Dropped", func(t *testing.T) {
		p := New()
		b := p.Get()
		b.WriteString(strings.Repeat("x", maxRetainedSize+1))
		p.Put(b)
		require.Positive(t, b.Len(), "dropped buffer is left untouched")
	})

	t.Run("Concurrent Borrow And Return", func(t *testing.T) {
		p := New()
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 1000; j++ {
					b := p.Get()
					b.WriteString("x")
					p.Put(b)
				}
			}()
		}
		wg.Wait()
	})
}
