package xmlser

import (
	"reflect"
	"sync"
)

// MapperCache retains one constructed Mapper per Go type for its own
// lifetime. Entries are never evicted; the set of distinct types a process
// serializes is assumed small and static.
type MapperCache struct {
	m sync.Map // reflect.Type → Mapper
}

// NewMapperCache returns an empty cache.
func NewMapperCache() *MapperCache {
	return &MapperCache{}
}

// Get returns the mapper cached for t, constructing it with build on first
// use. Construction is idempotent under races: concurrent first uses may each
// run build, but exactly one result is retained and every caller from then on
// sees that instance.
func (c *MapperCache) Get(t reflect.Type, build func(reflect.Type) Mapper) Mapper {
	if m, ok := c.m.Load(t); ok {
		return m.(Mapper)
	}
	m, _ := c.m.LoadOrStore(t, build(t))
	return m.(Mapper)
}

// Len reports the number of cached mappers.
func (c *MapperCache) Len() int {
	n := 0
	c.m.Range(func(any, any) bool { n++; return true })
	return n
}
