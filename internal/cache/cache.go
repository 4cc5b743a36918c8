// Package cache - ограниченный потокобезопасный кэш результатов разбора.
package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/twmb/murmur3"
)

// Sharded - набор LRU-кэшей; шард выбирается по хэшу murmur3 ключа,
// чтобы параллельные разборы реже конкурировали за одну блокировку.
// Значения хранятся и отдаются копиями: вызывающий может менять срез.
type Sharded[V any] struct {
	shards []*lru.Cache[string, []V]
}

// New создаёт кэш суммарной ёмкости size, разделённый на shards частей.
// При size <= 0 возвращается nil: nil-кэш ничего не хранит.
func New[V any](size, shards int) (*Sharded[V], error) {
	if size <= 0 {
		return nil, nil
	}
	if shards <= 0 {
		shards = 1
	}
	shards = min(shards, size)
	per := (size + shards - 1) / shards
	c := &Sharded[V]{shards: make([]*lru.Cache[string, []V], shards)}
	for i := range c.shards {
		shard, err := lru.New[string, []V](per)
		if err != nil {
			return nil, err
		}
		c.shards[i] = shard
	}
	return c, nil
}

func (c *Sharded[V]) shard(key string) *lru.Cache[string, []V] {
	return c.shards[murmur3.StringSum64(key)%uint64(len(c.shards))]
}

// Get возвращает копию сохранённого значения.
func (c *Sharded[V]) Get(key string) ([]V, bool) {
	if c == nil {
		return nil, false
	}
	v, ok := c.shard(key).Get(key)
	if !ok {
		return nil, false
	}
	return append([]V(nil), v...), true
}

// Add сохраняет копию значения.
func (c *Sharded[V]) Add(key string, value []V) {
	if c == nil {
		return
	}
	c.shard(key).Add(key, append([]V(nil), value...))
}

// Len возвращает количество элементов во всех шардах.
func (c *Sharded[V]) Len() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, s := range c.shards {
		n += s.Len()
	}
	return n
}

// Purge очищает кэш.
func (c *Sharded[V]) Purge() {
	if c == nil {
		return
	}
	for _, s := range c.shards {
		s.Purge()
	}
}
