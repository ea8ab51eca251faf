package cachelru

import (
	"fmt"

	"github.com/hashicorp/golang-lru"

	"github.com/mine-games/mine/internal/cache"
)

func NewLRU(size int) (*LRU, error) {
	c, err := lru.NewARC(size)
	if err != nil {
		return nil, fmt.Errorf("new lru arc cache: %w", err)
	}

	return &LRU{cache: c}, nil
}

var _ cache.Cache = (*LRU)(nil)

// LRU adapts hashicorp's ARC cache to the cache.Cache interface.
type LRU struct {
	cache *lru.ARCCache
}

func (c *LRU) Get(key any) (any, bool) {
	return c.cache.Get(key)
}

func (c *LRU) Add(key, value any) {
	c.cache.Add(key, value)
}

func (c *LRU) Keys() []any {
	return c.cache.Keys()
}

func (c *LRU) Delete(key any) {
	c.cache.Remove(key)
}
