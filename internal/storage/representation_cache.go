package storage

import (
	"sync"

	"talentvault-ai-go/internal/types"
)

// RepresentationCache is the in-memory store for candidate representations,
// keyed by embedding ID. Contents live only as long as the process; callers
// that need durability keep their own copy of the source documents.
type RepresentationCache struct {
	mu    sync.RWMutex
	items map[string]*types.Representation
}

// NewRepresentationCache 创建空的表示缓存
func NewRepresentationCache() *RepresentationCache {
	return &RepresentationCache{items: make(map[string]*types.Representation)}
}

// Put 写入表示，相同ID后写覆盖先写
func (c *RepresentationCache) Put(id string, rep *types.Representation) {
	if id == "" || rep == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[id] = rep
}

// Get 按ID读取表示
func (c *RepresentationCache) Get(id string) (*types.Representation, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rep, ok := c.items[id]
	return rep, ok
}

// Snapshot 返回指定ID集合中已缓存的表示；ids为空时返回全部
func (c *RepresentationCache) Snapshot(ids []string) map[string]*types.Representation {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]*types.Representation)
	if len(ids) == 0 {
		for id, rep := range c.items {
			out[id] = rep
		}
		return out
	}
	for _, id := range ids {
		if rep, ok := c.items[id]; ok {
			out[id] = rep
		}
	}
	return out
}

// Len 返回缓存条目数
func (c *RepresentationCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
