package cache

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultMemoryCacheSize = 4096

// MemoryProvider is an LRU-bounded in-process cache.
type MemoryProvider struct {
	cache *lru.Cache[string, memoryItem]
}

type memoryItem struct {
	value     string
	expiresAt time.Time
}

func NewMemoryProvider() (*MemoryProvider, error) {
	c, err := lru.New[string, memoryItem](defaultMemoryCacheSize)
	if err != nil {
		return nil, err
	}
	return &MemoryProvider{cache: c}, nil
}

func (m *MemoryProvider) Get(_ context.Context, key string) (string, error) {
	item, ok := m.cache.Get(key)
	if !ok {
		return "", ErrNotFound
	}
	if time.Now().After(item.expiresAt) {
		m.cache.Remove(key)
		return "", ErrNotFound
	}
	return item.value, nil
}

func (m *MemoryProvider) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	m.cache.Add(key, memoryItem{value: value, expiresAt: time.Now().Add(ttl)})
	return nil
}

func (m *MemoryProvider) Delete(_ context.Context, key string) error {
	m.cache.Remove(key)
	return nil
}

func (m *MemoryProvider) Close() error {
	return nil
}
