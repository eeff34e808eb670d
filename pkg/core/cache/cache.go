package cache

import (
	"sync"
	"time"
)

// ResultCache 计算结果缓存接口（对外导出）
type ResultCache interface {
	// Set 设置缓存值
	// key: 输入指纹
	// result: 结果数据
	// ttl: 缓存有效期
	Set(key string, result interface{}, ttl time.Duration) error

	// Get 获取缓存值
	// 返回: 结果数据和是否存在
	Get(key string) (interface{}, bool)

	// Delete 删除缓存值
	Delete(key string) error

	// Clear 清空所有缓存
	Clear() error

	// Len 返回当前条目数（含尚未清理的过期条目）
	Len() int

	// Close 释放后台资源
	Close()
}

// cacheEntry 缓存条目（内部使用）
type cacheEntry struct {
	value      interface{}
	expireTime time.Time
}

// MemoryResultCache 内存结果缓存实现（对外导出）
type MemoryResultCache struct {
	mu       sync.RWMutex
	cache    map[string]*cacheEntry
	stopOnce sync.Once
	stop     chan struct{}
}

// NewMemoryResultCache 创建内存结果缓存实例（对外导出）
// cleanInterval: 过期条目清理周期，<=0 时默认每分钟清理一次
func NewMemoryResultCache(cleanInterval time.Duration) *MemoryResultCache {
	if cleanInterval <= 0 {
		cleanInterval = time.Minute
	}
	c := &MemoryResultCache{
		cache: make(map[string]*cacheEntry),
		stop:  make(chan struct{}),
	}
	// 启动清理协程，定期清理过期缓存
	go c.cleanupExpired(cleanInterval)
	return c
}

// Set 设置缓存值
func (c *MemoryResultCache) Set(key string, result interface{}, ttl time.Duration) error {
	if key == "" {
		return nil // 空key，忽略
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache[key] = &cacheEntry{
		value:      result,
		expireTime: time.Now().Add(ttl),
	}
	return nil
}

// Get 获取缓存值
func (c *MemoryResultCache) Get(key string) (interface{}, bool) {
	if key == "" {
		return nil, false
	}

	c.mu.RLock()
	entry, exists := c.cache[key]
	c.mu.RUnlock()
	if !exists {
		return nil, false
	}

	// 已过期，删除并返回不存在
	if time.Now().After(entry.expireTime) {
		c.mu.Lock()
		if current, ok := c.cache[key]; ok && current == entry {
			delete(c.cache, key)
		}
		c.mu.Unlock()
		return nil, false
	}

	return entry.value, true
}

// Delete 删除缓存值
func (c *MemoryResultCache) Delete(key string) error {
	if key == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.cache, key)
	return nil
}

// Clear 清空所有缓存
func (c *MemoryResultCache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache = make(map[string]*cacheEntry)
	return nil
}

// Len 返回当前条目数
func (c *MemoryResultCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

// Close 停止清理协程
func (c *MemoryResultCache) Close() {
	c.stopOnce.Do(func() { close(c.stop) })
}

// cleanupExpired 清理过期缓存（内部方法）
func (c *MemoryResultCache) cleanupExpired(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.removeExpired(time.Now())
		}
	}
}

func (c *MemoryResultCache) removeExpired(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, entry := range c.cache {
		if now.After(entry.expireTime) {
			delete(c.cache, key)
		}
	}
}

// 确保实现接口
var _ ResultCache = (*MemoryResultCache)(nil)
