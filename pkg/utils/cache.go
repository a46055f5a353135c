package utils

import (
	"sync"
	"time"
)

// TTLCache 带过期时间的并发安全缓存
// 用于 Token 校验结果、商品编辑会话等短生命周期数据
type TTLCache[V any] struct {
	items sync.Map // key -> *cacheItem[V]
	ttl   time.Duration
	now   func() time.Time
}

// cacheItem 内部结构，包含值和过期时间
type cacheItem[V any] struct {
	value      V
	expiration time.Time
}

// NewTTLCache 创建缓存，ttl 为默认过期时间
func NewTTLCache[V any](ttl time.Duration) *TTLCache[V] {
	return &TTLCache[V]{ttl: ttl, now: time.Now}
}

// Set 使用默认过期时间写入
func (c *TTLCache[V]) Set(key string, value V) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL 指定过期时间写入
func (c *TTLCache[V]) SetWithTTL(key string, value V, ttl time.Duration) {
	c.items.Store(key, &cacheItem[V]{
		value:      value,
		expiration: c.now().Add(ttl),
	})
}

// Get 获取缓存并验证是否过期
func (c *TTLCache[V]) Get(key string) (V, bool) {
	var zero V
	val, ok := c.items.Load(key)
	if !ok {
		return zero, false
	}

	item := val.(*cacheItem[V])
	if c.now().After(item.expiration) {
		c.items.CompareAndDelete(key, val) // 懒删除，不误删并发写入的新值
		return zero, false
	}
	return item.value, true
}

// Touch 续期，key 不存在或已过期时返回 false
// 仅当条目未被并发删除或替换时生效，已删除的 key 不会被重新写入
func (c *TTLCache[V]) Touch(key string) bool {
	val, ok := c.items.Load(key)
	if !ok {
		return false
	}
	item := val.(*cacheItem[V])
	now := c.now()
	if now.After(item.expiration) {
		c.items.CompareAndDelete(key, val)
		return false
	}
	return c.items.CompareAndSwap(key, val, &cacheItem[V]{
		value:      item.value,
		expiration: now.Add(c.ttl),
	})
}

// Delete 删除缓存 (用完即焚)
func (c *TTLCache[V]) Delete(key string) {
	c.items.Delete(key)
}

// Purge 清理所有已过期条目，返回清理数量
func (c *TTLCache[V]) Purge() int {
	now := c.now()
	removed := 0
	c.items.Range(func(key, val any) bool {
		if now.After(val.(*cacheItem[V]).expiration) && c.items.CompareAndDelete(key, val) {
			removed++
		}
		return true
	})
	return removed
}
