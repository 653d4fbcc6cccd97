// Package cache 提供键值存储抽象，供购物车持久化与商品目录读缓存使用。
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"
)

// ErrNotFound 表示键不存在。
// 购物车加载时依赖该错误区分"没有已保存的购物车"与"数据损坏"。
var ErrNotFound = errors.New("cache: key not found")

// Cache 定义键值存储操作接口。
// 值统一以JSON序列化存储；expiration 为 0 表示永不过期。
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
	Ping(ctx context.Context) error
	Close() error
}

// MemoryCache 内存实现（用于开发和测试，进程退出即丢失）
type MemoryCache struct {
	mu   sync.RWMutex
	data map[string]*memoryItem
}

type memoryItem struct {
	value     []byte
	expiresAt time.Time // 零值表示永不过期
}

func (it *memoryItem) expired() bool {
	return !it.expiresAt.IsZero() && time.Now().After(it.expiresAt)
}

// NewMemoryCache 创建内存存储实例
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		data: make(map[string]*memoryItem),
	}
}

// Get 获取键值并反序列化到 dest
func (m *MemoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	m.mu.RLock()
	item, exists := m.data[key]
	m.mu.RUnlock()

	if !exists || item.expired() {
		return ErrNotFound
	}
	return json.Unmarshal(item.value, dest)
}

// Set 序列化并写入键值
func (m *MemoryCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	item := &memoryItem{value: data}
	if expiration > 0 {
		item.expiresAt = time.Now().Add(expiration)
	}

	m.mu.Lock()
	m.data[key] = item
	m.mu.Unlock()
	return nil
}

// Del 删除键
func (m *MemoryCache) Del(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	for _, key := range keys {
		delete(m.data, key)
	}
	m.mu.Unlock()
	return nil
}

// Exists 检查键是否存在
func (m *MemoryCache) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.RLock()
	item, exists := m.data[key]
	m.mu.RUnlock()

	return exists && !item.expired(), nil
}

// Ping 检查连接
func (m *MemoryCache) Ping(ctx context.Context) error {
	return nil
}

// Close 关闭存储
func (m *MemoryCache) Close() error {
	m.mu.Lock()
	m.data = make(map[string]*memoryItem)
	m.mu.Unlock()
	return nil
}

// SetRaw 直接写入原始字节，不做JSON序列化。
// 供测试构造损坏的持久化数据使用。
func (m *MemoryCache) SetRaw(key string, raw []byte) {
	m.mu.Lock()
	m.data[key] = &memoryItem{value: raw}
	m.mu.Unlock()
}

// NullCache 空实现（禁用缓存时使用，所有读取都未命中）
type NullCache struct{}

// NewNullCache 创建空存储实例
func NewNullCache() *NullCache {
	return &NullCache{}
}

func (n *NullCache) Get(ctx context.Context, key string, dest interface{}) error {
	return ErrNotFound
}

func (n *NullCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return nil
}

func (n *NullCache) Del(ctx context.Context, keys ...string) error {
	return nil
}

func (n *NullCache) Exists(ctx context.Context, key string) (bool, error) {
	return false, nil
}

func (n *NullCache) Ping(ctx context.Context) error {
	return nil
}

func (n *NullCache) Close() error {
	return nil
}
