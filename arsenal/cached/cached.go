// Package cached 为任意 dip.Arsenal 增加读缓存
//
// Arsenal 是一个装饰器：它实现 dip.Arsenal 并包装另一个 dip.Arsenal，
// 在不修改被包装实现的前提下扩展其行为。
package cached

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"solid/principles/dip"
)

// Config 缓存配置
type Config struct {
	// MaxSize 最大条目数，0 表示不限制
	MaxSize int

	// TTL 条目过期时间，0 表示永不过期
	TTL time.Duration
}

// DefaultConfig 默认配置
func DefaultConfig() Config {
	return Config{
		MaxSize: 128,
		TTL:     5 * time.Minute,
	}
}

// Stats 缓存统计信息
type Stats struct {
	Hits   int64
	Misses int64
	Size   int
}

// Arsenal 带缓存的武器库
//
// Load 命中缓存时不访问下游；Stock 先写下游再使对应条目失效；
// Names 总是直接访问下游。下游返回的错误（包括未找到）不缓存。
// 未命中时的读取回填与 Stock 的写入失效互斥，Stock 返回后不会再读到旧值。
type Arsenal struct {
	next   dip.Arsenal
	lru    *expirable.LRU[string, dip.Weapon]
	fill   sync.Mutex
	hits   atomic.Int64
	misses atomic.Int64
}

var _ dip.Arsenal = (*Arsenal)(nil)

// New 包装 next
func New(next dip.Arsenal, cfg Config) *Arsenal {
	return &Arsenal{
		next: next,
		lru:  expirable.NewLRU[string, dip.Weapon](cfg.MaxSize, nil, cfg.TTL),
	}
}

// Stock 写入下游并使缓存失效
func (a *Arsenal) Stock(ctx context.Context, weapon dip.Weapon) error {
	a.fill.Lock()
	defer a.fill.Unlock()

	if err := a.next.Stock(ctx, weapon); err != nil {
		return err
	}
	a.lru.Remove(weapon.Name)
	return nil
}

// Load 优先从缓存读取
func (a *Arsenal) Load(ctx context.Context, name string) (dip.Weapon, error) {
	if w, ok := a.lru.Get(name); ok {
		a.hits.Add(1)
		return w, nil
	}

	a.fill.Lock()
	defer a.fill.Unlock()
	if w, ok := a.lru.Get(name); ok {
		a.hits.Add(1)
		return w, nil
	}
	a.misses.Add(1)

	w, err := a.next.Load(ctx, name)
	if err != nil {
		return dip.Weapon{}, err
	}
	a.lru.Add(name, w)
	return w, nil
}

// Names 直接访问下游
func (a *Arsenal) Names(ctx context.Context) ([]string, error) {
	return a.next.Names(ctx)
}

// Purge 清空缓存
func (a *Arsenal) Purge() {
	a.lru.Purge()
}

// Stats 返回统计快照
func (a *Arsenal) Stats() Stats {
	return Stats{
		Hits:   a.hits.Load(),
		Misses: a.misses.Load(),
		Size:   a.lru.Len(),
	}
}
