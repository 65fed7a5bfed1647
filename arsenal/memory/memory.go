// Package memory 进程内武器库
package memory

import (
	"context"
	"sort"
	"sync"

	"solid/errors"
	"solid/principles/dip"
)

// Arsenal 基于 map 的 dip.Arsenal 实现，并发安全
type Arsenal struct {
	mu      sync.RWMutex
	weapons map[string]dip.Weapon
}

var _ dip.Arsenal = (*Arsenal)(nil)

// New 创建武器库，可带初始武器
func New(weapons ...dip.Weapon) *Arsenal {
	a := &Arsenal{weapons: make(map[string]dip.Weapon, len(weapons))}
	for _, w := range weapons {
		a.weapons[w.Name] = w
	}
	return a
}

// Stock 存入武器
func (a *Arsenal) Stock(ctx context.Context, weapon dip.Weapon) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.weapons[weapon.Name] = weapon
	return nil
}

// Load 取出武器
func (a *Arsenal) Load(ctx context.Context, name string) (dip.Weapon, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	w, ok := a.weapons[name]
	if !ok {
		return dip.Weapon{}, errors.Errorf(errors.ErrCodeNotFound, "weapon %q not found", name)
	}
	return w, nil
}

// Names 武器名称，按字母排序
func (a *Arsenal) Names(ctx context.Context) ([]string, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	names := make([]string, 0, len(a.weapons))
	for name := range a.weapons {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
