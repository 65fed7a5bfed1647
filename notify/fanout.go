// Package notify 提供 dip.Notifier 的组合实现；具体通知方式见子包
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"solid/capability"
	"solid/principles/dip"
)

const (
	// pendingSize 最多记录的未完成齐射数
	pendingSize = 256
	// pendingTTL 未完成齐射的记录保留时间
	pendingTTL = 10 * time.Minute
)

// Fanout 依次通知每个下游，遇到第一个失败即停止
//
// 对同一齐射（按 Volley.ID）再次调用 Notify 时，只通知上次尚未成功的下游，
// 因此外层重试不会让已成功的下游重复收到通知。
type Fanout struct {
	notifiers []dip.Notifier

	mu      sync.Mutex
	pending *expirable.LRU[string, []bool]
}

var _ dip.Notifier = (*Fanout)(nil)

// NewFanout 创建组合通知器，忽略 nil
func NewFanout(notifiers ...dip.Notifier) *Fanout {
	f := &Fanout{
		notifiers: make([]dip.Notifier, 0, len(notifiers)),
		pending:   expirable.NewLRU[string, []bool](pendingSize, nil, pendingTTL),
	}
	for _, n := range notifiers {
		if n != nil {
			f.notifiers = append(f.notifiers, n)
		}
	}
	return f
}

// Notify 通知全部尚未成功的下游
func (f *Fanout) Notify(ctx context.Context, volley dip.Volley) error {
	delivered := f.delivered(volley.ID)

	indexes := make([]int, len(f.notifiers))
	for i := range indexes {
		indexes[i] = i
	}
	_, err := capability.DispatchE(ctx, indexes, func(ctx context.Context, i int) (struct{}, error) {
		if delivered[i] {
			return struct{}{}, nil
		}
		if err := f.notifiers[i].Notify(ctx, volley); err != nil {
			return struct{}{}, err
		}
		delivered[i] = true
		return struct{}{}, nil
	})

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.pending.Add(volley.ID, delivered)
		return err
	}
	f.pending.Remove(volley.ID)
	return nil
}

// delivered 返回该齐射各下游的送达记录副本
func (f *Fanout) delivered(id string) []bool {
	out := make([]bool, len(f.notifiers))
	f.mu.Lock()
	defer f.mu.Unlock()
	if prev, ok := f.pending.Get(id); ok {
		copy(out, prev)
	}
	return out
}

// Len 下游数量
func (f *Fanout) Len() int {
	return len(f.notifiers)
}
