// Package capability 提供对“同一能力接口”的一组值做统一调用的分发器。
//
// 分发器只依赖能力的调用方式（op），不依赖具体实现类型：
// 新增实现类型时只需要改变放入集合的值，分发器本身无需修改。
package capability

import (
	"context"
)

// Dispatch 按顺序对每个元素调用一次 op，result[i] 严格对应 items[i]
//
// 空输入返回空切片（非 nil）。
func Dispatch[T, R any](items []T, op func(T) R) []R {
	results := make([]R, 0, len(items))
	for _, item := range items {
		results = append(results, op(item))
	}
	return results
}

// DispatchE 可失败版本的 Dispatch
//
// 失败策略：遇到第一个失败的元素即中止，丢弃已收集的部分结果，
// 并原样返回该元素的错误。
// 每个元素调用前检查 ctx，已取消时直接返回 ctx.Err()。
func DispatchE[T, R any](ctx context.Context, items []T, op func(context.Context, T) (R, error)) ([]R, error) {
	results := make([]R, 0, len(items))
	for _, item := range items {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		r, err := op(ctx, item)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

// Aggregate 持有一组能力值的不可变集合，并对其统一调用同一能力
//
// 构造时复制输入切片，之后调用方对原切片的修改不会影响 Aggregate；
// Aggregate 不拥有元素的生命周期。
type Aggregate[T, R any] struct {
	items []T
	op    func(T) R
}

// NewAggregate 创建 Aggregate
func NewAggregate[T, R any](op func(T) R, items ...T) *Aggregate[T, R] {
	copied := make([]T, len(items))
	copy(copied, items)
	return &Aggregate[T, R]{items: copied, op: op}
}

// Invoke 按存储顺序对每个元素调用一次能力，返回等长结果
func (a *Aggregate[T, R]) Invoke() []R {
	return Dispatch(a.items, a.op)
}

// Len 元素个数
func (a *Aggregate[T, R]) Len() int {
	return len(a.items)
}

// Items 返回元素的副本
func (a *Aggregate[T, R]) Items() []T {
	copied := make([]T, len(a.items))
	copy(copied, a.items)
	return copied
}
