// Package di 提供按类型注册与解析的依赖注入容器。
//
// 容器以接口类型为键：高层模块按自己声明的抽象解析依赖，
// 由应用启动阶段决定把哪一个低层实现绑定到该抽象上。
// 推荐只在组装根（main）使用容器，业务对象仍通过构造函数参数接收依赖。
package di

import (
	"fmt"
	"reflect"
	"sync"

	"solid/errors"
)

// Factory 延迟创建依赖的工厂函数，第一次解析时调用，结果按单例缓存
type Factory[T any] func(c *Container) (T, error)

// Container 依赖注入容器
//
// 工厂收到的是一个共享注册表、但记录了当前解析路径的子容器，
// 用于在工厂内部继续解析依赖时发现循环依赖。
type Container struct {
	reg  *registry
	path []reflect.Type
}

type registry struct {
	mutex     sync.Mutex
	build     sync.Mutex
	instances map[reflect.Type]any
	factories map[reflect.Type]func(*Container) (any, error)
}

// New 创建容器
func New() *Container {
	return &Container{
		reg: &registry{
			instances: make(map[reflect.Type]any),
			factories: make(map[reflect.Type]func(*Container) (any, error)),
		},
	}
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Bind 把实例绑定到类型 T（通常是接口类型）
func Bind[T any](c *Container, instance T) error {
	if any(instance) == nil {
		return errors.Errorf(errors.ErrCodeInvalidInput, "instance for %v cannot be nil", typeOf[T]())
	}

	t := typeOf[T]()
	c.reg.mutex.Lock()
	defer c.reg.mutex.Unlock()

	if c.reg.registeredLocked(t) {
		return errors.Errorf(errors.ErrCodeConflict, "service %v already registered", t)
	}
	c.reg.instances[t] = instance
	return nil
}

// Provide 为类型 T 注册工厂
func Provide[T any](c *Container, factory Factory[T]) error {
	if factory == nil {
		return errors.Errorf(errors.ErrCodeInvalidInput, "factory for %v cannot be nil", typeOf[T]())
	}

	t := typeOf[T]()
	c.reg.mutex.Lock()
	defer c.reg.mutex.Unlock()

	if c.reg.registeredLocked(t) {
		return errors.Errorf(errors.ErrCodeConflict, "service %v already registered", t)
	}
	c.reg.factories[t] = func(c *Container) (any, error) {
		return factory(c)
	}
	return nil
}

// Resolve 解析类型 T
//
// 工厂内部可以继续解析其他依赖；出现循环依赖时返回 CONFLICT 错误。
// 工厂失败不会被缓存。
func Resolve[T any](c *Container) (T, error) {
	inst, err := c.resolveType(typeOf[T]())
	if err != nil {
		var zero T
		return zero, err
	}
	v, _ := inst.(T)
	return v, nil
}

// MustResolve 解析类型 T（panic版本）
func MustResolve[T any](c *Container) T {
	inst, err := Resolve[T](c)
	if err != nil {
		panic(err)
	}
	return inst
}

// Has 检查类型 T 是否已注册
func Has[T any](c *Container) bool {
	c.reg.mutex.Lock()
	defer c.reg.mutex.Unlock()
	return c.reg.registeredLocked(typeOf[T]())
}

// Invoke 解析 fn 的全部参数后调用它；fn 最后一个返回值为 error 时原样返回
func (c *Container) Invoke(fn any) error {
	fv := reflect.ValueOf(fn)
	if !fv.IsValid() || fv.Kind() != reflect.Func {
		return errors.NewError(errors.ErrCodeInvalidInput, "parameter must be a function")
	}

	ft := fv.Type()
	args := make([]reflect.Value, ft.NumIn())
	for i := range args {
		inst, err := c.resolveType(ft.In(i))
		if err != nil {
			return err
		}
		if inst == nil {
			args[i] = reflect.Zero(ft.In(i))
		} else {
			args[i] = reflect.ValueOf(inst)
		}
	}

	results := fv.Call(args)
	if n := len(results); n > 0 {
		last := results[n-1]
		if last.Type() == reflect.TypeOf((*error)(nil)).Elem() && !last.IsNil() {
			return last.Interface().(error)
		}
	}
	return nil
}

// resolveType 按反射类型解析
//
// 顶层解析持有 build 锁直到整棵依赖树创建完成，同一服务的工厂只会执行一次；
// 工厂内部的嵌套解析（path 非空）沿用外层持有的锁。
func (c *Container) resolveType(t reflect.Type) (any, error) {
	if inst, ok := c.instance(t); ok {
		return inst, nil
	}
	if len(c.path) == 0 {
		c.reg.build.Lock()
		defer c.reg.build.Unlock()
		if inst, ok := c.instance(t); ok {
			return inst, nil
		}
	}

	c.reg.mutex.Lock()
	factory, hasFactory := c.reg.factories[t]
	c.reg.mutex.Unlock()
	if !hasFactory {
		return nil, errors.Errorf(errors.ErrCodeNotFound, "service %v not registered", t)
	}
	for _, p := range c.path {
		if p == t {
			return nil, errors.Errorf(errors.ErrCodeConflict, "circular dependency on %v", t)
		}
	}

	child := &Container{reg: c.reg, path: append(append([]reflect.Type{}, c.path...), t)}
	inst, err := factory(child)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrCodeInternal, fmt.Sprintf("failed to create service %v", t))
	}

	c.reg.mutex.Lock()
	c.reg.instances[t] = inst
	c.reg.mutex.Unlock()
	return inst, nil
}

func (c *Container) instance(t reflect.Type) (any, bool) {
	c.reg.mutex.Lock()
	defer c.reg.mutex.Unlock()
	inst, ok := c.reg.instances[t]
	return inst, ok
}

func (r *registry) registeredLocked(t reflect.Type) bool {
	if _, ok := r.instances[t]; ok {
		return true
	}
	_, ok := r.factories[t]
	return ok
}
