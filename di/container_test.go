package di

import (
	stdErrors "errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solid/errors"
)

// 测试用接口和实现
type shooter interface {
	Shoot() string
}

type laser struct{ sound string }

func (l *laser) Shoot() string { return l.sound }

type armory struct{ weapon shooter }

func TestBindAndResolve(t *testing.T) {
	c := New()
	impl := &laser{sound: "Ziiiiiip!"}
	require.NoError(t, Bind[shooter](c, impl))

	got, err := Resolve[shooter](c)
	require.NoError(t, err)
	assert.Same(t, impl, got)
	assert.True(t, Has[shooter](c))
	assert.False(t, Has[*laser](c), "按接口绑定不会注册具体类型")
}

func TestBind_Nil(t *testing.T) {
	c := New()
	err := Bind[shooter](c, nil)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCodeInvalidInput))
}

func TestBind_Duplicate(t *testing.T) {
	c := New()
	require.NoError(t, Bind[shooter](c, &laser{}))
	err := Bind[shooter](c, &laser{})
	assert.True(t, errors.IsErrorCode(err, errors.ErrCodeConflict))

	err = Provide(c, func(*Container) (shooter, error) { return &laser{}, nil })
	assert.True(t, errors.IsErrorCode(err, errors.ErrCodeConflict))
}

func TestResolve_NotFound(t *testing.T) {
	c := New()
	got, err := Resolve[shooter](c)
	assert.Nil(t, got)
	assert.True(t, errors.IsNotFound(err))
}

func TestProvide_LazySingleton(t *testing.T) {
	c := New()
	calls := 0
	require.NoError(t, Provide(c, func(*Container) (shooter, error) {
		calls++
		return &laser{sound: "pew"}, nil
	}))
	assert.Equal(t, 0, calls, "注册时不调用工厂")

	first := MustResolve[shooter](c)
	second := MustResolve[shooter](c)
	assert.Same(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestProvide_NestedResolution(t *testing.T) {
	c := New()
	require.NoError(t, Bind[shooter](c, &laser{sound: "Ziiiiiip!"}))
	require.NoError(t, Provide(c, func(c *Container) (*armory, error) {
		w, err := Resolve[shooter](c)
		if err != nil {
			return nil, err
		}
		return &armory{weapon: w}, nil
	}))

	a, err := Resolve[*armory](c)
	require.NoError(t, err)
	assert.Equal(t, "Ziiiiiip!", a.weapon.Shoot())
}

func TestProvide_FactoryError(t *testing.T) {
	c := New()
	cause := stdErrors.New("no power")
	require.NoError(t, Provide(c, func(*Container) (shooter, error) { return nil, cause }))

	_, err := Resolve[shooter](c)
	require.Error(t, err)
	assert.True(t, stdErrors.Is(err, cause))
	assert.True(t, errors.IsErrorCode(err, errors.ErrCodeInternal))

	// 失败不缓存，可以再次尝试
	_, err = Resolve[shooter](c)
	assert.Error(t, err)
}

func TestProvide_CircularDependency(t *testing.T) {
	c := New()
	require.NoError(t, Provide(c, func(c *Container) (shooter, error) {
		return Resolve[shooter](c)
	}))

	_, err := Resolve[shooter](c)
	require.Error(t, err)
	assert.True(t, errors.HasErrorCode(err, errors.ErrCodeConflict))
}

func TestMustResolve_Panic(t *testing.T) {
	c := New()
	assert.Panics(t, func() { MustResolve[shooter](c) })
}

func TestInvoke(t *testing.T) {
	c := New()
	require.NoError(t, Bind[shooter](c, &laser{sound: "Whoosh!"}))

	var got string
	err := c.Invoke(func(s shooter) {
		got = s.Shoot()
	})
	require.NoError(t, err)
	assert.Equal(t, "Whoosh!", got)
}

func TestInvoke_Errors(t *testing.T) {
	c := New()

	assert.True(t, errors.IsErrorCode(c.Invoke("not a func"), errors.ErrCodeInvalidInput))
	assert.True(t, errors.IsErrorCode(c.Invoke(nil), errors.ErrCodeInvalidInput))
	assert.True(t, errors.IsNotFound(c.Invoke(func(shooter) {})))

	cause := stdErrors.New("boom")
	assert.Same(t, cause, c.Invoke(func() error { return cause }))
	assert.NoError(t, c.Invoke(func() error { return nil }))
}

func TestConcurrentResolve(t *testing.T) {
	c := New()
	require.NoError(t, Provide(c, func(*Container) (shooter, error) { return &laser{}, nil }))

	var wg sync.WaitGroup
	results := make([]shooter, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = MustResolve[shooter](c)
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Same(t, results[0], r)
	}
}

func TestConcurrentResolve_FactoryRunsOnce(t *testing.T) {
	c := New()
	var calls atomic.Int32
	require.NoError(t, Provide(c, func(*Container) (shooter, error) {
		calls.Add(1)
		time.Sleep(5 * time.Millisecond)
		return &laser{sound: "Ziiiiiip!"}, nil
	}))
	require.NoError(t, Provide(c, func(c *Container) (*armory, error) {
		w, err := Resolve[shooter](c)
		if err != nil {
			return nil, err
		}
		return &armory{weapon: w}, nil
	}))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = MustResolve[shooter](c)
		}()
		go func() {
			defer wg.Done()
			_ = MustResolve[*armory](c)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load(), "并发解析时工厂只执行一次")
	assert.Same(t, MustResolve[shooter](c), MustResolve[*armory](c).weapon)
}
