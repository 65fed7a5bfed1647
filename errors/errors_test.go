package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewError(t *testing.T) {
	err := NewError(ErrCodeNotFound, "weapon missing")

	assert.Equal(t, ErrCodeNotFound, err.Code())
	assert.Equal(t, "weapon missing", err.Message())
	assert.Nil(t, err.Cause())
	assert.Equal(t, "[NOT_FOUND] weapon missing", err.Error())
	assert.NotEmpty(t, err.Stack())
}

func TestErrorf(t *testing.T) {
	err := Errorf(ErrCodeValidation, "%s too long (%d)", "name", 99)
	assert.Equal(t, "name too long (99)", err.Message())
}

func TestWrapError(t *testing.T) {
	t.Run("nil错误返回nil", func(t *testing.T) {
		assert.Nil(t, WrapError(nil, ErrCodeInternal, "noop"))
	})

	t.Run("保留原始错误链", func(t *testing.T) {
		cause := stdErrors.New("connection refused")
		err := WrapError(cause, ErrCodeDatabase, "load weapon")

		require.Error(t, err)
		assert.True(t, stdErrors.Is(err, cause))
		assert.Equal(t, "[DATABASE_ERROR] load weapon: connection refused", err.Error())
		assert.Equal(t, ErrCodeDatabase, GetErrorCode(err))
	})
}

func TestAppError_IsByCode(t *testing.T) {
	err := NewError(ErrCodeNotFound, "laser")
	assert.True(t, stdErrors.Is(err, ErrNotFound))
	assert.False(t, stdErrors.Is(err, ErrValidation))

	wrapped := WrapError(err, ErrCodeQueue, "notify")
	assert.True(t, stdErrors.Is(wrapped, ErrNotFound), "内层错误代码应可通过 errors.Is 找到")
	assert.True(t, stdErrors.Is(wrapped, ErrQueue))
}

func TestIsErrorCode(t *testing.T) {
	inner := NewError(ErrCodeNotFound, "missing")
	outer := WrapError(inner, ErrCodeDatabase, "load")

	assert.True(t, IsErrorCode(outer, ErrCodeDatabase))
	assert.False(t, IsErrorCode(outer, ErrCodeNotFound), "IsErrorCode 只看最外层 AppError")
	assert.True(t, HasErrorCode(outer, ErrCodeNotFound))
	assert.True(t, IsNotFound(inner))
	assert.False(t, IsErrorCode(nil, ErrCodeNotFound))
	assert.False(t, IsValidation(fmt.Errorf("plain")))
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, ErrorCode(""), GetErrorCode(nil))
	assert.Equal(t, ErrCodeInternal, GetErrorCode(stdErrors.New("plain")))
	assert.Equal(t, ErrCodeQueue, GetErrorCode(NewError(ErrCodeQueue, "publish")))
}

func TestWithContext(t *testing.T) {
	base := NewError(ErrCodeDatabase, "row failed")
	withIndex := base.WithContext("index", 2)

	app, ok := withIndex.(*AppError)
	require.True(t, ok)
	v, found := app.Detail("index")
	require.True(t, found)
	assert.Equal(t, 2, v)

	_, found = base.Detail("index")
	assert.False(t, found, "WithContext 不应修改原错误")

	details := app.Details()
	details["index"] = 99
	v, _ = app.Detail("index")
	assert.Equal(t, 2, v, "Details 应返回副本")
}
