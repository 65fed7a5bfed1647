package sqlstore

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solid/errors"
	"solid/principles/dip"
)

func openMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), DefaultConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_StockAndLoad(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)

	require.NoError(t, s.Stock(ctx, dip.Weapon{Name: "laser", Sound: "Ziiiiiip!"}))
	w, err := s.Load(ctx, "laser")
	require.NoError(t, err)
	assert.Equal(t, dip.Weapon{Name: "laser", Sound: "Ziiiiiip!"}, w)

	require.NoError(t, s.Stock(ctx, dip.Weapon{Name: "laser", Sound: "Bzzt!"}))
	w, err = s.Load(ctx, "laser")
	require.NoError(t, err)
	assert.Equal(t, "Bzzt!", w.Sound)
}

func TestStore_LoadMissing(t *testing.T) {
	_, err := openMemory(t).Load(context.Background(), "rocket")
	assert.True(t, errors.IsNotFound(err))
}

func TestStore_Names(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)

	names, err := s.Names(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)

	for _, w := range []dip.Weapon{{Name: "rocket", Sound: "Whoosh!"}, {Name: "laser", Sound: "Ziiiiiip!"}} {
		require.NoError(t, s.Stock(ctx, w))
	}
	names, err = s.Names(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"laser", "rocket"}, names)
}

func TestStore_FilePersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultConfig()
	cfg.DSN = filepath.Join(t.TempDir(), "arsenal.db")

	s, err := Open(ctx, cfg)
	require.NoError(t, err)
	require.NoError(t, s.Stock(ctx, dip.Weapon{Name: "rocket", Sound: "Whoosh!"}))
	require.NoError(t, s.Close())

	reopened, err := Open(ctx, cfg)
	require.NoError(t, err)
	defer reopened.Close()

	w, err := reopened.Load(ctx, "rocket")
	require.NoError(t, err)
	assert.Equal(t, "Whoosh!", w.Sound)
}

func TestNewWithDB(t *testing.T) {
	ctx := context.Background()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	defer db.Close()

	s, err := NewWithDB(ctx, db)
	require.NoError(t, err)
	require.NoError(t, s.Close(), "不拥有连接池时 Close 为空操作")
	require.NoError(t, db.PingContext(ctx))

	_, err = NewWithDB(ctx, nil)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCodeInvalidInput))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), Config{Driver: "nope"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrCodeDatabase))
}

func TestStore_ClosedDB(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, DefaultConfig())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = s.Load(ctx, "laser")
	assert.True(t, errors.IsErrorCode(err, errors.ErrCodeDatabase))
}
