// Package sqlstore 基于 database/sql 的武器库，默认使用 modernc.org/sqlite
package sqlstore

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"solid/errors"
	"solid/principles/dip"
)

const schema = `CREATE TABLE IF NOT EXISTS weapons (
	name  TEXT PRIMARY KEY,
	sound TEXT NOT NULL
)`

// Config 数据库配置
type Config struct {
	Driver          string        // 默认 sqlite
	DSN             string        // 默认 :memory:
	MaxOpenConns    int           // 0 表示不设置；内存库强制为 1
	ConnMaxLifetime time.Duration // 0 表示不设置
	PingTimeout     time.Duration // 默认 3s
}

// DefaultConfig 内存 sqlite
func DefaultConfig() Config {
	return Config{
		Driver:      "sqlite",
		DSN:         ":memory:",
		PingTimeout: 3 * time.Second,
	}
}

// Store dip.Arsenal 的 SQL 实现
type Store struct {
	db    *sql.DB
	ownDB bool
}

var _ dip.Arsenal = (*Store)(nil)

// Open 打开数据库并建表
func Open(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Driver == "" {
		cfg.Driver = "sqlite"
	}
	if cfg.DSN == "" {
		cfg.DSN = ":memory:"
	}
	if cfg.PingTimeout <= 0 {
		cfg.PingTimeout = 3 * time.Second
	}

	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrCodeDatabase, "open database")
	}

	// 每个 sqlite 内存连接都是独立的数据库
	if cfg.DSN == ":memory:" {
		db.SetMaxOpenConns(1)
	} else if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.PingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, errors.WrapError(err, errors.ErrCodeDatabase, "ping database")
	}

	s := &Store{db: db, ownDB: true}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewWithDB 使用已有连接池；Close 不会关闭它
func NewWithDB(ctx context.Context, db *sql.DB) (*Store, error) {
	if db == nil {
		return nil, errors.NewError(errors.ErrCodeInvalidInput, "db cannot be nil")
	}
	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return errors.WrapError(err, errors.ErrCodeDatabase, "create weapons table")
	}
	return nil
}

// Stock 插入或更新武器
func (s *Store) Stock(ctx context.Context, weapon dip.Weapon) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO weapons (name, sound) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET sound = excluded.sound`,
		weapon.Name, weapon.Sound)
	if err != nil {
		return errors.WrapError(err, errors.ErrCodeDatabase, fmt.Sprintf("stock weapon %q", weapon.Name))
	}
	return nil
}

// Load 读取武器
func (s *Store) Load(ctx context.Context, name string) (dip.Weapon, error) {
	w := dip.Weapon{Name: name}
	err := s.db.QueryRowContext(ctx, `SELECT sound FROM weapons WHERE name = ?`, name).Scan(&w.Sound)
	if stdErrors.Is(err, sql.ErrNoRows) {
		return dip.Weapon{}, errors.Errorf(errors.ErrCodeNotFound, "weapon %q not found", name)
	}
	if err != nil {
		return dip.Weapon{}, errors.WrapError(err, errors.ErrCodeDatabase, fmt.Sprintf("load weapon %q", name))
	}
	return w, nil
}

// Names 全部武器名称，按名称排序
func (s *Store) Names(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM weapons ORDER BY name`)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrCodeDatabase, "list weapons")
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errors.WrapError(err, errors.ErrCodeDatabase, "scan weapon name")
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WrapError(err, errors.ErrCodeDatabase, "list weapons")
	}
	return names, nil
}

// Close 关闭自己打开的连接池
func (s *Store) Close() error {
	if !s.ownDB {
		return nil
	}
	return s.db.Close()
}
