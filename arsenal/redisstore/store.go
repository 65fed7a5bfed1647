// Package redisstore 基于 Redis 哈希的武器库：每件武器是哈希中的一个字段
package redisstore

import (
	"context"
	stdErrors "errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"solid/errors"
	"solid/principles/dip"
)

// client 只包含本包用到的 go-redis 命令
type client interface {
	HSet(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	HGet(ctx context.Context, key, field string) *redis.StringCmd
	HKeys(ctx context.Context, key string) *redis.StringSliceCmd
	Close() error
}

// Config Redis 连接配置
type Config struct {
	Client   redis.UniversalClient // 已有客户端，优先使用；Close 不会关闭它
	Addr     string
	Username string
	Password string
	DB       int
	Key      string // 哈希键，默认 solid:arsenal
}

// Store dip.Arsenal 的 Redis 实现
type Store struct {
	client    client
	ownClient bool
	key       string
}

var _ dip.Arsenal = (*Store)(nil)

// New 创建 Redis 武器库
func New(cfg Config) (*Store, error) {
	if cfg.Client != nil {
		return newWithClient(cfg.Client, false, cfg.Key), nil
	}
	if cfg.Addr == "" {
		return nil, errors.NewError(errors.ErrCodeInvalidInput, "redis addr not configured")
	}
	rc := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return newWithClient(rc, true, cfg.Key), nil
}

func newWithClient(cl client, own bool, key string) *Store {
	if key == "" {
		key = "solid:arsenal"
	}
	return &Store{client: cl, ownClient: own, key: key}
}

// Stock 写入武器
func (s *Store) Stock(ctx context.Context, weapon dip.Weapon) error {
	if err := s.client.HSet(ctx, s.key, weapon.Name, weapon.Sound).Err(); err != nil {
		return errors.WrapError(err, errors.ErrCodeDatabase, fmt.Sprintf("stock weapon %q", weapon.Name))
	}
	return nil
}

// Load 读取武器
func (s *Store) Load(ctx context.Context, name string) (dip.Weapon, error) {
	sound, err := s.client.HGet(ctx, s.key, name).Result()
	if stdErrors.Is(err, redis.Nil) {
		return dip.Weapon{}, errors.Errorf(errors.ErrCodeNotFound, "weapon %q not found", name)
	}
	if err != nil {
		return dip.Weapon{}, errors.WrapError(err, errors.ErrCodeDatabase, fmt.Sprintf("load weapon %q", name))
	}
	return dip.Weapon{Name: name, Sound: sound}, nil
}

// Names 全部武器名称，按名称排序
func (s *Store) Names(ctx context.Context) ([]string, error) {
	names, err := s.client.HKeys(ctx, s.key).Result()
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrCodeDatabase, "list weapons")
	}
	sort.Strings(names)
	return names, nil
}

// Close 关闭自己创建的客户端
func (s *Store) Close() error {
	if !s.ownClient {
		return nil
	}
	return s.client.Close()
}
