// Package dip 依赖倒置原则：依赖抽象，而不是具体实现。
//
// Quartermaster 是高层策略，它自己声明所需的抽象 Arsenal 与 Notifier；
// 内存、SQL、Redis、NATS 等低层实现反过来依赖这些抽象，
// 替换存储或通知方式时高层代码无需修改。
package dip

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"solid/capability"
	"solid/errors"
	"solid/logging"
	"solid/patterns/retry"
	"solid/principles/ocp"
	"solid/validation"
)

// MaxSoundLength 武器声音的最大长度
const MaxSoundLength = 64

// Weapon 数据驱动的武器：加入新武器只需要存入一条记录
type Weapon struct {
	Name  string `json:"name"`
	Sound string `json:"sound"`
}

var _ ocp.CanShoot = Weapon{}

// Shoot 实现 ocp.CanShoot
func (w Weapon) Shoot() string {
	return w.Sound
}

// Volley 一次齐射的记录
type Volley struct {
	ID      string    `json:"id"`
	Weapons []string  `json:"weapons"`
	Sounds  []string  `json:"sounds"`
	FiredAt time.Time `json:"fired_at"`
}

// Arsenal 武器库抽象
//
// Load 在武器不存在时返回 ErrCodeNotFound 错误；Stock 对同名武器覆盖写入。
type Arsenal interface {
	Stock(ctx context.Context, weapon Weapon) error
	Load(ctx context.Context, name string) (Weapon, error)
	Names(ctx context.Context) ([]string, error)
}

// Notifier 齐射通知抽象
type Notifier interface {
	Notify(ctx context.Context, volley Volley) error
}

// Options Quartermaster 配置
type Options struct {
	Logger logging.Logger
	Retry  retry.Config
	Now    func() time.Time
}

// Option 配置函数
type Option func(*Options)

// WithLogger 设置日志
func WithLogger(logger logging.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}

// WithRetry 设置通知重试策略
func WithRetry(cfg retry.Config) Option {
	return func(o *Options) { o.Retry = cfg }
}

// WithClock 设置时钟（测试用）
func WithClock(now func() time.Time) Option {
	return func(o *Options) { o.Now = now }
}

// Quartermaster 军需官：管理武器库并组织齐射
type Quartermaster struct {
	arsenal  Arsenal
	notifier Notifier
	opts     Options
	logger   logging.Logger
}

// New 创建军需官；notifier 可以为 nil，此时不发送通知
func New(arsenal Arsenal, notifier Notifier, opts ...Option) *Quartermaster {
	o := Options{
		Retry: retry.DefaultConfig(),
		Now:   time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Quartermaster{
		arsenal:  arsenal,
		notifier: notifier,
		opts:     o,
		logger:   logging.ComponentLogger(o.Logger, "quartermaster"),
	}
}

// Stock 校验并存入武器
func (q *Quartermaster) Stock(ctx context.Context, name, sound string) error {
	err := validation.All(
		func() error { return validation.ValidateIdentifier(name, "weapon name") },
		func() error { return validation.ValidateRequired(sound, "weapon sound") },
		func() error { return validation.ValidateStringLength(sound, "weapon sound", 1, MaxSoundLength) },
	)
	if err != nil {
		return err
	}

	if err := q.arsenal.Stock(ctx, Weapon{Name: name, Sound: sound}); err != nil {
		return err
	}
	q.logger.Debug(ctx, "weapon stocked", logging.String("weapon", name))
	return nil
}

// Inventory 按名称排序列出库存武器
func (q *Quartermaster) Inventory(ctx context.Context) ([]string, error) {
	names, err := q.arsenal.Names(ctx)
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// Arm 按给定顺序取出武器并组成武器组合；任一武器取出失败则整体失败
func (q *Quartermaster) Arm(ctx context.Context, names ...string) (*ocp.WeaponsComposite, error) {
	weapons, err := capability.DispatchE(ctx, names, q.arsenal.Load)
	if err != nil {
		return nil, err
	}
	return ocp.NewWeaponsComposite(capability.Dispatch(weapons, asShooter)...), nil
}

func asShooter(w Weapon) ocp.CanShoot { return w }

// Fire 组织一次齐射并发送通知
//
// 通知按 Retry 配置重试；通知最终失败时仍返回已完成的齐射，同时返回 QUEUE_ERROR。
func (q *Quartermaster) Fire(ctx context.Context, names ...string) (Volley, error) {
	composite, err := q.Arm(ctx, names...)
	if err != nil {
		q.logger.Warn(ctx, "arming failed", logging.Strings("weapons", names), logging.Error(err))
		return Volley{}, err
	}

	volley := Volley{
		ID:      uuid.NewString(),
		Weapons: append([]string{}, names...),
		Sounds:  composite.Shoot(),
		FiredAt: q.opts.Now(),
	}
	q.logger.Info(ctx, "volley fired",
		logging.String("volley_id", volley.ID),
		logging.Strings("sounds", volley.Sounds))

	if q.notifier == nil {
		return volley, nil
	}
	err = retry.DoWithInfo(ctx, func(ctx context.Context, attempt int) error {
		err := q.notifier.Notify(ctx, volley)
		if err != nil {
			q.logger.Debug(ctx, "notify attempt failed", logging.Int("attempt", attempt), logging.Error(err))
		}
		return err
	}, q.opts.Retry)
	if err != nil {
		return volley, errors.WrapError(err, errors.ErrCodeQueue, "volley notification failed")
	}
	return volley, nil
}
