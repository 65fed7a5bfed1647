// Package natsnotify 把齐射以 JSON 发布到 NATS 主题
package natsnotify

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/nats-io/nats.go"

	"solid/errors"
	"solid/logging"
	"solid/principles/dip"
)

// publisher 只包含本包用到的 NATS 连接方法
type publisher interface {
	Publish(subj string, data []byte) error
}

// Config NATS 通知配置
type Config struct {
	URL     string     // 默认 nats.DefaultURL
	Conn    *nats.Conn // 已有连接，优先使用；Close 不会关闭它
	Subject string     // 默认 solid.volleys
	Logger  logging.Logger
}

// Notifier NATS 通知器
type Notifier struct {
	subject string
	logger  logging.Logger

	mu       sync.Mutex
	pub      publisher
	conn     *nats.Conn
	ownsConn bool
}

var _ dip.Notifier = (*Notifier)(nil)

// New 创建 NATS 通知器；未提供 Conn 时连接 URL
func New(cfg Config) (*Notifier, error) {
	n := newNotifier(nil, cfg)
	if cfg.Conn != nil {
		n.pub = cfg.Conn
		n.conn = cfg.Conn
		return n, nil
	}

	url := cfg.URL
	if url == "" {
		url = nats.DefaultURL
	}
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrCodeNetwork, "connect nats")
	}
	n.pub = conn
	n.conn = conn
	n.ownsConn = true
	return n, nil
}

func newNotifier(pub publisher, cfg Config) *Notifier {
	if cfg.Subject == "" {
		cfg.Subject = "solid.volleys"
	}
	return &Notifier{
		subject: cfg.Subject,
		logger:  logging.ComponentLogger(cfg.Logger, "notify.nats"),
		pub:     pub,
	}
}

// Notify 发布齐射
func (n *Notifier) Notify(ctx context.Context, volley dip.Volley) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(volley)
	if err != nil {
		return errors.WrapError(err, errors.ErrCodeInternal, "encode volley")
	}

	n.mu.Lock()
	pub := n.pub
	n.mu.Unlock()
	if pub == nil {
		return errors.NewError(errors.ErrCodeQueue, "nats notifier closed")
	}

	if err := pub.Publish(n.subject, data); err != nil {
		return errors.WrapError(err, errors.ErrCodeQueue, "publish volley")
	}
	n.logger.Debug(ctx, "volley published",
		logging.String("subject", n.subject),
		logging.String("volley_id", volley.ID))
	return nil
}

// Subject 发布主题
func (n *Notifier) Subject() string {
	return n.subject
}

// Close 排空并关闭自己建立的连接；之后的 Notify 返回 QUEUE_ERROR
func (n *Notifier) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pub = nil
	if n.conn == nil || !n.ownsConn {
		return nil
	}
	err := n.conn.Drain()
	n.conn = nil
	return err
}
