// Package lognotify 把齐射写入日志
package lognotify

import (
	"context"

	"solid/logging"
	"solid/principles/dip"
)

// Notifier 日志通知器
type Notifier struct {
	logger logging.Logger
}

var _ dip.Notifier = (*Notifier)(nil)

// New 创建日志通知器，logger 为 nil 时使用全局Logger
func New(logger logging.Logger) *Notifier {
	return &Notifier{logger: logging.ComponentLogger(logger, "notify.log")}
}

// Notify 以 Info 级别记录齐射
func (n *Notifier) Notify(ctx context.Context, volley dip.Volley) error {
	n.logger.Info(ctx, "volley",
		logging.String("volley_id", volley.ID),
		logging.Strings("weapons", volley.Weapons),
		logging.Strings("sounds", volley.Sounds))
	return nil
}
