package task

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// cronLogger 将 cron 内部日志接入 zap
type cronLogger struct {
	log *zap.SugaredLogger
}

var _ cron.Logger = (*cronLogger)(nil)

func newCronLogger(log *zap.Logger) *cronLogger {
	return &cronLogger{log: log.Named("cron").Sugar()}
}

func (l *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debugw(msg, keysAndValues...)
}

func (l *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Errorw(msg, append(keysAndValues, "error", err)...)
}
