package db

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

// GormLogger envía los logs de GORM a logrus. Las consultas se registran en
// nivel TRACE y los errores (salvo "record not found") en ERROR.
type GormLogger struct {
	log *logrus.Logger
}

var _ logger.Interface = (*GormLogger)(nil)

func NewGormLogger(log *logrus.Logger) *GormLogger {
	return &GormLogger{log: log}
}

// LogMode se ignora, el nivel lo decide logrus
func (g *GormLogger) LogMode(_ logger.LogLevel) logger.Interface {
	return g
}

func (g *GormLogger) entry(ctx context.Context) *logrus.Entry {
	return g.log.WithContext(ctx).WithField("component", "gorm")
}

func (g *GormLogger) Info(ctx context.Context, s string, args ...interface{}) {
	g.entry(ctx).Infof(s, args...)
}

func (g *GormLogger) Warn(ctx context.Context, s string, args ...interface{}) {
	g.entry(ctx).Warnf(s, args...)
}

func (g *GormLogger) Error(ctx context.Context, s string, args ...interface{}) {
	g.entry(ctx).Errorf(s, args...)
}

func (g *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()
	e := g.entry(ctx).WithFields(logrus.Fields{
		"file":    utils.FileWithLineNum(),
		"cost_ms": float64(elapsed.Nanoseconds()) / 1e6,
		"rows":    rows,
	})

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		e.WithError(err).Errorf("SQL: %s", sql)
		return
	}
	e.Tracef("SQL: %s", sql)
}
