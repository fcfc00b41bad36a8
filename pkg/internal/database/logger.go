package database

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type dbLogger struct {
	inner *zerolog.Logger
}

// NewDBLogger routes gorm's logging into zerolog so the whole process
// shares one output stream.
func NewDBLogger(inner *zerolog.Logger) logger.Interface {
	return &dbLogger{inner}
}

func (v *dbLogger) LogMode(logger.LogLevel) logger.Interface {
	return v
}

func (v *dbLogger) Info(_ context.Context, msg string, args ...any) {
	v.inner.Info().Msgf(msg, args...)
}

func (v *dbLogger) Warn(_ context.Context, msg string, args ...any) {
	v.inner.Warn().Msgf(msg, args...)
}

func (v *dbLogger) Error(_ context.Context, msg string, args ...any) {
	v.inner.Error().Msgf(msg, args...)
}

func (v *dbLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		sql, rows := fc()
		v.inner.Debug().Err(err).Dur("elapsed", time.Since(begin)).Int64("rows", rows).Msg(sql)
	}
}
