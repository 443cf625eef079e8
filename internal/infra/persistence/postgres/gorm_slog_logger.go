package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/guesssays/med-platform/config"
	deliverycontext "github.com/guesssays/med-platform/internal/delivery/context"
	"github.com/guesssays/med-platform/internal/errors"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const defaultGormSlowThreshold = 200 * time.Millisecond

// gormSlogLogger routes GORM output through slog. Inside a request the
// request-scoped logger is used so statements carry request_id.
type gormSlogLogger struct {
	logger        *slog.Logger
	level         logger.LogLevel
	slowThreshold time.Duration
}

func newGormSlogLogger(baseLogger *slog.Logger, cfg *config.Config) logger.Interface {
	level := logger.Warn
	if cfg != nil && cfg.Env.Debug {
		level = logger.Info
	}

	return &gormSlogLogger{
		logger:        baseLogger,
		level:         level,
		slowThreshold: defaultGormSlowThreshold,
	}
}

func (l *gormSlogLogger) LogMode(level logger.LogLevel) logger.Interface {
	cloned := *l
	cloned.level = level

	return &cloned
}

func (l *gormSlogLogger) Info(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, logger.Info, slog.LevelInfo, msg, args)
}

func (l *gormSlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, logger.Warn, slog.LevelWarn, msg, args)
}

func (l *gormSlogLogger) Error(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, logger.Error, slog.LevelError, msg, args)
}

func (l *gormSlogLogger) printf(ctx context.Context, threshold logger.LogLevel, level slog.Level, msg string, args []any) {
	if l.logger == nil || l.level < threshold {
		return
	}

	l.emit(ctx, level, "GORM "+level.String(), slog.String("message", fmt.Sprintf(msg, args...)))
}

// Trace logs failed statements, slow statements and, at Info, everything else.
// Missing rows and unique violations are expected outcomes and are not errors here.
func (l *gormSlogLogger) Trace(ctx context.Context, begin time.Time, sqlAndRowsFn func() (string, int64), err error) {
	if l.logger == nil || l.level == logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	statement, rows := sqlAndRowsFn()
	attrs := []slog.Attr{
		slog.Duration("elapsed", elapsed),
		slog.Int64("rows", rows),
		slog.String("sql", statement),
	}

	switch {
	case err != nil && l.level >= logger.Error && !isExpectedQueryError(err):
		l.emit(ctx, slog.LevelError, "GORM query failed", append(attrs, slog.String("error", err.Error()))...)
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= logger.Warn:
		l.emit(ctx, slog.LevelWarn, "GORM slow query", append(attrs, slog.Duration("slowThreshold", l.slowThreshold))...)
	case l.level >= logger.Info:
		l.emit(ctx, slog.LevelInfo, "GORM query", attrs...)
	}
}

func (l *gormSlogLogger) emit(ctx context.Context, level slog.Level, msg string, attrs ...slog.Attr) {
	deliverycontext.GetLoggerOrDefault(ctx, l.logger).LogAttrs(ctx, level, msg, attrs...)
}

func isExpectedQueryError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound) || isUniqueConstraintViolation(err)
}
