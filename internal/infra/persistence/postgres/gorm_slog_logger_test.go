package postgres

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/guesssays/med-platform/config"
	deliverycontext "github.com/guesssays/med-platform/internal/delivery/context"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func traceFn() (string, int64) {
	return "SELECT 1", 1
}

func TestGormSlogLogger_Trace(t *testing.T) {
	var buf bytes.Buffer
	l := newGormSlogLogger(slog.New(slog.NewJSONHandler(&buf, nil)), &config.Config{})
	ctx := context.Background()

	l.Trace(ctx, time.Now(), traceFn, nil)
	assert.Empty(t, buf.String(), "fast successful queries are skipped at warn level")

	l.Trace(ctx, time.Now(), traceFn, gorm.ErrRecordNotFound)
	l.Trace(ctx, time.Now(), traceFn, errors.Wrap(gorm.ErrDuplicatedKey, "insert"))
	assert.Empty(t, buf.String())

	l.Trace(ctx, time.Now(), traceFn, errors.New("connection reset"))
	assert.Contains(t, buf.String(), "GORM query failed")
	assert.Contains(t, buf.String(), "connection reset")

	buf.Reset()
	l.Trace(ctx, time.Now().Add(-time.Second), traceFn, nil)
	assert.Contains(t, buf.String(), "GORM slow query")
}

func TestGormSlogLogger_UsesRequestLogger(t *testing.T) {
	var base, scoped bytes.Buffer
	l := newGormSlogLogger(slog.New(slog.NewJSONHandler(&base, nil)), &config.Config{}).LogMode(logger.Info)

	ctx := deliverycontext.WithLogger(context.Background(),
		slog.New(slog.NewJSONHandler(&scoped, nil)).With(slog.String("request_id", "r-9")))
	l.Trace(ctx, time.Now(), traceFn, nil)
	l.Info(ctx, "migrated %d tables", 3)

	assert.Empty(t, base.String())
	assert.Contains(t, scoped.String(), `"request_id":"r-9"`)
	assert.Contains(t, scoped.String(), "migrated 3 tables")
}

func TestGormSlogLogger_Silent(t *testing.T) {
	var buf bytes.Buffer
	l := newGormSlogLogger(slog.New(slog.NewJSONHandler(&buf, nil)), &config.Config{}).LogMode(logger.Silent)

	l.Trace(context.Background(), time.Now(), traceFn, errors.New("boom"))
	l.Error(context.Background(), "boom")
	assert.Empty(t, buf.String())
}
