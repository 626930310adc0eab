package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/kioskcrm/backend/internal/infrastructure/config"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type contextKey string

const queryStartTimeKey contextKey = "otel_query_start_time"

// DBTracingPlugin registers otelgorm plus a callback that flags slow
// queries and records errors on the active span.
type DBTracingPlugin struct {
	logFullSQL bool
	slowQuery  time.Duration
	logger     *zap.Logger
}

// NewDBTracingPlugin creates the plugin from telemetry config.
func NewDBTracingPlugin(cfg config.TelemetryConfig, logger *zap.Logger) *DBTracingPlugin {
	slow := cfg.DBSlowQueryThresh
	if slow <= 0 {
		slow = 200 * time.Millisecond
	}
	return &DBTracingPlugin{logFullSQL: cfg.DBLogFullSQL, slowQuery: slow, logger: logger}
}

// Register installs the plugin on db.
func (p *DBTracingPlugin) Register(db *gorm.DB) error {
	opts := []otelgorm.Option{otelgorm.WithDBName("postgresql")}
	if !p.logFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	before := func(tx *gorm.DB) {
		if tx.Statement.Context != nil {
			tx.Statement.Context = context.WithValue(tx.Statement.Context, queryStartTimeKey, time.Now())
		}
	}
	cb := db.Callback()
	registrations := []error{
		cb.Create().Before("gorm:create").Register("kiosk_timing:before_create", before),
		cb.Query().Before("gorm:query").Register("kiosk_timing:before_query", before),
		cb.Update().Before("gorm:update").Register("kiosk_timing:before_update", before),
		cb.Delete().Before("gorm:delete").Register("kiosk_timing:before_delete", before),
		cb.Row().Before("gorm:row").Register("kiosk_timing:before_row", before),
		cb.Raw().Before("gorm:raw").Register("kiosk_timing:before_raw", before),
		cb.Create().After("gorm:create").Register("kiosk_slow_query:create", p.afterCallback),
		cb.Query().After("gorm:query").Register("kiosk_slow_query:query", p.afterCallback),
		cb.Update().After("gorm:update").Register("kiosk_slow_query:update", p.afterCallback),
		cb.Delete().After("gorm:delete").Register("kiosk_slow_query:delete", p.afterCallback),
		cb.Row().After("gorm:row").Register("kiosk_slow_query:row", p.afterCallback),
		cb.Raw().After("gorm:raw").Register("kiosk_slow_query:raw", p.afterCallback),
	}
	if err := errors.Join(registrations...); err != nil {
		return err
	}

	p.logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", p.logFullSQL),
		zap.Duration("slow_query_threshold", p.slowQuery),
	)
	return nil
}

func (p *DBTracingPlugin) afterCallback(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}
	if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
		span.SetStatus(codes.Error, db.Error.Error())
		span.RecordError(db.Error)
	}
	if start, ok := ctx.Value(queryStartTimeKey).(time.Time); ok {
		if elapsed := time.Since(start); elapsed > p.slowQuery {
			span.SetAttributes(
				attribute.Bool("db.slow_query", true),
				attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
			)
		}
	}
}
