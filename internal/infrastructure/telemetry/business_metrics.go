package telemetry

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when a nil meter is passed to NewBusinessMetrics.
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// Attribute keys shared by the business counters.
var (
	AttrTenantID = attribute.Key("tenant_id")
	AttrMethod   = attribute.Key("method")
	AttrChannel  = attribute.Key("channel")
	AttrOutcome  = attribute.Key("outcome")
	AttrResource = attribute.Key("resource")
)

// BusinessMetrics counts domain activity. A nil *BusinessMetrics is valid
// and records nothing.
type BusinessMetrics struct {
	kiosksRegistered metric.Int64Counter
	remindersSent    metric.Int64Counter
	importRows       metric.Int64Counter
	geoMatches       metric.Int64Counter
}

// NewBusinessMetrics registers the counters on meter.
func NewBusinessMetrics(meter metric.Meter) (*BusinessMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	bm := &BusinessMetrics{}
	var err error
	if bm.kiosksRegistered, err = meter.Int64Counter("kiosk_kiosks_registered",
		metric.WithDescription("Kiosks registered"), metric.WithUnit("{kiosk}")); err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}
	if bm.remindersSent, err = meter.Int64Counter("kiosk_reminders_sent",
		metric.WithDescription("Reminder notifications attempted, by channel and outcome"), metric.WithUnit("{notification}")); err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}
	if bm.importRows, err = meter.Int64Counter("kiosk_import_rows",
		metric.WithDescription("Imported rows, by resource and outcome"), metric.WithUnit("{row}")); err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}
	if bm.geoMatches, err = meter.Int64Counter("kiosk_geo_matches",
		metric.WithDescription("Address to region/area matches, by method"), metric.WithUnit("{match}")); err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}
	return bm, nil
}

// KioskRegistered counts a newly registered kiosk.
func (bm *BusinessMetrics) KioskRegistered(ctx context.Context, tenantID string) {
	if bm == nil {
		return
	}
	bm.kiosksRegistered.Add(ctx, 1, metric.WithAttributes(AttrTenantID.String(tenantID)))
}

// ReminderSent counts one notification attempt on channel.
func (bm *BusinessMetrics) ReminderSent(ctx context.Context, channel string, ok bool) {
	if bm == nil {
		return
	}
	bm.remindersSent.Add(ctx, 1, metric.WithAttributes(AttrChannel.String(channel), AttrOutcome.String(outcome(ok))))
}

// ImportRows counts n imported rows for a resource.
func (bm *BusinessMetrics) ImportRows(ctx context.Context, resource string, n int, ok bool) {
	if bm == nil || n <= 0 {
		return
	}
	bm.importRows.Add(ctx, int64(n), metric.WithAttributes(AttrResource.String(resource), AttrOutcome.String(outcome(ok))))
}

// GeoMatched counts one geo match by method (keyword, prefecture, none).
func (bm *BusinessMetrics) GeoMatched(ctx context.Context, method string) {
	if bm == nil {
		return
	}
	bm.geoMatches.Add(ctx, 1, metric.WithAttributes(AttrMethod.String(method)))
}

func outcome(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}
