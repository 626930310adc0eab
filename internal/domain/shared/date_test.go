package shared

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalendarDate(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	want := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   time.Time
	}{
		{"tokyo midnight", time.Date(2026, 10, 15, 0, 0, 0, 0, tokyo)},
		{"tokyo late evening", time.Date(2026, 10, 15, 23, 59, 0, 0, tokyo)},
		{"scanned DATE value", time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalendarDate(tt.in)
			assert.True(t, want.Equal(got), "got %s", got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}

	assert.True(t, CalendarDate(time.Time{}).IsZero())
	assert.Nil(t, CalendarDatePtr(nil))
	in := time.Date(2026, 10, 15, 0, 0, 0, 0, tokyo)
	assert.True(t, want.Equal(*CalendarDatePtr(&in)))
}
