package shared

import "time"

// CalendarDate keeps the year, month and day of t as seen in t's own
// location and returns them at UTC midnight. Date-only fields (contract
// periods, price validity, campaign runs) are held in this form, which is
// also what a DATE column scans back as.
func CalendarDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CalendarDatePtr is CalendarDate for optional dates.
func CalendarDatePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := CalendarDate(*t)
	return &d
}
