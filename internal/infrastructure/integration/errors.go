package integration

import "errors"

var (
	// ErrNotConfigured is returned when an integration is disabled or lacks credentials
	ErrNotConfigured = errors.New("integration: not configured")
	// ErrUnavailable wraps transport failures
	ErrUnavailable = errors.New("integration: service unavailable")
	// ErrRequestFailed wraps non-2xx responses and API-level failures
	ErrRequestFailed = errors.New("integration: request failed")
)

// maxResponseSize caps how much of a vendor response is read (1MB)
const maxResponseSize = 1 << 20
