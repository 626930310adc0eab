// Package testutil provides helpers shared by the kiosk CRM integration tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/domain/asset"
	"github.com/stretchr/testify/require"
)

// NewTestUUID generates a deterministic UUID from seed.
func NewTestUUID(seed string) uuid.UUID {
	namespace := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	return uuid.NewSHA1(namespace, []byte(seed))
}

// TestTenantID returns the tenant most tests run as.
func TestTenantID() uuid.UUID {
	return NewTestUUID("test-tenant")
}

// OtherTenantID returns a second tenant for isolation checks.
func OtherTenantID() uuid.UUID {
	return NewTestUUID("other-tenant")
}

// ContextWithTimeout creates a context that is cancelled when the test ends.
func ContextWithTimeout(t *testing.T, timeout time.Duration) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(cancel)
	return ctx
}

// NewKiosk builds an in-stock kiosk for tenantID.
func NewKiosk(t *testing.T, tenantID uuid.UUID, serial string) *asset.Kiosk {
	t.Helper()
	k, err := asset.NewKiosk(tenantID, serial, "KX-200")
	require.NoError(t, err)
	return k
}

// RequireEventually polls condition until it holds or timeout elapses.
func RequireEventually(t *testing.T, condition func() bool, timeout, interval time.Duration, msgAndArgs ...any) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(interval)
	}

	require.Fail(t, "Condition not met within timeout", msgAndArgs...)
}
