package asset

import (
	"github.com/kioskcrm/backend/internal/domain/shared"
)

const (
	EventTypeKioskRegistered    = "kiosk.registered"
	EventTypeKioskInstalled     = "kiosk.installed"
	EventTypeKioskStatusChanged = "kiosk.status_changed"
	EventTypeKioskLeased        = "kiosk.leased"
	EventTypeKioskSold          = "kiosk.sold"
)

// KioskEvent snapshots the fields consumers route on.
type KioskEvent struct {
	shared.BaseDomainEvent
	SerialNumber string `json:"serial_number"`
	Status       Status `json:"status"`
	Prefecture   string `json:"prefecture,omitempty"`
}

func NewKioskEvent(eventType string, k *Kiosk) *KioskEvent {
	return &KioskEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeKiosk, k.ID, k.TenantID),
		SerialNumber:    k.SerialNumber,
		Status:          k.Status,
		Prefecture:      k.Prefecture,
	}
}
