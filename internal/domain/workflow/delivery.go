package workflow

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/domain/shared"
)

const AggregateTypeDeliveryRequest = "DeliveryRequest"

// DeliveryStatus is the progress of a delivery.
type DeliveryStatus string

const (
	DeliveryStatusRequested DeliveryStatus = "requested"
	DeliveryStatusScheduled DeliveryStatus = "scheduled"
	DeliveryStatusInTransit DeliveryStatus = "in_transit"
	DeliveryStatusDelivered DeliveryStatus = "delivered"
	DeliveryStatusCancelled DeliveryStatus = "cancelled"
)

// IsValid reports whether s is a known delivery status.
func (s DeliveryStatus) IsValid() bool {
	switch s {
	case DeliveryStatusRequested, DeliveryStatusScheduled, DeliveryStatusInTransit,
		DeliveryStatusDelivered, DeliveryStatusCancelled:
		return true
	}
	return false
}

// IsClosed reports whether no further action is expected.
func (s DeliveryStatus) IsClosed() bool {
	return s == DeliveryStatusDelivered || s == DeliveryStatusCancelled
}

// DeliveryRequest asks a carrier to ship a kiosk or order to an address.
type DeliveryRequest struct {
	shared.TenantAggregateRoot
	OrderID         *uuid.UUID
	KioskID         *uuid.UUID
	DeliveryAddress string
	RequestedDate   time.Time
	ScheduledDate   *time.Time
	Carrier         string
	TrackingNumber  string
	Status          DeliveryStatus
	Notes           string
	RemindedAt      *time.Time
}

// NewDeliveryRequest creates a request in the requested state.
func NewDeliveryRequest(tenantID uuid.UUID, address string, requestedDate time.Time) (*DeliveryRequest, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Delivery address is required")
	}
	if requestedDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Requested date is required")
	}
	return &DeliveryRequest{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		DeliveryAddress:     address,
		RequestedDate:       requestedDate,
		Status:              DeliveryStatusRequested,
	}, nil
}

// SetDestination replaces the address and requested date.
func (d *DeliveryRequest) SetDestination(address string, requestedDate time.Time) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return shared.NewDomainError("INVALID_ADDRESS", "Delivery address is required")
	}
	if requestedDate.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "Requested date is required")
	}
	if !requestedDate.Equal(d.RequestedDate) {
		d.RemindedAt = nil
	}
	d.DeliveryAddress = address
	d.RequestedDate = requestedDate
	d.MarkModified()
	return nil
}

// Link attaches the request to an order and/or kiosk.
func (d *DeliveryRequest) Link(orderID, kioskID *uuid.UUID) {
	d.OrderID = orderID
	d.KioskID = kioskID
	d.MarkModified()
}

// SetShipping records the carrier, tracking number and scheduled date.
// A new scheduled date re-arms the reminder.
func (d *DeliveryRequest) SetShipping(carrier, trackingNumber string, scheduled *time.Time) {
	if !sameInstant(d.ScheduledDate, scheduled) {
		d.RemindedAt = nil
	}
	d.Carrier = strings.TrimSpace(carrier)
	d.TrackingNumber = strings.TrimSpace(trackingNumber)
	d.ScheduledDate = scheduled
	d.MarkModified()
}

func (d *DeliveryRequest) SetNotes(notes string) {
	d.Notes = notes
	d.MarkModified()
}

// SetStatus writes the status field.
func (d *DeliveryRequest) SetStatus(s DeliveryStatus) error {
	if !s.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown delivery status")
	}
	d.Status = s
	d.MarkModified()
	return nil
}

// DueWithin reports whether an open request is scheduled (or, when not yet
// scheduled, requested) before the end of the window.
func (d *DeliveryRequest) DueWithin(now time.Time, window time.Duration) bool {
	if d.Status.IsClosed() {
		return false
	}
	day := d.RequestedDate
	if d.ScheduledDate != nil {
		day = *d.ScheduledDate
	}
	return !day.After(now.Add(window))
}

// NeedsReminder reports whether the request is due within the window and
// has not been reminded on now's calendar day.
func (d *DeliveryRequest) NeedsReminder(now time.Time, window time.Duration) bool {
	if !d.DueWithin(now, window) {
		return false
	}
	return d.RemindedAt == nil || !sameDay(*d.RemindedAt, now)
}

// MarkReminded stamps the reminder time.
func (d *DeliveryRequest) MarkReminded(at time.Time) {
	d.RemindedAt = &at
	d.MarkModified()
}

func sameInstant(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
