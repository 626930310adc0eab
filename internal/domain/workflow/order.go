// Package workflow holds the status-tracked work records: orders,
// installation processes and delivery requests. Statuses are plain fields;
// any valid value may be written at any time.
package workflow

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const AggregateTypeOrder = "Order"

// OrderStatus is the lifecycle position of an order.
type OrderStatus string

const (
	OrderStatusDraft     OrderStatus = "draft"
	OrderStatusOrdered   OrderStatus = "ordered"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsValid reports whether s is a known order status.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusDraft, OrderStatusOrdered, OrderStatusConfirmed,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is a purchase of kiosks or related items from a partner.
type Order struct {
	shared.TenantAggregateRoot
	OrderNumber string
	PartnerID   uuid.UUID
	BranchID    *uuid.UUID
	KioskID     *uuid.UUID
	ItemName    string
	Quantity    int
	UnitPrice   decimal.Decimal
	TotalAmount decimal.Decimal
	Status      OrderStatus
	OrderedAt   time.Time
	Notes       string
}

// NewOrder creates a draft order.
func NewOrder(tenantID uuid.UUID, orderNumber string, partnerID uuid.UUID, itemName string, quantity int, unitPrice decimal.Decimal) (*Order, error) {
	orderNumber = strings.TrimSpace(orderNumber)
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number is required")
	}
	if partnerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PARTNER", "Order must reference a partner")
	}
	o := &Order{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		OrderNumber:         orderNumber,
		PartnerID:           partnerID,
		Status:              OrderStatusDraft,
		OrderedAt:           time.Now(),
	}
	if err := o.setLine(itemName, quantity, unitPrice); err != nil {
		return nil, err
	}
	o.AddDomainEvent(newWorkflowEvent(EventTypeOrderCreated, AggregateTypeOrder, o.ID, tenantID, string(o.Status)))
	return o, nil
}

// SetLine replaces the item, quantity and price and recomputes the total.
func (o *Order) SetLine(itemName string, quantity int, unitPrice decimal.Decimal) error {
	if err := o.setLine(itemName, quantity, unitPrice); err != nil {
		return err
	}
	o.MarkModified()
	return nil
}

func (o *Order) setLine(itemName string, quantity int, unitPrice decimal.Decimal) error {
	itemName = strings.TrimSpace(itemName)
	if itemName == "" {
		return shared.NewDomainError("INVALID_ITEM", "Item name is required")
	}
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	o.ItemName = itemName
	o.Quantity = quantity
	o.UnitPrice = unitPrice
	o.TotalAmount = unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	return nil
}

// SetPartner changes the ordering partner.
func (o *Order) SetPartner(partnerID uuid.UUID) error {
	if partnerID == uuid.Nil {
		return shared.NewDomainError("INVALID_PARTNER", "Order must reference a partner")
	}
	o.PartnerID = partnerID
	o.MarkModified()
	return nil
}

// Link attaches the order to a branch and/or kiosk.
func (o *Order) Link(branchID, kioskID *uuid.UUID) {
	o.BranchID = branchID
	o.KioskID = kioskID
	o.MarkModified()
}

// SetOrderedAt overrides the order date.
func (o *Order) SetOrderedAt(at time.Time) {
	if at.IsZero() {
		return
	}
	o.OrderedAt = at
	o.MarkModified()
}

func (o *Order) SetNotes(notes string) {
	o.Notes = notes
	o.MarkModified()
}

// SetStatus writes the status field.
func (o *Order) SetStatus(s OrderStatus) error {
	if !s.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown order status")
	}
	if o.Status == s {
		return nil
	}
	o.Status = s
	o.MarkModified()
	o.AddDomainEvent(newWorkflowEvent(EventTypeOrderStatusChanged, AggregateTypeOrder, o.ID, o.TenantID, string(s)))
	return nil
}
