package workflow

import (
	"time"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/application/common"
	"github.com/kioskcrm/backend/internal/domain/workflow"
	"github.com/shopspring/decimal"
)

// CreateOrderRequest represents a request to create an order.
// The order number is allocated by the server.
type CreateOrderRequest struct {
	PartnerID uuid.UUID       `json:"partner_id" binding:"required"`
	BranchID  *uuid.UUID      `json:"branch_id"`
	KioskID   *uuid.UUID      `json:"kiosk_id"`
	ItemName  string          `json:"item_name" binding:"required,min=1,max=200"`
	Quantity  int             `json:"quantity" binding:"required,min=1"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Status    string          `json:"status" binding:"omitempty,oneof=draft ordered confirmed shipped delivered cancelled"`
	OrderedAt string          `json:"ordered_at" binding:"omitempty,datetime=2006-01-02"`
	Notes     string          `json:"notes" binding:"max=2000"`
}

// UpdateOrderRequest represents a request to update an order.
// Any valid status may be written.
type UpdateOrderRequest struct {
	PartnerID *uuid.UUID       `json:"partner_id"`
	BranchID  *uuid.UUID       `json:"branch_id"`
	KioskID   *uuid.UUID       `json:"kiosk_id"`
	ItemName  *string          `json:"item_name" binding:"omitempty,min=1,max=200"`
	Quantity  *int             `json:"quantity" binding:"omitempty,min=1"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
	Status    *string          `json:"status" binding:"omitempty,oneof=draft ordered confirmed shipped delivered cancelled"`
	OrderedAt *string          `json:"ordered_at" binding:"omitempty,datetime=2006-01-02"`
	Notes     *string          `json:"notes" binding:"omitempty,max=2000"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID          uuid.UUID       `json:"id"`
	OrderNumber string          `json:"order_number"`
	PartnerID   uuid.UUID       `json:"partner_id"`
	BranchID    *uuid.UUID      `json:"branch_id"`
	KioskID     *uuid.UUID      `json:"kiosk_id"`
	ItemName    string          `json:"item_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      string          `json:"status"`
	OrderedAt   string          `json:"ordered_at"`
	Notes       string          `json:"notes"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Version     int             `json:"version"`
}

// OrderListFilter represents filter options for the order list
type OrderListFilter struct {
	common.ListQuery
	Status    string `form:"status" binding:"omitempty,oneof=draft ordered confirmed shipped delivered cancelled"`
	PartnerID string `form:"partner_id" binding:"omitempty,uuid"`
	KioskID   string `form:"kiosk_id" binding:"omitempty,uuid"`
}

// ToOrderResponse converts a domain Order
func ToOrderResponse(o *workflow.Order) OrderResponse {
	return OrderResponse{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		PartnerID:   o.PartnerID,
		BranchID:    o.BranchID,
		KioskID:     o.KioskID,
		ItemName:    o.ItemName,
		Quantity:    o.Quantity,
		UnitPrice:   o.UnitPrice,
		TotalAmount: o.TotalAmount,
		Status:      string(o.Status),
		OrderedAt:   o.OrderedAt.Format(common.DateLayout),
		Notes:       o.Notes,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
		Version:     o.Version,
	}
}

// ToOrderResponses converts a slice of orders
func ToOrderResponses(os []workflow.Order) []OrderResponse {
	out := make([]OrderResponse, len(os))
	for i := range os {
		out[i] = ToOrderResponse(&os[i])
	}
	return out
}

// QuotationFile is a rendered quotation
type QuotationFile struct {
	Filename string
	PDF      []byte
}

// CreateProcessRequest represents a request to create a process
type CreateProcessRequest struct {
	Title      string     `json:"title" binding:"required,min=1,max=300"`
	KioskID    *uuid.UUID `json:"kiosk_id"`
	OrderID    *uuid.UUID `json:"order_id"`
	AssigneeID *uuid.UUID `json:"assignee_id"`
	Status     string     `json:"status" binding:"omitempty,oneof=not_started in_progress on_hold completed"`
	DueDate    string     `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	Notes      string     `json:"notes" binding:"max=2000"`
}

// UpdateProcessRequest represents a request to update a process.
// An empty DueDate clears it.
type UpdateProcessRequest struct {
	Title         *string    `json:"title" binding:"omitempty,min=1,max=300"`
	KioskID       *uuid.UUID `json:"kiosk_id"`
	OrderID       *uuid.UUID `json:"order_id"`
	AssigneeID    *uuid.UUID `json:"assignee_id"`
	ClearAssignee bool       `json:"clear_assignee"`
	Status        *string    `json:"status" binding:"omitempty,oneof=not_started in_progress on_hold completed"`
	DueDate       *string    `json:"due_date" binding:"omitempty"`
	Notes         *string    `json:"notes" binding:"omitempty,max=2000"`
}

// ProcessResponse represents a process in API responses
type ProcessResponse struct {
	ID         uuid.UUID  `json:"id"`
	Title      string     `json:"title"`
	KioskID    *uuid.UUID `json:"kiosk_id"`
	OrderID    *uuid.UUID `json:"order_id"`
	AssigneeID *uuid.UUID `json:"assignee_id"`
	Status     string     `json:"status"`
	DueDate    *string    `json:"due_date"`
	RemindedAt *time.Time `json:"reminded_at"`
	Overdue    bool       `json:"overdue"`
	Notes      string     `json:"notes"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	Version    int        `json:"version"`
}

// ProcessListFilter represents filter options for the process list
type ProcessListFilter struct {
	common.ListQuery
	Status     string `form:"status" binding:"omitempty,oneof=not_started in_progress on_hold completed"`
	AssigneeID string `form:"assignee_id" binding:"omitempty,uuid"`
	KioskID    string `form:"kiosk_id" binding:"omitempty,uuid"`
	OrderID    string `form:"order_id" binding:"omitempty,uuid"`
}

// ToProcessResponse converts a domain Process
func ToProcessResponse(p *workflow.Process, now time.Time) ProcessResponse {
	return ProcessResponse{
		ID:         p.ID,
		Title:      p.Title,
		KioskID:    p.KioskID,
		OrderID:    p.OrderID,
		AssigneeID: p.AssigneeID,
		Status:     string(p.Status),
		DueDate:    formatDate(p.DueDate),
		RemindedAt: p.RemindedAt,
		Overdue:    p.IsOverdue(now),
		Notes:      p.Notes,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
		Version:    p.Version,
	}
}

// CreateDeliveryRequest represents a request to create a delivery request
type CreateDeliveryRequest struct {
	OrderID         *uuid.UUID `json:"order_id"`
	KioskID         *uuid.UUID `json:"kiosk_id"`
	DeliveryAddress string     `json:"delivery_address" binding:"required,min=1,max=500"`
	RequestedDate   string     `json:"requested_date" binding:"required,datetime=2006-01-02"`
	ScheduledDate   string     `json:"scheduled_date" binding:"omitempty,datetime=2006-01-02"`
	Carrier         string     `json:"carrier" binding:"max=100"`
	TrackingNumber  string     `json:"tracking_number" binding:"max=100"`
	Status          string     `json:"status" binding:"omitempty,oneof=requested scheduled in_transit delivered cancelled"`
	Notes           string     `json:"notes" binding:"max=2000"`
}

// UpdateDeliveryRequest represents a request to update a delivery request.
// An empty ScheduledDate clears it.
type UpdateDeliveryRequest struct {
	OrderID         *uuid.UUID `json:"order_id"`
	KioskID         *uuid.UUID `json:"kiosk_id"`
	DeliveryAddress *string    `json:"delivery_address" binding:"omitempty,min=1,max=500"`
	RequestedDate   *string    `json:"requested_date" binding:"omitempty,datetime=2006-01-02"`
	ScheduledDate   *string    `json:"scheduled_date"`
	Carrier         *string    `json:"carrier" binding:"omitempty,max=100"`
	TrackingNumber  *string    `json:"tracking_number" binding:"omitempty,max=100"`
	Status          *string    `json:"status" binding:"omitempty,oneof=requested scheduled in_transit delivered cancelled"`
	Notes           *string    `json:"notes" binding:"omitempty,max=2000"`
}

// DeliveryResponse represents a delivery request in API responses
type DeliveryResponse struct {
	ID              uuid.UUID  `json:"id"`
	OrderID         *uuid.UUID `json:"order_id"`
	KioskID         *uuid.UUID `json:"kiosk_id"`
	DeliveryAddress string     `json:"delivery_address"`
	RequestedDate   string     `json:"requested_date"`
	ScheduledDate   *string    `json:"scheduled_date"`
	Carrier         string     `json:"carrier"`
	TrackingNumber  string     `json:"tracking_number"`
	Status          string     `json:"status"`
	Notes           string     `json:"notes"`
	RemindedAt      *time.Time `json:"reminded_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	Version         int        `json:"version"`
}

// DeliveryListFilter represents filter options for the delivery list
type DeliveryListFilter struct {
	common.ListQuery
	Status  string `form:"status" binding:"omitempty,oneof=requested scheduled in_transit delivered cancelled"`
	OrderID string `form:"order_id" binding:"omitempty,uuid"`
	KioskID string `form:"kiosk_id" binding:"omitempty,uuid"`
}

// ToDeliveryResponse converts a domain DeliveryRequest
func ToDeliveryResponse(d *workflow.DeliveryRequest) DeliveryResponse {
	return DeliveryResponse{
		ID:              d.ID,
		OrderID:         d.OrderID,
		KioskID:         d.KioskID,
		DeliveryAddress: d.DeliveryAddress,
		RequestedDate:   d.RequestedDate.Format(common.DateLayout),
		ScheduledDate:   formatDate(d.ScheduledDate),
		Carrier:         d.Carrier,
		TrackingNumber:  d.TrackingNumber,
		Status:          string(d.Status),
		Notes:           d.Notes,
		RemindedAt:      d.RemindedAt,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
		Version:         d.Version,
	}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(common.DateLayout)
	return &s
}
