package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/domain/workflow"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for workflow.Order.
type OrderModel struct {
	TenantAggregateModel
	OrderNumber string               `gorm:"type:varchar(30);not null;index"`
	PartnerID   uuid.UUID            `gorm:"type:uuid;not null;index"`
	BranchID    *uuid.UUID           `gorm:"type:uuid"`
	KioskID     *uuid.UUID           `gorm:"type:uuid"`
	ItemName    string               `gorm:"type:varchar(200);not null"`
	Quantity    int                  `gorm:"not null"`
	UnitPrice   decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	TotalAmount decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	Status      workflow.OrderStatus `gorm:"type:varchar(20);not null;index"`
	OrderedAt   time.Time            `gorm:"not null"`
	Notes       string               `gorm:"type:text"`
}

func (OrderModel) TableName() string {
	return "orders"
}

func (m *OrderModel) ToDomain() *workflow.Order {
	return &workflow.Order{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		OrderNumber:         m.OrderNumber,
		PartnerID:           m.PartnerID,
		BranchID:            m.BranchID,
		KioskID:             m.KioskID,
		ItemName:            m.ItemName,
		Quantity:            m.Quantity,
		UnitPrice:           m.UnitPrice,
		TotalAmount:         m.TotalAmount,
		Status:              m.Status,
		OrderedAt:           m.OrderedAt,
		Notes:               m.Notes,
	}
}

func OrderModelFromDomain(o *workflow.Order) *OrderModel {
	m := &OrderModel{
		OrderNumber: o.OrderNumber,
		PartnerID:   o.PartnerID,
		BranchID:    o.BranchID,
		KioskID:     o.KioskID,
		ItemName:    o.ItemName,
		Quantity:    o.Quantity,
		UnitPrice:   o.UnitPrice,
		TotalAmount: o.TotalAmount,
		Status:      o.Status,
		OrderedAt:   o.OrderedAt,
		Notes:       o.Notes,
	}
	m.FromDomainTenantAggregateRoot(o.TenantAggregateRoot)
	return m
}

// ProcessModel is the persistence model for workflow.Process.
type ProcessModel struct {
	TenantAggregateModel
	Title      string                 `gorm:"type:varchar(300);not null"`
	KioskID    *uuid.UUID             `gorm:"type:uuid"`
	OrderID    *uuid.UUID             `gorm:"type:uuid"`
	AssigneeID *uuid.UUID             `gorm:"type:uuid;index"`
	Status     workflow.ProcessStatus `gorm:"type:varchar(20);not null;index"`
	DueDate    *time.Time             `gorm:"index"`
	RemindedAt *time.Time
	Notes      string `gorm:"type:text"`
}

func (ProcessModel) TableName() string {
	return "processes"
}

func (m *ProcessModel) ToDomain() *workflow.Process {
	return &workflow.Process{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Title:               m.Title,
		KioskID:             m.KioskID,
		OrderID:             m.OrderID,
		AssigneeID:          m.AssigneeID,
		Status:              m.Status,
		DueDate:             m.DueDate,
		RemindedAt:          m.RemindedAt,
		Notes:               m.Notes,
	}
}

func ProcessModelFromDomain(p *workflow.Process) *ProcessModel {
	m := &ProcessModel{
		Title:      p.Title,
		KioskID:    p.KioskID,
		OrderID:    p.OrderID,
		AssigneeID: p.AssigneeID,
		Status:     p.Status,
		DueDate:    p.DueDate,
		RemindedAt: p.RemindedAt,
		Notes:      p.Notes,
	}
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	return m
}

// DeliveryRequestModel is the persistence model for workflow.DeliveryRequest.
type DeliveryRequestModel struct {
	TenantAggregateModel
	OrderID         *uuid.UUID `gorm:"type:uuid"`
	KioskID         *uuid.UUID `gorm:"type:uuid"`
	DeliveryAddress string     `gorm:"type:text;not null"`
	RequestedDate   time.Time  `gorm:"not null"`
	ScheduledDate   *time.Time
	Carrier         string                  `gorm:"type:varchar(100)"`
	TrackingNumber  string                  `gorm:"type:varchar(100)"`
	Status          workflow.DeliveryStatus `gorm:"type:varchar(20);not null;index"`
	Notes           string                  `gorm:"type:text"`
	RemindedAt      *time.Time
}

func (DeliveryRequestModel) TableName() string {
	return "delivery_requests"
}

func (m *DeliveryRequestModel) ToDomain() *workflow.DeliveryRequest {
	return &workflow.DeliveryRequest{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		OrderID:             m.OrderID,
		KioskID:             m.KioskID,
		DeliveryAddress:     m.DeliveryAddress,
		RequestedDate:       m.RequestedDate,
		ScheduledDate:       m.ScheduledDate,
		Carrier:             m.Carrier,
		TrackingNumber:      m.TrackingNumber,
		Status:              m.Status,
		Notes:               m.Notes,
		RemindedAt:          m.RemindedAt,
	}
}

func DeliveryRequestModelFromDomain(d *workflow.DeliveryRequest) *DeliveryRequestModel {
	m := &DeliveryRequestModel{
		OrderID:         d.OrderID,
		KioskID:         d.KioskID,
		DeliveryAddress: d.DeliveryAddress,
		RequestedDate:   d.RequestedDate,
		ScheduledDate:   d.ScheduledDate,
		Carrier:         d.Carrier,
		TrackingNumber:  d.TrackingNumber,
		Status:          d.Status,
		Notes:           d.Notes,
		RemindedAt:      d.RemindedAt,
	}
	m.FromDomainTenantAggregateRoot(d.TenantAggregateRoot)
	return m
}
