package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/domain/partner"
	"github.com/kioskcrm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PartnerModel is the persistence model for partner.Partner.
type PartnerModel struct {
	TenantAggregateModel
	Code           string         `gorm:"type:varchar(20);not null;index"`
	Name           string         `gorm:"type:varchar(200);not null"`
	Type           partner.Type   `gorm:"type:varchar(20);not null;index"`
	ContactName    string         `gorm:"type:varchar(100)"`
	Email          string         `gorm:"type:varchar(200)"`
	Phone          string         `gorm:"type:varchar(50)"`
	Address        string         `gorm:"type:text"`
	Prefecture     string         `gorm:"type:varchar(10);index"`
	RegionID       *uuid.UUID     `gorm:"type:uuid;index"`
	AreaID         *uuid.UUID     `gorm:"type:uuid;index"`
	PipedriveOrgID *int64         `gorm:"column:pipedrive_org_id"`
	Status         partner.Status `gorm:"type:varchar(20);not null;default:'active'"`
	Notes          string         `gorm:"type:text"`
}

func (PartnerModel) TableName() string {
	return "partners"
}

func (m *PartnerModel) ToDomain() *partner.Partner {
	return &partner.Partner{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Code:                m.Code,
		Name:                m.Name,
		Type:                m.Type,
		ContactName:         m.ContactName,
		Email:               m.Email,
		Phone:               m.Phone,
		Address:             m.Address,
		Prefecture:          m.Prefecture,
		RegionID:            m.RegionID,
		AreaID:              m.AreaID,
		PipedriveOrgID:      m.PipedriveOrgID,
		Status:              m.Status,
		Notes:               m.Notes,
	}
}

func PartnerModelFromDomain(p *partner.Partner) *PartnerModel {
	m := &PartnerModel{
		Code:           p.Code,
		Name:           p.Name,
		Type:           p.Type,
		ContactName:    p.ContactName,
		Email:          p.Email,
		Phone:          p.Phone,
		Address:        p.Address,
		Prefecture:     p.Prefecture,
		RegionID:       p.RegionID,
		AreaID:         p.AreaID,
		PipedriveOrgID: p.PipedriveOrgID,
		Status:         p.Status,
		Notes:          p.Notes,
	}
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	return m
}

// PricingModel is the persistence model for partner.Pricing.
type PricingModel struct {
	TenantAggregateModel
	PartnerID uuid.UUID       `gorm:"type:uuid;not null;index:idx_pricing_partner_item,priority:1"`
	ItemCode  string          `gorm:"type:varchar(50);not null;index:idx_pricing_partner_item,priority:2"`
	ItemName  string          `gorm:"type:varchar(200)"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Currency  string          `gorm:"type:varchar(3);not null;default:'JPY'"`
	ValidFrom time.Time       `gorm:"type:date;not null"`
	ValidTo   *time.Time      `gorm:"type:date"`
	Notes     string          `gorm:"type:text"`
}

func (PricingModel) TableName() string {
	return "pricings"
}

func (m *PricingModel) ToDomain() *partner.Pricing {
	return &partner.Pricing{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		PartnerID:           m.PartnerID,
		ItemCode:            m.ItemCode,
		ItemName:            m.ItemName,
		UnitPrice:           m.UnitPrice,
		Currency:            m.Currency,
		ValidFrom:           shared.CalendarDate(m.ValidFrom),
		ValidTo:             shared.CalendarDatePtr(m.ValidTo),
		Notes:               m.Notes,
	}
}

func PricingModelFromDomain(p *partner.Pricing) *PricingModel {
	m := &PricingModel{
		PartnerID: p.PartnerID,
		ItemCode:  p.ItemCode,
		ItemName:  p.ItemName,
		UnitPrice: p.UnitPrice,
		Currency:  p.Currency,
		ValidFrom: shared.CalendarDate(p.ValidFrom),
		ValidTo:   shared.CalendarDatePtr(p.ValidTo),
		Notes:     p.Notes,
	}
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	return m
}
