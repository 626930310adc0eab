package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/domain/marketing"
	"github.com/kioskcrm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CampaignModel is the persistence model for marketing.Campaign.
type CampaignModel struct {
	TenantAggregateModel
	Name      string                   `gorm:"type:varchar(200);not null"`
	Channel   string                   `gorm:"type:varchar(100)"`
	StartDate time.Time                `gorm:"type:date;not null"`
	EndDate   *time.Time               `gorm:"type:date"`
	Budget    decimal.Decimal          `gorm:"type:decimal(18,4);not null;default:0"`
	Status    marketing.CampaignStatus `gorm:"type:varchar(20);not null"`
	Notes     string                   `gorm:"type:text"`
}

func (CampaignModel) TableName() string {
	return "campaigns"
}

func (m *CampaignModel) ToDomain() *marketing.Campaign {
	return &marketing.Campaign{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Name:                m.Name,
		Channel:             m.Channel,
		StartDate:           shared.CalendarDate(m.StartDate),
		EndDate:             shared.CalendarDatePtr(m.EndDate),
		Budget:              m.Budget,
		Status:              m.Status,
		Notes:               m.Notes,
	}
}

func CampaignModelFromDomain(c *marketing.Campaign) *CampaignModel {
	m := &CampaignModel{
		Name:      c.Name,
		Channel:   c.Channel,
		StartDate: shared.CalendarDate(c.StartDate),
		EndDate:   shared.CalendarDatePtr(c.EndDate),
		Budget:    c.Budget,
		Status:    c.Status,
		Notes:     c.Notes,
	}
	m.FromDomainTenantAggregateRoot(c.TenantAggregateRoot)
	return m
}

// LeadModel is the persistence model for marketing.Lead.
type LeadModel struct {
	TenantAggregateModel
	Name               string               `gorm:"type:varchar(200);not null"`
	CompanyName        string               `gorm:"type:varchar(200)"`
	Email              string               `gorm:"type:varchar(200)"`
	Phone              string               `gorm:"type:varchar(50)"`
	Address            string               `gorm:"type:text"`
	Prefecture         string               `gorm:"type:varchar(10)"`
	RegionID           *uuid.UUID           `gorm:"type:uuid;index"`
	AreaID             *uuid.UUID           `gorm:"type:uuid"`
	Source             marketing.LeadSource `gorm:"type:varchar(20);not null"`
	Status             marketing.LeadStatus `gorm:"type:varchar(20);not null;index"`
	CampaignID         *uuid.UUID           `gorm:"type:uuid;index"`
	PipedrivePersonID  *int64
	PipedriveDealID    *int64
	ConvertedPartnerID *uuid.UUID `gorm:"type:uuid"`
	Notes              string     `gorm:"type:text"`
}

func (LeadModel) TableName() string {
	return "leads"
}

func (m *LeadModel) ToDomain() *marketing.Lead {
	return &marketing.Lead{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Name:                m.Name,
		CompanyName:         m.CompanyName,
		Email:               m.Email,
		Phone:               m.Phone,
		Address:             m.Address,
		Prefecture:          m.Prefecture,
		RegionID:            m.RegionID,
		AreaID:              m.AreaID,
		Source:              m.Source,
		Status:              m.Status,
		CampaignID:          m.CampaignID,
		PipedrivePersonID:   m.PipedrivePersonID,
		PipedriveDealID:     m.PipedriveDealID,
		ConvertedPartnerID:  m.ConvertedPartnerID,
		Notes:               m.Notes,
	}
}

func LeadModelFromDomain(l *marketing.Lead) *LeadModel {
	m := &LeadModel{
		Name:               l.Name,
		CompanyName:        l.CompanyName,
		Email:              l.Email,
		Phone:              l.Phone,
		Address:            l.Address,
		Prefecture:         l.Prefecture,
		RegionID:           l.RegionID,
		AreaID:             l.AreaID,
		Source:             l.Source,
		Status:             l.Status,
		CampaignID:         l.CampaignID,
		PipedrivePersonID:  l.PipedrivePersonID,
		PipedriveDealID:    l.PipedriveDealID,
		ConvertedPartnerID: l.ConvertedPartnerID,
		Notes:              l.Notes,
	}
	m.FromDomainTenantAggregateRoot(l.TenantAggregateRoot)
	return m
}
