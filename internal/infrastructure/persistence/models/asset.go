package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/domain/asset"
	"github.com/kioskcrm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// KioskModel is the persistence model for asset.Kiosk.
type KioskModel struct {
	TenantAggregateModel
	SerialNumber   string       `gorm:"type:varchar(64);not null;index"`
	ModelName      string       `gorm:"type:varchar(100);not null"`
	Status         asset.Status `gorm:"type:varchar(20);not null;index"`
	BranchID       *uuid.UUID   `gorm:"type:uuid;index"`
	PartnerID      *uuid.UUID   `gorm:"type:uuid;index"`
	InstallAddress string       `gorm:"type:text"`
	Prefecture     string       `gorm:"type:varchar(10)"`
	City           string       `gorm:"type:varchar(100)"`
	RegionID       *uuid.UUID   `gorm:"type:uuid;index"`
	AreaID         *uuid.UUID   `gorm:"type:uuid"`
	InstalledAt    *time.Time
	ListPrice      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	MonthlyFee     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Notes          string          `gorm:"type:text"`
}

func (KioskModel) TableName() string {
	return "kiosks"
}

func (m *KioskModel) ToDomain() *asset.Kiosk {
	return &asset.Kiosk{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		SerialNumber:        m.SerialNumber,
		ModelName:           m.ModelName,
		Status:              m.Status,
		BranchID:            m.BranchID,
		PartnerID:           m.PartnerID,
		InstallAddress:      m.InstallAddress,
		Prefecture:          m.Prefecture,
		City:                m.City,
		RegionID:            m.RegionID,
		AreaID:              m.AreaID,
		InstalledAt:         m.InstalledAt,
		ListPrice:           m.ListPrice,
		MonthlyFee:          m.MonthlyFee,
		Notes:               m.Notes,
	}
}

func KioskModelFromDomain(k *asset.Kiosk) *KioskModel {
	m := &KioskModel{
		SerialNumber:   k.SerialNumber,
		ModelName:      k.ModelName,
		Status:         k.Status,
		BranchID:       k.BranchID,
		PartnerID:      k.PartnerID,
		InstallAddress: k.InstallAddress,
		Prefecture:     k.Prefecture,
		City:           k.City,
		RegionID:       k.RegionID,
		AreaID:         k.AreaID,
		InstalledAt:    k.InstalledAt,
		ListPrice:      k.ListPrice,
		MonthlyFee:     k.MonthlyFee,
		Notes:          k.Notes,
	}
	m.FromDomainTenantAggregateRoot(k.TenantAggregateRoot)
	return m
}

// ContractModel is the persistence model for asset.Contract.
type ContractModel struct {
	BaseModel
	TenantID     uuid.UUID          `gorm:"type:uuid;not null;index"`
	KioskID      uuid.UUID          `gorm:"type:uuid;not null;index"`
	Type         asset.ContractType `gorm:"type:varchar(10);not null"`
	PartnerID    *uuid.UUID         `gorm:"type:uuid"`
	CustomerName string             `gorm:"type:varchar(200)"`
	StartDate    time.Time          `gorm:"type:date;not null"`
	EndDate      *time.Time         `gorm:"type:date"`
	Amount       decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0"`
	MonthlyFee   decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0"`
	Notes        string             `gorm:"type:text"`
}

func (ContractModel) TableName() string {
	return "kiosk_contracts"
}

func (m *ContractModel) ToDomain() *asset.Contract {
	return &asset.Contract{
		BaseEntity:   m.toEntity(),
		TenantID:     m.TenantID,
		KioskID:      m.KioskID,
		Type:         m.Type,
		PartnerID:    m.PartnerID,
		CustomerName: m.CustomerName,
		StartDate:    shared.CalendarDate(m.StartDate),
		EndDate:      shared.CalendarDatePtr(m.EndDate),
		Amount:       m.Amount,
		MonthlyFee:   m.MonthlyFee,
		Notes:        m.Notes,
	}
}

func ContractModelFromDomain(c *asset.Contract) *ContractModel {
	m := &ContractModel{
		TenantID:     c.TenantID,
		KioskID:      c.KioskID,
		Type:         c.Type,
		PartnerID:    c.PartnerID,
		CustomerName: c.CustomerName,
		StartDate:    shared.CalendarDate(c.StartDate),
		EndDate:      shared.CalendarDatePtr(c.EndDate),
		Amount:       c.Amount,
		MonthlyFee:   c.MonthlyFee,
		Notes:        c.Notes,
	}
	m.fromEntity(c.BaseEntity)
	return m
}
