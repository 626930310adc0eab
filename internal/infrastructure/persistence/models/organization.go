package models

import (
	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/domain/organization"
)

// FCModel is the persistence model for organization.FC.
type FCModel struct {
	TenantAggregateModel
	Code        string              `gorm:"type:varchar(20);not null;index"`
	Name        string              `gorm:"type:varchar(200);not null"`
	ContactName string              `gorm:"type:varchar(100)"`
	Email       string              `gorm:"type:varchar(200)"`
	Phone       string              `gorm:"type:varchar(50)"`
	Address     string              `gorm:"type:text"`
	Status      organization.Status `gorm:"type:varchar(20);not null;default:'active'"`
	Notes       string              `gorm:"type:text"`
}

func (FCModel) TableName() string {
	return "fcs"
}

func (m *FCModel) ToDomain() *organization.FC {
	return &organization.FC{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Code:                m.Code,
		Name:                m.Name,
		ContactName:         m.ContactName,
		Email:               m.Email,
		Phone:               m.Phone,
		Address:             m.Address,
		Status:              m.Status,
		Notes:               m.Notes,
	}
}

func FCModelFromDomain(f *organization.FC) *FCModel {
	m := &FCModel{
		Code:        f.Code,
		Name:        f.Name,
		ContactName: f.ContactName,
		Email:       f.Email,
		Phone:       f.Phone,
		Address:     f.Address,
		Status:      f.Status,
		Notes:       f.Notes,
	}
	m.FromDomainTenantAggregateRoot(f.TenantAggregateRoot)
	return m
}

// CorporationModel is the persistence model for organization.Corporation.
type CorporationModel struct {
	TenantAggregateModel
	FCID               uuid.UUID           `gorm:"column:fc_id;type:uuid;not null;index"`
	Code               string              `gorm:"type:varchar(20);not null;index"`
	Name               string              `gorm:"type:varchar(200);not null"`
	RepresentativeName string              `gorm:"type:varchar(100)"`
	Email              string              `gorm:"type:varchar(200)"`
	Phone              string              `gorm:"type:varchar(50)"`
	Address            string              `gorm:"type:text"`
	Status             organization.Status `gorm:"type:varchar(20);not null;default:'active'"`
	Notes              string              `gorm:"type:text"`
}

func (CorporationModel) TableName() string {
	return "corporations"
}

func (m *CorporationModel) ToDomain() *organization.Corporation {
	return &organization.Corporation{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		FCID:                m.FCID,
		Code:                m.Code,
		Name:                m.Name,
		RepresentativeName:  m.RepresentativeName,
		Email:               m.Email,
		Phone:               m.Phone,
		Address:             m.Address,
		Status:              m.Status,
		Notes:               m.Notes,
	}
}

func CorporationModelFromDomain(c *organization.Corporation) *CorporationModel {
	m := &CorporationModel{
		FCID:               c.FCID,
		Code:               c.Code,
		Name:               c.Name,
		RepresentativeName: c.RepresentativeName,
		Email:              c.Email,
		Phone:              c.Phone,
		Address:            c.Address,
		Status:             c.Status,
		Notes:              c.Notes,
	}
	m.FromDomainTenantAggregateRoot(c.TenantAggregateRoot)
	return m
}

// BranchModel is the persistence model for organization.Branch.
type BranchModel struct {
	TenantAggregateModel
	CorporationID uuid.UUID           `gorm:"type:uuid;not null;index"`
	Code          string              `gorm:"type:varchar(20);not null;index"`
	Name          string              `gorm:"type:varchar(200);not null"`
	Address       string              `gorm:"type:text"`
	Prefecture    string              `gorm:"type:varchar(10);index"`
	City          string              `gorm:"type:varchar(100)"`
	RegionID      *uuid.UUID          `gorm:"type:uuid;index"`
	AreaID        *uuid.UUID          `gorm:"type:uuid;index"`
	Phone         string              `gorm:"type:varchar(50)"`
	ManagerName   string              `gorm:"type:varchar(100)"`
	Status        organization.Status `gorm:"type:varchar(20);not null;default:'active'"`
	Notes         string              `gorm:"type:text"`
}

func (BranchModel) TableName() string {
	return "branches"
}

func (m *BranchModel) ToDomain() *organization.Branch {
	return &organization.Branch{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		CorporationID:       m.CorporationID,
		Code:                m.Code,
		Name:                m.Name,
		Address:             m.Address,
		Prefecture:          m.Prefecture,
		City:                m.City,
		RegionID:            m.RegionID,
		AreaID:              m.AreaID,
		Phone:               m.Phone,
		ManagerName:         m.ManagerName,
		Status:              m.Status,
		Notes:               m.Notes,
	}
}

func BranchModelFromDomain(b *organization.Branch) *BranchModel {
	m := &BranchModel{
		CorporationID: b.CorporationID,
		Code:          b.Code,
		Name:          b.Name,
		Address:       b.Address,
		Prefecture:    b.Prefecture,
		City:          b.City,
		RegionID:      b.RegionID,
		AreaID:        b.AreaID,
		Phone:         b.Phone,
		ManagerName:   b.ManagerName,
		Status:        b.Status,
		Notes:         b.Notes,
	}
	m.FromDomainTenantAggregateRoot(b.TenantAggregateRoot)
	return m
}
