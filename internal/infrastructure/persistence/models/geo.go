package models

import (
	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/domain/geo"
)

// RegionModel is the persistence model for geo.Region.
type RegionModel struct {
	TenantAggregateModel
	Code         string   `gorm:"type:varchar(20);not null;index"`
	Name         string   `gorm:"type:varchar(100);not null"`
	Prefectures  []string `gorm:"type:jsonb;serializer:json;not null"`
	OfficeName   string   `gorm:"type:varchar(200)"`
	OfficeEmail  string   `gorm:"type:varchar(200)"`
	SlackChannel string   `gorm:"type:varchar(100)"`
	SortOrder    int      `gorm:"not null;default:0"`
}

func (RegionModel) TableName() string {
	return "regions"
}

func (m *RegionModel) ToDomain() *geo.Region {
	return &geo.Region{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Code:                m.Code,
		Name:                m.Name,
		Prefectures:         append([]string(nil), m.Prefectures...),
		OfficeName:          m.OfficeName,
		OfficeEmail:         m.OfficeEmail,
		SlackChannel:        m.SlackChannel,
		SortOrder:           m.SortOrder,
	}
}

func RegionModelFromDomain(r *geo.Region) *RegionModel {
	m := &RegionModel{
		Code:         r.Code,
		Name:         r.Name,
		Prefectures:  r.Prefectures,
		OfficeName:   r.OfficeName,
		OfficeEmail:  r.OfficeEmail,
		SlackChannel: r.SlackChannel,
		SortOrder:    r.SortOrder,
	}
	m.FromDomainTenantAggregateRoot(r.TenantAggregateRoot)
	if m.Prefectures == nil {
		m.Prefectures = []string{}
	}
	return m
}

// AreaModel is the persistence model for geo.Area.
type AreaModel struct {
	TenantAggregateModel
	RegionID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Code      string    `gorm:"type:varchar(20);not null;index"`
	Name      string    `gorm:"type:varchar(100);not null"`
	Keywords  []string  `gorm:"type:jsonb;serializer:json;not null"`
	SortOrder int       `gorm:"not null;default:0"`
}

func (AreaModel) TableName() string {
	return "areas"
}

func (m *AreaModel) ToDomain() *geo.Area {
	return &geo.Area{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		RegionID:            m.RegionID,
		Code:                m.Code,
		Name:                m.Name,
		Keywords:            append([]string(nil), m.Keywords...),
		SortOrder:           m.SortOrder,
	}
}

func AreaModelFromDomain(a *geo.Area) *AreaModel {
	m := &AreaModel{
		RegionID:  a.RegionID,
		Code:      a.Code,
		Name:      a.Name,
		Keywords:  a.Keywords,
		SortOrder: a.SortOrder,
	}
	m.FromDomainTenantAggregateRoot(a.TenantAggregateRoot)
	if m.Keywords == nil {
		m.Keywords = []string{}
	}
	return m
}
