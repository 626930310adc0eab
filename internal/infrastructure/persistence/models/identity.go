package models

import (
	"time"

	"github.com/kioskcrm/backend/internal/domain/identity"
)

// UserModel is the persistence model for identity.User.
type UserModel struct {
	TenantAggregateModel
	Username       string              `gorm:"type:varchar(100);not null;uniqueIndex"`
	Email          string              `gorm:"type:varchar(200)"`
	DisplayName    string              `gorm:"type:varchar(200)"`
	PasswordHash   string              `gorm:"type:varchar(255);not null"`
	Role           identity.Role       `gorm:"type:varchar(20);not null"`
	Status         identity.UserStatus `gorm:"type:varchar(20);not null;default:'active'"`
	LastLoginAt    *time.Time
	FailedAttempts int `gorm:"not null;default:0"`
	LockedUntil    *time.Time
}

func (UserModel) TableName() string {
	return "users"
}

func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Username:            m.Username,
		Email:               m.Email,
		DisplayName:         m.DisplayName,
		PasswordHash:        m.PasswordHash,
		Role:                m.Role,
		Status:              m.Status,
		LastLoginAt:         m.LastLoginAt,
		FailedAttempts:      m.FailedAttempts,
		LockedUntil:         m.LockedUntil,
	}
}

func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{
		Username:       u.Username,
		Email:          u.Email,
		DisplayName:    u.DisplayName,
		PasswordHash:   u.PasswordHash,
		Role:           u.Role,
		Status:         u.Status,
		LastLoginAt:    u.LastLoginAt,
		FailedAttempts: u.FailedAttempts,
		LockedUntil:    u.LockedUntil,
	}
	m.FromDomainTenantAggregateRoot(u.TenantAggregateRoot)
	return m
}

// All lists every model, in dependency order, for AutoMigrate in tests.
func All() []any {
	return []any{
		&UserModel{},
		&RegionModel{}, &AreaModel{},
		&FCModel{}, &CorporationModel{}, &BranchModel{},
		&PartnerModel{}, &PricingModel{},
		&KioskModel{}, &ContractModel{},
		&OrderModel{}, &ProcessModel{}, &DeliveryRequestModel{},
		&CampaignModel{}, &LeadModel{},
	}
}
