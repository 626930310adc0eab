package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/domain/asset"
	"github.com/kioskcrm/backend/internal/domain/shared"
	"github.com/kioskcrm/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

var kioskListSpec = listSpec{
	searchColumns: []string{"serial_number", "model_name", "install_address"},
	sortFields:    sortFields("serial_number", "model_name", "status", "installed_at", "prefecture"),
	filterColumns: map[string]string{
		"status":     "status",
		"branch_id":  "branch_id",
		"partner_id": "partner_id",
		"region_id":  "region_id",
		"area_id":    "area_id",
		"prefecture": "prefecture",
	},
	defaultSort: "serial_number",
}

// GormKioskRepository implements asset.KioskRepository using GORM
type GormKioskRepository struct {
	db *gorm.DB
}

var _ asset.KioskRepository = (*GormKioskRepository)(nil)

// NewGormKioskRepository creates a new GormKioskRepository
func NewGormKioskRepository(db *gorm.DB) *GormKioskRepository {
	return &GormKioskRepository{db: db}
}

func (r *GormKioskRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*asset.Kiosk, error) {
	var model models.KioskModel
	if err := r.db.WithContext(ctx).Where("tenant_id = ? AND id = ?", tenantID, id).First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindBySerial finds a kiosk by serial number within a tenant
func (r *GormKioskRepository) FindBySerial(ctx context.Context, tenantID uuid.UUID, serial string) (*asset.Kiosk, error) {
	var model models.KioskModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND serial_number = ?", tenantID, strings.ToUpper(strings.TrimSpace(serial))).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

func (r *GormKioskRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]asset.Kiosk, error) {
	var rows []models.KioskModel
	query := kioskListSpec.apply(r.db.WithContext(ctx).Model(&models.KioskModel{}).Where("tenant_id = ?", tenantID), filter)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	kiosks := make([]asset.Kiosk, len(rows))
	for i := range rows {
		kiosks[i] = *rows[i].ToDomain()
	}
	return kiosks, nil
}

func (r *GormKioskRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := kioskListSpec.where(r.db.WithContext(ctx).Model(&models.KioskModel{}).Where("tenant_id = ?", tenantID), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormKioskRepository) ExistsBySerial(ctx context.Context, tenantID uuid.UUID, serial string) (bool, error) {
	return existsByColumn(ctx, r.db, &models.KioskModel{}, "serial_number", tenantID, strings.ToUpper(strings.TrimSpace(serial)))
}

// CountByStatus groups the tenant's kiosks by status
func (r *GormKioskRepository) CountByStatus(ctx context.Context, tenantID uuid.UUID) ([]asset.StatusCount, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	if err := r.db.WithContext(ctx).Model(&models.KioskModel{}).
		Select("status, COUNT(*) AS count").
		Where("tenant_id = ?", tenantID).
		Group("status").
		Order("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]asset.StatusCount, len(rows))
	for i, row := range rows {
		out[i] = asset.StatusCount{Status: asset.Status(row.Status), Count: row.Count}
	}
	return out, nil
}

// CountByRegion groups the tenant's kiosks by region; unmatched kiosks have a nil region
func (r *GormKioskRepository) CountByRegion(ctx context.Context, tenantID uuid.UUID) ([]asset.RegionCount, error) {
	var rows []struct {
		RegionID *uuid.UUID
		Count    int64
	}
	if err := r.db.WithContext(ctx).Model(&models.KioskModel{}).
		Select("region_id, COUNT(*) AS count").
		Where("tenant_id = ?", tenantID).
		Group("region_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]asset.RegionCount, len(rows))
	for i, row := range rows {
		out[i] = asset.RegionCount{RegionID: row.RegionID, Count: row.Count}
	}
	return out, nil
}

func (r *GormKioskRepository) CountByBranch(ctx context.Context, tenantID, branchID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.KioskModel{}).
		Where("tenant_id = ? AND branch_id = ?", tenantID, branchID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormKioskRepository) Save(ctx context.Context, k *asset.Kiosk) error {
	return translateError(r.db.WithContext(ctx).Save(models.KioskModelFromDomain(k)).Error)
}

func (r *GormKioskRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return deleted(r.db.WithContext(ctx).Delete(&models.KioskModel{}, "tenant_id = ? AND id = ?", tenantID, id))
}

// GormContractRepository implements asset.ContractRepository using GORM
type GormContractRepository struct {
	db *gorm.DB
}

var _ asset.ContractRepository = (*GormContractRepository)(nil)

// NewGormContractRepository creates a new GormContractRepository
func NewGormContractRepository(db *gorm.DB) *GormContractRepository {
	return &GormContractRepository{db: db}
}

func (r *GormContractRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*asset.Contract, error) {
	var model models.ContractModel
	if err := r.db.WithContext(ctx).Where("tenant_id = ? AND id = ?", tenantID, id).First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByKiosk returns a kiosk's contract history, newest first
func (r *GormContractRepository) FindByKiosk(ctx context.Context, tenantID, kioskID uuid.UUID) ([]asset.Contract, error) {
	var rows []models.ContractModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND kiosk_id = ?", tenantID, kioskID).
		Order("start_date DESC, created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]asset.Contract, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

func (r *GormContractRepository) Save(ctx context.Context, c *asset.Contract) error {
	return translateError(r.db.WithContext(ctx).Save(models.ContractModelFromDomain(c)).Error)
}
