package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/domain/geo"
	"github.com/kioskcrm/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormRegionRepository implements geo.RegionRepository using GORM
type GormRegionRepository struct {
	db *gorm.DB
}

var _ geo.RegionRepository = (*GormRegionRepository)(nil)

// NewGormRegionRepository creates a new GormRegionRepository
func NewGormRegionRepository(db *gorm.DB) *GormRegionRepository {
	return &GormRegionRepository{db: db}
}

// FindByIDForTenant finds a region by ID within a tenant
func (r *GormRegionRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*geo.Region, error) {
	var model models.RegionModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAllForTenant returns every region of the tenant in match order
func (r *GormRegionRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]geo.Region, error) {
	var rows []models.RegionModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("sort_order ASC, code ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	regions := make([]geo.Region, len(rows))
	for i := range rows {
		regions[i] = *rows[i].ToDomain()
	}
	return regions, nil
}

// ExistsByCode checks whether a region code is taken within a tenant
func (r *GormRegionRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.RegionModel{}).
		Where("tenant_id = ? AND code = ?", tenantID, strings.ToUpper(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountForTenant counts the tenant's regions
func (r *GormRegionRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.RegionModel{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a region
func (r *GormRegionRepository) Save(ctx context.Context, region *geo.Region) error {
	return translateError(r.db.WithContext(ctx).Save(models.RegionModelFromDomain(region)).Error)
}

// DeleteForTenant deletes a region within a tenant
func (r *GormRegionRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return deleted(r.db.WithContext(ctx).Delete(&models.RegionModel{}, "tenant_id = ? AND id = ?", tenantID, id))
}

// GormAreaRepository implements geo.AreaRepository using GORM
type GormAreaRepository struct {
	db *gorm.DB
}

var _ geo.AreaRepository = (*GormAreaRepository)(nil)

// NewGormAreaRepository creates a new GormAreaRepository
func NewGormAreaRepository(db *gorm.DB) *GormAreaRepository {
	return &GormAreaRepository{db: db}
}

// FindByIDForTenant finds an area by ID within a tenant
func (r *GormAreaRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*geo.Area, error) {
	var model models.AreaModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAllForTenant returns every area of the tenant in match order
func (r *GormAreaRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]geo.Area, error) {
	return r.find(r.db.WithContext(ctx).Where("tenant_id = ?", tenantID))
}

// FindByRegion returns the areas of one region
func (r *GormAreaRepository) FindByRegion(ctx context.Context, tenantID, regionID uuid.UUID) ([]geo.Area, error) {
	return r.find(r.db.WithContext(ctx).Where("tenant_id = ? AND region_id = ?", tenantID, regionID))
}

func (r *GormAreaRepository) find(query *gorm.DB) ([]geo.Area, error) {
	var rows []models.AreaModel
	if err := query.Order("sort_order ASC, code ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	areas := make([]geo.Area, len(rows))
	for i := range rows {
		areas[i] = *rows[i].ToDomain()
	}
	return areas, nil
}

// ExistsByCode checks whether an area code is taken within a tenant
func (r *GormAreaRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.AreaModel{}).
		Where("tenant_id = ? AND code = ?", tenantID, strings.ToUpper(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountByRegion counts the areas of one region
func (r *GormAreaRepository) CountByRegion(ctx context.Context, tenantID, regionID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.AreaModel{}).
		Where("tenant_id = ? AND region_id = ?", tenantID, regionID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an area
func (r *GormAreaRepository) Save(ctx context.Context, area *geo.Area) error {
	return translateError(r.db.WithContext(ctx).Save(models.AreaModelFromDomain(area)).Error)
}

// DeleteForTenant deletes an area within a tenant
func (r *GormAreaRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return deleted(r.db.WithContext(ctx).Delete(&models.AreaModel{}, "tenant_id = ? AND id = ?", tenantID, id))
}
