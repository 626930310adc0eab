package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/domain/organization"
	"github.com/kioskcrm/backend/internal/domain/shared"
	"github.com/kioskcrm/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

var (
	fcListSpec = listSpec{
		searchColumns: []string{"code", "name", "contact_name"},
		sortFields:    sortFields("code", "name", "status"),
		filterColumns: map[string]string{"status": "status"},
		defaultSort:   "code",
	}
	corporationListSpec = listSpec{
		searchColumns: []string{"code", "name", "representative_name"},
		sortFields:    sortFields("code", "name", "status"),
		filterColumns: map[string]string{"status": "status", "fc_id": "fc_id"},
		defaultSort:   "code",
	}
	branchListSpec = listSpec{
		searchColumns: []string{"code", "name", "address", "manager_name"},
		sortFields:    sortFields("code", "name", "status", "prefecture"),
		filterColumns: map[string]string{
			"status":         "status",
			"corporation_id": "corporation_id",
			"region_id":      "region_id",
			"area_id":        "area_id",
			"prefecture":     "prefecture",
		},
		defaultSort: "code",
	}
)

// listCodes returns codes of table rows in tenantID starting with prefix.
func listCodes(ctx context.Context, db *gorm.DB, model any, column string, tenantID uuid.UUID, prefix string) ([]string, error) {
	var codes []string
	if err := db.WithContext(ctx).Model(model).
		Where("tenant_id = ? AND "+column+` LIKE ? ESCAPE '\'`, tenantID, prefixPattern(prefix)).
		Pluck(column, &codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}

func existsByColumn(ctx context.Context, db *gorm.DB, model any, column string, tenantID uuid.UUID, value string) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Model(model).
		Where("tenant_id = ? AND "+column+" = ?", tenantID, value).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GormFCRepository implements organization.FCRepository using GORM
type GormFCRepository struct {
	db *gorm.DB
}

var _ organization.FCRepository = (*GormFCRepository)(nil)

// NewGormFCRepository creates a new GormFCRepository
func NewGormFCRepository(db *gorm.DB) *GormFCRepository {
	return &GormFCRepository{db: db}
}

func (r *GormFCRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*organization.FC, error) {
	var model models.FCModel
	if err := r.db.WithContext(ctx).Where("tenant_id = ? AND id = ?", tenantID, id).First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

func (r *GormFCRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]organization.FC, error) {
	var rows []models.FCModel
	query := fcListSpec.apply(r.db.WithContext(ctx).Model(&models.FCModel{}).Where("tenant_id = ?", tenantID), filter)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	fcs := make([]organization.FC, len(rows))
	for i := range rows {
		fcs[i] = *rows[i].ToDomain()
	}
	return fcs, nil
}

func (r *GormFCRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := fcListSpec.where(r.db.WithContext(ctx).Model(&models.FCModel{}).Where("tenant_id = ?", tenantID), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormFCRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	return existsByColumn(ctx, r.db, &models.FCModel{}, "code", tenantID, strings.ToUpper(code))
}

func (r *GormFCRepository) ListCodes(ctx context.Context, tenantID uuid.UUID, prefix string) ([]string, error) {
	return listCodes(ctx, r.db, &models.FCModel{}, "code", tenantID, prefix)
}

func (r *GormFCRepository) Save(ctx context.Context, fc *organization.FC) error {
	return translateError(r.db.WithContext(ctx).Save(models.FCModelFromDomain(fc)).Error)
}

func (r *GormFCRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return deleted(r.db.WithContext(ctx).Delete(&models.FCModel{}, "tenant_id = ? AND id = ?", tenantID, id))
}

// GormCorporationRepository implements organization.CorporationRepository using GORM
type GormCorporationRepository struct {
	db *gorm.DB
}

var _ organization.CorporationRepository = (*GormCorporationRepository)(nil)

// NewGormCorporationRepository creates a new GormCorporationRepository
func NewGormCorporationRepository(db *gorm.DB) *GormCorporationRepository {
	return &GormCorporationRepository{db: db}
}

func (r *GormCorporationRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*organization.Corporation, error) {
	var model models.CorporationModel
	if err := r.db.WithContext(ctx).Where("tenant_id = ? AND id = ?", tenantID, id).First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

func (r *GormCorporationRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]organization.Corporation, error) {
	var rows []models.CorporationModel
	query := corporationListSpec.apply(r.db.WithContext(ctx).Model(&models.CorporationModel{}).Where("tenant_id = ?", tenantID), filter)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return corporationsToDomain(rows), nil
}

func (r *GormCorporationRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := corporationListSpec.where(r.db.WithContext(ctx).Model(&models.CorporationModel{}).Where("tenant_id = ?", tenantID), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindByFC returns the corporations of one FC ordered by code
func (r *GormCorporationRepository) FindByFC(ctx context.Context, tenantID, fcID uuid.UUID) ([]organization.Corporation, error) {
	var rows []models.CorporationModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND fc_id = ?", tenantID, fcID).
		Order("code ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return corporationsToDomain(rows), nil
}

func (r *GormCorporationRepository) CountByFC(ctx context.Context, tenantID, fcID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.CorporationModel{}).
		Where("tenant_id = ? AND fc_id = ?", tenantID, fcID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormCorporationRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	return existsByColumn(ctx, r.db, &models.CorporationModel{}, "code", tenantID, strings.ToUpper(code))
}

func (r *GormCorporationRepository) ListCodes(ctx context.Context, tenantID uuid.UUID, prefix string) ([]string, error) {
	return listCodes(ctx, r.db, &models.CorporationModel{}, "code", tenantID, prefix)
}

func (r *GormCorporationRepository) Save(ctx context.Context, c *organization.Corporation) error {
	return translateError(r.db.WithContext(ctx).Save(models.CorporationModelFromDomain(c)).Error)
}

func (r *GormCorporationRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return deleted(r.db.WithContext(ctx).Delete(&models.CorporationModel{}, "tenant_id = ? AND id = ?", tenantID, id))
}

func corporationsToDomain(rows []models.CorporationModel) []organization.Corporation {
	out := make([]organization.Corporation, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out
}

// GormBranchRepository implements organization.BranchRepository using GORM
type GormBranchRepository struct {
	db *gorm.DB
}

var _ organization.BranchRepository = (*GormBranchRepository)(nil)

// NewGormBranchRepository creates a new GormBranchRepository
func NewGormBranchRepository(db *gorm.DB) *GormBranchRepository {
	return &GormBranchRepository{db: db}
}

func (r *GormBranchRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*organization.Branch, error) {
	var model models.BranchModel
	if err := r.db.WithContext(ctx).Where("tenant_id = ? AND id = ?", tenantID, id).First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

func (r *GormBranchRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]organization.Branch, error) {
	var rows []models.BranchModel
	query := branchListSpec.apply(r.db.WithContext(ctx).Model(&models.BranchModel{}).Where("tenant_id = ?", tenantID), filter)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return branchesToDomain(rows), nil
}

func (r *GormBranchRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := branchListSpec.where(r.db.WithContext(ctx).Model(&models.BranchModel{}).Where("tenant_id = ?", tenantID), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindByCorporations returns the branches of the given corporations ordered by code
func (r *GormBranchRepository) FindByCorporations(ctx context.Context, tenantID uuid.UUID, corporationIDs []uuid.UUID) ([]organization.Branch, error) {
	if len(corporationIDs) == 0 {
		return []organization.Branch{}, nil
	}
	var rows []models.BranchModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND corporation_id IN ?", tenantID, corporationIDs).
		Order("code ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return branchesToDomain(rows), nil
}

func (r *GormBranchRepository) CountByCorporation(ctx context.Context, tenantID, corporationID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.BranchModel{}).
		Where("tenant_id = ? AND corporation_id = ?", tenantID, corporationID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormBranchRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	return existsByColumn(ctx, r.db, &models.BranchModel{}, "code", tenantID, strings.ToUpper(code))
}

func (r *GormBranchRepository) ListCodes(ctx context.Context, tenantID uuid.UUID, prefix string) ([]string, error) {
	return listCodes(ctx, r.db, &models.BranchModel{}, "code", tenantID, prefix)
}

func (r *GormBranchRepository) Save(ctx context.Context, b *organization.Branch) error {
	return translateError(r.db.WithContext(ctx).Save(models.BranchModelFromDomain(b)).Error)
}

func (r *GormBranchRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return deleted(r.db.WithContext(ctx).Delete(&models.BranchModel{}, "tenant_id = ? AND id = ?", tenantID, id))
}

func branchesToDomain(rows []models.BranchModel) []organization.Branch {
	out := make([]organization.Branch, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out
}
