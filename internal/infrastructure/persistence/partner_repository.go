package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/domain/partner"
	"github.com/kioskcrm/backend/internal/domain/shared"
	"github.com/kioskcrm/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

var partnerListSpec = listSpec{
	searchColumns: []string{"code", "name", "contact_name", "email", "address"},
	sortFields:    sortFields("code", "name", "type", "status", "prefecture"),
	filterColumns: map[string]string{
		"type":       "type",
		"status":     "status",
		"region_id":  "region_id",
		"prefecture": "prefecture",
	},
	defaultSort: "code",
}

// GormPartnerRepository implements partner.PartnerRepository using GORM
type GormPartnerRepository struct {
	db *gorm.DB
}

var _ partner.PartnerRepository = (*GormPartnerRepository)(nil)

// NewGormPartnerRepository creates a new GormPartnerRepository
func NewGormPartnerRepository(db *gorm.DB) *GormPartnerRepository {
	return &GormPartnerRepository{db: db}
}

func (r *GormPartnerRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Partner, error) {
	var model models.PartnerModel
	if err := r.db.WithContext(ctx).Where("tenant_id = ? AND id = ?", tenantID, id).First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByCode finds a partner by its code within a tenant
func (r *GormPartnerRepository) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*partner.Partner, error) {
	var model models.PartnerModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND code = ?", tenantID, strings.ToUpper(strings.TrimSpace(code))).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

func (r *GormPartnerRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Partner, error) {
	var rows []models.PartnerModel
	query := partnerListSpec.apply(r.db.WithContext(ctx).Model(&models.PartnerModel{}).Where("tenant_id = ?", tenantID), filter)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	partners := make([]partner.Partner, len(rows))
	for i := range rows {
		partners[i] = *rows[i].ToDomain()
	}
	return partners, nil
}

func (r *GormPartnerRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := partnerListSpec.where(r.db.WithContext(ctx).Model(&models.PartnerModel{}).Where("tenant_id = ?", tenantID), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormPartnerRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	return existsByColumn(ctx, r.db, &models.PartnerModel{}, "code", tenantID, strings.ToUpper(code))
}

func (r *GormPartnerRepository) ListCodes(ctx context.Context, tenantID uuid.UUID, prefix string) ([]string, error) {
	return listCodes(ctx, r.db, &models.PartnerModel{}, "code", tenantID, prefix)
}

func (r *GormPartnerRepository) Save(ctx context.Context, p *partner.Partner) error {
	return translateError(r.db.WithContext(ctx).Save(models.PartnerModelFromDomain(p)).Error)
}

func (r *GormPartnerRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return deleted(r.db.WithContext(ctx).Delete(&models.PartnerModel{}, "tenant_id = ? AND id = ?", tenantID, id))
}

// GormPricingRepository implements partner.PricingRepository using GORM
type GormPricingRepository struct {
	db *gorm.DB
}

var _ partner.PricingRepository = (*GormPricingRepository)(nil)

// NewGormPricingRepository creates a new GormPricingRepository
func NewGormPricingRepository(db *gorm.DB) *GormPricingRepository {
	return &GormPricingRepository{db: db}
}

func (r *GormPricingRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Pricing, error) {
	var model models.PricingModel
	if err := r.db.WithContext(ctx).Where("tenant_id = ? AND id = ?", tenantID, id).First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByPartner returns the partner's pricings, newest validity first
func (r *GormPricingRepository) FindByPartner(ctx context.Context, tenantID, partnerID uuid.UUID) ([]partner.Pricing, error) {
	return r.find(r.db.WithContext(ctx).Where("tenant_id = ? AND partner_id = ?", tenantID, partnerID))
}

// FindByPartnerAndItem returns every pricing row of one item for a partner
func (r *GormPricingRepository) FindByPartnerAndItem(ctx context.Context, tenantID, partnerID uuid.UUID, itemCode string) ([]partner.Pricing, error) {
	return r.find(r.db.WithContext(ctx).
		Where("tenant_id = ? AND partner_id = ? AND item_code = ?", tenantID, partnerID, strings.TrimSpace(itemCode)))
}

func (r *GormPricingRepository) find(query *gorm.DB) ([]partner.Pricing, error) {
	var rows []models.PricingModel
	if err := query.Order("item_code ASC, valid_from DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]partner.Pricing, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

func (r *GormPricingRepository) Save(ctx context.Context, p *partner.Pricing) error {
	return translateError(r.db.WithContext(ctx).Save(models.PricingModelFromDomain(p)).Error)
}

func (r *GormPricingRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return deleted(r.db.WithContext(ctx).Delete(&models.PricingModel{}, "tenant_id = ? AND id = ?", tenantID, id))
}
