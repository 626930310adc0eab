package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/domain/marketing"
	"github.com/kioskcrm/backend/internal/domain/shared"
	"github.com/kioskcrm/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

var (
	campaignListSpec = listSpec{
		searchColumns: []string{"name", "channel"},
		sortFields:    sortFields("name", "status", "start_date", "budget"),
		filterColumns: map[string]string{"status": "status", "channel": "channel"},
		defaultSort:   "start_date",
	}
	leadListSpec = listSpec{
		searchColumns: []string{"name", "company_name", "email", "address"},
		sortFields:    sortFields("name", "company_name", "status", "source"),
		filterColumns: map[string]string{
			"status":      "status",
			"source":      "source",
			"campaign_id": "campaign_id",
			"region_id":   "region_id",
		},
	}
)

// GormCampaignRepository implements marketing.CampaignRepository using GORM
type GormCampaignRepository struct {
	db *gorm.DB
}

var _ marketing.CampaignRepository = (*GormCampaignRepository)(nil)

// NewGormCampaignRepository creates a new GormCampaignRepository
func NewGormCampaignRepository(db *gorm.DB) *GormCampaignRepository {
	return &GormCampaignRepository{db: db}
}

func (r *GormCampaignRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*marketing.Campaign, error) {
	var model models.CampaignModel
	if err := r.db.WithContext(ctx).Where("tenant_id = ? AND id = ?", tenantID, id).First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

func (r *GormCampaignRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]marketing.Campaign, error) {
	var rows []models.CampaignModel
	query := campaignListSpec.apply(r.db.WithContext(ctx).Model(&models.CampaignModel{}).Where("tenant_id = ?", tenantID), filter)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]marketing.Campaign, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

func (r *GormCampaignRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := campaignListSpec.where(r.db.WithContext(ctx).Model(&models.CampaignModel{}).Where("tenant_id = ?", tenantID), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormCampaignRepository) Save(ctx context.Context, c *marketing.Campaign) error {
	return translateError(r.db.WithContext(ctx).Save(models.CampaignModelFromDomain(c)).Error)
}

func (r *GormCampaignRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return deleted(r.db.WithContext(ctx).Delete(&models.CampaignModel{}, "tenant_id = ? AND id = ?", tenantID, id))
}

// GormLeadRepository implements marketing.LeadRepository using GORM
type GormLeadRepository struct {
	db *gorm.DB
}

var _ marketing.LeadRepository = (*GormLeadRepository)(nil)

// NewGormLeadRepository creates a new GormLeadRepository
func NewGormLeadRepository(db *gorm.DB) *GormLeadRepository {
	return &GormLeadRepository{db: db}
}

func (r *GormLeadRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*marketing.Lead, error) {
	var model models.LeadModel
	if err := r.db.WithContext(ctx).Where("tenant_id = ? AND id = ?", tenantID, id).First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

func (r *GormLeadRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]marketing.Lead, error) {
	var rows []models.LeadModel
	query := leadListSpec.apply(r.db.WithContext(ctx).Model(&models.LeadModel{}).Where("tenant_id = ?", tenantID), filter)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]marketing.Lead, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

func (r *GormLeadRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := leadListSpec.where(r.db.WithContext(ctx).Model(&models.LeadModel{}).Where("tenant_id = ?", tenantID), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByCampaignAndStatus groups a campaign's leads by status
func (r *GormLeadRepository) CountByCampaignAndStatus(ctx context.Context, tenantID, campaignID uuid.UUID) ([]marketing.LeadStatusCount, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	if err := r.db.WithContext(ctx).Model(&models.LeadModel{}).
		Select("status, COUNT(*) AS count").
		Where("tenant_id = ? AND campaign_id = ?", tenantID, campaignID).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]marketing.LeadStatusCount, len(rows))
	for i, row := range rows {
		out[i] = marketing.LeadStatusCount{Status: marketing.LeadStatus(row.Status), Count: row.Count}
	}
	return out, nil
}

func (r *GormLeadRepository) Save(ctx context.Context, l *marketing.Lead) error {
	return translateError(r.db.WithContext(ctx).Save(models.LeadModelFromDomain(l)).Error)
}

func (r *GormLeadRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return deleted(r.db.WithContext(ctx).Delete(&models.LeadModel{}, "tenant_id = ? AND id = ?", tenantID, id))
}
