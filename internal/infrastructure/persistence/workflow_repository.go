package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/domain/shared"
	"github.com/kioskcrm/backend/internal/domain/workflow"
	"github.com/kioskcrm/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

var (
	orderListSpec = listSpec{
		searchColumns: []string{"order_number", "item_name"},
		sortFields:    sortFields("order_number", "status", "ordered_at", "total_amount"),
		filterColumns: map[string]string{
			"status":     "status",
			"partner_id": "partner_id",
			"branch_id":  "branch_id",
			"kiosk_id":   "kiosk_id",
		},
		defaultSort: "ordered_at",
	}
	processListSpec = listSpec{
		searchColumns: []string{"title"},
		sortFields:    sortFields("title", "status", "due_date"),
		filterColumns: map[string]string{
			"status":      "status",
			"assignee_id": "assignee_id",
			"kiosk_id":    "kiosk_id",
			"order_id":    "order_id",
		},
		defaultSort: "due_date",
	}
	deliveryListSpec = listSpec{
		searchColumns: []string{"delivery_address", "carrier", "tracking_number"},
		sortFields:    sortFields("status", "requested_date", "scheduled_date"),
		filterColumns: map[string]string{
			"status":   "status",
			"order_id": "order_id",
			"kiosk_id": "kiosk_id",
		},
		defaultSort: "requested_date",
	}
)

// GormOrderRepository implements workflow.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

var _ workflow.OrderRepository = (*GormOrderRepository)(nil)

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*workflow.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).Where("tenant_id = ? AND id = ?", tenantID, id).First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

func (r *GormOrderRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]workflow.Order, error) {
	var rows []models.OrderModel
	query := orderListSpec.apply(r.db.WithContext(ctx).Model(&models.OrderModel{}).Where("tenant_id = ?", tenantID), filter)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]workflow.Order, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

func (r *GormOrderRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := orderListSpec.where(r.db.WithContext(ctx).Model(&models.OrderModel{}).Where("tenant_id = ?", tenantID), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListNumbers returns the order numbers starting with prefix
func (r *GormOrderRepository) ListNumbers(ctx context.Context, tenantID uuid.UUID, prefix string) ([]string, error) {
	return listCodes(ctx, r.db, &models.OrderModel{}, "order_number", tenantID, prefix)
}

func (r *GormOrderRepository) Save(ctx context.Context, o *workflow.Order) error {
	return translateError(r.db.WithContext(ctx).Save(models.OrderModelFromDomain(o)).Error)
}

func (r *GormOrderRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return deleted(r.db.WithContext(ctx).Delete(&models.OrderModel{}, "tenant_id = ? AND id = ?", tenantID, id))
}

// GormProcessRepository implements workflow.ProcessRepository using GORM
type GormProcessRepository struct {
	db *gorm.DB
}

var _ workflow.ProcessRepository = (*GormProcessRepository)(nil)

// NewGormProcessRepository creates a new GormProcessRepository
func NewGormProcessRepository(db *gorm.DB) *GormProcessRepository {
	return &GormProcessRepository{db: db}
}

func (r *GormProcessRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*workflow.Process, error) {
	var model models.ProcessModel
	if err := r.db.WithContext(ctx).Where("tenant_id = ? AND id = ?", tenantID, id).First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

func (r *GormProcessRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]workflow.Process, error) {
	var rows []models.ProcessModel
	query := processListSpec.apply(r.db.WithContext(ctx).Model(&models.ProcessModel{}).Where("tenant_id = ?", tenantID), filter)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return processesToDomain(rows), nil
}

func (r *GormProcessRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := processListSpec.where(r.db.WithContext(ctx).Model(&models.ProcessModel{}).Where("tenant_id = ?", tenantID), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindOpenDueBefore scans every tenant for processes that are not completed
// and due before the given instant.
func (r *GormProcessRepository) FindOpenDueBefore(ctx context.Context, before time.Time) ([]workflow.Process, error) {
	var rows []models.ProcessModel
	if err := r.db.WithContext(ctx).
		Where("status <> ? AND due_date IS NOT NULL AND due_date <= ?", workflow.ProcessStatusCompleted, before).
		Order("due_date ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return processesToDomain(rows), nil
}

func (r *GormProcessRepository) Save(ctx context.Context, p *workflow.Process) error {
	return translateError(r.db.WithContext(ctx).Save(models.ProcessModelFromDomain(p)).Error)
}

func (r *GormProcessRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return deleted(r.db.WithContext(ctx).Delete(&models.ProcessModel{}, "tenant_id = ? AND id = ?", tenantID, id))
}

func processesToDomain(rows []models.ProcessModel) []workflow.Process {
	out := make([]workflow.Process, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out
}

// GormDeliveryRequestRepository implements workflow.DeliveryRequestRepository using GORM
type GormDeliveryRequestRepository struct {
	db *gorm.DB
}

var _ workflow.DeliveryRequestRepository = (*GormDeliveryRequestRepository)(nil)

// NewGormDeliveryRequestRepository creates a new GormDeliveryRequestRepository
func NewGormDeliveryRequestRepository(db *gorm.DB) *GormDeliveryRequestRepository {
	return &GormDeliveryRequestRepository{db: db}
}

func (r *GormDeliveryRequestRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*workflow.DeliveryRequest, error) {
	var model models.DeliveryRequestModel
	if err := r.db.WithContext(ctx).Where("tenant_id = ? AND id = ?", tenantID, id).First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

func (r *GormDeliveryRequestRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]workflow.DeliveryRequest, error) {
	var rows []models.DeliveryRequestModel
	query := deliveryListSpec.apply(r.db.WithContext(ctx).Model(&models.DeliveryRequestModel{}).Where("tenant_id = ?", tenantID), filter)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return deliveriesToDomain(rows), nil
}

func (r *GormDeliveryRequestRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := deliveryListSpec.where(r.db.WithContext(ctx).Model(&models.DeliveryRequestModel{}).Where("tenant_id = ?", tenantID), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindOpenDueBefore scans every tenant for requests that are neither
// delivered nor cancelled and whose scheduled date, or requested date when
// unscheduled, is before the given instant.
func (r *GormDeliveryRequestRepository) FindOpenDueBefore(ctx context.Context, before time.Time) ([]workflow.DeliveryRequest, error) {
	var rows []models.DeliveryRequestModel
	if err := r.db.WithContext(ctx).
		Where("status NOT IN ?", []workflow.DeliveryStatus{workflow.DeliveryStatusDelivered, workflow.DeliveryStatusCancelled}).
		Where("(scheduled_date IS NOT NULL AND scheduled_date <= ?) OR (scheduled_date IS NULL AND requested_date <= ?)", before, before).
		Order("requested_date ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return deliveriesToDomain(rows), nil
}

func (r *GormDeliveryRequestRepository) Save(ctx context.Context, d *workflow.DeliveryRequest) error {
	return translateError(r.db.WithContext(ctx).Save(models.DeliveryRequestModelFromDomain(d)).Error)
}

func (r *GormDeliveryRequestRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return deleted(r.db.WithContext(ctx).Delete(&models.DeliveryRequestModel{}, "tenant_id = ? AND id = ?", tenantID, id))
}

func deliveriesToDomain(rows []models.DeliveryRequestModel) []workflow.DeliveryRequest {
	out := make([]workflow.DeliveryRequest, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out
}
