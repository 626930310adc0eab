package workflow

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/domain/identity"
	"github.com/kioskcrm/backend/internal/domain/shared"
	"github.com/kioskcrm/backend/internal/domain/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProcessService_Create(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	user, err := identity.NewUser(tenantID, "tanaka", "s3cret-pass", identity.RoleStaff)
	require.NoError(t, err)

	t.Run("with assignee and due date", func(t *testing.T) {
		processes := new(MockProcessRepository)
		svc := NewProcessService(processes, new(MockOrderRepository), stubUsers{byID: map[uuid.UUID]*identity.User{user.ID: user}}, nil)
		svc.now = func() time.Time { return time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC) }
		processes.On("Save", ctx, mock.AnythingOfType("*workflow.Process")).Return(nil)

		resp, err := svc.Create(ctx, tenantID, CreateProcessRequest{
			Title:      "新宿店 設置工事",
			AssigneeID: &user.ID,
			DueDate:    "2026-06-01",
		})
		require.NoError(t, err)
		assert.Equal(t, "not_started", resp.Status)
		require.NotNil(t, resp.DueDate)
		assert.Equal(t, "2026-06-01", *resp.DueDate)
		assert.True(t, resp.Overdue)
	})

	t.Run("unknown assignee", func(t *testing.T) {
		svc := NewProcessService(new(MockProcessRepository), new(MockOrderRepository), stubUsers{}, nil)
		id := uuid.New()
		_, err := svc.Create(ctx, tenantID, CreateProcessRequest{Title: "x", AssigneeID: &id})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_ASSIGNEE", domainErr.Code)
	})

	t.Run("unknown order", func(t *testing.T) {
		orders := new(MockOrderRepository)
		svc := NewProcessService(new(MockProcessRepository), orders, stubUsers{}, nil)
		id := uuid.New()
		orders.On("FindByIDForTenant", ctx, tenantID, id).Return(nil, shared.ErrNotFound)

		_, err := svc.Create(ctx, tenantID, CreateProcessRequest{Title: "x", OrderID: &id})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_ORDER", domainErr.Code)
	})
}

func TestProcessService_Update(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("moving the due date re-arms the reminder", func(t *testing.T) {
		processes := new(MockProcessRepository)
		svc := NewProcessService(processes, new(MockOrderRepository), stubUsers{}, nil)
		p, _ := workflow.NewProcess(tenantID, "保守点検")
		due := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
		p.Schedule(&due)
		p.MarkReminded(due)
		processes.On("FindByIDForTenant", ctx, tenantID, p.ID).Return(p, nil)
		processes.On("Save", ctx, p).Return(nil)

		newDue := "2026-06-15"
		resp, err := svc.Update(ctx, tenantID, p.ID, UpdateProcessRequest{DueDate: &newDue})
		require.NoError(t, err)
		assert.Equal(t, "2026-06-15", *resp.DueDate)
		assert.Nil(t, resp.RemindedAt)
	})

	t.Run("same due date keeps reminder", func(t *testing.T) {
		processes := new(MockProcessRepository)
		svc := NewProcessService(processes, new(MockOrderRepository), stubUsers{}, nil)
		p, _ := workflow.NewProcess(tenantID, "保守点検")
		due := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
		p.Schedule(&due)
		p.MarkReminded(due)
		processes.On("FindByIDForTenant", ctx, tenantID, p.ID).Return(p, nil)
		processes.On("Save", ctx, p).Return(nil)

		same := "2026-06-01"
		status := "completed"
		resp, err := svc.Update(ctx, tenantID, p.ID, UpdateProcessRequest{DueDate: &same, Status: &status})
		require.NoError(t, err)
		assert.NotNil(t, resp.RemindedAt)
		assert.Equal(t, "completed", resp.Status)
		assert.False(t, resp.Overdue)
	})

	t.Run("empty due date clears", func(t *testing.T) {
		processes := new(MockProcessRepository)
		svc := NewProcessService(processes, new(MockOrderRepository), stubUsers{}, nil)
		p, _ := workflow.NewProcess(tenantID, "保守点検")
		due := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
		p.Schedule(&due)
		processes.On("FindByIDForTenant", ctx, tenantID, p.ID).Return(p, nil)
		processes.On("Save", ctx, p).Return(nil)

		empty := ""
		resp, err := svc.Update(ctx, tenantID, p.ID, UpdateProcessRequest{DueDate: &empty})
		require.NoError(t, err)
		assert.Nil(t, resp.DueDate)
	})
}

func TestDeliveryService(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("create with shipping", func(t *testing.T) {
		deliveries := new(MockDeliveryRepository)
		svc := NewDeliveryService(deliveries, new(MockOrderRepository), nil)
		deliveries.On("Save", ctx, mock.AnythingOfType("*workflow.DeliveryRequest")).Return(nil)

		resp, err := svc.Create(ctx, tenantID, CreateDeliveryRequest{
			DeliveryAddress: "東京都港区芝公園4-2-8",
			RequestedDate:   "2026-07-01",
			ScheduledDate:   "2026-07-03",
			Carrier:         "ヤマト運輸",
		})
		require.NoError(t, err)
		assert.Equal(t, "requested", resp.Status)
		require.NotNil(t, resp.ScheduledDate)
		assert.Equal(t, "2026-07-03", *resp.ScheduledDate)
		assert.Equal(t, "ヤマト運輸", resp.Carrier)
	})

	t.Run("bad requested date", func(t *testing.T) {
		svc := NewDeliveryService(new(MockDeliveryRepository), new(MockOrderRepository), nil)
		_, err := svc.Create(ctx, tenantID, CreateDeliveryRequest{DeliveryAddress: "x", RequestedDate: "07/01"})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_DATE", domainErr.Code)
	})

	t.Run("update clears schedule and keeps carrier", func(t *testing.T) {
		deliveries := new(MockDeliveryRepository)
		svc := NewDeliveryService(deliveries, new(MockOrderRepository), nil)
		d, _ := workflow.NewDeliveryRequest(tenantID, "大阪府大阪市北区", time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC))
		sched := time.Date(2026, 7, 2, 0, 0, 0, 0, time.UTC)
		d.SetShipping("佐川急便", "1234", &sched)
		deliveries.On("FindByIDForTenant", ctx, tenantID, d.ID).Return(d, nil)
		deliveries.On("Save", ctx, d).Return(nil)

		empty := ""
		status := "in_transit"
		resp, err := svc.Update(ctx, tenantID, d.ID, UpdateDeliveryRequest{ScheduledDate: &empty, Status: &status})
		require.NoError(t, err)
		assert.Nil(t, resp.ScheduledDate)
		assert.Equal(t, "佐川急便", resp.Carrier)
		assert.Equal(t, "in_transit", resp.Status)
	})
}
