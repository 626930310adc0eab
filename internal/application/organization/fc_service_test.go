package organization

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/application/common"
	"github.com/kioskcrm/backend/internal/application/event"
	"github.com/kioskcrm/backend/internal/domain/organization"
	"github.com/kioskcrm/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	events []shared.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}

func TestFCService_Create(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("allocates next code when empty", func(t *testing.T) {
		fcRepo := new(MockFCRepository)
		pub := &recordingPublisher{}
		svc := NewFCService(fcRepo, new(MockCorporationRepository), new(MockBranchRepository), event.NewDispatcher(pub, nil))

		fcRepo.On("ListCodes", ctx, tenantID, "FC").Return([]string{"FC001", "FC002"}, nil)
		fcRepo.On("Save", ctx, mock.AnythingOfType("*organization.FC")).Return(nil)

		resp, err := svc.Create(ctx, tenantID, CreateFCRequest{
			Name:        "Sakura Chain",
			ContactName: "山田太郎",
			Email:       "Yamada@Example.com",
			Phone:       "03-1234-5678",
		})
		require.NoError(t, err)
		assert.Equal(t, "FC003", resp.Code)
		assert.Equal(t, "yamada@example.com", resp.Email)
		assert.Equal(t, "active", resp.Status)
		require.Len(t, pub.events, 1)
		assert.Equal(t, organization.EventTypeFCCreated, pub.events[0].EventType())
		fcRepo.AssertNotCalled(t, "ExistsByCode", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("explicit duplicate code", func(t *testing.T) {
		fcRepo := new(MockFCRepository)
		svc := NewFCService(fcRepo, new(MockCorporationRepository), new(MockBranchRepository), nil)

		fcRepo.On("ExistsByCode", ctx, tenantID, "FC001").Return(true, nil)

		_, err := svc.Create(ctx, tenantID, CreateFCRequest{Code: "fc001", Name: "X"})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("invalid email", func(t *testing.T) {
		fcRepo := new(MockFCRepository)
		svc := NewFCService(fcRepo, new(MockCorporationRepository), new(MockBranchRepository), nil)

		fcRepo.On("ExistsByCode", ctx, tenantID, "FC009").Return(false, nil)

		_, err := svc.Create(ctx, tenantID, CreateFCRequest{Code: "FC009", Name: "X", Email: "nope"})
		assert.Error(t, err)
		fcRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestFCService_NextCode(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	fcRepo := new(MockFCRepository)
	svc := NewFCService(fcRepo, nil, nil, nil)

	fcRepo.On("ListCodes", ctx, tenantID, "FC").Return([]string{"FC099"}, nil)

	resp, err := svc.NextCode(ctx, tenantID)
	require.NoError(t, err)
	assert.Equal(t, &common.NextCodeResponse{Code: "FC100"}, resp)
}

func TestFCService_List(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	fcRepo := new(MockFCRepository)
	svc := NewFCService(fcRepo, nil, nil, nil)

	fc, err := organization.NewFC(tenantID, "FC001", "Sakura")
	require.NoError(t, err)

	matchFilter := mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 1 && f.PageSize == 20 && f.OrderBy == "code" && f.Filters["status"] == "active"
	})
	fcRepo.On("FindAllForTenant", ctx, tenantID, matchFilter).Return([]organization.FC{*fc}, nil)
	fcRepo.On("CountForTenant", ctx, tenantID, matchFilter).Return(int64(1), nil)

	items, total, err := svc.List(ctx, tenantID, FCListFilter{Status: "active"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "FC001", items[0].Code)
}

func TestFCService_Update(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	fcRepo := new(MockFCRepository)
	svc := NewFCService(fcRepo, nil, nil, nil)

	fc, err := organization.NewFC(tenantID, "FC001", "Sakura")
	require.NoError(t, err)
	fcRepo.On("FindByIDForTenant", ctx, tenantID, fc.ID).Return(fc, nil)
	fcRepo.On("Save", ctx, fc).Return(nil)

	name := "Sakura Holdings"
	status := "inactive"
	phone := "06-1111-2222"
	resp, err := svc.Update(ctx, tenantID, fc.ID, UpdateFCRequest{Name: &name, Status: &status, Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "Sakura Holdings", resp.Name)
	assert.Equal(t, "inactive", resp.Status)
	assert.Equal(t, "06-1111-2222", resp.Phone)

	bad := "archived"
	_, err = svc.Update(ctx, tenantID, fc.ID, UpdateFCRequest{Status: &bad})
	assert.Error(t, err)
}

func TestFCService_Delete(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("rejects FC with corporations", func(t *testing.T) {
		fcRepo := new(MockFCRepository)
		corpRepo := new(MockCorporationRepository)
		svc := NewFCService(fcRepo, corpRepo, nil, nil)

		id := uuid.New()
		fcRepo.On("FindByIDForTenant", ctx, tenantID, id).Return(&organization.FC{}, nil)
		corpRepo.On("CountByFC", ctx, tenantID, id).Return(int64(1), nil)

		err := svc.Delete(ctx, tenantID, id)
		assert.ErrorIs(t, err, shared.ErrHasChildren)
		fcRepo.AssertNotCalled(t, "DeleteForTenant", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("deletes empty FC", func(t *testing.T) {
		fcRepo := new(MockFCRepository)
		corpRepo := new(MockCorporationRepository)
		svc := NewFCService(fcRepo, corpRepo, nil, nil)

		id := uuid.New()
		fcRepo.On("FindByIDForTenant", ctx, tenantID, id).Return(&organization.FC{}, nil)
		corpRepo.On("CountByFC", ctx, tenantID, id).Return(int64(0), nil)
		fcRepo.On("DeleteForTenant", ctx, tenantID, id).Return(nil)

		require.NoError(t, svc.Delete(ctx, tenantID, id))
	})

	t.Run("count error", func(t *testing.T) {
		fcRepo := new(MockFCRepository)
		corpRepo := new(MockCorporationRepository)
		svc := NewFCService(fcRepo, corpRepo, nil, nil)

		id := uuid.New()
		fcRepo.On("FindByIDForTenant", ctx, tenantID, id).Return(&organization.FC{}, nil)
		corpRepo.On("CountByFC", ctx, tenantID, id).Return(int64(0), errors.New("db"))

		assert.Error(t, svc.Delete(ctx, tenantID, id))
	})
}

func TestFCService_Tree(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	fcRepo := new(MockFCRepository)
	corpRepo := new(MockCorporationRepository)
	branchRepo := new(MockBranchRepository)
	svc := NewFCService(fcRepo, corpRepo, branchRepo, nil)

	fc, err := organization.NewFC(tenantID, "FC001", "Sakura")
	require.NoError(t, err)
	corpA, err := organization.NewCorporation(tenantID, fc.ID, "CP001", "A")
	require.NoError(t, err)
	corpB, err := organization.NewCorporation(tenantID, fc.ID, "CP002", "B")
	require.NoError(t, err)
	branch, err := organization.NewBranch(tenantID, corpA.ID, "BR001", "Shinjuku")
	require.NoError(t, err)

	fcRepo.On("FindByIDForTenant", ctx, tenantID, fc.ID).Return(fc, nil)
	corpRepo.On("FindByFC", ctx, tenantID, fc.ID).Return([]organization.Corporation{*corpA, *corpB}, nil)
	branchRepo.On("FindByCorporations", ctx, tenantID, []uuid.UUID{corpA.ID, corpB.ID}).Return([]organization.Branch{*branch}, nil)

	tree, err := svc.Tree(ctx, tenantID, fc.ID)
	require.NoError(t, err)
	assert.Equal(t, "FC001", tree.Code)
	require.Len(t, tree.Corporations, 2)
	require.Len(t, tree.Corporations[0].Branches, 1)
	assert.Equal(t, "BR001", tree.Corporations[0].Branches[0].Code)
	assert.NotNil(t, tree.Corporations[1].Branches)
	assert.Empty(t, tree.Corporations[1].Branches)
}

func TestFCService_Tree_NoCorporations(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	fcRepo := new(MockFCRepository)
	corpRepo := new(MockCorporationRepository)
	branchRepo := new(MockBranchRepository)
	svc := NewFCService(fcRepo, corpRepo, branchRepo, nil)

	fc, err := organization.NewFC(tenantID, "FC001", "Sakura")
	require.NoError(t, err)
	fcRepo.On("FindByIDForTenant", ctx, tenantID, fc.ID).Return(fc, nil)
	corpRepo.On("FindByFC", ctx, tenantID, fc.ID).Return([]organization.Corporation{}, nil)

	tree, err := svc.Tree(ctx, tenantID, fc.ID)
	require.NoError(t, err)
	assert.Empty(t, tree.Corporations)
	branchRepo.AssertNotCalled(t, "FindByCorporations", mock.Anything, mock.Anything, mock.Anything)
}
