package asset

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	geoapp "github.com/kioskcrm/backend/internal/application/geo"
	"github.com/kioskcrm/backend/internal/domain/asset"
	"github.com/kioskcrm/backend/internal/domain/geo"
	"github.com/kioskcrm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type kioskFixture struct {
	kiosks    *MockKioskRepository
	contracts *MockContractRepository
	branches  *MockBranchRepository
	partners  *MockPartnerRepository
	geo       *MockGeoResolver
	svc       *KioskService
}

func newKioskFixture() *kioskFixture {
	f := &kioskFixture{
		kiosks:    new(MockKioskRepository),
		contracts: new(MockContractRepository),
		branches:  new(MockBranchRepository),
		partners:  new(MockPartnerRepository),
		geo:       new(MockGeoResolver),
	}
	f.svc = NewKioskService(KioskServiceDeps{
		KioskRepo:    f.kiosks,
		ContractRepo: f.contracts,
		BranchRepo:   f.branches,
		PartnerRepo:  f.partners,
		Geo:          f.geo,
	})
	f.svc.now = func() time.Time { return time.Date(2026, 4, 1, 9, 30, 0, 0, time.UTC) }
	return f
}

func TestKioskService_Create(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("registers in stock without address", func(t *testing.T) {
		f := newKioskFixture()
		f.kiosks.On("ExistsBySerial", ctx, tenantID, "KS-0001").Return(false, nil)
		f.kiosks.On("Save", ctx, mock.AnythingOfType("*asset.Kiosk")).Return(nil)

		resp, err := f.svc.Create(ctx, tenantID, CreateKioskRequest{SerialNumber: " ks-0001 ", ModelName: "KX-200"})
		require.NoError(t, err)
		assert.Equal(t, "KS-0001", resp.SerialNumber)
		assert.Equal(t, "in_stock", resp.Status)
		assert.Nil(t, resp.InstalledAt)
		f.geo.AssertNotCalled(t, "Locate", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("install address derives location and installs", func(t *testing.T) {
		f := newKioskFixture()
		regionID, areaID := uuid.New(), uuid.New()
		f.kiosks.On("ExistsBySerial", ctx, tenantID, "KS-0002").Return(false, nil)
		f.geo.On("Locate", ctx, tenantID, geoapp.LocateInput{Address: "東京都新宿区西新宿2-8-1"}).
			Return(geoapp.Placement{
				Address:    "東京都新宿区西新宿2-8-1",
				Prefecture: "東京都",
				City:       "新宿区",
				RegionID:   &regionID,
				AreaID:     &areaID,
				Method:     geo.MatchByKeyword,
			}, nil)
		f.kiosks.On("Save", ctx, mock.AnythingOfType("*asset.Kiosk")).Return(nil)

		resp, err := f.svc.Create(ctx, tenantID, CreateKioskRequest{
			SerialNumber:   "KS-0002",
			ModelName:      "KX-200",
			InstallAddress: "東京都新宿区西新宿2-8-1",
		})
		require.NoError(t, err)
		assert.Equal(t, "installed", resp.Status)
		assert.Equal(t, &regionID, resp.RegionID)
		assert.Equal(t, &areaID, resp.AreaID)
		require.NotNil(t, resp.InstalledAt)
		assert.Equal(t, "2026-04-01", *resp.InstalledAt)
	})

	t.Run("duplicate serial", func(t *testing.T) {
		f := newKioskFixture()
		f.kiosks.On("ExistsBySerial", ctx, tenantID, "KS-0001").Return(true, nil)

		_, err := f.svc.Create(ctx, tenantID, CreateKioskRequest{SerialNumber: "KS-0001", ModelName: "KX-200"})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		f.kiosks.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unknown branch", func(t *testing.T) {
		f := newKioskFixture()
		branchID := uuid.New()
		f.kiosks.On("ExistsBySerial", ctx, tenantID, "KS-0003").Return(false, nil)
		f.branches.On("FindByIDForTenant", ctx, tenantID, branchID).Return(nil, shared.ErrNotFound)

		_, err := f.svc.Create(ctx, tenantID, CreateKioskRequest{SerialNumber: "KS-0003", ModelName: "KX-200", BranchID: &branchID})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_BRANCH", domainErr.Code)
	})

	t.Run("negative price", func(t *testing.T) {
		f := newKioskFixture()
		price := decimal.NewFromInt(-1)
		f.kiosks.On("ExistsBySerial", ctx, tenantID, "KS-0004").Return(false, nil)

		_, err := f.svc.Create(ctx, tenantID, CreateKioskRequest{SerialNumber: "KS-0004", ModelName: "KX-200", ListPrice: &price})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_PRICE", domainErr.Code)
	})
}

func TestKioskService_Update(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("status set directly", func(t *testing.T) {
		f := newKioskFixture()
		k, _ := asset.NewKiosk(tenantID, "KS-0100", "KX-200")
		f.kiosks.On("FindByIDForTenant", ctx, tenantID, k.ID).Return(k, nil)
		f.kiosks.On("Save", ctx, k).Return(nil)

		status := "maintenance"
		resp, err := f.svc.Update(ctx, tenantID, k.ID, UpdateKioskRequest{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, "maintenance", resp.Status)
	})

	t.Run("clear branch keeps partner", func(t *testing.T) {
		f := newKioskFixture()
		k, _ := asset.NewKiosk(tenantID, "KS-0101", "KX-200")
		branchID, partnerID := uuid.New(), uuid.New()
		k.Assign(&branchID, &partnerID)
		f.kiosks.On("FindByIDForTenant", ctx, tenantID, k.ID).Return(k, nil)
		f.kiosks.On("Save", ctx, k).Return(nil)

		resp, err := f.svc.Update(ctx, tenantID, k.ID, UpdateKioskRequest{ClearBranch: true})
		require.NoError(t, err)
		assert.Nil(t, resp.BranchID)
		assert.Equal(t, &partnerID, resp.PartnerID)
	})

	t.Run("new address re-derives placement without changing status", func(t *testing.T) {
		f := newKioskFixture()
		k, _ := asset.NewKiosk(tenantID, "KS-0102", "KX-200")
		require.NoError(t, k.SetStatus(asset.StatusMaintenance))
		regionID := uuid.New()
		addr := "大阪府大阪市北区梅田1-1"
		f.kiosks.On("FindByIDForTenant", ctx, tenantID, k.ID).Return(k, nil)
		f.geo.On("Locate", ctx, tenantID, geoapp.LocateInput{Address: addr}).
			Return(geoapp.Placement{Address: addr, Prefecture: "大阪府", City: "大阪市", RegionID: &regionID}, nil)
		f.kiosks.On("Save", ctx, k).Return(nil)

		resp, err := f.svc.Update(ctx, tenantID, k.ID, UpdateKioskRequest{InstallAddress: &addr})
		require.NoError(t, err)
		assert.Equal(t, "maintenance", resp.Status)
		assert.Equal(t, "大阪府", resp.Prefecture)
		assert.Equal(t, &regionID, resp.RegionID)
	})

	t.Run("not found", func(t *testing.T) {
		f := newKioskFixture()
		id := uuid.New()
		f.kiosks.On("FindByIDForTenant", ctx, tenantID, id).Return(nil, shared.ErrNotFound)

		_, err := f.svc.Update(ctx, tenantID, id, UpdateKioskRequest{})
		assert.True(t, shared.IsNotFound(err))
	})
}

func TestKioskService_LeaseAndEnd(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	f := newKioskFixture()
	k, _ := asset.NewKiosk(tenantID, "KS-0200", "KX-200")
	f.kiosks.On("FindByIDForTenant", ctx, tenantID, k.ID).Return(k, nil)
	f.kiosks.On("Save", ctx, k).Return(nil)
	f.contracts.On("Save", ctx, mock.AnythingOfType("*asset.Contract")).Return(nil)
	f.contracts.On("FindByKiosk", ctx, tenantID, k.ID).Return([]asset.Contract(nil), nil).Once()

	leased, err := f.svc.Lease(ctx, tenantID, k.ID, ContractRequest{
		CustomerName: "駅前ドラッグ",
		StartDate:    "2026-01-01",
		MonthlyFee:   decimal.NewFromInt(15000),
	})
	require.NoError(t, err)
	assert.Equal(t, "leased", leased.Kiosk.Status)
	assert.Equal(t, "lease", leased.Contract.Type)
	assert.Equal(t, "2026-01-01", leased.Contract.StartDate)
	assert.Nil(t, leased.Contract.EndDate)
	assert.True(t, decimal.NewFromInt(15000).Equal(leased.Kiosk.MonthlyFee))

	contract := f.contracts.Calls[0].Arguments.Get(1).(*asset.Contract)
	f.contracts.On("FindByIDForTenant", ctx, tenantID, contract.ID).Return(contract, nil)
	f.contracts.On("FindByKiosk", ctx, tenantID, k.ID).Return([]asset.Contract{*contract}, nil)

	ended, err := f.svc.EndContract(ctx, tenantID, k.ID, contract.ID, EndContractRequest{})
	require.NoError(t, err)
	assert.Equal(t, "in_stock", ended.Kiosk.Status)
	require.NotNil(t, ended.Contract.EndDate)
	assert.Equal(t, "2026-04-01", *ended.Contract.EndDate)

	_, err = f.svc.EndContract(ctx, tenantID, k.ID, contract.ID, EndContractRequest{})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
}

func TestKioskService_LeaseRejectsSecondOpenLease(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("status already leased", func(t *testing.T) {
		f := newKioskFixture()
		k, _ := asset.NewKiosk(tenantID, "KS-0210", "KX-200")
		require.NoError(t, k.SetStatus(asset.StatusLeased))
		f.kiosks.On("FindByIDForTenant", ctx, tenantID, k.ID).Return(k, nil)
		f.contracts.On("FindByKiosk", ctx, tenantID, k.ID).Return([]asset.Contract(nil), nil)

		_, err := f.svc.Lease(ctx, tenantID, k.ID, ContractRequest{CustomerName: "B", StartDate: "2026-03-01"})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
		f.contracts.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("open lease in history after a manual status change", func(t *testing.T) {
		f := newKioskFixture()
		k, _ := asset.NewKiosk(tenantID, "KS-0211", "KX-200")
		open, err := k.Lease(asset.ContractInput{CustomerName: "A", StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}, nil)
		require.NoError(t, err)
		require.NoError(t, k.SetStatus(asset.StatusInStock))
		f.kiosks.On("FindByIDForTenant", ctx, tenantID, k.ID).Return(k, nil)
		f.contracts.On("FindByKiosk", ctx, tenantID, k.ID).Return([]asset.Contract{*open}, nil)

		_, err = f.svc.Lease(ctx, tenantID, k.ID, ContractRequest{CustomerName: "B", StartDate: "2026-03-01"})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})
}

func TestKioskService_EndContractKeepsLeasedWhileAnotherLeaseIsOpen(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	f := newKioskFixture()
	k, _ := asset.NewKiosk(tenantID, "KS-0220", "KX-200")
	first, err := k.Lease(asset.ContractInput{CustomerName: "A", StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}, nil)
	require.NoError(t, err)
	second := *first
	second.ID = uuid.New()

	f.kiosks.On("FindByIDForTenant", ctx, tenantID, k.ID).Return(k, nil)
	f.kiosks.On("Save", ctx, k).Return(nil)
	f.contracts.On("FindByIDForTenant", ctx, tenantID, first.ID).Return(first, nil)
	f.contracts.On("FindByKiosk", ctx, tenantID, k.ID).Return([]asset.Contract{*first, second}, nil)
	f.contracts.On("Save", ctx, first).Return(nil)

	ended, err := f.svc.EndContract(ctx, tenantID, k.ID, first.ID, EndContractRequest{})
	require.NoError(t, err)
	assert.Equal(t, "leased", ended.Kiosk.Status)
	assert.NotNil(t, ended.Contract.EndDate)
}

func TestKioskService_Sell(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("requires counterparty", func(t *testing.T) {
		f := newKioskFixture()
		k, _ := asset.NewKiosk(tenantID, "KS-0300", "KX-200")
		f.kiosks.On("FindByIDForTenant", ctx, tenantID, k.ID).Return(k, nil)

		_, err := f.svc.Sell(ctx, tenantID, k.ID, ContractRequest{StartDate: "2026-02-01"})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_COUNTERPARTY", domainErr.Code)
		f.kiosks.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("sold kiosk cannot be sold again", func(t *testing.T) {
		f := newKioskFixture()
		k, _ := asset.NewKiosk(tenantID, "KS-0301", "KX-200")
		require.NoError(t, k.SetStatus(asset.StatusSold))
		f.kiosks.On("FindByIDForTenant", ctx, tenantID, k.ID).Return(k, nil)

		_, err := f.svc.Sell(ctx, tenantID, k.ID, ContractRequest{CustomerName: "A", StartDate: "2026-02-01"})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})

	t.Run("bad date", func(t *testing.T) {
		f := newKioskFixture()
		_, err := f.svc.Sell(ctx, tenantID, uuid.New(), ContractRequest{CustomerName: "A", StartDate: "2026/02/01"})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_DATE", domainErr.Code)
	})
}

func TestKioskService_Summary(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	kanto, _ := geo.NewRegion(tenantID, "KANTO", "関東", []string{"東京都"})
	kinki, _ := geo.NewRegion(tenantID, "KINKI", "近畿", []string{"大阪府"})
	kinki.SortOrder = 2
	kanto.SortOrder = 1
	catalog := geo.NewCatalog([]geo.Region{*kinki, *kanto}, nil)

	f := newKioskFixture()
	f.kiosks.On("CountByStatus", ctx, tenantID).Return([]asset.StatusCount{
		{Status: asset.StatusInstalled, Count: 5},
		{Status: asset.StatusInStock, Count: 2},
	}, nil)
	f.kiosks.On("CountByRegion", ctx, tenantID).Return([]asset.RegionCount{
		{RegionID: &kinki.ID, Count: 3},
		{RegionID: &kanto.ID, Count: 3},
		{RegionID: nil, Count: 1},
	}, nil)
	f.geo.On("Catalog", ctx, tenantID).Return(catalog, nil)

	resp, err := f.svc.Summary(ctx, tenantID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.Total)
	require.Len(t, resp.ByStatus, len(asset.AllStatuses))
	assert.Equal(t, "in_stock", resp.ByStatus[0].Status)
	assert.Equal(t, "在庫: 2台", resp.ByStatus[0].Label)

	require.Len(t, resp.ByRegion, 3)
	assert.Equal(t, "KANTO", resp.ByRegion[0].RegionCode)
	assert.Equal(t, "近畿: 3台", resp.ByRegion[1].Label)
	assert.Nil(t, resp.ByRegion[2].RegionID)
	assert.Equal(t, "未分類: 1台", resp.ByRegion[2].Label)
	assert.Contains(t, resp.Summary, "合計 7台")
}

func TestKioskService_Delete(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	f := newKioskFixture()
	k, _ := asset.NewKiosk(tenantID, "KS-0400", "KX-200")
	f.kiosks.On("FindByIDForTenant", ctx, tenantID, k.ID).Return(k, nil)
	f.kiosks.On("DeleteForTenant", ctx, tenantID, k.ID).Return(nil)

	require.NoError(t, f.svc.Delete(ctx, tenantID, k.ID))
	f.kiosks.AssertExpectations(t)
}
