package integration

import (
	"testing"
	"time"

	assetapp "github.com/kioskcrm/backend/internal/application/asset"
	eventapp "github.com/kioskcrm/backend/internal/application/event"
	geoapp "github.com/kioskcrm/backend/internal/application/geo"
	"github.com/kioskcrm/backend/internal/domain/asset"
	"github.com/kioskcrm/backend/internal/domain/shared"
	"github.com/kioskcrm/backend/internal/infrastructure/event"
	"github.com/kioskcrm/backend/internal/infrastructure/persistence"
	"github.com/kioskcrm/backend/tests/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestKioskRepository_Postgres(t *testing.T) {
	tdb := NewTestDB(t)
	ctx := testutil.ContextWithTimeout(t, 30*time.Second)
	repo := persistence.NewGormKioskRepository(tdb.DB)
	tenantID := testutil.TestTenantID()

	k := testutil.NewKiosk(t, tenantID, "kx-0001")
	require.NoError(t, repo.Save(ctx, k))

	t.Run("serial lookup is case-insensitive", func(t *testing.T) {
		found, err := repo.FindBySerial(ctx, tenantID, "KX-0001")
		require.NoError(t, err)
		assert.Equal(t, k.ID, found.ID)
		assert.Equal(t, asset.StatusInStock, found.Status)
	})

	t.Run("serial is unique per tenant", func(t *testing.T) {
		dup := testutil.NewKiosk(t, tenantID, "KX-0001")
		err := repo.Save(ctx, dup)
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)

		other := testutil.NewKiosk(t, testutil.OtherTenantID(), "KX-0001")
		assert.NoError(t, repo.Save(ctx, other))
	})

	t.Run("other tenants cannot read it", func(t *testing.T) {
		_, err := repo.FindByIDForTenant(ctx, testutil.OtherTenantID(), k.ID)
		assert.True(t, shared.IsNotFound(err))
	})

	t.Run("status counts", func(t *testing.T) {
		counts, err := repo.CountByStatus(ctx, tenantID)
		require.NoError(t, err)
		require.Len(t, counts, 1)
		assert.Equal(t, asset.StatusInStock, counts[0].Status)
		assert.Equal(t, int64(1), counts[0].Count)
	})
}

func TestKioskLeaseFlow_Postgres(t *testing.T) {
	tdb := NewTestDB(t)
	ctx := testutil.ContextWithTimeout(t, 30*time.Second)
	tenantID := testutil.TestTenantID()

	bus := event.NewInMemoryEventBus(zap.NewNop())
	recorder := testutil.NewRecordingHandler(
		asset.EventTypeKioskRegistered,
		asset.EventTypeKioskLeased,
		asset.EventTypeKioskStatusChanged,
	)
	bus.Subscribe(recorder)

	geoService := geoapp.NewGeoService(
		persistence.NewGormRegionRepository(tdb.DB),
		persistence.NewGormAreaRepository(tdb.DB),
		geoapp.WithTransactionScope(persistence.NewGormGeoTransactionScope(tdb.DB)),
	)
	_, err := geoService.Seed(ctx, tenantID)
	require.NoError(t, err)

	svc := assetapp.NewKioskService(assetapp.KioskServiceDeps{
		KioskRepo:    persistence.NewGormKioskRepository(tdb.DB),
		ContractRepo: persistence.NewGormContractRepository(tdb.DB),
		BranchRepo:   persistence.NewGormBranchRepository(tdb.DB),
		PartnerRepo:  persistence.NewGormPartnerRepository(tdb.DB),
		Geo:          geoService,
		TxScope:      persistence.NewGormKioskTransactionScope(tdb.DB),
		Events:       eventapp.NewDispatcher(bus, zap.NewNop()),
		Location:     time.UTC,
	})

	k, err := svc.Create(ctx, tenantID, assetapp.CreateKioskRequest{
		SerialNumber:   "KX-1001",
		ModelName:      "KX-200",
		InstallAddress: "大阪府大阪市北区梅田3-1-1",
	})
	require.NoError(t, err)
	require.NotNil(t, k.RegionID, "install address should resolve to a region")

	leased, err := svc.Lease(ctx, tenantID, k.ID, assetapp.ContractRequest{
		CustomerName: "梅田商店",
		StartDate:    "2024-04-01",
		MonthlyFee:   decimal.NewFromInt(12000),
	})
	require.NoError(t, err)
	assert.Equal(t, string(asset.StatusLeased), leased.Kiosk.Status)
	assert.True(t, leased.Kiosk.MonthlyFee.Equal(decimal.NewFromInt(12000)))

	ended, err := svc.EndContract(ctx, tenantID, k.ID, leased.Contract.ID, assetapp.EndContractRequest{EndDate: "2025-03-31"})
	require.NoError(t, err)
	assert.Equal(t, string(asset.StatusInStock), ended.Kiosk.Status)
	require.NotNil(t, ended.Contract.EndDate)
	assert.Equal(t, "2025-03-31", *ended.Contract.EndDate)

	contracts, err := svc.Contracts(ctx, tenantID, k.ID)
	require.NoError(t, err)
	assert.Len(t, contracts, 1)

	summary, err := svc.Summary(ctx, tenantID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.Total)
	require.Len(t, summary.ByRegion, 1)
	assert.Equal(t, *k.RegionID, *summary.ByRegion[0].RegionID)

	testutil.RequireEventually(t, func() bool {
		return len(recorder.Handled()) >= 3
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{
		asset.EventTypeKioskRegistered,
		asset.EventTypeKioskLeased,
		asset.EventTypeKioskStatusChanged,
	}, recorder.Types())
}
