package integration

import (
	"testing"
	"time"

	assetapp "github.com/kioskcrm/backend/internal/application/asset"
	partnerapp "github.com/kioskcrm/backend/internal/application/partner"
	"github.com/kioskcrm/backend/internal/domain/asset"
	"github.com/kioskcrm/backend/internal/domain/partner"
	"github.com/kioskcrm/backend/internal/infrastructure/persistence"
	"github.com/kioskcrm/backend/tests/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// DATE columns scan back as UTC midnight; the services work in Tokyo time.
func tokyo(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	return loc
}

func TestPricingEffectiveOnFirstDay_Postgres(t *testing.T) {
	tdb := NewTestDB(t)
	ctx := testutil.ContextWithTimeout(t, 30*time.Second)
	tenantID := testutil.TestTenantID()

	partners := persistence.NewGormPartnerRepository(tdb.DB)
	p, err := partner.NewPartner(tenantID, "PT001", "設置工業株式会社", partner.TypeInstaller)
	require.NoError(t, err)
	require.NoError(t, partners.Save(ctx, p))

	svc := partnerapp.NewPricingService(persistence.NewGormPricingRepository(tdb.DB), partners, tokyo(t))
	created, err := svc.Create(ctx, tenantID, partnerapp.CreatePricingRequest{
		PartnerID: p.ID,
		ItemCode:  "KIOSK-A",
		UnitPrice: decimal.NewFromInt(120000),
		ValidFrom: "2026-10-15",
		ValidTo:   "2026-10-31",
	})
	require.NoError(t, err)

	for _, day := range []string{"2026-10-15", "2026-10-31"} {
		got, err := svc.Effective(ctx, tenantID, partnerapp.EffectivePricingQuery{
			PartnerID: p.ID.String(),
			ItemCode:  "KIOSK-A",
			Date:      day,
		})
		require.NoError(t, err, day)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, "2026-10-15", got.ValidFrom)
	}

	_, err = svc.Effective(ctx, tenantID, partnerapp.EffectivePricingQuery{
		PartnerID: p.ID.String(),
		ItemCode:  "KIOSK-A",
		Date:      "2026-10-14",
	})
	assert.Error(t, err)
}

func TestLeaseEndedOnStartDay_Postgres(t *testing.T) {
	tdb := NewTestDB(t)
	ctx := testutil.ContextWithTimeout(t, 30*time.Second)
	tenantID := testutil.TestTenantID()

	svc := assetapp.NewKioskService(assetapp.KioskServiceDeps{
		KioskRepo:    persistence.NewGormKioskRepository(tdb.DB),
		ContractRepo: persistence.NewGormContractRepository(tdb.DB),
		BranchRepo:   persistence.NewGormBranchRepository(tdb.DB),
		PartnerRepo:  persistence.NewGormPartnerRepository(tdb.DB),
		TxScope:      persistence.NewGormKioskTransactionScope(tdb.DB),
		Location:     tokyo(t),
	})

	k, err := svc.Create(ctx, tenantID, assetapp.CreateKioskRequest{SerialNumber: "KX-2001", ModelName: "KX-200"})
	require.NoError(t, err)

	leased, err := svc.Lease(ctx, tenantID, k.ID, assetapp.ContractRequest{CustomerName: "駅前ドラッグ", StartDate: "2026-10-15"})
	require.NoError(t, err)

	_, err = svc.Lease(ctx, tenantID, k.ID, assetapp.ContractRequest{CustomerName: "別の店", StartDate: "2026-10-15"})
	require.Error(t, err, "a second open lease is rejected")

	ended, err := svc.EndContract(ctx, tenantID, k.ID, leased.Contract.ID, assetapp.EndContractRequest{EndDate: "2026-10-15"})
	require.NoError(t, err)
	assert.Equal(t, string(asset.StatusInStock), ended.Kiosk.Status)
	require.NotNil(t, ended.Contract.EndDate)
	assert.Equal(t, "2026-10-15", *ended.Contract.EndDate)

	history, err := svc.Contracts(ctx, tenantID, k.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "2026-10-15", history[0].StartDate)
}
