package importapp

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/domain/asset"
	"github.com/kioskcrm/backend/internal/domain/geo"
	"github.com/kioskcrm/backend/internal/domain/partner"
	"github.com/kioskcrm/backend/internal/domain/shared"
	csvimport "github.com/kioskcrm/backend/internal/infrastructure/import"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

func newKioskImportFixture(t *testing.T) (*memKiosks, *memPartners, uuid.UUID, *KioskImportService) {
	t.Helper()
	existing, err := asset.NewKiosk(testTenantID, "KS-001", "旧モデル")
	require.NoError(t, err)
	require.NoError(t, existing.SetPricing(decimal.NewFromInt(100000), decimal.NewFromInt(5000)))

	agency, err := partner.NewPartner(testTenantID, "PT001", "東京代理店", partner.TypeAgency)
	require.NoError(t, err)

	kiosks := newMemKiosks(existing)
	partners := newMemPartners(agency)
	regionID := uuid.New()
	svc := NewKioskImportService(kiosks, partners, tokyoLocator{regionID: regionID}, nil, nil, nil, nil)
	return kiosks, partners, regionID, svc
}

func TestKioskImportService_Import(t *testing.T) {
	ctx := context.Background()
	kiosks, partners, regionID, svc := newKioskImportFixture(t)

	csv := strings.Join([]string{
		"serial_number,model_name,status,partner_code,install_address,installed_at,list_price,monthly_fee,notes",
		"ks-002,据置型,,pt001,東京都港区芝公園4-2-8,2026/03/15,250000,12000,駅前",
		"KS-001,新モデル,maintenance,,,,,8000,",
		"KS-003,壁掛型,broken,,,,,,",
		"KS-004,壁掛型,,PT999,,,,,",
		"ks-002,重複,,,,,,,",
		"",
	}, "\n")

	result, err := svc.Import(ctx, testTenantID, strings.NewReader(csv), "utf-8")
	require.NoError(t, err)
	assert.Equal(t, 5, result.Total)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 3, result.Failed)
	require.Len(t, result.Errors, 3)

	codes := map[int]string{}
	for _, e := range result.Errors {
		codes[e.Row] = e.Code
	}
	assert.Equal(t, csvimport.ErrCodeImportInvalidValue, codes[4])
	assert.Equal(t, csvimport.ErrCodeImportInvalidValue, codes[5])
	assert.Equal(t, csvimport.ErrCodeImportDuplicateInFile, codes[6])

	created := kiosks.bySerial["KS-002"]
	require.NotNil(t, created)
	assert.Equal(t, asset.StatusInstalled, created.Status)
	assert.Equal(t, "東京都", created.Prefecture)
	assert.Equal(t, regionID, *created.RegionID)
	require.NotNil(t, created.InstalledAt)
	assert.Equal(t, "2026-03-15", created.InstalledAt.Format("2006-01-02"))
	assert.Equal(t, partners.byCode["PT001"].ID, *created.PartnerID)
	assert.True(t, created.ListPrice.Equal(decimal.NewFromInt(250000)))

	updated := kiosks.bySerial["KS-001"]
	assert.Equal(t, "新モデル", updated.ModelName)
	assert.Equal(t, asset.StatusMaintenance, updated.Status)
	assert.True(t, updated.ListPrice.Equal(decimal.NewFromInt(100000)), "blank list price keeps the old value")
	assert.True(t, updated.MonthlyFee.Equal(decimal.NewFromInt(8000)))

	_, exists := kiosks.bySerial["KS-004"]
	assert.False(t, exists)
}

func TestKioskImportService_RegionAreaCodes(t *testing.T) {
	ctx := context.Background()

	kanto, err := geo.NewRegion(testTenantID, "KANTO", "関東", []string{"東京都"})
	require.NoError(t, err)
	kansai, err := geo.NewRegion(testTenantID, "KANSAI", "関西", []string{"大阪府"})
	require.NoError(t, err)
	minato, err := geo.NewArea(testTenantID, kanto.ID, "MINATO", "港", []string{"港区"})
	require.NoError(t, err)
	kantoCentral, err := geo.NewArea(testTenantID, kanto.ID, "CENTRAL", "都心", nil)
	require.NoError(t, err)
	kansaiCentral, err := geo.NewArea(testTenantID, kansai.ID, "CENTRAL", "中心部", nil)
	require.NoError(t, err)
	catalog := geo.NewCatalog(
		[]geo.Region{*kanto, *kansai},
		[]geo.Area{*minato, *kantoCentral, *kansaiCentral},
	)

	existing, err := asset.NewKiosk(testTenantID, "KS-001", "旧モデル")
	require.NoError(t, err)
	kiosks := newMemKiosks(existing)
	svc := NewKioskImportService(kiosks, newMemPartners(), tokyoLocator{regionID: uuid.New(), catalog: catalog}, nil, nil, nil, nil)

	csv := strings.Join([]string{
		"serial_number,model_name,install_address,region_code,area_code",
		"KS-030,据置型,東京都港区芝公園4-2-8,kanto,minato",
		"KS-001,旧モデル,,,MINATO",
		"KS-031,据置型,,NOWHERE,",
		"KS-032,据置型,,,CENTRAL",
		"KS-033,据置型,,KANSAI,CENTRAL",
		"KS-034,据置型,,KANSAI,MINATO",
		"",
	}, "\n")

	result, err := svc.Import(ctx, testTenantID, strings.NewReader(csv), "utf-8")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 3, result.Failed)

	columns := map[int]string{}
	for _, e := range result.Errors {
		assert.Equal(t, csvimport.ErrCodeImportInvalidValue, e.Code)
		columns[e.Row] = e.Column
	}
	assert.Equal(t, map[int]string{4: "region_code", 5: "area_code", 7: "area_code"}, columns)

	overridden := kiosks.bySerial["KS-030"]
	require.NotNil(t, overridden.RegionID)
	require.NotNil(t, overridden.AreaID)
	assert.Equal(t, kanto.ID, *overridden.RegionID, "region code wins over the address match")
	assert.Equal(t, minato.ID, *overridden.AreaID)
	assert.Equal(t, "東京都", overridden.Prefecture)

	updated := kiosks.bySerial["KS-001"]
	require.NotNil(t, updated.AreaID)
	assert.Equal(t, minato.ID, *updated.AreaID)
	assert.Equal(t, kanto.ID, *updated.RegionID, "area code implies its region")

	scoped := kiosks.bySerial["KS-033"]
	require.NotNil(t, scoped.AreaID)
	assert.Equal(t, kansaiCentral.ID, *scoped.AreaID)
	assert.Equal(t, kansai.ID, *scoped.RegionID)
}

func TestKioskImportService_ShiftJIS(t *testing.T) {
	ctx := context.Background()
	kiosks, _, _, svc := newKioskImportFixture(t)

	var buf bytes.Buffer
	w := transform.NewWriter(&buf, japanese.ShiftJIS.NewEncoder())
	_, err := w.Write([]byte("serial_number,model_name,notes\nKS-010,据置型タッチパネル,大阪支店向け\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	result, err := svc.Import(ctx, testTenantID, &buf, "sjis")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, "据置型タッチパネル", kiosks.bySerial["KS-010"].ModelName)
	assert.Equal(t, "大阪支店向け", kiosks.bySerial["KS-010"].Notes)
	assert.Equal(t, asset.StatusInStock, kiosks.bySerial["KS-010"].Status)
}

func TestKioskImportService_SaveFailureContinues(t *testing.T) {
	ctx := context.Background()
	kiosks, _, _, svc := newKioskImportFixture(t)
	kiosks.failOn = "KS-020"

	csv := "serial_number,model_name\nKS-020,A\nKS-021,B\n"
	result, err := svc.Import(ctx, testTenantID, strings.NewReader(csv), "")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, csvimport.ErrCodeImportSave, result.Errors[0].Code)
	assert.Equal(t, 2, result.Errors[0].Row)
}

func TestKioskImportService_FileErrors(t *testing.T) {
	ctx := context.Background()
	_, _, _, svc := newKioskImportFixture(t)

	t.Run("missing columns", func(t *testing.T) {
		_, err := svc.Import(ctx, testTenantID, strings.NewReader("serial_number,notes\nKS-1,x\n"), "utf-8")
		assert.ErrorIs(t, err, shared.NewDomainError("INVALID_FILE", ""))
		assert.Contains(t, err.Error(), "model_name")
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := svc.Import(ctx, testTenantID, strings.NewReader(""), "utf-8")
		assert.ErrorIs(t, err, shared.NewDomainError("INVALID_FILE", ""))
	})

	t.Run("shift_jis bytes declared as utf-8", func(t *testing.T) {
		var buf bytes.Buffer
		w := transform.NewWriter(&buf, japanese.ShiftJIS.NewEncoder())
		_, _ = w.Write([]byte("serial_number,model_name\nKS-1,据置型\n"))
		_ = w.Close()
		_, err := svc.Import(ctx, testTenantID, &buf, "utf-8")
		assert.ErrorIs(t, err, shared.NewDomainError("INVALID_FILE", ""))
	})

	t.Run("unknown encoding", func(t *testing.T) {
		_, err := svc.Import(ctx, testTenantID, strings.NewReader("a"), "latin1")
		assert.ErrorIs(t, err, shared.NewDomainError("INVALID_ENCODING", ""))
	})
}
