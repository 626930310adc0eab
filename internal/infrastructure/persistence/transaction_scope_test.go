package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	appasset "github.com/kioskcrm/backend/internal/application/asset"
	appmarketing "github.com/kioskcrm/backend/internal/application/marketing"
	"github.com/kioskcrm/backend/internal/domain/asset"
	"github.com/kioskcrm/backend/internal/domain/marketing"
	"github.com/kioskcrm/backend/internal/domain/partner"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormKioskTransactionScope(t *testing.T) {
	db := setupSQLiteDB(t)
	ctx := context.Background()
	tenantID := uuid.New()
	kiosks := NewGormKioskRepository(db)
	contracts := NewGormContractRepository(db)
	scope := NewGormKioskTransactionScope(db)

	k, err := asset.NewKiosk(tenantID, "SN-TX-1", "KX-100")
	require.NoError(t, err)
	require.NoError(t, kiosks.Save(ctx, k))

	lease := func(repos appasset.TransactionalRepositories) (*asset.Contract, error) {
		found, err := repos.KioskRepo().FindByIDForTenant(ctx, tenantID, k.ID)
		if err != nil {
			return nil, err
		}
		c, err := found.Lease(asset.ContractInput{
			CustomerName: "駅前ドラッグ",
			StartDate:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			MonthlyFee:   decimal.NewFromInt(12000),
		}, nil)
		if err != nil {
			return nil, err
		}
		if err := repos.ContractRepo().Save(ctx, c); err != nil {
			return nil, err
		}
		return c, repos.KioskRepo().Save(ctx, found)
	}

	t.Run("rolls back on error", func(t *testing.T) {
		boom := errors.New("boom")
		err := scope.Execute(ctx, func(repos appasset.TransactionalRepositories) error {
			if _, err := lease(repos); err != nil {
				return err
			}
			return boom
		})
		require.ErrorIs(t, err, boom)

		reloaded, err := kiosks.FindByIDForTenant(ctx, tenantID, k.ID)
		require.NoError(t, err)
		assert.Equal(t, asset.StatusInStock, reloaded.Status)
		history, err := contracts.FindByKiosk(ctx, tenantID, k.ID)
		require.NoError(t, err)
		assert.Empty(t, history)
	})

	t.Run("commits on success", func(t *testing.T) {
		err := scope.Execute(ctx, func(repos appasset.TransactionalRepositories) error {
			_, err := lease(repos)
			return err
		})
		require.NoError(t, err)

		reloaded, err := kiosks.FindByIDForTenant(ctx, tenantID, k.ID)
		require.NoError(t, err)
		assert.Equal(t, asset.StatusLeased, reloaded.Status)
		history, err := contracts.FindByKiosk(ctx, tenantID, k.ID)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, asset.ContractTypeLease, history[0].Type)
	})
}

func TestGormLeadTransactionScope(t *testing.T) {
	db := setupSQLiteDB(t)
	ctx := context.Background()
	tenantID := uuid.New()
	leads := NewGormLeadRepository(db)
	partners := NewGormPartnerRepository(db)
	scope := NewGormLeadTransactionScope(db)

	lead, err := marketing.NewLead(tenantID, "佐藤 一郎", "駅前ドラッグ", marketing.LeadSourceWeb)
	require.NoError(t, err)
	require.NoError(t, leads.Save(ctx, lead))

	err = scope.Execute(ctx, func(repos appmarketing.TransactionalRepositories) error {
		p, err := partner.NewPartner(tenantID, "PT001", "駅前ドラッグ", partner.TypeCustomer)
		if err != nil {
			return err
		}
		if err := repos.PartnerRepo().Save(ctx, p); err != nil {
			return err
		}
		return errors.New("lead save failed")
	})
	require.Error(t, err)

	exists, err := partners.ExistsByCode(ctx, tenantID, "PT001")
	require.NoError(t, err)
	assert.False(t, exists)
}
