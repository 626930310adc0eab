package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/domain/marketing"
	"github.com/kioskcrm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormLeadRepository_CountByCampaignAndStatus(t *testing.T) {
	db := setupSQLiteDB(t)
	campaigns := NewGormCampaignRepository(db)
	leads := NewGormLeadRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	campaign, err := marketing.NewCampaign(tenantID, "春の展示会", "event",
		time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), nil, decimal.NewFromInt(300000))
	require.NoError(t, err)
	require.NoError(t, campaigns.Save(ctx, campaign))

	statuses := []marketing.LeadStatus{
		marketing.LeadStatusNew,
		marketing.LeadStatusNew,
		marketing.LeadStatusContacted,
		marketing.LeadStatusLost,
	}
	for i, s := range statuses {
		l, err := marketing.NewLead(tenantID, "見込み客", "会社", marketing.LeadSourceEvent)
		require.NoError(t, err)
		l.Name = l.Name + string(rune('A'+i))
		l.AttachCampaign(&campaign.ID)
		require.NoError(t, l.SetStatus(s))
		require.NoError(t, leads.Save(ctx, l))
	}
	unrelated, err := marketing.NewLead(tenantID, "別件", "", marketing.LeadSourceWeb)
	require.NoError(t, err)
	require.NoError(t, leads.Save(ctx, unrelated))

	counts, err := leads.CountByCampaignAndStatus(ctx, tenantID, campaign.ID)
	require.NoError(t, err)
	got := map[marketing.LeadStatus]int64{}
	for _, c := range counts {
		got[c.Status] = c.Count
	}
	assert.Equal(t, map[marketing.LeadStatus]int64{
		marketing.LeadStatusNew:       2,
		marketing.LeadStatusContacted: 1,
		marketing.LeadStatusLost:      1,
	}, got)

	total, err := leads.CountForTenant(ctx, tenantID, shared.Filter{
		Filters: map[string]any{"campaign_id": campaign.ID.String()},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)

	found, err := campaigns.FindByIDForTenant(ctx, tenantID, campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, "春の展示会", found.Name)
	assert.True(t, found.Budget.Equal(decimal.NewFromInt(300000)))
}
