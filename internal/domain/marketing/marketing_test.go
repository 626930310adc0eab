package marketing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCampaign(t *testing.T) {
	start := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	c, err := NewCampaign(uuid.New(), "夏の展示会", "event", start, nil, decimal.NewFromInt(500000))
	require.NoError(t, err)
	assert.Equal(t, CampaignStatusPlanned, c.Status)

	before := start.AddDate(0, 0, -1)
	_, err = NewCampaign(uuid.New(), "x", "", start, &before, decimal.Zero)
	assert.Error(t, err)
	_, err = NewCampaign(uuid.New(), "x", "", start, nil, decimal.NewFromInt(-1))
	assert.Error(t, err)
	_, err = NewCampaign(uuid.New(), "", "", start, nil, decimal.Zero)
	assert.Error(t, err)

	require.NoError(t, c.SetStatus(CampaignStatusActive))
	assert.Error(t, c.SetStatus("paused"))
}

func TestNewLead(t *testing.T) {
	l, err := NewLead(uuid.New(), "鈴木 一郎", " 鈴木商店 ", LeadSourceWeb)
	require.NoError(t, err)
	assert.Equal(t, LeadStatusNew, l.Status)
	assert.Equal(t, "鈴木商店", l.CompanyName)
	assert.Len(t, l.GetDomainEvents(), 1)

	_, err = NewLead(uuid.New(), "x", "", "tv")
	assert.Error(t, err)
}

func TestLead_Convert(t *testing.T) {
	l, err := NewLead(uuid.New(), "x", "", LeadSourceReferral)
	require.NoError(t, err)

	partnerID := uuid.New()
	require.NoError(t, l.Convert(partnerID))
	assert.Equal(t, LeadStatusConverted, l.Status)
	assert.Equal(t, &partnerID, l.ConvertedPartnerID)
	assert.Error(t, l.Convert(partnerID))

	lost, _ := NewLead(uuid.New(), "y", "", LeadSourceAd)
	require.NoError(t, lost.SetStatus(LeadStatusLost))
	assert.Error(t, lost.Convert(partnerID))
}

func TestLead_LinkPipedrive(t *testing.T) {
	l, _ := NewLead(uuid.New(), "x", "", LeadSourceOther)
	l.LinkPipedrive(11, 22)
	assert.Equal(t, int64(11), *l.PipedrivePersonID)
	assert.Equal(t, int64(22), *l.PipedriveDealID)
}
