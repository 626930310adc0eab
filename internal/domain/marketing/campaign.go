// Package marketing tracks campaigns and the leads they produce.
package marketing

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CampaignStatus of a campaign.
type CampaignStatus string

const (
	CampaignStatusPlanned  CampaignStatus = "planned"
	CampaignStatusActive   CampaignStatus = "active"
	CampaignStatusFinished CampaignStatus = "finished"
)

func (s CampaignStatus) IsValid() bool {
	return s == CampaignStatusPlanned || s == CampaignStatusActive || s == CampaignStatusFinished
}

// Campaign is a marketing activity on one channel.
type Campaign struct {
	shared.TenantAggregateRoot
	Name      string
	Channel   string
	StartDate time.Time
	EndDate   *time.Time
	Budget    decimal.Decimal
	Status    CampaignStatus
	Notes     string
}

// NewCampaign creates a planned campaign.
func NewCampaign(tenantID uuid.UUID, name, channel string, start time.Time, end *time.Time, budget decimal.Decimal) (*Campaign, error) {
	c := &Campaign{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Status:              CampaignStatusPlanned,
	}
	if err := c.set(name, channel, start, end, budget); err != nil {
		return nil, err
	}
	return c, nil
}

// Update replaces the campaign details.
func (c *Campaign) Update(name, channel string, start time.Time, end *time.Time, budget decimal.Decimal) error {
	if err := c.set(name, channel, start, end, budget); err != nil {
		return err
	}
	c.MarkModified()
	return nil
}

func (c *Campaign) SetStatus(s CampaignStatus) error {
	if !s.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown campaign status")
	}
	c.Status = s
	c.MarkModified()
	return nil
}

func (c *Campaign) SetNotes(notes string) {
	c.Notes = notes
	c.MarkModified()
}

func (c *Campaign) set(name, channel string, start time.Time, end *time.Time, budget decimal.Decimal) error {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Name must be 1-200 characters")
	}
	start, end = shared.CalendarDate(start), shared.CalendarDatePtr(end)
	if start.IsZero() {
		return shared.NewDomainError("INVALID_PERIOD", "Start date is required")
	}
	if end != nil && end.Before(start) {
		return shared.NewDomainError("INVALID_PERIOD", "End date must not precede start date")
	}
	if budget.IsNegative() {
		return shared.NewDomainError("INVALID_BUDGET", "Budget cannot be negative")
	}
	c.Name = name
	c.Channel = strings.TrimSpace(channel)
	c.StartDate = start
	c.EndDate = end
	c.Budget = budget
	return nil
}
