package asset

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ContractType distinguishes leases from sales.
type ContractType string

const (
	ContractTypeLease ContractType = "lease"
	ContractTypeSale  ContractType = "sale"
)

// Contract is one row of a kiosk's lease/sale history.
type Contract struct {
	shared.BaseEntity
	TenantID     uuid.UUID
	KioskID      uuid.UUID
	Type         ContractType
	PartnerID    *uuid.UUID
	CustomerName string
	StartDate    time.Time
	EndDate      *time.Time
	Amount       decimal.Decimal
	MonthlyFee   decimal.Decimal
	Notes        string
}

// ContractInput holds the caller-supplied contract fields.
type ContractInput struct {
	PartnerID    *uuid.UUID
	CustomerName string
	StartDate    time.Time
	EndDate      *time.Time
	Amount       decimal.Decimal
	MonthlyFee   decimal.Decimal
	Notes        string
}

// IsOpen reports whether the contract has no end date yet.
func (c *Contract) IsOpen() bool {
	return c.EndDate == nil
}

// hasOpenLease reports whether history holds an open lease other than except.
func hasOpenLease(history []Contract, except uuid.UUID) bool {
	for i := range history {
		c := &history[i]
		if c.ID != except && c.Type == ContractTypeLease && c.IsOpen() {
			return true
		}
	}
	return false
}

func newContract(k *Kiosk, t ContractType, in ContractInput) (*Contract, error) {
	in.StartDate, in.EndDate = shared.CalendarDate(in.StartDate), shared.CalendarDatePtr(in.EndDate)
	if in.StartDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Start date is required")
	}
	if in.EndDate != nil && in.EndDate.Before(in.StartDate) {
		return nil, shared.NewDomainError("INVALID_PERIOD", "End date must not precede start date")
	}
	if in.Amount.IsNegative() || in.MonthlyFee.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Amounts cannot be negative")
	}
	if in.PartnerID == nil && strings.TrimSpace(in.CustomerName) == "" {
		return nil, shared.NewDomainError("INVALID_COUNTERPARTY", "A partner or customer name is required")
	}
	return &Contract{
		BaseEntity:   shared.NewBaseEntity(),
		TenantID:     k.TenantID,
		KioskID:      k.ID,
		Type:         t,
		PartnerID:    in.PartnerID,
		CustomerName: strings.TrimSpace(in.CustomerName),
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		Amount:       in.Amount,
		MonthlyFee:   in.MonthlyFee,
		Notes:        in.Notes,
	}, nil
}

func (c *Contract) close(end time.Time) error {
	if c.Type == ContractTypeSale {
		return shared.NewDomainError("INVALID_STATE", "A sale cannot be ended")
	}
	end = shared.CalendarDate(end)
	if end.Before(shared.CalendarDate(c.StartDate)) {
		return shared.NewDomainError("INVALID_PERIOD", "End date must not precede start date")
	}
	c.EndDate = &end
	c.Touch()
	return nil
}
