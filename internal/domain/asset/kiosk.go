// Package asset tracks kiosks: where they are installed, who holds them and
// their lease and sale history.
package asset

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const AggregateTypeKiosk = "Kiosk"

// Status of a physical kiosk.
type Status string

const (
	StatusInStock     Status = "in_stock"
	StatusInstalled   Status = "installed"
	StatusLeased      Status = "leased"
	StatusSold        Status = "sold"
	StatusMaintenance Status = "maintenance"
	StatusRetired     Status = "retired"
)

// AllStatuses lists every status in display order.
var AllStatuses = []Status{
	StatusInStock, StatusInstalled, StatusLeased, StatusSold, StatusMaintenance, StatusRetired,
}

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Kiosk is a tracked physical terminal.
type Kiosk struct {
	shared.TenantAggregateRoot
	SerialNumber   string
	ModelName      string
	Status         Status
	BranchID       *uuid.UUID
	PartnerID      *uuid.UUID
	InstallAddress string
	Prefecture     string
	City           string
	RegionID       *uuid.UUID
	AreaID         *uuid.UUID
	InstalledAt    *time.Time
	ListPrice      decimal.Decimal
	MonthlyFee     decimal.Decimal
	Notes          string
}

// Placement is the resolved location of an install address.
type Placement struct {
	Address    string
	Prefecture string
	City       string
	RegionID   *uuid.UUID
	AreaID     *uuid.UUID
}

// NewKiosk registers a kiosk in stock.
func NewKiosk(tenantID uuid.UUID, serialNumber, modelName string) (*Kiosk, error) {
	serialNumber = strings.ToUpper(strings.TrimSpace(serialNumber))
	if serialNumber == "" || len(serialNumber) > 64 {
		return nil, shared.NewDomainError("INVALID_SERIAL_NUMBER", "Serial number must be 1-64 characters")
	}
	modelName = strings.TrimSpace(modelName)
	if modelName == "" || len(modelName) > 100 {
		return nil, shared.NewDomainError("INVALID_MODEL", "Model name must be 1-100 characters")
	}

	k := &Kiosk{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		SerialNumber:        serialNumber,
		ModelName:           modelName,
		Status:              StatusInStock,
		ListPrice:           decimal.Zero,
		MonthlyFee:          decimal.Zero,
	}
	k.AddDomainEvent(NewKioskEvent(EventTypeKioskRegistered, k))
	return k, nil
}

// SetModel changes the model name.
func (k *Kiosk) SetModel(modelName string) error {
	modelName = strings.TrimSpace(modelName)
	if modelName == "" || len(modelName) > 100 {
		return shared.NewDomainError("INVALID_MODEL", "Model name must be 1-100 characters")
	}
	k.ModelName = modelName
	k.MarkModified()
	return nil
}

// SetPricing sets the list price and the monthly fee.
func (k *Kiosk) SetPricing(listPrice, monthlyFee decimal.Decimal) error {
	if listPrice.IsNegative() || monthlyFee.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Prices cannot be negative")
	}
	k.ListPrice = listPrice
	k.MonthlyFee = monthlyFee
	k.MarkModified()
	return nil
}

// Assign sets the owning branch and the responsible partner.
func (k *Kiosk) Assign(branchID, partnerID *uuid.UUID) {
	k.BranchID = branchID
	k.PartnerID = partnerID
	k.MarkModified()
}

// Install records the install location. A kiosk in stock becomes installed.
func (k *Kiosk) Install(p Placement, at time.Time) {
	k.Place(p)
	if !at.IsZero() {
		k.InstalledAt = &at
	}
	if k.Status == StatusInStock {
		k.Status = StatusInstalled
	}
	k.AddDomainEvent(NewKioskEvent(EventTypeKioskInstalled, k))
}

// Place updates the location fields without touching the status.
func (k *Kiosk) Place(p Placement) {
	k.InstallAddress = strings.TrimSpace(p.Address)
	k.Prefecture = p.Prefecture
	k.City = p.City
	k.RegionID = p.RegionID
	k.AreaID = p.AreaID
	k.MarkModified()
}

// SetStatus writes the status field directly. Any known status is accepted.
func (k *Kiosk) SetStatus(s Status) error {
	if !s.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown kiosk status")
	}
	if k.Status == s {
		return nil
	}
	k.Status = s
	k.MarkModified()
	k.AddDomainEvent(NewKioskEvent(EventTypeKioskStatusChanged, k))
	return nil
}

func (k *Kiosk) SetNotes(notes string) {
	k.Notes = notes
	k.MarkModified()
}

// Lease opens a lease contract and marks the kiosk leased. history is the
// kiosk's existing contracts; a kiosk holds at most one open lease.
func (k *Kiosk) Lease(in ContractInput, history []Contract) (*Contract, error) {
	if k.Status == StatusSold || k.Status == StatusRetired {
		return nil, shared.NewDomainError("INVALID_STATE", "A sold or retired kiosk cannot be leased")
	}
	if k.Status == StatusLeased || hasOpenLease(history, uuid.Nil) {
		return nil, shared.NewDomainError("INVALID_STATE", "Kiosk already has an open lease")
	}
	c, err := newContract(k, ContractTypeLease, in)
	if err != nil {
		return nil, err
	}
	k.Status = StatusLeased
	if in.PartnerID != nil {
		k.PartnerID = in.PartnerID
	}
	if !in.MonthlyFee.IsZero() {
		k.MonthlyFee = in.MonthlyFee
	}
	k.MarkModified()
	k.AddDomainEvent(NewKioskEvent(EventTypeKioskLeased, k))
	return c, nil
}

// Sell records a sale and marks the kiosk sold.
func (k *Kiosk) Sell(in ContractInput) (*Contract, error) {
	if k.Status == StatusSold || k.Status == StatusRetired {
		return nil, shared.NewDomainError("INVALID_STATE", "Kiosk is already sold or retired")
	}
	in.EndDate = nil
	c, err := newContract(k, ContractTypeSale, in)
	if err != nil {
		return nil, err
	}
	k.Status = StatusSold
	if in.PartnerID != nil {
		k.PartnerID = in.PartnerID
	}
	k.MarkModified()
	k.AddDomainEvent(NewKioskEvent(EventTypeKioskSold, k))
	return c, nil
}

// EndContract closes c. Ending the last open lease of a leased kiosk returns
// it to stock; history is the kiosk's contracts and may include c.
func (k *Kiosk) EndContract(c *Contract, end time.Time, history []Contract) error {
	if c.KioskID != k.ID {
		return shared.NewDomainError("INVALID_CONTRACT", "Contract belongs to another kiosk")
	}
	if err := c.close(end); err != nil {
		return err
	}
	if c.Type == ContractTypeLease && k.Status == StatusLeased && !hasOpenLease(history, c.ID) {
		k.Status = StatusInStock
		k.MarkModified()
		k.AddDomainEvent(NewKioskEvent(EventTypeKioskStatusChanged, k))
	}
	return nil
}
