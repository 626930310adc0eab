package organization

import (
	"strings"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/domain/shared"
)

const AggregateTypeBranch = "Branch"

// Branch is a store or office of a corporation. Its location fields are
// derived from Address by the geo matcher.
type Branch struct {
	shared.TenantAggregateRoot
	CorporationID uuid.UUID
	Code          string
	Name          string
	Address       string
	Prefecture    string
	City          string
	RegionID      *uuid.UUID
	AreaID        *uuid.UUID
	Phone         string
	ManagerName   string
	Status        Status
	Notes         string
}

// Location is the resolved placement of an address.
type Location struct {
	Address    string
	Prefecture string
	City       string
	RegionID   *uuid.UUID
	AreaID     *uuid.UUID
}

// NewBranch creates an active branch under corporationID.
func NewBranch(tenantID, corporationID uuid.UUID, code, name string) (*Branch, error) {
	if corporationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CORPORATION", "Branch must belong to a corporation")
	}
	code, err := normalizeCode(code)
	if err != nil {
		return nil, err
	}
	name, err = normalizeName(name, 200)
	if err != nil {
		return nil, err
	}
	b := &Branch{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		CorporationID:       corporationID,
		Code:                code,
		Name:                name,
		Status:              StatusActive,
	}
	b.AddDomainEvent(newOrgEvent(EventTypeBranchCreated, AggregateTypeBranch, b.ID, tenantID, code))
	return b, nil
}

func (b *Branch) Rename(name string) error {
	name, err := normalizeName(name, 200)
	if err != nil {
		return err
	}
	b.Name = name
	b.MarkModified()
	return nil
}

// MoveTo reassigns the branch to another corporation.
func (b *Branch) MoveTo(corporationID uuid.UUID) error {
	if corporationID == uuid.Nil {
		return shared.NewDomainError("INVALID_CORPORATION", "Branch must belong to a corporation")
	}
	b.CorporationID = corporationID
	b.MarkModified()
	return nil
}

// Relocate stores the address together with its resolved location.
func (b *Branch) Relocate(loc Location) {
	b.Address = strings.TrimSpace(loc.Address)
	b.Prefecture = loc.Prefecture
	b.City = loc.City
	b.RegionID = loc.RegionID
	b.AreaID = loc.AreaID
	b.MarkModified()
	b.AddDomainEvent(newOrgEvent(EventTypeBranchRelocated, AggregateTypeBranch, b.ID, b.TenantID, b.Code))
}

func (b *Branch) SetContact(managerName, phone string) {
	b.ManagerName = strings.TrimSpace(managerName)
	b.Phone = strings.TrimSpace(phone)
	b.MarkModified()
}

func (b *Branch) SetNotes(notes string) {
	b.Notes = notes
	b.MarkModified()
}

func (b *Branch) SetStatus(s Status) error {
	if err := parseStatus(s); err != nil {
		return err
	}
	b.Status = s
	b.MarkModified()
	return nil
}
