package organization

import (
	"strings"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/domain/shared"
	"github.com/kioskcrm/backend/internal/domain/shared/valueobject"
)

const AggregateTypeCorporation = "Corporation"

// Corporation is a franchisee company under an FC.
type Corporation struct {
	shared.TenantAggregateRoot
	FCID               uuid.UUID
	Code               string
	Name               string
	RepresentativeName string
	Email              string
	Phone              string
	Address            string
	Status             Status
	Notes              string
}

// NewCorporation creates an active corporation under fcID.
func NewCorporation(tenantID, fcID uuid.UUID, code, name string) (*Corporation, error) {
	if fcID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_FC", "Corporation must belong to an FC")
	}
	code, err := normalizeCode(code)
	if err != nil {
		return nil, err
	}
	name, err = normalizeName(name, 200)
	if err != nil {
		return nil, err
	}
	c := &Corporation{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		FCID:                fcID,
		Code:                code,
		Name:                name,
		Status:              StatusActive,
	}
	c.AddDomainEvent(newOrgEvent(EventTypeCorporationCreated, AggregateTypeCorporation, c.ID, tenantID, code))
	return c, nil
}

// Rename changes the display name.
func (c *Corporation) Rename(name string) error {
	name, err := normalizeName(name, 200)
	if err != nil {
		return err
	}
	c.Name = name
	c.MarkModified()
	return nil
}

// MoveTo reassigns the corporation to another FC.
func (c *Corporation) MoveTo(fcID uuid.UUID) error {
	if fcID == uuid.Nil {
		return shared.NewDomainError("INVALID_FC", "Corporation must belong to an FC")
	}
	c.FCID = fcID
	c.MarkModified()
	return nil
}

// SetContact stores the representative and their contact details.
func (c *Corporation) SetContact(contact valueobject.Contact) {
	c.RepresentativeName = contact.Name()
	c.Email = contact.Email()
	c.Phone = contact.Phone()
	c.MarkModified()
}

func (c *Corporation) SetAddress(address string) {
	c.Address = strings.TrimSpace(address)
	c.MarkModified()
}

func (c *Corporation) SetNotes(notes string) {
	c.Notes = notes
	c.MarkModified()
}

func (c *Corporation) SetStatus(s Status) error {
	if err := parseStatus(s); err != nil {
		return err
	}
	c.Status = s
	c.MarkModified()
	return nil
}
