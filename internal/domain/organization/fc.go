package organization

import (
	"strings"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/domain/shared"
	"github.com/kioskcrm/backend/internal/domain/shared/valueobject"
)

const AggregateTypeFC = "FC"

// FC is a franchise chain, the top of the hierarchy.
type FC struct {
	shared.TenantAggregateRoot
	Code        string
	Name        string
	ContactName string
	Email       string
	Phone       string
	Address     string
	Status      Status
	Notes       string
}

// NewFC creates an active FC.
func NewFC(tenantID uuid.UUID, code, name string) (*FC, error) {
	code, err := normalizeCode(code)
	if err != nil {
		return nil, err
	}
	name, err = normalizeName(name, 200)
	if err != nil {
		return nil, err
	}
	fc := &FC{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		Name:                name,
		Status:              StatusActive,
	}
	fc.AddDomainEvent(newOrgEvent(EventTypeFCCreated, AggregateTypeFC, fc.ID, tenantID, code))
	return fc, nil
}

// Rename changes the display name.
func (f *FC) Rename(name string) error {
	name, err := normalizeName(name, 200)
	if err != nil {
		return err
	}
	f.Name = name
	f.MarkModified()
	return nil
}

// SetContact replaces the contact details.
func (f *FC) SetContact(c valueobject.Contact) {
	f.ContactName = c.Name()
	f.Email = c.Email()
	f.Phone = c.Phone()
	f.MarkModified()
}

// SetAddress replaces the head office address.
func (f *FC) SetAddress(address string) {
	f.Address = strings.TrimSpace(address)
	f.MarkModified()
}

// SetNotes replaces free-form notes.
func (f *FC) SetNotes(notes string) {
	f.Notes = notes
	f.MarkModified()
}

// SetStatus writes the status field directly.
func (f *FC) SetStatus(s Status) error {
	if err := parseStatus(s); err != nil {
		return err
	}
	f.Status = s
	f.MarkModified()
	return nil
}
