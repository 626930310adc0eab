// Package partner models external companies the business works with and the
// prices agreed with them.
package partner

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/domain/shared"
	"github.com/kioskcrm/backend/internal/domain/shared/valueobject"
)

const AggregateTypePartner = "Partner"

// Type classifies what a partner does for the business.
type Type string

const (
	TypeAgency      Type = "agency"
	TypeInstaller   Type = "installer"
	TypeMaintenance Type = "maintenance"
	TypeSupplier    Type = "supplier"
	TypeCustomer    Type = "customer"
)

// IsValid reports whether t is a known partner type.
func (t Type) IsValid() bool {
	switch t {
	case TypeAgency, TypeInstaller, TypeMaintenance, TypeSupplier, TypeCustomer:
		return true
	}
	return false
}

// Status of a partner relationship.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusInactive
}

// Partner is an agency, installer, maintenance company, supplier or customer.
type Partner struct {
	shared.TenantAggregateRoot
	Code           string
	Name           string
	Type           Type
	ContactName    string
	Email          string
	Phone          string
	Address        string
	Prefecture     string
	RegionID       *uuid.UUID
	AreaID         *uuid.UUID
	PipedriveOrgID *int64
	Status         Status
	Notes          string
}

// NewPartner creates an active partner.
func NewPartner(tenantID uuid.UUID, code, name string, partnerType Type) (*Partner, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || len(code) > 20 {
		return nil, shared.NewDomainError("INVALID_CODE", "Code must be 1-20 characters")
	}
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Name must be 1-200 characters")
	}
	if !partnerType.IsValid() {
		return nil, shared.NewDomainError("INVALID_PARTNER_TYPE", "Unknown partner type")
	}

	p := &Partner{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		Name:                name,
		Type:                partnerType,
		Status:              StatusActive,
	}
	p.AddDomainEvent(NewPartnerEvent(EventTypePartnerCreated, p))
	return p, nil
}

// Update changes the name and type.
func (p *Partner) Update(name string, partnerType Type) error {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Name must be 1-200 characters")
	}
	if !partnerType.IsValid() {
		return shared.NewDomainError("INVALID_PARTNER_TYPE", "Unknown partner type")
	}
	p.Name = name
	p.Type = partnerType
	p.MarkModified()
	return nil
}

func (p *Partner) SetContact(c valueobject.Contact) {
	p.ContactName = c.Name()
	p.Email = c.Email()
	p.Phone = c.Phone()
	p.MarkModified()
}

// Relocate stores the address with its resolved prefecture and region.
func (p *Partner) Relocate(address, prefecture string, regionID, areaID *uuid.UUID) {
	p.Address = strings.TrimSpace(address)
	p.Prefecture = prefecture
	p.RegionID = regionID
	p.AreaID = areaID
	p.MarkModified()
}

// LinkPipedrive records the remote organization id.
func (p *Partner) LinkPipedrive(orgID int64) {
	p.PipedriveOrgID = &orgID
	p.MarkModified()
	p.AddDomainEvent(NewPartnerEvent(EventTypePartnerSynced, p))
}

func (p *Partner) SetNotes(notes string) {
	p.Notes = notes
	p.MarkModified()
}

func (p *Partner) SetStatus(s Status) error {
	if !s.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Status must be active or inactive")
	}
	p.Status = s
	p.MarkModified()
	return nil
}
