package marketing

import (
	"strings"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/domain/shared"
	"github.com/kioskcrm/backend/internal/domain/shared/valueobject"
)

const AggregateTypeLead = "Lead"

// LeadSource is how the lead reached us.
type LeadSource string

const (
	LeadSourceWeb      LeadSource = "web"
	LeadSourceReferral LeadSource = "referral"
	LeadSourceEvent    LeadSource = "event"
	LeadSourceAd       LeadSource = "ad"
	LeadSourceOther    LeadSource = "other"
)

func (s LeadSource) IsValid() bool {
	switch s {
	case LeadSourceWeb, LeadSourceReferral, LeadSourceEvent, LeadSourceAd, LeadSourceOther:
		return true
	}
	return false
}

// LeadStatus is the sales-funnel position of a lead.
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusQualified LeadStatus = "qualified"
	LeadStatusConverted LeadStatus = "converted"
	LeadStatusLost      LeadStatus = "lost"
)

// AllLeadStatuses lists every status in funnel order.
var AllLeadStatuses = []LeadStatus{
	LeadStatusNew, LeadStatusContacted, LeadStatusQualified, LeadStatusConverted, LeadStatusLost,
}

func (s LeadStatus) IsValid() bool {
	for _, v := range AllLeadStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Lead is a prospective customer.
type Lead struct {
	shared.TenantAggregateRoot
	Name               string
	CompanyName        string
	Email              string
	Phone              string
	Address            string
	Prefecture         string
	RegionID           *uuid.UUID
	AreaID             *uuid.UUID
	Source             LeadSource
	Status             LeadStatus
	CampaignID         *uuid.UUID
	PipedrivePersonID  *int64
	PipedriveDealID    *int64
	ConvertedPartnerID *uuid.UUID
	Notes              string
}

// NewLead creates a new lead.
func NewLead(tenantID uuid.UUID, name, companyName string, source LeadSource) (*Lead, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Name must be 1-200 characters")
	}
	if !source.IsValid() {
		return nil, shared.NewDomainError("INVALID_SOURCE", "Unknown lead source")
	}
	l := &Lead{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		CompanyName:         strings.TrimSpace(companyName),
		Source:              source,
		Status:              LeadStatusNew,
	}
	l.AddDomainEvent(NewLeadEvent(EventTypeLeadCreated, l))
	return l, nil
}

// Update changes name, company and source.
func (l *Lead) Update(name, companyName string, source LeadSource) error {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Name must be 1-200 characters")
	}
	if !source.IsValid() {
		return shared.NewDomainError("INVALID_SOURCE", "Unknown lead source")
	}
	l.Name = name
	l.CompanyName = strings.TrimSpace(companyName)
	l.Source = source
	l.MarkModified()
	return nil
}

// SetContact stores email and phone. The contact name is ignored.
func (l *Lead) SetContact(c valueobject.Contact) {
	l.Email = c.Email()
	l.Phone = c.Phone()
	l.MarkModified()
}

// Relocate stores the address with its resolved prefecture and region.
func (l *Lead) Relocate(address, prefecture string, regionID, areaID *uuid.UUID) {
	l.Address = strings.TrimSpace(address)
	l.Prefecture = prefecture
	l.RegionID = regionID
	l.AreaID = areaID
	l.MarkModified()
}

func (l *Lead) AttachCampaign(campaignID *uuid.UUID) {
	l.CampaignID = campaignID
	l.MarkModified()
}

func (l *Lead) SetNotes(notes string) {
	l.Notes = notes
	l.MarkModified()
}

func (l *Lead) SetStatus(s LeadStatus) error {
	if !s.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown lead status")
	}
	l.Status = s
	l.MarkModified()
	return nil
}

// LinkPipedrive records the remote person and deal ids.
func (l *Lead) LinkPipedrive(personID, dealID int64) {
	l.PipedrivePersonID = &personID
	l.PipedriveDealID = &dealID
	l.MarkModified()
}

// Convert marks the lead converted into partnerID.
func (l *Lead) Convert(partnerID uuid.UUID) error {
	if l.Status == LeadStatusConverted {
		return shared.NewDomainError("INVALID_STATE", "Lead is already converted")
	}
	if l.Status == LeadStatusLost {
		return shared.NewDomainError("INVALID_STATE", "A lost lead cannot be converted")
	}
	l.Status = LeadStatusConverted
	l.ConvertedPartnerID = &partnerID
	l.MarkModified()
	l.AddDomainEvent(NewLeadEvent(EventTypeLeadConverted, l))
	return nil
}
