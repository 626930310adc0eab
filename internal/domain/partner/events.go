package partner

import (
	"github.com/kioskcrm/backend/internal/domain/shared"
)

const (
	EventTypePartnerCreated = "partner.created"
	EventTypePartnerSynced  = "partner.pipedrive_synced"
)

// PartnerEvent carries the partner's identifying fields.
type PartnerEvent struct {
	shared.BaseDomainEvent
	Code string `json:"code"`
	Name string `json:"name"`
	Type Type   `json:"partner_type"`
}

func NewPartnerEvent(eventType string, p *Partner) *PartnerEvent {
	return &PartnerEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypePartner, p.ID, p.TenantID),
		Code:            p.Code,
		Name:            p.Name,
		Type:            p.Type,
	}
}
