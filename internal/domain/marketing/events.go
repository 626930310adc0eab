package marketing

import "github.com/kioskcrm/backend/internal/domain/shared"

const (
	EventTypeLeadCreated   = "lead.created"
	EventTypeLeadConverted = "lead.converted"
)

// LeadEvent carries the lead's funnel position.
type LeadEvent struct {
	shared.BaseDomainEvent
	Name   string     `json:"name"`
	Source LeadSource `json:"source"`
	Status LeadStatus `json:"status"`
}

func NewLeadEvent(eventType string, l *Lead) *LeadEvent {
	return &LeadEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeLead, l.ID, l.TenantID),
		Name:            l.Name,
		Source:          l.Source,
		Status:          l.Status,
	}
}
