package organization

import (
	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/domain/shared"
)

const (
	EventTypeFCCreated          = "organization.fc.created"
	EventTypeCorporationCreated = "organization.corporation.created"
	EventTypeBranchCreated      = "organization.branch.created"
	EventTypeBranchRelocated    = "organization.branch.relocated"
)

// OrgEvent is raised by every level of the hierarchy.
type OrgEvent struct {
	shared.BaseDomainEvent
	Code string `json:"code"`
}

func newOrgEvent(eventType, aggType string, id, tenantID uuid.UUID, code string) *OrgEvent {
	return &OrgEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, aggType, id, tenantID),
		Code:            code,
	}
}
