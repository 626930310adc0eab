package workflow

import (
	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/domain/shared"
)

const (
	EventTypeOrderCreated       = "order.created"
	EventTypeOrderStatusChanged = "order.status_changed"
)

// WorkflowEvent records a status on a workflow record.
type WorkflowEvent struct {
	shared.BaseDomainEvent
	Status string `json:"status"`
}

func newWorkflowEvent(eventType, aggType string, id, tenantID uuid.UUID, status string) *WorkflowEvent {
	return &WorkflowEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, aggType, id, tenantID),
		Status:          status,
	}
}
