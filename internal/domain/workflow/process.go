package workflow

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/domain/shared"
)

const AggregateTypeProcess = "Process"

// ProcessStatus is the progress of a process.
type ProcessStatus string

const (
	ProcessStatusNotStarted ProcessStatus = "not_started"
	ProcessStatusInProgress ProcessStatus = "in_progress"
	ProcessStatusOnHold     ProcessStatus = "on_hold"
	ProcessStatusCompleted  ProcessStatus = "completed"
)

// IsValid reports whether s is a known process status.
func (s ProcessStatus) IsValid() bool {
	switch s {
	case ProcessStatusNotStarted, ProcessStatusInProgress, ProcessStatusOnHold, ProcessStatusCompleted:
		return true
	}
	return false
}

// Process is a unit of work, such as an installation, with an assignee and
// a due date.
type Process struct {
	shared.TenantAggregateRoot
	Title      string
	KioskID    *uuid.UUID
	OrderID    *uuid.UUID
	AssigneeID *uuid.UUID
	Status     ProcessStatus
	DueDate    *time.Time
	RemindedAt *time.Time
	Notes      string
}

// NewProcess creates a process that has not started.
func NewProcess(tenantID uuid.UUID, title string) (*Process, error) {
	title = strings.TrimSpace(title)
	if title == "" || len(title) > 300 {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title must be 1-300 characters")
	}
	return &Process{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Title:               title,
		Status:              ProcessStatusNotStarted,
	}, nil
}

func (p *Process) Retitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" || len(title) > 300 {
		return shared.NewDomainError("INVALID_TITLE", "Title must be 1-300 characters")
	}
	p.Title = title
	p.MarkModified()
	return nil
}

// Link attaches the process to a kiosk and/or order.
func (p *Process) Link(kioskID, orderID *uuid.UUID) {
	p.KioskID = kioskID
	p.OrderID = orderID
	p.MarkModified()
}

// Assign sets the responsible user.
func (p *Process) Assign(userID *uuid.UUID) {
	p.AssigneeID = userID
	p.MarkModified()
}

// Schedule sets the due date. Moving the due date re-arms the reminder.
func (p *Process) Schedule(due *time.Time) {
	p.DueDate = due
	p.RemindedAt = nil
	p.MarkModified()
}

func (p *Process) SetNotes(notes string) {
	p.Notes = notes
	p.MarkModified()
}

// SetStatus writes the status field.
func (p *Process) SetStatus(s ProcessStatus) error {
	if !s.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown process status")
	}
	p.Status = s
	p.MarkModified()
	return nil
}

// NeedsReminder reports whether the process is open, due before the end of
// the window and has not been reminded on now's calendar day.
func (p *Process) NeedsReminder(now time.Time, window time.Duration) bool {
	if p.Status == ProcessStatusCompleted || p.DueDate == nil {
		return false
	}
	if p.DueDate.After(now.Add(window)) {
		return false
	}
	if p.RemindedAt != nil && sameDay(*p.RemindedAt, now) {
		return false
	}
	return true
}

// MarkReminded stamps the reminder time.
func (p *Process) MarkReminded(at time.Time) {
	p.RemindedAt = &at
	p.MarkModified()
}

// IsOverdue reports whether the due date has passed.
func (p *Process) IsOverdue(now time.Time) bool {
	return p.DueDate != nil && p.Status != ProcessStatusCompleted && p.DueDate.Before(now)
}

// sameDay reports whether stamp falls on now's calendar day, both read in
// now's location. Stored stamps come back in UTC.
func sameDay(stamp, now time.Time) bool {
	a, b := stamp.In(now.Location()), now
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
