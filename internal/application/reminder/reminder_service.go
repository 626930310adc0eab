// Package reminder notifies assignees and region offices about processes
// and deliveries that are coming due.
package reminder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/domain/asset"
	"github.com/kioskcrm/backend/internal/domain/geo"
	"github.com/kioskcrm/backend/internal/domain/identity"
	"github.com/kioskcrm/backend/internal/domain/workflow"
	"github.com/kioskcrm/backend/internal/infrastructure/integration"
	"github.com/kioskcrm/backend/internal/infrastructure/scheduler"
	"github.com/kioskcrm/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const (
	ChannelSlack = "slack"
	ChannelEmail = "email"
	ChannelSNS   = "sns"
)

// SlackPoster posts to a Slack webhook
type SlackPoster interface {
	Post(ctx context.Context, msg integration.SlackMessage) error
}

// Mailer sends email
type Mailer interface {
	Send(ctx context.Context, mail integration.Mail) (string, error)
}

// TopicPublisher fans a message out to subscribers
type TopicPublisher interface {
	Publish(ctx context.Context, subject, message string) (string, error)
}

// CatalogReader loads a tenant's regions
type CatalogReader interface {
	Catalog(ctx context.Context, tenantID uuid.UUID) (*geo.Catalog, error)
}

// RunResult summarises one reminder run
type RunResult struct {
	Scanned  int `json:"scanned"`
	Notified int `json:"notified"`
	Failed   int `json:"failed"`
}

// ReminderServiceDeps lists the collaborators of ReminderService. Slack,
// Mailer and Topic are optional.
type ReminderServiceDeps struct {
	ProcessRepo  workflow.ProcessRepository
	DeliveryRepo workflow.DeliveryRequestRepository
	KioskRepo    asset.KioskRepository
	UserRepo     identity.UserRepository
	Geo          CatalogReader
	Slack        SlackPoster
	Mailer       Mailer
	Topic        TopicPublisher
	DefaultTo    string
	Window       time.Duration
	Location     *time.Location
	Metrics      *telemetry.BusinessMetrics
	Logger       *zap.Logger
}

// ReminderService runs the reminder sweep
type ReminderService struct {
	processRepo  workflow.ProcessRepository
	deliveryRepo workflow.DeliveryRequestRepository
	kioskRepo    asset.KioskRepository
	userRepo     identity.UserRepository
	geo          CatalogReader
	slack        SlackPoster
	mailer       Mailer
	topic        TopicPublisher
	defaultTo    string
	window       time.Duration
	loc          *time.Location
	metrics      *telemetry.BusinessMetrics
	logger       *zap.Logger
	now          func() time.Time
}

// NewReminderService creates a new ReminderService
func NewReminderService(deps ReminderServiceDeps) *ReminderService {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Location == nil {
		deps.Location = time.UTC
	}
	if deps.Window <= 0 {
		deps.Window = 72 * time.Hour
	}
	return &ReminderService{
		processRepo:  deps.ProcessRepo,
		deliveryRepo: deps.DeliveryRepo,
		kioskRepo:    deps.KioskRepo,
		userRepo:     deps.UserRepo,
		geo:          deps.Geo,
		slack:        deps.Slack,
		mailer:       deps.Mailer,
		topic:        deps.Topic,
		defaultTo:    strings.TrimSpace(deps.DefaultTo),
		window:       deps.Window,
		loc:          deps.Location,
		metrics:      deps.Metrics,
		logger:       deps.Logger,
		now:          time.Now,
	}
}

// notice is one reminder ready to send
type notice struct {
	subject string
	body    string
	channel string
	to      []string
}

// Run sweeps every tenant. Items are processed one at a time; a failed
// notification is counted and logged and the sweep continues. Processes
// and deliveries that were notified are stamped so they are not reminded
// again that day.
func (s *ReminderService) Run(ctx context.Context) (result *RunResult, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "reminder", "run")
	defer func() { telemetry.EndSpan(span, err) }()

	now := s.now().In(s.loc)
	before := now.Add(s.window)
	result = &RunResult{}
	catalogs := make(map[uuid.UUID]*geo.Catalog)

	processes, err := s.processRepo.FindOpenDueBefore(ctx, before)
	if err != nil {
		return nil, fmt.Errorf("failed to load due processes: %w", err)
	}
	for i := range processes {
		p := &processes[i]
		if !p.NeedsReminder(now, s.window) {
			continue
		}
		result.Scanned++

		n := s.processNotice(ctx, p, catalogs)
		sent, sendErr := s.send(ctx, n)
		if sendErr != nil {
			result.Failed++
			s.logger.Warn("Process reminder failed",
				zap.String("tenant_id", p.TenantID.String()),
				zap.String("process_id", p.ID.String()),
				zap.Error(sendErr))
			continue
		}
		if !sent {
			s.logger.Debug("Process reminder has no channel", zap.String("process_id", p.ID.String()))
			continue
		}
		p.MarkReminded(now)
		if err := s.processRepo.Save(ctx, p); err != nil {
			result.Failed++
			s.logger.Error("Failed to stamp process reminder", zap.String("process_id", p.ID.String()), zap.Error(err))
			continue
		}
		result.Notified++
	}

	deliveries, err := s.deliveryRepo.FindOpenDueBefore(ctx, before)
	if err != nil {
		return nil, fmt.Errorf("failed to load due deliveries: %w", err)
	}
	for i := range deliveries {
		d := &deliveries[i]
		if !d.NeedsReminder(now, s.window) {
			continue
		}
		result.Scanned++

		n := s.deliveryNotice(ctx, d, catalogs)
		sent, sendErr := s.send(ctx, n)
		if sendErr != nil {
			result.Failed++
			s.logger.Warn("Delivery reminder failed",
				zap.String("tenant_id", d.TenantID.String()),
				zap.String("delivery_id", d.ID.String()),
				zap.Error(sendErr))
			continue
		}
		if !sent {
			s.logger.Debug("Delivery reminder has no channel", zap.String("delivery_id", d.ID.String()))
			continue
		}
		d.MarkReminded(now)
		if err := s.deliveryRepo.Save(ctx, d); err != nil {
			result.Failed++
			s.logger.Error("Failed to stamp delivery reminder", zap.String("delivery_id", d.ID.String()), zap.Error(err))
			continue
		}
		result.Notified++
	}

	span.SetAttributes(
		attribute.Int("reminder.scanned", result.Scanned),
		attribute.Int("reminder.notified", result.Notified),
		attribute.Int("reminder.failed", result.Failed),
	)
	s.logger.Info("Reminder run finished",
		zap.Int("scanned", result.Scanned),
		zap.Int("notified", result.Notified),
		zap.Int("failed", result.Failed))
	return result, nil
}

// Job adapts the sweep to the in-process daily trigger
func (s *ReminderService) Job() scheduler.Job {
	return scheduler.JobFunc{
		JobName: "reminders",
		Fn: func(ctx context.Context) error {
			_, err := s.Run(ctx)
			return err
		},
	}
}

// send delivers n on every configured channel. It reports whether at least
// one channel accepted the message; any channel error fails the item.
func (s *ReminderService) send(ctx context.Context, n notice) (bool, error) {
	var errs []string
	sent := false

	if s.slack != nil {
		err := s.slack.Post(ctx, integration.SlackMessage{Text: n.subject + "\n" + n.body, Channel: n.channel})
		s.metrics.ReminderSent(ctx, ChannelSlack, err == nil)
		if err != nil {
			errs = append(errs, "slack: "+err.Error())
		} else {
			sent = true
		}
	}
	if s.mailer != nil && len(n.to) > 0 {
		_, err := s.mailer.Send(ctx, integration.Mail{To: n.to, Subject: n.subject, Body: n.body})
		s.metrics.ReminderSent(ctx, ChannelEmail, err == nil)
		if err != nil {
			errs = append(errs, "email: "+err.Error())
		} else {
			sent = true
		}
	}
	if s.topic != nil {
		_, err := s.topic.Publish(ctx, n.subject, n.body)
		s.metrics.ReminderSent(ctx, ChannelSNS, err == nil)
		if err != nil {
			errs = append(errs, "sns: "+err.Error())
		} else {
			sent = true
		}
	}

	if len(errs) > 0 {
		return sent, fmt.Errorf("%w: %s", integration.ErrRequestFailed, strings.Join(errs, "; "))
	}
	return sent, nil
}

func (s *ReminderService) processNotice(ctx context.Context, p *workflow.Process, catalogs map[uuid.UUID]*geo.Catalog) notice {
	var n notice

	var recipients []string
	assignee := "未割当"
	if p.AssigneeID != nil {
		if u, err := s.userRepo.FindByIDForTenant(ctx, p.TenantID, *p.AssigneeID); err == nil {
			assignee = u.DisplayNameOrUsername()
			recipients = append(recipients, u.Email)
		} else {
			s.logger.Debug("Assignee lookup failed", zap.String("process_id", p.ID.String()), zap.Error(err))
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "工程: %s\n", p.Title)
	fmt.Fprintf(&b, "期限: %s\n", p.DueDate.In(s.loc).Format("2006-01-02"))
	fmt.Fprintf(&b, "担当: %s\n", assignee)
	if p.KioskID != nil {
		if k, region := s.kioskRegion(ctx, p.TenantID, *p.KioskID, catalogs); k != nil {
			fmt.Fprintf(&b, "端末: %s\n", k.SerialNumber)
			if region != nil {
				fmt.Fprintf(&b, "地域: %s\n", region.Name)
				n.channel = region.SlackChannel
				recipients = append(recipients, region.OfficeEmail)
			}
		}
	}

	subject := "【期限通知】" + p.Title
	if p.IsOverdue(s.now()) {
		subject = "【期限超過】" + p.Title
	}
	n.subject = subject
	n.body = b.String()
	n.to = s.recipients(recipients)
	return n
}

func (s *ReminderService) deliveryNotice(ctx context.Context, d *workflow.DeliveryRequest, catalogs map[uuid.UUID]*geo.Catalog) notice {
	var n notice

	day := d.RequestedDate
	if d.ScheduledDate != nil {
		day = *d.ScheduledDate
	}

	var recipients []string
	var b strings.Builder
	fmt.Fprintf(&b, "配送先: %s\n", d.DeliveryAddress)
	fmt.Fprintf(&b, "予定日: %s\n", day.In(s.loc).Format("2006-01-02"))
	fmt.Fprintf(&b, "状態: %s\n", d.Status)
	if d.Carrier != "" {
		fmt.Fprintf(&b, "配送業者: %s %s\n", d.Carrier, d.TrackingNumber)
	}
	if d.KioskID != nil {
		if k, region := s.kioskRegion(ctx, d.TenantID, *d.KioskID, catalogs); k != nil {
			fmt.Fprintf(&b, "端末: %s\n", k.SerialNumber)
			if region != nil {
				n.channel = region.SlackChannel
				recipients = append(recipients, region.OfficeEmail)
			}
		}
	}

	n.subject = "【配送予定】" + d.DeliveryAddress
	n.body = b.String()
	n.to = s.recipients(recipients)
	return n
}

// kioskRegion loads the kiosk and the region it is placed in. Lookup
// failures degrade to a message without region routing.
func (s *ReminderService) kioskRegion(ctx context.Context, tenantID, kioskID uuid.UUID, catalogs map[uuid.UUID]*geo.Catalog) (*asset.Kiosk, *geo.Region) {
	k, err := s.kioskRepo.FindByIDForTenant(ctx, tenantID, kioskID)
	if err != nil {
		s.logger.Debug("Kiosk lookup failed", zap.String("kiosk_id", kioskID.String()), zap.Error(err))
		return nil, nil
	}
	if k.RegionID == nil || s.geo == nil {
		return k, nil
	}
	catalog, ok := catalogs[tenantID]
	if !ok {
		catalog, err = s.geo.Catalog(ctx, tenantID)
		if err != nil {
			s.logger.Warn("Catalog lookup failed", zap.String("tenant_id", tenantID.String()), zap.Error(err))
			return k, nil
		}
		catalogs[tenantID] = catalog
	}
	region, ok := catalog.Region(*k.RegionID)
	if !ok {
		return k, nil
	}
	return k, region
}

// recipients drops blanks and duplicates and falls back to the default
// address.
func (s *ReminderService) recipients(candidates []string) []string {
	seen := make(map[string]struct{}, len(candidates))
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		c = strings.ToLower(strings.TrimSpace(c))
		if c == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	if len(out) == 0 && s.defaultTo != "" {
		out = append(out, s.defaultTo)
	}
	return out
}
