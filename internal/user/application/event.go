package application

import (
	"context"

	"github.com/mateusmacedo/go-mediator/internal/user/domain"
	pkgApp "github.com/mateusmacedo/go-mediator/pkg/application"
	pkgDomain "github.com/mateusmacedo/go-mediator/pkg/domain"
)

type welcomeEmailHandler struct {
	logger pkgApp.AppLogger
}

// NewWelcomeEmailHandler reacts to user.created by dispatching the welcome
// email. Delivery itself is out of process; this handler records the intent.
func NewWelcomeEmailHandler(logger pkgApp.AppLogger) pkgApp.EventHandler {
	return &welcomeEmailHandler{logger: logger}
}

func (h *welcomeEmailHandler) Handle(ctx context.Context, event pkgDomain.Event) error {
	payload, ok := event.Payload.(domain.UserCreatedPayload)
	if !ok {
		pkgApp.LogInfo(ctx, h.logger, "welcome email skipped, unexpected payload", map[string]interface{}{
			"event_id": event.ID,
			"payload":  event.Payload,
		})
		return nil
	}

	pkgApp.LogInfo(ctx, h.logger, "welcome email queued", map[string]interface{}{
		"user_id": payload.UserID,
		"email":   payload.Email,
	})
	return nil
}

type auditLogHandler struct {
	logger pkgApp.AppLogger
}

// NewAuditLogHandler writes an audit trail entry for every user change.
func NewAuditLogHandler(logger pkgApp.AppLogger) pkgApp.EventHandler {
	return &auditLogHandler{logger: logger}
}

func (h *auditLogHandler) Handle(ctx context.Context, event pkgDomain.Event) error {
	pkgApp.LogInfo(ctx, h.logger, "audit entry recorded", map[string]interface{}{
		"event_id":     event.ID,
		"event_name":   event.Name,
		"aggregate_id": event.AggregateID,
		"occurred_at":  event.OccurredAt,
		"payload":      event.Payload,
	})
	return nil
}

type adminNotifyHandler struct {
	logger pkgApp.AppLogger
}

// NewAdminNotifyHandler notifies operators about new signups.
func NewAdminNotifyHandler(logger pkgApp.AppLogger) pkgApp.EventHandler {
	return &adminNotifyHandler{logger: logger}
}

func (h *adminNotifyHandler) Handle(ctx context.Context, event pkgDomain.Event) error {
	payload, ok := event.Payload.(domain.UserCreatedPayload)
	if !ok {
		return nil
	}

	pkgApp.LogInfo(ctx, h.logger, "admin notified of new user", map[string]interface{}{
		"user_id": payload.UserID,
		"name":    payload.Name,
	})
	return nil
}
