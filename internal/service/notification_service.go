package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/talkserve/backend/internal/events"
	"github.com/talkserve/backend/internal/platform/mailer"
)

// NotificationService reacts to domain events: invite emails go out through
// the mailer, ticket events are logged for the activity feed.
type NotificationService struct {
	dispatcher events.Dispatcher
	mail       mailer.Service
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, mail mailer.Service, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		mail:       mail,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventInviteCreated, n.handleInviteCreated)
	n.dispatcher.Subscribe(events.EventInviteAccepted, n.handleInviteAccepted)
	n.dispatcher.Subscribe(events.EventTicketCreated, n.handleTicketEvent)
	n.dispatcher.Subscribe(events.EventTicketAssigned, n.handleTicketEvent)
	n.dispatcher.Subscribe(events.EventTicketStatusChanged, n.handleTicketEvent)
}

func (n *NotificationService) handleInviteCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.InviteCreatedPayload)
	if !ok {
		n.logger.Warn("InviteCreated: unexpected payload", zap.String("event_id", event.ID))
		return nil
	}

	subject := "You have been invited to join a team"
	text := fmt.Sprintf("You have been invited as %s. Open %s to accept.", payload.Role, payload.Link)
	html := fmt.Sprintf(`<p>You have been invited as <strong>%s</strong>.</p><p><a href=%q>Accept invite</a></p>`, payload.Role, payload.Link)

	messageID, err := n.mail.Send(payload.Email, "", subject, text, html)
	if err != nil {
		n.logger.Error("InviteCreated: email failed",
			zap.String("invite_id", payload.InviteID),
			zap.Error(err))
		return err
	}
	n.logger.Info("InviteCreated: email sent",
		zap.String("invite_id", payload.InviteID),
		zap.String("message_id", messageID))
	return nil
}

func (n *NotificationService) handleInviteAccepted(ctx context.Context, event events.Event) error {
	n.logger.Info("InviteAccepted",
		zap.String("business_id", event.BusinessID),
		zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleTicketEvent(ctx context.Context, event events.Event) error {
	n.logger.Info(string(event.Type),
		zap.String("business_id", event.BusinessID),
		zap.String("actor_id", event.ActorID),
		zap.Any("payload", event.Payload))
	return nil
}
