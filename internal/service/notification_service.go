package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/jetpack-ops/jetpack/internal/config"
	"github.com/jetpack-ops/jetpack/internal/events"
)

// NotificationService handles emitting notifications for domain events. The
// actual delivery systems are external collaborators; these handlers stub
// them behind config-gated log lines.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventInviteCreated, n.handleInviteCreated)
	n.dispatcher.Subscribe(events.EventBrandCreated, n.handleBrandCreated)
	n.dispatcher.Subscribe(events.EventClaimSubmitted, n.handleClaimSubmitted)
	n.dispatcher.Subscribe(events.EventClaimDecided, n.handleClaimDecided)
	n.dispatcher.Subscribe(events.EventSyncCompleted, n.handleSyncCompleted)
}

func (n *NotificationService) handleInviteCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("InviteCreated", zap.Any("payload", event.Payload))
	n.sendEmailStub(ctx, event)
	return nil
}

func (n *NotificationService) handleBrandCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("BrandCreated", zap.Any("payload", event.Payload))
	n.sendWebhookStub(ctx, event)
	return nil
}

func (n *NotificationService) handleClaimSubmitted(ctx context.Context, event events.Event) error {
	n.logger.Info("ClaimSubmitted", zap.Any("payload", event.Payload))
	n.sendEmailStub(ctx, event)
	n.sendWebhookStub(ctx, event)
	return nil
}

func (n *NotificationService) handleClaimDecided(ctx context.Context, event events.Event) error {
	n.logger.Info("ClaimDecided", zap.Any("payload", event.Payload))
	n.sendEmailStub(ctx, event)
	return nil
}

func (n *NotificationService) handleSyncCompleted(ctx context.Context, event events.Event) error {
	n.logger.Info("SyncCompleted", zap.Any("payload", event.Payload))
	n.sendWebhookStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("event_type", string(event.Type)))
}
