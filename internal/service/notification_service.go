package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Prajeshh-06/Smart-Civic-Reporter/internal/events"
)

// NotificationService handles emitting notifications for domain events.
// Delivery is currently a logging stub; the subscription wiring is real.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventReportCreated, n.handleReportCreated)
	n.dispatcher.Subscribe(events.EventReportStatusChanged, n.handleReportStatusChanged)
	n.dispatcher.Subscribe(events.EventReportBoosted, n.handleReportBoosted)
	n.dispatcher.Subscribe(events.EventReportDeleted, n.handleReportDeleted)
}

func (n *NotificationService) handleReportCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("ReportCreated", zap.String("report_id", event.ReportID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleReportStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("ReportStatusChanged", zap.String("report_id", event.ReportID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleReportBoosted(ctx context.Context, event events.Event) error {
	n.logger.Info("ReportBoosted", zap.String("report_id", event.ReportID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleReportDeleted(ctx context.Context, event events.Event) error {
	n.logger.Info("ReportDeleted", zap.String("report_id", event.ReportID))
	return nil
}
