package worker

import (
	"go.uber.org/zap"

	"github.com/jetpack-ops/jetpack/internal/service"
)

// StartNotificationWorker subscribes the notification handlers to the event
// dispatcher. Dispatch is synchronous, so there is no goroutine to manage.
func StartNotificationWorker(notificationService *service.NotificationService, logger *zap.Logger) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
	logger.Debug("notification handlers registered")
}
