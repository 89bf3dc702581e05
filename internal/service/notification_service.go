package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/projectflow/projectflow-service/internal/events"
)

// NotificationService consumes domain events and delivers (currently: logs)
// notifications, honoring the owner's notification preferences.
type NotificationService struct {
	dispatcher  events.Dispatcher
	preferences *PreferenceService
	logger      *zap.Logger
}

// NewNotificationService constructs the service.
func NewNotificationService(dispatcher events.Dispatcher, preferences *PreferenceService, logger *zap.Logger) *NotificationService {
	return &NotificationService{dispatcher: dispatcher, preferences: preferences, logger: logger}
}

// RegisterHandlers subscribes to the events the service reacts to.
func (s *NotificationService) RegisterHandlers() {
	for _, eventType := range []events.EventType{
		events.EventProjectCreated,
		events.EventProjectUpdated,
		events.EventProjectDeleted,
	} {
		s.dispatcher.Subscribe(eventType, s.handleProjectEvent)
	}
	s.dispatcher.Subscribe(events.EventUserCreated, s.handleUserEvent)
	s.dispatcher.Subscribe(events.EventUserDeleted, s.handleUserEvent)
}

func (s *NotificationService) handleProjectEvent(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ProjectChangedPayload)
	if !ok {
		return nil
	}

	prefs, err := s.preferences.Notifications(ctx, payload.OwnerID)
	if err != nil {
		return err
	}
	if !prefs.ProjectUpdates {
		s.logger.Debug("project notification suppressed by preferences",
			zap.String("owner_id", payload.OwnerID),
			zap.String("event", string(event.Type)))
		return nil
	}

	s.logger.Info("project notification",
		zap.String("event", string(event.Type)),
		zap.String("project_id", event.EntityID),
		zap.String("owner_id", payload.OwnerID),
		zap.String("title", payload.Title))
	return nil
}

func (s *NotificationService) handleUserEvent(_ context.Context, event events.Event) error {
	s.logger.Info("user notification",
		zap.String("event", string(event.Type)),
		zap.String("user_id", event.EntityID))
	return nil
}
