package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/projectflow/projectflow-service/internal/domain"
	"github.com/projectflow/projectflow-service/internal/repository"
	"github.com/projectflow/projectflow-service/internal/storage"
)

// PreferenceService stores per-user notification and UI preferences
// directly through the persistence adapter, one key per user and concern.
type PreferenceService struct {
	store  storage.Store
	logger *zap.Logger
}

// NewPreferenceService constructs the service.
func NewPreferenceService(store storage.Store, logger *zap.Logger) *PreferenceService {
	return &PreferenceService{store: store, logger: logger}
}

// Notifications returns the user's saved notification preferences, falling
// back to defaults when nothing (readable) is stored.
func (s *PreferenceService) Notifications(ctx context.Context, userID string) (domain.NotificationPreferences, error) {
	prefs := domain.DefaultNotificationPreferences()
	err := s.load(ctx, notificationKey(userID), &prefs)
	return prefs, err
}

// UpdateNotifications overwrites the user's notification preferences.
func (s *PreferenceService) UpdateNotifications(ctx context.Context, userID string, prefs domain.NotificationPreferences) error {
	return s.store.Save(ctx, notificationKey(userID), prefs)
}

// UIPreferences returns the user's saved display preferences, falling back
// to defaults when nothing (readable) is stored.
func (s *PreferenceService) UIPreferences(ctx context.Context, userID string) (domain.UIPreferences, error) {
	prefs := domain.DefaultUIPreferences()
	err := s.load(ctx, uiPreferenceKey(userID), &prefs)
	return prefs, err
}

// UpdateUIPreferences overwrites the user's display preferences.
func (s *PreferenceService) UpdateUIPreferences(ctx context.Context, userID string, prefs domain.UIPreferences) error {
	return s.store.Save(ctx, uiPreferenceKey(userID), prefs)
}

func (s *PreferenceService) load(ctx context.Context, key string, out any) error {
	raw, ok, err := s.store.Load(ctx, key)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		s.logger.Warn("discarding unreadable preferences",
			zap.String("key", key), zap.Error(err))
	}
	return nil
}

func notificationKey(userID string) string {
	return fmt.Sprintf("%s_%s", repository.KeyPrefixNotifications, userID)
}

func uiPreferenceKey(userID string) string {
	return fmt.Sprintf("%s_%s", repository.KeyPrefixUIPreferences, userID)
}
