package service

import (
	"context"
	"encoding/json"
	"testing"

	"go.uber.org/zap"

	"github.com/projectflow/projectflow-service/internal/domain"
)

func TestPreferenceService_DefaultsWhenUnset(t *testing.T) {
	svc := NewPreferenceService(newMemStore(), zap.NewNop())
	ctx := context.Background()

	notif, err := svc.Notifications(ctx, "1")
	if err != nil {
		t.Fatalf("notifications: %v", err)
	}
	if notif != domain.DefaultNotificationPreferences() {
		t.Fatalf("expected notification defaults, got %+v", notif)
	}

	ui, err := svc.UIPreferences(ctx, "1")
	if err != nil {
		t.Fatalf("ui preferences: %v", err)
	}
	if ui != domain.DefaultUIPreferences() {
		t.Fatalf("expected ui defaults, got %+v", ui)
	}
}

func TestPreferenceService_RoundTripPerUser(t *testing.T) {
	svc := NewPreferenceService(newMemStore(), zap.NewNop())
	ctx := context.Background()

	custom := domain.DefaultNotificationPreferences()
	custom.WeeklyReports = false
	custom.EmailNotifications = false
	if err := svc.UpdateNotifications(ctx, "1", custom); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := svc.Notifications(ctx, "1")
	if err != nil {
		t.Fatalf("notifications: %v", err)
	}
	if got != custom {
		t.Fatalf("expected saved preferences back, got %+v", got)
	}

	// Another user's preferences are untouched.
	other, err := svc.Notifications(ctx, "2")
	if err != nil {
		t.Fatalf("notifications for other user: %v", err)
	}
	if other != domain.DefaultNotificationPreferences() {
		t.Fatalf("expected defaults for other user, got %+v", other)
	}
}

func TestPreferenceService_CorruptValueFallsBackToDefaults(t *testing.T) {
	store := newMemStore()
	store.data["projectflow_preferences_1"] = json.RawMessage("{not json")
	svc := NewPreferenceService(store, zap.NewNop())

	ui, err := svc.UIPreferences(context.Background(), "1")
	if err != nil {
		t.Fatalf("ui preferences: %v", err)
	}
	if ui != domain.DefaultUIPreferences() {
		t.Fatalf("expected defaults over corrupt value, got %+v", ui)
	}
}
