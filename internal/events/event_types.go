package events

import (
	"time"

	"github.com/projectflow/projectflow-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventProjectCreated EventType = "project_created"
	EventProjectUpdated EventType = "project_updated"
	EventProjectDeleted EventType = "project_deleted"
	EventUserCreated    EventType = "user_created"
	EventUserDeleted    EventType = "user_deleted"
	EventUserLoggedIn   EventType = "user_logged_in"
	EventUserLoggedOut  EventType = "user_logged_out"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id,omitempty"`
	EntityID  string      `json:"entity_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// ProjectChangedPayload payload for project lifecycle events.
type ProjectChangedPayload struct {
	Title    string                 `json:"title"`
	Status   domain.ProjectStatus   `json:"status"`
	Priority domain.ProjectPriority `json:"priority"`
	OwnerID  string                 `json:"owner_id"`
}

// UserChangedPayload payload for user lifecycle events.
type UserChangedPayload struct {
	Email string      `json:"email"`
	Name  string      `json:"name"`
	Role  domain.Role `json:"role"`
}
