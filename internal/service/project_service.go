package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/projectflow/projectflow-service/internal/clock"
	"github.com/projectflow/projectflow-service/internal/domain"
	"github.com/projectflow/projectflow-service/internal/events"
	"github.com/projectflow/projectflow-service/internal/repository"
	apperrors "github.com/projectflow/projectflow-service/pkg/util"
)

// ProjectService coordinates project CRUD and role-scoped listing.
type ProjectService struct {
	projects   repository.ProjectRepository
	dispatcher events.Dispatcher
	clock      clock.Clock
	latency    time.Duration
}

// ProjectDependencies bundles requirements for the project service.
type ProjectDependencies struct {
	ProjectRepo repository.ProjectRepository
	Dispatcher  events.Dispatcher
	Clock       clock.Clock
	Latency     time.Duration
}

// ProjectCreateInput describes project creation payload.
type ProjectCreateInput struct {
	Title       string
	Description string
	Status      domain.ProjectStatus
	Priority    domain.ProjectPriority
	StartDate   time.Time
	EndDate     *time.Time
	Budget      *float64
	Tags        []string
}

// NewProjectService constructs the service.
func NewProjectService(deps ProjectDependencies) *ProjectService {
	return &ProjectService{
		projects:   deps.ProjectRepo,
		dispatcher: deps.Dispatcher,
		clock:      deps.Clock,
		latency:    deps.Latency,
	}
}

// Create inserts a new project owned by the principal. The owner always
// starts as the only team member, and progress derives from status.
func (s *ProjectService) Create(ctx context.Context, principal *domain.User, input ProjectCreateInput) (*domain.Project, error) {
	if principal == nil {
		return nil, apperrors.NewUnauthenticated("login required to create projects")
	}
	if err := s.clock.Sleep(ctx, s.latency); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	progress := 0
	if input.Status == domain.ProjectStatusCompleted {
		progress = 100
	}
	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}

	project := domain.Project{
		ID:            repository.NewEntityID("project", now),
		Title:         strings.TrimSpace(input.Title),
		Description:   strings.TrimSpace(input.Description),
		Status:        input.Status,
		Priority:      input.Priority,
		StartDate:     input.StartDate,
		EndDate:       input.EndDate,
		OwnerID:       principal.ID,
		TeamMemberIDs: []string{principal.ID},
		Progress:      progress,
		Budget:        input.Budget,
		Tags:          tags,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.projects.Insert(ctx, project); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventProjectCreated, principal.ID, project)
	return &project, nil
}

// Update applies a partial patch. Progress is intentionally not clamped
// here: creation derives it from status and the transport layer validates
// ranges, matching the store's original behavior.
func (s *ProjectService) Update(ctx context.Context, id string, patch domain.ProjectPatch) (*domain.Project, error) {
	if err := s.clock.Sleep(ctx, s.latency); err != nil {
		return nil, err
	}

	project, ok := s.projects.GetByID(id)
	if !ok {
		return nil, apperrors.NewNotFound("project", map[string]any{"id": id})
	}

	applyProjectPatch(project, patch)
	project.UpdatedAt = s.clock.Now()

	found, err := s.projects.Update(ctx, *project)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperrors.NewNotFound("project", map[string]any{"id": id})
	}

	s.publish(ctx, events.EventProjectUpdated, "", *project)
	return project, nil
}

// Delete removes the project. Deleting an unknown id is a silent no-op.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if err := s.clock.Sleep(ctx, s.latency); err != nil {
		return err
	}

	project, ok := s.projects.GetByID(id)
	removed, err := s.projects.Delete(ctx, id)
	if err != nil {
		return err
	}
	if removed && ok {
		s.publish(ctx, events.EventProjectDeleted, "", *project)
	}
	return nil
}

// ListForUser returns all projects for admins and owned projects for
// regular users, in insertion order.
func (s *ProjectService) ListForUser(principal *domain.User) []domain.Project {
	if principal == nil {
		return []domain.Project{}
	}

	all := s.projects.List()
	if principal.Role == domain.RoleAdmin {
		return all
	}

	owned := make([]domain.Project, 0, len(all))
	for _, p := range all {
		if p.OwnerID == principal.ID {
			owned = append(owned, p)
		}
	}
	return owned
}

// Get returns a single project by id.
func (s *ProjectService) Get(id string) (*domain.Project, error) {
	project, ok := s.projects.GetByID(id)
	if !ok {
		return nil, apperrors.NewNotFound("project", map[string]any{"id": id})
	}
	return project, nil
}

func applyProjectPatch(project *domain.Project, patch domain.ProjectPatch) {
	if patch.Title != nil {
		project.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		project.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Status != nil {
		project.Status = *patch.Status
	}
	if patch.Priority != nil {
		project.Priority = *patch.Priority
	}
	if patch.StartDate != nil {
		project.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		project.EndDate = patch.EndDate
	}
	if patch.TeamMemberIDs != nil {
		project.TeamMemberIDs = *patch.TeamMemberIDs
	}
	if patch.Progress != nil {
		project.Progress = *patch.Progress
	}
	if patch.Budget != nil {
		project.Budget = patch.Budget
	}
	if patch.Tags != nil {
		project.Tags = *patch.Tags
	}
}

func (s *ProjectService) publish(ctx context.Context, eventType events.EventType, actorID string, project domain.Project) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		ActorID:   actorID,
		EntityID:  project.ID,
		Timestamp: s.clock.Now(),
		Payload: events.ProjectChangedPayload{
			Title:    project.Title,
			Status:   project.Status,
			Priority: project.Priority,
			OwnerID:  project.OwnerID,
		},
	})
}
