package dto

import (
	"time"

	"github.com/projectflow/projectflow-service/internal/domain"
)

// ProjectCreateRequest payload for new projects.
type ProjectCreateRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Budget      *float64   `json:"budget,omitempty"`
	Tags        []string   `json:"tags"`
}

// ProjectUpdateRequest payload for partial updates. Absent fields are left
// untouched.
type ProjectUpdateRequest struct {
	Title         *string    `json:"title,omitempty"`
	Description   *string    `json:"description,omitempty"`
	Status        *string    `json:"status,omitempty"`
	Priority      *string    `json:"priority,omitempty"`
	StartDate     *time.Time `json:"start_date,omitempty"`
	EndDate       *time.Time `json:"end_date,omitempty"`
	TeamMemberIDs *[]string  `json:"team_member_ids,omitempty"`
	Progress      *int       `json:"progress,omitempty"`
	Budget        *float64   `json:"budget,omitempty"`
	Tags          *[]string  `json:"tags,omitempty"`
}

// ProjectResponse is the public view of a project.
type ProjectResponse struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Status        string     `json:"status"`
	Priority      string     `json:"priority"`
	StartDate     time.Time  `json:"start_date"`
	EndDate       *time.Time `json:"end_date,omitempty"`
	OwnerID       string     `json:"owner_id"`
	TeamMemberIDs []string   `json:"team_member_ids"`
	Progress      int        `json:"progress"`
	Budget        *float64   `json:"budget,omitempty"`
	Tags          []string   `json:"tags"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// ToProjectResponse maps a domain project.
func ToProjectResponse(project domain.Project) ProjectResponse {
	return ProjectResponse{
		ID:            project.ID,
		Title:         project.Title,
		Description:   project.Description,
		Status:        string(project.Status),
		Priority:      string(project.Priority),
		StartDate:     project.StartDate,
		EndDate:       project.EndDate,
		OwnerID:       project.OwnerID,
		TeamMemberIDs: project.TeamMemberIDs,
		Progress:      project.Progress,
		Budget:        project.Budget,
		Tags:          project.Tags,
		CreatedAt:     project.CreatedAt,
		UpdatedAt:     project.UpdatedAt,
	}
}

// ToProjectResponses maps a slice of domain projects.
func ToProjectResponses(projects []domain.Project) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, ToProjectResponse(p))
	}
	return out
}
