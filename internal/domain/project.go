package domain

import "time"

// ProjectStatus enumerates lifecycle states for projects.
type ProjectStatus string

const (
	ProjectStatusPlanning   ProjectStatus = "planning"
	ProjectStatusInProgress ProjectStatus = "in-progress"
	ProjectStatusCompleted  ProjectStatus = "completed"
	ProjectStatusOnHold     ProjectStatus = "on-hold"
)

// Valid reports whether the status is a known value.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusPlanning, ProjectStatusInProgress, ProjectStatusCompleted, ProjectStatusOnHold:
		return true
	}
	return false
}

// ProjectPriority enumerates urgency levels.
type ProjectPriority string

const (
	ProjectPriorityLow    ProjectPriority = "low"
	ProjectPriorityMedium ProjectPriority = "medium"
	ProjectPriorityHigh   ProjectPriority = "high"
	ProjectPriorityUrgent ProjectPriority = "urgent"
)

// Valid reports whether the priority is a known value.
func (p ProjectPriority) Valid() bool {
	switch p {
	case ProjectPriorityLow, ProjectPriorityMedium, ProjectPriorityHigh, ProjectPriorityUrgent:
		return true
	}
	return false
}

// Project is the aggregate for tracked work.
type Project struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Status        ProjectStatus   `json:"status"`
	Priority      ProjectPriority `json:"priority"`
	StartDate     time.Time       `json:"start_date"`
	EndDate       *time.Time      `json:"end_date,omitempty"`
	OwnerID       string          `json:"owner_id"`
	TeamMemberIDs []string        `json:"team_member_ids"`
	Progress      int             `json:"progress"`
	Budget        *float64        `json:"budget,omitempty"`
	Tags          []string        `json:"tags"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProjectPatch enumerates the fields a partial project update may overwrite.
// Nil fields are left untouched.
type ProjectPatch struct {
	Title         *string
	Description   *string
	Status        *ProjectStatus
	Priority      *ProjectPriority
	StartDate     *time.Time
	EndDate       *time.Time
	TeamMemberIDs *[]string
	Progress      *int
	Budget        *float64
	Tags          *[]string
}
