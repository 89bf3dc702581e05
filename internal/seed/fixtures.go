// Package seed holds the fixture entities present on every load. Seed
// entities keep bare numeric ids; generated ids carry a prefix, so the two
// ranges can never collide.
package seed

import (
	"time"

	"github.com/projectflow/projectflow-service/internal/auth"
	"github.com/projectflow/projectflow-service/internal/config"
	"github.com/projectflow/projectflow-service/internal/domain"
)

// Demo account emails. Passwords come from config so deployments can rotate
// them without touching fixtures.
const (
	DemoUserEmail  = "john.doe@projectflow.com"
	DemoAdminEmail = "admin@projectflow.com"
)

// Users returns the fixture user set. The two demo accounts get bcrypt
// hashes of the configured demo passwords; the remaining fixture has no
// credentials and cannot log in.
func Users(cfg config.AuthConfig) ([]domain.User, error) {
	userHash, err := auth.HashPassword(cfg.DemoUserPassword, cfg.BcryptCost)
	if err != nil {
		return nil, err
	}
	adminHash, err := auth.HashPassword(cfg.DemoAdminPassword, cfg.BcryptCost)
	if err != nil {
		return nil, err
	}

	return []domain.User{
		{
			ID:           "1",
			Email:        DemoUserEmail,
			Name:         "John Doe",
			Role:         domain.RoleUser,
			Avatar:       "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=32&h=32&fit=crop&crop=face",
			PasswordHash: userHash,
			CreatedAt:    date("2024-01-15T08:00:00Z"),
			UpdatedAt:    date("2024-01-15T08:00:00Z"),
		},
		{
			ID:           "2",
			Email:        DemoAdminEmail,
			Name:         "Sarah Admin",
			Role:         domain.RoleAdmin,
			Avatar:       "https://images.unsplash.com/photo-1494790108755-2616b612b786?w=32&h=32&fit=crop&crop=face",
			PasswordHash: adminHash,
			CreatedAt:    date("2024-01-10T08:00:00Z"),
			UpdatedAt:    date("2024-01-10T08:00:00Z"),
		},
		{
			ID:        "3",
			Email:     "jane.smith@projectflow.com",
			Name:      "Jane Smith",
			Role:      domain.RoleUser,
			Avatar:    "https://images.unsplash.com/photo-1438761681033-6461ffad8d80?w=32&h=32&fit=crop&crop=face",
			CreatedAt: date("2024-01-12T08:00:00Z"),
			UpdatedAt: date("2024-01-12T08:00:00Z"),
		},
	}, nil
}

// Projects returns the fixture project set.
func Projects() []domain.Project {
	return []domain.Project{
		{
			ID:            "1",
			Title:         "E-commerce Platform Redesign",
			Description:   "Complete overhaul of the existing e-commerce platform with modern UI/UX design, improved performance, and mobile-first approach.",
			Status:        domain.ProjectStatusInProgress,
			Priority:      domain.ProjectPriorityHigh,
			StartDate:     date("2024-02-01T00:00:00Z"),
			EndDate:       datePtr("2024-04-30T00:00:00Z"),
			OwnerID:       "1",
			TeamMemberIDs: []string{"1", "3"},
			Progress:      65,
			Budget:        budget(85000),
			Tags:          []string{"frontend", "react", "design", "e-commerce"},
			CreatedAt:     date("2024-01-28T08:00:00Z"),
			UpdatedAt:     date("2024-02-15T14:30:00Z"),
		},
		{
			ID:            "2",
			Title:         "Mobile App Development",
			Description:   "Native mobile application for iOS and Android platforms with real-time synchronization and offline capabilities.",
			Status:        domain.ProjectStatusPlanning,
			Priority:      domain.ProjectPriorityMedium,
			StartDate:     date("2024-03-15T00:00:00Z"),
			EndDate:       datePtr("2024-08-15T00:00:00Z"),
			OwnerID:       "1",
			TeamMemberIDs: []string{"1"},
			Progress:      10,
			Budget:        budget(120000),
			Tags:          []string{"mobile", "react-native", "ios", "android"},
			CreatedAt:     date("2024-02-10T08:00:00Z"),
			UpdatedAt:     date("2024-02-10T08:00:00Z"),
		},
		{
			ID:            "3",
			Title:         "API Integration & Documentation",
			Description:   "Comprehensive API documentation and integration with third-party services including payment gateways and analytics.",
			Status:        domain.ProjectStatusCompleted,
			Priority:      domain.ProjectPriorityMedium,
			StartDate:     date("2024-01-01T00:00:00Z"),
			EndDate:       datePtr("2024-02-01T00:00:00Z"),
			OwnerID:       "3",
			TeamMemberIDs: []string{"3"},
			Progress:      100,
			Budget:        budget(45000),
			Tags:          []string{"backend", "api", "documentation", "integration"},
			CreatedAt:     date("2023-12-20T08:00:00Z"),
			UpdatedAt:     date("2024-02-01T16:00:00Z"),
		},
		{
			ID:            "4",
			Title:         "Data Analytics Dashboard",
			Description:   "Real-time analytics dashboard with interactive charts, KPI tracking, and automated reporting capabilities.",
			Status:        domain.ProjectStatusOnHold,
			Priority:      domain.ProjectPriorityLow,
			StartDate:     date("2024-04-01T00:00:00Z"),
			OwnerID:       "3",
			TeamMemberIDs: []string{"3"},
			Progress:      25,
			Budget:        budget(60000),
			Tags:          []string{"analytics", "dashboard", "charts", "reporting"},
			CreatedAt:     date("2024-02-05T08:00:00Z"),
			UpdatedAt:     date("2024-02-20T10:15:00Z"),
		},
		{
			ID:            "5",
			Title:         "Security Audit & Compliance",
			Description:   "Comprehensive security audit, vulnerability assessment, and implementation of compliance standards.",
			Status:        domain.ProjectStatusInProgress,
			Priority:      domain.ProjectPriorityUrgent,
			StartDate:     date("2024-02-20T00:00:00Z"),
			EndDate:       datePtr("2024-03-20T00:00:00Z"),
			OwnerID:       "1",
			TeamMemberIDs: []string{"1", "3"},
			Progress:      40,
			Budget:        budget(35000),
			Tags:          []string{"security", "audit", "compliance", "infrastructure"},
			CreatedAt:     date("2024-02-15T08:00:00Z"),
			UpdatedAt:     date("2024-02-25T11:45:00Z"),
		},
	}
}

func date(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic("seed: bad fixture date " + value)
	}
	return t
}

func datePtr(value string) *time.Time {
	t := date(value)
	return &t
}

func budget(v float64) *float64 {
	return &v
}
