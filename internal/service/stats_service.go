package service

import (
	"github.com/projectflow/projectflow-service/internal/domain"
	"github.com/projectflow/projectflow-service/internal/repository"
)

// StatsService aggregates dashboard counters over the entity stores.
type StatsService struct {
	projects repository.ProjectRepository
	users    repository.UserRepository
}

// NewStatsService constructs the service.
func NewStatsService(projects repository.ProjectRepository, users repository.UserRepository) *StatsService {
	return &StatsService{projects: projects, users: users}
}

// Dashboard returns role-scoped project counts. Admins additionally see the
// total user count.
func (s *StatsService) Dashboard(principal *domain.User) domain.DashboardStats {
	all := s.projects.List()

	scoped := all
	if principal.Role != domain.RoleAdmin {
		scoped = make([]domain.Project, 0, len(all))
		for _, p := range all {
			if p.OwnerID == principal.ID {
				scoped = append(scoped, p)
			}
		}
	}

	stats := domain.DashboardStats{TotalProjects: len(scoped)}
	for _, p := range scoped {
		switch p.Status {
		case domain.ProjectStatusInProgress:
			stats.ActiveProjects++
		case domain.ProjectStatusCompleted:
			stats.CompletedProjects++
		}
	}

	if principal.Role == domain.RoleAdmin {
		total := len(s.users.List())
		stats.TotalUsers = &total
	}
	return stats
}
