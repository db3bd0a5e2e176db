package service

import (
	"context"
	"fmt"

	"github.com/Vt221001/employee-management/internal/core/domain"
	"github.com/Vt221001/employee-management/internal/core/ports"
)

// StatsService assembles the dashboard counters from the three repositories.
type StatsService struct {
	users    ports.UserRepository
	projects ports.ProjectRepository
	tasks    ports.TaskRepository
}

func NewStatsService(
	users ports.UserRepository,
	projects ports.ProjectRepository,
	tasks ports.TaskRepository,
) *StatsService {
	return &StatsService{users: users, projects: projects, tasks: tasks}
}

// DashboardCounts returns the current user, project, and task totals. The
// three counts are read independently, so the snapshot is not transactional.
func (s *StatsService) DashboardCounts(ctx context.Context) (*domain.DashboardCounts, error) {
	userCount, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	projectCount, err := s.projects.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count projects: %w", err)
	}
	taskCount, err := s.tasks.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count tasks: %w", err)
	}

	return &domain.DashboardCounts{
		UserCount:    userCount,
		ProjectCount: projectCount,
		TaskCount:    taskCount,
	}, nil
}
