package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Vt221001/employee-management/internal/core/domain"
	"github.com/Vt221001/employee-management/internal/core/ports"
)

type projectService struct {
	projects ports.ProjectRepository
	users    ports.UserRepository
	log      zerolog.Logger
}

// NewProjectService returns a ProjectService implementation.
func NewProjectService(projects ports.ProjectRepository, users ports.UserRepository, log zerolog.Logger) ports.ProjectService {
	return &projectService{projects: projects, users: users, log: log}
}

func (s *projectService) Create(ctx context.Context, in ports.CreateProjectInput) (*domain.Project, error) {
	manager, err := s.users.FindByID(ctx, in.ManagerID)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	if !domain.RoleAllowed(manager.Role, domain.RoleAdmin, domain.RoleProjectManager) {
		return nil, domain.ErrForbidden
	}

	project := &domain.Project{
		Name:        in.Name,
		Description: in.Description,
		Status:      domain.ProjectNotStarted,
		ManagerID:   in.ManagerID,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
	}

	created, err := s.projects.Create(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	s.log.Info().Str("project_id", created.ID).Str("manager_id", created.ManagerID).Msg("project created")
	return created, nil
}

func (s *projectService) Get(ctx context.Context, projectID string) (*domain.Project, error) {
	return s.projects.FindByID(ctx, projectID)
}

func (s *projectService) List(ctx context.Context) ([]*domain.Project, error) {
	return s.projects.List(ctx)
}

// AssignTeam replaces the project team. Every member must be an existing user.
func (s *projectService) AssignTeam(ctx context.Context, projectID string, teamIDs []string) (*domain.Project, error) {
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		return nil, err
	}

	for _, id := range teamIDs {
		if _, err := s.users.FindByID(ctx, id); err != nil {
			return nil, fmt.Errorf("assign team: member %s: %w", id, err)
		}
	}

	if err := s.projects.SetTeam(ctx, projectID, teamIDs); err != nil {
		return nil, fmt.Errorf("assign team: %w", err)
	}
	return s.projects.FindByID(ctx, projectID)
}
