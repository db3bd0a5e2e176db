package ports

import (
	"context"

	"github.com/Vt221001/employee-management/internal/core/domain"
)

// ProjectRepository is the persistence port for projects.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) (*domain.Project, error)
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Count(ctx context.Context) (int64, error)
	SetTeam(ctx context.Context, projectID string, teamIDs []string) error
}
