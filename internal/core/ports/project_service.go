package ports

import (
	"context"
	"time"

	"github.com/Vt221001/employee-management/internal/core/domain"
)

// CreateProjectInput carries the fields accepted at project creation.
type CreateProjectInput struct {
	Name        string
	Description string
	ManagerID   string
	StartDate   time.Time
	EndDate     time.Time
}

// ProjectService owns project lifecycle and team assignment.
type ProjectService interface {
	Create(ctx context.Context, in CreateProjectInput) (*domain.Project, error)
	Get(ctx context.Context, projectID string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	AssignTeam(ctx context.Context, projectID string, teamIDs []string) (*domain.Project, error)
}
