package ports

import (
	"context"

	"github.com/Vt221001/employee-management/internal/core/domain"
)

// TaskRepository is the persistence port for tasks.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error)
	ListByAssignee(ctx context.Context, userID string) ([]*domain.Task, error)
	Count(ctx context.Context) (int64, error)
	SetStatus(ctx context.Context, taskID string, status domain.TaskStatus) error
}
