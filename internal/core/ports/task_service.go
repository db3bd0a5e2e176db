package ports

import (
	"context"
	"time"

	"github.com/Vt221001/employee-management/internal/core/domain"
)

// CreateTaskInput carries the fields accepted at task creation.
type CreateTaskInput struct {
	Title       string
	Description string
	AssignedTo  string
	ProjectID   string
	DueDate     time.Time
	Priority    domain.TaskPriority
}

// TaskService owns task lifecycle operations, including the realtime
// notification side effect on assignment.
type TaskService interface {
	Create(ctx context.Context, in CreateTaskInput) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error)
	ListByAssignee(ctx context.Context, userID string) ([]*domain.Task, error)
	UpdateStatus(ctx context.Context, taskID string, status domain.TaskStatus) (*domain.Task, error)
}
