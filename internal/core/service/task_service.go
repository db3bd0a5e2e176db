package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Vt221001/employee-management/internal/core/domain"
	"github.com/Vt221001/employee-management/internal/core/ports"
)

// NotificationSink receives the assignment notification produced by task
// creation. The queue dispatcher implements it; delivery from there to the
// realtime hub is asynchronous and best-effort.
type NotificationSink interface {
	Enqueue(room string, notification domain.Notification)
}

type taskService struct {
	tasks    ports.TaskRepository
	projects ports.ProjectRepository
	users    ports.UserRepository
	notify   NotificationSink
	log      zerolog.Logger
}

// NewTaskService returns a TaskService implementation. notify may be nil,
// in which case assignment notifications are skipped.
func NewTaskService(
	tasks ports.TaskRepository,
	projects ports.ProjectRepository,
	users ports.UserRepository,
	notify NotificationSink,
	log zerolog.Logger,
) ports.TaskService {
	return &taskService{
		tasks:    tasks,
		projects: projects,
		users:    users,
		notify:   notify,
		log:      log,
	}
}

// Create validates the assignment and persists the task, then hands the
// notification to the sink. A task is only assignable to a member of the
// project team.
func (s *taskService) Create(ctx context.Context, in ports.CreateTaskInput) (*domain.Task, error) {
	project, err := s.projects.FindByID(ctx, in.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	if _, err := s.users.FindByID(ctx, in.AssignedTo); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	if !project.HasMember(in.AssignedTo) {
		return nil, domain.ErrNotProjectMember
	}

	priority := in.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}

	task := &domain.Task{
		Title:       in.Title,
		Description: in.Description,
		AssignedTo:  in.AssignedTo,
		ProjectID:   in.ProjectID,
		DueDate:     in.DueDate,
		Priority:    priority,
		Status:      domain.TaskPending,
	}

	created, err := s.tasks.Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	if s.notify != nil {
		s.notify.Enqueue(created.AssignedTo, domain.Notification{
			Message: fmt.Sprintf("New task assigned: %s", created.Title),
			Task:    created,
		})
	}

	s.log.Info().
		Str("task_id", created.ID).
		Str("assigned_to", created.AssignedTo).
		Str("project_id", created.ProjectID).
		Msg("task created")

	return created, nil
}

func (s *taskService) ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.tasks.ListByProject(ctx, projectID)
}

func (s *taskService) ListByAssignee(ctx context.Context, userID string) ([]*domain.Task, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.tasks.ListByAssignee(ctx, userID)
}

func (s *taskService) UpdateStatus(ctx context.Context, taskID string, status domain.TaskStatus) (*domain.Task, error) {
	if !domain.ValidTaskStatus(status) {
		return nil, fmt.Errorf("unknown task status %q", status)
	}

	if _, err := s.tasks.FindByID(ctx, taskID); err != nil {
		return nil, err
	}
	if err := s.tasks.SetStatus(ctx, taskID, status); err != nil {
		return nil, fmt.Errorf("update task status: %w", err)
	}
	return s.tasks.FindByID(ctx, taskID)
}
