package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Vt221001/employee-management/internal/core/domain"
	"github.com/Vt221001/employee-management/internal/core/ports"
)

// TaskHandler exposes task operations over HTTP.
type TaskHandler struct {
	tasks ports.TaskService
}

func NewTaskHandler(tasks ports.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

type createTaskRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	AssignedTo  string    `json:"assignedTo" validate:"required"`
	ProjectID   string    `json:"projectId" validate:"required"`
	DueDate     time.Time `json:"dueDate"`
	Priority    string    `json:"priority" validate:"omitempty,oneof=low medium high"`
}

type updateTaskStatusRequest struct {
	TaskID string `json:"taskId" validate:"required"`
	Status string `json:"status" validate:"required,oneof=pending in_progress completed"`
}

// Create persists a task and pushes a newTask notification to the assignee's
// room.
//
// @Summary      Create a task
// @Tags         task
// @Accept       json
// @Produce      json
// @Param        body  body      createTaskRequest  true  "Task details"
// @Success      201   {object}  apiResponse
// @Failure      400   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /api/create-task [post]
func (h *TaskHandler) Create(c echo.Context) error {
	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	task, err := h.tasks.Create(c.Request().Context(), ports.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		ProjectID:   req.ProjectID,
		DueDate:     req.DueDate,
		Priority:    domain.TaskPriority(req.Priority),
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, task, "Task created successfully")
}

// ListByProject returns all tasks of a project.
//
// @Summary      List tasks for a project
// @Tags         task
// @Produce      json
// @Param        projectId  path      string  true  "Project id"
// @Success      200        {object}  apiResponse
// @Failure      404        {object}  map[string]any
// @Router       /api/get-tasks/{projectId} [get]
func (h *TaskHandler) ListByProject(c echo.Context) error {
	tasks, err := h.tasks.ListByProject(c.Request().Context(), c.Param("projectId"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, tasks, "Tasks retrieved successfully for the project")
}

// ListByAssignee returns the tasks assigned to a user, due-date ordered.
//
// @Summary      List tasks for a user
// @Tags         task
// @Produce      json
// @Param        userId  path      string  true  "User id"
// @Success      200     {object}  apiResponse
// @Failure      404     {object}  map[string]any
// @Router       /api/get-task-by-userid/{userId} [get]
func (h *TaskHandler) ListByAssignee(c echo.Context) error {
	tasks, err := h.tasks.ListByAssignee(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, map[string]any{"tasks": tasks}, "Tasks retrieved successfully")
}

// UpdateStatus moves a task to a new lifecycle status.
//
// @Summary      Update task status
// @Tags         task
// @Accept       json
// @Produce      json
// @Param        body  body      updateTaskStatusRequest  true  "Task id and new status"
// @Success      200   {object}  apiResponse
// @Failure      404   {object}  map[string]any
// @Router       /api/update-task-status [put]
func (h *TaskHandler) UpdateStatus(c echo.Context) error {
	var req updateTaskStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	task, err := h.tasks.UpdateStatus(c.Request().Context(), req.TaskID, domain.TaskStatus(req.Status))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, task, "Task updated successfully")
}
