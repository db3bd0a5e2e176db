package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Vt221001/employee-management/internal/api/middleware"
	"github.com/Vt221001/employee-management/internal/core/ports"
)

// ProjectHandler exposes project operations over HTTP.
type ProjectHandler struct {
	projects ports.ProjectService
}

func NewProjectHandler(projects ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

type createProjectRequest struct {
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description" validate:"required"`
	StartDate   time.Time `json:"startDate" validate:"required"`
	EndDate     time.Time `json:"endDate" validate:"required"`
}

type assignTeamRequest struct {
	ProjectID string   `json:"projectId" validate:"required"`
	TeamIDs   []string `json:"team" validate:"required,min=1"`
}

// Create registers a project managed by the authenticated user.
//
// @Summary      Create a project
// @Tags         project
// @Accept       json
// @Produce      json
// @Param        body  body      createProjectRequest  true  "Project details"
// @Success      201   {object}  apiResponse
// @Failure      400   {object}  map[string]any
// @Router       /api/create-project [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	var req createProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	managerID, _ := c.Get(middleware.CtxUserID).(string)
	if managerID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	project, err := h.projects.Create(c.Request().Context(), ports.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		ManagerID:   managerID,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, project, "Project created successfully")
}

// Get returns a single project.
//
// @Summary      Get a project
// @Tags         project
// @Produce      json
// @Param        projectId  path      string  true  "Project id"
// @Success      200        {object}  apiResponse
// @Failure      404        {object}  map[string]any
// @Router       /api/get-project/{projectId} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	project, err := h.projects.Get(c.Request().Context(), c.Param("projectId"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, project, "Project fetched")
}

// List returns all projects.
//
// @Summary      List projects
// @Tags         project
// @Produce      json
// @Success      200  {object}  apiResponse
// @Router       /api/get-projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	projects, err := h.projects.List(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, projects, "Projects fetched")
}

// AssignTeam replaces the project's team membership.
//
// @Summary      Assign a team to a project
// @Tags         project
// @Accept       json
// @Produce      json
// @Param        body  body      assignTeamRequest  true  "Project id and team member ids"
// @Success      200   {object}  apiResponse
// @Failure      404   {object}  map[string]any
// @Router       /api/assign-team [post]
func (h *ProjectHandler) AssignTeam(c echo.Context) error {
	var req assignTeamRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	project, err := h.projects.AssignTeam(c.Request().Context(), req.ProjectID, req.TeamIDs)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, project, "Team assigned successfully")
}
