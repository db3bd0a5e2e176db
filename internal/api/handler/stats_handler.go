package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Vt221001/employee-management/internal/core/ports"
)

// StatsHandler serves the dashboard aggregates.
type StatsHandler struct {
	stats ports.StatsService
}

func NewStatsHandler(stats ports.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// Dashboard returns the user, project, and task totals.
//
// @Summary      Dashboard counts
// @Tags         stats
// @Produce      json
// @Success      200  {object}  apiResponse
// @Router       /api/dashboard-data [get]
func (h *StatsHandler) Dashboard(c echo.Context) error {
	counts, err := h.stats.DashboardCounts(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, counts, "Counts retrieved successfully")
}
