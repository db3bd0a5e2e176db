package ports

import (
	"context"

	"github.com/Vt221001/employee-management/internal/core/domain"
)

// StatsService aggregates the counts shown on the dashboard.
type StatsService interface {
	DashboardCounts(ctx context.Context) (*domain.DashboardCounts, error)
}
