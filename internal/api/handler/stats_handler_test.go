package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/Vt221001/employee-management/internal/core/domain"
)

type stubStatsService struct {
	counts domain.DashboardCounts
	err    error
}

func (s *stubStatsService) DashboardCounts(context.Context) (*domain.DashboardCounts, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := s.counts
	return &out, nil
}

func TestStatsHandler_Dashboard(t *testing.T) {
	h := NewStatsHandler(&stubStatsService{
		counts: domain.DashboardCounts{UserCount: 3, ProjectCount: 2, TaskCount: 7},
	})

	c, rec := newTestContext(t, http.MethodGet, "/api/dashboard-data", "")
	if err := h.Dashboard(c); err != nil {
		t.Fatalf("dashboard failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	env := decodeEnvelope(t, rec)
	if env.Message != "Counts retrieved successfully" {
		t.Fatalf("message = %q", env.Message)
	}
	data, ok := env.Data.(map[string]any)
	if !ok {
		t.Fatalf("unexpected data shape %T", env.Data)
	}
	if data["userCount"] != float64(3) || data["projectCount"] != float64(2) || data["taskCount"] != float64(7) {
		t.Fatalf("counts missing from payload: %v", data)
	}
}
