package service

import (
	"context"
	"testing"

	"github.com/Vt221001/employee-management/internal/core/domain"
)

func TestStatsService_DashboardCounts(t *testing.T) {
	users := newStubUserRepo()
	projects := newStubProjectRepo()
	tasks := newStubTaskRepo()

	seedUser(t, users, "a@x.com", "pass-a", domain.StatusActive)
	seedUser(t, users, "b@x.com", "pass-b", domain.StatusActive)
	if _, err := projects.Create(context.Background(), &domain.Project{Name: "Apollo"}); err != nil {
		t.Fatalf("seed project: %v", err)
	}
	for _, title := range []string{"One", "Two", "Three"} {
		if _, err := tasks.Create(context.Background(), &domain.Task{Title: title}); err != nil {
			t.Fatalf("seed task: %v", err)
		}
	}

	svc := NewStatsService(users, projects, tasks)
	counts, err := svc.DashboardCounts(context.Background())
	if err != nil {
		t.Fatalf("dashboard counts failed: %v", err)
	}

	want := domain.DashboardCounts{UserCount: 2, ProjectCount: 1, TaskCount: 3}
	if *counts != want {
		t.Fatalf("counts = %+v, want %+v", *counts, want)
	}
}

func TestStatsService_DashboardCounts_Empty(t *testing.T) {
	svc := NewStatsService(newStubUserRepo(), newStubProjectRepo(), newStubTaskRepo())

	counts, err := svc.DashboardCounts(context.Background())
	if err != nil {
		t.Fatalf("dashboard counts failed: %v", err)
	}
	if (*counts != domain.DashboardCounts{}) {
		t.Fatalf("expected zero counts, got %+v", *counts)
	}
}
