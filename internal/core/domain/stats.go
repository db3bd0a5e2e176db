package domain

// DashboardCounts is the aggregate snapshot shown on the admin dashboard.
type DashboardCounts struct {
	UserCount    int64 `json:"userCount"`
	ProjectCount int64 `json:"projectCount"`
	TaskCount    int64 `json:"taskCount"`
}
