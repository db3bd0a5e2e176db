package domain

import (
	"errors"
	"time"
)

// ProjectStatus represents the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectNotStarted ProjectStatus = "not_started"
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectCompleted  ProjectStatus = "completed"
	ProjectOnHold     ProjectStatus = "on_hold"
)

var ErrProjectNotFound = errors.New("project not found")
var ErrNotProjectMember = errors.New("user is not part of the project")

// Project groups a team of users under a manager.
type Project struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Status      ProjectStatus `json:"status"`
	ManagerID   string        `json:"manager_id"`
	TeamIDs     []string      `json:"team"`
	StartDate   time.Time     `json:"start_date"`
	EndDate     time.Time     `json:"end_date"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// HasMember reports whether userID is on the project team.
func (p *Project) HasMember(userID string) bool {
	for _, id := range p.TeamIDs {
		if id == userID {
			return true
		}
	}
	return false
}
