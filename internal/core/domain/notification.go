package domain

// Notification is an ephemeral assignment message. It is never persisted:
// it exists only in flight between task creation and delivery to whichever
// connections are joined to the assignee's room, and is lost if none are.
type Notification struct {
	Message string `json:"message"`
	Task    *Task  `json:"task"`
}
