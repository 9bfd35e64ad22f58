package task

import (
	"time"

	domain "github.com/example/taskdeck/domain/task"
)

// TaskPayload is the wire shape of a task, shared by list, create and
// update responses.
type TaskPayload struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ListRequest represents a task list request.
type ListRequest struct {
	OwnerID string `json:"owner_id"`
}

// ListResponse represents a task list response.
type ListResponse struct {
	Tasks []TaskPayload `json:"tasks"`
}

// CreateRequest represents a task creation request. Status is optional
// and defaults to pending.
type CreateRequest struct {
	OwnerID     string `json:"owner_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status,omitempty"`
}

// CreateResponse represents a task creation response.
type CreateResponse struct {
	Task TaskPayload `json:"task"`
}

// UpdateRequest represents a partial task update. Nil fields are left
// unchanged.
type UpdateRequest struct {
	OwnerID     string  `json:"owner_id"`
	TaskID      string  `json:"task_id"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// UpdateResponse represents a task update response.
type UpdateResponse struct {
	Task TaskPayload `json:"task"`
}

// DeleteRequest represents a task deletion request.
type DeleteRequest struct {
	OwnerID string `json:"owner_id"`
	TaskID  string `json:"task_id"`
}

// DeleteResponse represents a task deletion response.
type DeleteResponse struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

// toPayload converts a task entity to its wire shape.
func toPayload(t *domain.Task) TaskPayload {
	return TaskPayload{
		ID:          t.ID,
		OwnerID:     t.OwnerID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
