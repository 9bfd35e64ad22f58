package task

import (
	"time"

	"github.com/example/taskdeck/domain/user"
)

// Status is the lifecycle state of a task. Only the two enumerated
// values are ever persisted or returned.
type Status string

const (
	// StatusPending marks a task that still needs work.
	StatusPending Status = "pending"
	// StatusCompleted marks a finished task.
	StatusCompleted Status = "completed"
)

// Valid reports whether s is one of the enumerated statuses.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusCompleted
}

// Toggled returns the other enumerated status.
func (s Status) Toggled() Status {
	if s == StatusCompleted {
		return StatusPending
	}
	return StatusCompleted
}

// Task represents one unit of work owned by a single user.
// OwnerID is set exactly once at creation and never reassigned.
type Task struct {
	ID          string    `gorm:"primaryKey;type:text" json:"id"`
	OwnerID     string    `gorm:"index;not null;type:text" json:"ownerId"`
	Title       string    `gorm:"not null;type:text" json:"title"`
	Description string    `gorm:"not null;type:text" json:"description"`
	Status      Status    `gorm:"not null;default:pending;type:text" json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName returns the table name for the Task entity.
func (Task) TableName() string {
	return "tasks"
}

// OwnedBy is the ownership gate: it reports whether the task belongs to
// the given user. Every update/delete authorization check goes through
// here.
func (t *Task) OwnedBy(owner user.ID) bool {
	return user.ID(t.OwnerID).Is(owner)
}
