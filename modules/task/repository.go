package task

import (
	"errors"

	domain "github.com/example/taskdeck/domain/task"
	"gorm.io/gorm"
)

// TaskRepository handles task persistence using GORM.
// The store holds the authoritative copy of every task; all access goes
// through the service in this package.
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{
		db: db,
	}
}

// Create persists a new task.
func (r *TaskRepository) Create(t *domain.Task) error {
	if err := r.db.Create(t).Error; err != nil {
		return storeErr(err)
	}
	return nil
}

// FindByID finds a task by ID regardless of owner. Ownership is the
// service's concern, not the repository's.
func (r *TaskRepository) FindByID(id string) (*domain.Task, error) {
	var t domain.Task
	if err := r.db.First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeErr(err)
	}
	return &t, nil
}

// FindByOwner returns all tasks for an owner, newest first. The id
// breaks creation-time ties so the order is stable across refetches.
// An owner with no tasks gets an empty slice, not an error.
func (r *TaskRepository) FindByOwner(ownerID string) ([]*domain.Task, error) {
	tasks := make([]*domain.Task, 0)
	if err := r.db.Where("owner_id = ?", ownerID).Order("created_at DESC, id").Find(&tasks).Error; err != nil {
		return nil, storeErr(err)
	}
	return tasks, nil
}

// Save writes back a full task record.
func (r *TaskRepository) Save(t *domain.Task) error {
	result := r.db.Save(t)
	if err := result.Error; err != nil {
		return storeErr(err)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete permanently removes a task by ID. There is no soft-delete
// state; a deleted task is gone.
func (r *TaskRepository) Delete(id string) error {
	result := r.db.Delete(&domain.Task{}, "id = ?", id)
	if err := result.Error; err != nil {
		return storeErr(err)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
