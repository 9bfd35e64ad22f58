package task

import (
	"context"
	"strings"
	"time"

	domain "github.com/example/taskdeck/domain/task"
	"github.com/example/taskdeck/domain/user"
	"github.com/google/uuid"
)

// TaskService is the sole authority for validating and applying task
// mutations on behalf of an authenticated caller. It holds no
// cross-request state; each operation is one store transaction.
type TaskService struct {
	repo *TaskRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(repo *TaskRepository) *TaskService {
	return &TaskService{
		repo: repo,
	}
}

// CreateInput carries the fields for a new task. An empty Status means
// the default (pending).
type CreateInput struct {
	Title       string
	Description string
	Status      string
}

// UpdateInput carries a partial field set for an update. Nil fields are
// left unchanged.
type UpdateInput struct {
	Title       *string
	Description *string
	Status      *string
}

// List returns all tasks owned by the caller, newest first.
func (s *TaskService) List(_ context.Context, owner user.ID) ([]*domain.Task, error) {
	return s.repo.FindByOwner(owner.String())
}

// Create validates and persists a new task bound to the caller.
func (s *TaskService) Create(_ context.Context, owner user.ID, in CreateInput) (*domain.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, requiredField("title")
	}
	description := strings.TrimSpace(in.Description)
	if description == "" {
		return nil, requiredField("description")
	}

	status := domain.StatusPending
	if in.Status != "" {
		status = domain.Status(in.Status)
		if !status.Valid() {
			return nil, invalidStatus(in.Status)
		}
	}

	now := time.Now()
	t := &domain.Task{
		ID:          uuid.New().String(),
		OwnerID:     owner.String(),
		Title:       title,
		Description: description,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Update applies a partial field set to an owned task. The ownership
// gate runs before any field is touched; a mismatch returns ErrNotOwner
// and changes nothing.
func (s *TaskService) Update(_ context.Context, owner user.ID, taskID string, in UpdateInput) (*domain.Task, error) {
	t, err := s.repo.FindByID(taskID)
	if err != nil {
		return nil, err
	}
	if !t.OwnedBy(owner) {
		return nil, ErrNotOwner
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, requiredField("title")
		}
		t.Title = title
	}
	if in.Description != nil {
		description := strings.TrimSpace(*in.Description)
		if description == "" {
			return nil, requiredField("description")
		}
		t.Description = description
	}
	if in.Status != nil {
		status := domain.Status(*in.Status)
		if !status.Valid() {
			return nil, invalidStatus(*in.Status)
		}
		t.Status = status
	}

	t.UpdatedAt = time.Now()
	if err := s.repo.Save(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Delete permanently removes an owned task. Deleting a missing task is
// an error, not a no-op, so a retried delete surfaces ErrNotFound.
func (s *TaskService) Delete(_ context.Context, owner user.ID, taskID string) error {
	t, err := s.repo.FindByID(taskID)
	if err != nil {
		return err
	}
	if !t.OwnedBy(owner) {
		return ErrNotOwner
	}
	return s.repo.Delete(t.ID)
}
