package task

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// TaskPort defines the interface other modules use to access task
// operations.
type TaskPort interface {
	List(ctx context.Context, ownerID string) ([]TaskPayload, error)
	Create(ctx context.Context, req CreateRequest) (TaskPayload, error)
	Update(ctx context.Context, req UpdateRequest) (TaskPayload, error)
	Delete(ctx context.Context, ownerID, taskID string) error
}

// TaskAdapter implements TaskPort using the service container.
type TaskAdapter struct {
	container mono.ServiceContainer
}

// NewTaskAdapter creates a new TaskAdapter.
func NewTaskAdapter(container mono.ServiceContainer) *TaskAdapter {
	return &TaskAdapter{
		container: container,
	}
}

// List returns the owner's tasks, newest first.
func (a *TaskAdapter) List(ctx context.Context, ownerID string) ([]TaskPayload, error) {
	req := ListRequest{OwnerID: ownerID}
	var resp ListResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"list",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, mapServiceError(err)
	}
	return resp.Tasks, nil
}

// Create creates a task for the owner in the request.
func (a *TaskAdapter) Create(ctx context.Context, req CreateRequest) (TaskPayload, error) {
	var resp CreateResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"create",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return TaskPayload{}, mapServiceError(err)
	}
	return resp.Task, nil
}

// Update applies a partial update to a task.
func (a *TaskAdapter) Update(ctx context.Context, req UpdateRequest) (TaskPayload, error) {
	var resp UpdateResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"update",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return TaskPayload{}, mapServiceError(err)
	}
	return resp.Task, nil
}

// Delete removes a task.
func (a *TaskAdapter) Delete(ctx context.Context, ownerID, taskID string) error {
	req := DeleteRequest{OwnerID: ownerID, TaskID: taskID}
	var resp DeleteResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"delete",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return mapServiceError(err)
	}
	return nil
}

// mapServiceError re-derives a typed error from the message that
// crossed the service container boundary, so callers can use errors.Is
// and errors.As. Validation messages echo the rejected status value, so
// they must be matched before the sentinel texts: a status of
// "task not found" must stay a validation failure, not turn into
// ErrNotFound. Anything unrecognized is treated as a store failure.
func mapServiceError(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "must be"):
		return &ValidationError{Field: "status", Reason: msg[strings.Index(msg, "must be"):]}
	case strings.Contains(msg, " is required"):
		return &ValidationError{Field: validationField(msg), Reason: "is required"}
	case strings.Contains(msg, ErrNotFound.Error()):
		return ErrNotFound
	case strings.Contains(msg, ErrNotOwner.Error()):
		return ErrNotOwner
	default:
		return storeErr(err)
	}
}

// validationField extracts the field name from a "<field> is required"
// message, tolerating wrapping prefixes added in transit.
func validationField(msg string) string {
	idx := strings.Index(msg, " is required")
	if idx < 0 {
		return "field"
	}
	head := msg[:idx]
	if sp := strings.LastIndex(head, " "); sp >= 0 {
		head = head[sp+1:]
	}
	return strings.TrimSuffix(head, ":")
}
