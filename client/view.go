package client

import (
	"context"
	"errors"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// StatusFilter selects which statuses the view shows.
type StatusFilter string

const (
	// FilterAll shows every task.
	FilterAll StatusFilter = "all"
	// FilterPending shows only pending tasks.
	FilterPending StatusFilter = "pending"
	// FilterCompleted shows only completed tasks.
	FilterCompleted StatusFilter = "completed"
)

// ViewState is the screen-session state of a TaskView.
type ViewState int

const (
	// StateLoading means the initial fetch is outstanding.
	StateLoading ViewState = iota
	// StateReady means the cache is populated and filters apply.
	StateReady
	// StateMutating means one mutation is in flight. Filters stay
	// responsive to the stale cache during this period.
	StateMutating
)

var (
	// ErrMutationInFlight is returned when a mutation is attempted
	// while another is outstanding. Mutations are serialized; this is
	// the in-code equivalent of disabling the triggering control.
	ErrMutationInFlight = errors.New("another mutation is in flight")
	// ErrNotReady is returned when a mutation is attempted before the
	// initial load has completed.
	ErrNotReady = errors.New("task view is still loading")
	// ErrTaskNotCached is returned by Toggle when the task is not in
	// the cache.
	ErrTaskNotCached = errors.New("task not in cache")
)

// TaskView maintains a local, non-authoritative mirror of one user's
// tasks. Every mutation is confirmed by the server before the cache
// changes; failures leave the cache untouched.
type TaskView struct {
	api     TaskAPI
	session *Session

	mu      sync.Mutex
	state   ViewState
	cache   []Task
	user    User
	search  string
	status  StatusFilter
	lastErr error
}

// NewTaskView creates a TaskView in the Loading state. The session is
// the explicit identity context; the view never mutates it.
func NewTaskView(api TaskAPI, session *Session) *TaskView {
	return &TaskView{
		api:     api,
		session: session,
		state:   StateLoading,
		status:  FilterAll,
	}
}

// Load performs the initial fetch: profile and task list, concurrently.
// On success the view becomes Ready with a fresh cache; on failure it
// stays Loading with the error recorded.
func (v *TaskView) Load(ctx context.Context) error {
	v.mu.Lock()
	v.state = StateLoading
	v.mu.Unlock()

	var (
		user  User
		tasks []Task
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		user, err = v.api.Profile(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		tasks, err = v.api.ListTasks(gctx)
		return err
	})
	err := g.Wait()

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.lastErr = err
		return err
	}
	v.user = user
	v.cache = tasks
	v.state = StateReady
	v.lastErr = nil
	return nil
}

// Refresh re-fetches the task list, replacing the cache wholesale.
func (v *TaskView) Refresh(ctx context.Context) error {
	tasks, err := v.api.ListTasks(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.lastErr = err
		return err
	}
	v.cache = tasks
	v.state = StateReady
	v.lastErr = nil
	return nil
}

// State returns the current view state.
func (v *TaskView) State() ViewState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Err returns the error from the last failed operation, nil after a
// success.
func (v *TaskView) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastErr
}

// User returns the profile fetched during Load.
func (v *TaskView) User() User {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.user
}

// SetSearch updates the search text. Display follows on the next
// Visible call; the cache itself is untouched.
func (v *TaskView) SetSearch(q string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.search = q
}

// SetStatusFilter updates the status selector.
func (v *TaskView) SetStatusFilter(f StatusFilter) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.status = f
}

// Visible returns the filtered view of the cache, order preserved.
func (v *TaskView) Visible() []Task {
	v.mu.Lock()
	defer v.mu.Unlock()
	return Filter(v.cache, v.search, v.status)
}

// Filter derives the displayed sequence from a cache, a search text and
// a status selector. It is pure: the input slice is never modified, and
// the same inputs always yield the same ordered output. The search is a
// case-insensitive substring match on title or description.
func Filter(tasks []Task, search string, status StatusFilter) []Task {
	q := strings.ToLower(strings.TrimSpace(search))
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if q != "" &&
			!strings.Contains(strings.ToLower(t.Title), q) &&
			!strings.Contains(strings.ToLower(t.Description), q) {
			continue
		}
		if status != "" && status != FilterAll && t.Status != string(status) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Add creates a task and prepends the confirmed record to the cache,
// preserving newest-first order without a re-fetch.
func (v *TaskView) Add(ctx context.Context, title, description, status string) error {
	if err := v.beginMutation(); err != nil {
		return err
	}

	created, err := v.api.CreateTask(ctx, title, description, status)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.state = StateReady
	v.lastErr = err
	if err != nil {
		return err
	}
	v.cache = append([]Task{created}, v.cache...)
	return nil
}

// Edit applies a partial update and replaces the matching cache entry
// with the confirmed record, keeping its position.
func (v *TaskView) Edit(ctx context.Context, taskID string, fields TaskFields) error {
	if err := v.beginMutation(); err != nil {
		return err
	}

	updated, err := v.api.UpdateTask(ctx, taskID, fields)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.state = StateReady
	v.lastErr = err
	if err != nil {
		return err
	}
	v.replaceLocked(updated)
	return nil
}

// Remove deletes a task and drops the matching cache entry.
func (v *TaskView) Remove(ctx context.Context, taskID string) error {
	if err := v.beginMutation(); err != nil {
		return err
	}

	err := v.api.DeleteTask(ctx, taskID)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.state = StateReady
	v.lastErr = err
	if err != nil {
		return err
	}
	for i, t := range v.cache {
		if t.ID == taskID {
			v.cache = append(v.cache[:i], v.cache[i+1:]...)
			break
		}
	}
	return nil
}

// Toggle flips a task between pending and completed. It carries the
// full current field set so a toggle never clears title or description.
func (v *TaskView) Toggle(ctx context.Context, taskID string) error {
	v.mu.Lock()
	var current *Task
	for i := range v.cache {
		if v.cache[i].ID == taskID {
			current = &v.cache[i]
			break
		}
	}
	if current == nil {
		v.mu.Unlock()
		return ErrTaskNotCached
	}
	title := current.Title
	description := current.Description
	next := "completed"
	if current.Status == "completed" {
		next = "pending"
	}
	v.mu.Unlock()

	return v.Edit(ctx, taskID, TaskFields{
		Title:       &title,
		Description: &description,
		Status:      &next,
	})
}

// beginMutation moves Ready to Mutating, rejecting overlap.
func (v *TaskView) beginMutation() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	switch v.state {
	case StateLoading:
		return ErrNotReady
	case StateMutating:
		return ErrMutationInFlight
	}
	v.state = StateMutating
	return nil
}

// replaceLocked swaps the cache entry matching updated.ID in place.
// Caller holds v.mu.
func (v *TaskView) replaceLocked(updated Task) {
	for i := range v.cache {
		if v.cache[i].ID == updated.ID {
			v.cache[i] = updated
			return
		}
	}
}
