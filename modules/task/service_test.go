package task

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "github.com/example/taskdeck/domain/task"
	"github.com/example/taskdeck/domain/user"
)

func setupService(t *testing.T) *TaskService {
	t.Helper()
	return NewTaskService(NewTaskRepository(setupTestDB(t)))
}

func strPtr(s string) *string {
	return &s
}

func TestTaskService_Create(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	owner := user.ID("owner-1")

	t.Run("defaults to pending", func(t *testing.T) {
		created, err := svc.Create(ctx, owner, CreateInput{
			Title:       "Buy milk",
			Description: "2%",
		})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if created.Status != domain.StatusPending {
			t.Errorf("expected status %q, got %q", domain.StatusPending, created.Status)
		}
		if created.ID == "" {
			t.Error("expected a generated id")
		}
		if created.OwnerID != owner.String() {
			t.Errorf("expected owner %q, got %q", owner, created.OwnerID)
		}
		if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
			t.Error("expected timestamps to be set")
		}
	})

	t.Run("listed newest first after create", func(t *testing.T) {
		tasks, err := svc.List(ctx, owner)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(tasks) == 0 {
			t.Fatal("expected at least one task")
		}
		if tasks[0].Title != "Buy milk" {
			t.Errorf("expected newest task first, got %q", tasks[0].Title)
		}
	})

	t.Run("trims whitespace", func(t *testing.T) {
		created, err := svc.Create(ctx, owner, CreateInput{
			Title:       "  padded  ",
			Description: "\tindented\n",
		})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if created.Title != "padded" {
			t.Errorf("expected trimmed title, got %q", created.Title)
		}
		if created.Description != "indented" {
			t.Errorf("expected trimmed description, got %q", created.Description)
		}
	})

	validationCases := []struct {
		name  string
		in    CreateInput
		field string
	}{
		{
			name:  "empty title",
			in:    CreateInput{Title: "", Description: "x"},
			field: "title",
		},
		{
			name:  "whitespace title",
			in:    CreateInput{Title: "   ", Description: "x"},
			field: "title",
		},
		{
			name:  "empty description",
			in:    CreateInput{Title: "x", Description: ""},
			field: "description",
		},
		{
			name:  "unknown status",
			in:    CreateInput{Title: "x", Description: "y", Status: "archived"},
			field: "status",
		},
	}

	for _, tt := range validationCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, owner, tt.in)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, ve.Field)
			}
		})
	}
}

func TestTaskService_Update(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	owner := user.ID("owner-a")
	stranger := user.ID("owner-b")

	created, err := svc.Create(ctx, owner, CreateInput{
		Title:       "Original title",
		Description: "Original description",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	t.Run("partial update changes only given fields", func(t *testing.T) {
		updated, err := svc.Update(ctx, owner, created.ID, UpdateInput{
			Status: strPtr("completed"),
		})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if updated.Status != domain.StatusCompleted {
			t.Errorf("expected status completed, got %q", updated.Status)
		}
		if updated.Title != created.Title {
			t.Errorf("title changed: %q -> %q", created.Title, updated.Title)
		}
		if updated.Description != created.Description {
			t.Errorf("description changed: %q -> %q", created.Description, updated.Description)
		}
		if updated.ID != created.ID {
			t.Error("id changed across update")
		}
		if updated.OwnerID != created.OwnerID {
			t.Error("owner changed across update")
		}
		if diff := updated.CreatedAt.Sub(created.CreatedAt); diff < -time.Millisecond || diff > time.Millisecond {
			t.Errorf("createdAt changed across update by %v", diff)
		}
		if updated.UpdatedAt.Before(created.UpdatedAt) {
			t.Error("updatedAt was not refreshed")
		}
	})

	t.Run("foreign owner is rejected before changes", func(t *testing.T) {
		_, err := svc.Update(ctx, stranger, created.ID, UpdateInput{
			Status: strPtr("pending"),
		})
		if !errors.Is(err, ErrNotOwner) {
			t.Fatalf("expected ErrNotOwner, got %v", err)
		}

		// The stored task is unchanged
		stored, err := svc.repo.FindByID(created.ID)
		if err != nil {
			t.Fatalf("FindByID() error = %v", err)
		}
		if stored.Status != domain.StatusCompleted {
			t.Errorf("stored status changed to %q", stored.Status)
		}
	})

	t.Run("validation applies to present fields", func(t *testing.T) {
		_, err := svc.Update(ctx, owner, created.ID, UpdateInput{
			Title: strPtr("   "),
		})
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if ve.Field != "title" {
			t.Errorf("expected field title, got %q", ve.Field)
		}
	})

	t.Run("missing task", func(t *testing.T) {
		_, err := svc.Update(ctx, owner, "no-such-id", UpdateInput{
			Status: strPtr("pending"),
		})
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestTaskService_Delete(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	owner := user.ID("owner-a")
	stranger := user.ID("owner-b")

	created, err := svc.Create(ctx, owner, CreateInput{
		Title:       "Disposable",
		Description: "Short lived",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	t.Run("foreign owner cannot delete", func(t *testing.T) {
		if err := svc.Delete(ctx, stranger, created.ID); !errors.Is(err, ErrNotOwner) {
			t.Fatalf("expected ErrNotOwner, got %v", err)
		}
		if _, err := svc.repo.FindByID(created.ID); err != nil {
			t.Errorf("task should still exist, got %v", err)
		}
	})

	t.Run("delete then delete again", func(t *testing.T) {
		if err := svc.Delete(ctx, owner, created.ID); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if err := svc.Delete(ctx, owner, created.ID); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound on second delete, got %v", err)
		}
	})
}

func TestTaskService_List(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	t.Run("empty owner set", func(t *testing.T) {
		tasks, err := svc.List(ctx, user.ID("nobody"))
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(tasks) != 0 {
			t.Errorf("expected 0 tasks, got %d", len(tasks))
		}
	})

	t.Run("scoped to owner, newest first", func(t *testing.T) {
		owner := user.ID("owner-a")
		other := user.ID("owner-b")

		for i, title := range []string{"first", "second", "third"} {
			task := &domain.Task{
				ID:          title,
				OwnerID:     owner.String(),
				Title:       title,
				Description: "d",
				Status:      domain.StatusPending,
				CreatedAt:   time.Now().Add(time.Duration(i) * time.Minute),
				UpdatedAt:   time.Now(),
			}
			if err := svc.repo.Create(task); err != nil {
				t.Fatalf("Create() error = %v", err)
			}
		}
		if _, err := svc.Create(ctx, other, CreateInput{Title: "foreign", Description: "d"}); err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		tasks, err := svc.List(ctx, owner)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(tasks) != 3 {
			t.Fatalf("expected 3 tasks, got %d", len(tasks))
		}
		want := []string{"third", "second", "first"}
		for i, title := range want {
			if tasks[i].Title != title {
				t.Errorf("position %d: expected %q, got %q", i, title, tasks[i].Title)
			}
		}
	})
}

func TestOwnershipGate(t *testing.T) {
	task := &domain.Task{OwnerID: "owner-a"}

	if !task.OwnedBy(user.ID("owner-a")) {
		t.Error("owner should pass the gate")
	}
	if task.OwnedBy(user.ID("owner-b")) {
		t.Error("stranger should not pass the gate")
	}
	if task.OwnedBy(user.ID("")) {
		t.Error("empty identity should never pass the gate")
	}

	anonymous := &domain.Task{OwnerID: ""}
	if anonymous.OwnedBy(user.ID("")) {
		t.Error("empty-to-empty comparison should not authorize")
	}
}
