package task

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	domain "github.com/example/taskdeck/domain/task"
	"github.com/example/taskdeck/domain/user"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TaskModule provides the task store and mutation services.
type TaskModule struct {
	db      *gorm.DB
	service *TaskService
	dbPath  string
}

// Compile-time interface checks.
var _ mono.Module = (*TaskModule)(nil)
var _ mono.ServiceProviderModule = (*TaskModule)(nil)
var _ mono.HealthCheckableModule = (*TaskModule)(nil)

// NewModule creates a new TaskModule.
func NewModule() *TaskModule {
	dbPath := os.Getenv("TASKDECK_DB_PATH")
	if dbPath == "" {
		dbPath = "taskdeck.db"
	}
	return &TaskModule{
		dbPath: dbPath,
	}
}

// Name returns the module name.
func (m *TaskModule) Name() string {
	return "task"
}

// sqliteDSN appends a busy timeout: the auth and task modules hold
// independent connections to the same file, so a concurrent writer must
// wait instead of failing with SQLITE_BUSY.
func sqliteDSN(path string) string {
	return path + "?_busy_timeout=5000"
}

// Start initializes the task module.
func (m *TaskModule) Start(_ context.Context) error {
	db, err := gorm.Open(sqlite.Open(sqliteDSN(m.dbPath)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	if err := db.AutoMigrate(&domain.Task{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	m.service = NewTaskService(NewTaskRepository(db))

	log.Printf("[task] Module started (database: %s)", m.dbPath)
	return nil
}

// Stop shuts down the module.
func (m *TaskModule) Stop(_ context.Context) error {
	if m.db != nil {
		sqlDB, err := m.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	log.Println("[task] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *TaskModule) Health(_ context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get database connection: %v", err),
		}
	}

	if err := sqlDB.Ping(); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"database": m.dbPath,
		},
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *TaskModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container,
		"list",
		json.Unmarshal,
		json.Marshal,
		m.handleList,
	); err != nil {
		return fmt.Errorf("failed to register list service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container,
		"create",
		json.Unmarshal,
		json.Marshal,
		m.handleCreate,
	); err != nil {
		return fmt.Errorf("failed to register create service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container,
		"update",
		json.Unmarshal,
		json.Marshal,
		m.handleUpdate,
	); err != nil {
		return fmt.Errorf("failed to register update service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container,
		"delete",
		json.Unmarshal,
		json.Marshal,
		m.handleDelete,
	); err != nil {
		return fmt.Errorf("failed to register delete service: %w", err)
	}

	log.Printf("[task] Registered services: list, create, update, delete")
	return nil
}

// handleList handles task list requests.
func (m *TaskModule) handleList(ctx context.Context, req ListRequest, _ *mono.Msg) (ListResponse, error) {
	tasks, err := m.service.List(ctx, user.ID(req.OwnerID))
	if err != nil {
		return ListResponse{}, err
	}

	resp := ListResponse{Tasks: make([]TaskPayload, 0, len(tasks))}
	for _, t := range tasks {
		resp.Tasks = append(resp.Tasks, toPayload(t))
	}
	return resp, nil
}

// handleCreate handles task creation.
func (m *TaskModule) handleCreate(ctx context.Context, req CreateRequest, _ *mono.Msg) (CreateResponse, error) {
	t, err := m.service.Create(ctx, user.ID(req.OwnerID), CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		return CreateResponse{}, err
	}
	return CreateResponse{Task: toPayload(t)}, nil
}

// handleUpdate handles partial task updates.
func (m *TaskModule) handleUpdate(ctx context.Context, req UpdateRequest, _ *mono.Msg) (UpdateResponse, error) {
	t, err := m.service.Update(ctx, user.ID(req.OwnerID), req.TaskID, UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		return UpdateResponse{}, err
	}
	return UpdateResponse{Task: toPayload(t)}, nil
}

// handleDelete handles task deletion.
func (m *TaskModule) handleDelete(ctx context.Context, req DeleteRequest, _ *mono.Msg) (DeleteResponse, error) {
	if err := m.service.Delete(ctx, user.ID(req.OwnerID), req.TaskID); err != nil {
		return DeleteResponse{Deleted: false, ID: req.TaskID}, err
	}
	return DeleteResponse{Deleted: true, ID: req.TaskID}, nil
}
