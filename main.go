package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/example/taskdeck/modules/api"
	"github.com/example/taskdeck/modules/auth"
	"github.com/example/taskdeck/modules/task"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== TaskDeck ===")

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Register modules with the framework
	// Order: independent modules first, then dependent modules
	app.Register(auth.NewModule()) // Independent module (resolves caller identity)
	app.Register(task.NewModule()) // Independent module (task store and mutations)
	app.Register(api.NewModule())  // Depends on auth and task modules

	// Start application
	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo()

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo() {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Println("REST API Endpoints (http://localhost:3000):")
	log.Println("")
	log.Println("  Public Endpoints:")
	log.Println("  POST   /api/v1/auth/register  - Register a new user")
	log.Println("  POST   /api/v1/auth/login     - Login and get tokens")
	log.Println("  POST   /api/v1/auth/refresh   - Refresh access token")
	log.Println("  GET    /health                - Health check")
	log.Println("")
	log.Println("  Protected Endpoints (require Bearer token):")
	log.Println("  GET    /api/v1/profile        - Get current user profile")
	log.Println("  PUT    /api/v1/profile        - Update current user profile")
	log.Println("  GET    /api/v1/tasks          - List own tasks, newest first")
	log.Println("  POST   /api/v1/tasks          - Create a task")
	log.Println("  PUT    /api/v1/tasks/:id      - Update an owned task")
	log.Println("  DELETE /api/v1/tasks/:id      - Delete an owned task")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
