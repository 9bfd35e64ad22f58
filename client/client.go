// Package client is the Go counterpart of the web task view: an HTTP
// API client with an explicit session lifecycle, and a TaskView that
// mirrors server state into a local cache with pure filtering.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Task is the wire shape of a task as served by the API.
type Task struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// User is the wire shape of a user profile.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskFields is a partial field set for an update. Nil fields are left
// unchanged by the server.
type TaskFields struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// TaskAPI is the surface the TaskView needs from the server.
type TaskAPI interface {
	Profile(ctx context.Context) (User, error)
	ListTasks(ctx context.Context) ([]Task, error)
	CreateTask(ctx context.Context, title, description, status string) (Task, error)
	UpdateTask(ctx context.Context, taskID string, fields TaskFields) (Task, error)
	DeleteTask(ctx context.Context, taskID string) error
}

// APIError is a non-2xx response decoded from the server.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s: %s", e.Status, e.Code, e.Message)
}

// Client talks to the TaskDeck REST API, attaching the session's
// bearer token to authenticated requests.
type Client struct {
	baseURL string
	httpc   *http.Client
	session *Session
}

// Compile-time interface check.
var _ TaskAPI = (*Client)(nil)

// New creates a Client against the given base URL, e.g.
// "http://localhost:3000".
func New(baseURL string, session *Session) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{},
		session: session,
	}
}

// Register creates a new account. It does not log in.
func (c *Client) Register(ctx context.Context, name, email, password string) (User, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var user User
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/register", body, &user, false); err != nil {
		return User{}, err
	}
	return user, nil
}

// Login authenticates, fetches the profile, and populates the session.
func (c *Client) Login(ctx context.Context, email, password string) (User, error) {
	body := map[string]string{"email": email, "password": password}
	var tokens struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", body, &tokens, false); err != nil {
		return User{}, err
	}

	// The session must carry the token before the profile fetch.
	c.session.begin(tokens.AccessToken, User{})

	user, err := c.Profile(ctx)
	if err != nil {
		c.session.clear()
		return User{}, err
	}
	c.session.begin(tokens.AccessToken, user)
	return user, nil
}

// Logout clears the session. Purely local; tokens simply expire.
func (c *Client) Logout() {
	c.session.clear()
}

// Profile returns the authenticated user's profile.
func (c *Client) Profile(ctx context.Context) (User, error) {
	var resp struct {
		User User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/profile", nil, &resp, true); err != nil {
		return User{}, err
	}
	return resp.User, nil
}

// ListTasks returns the caller's tasks, newest first.
func (c *Client) ListTasks(ctx context.Context) ([]Task, error) {
	var resp struct {
		Tasks []Task `json:"tasks"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/tasks", nil, &resp, true); err != nil {
		return nil, err
	}
	return resp.Tasks, nil
}

// CreateTask creates a task. An empty status defaults to pending on
// the server.
func (c *Client) CreateTask(ctx context.Context, title, description, status string) (Task, error) {
	body := map[string]string{"title": title, "description": description}
	if status != "" {
		body["status"] = status
	}
	var resp struct {
		Task Task `json:"task"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/tasks", body, &resp, true); err != nil {
		return Task{}, err
	}
	return resp.Task, nil
}

// UpdateTask applies a partial update to a task.
func (c *Client) UpdateTask(ctx context.Context, taskID string, fields TaskFields) (Task, error) {
	var resp struct {
		Task Task `json:"task"`
	}
	if err := c.do(ctx, http.MethodPut, "/api/v1/tasks/"+taskID, fields, &resp, true); err != nil {
		return Task{}, err
	}
	return resp.Task, nil
}

// DeleteTask permanently removes a task.
func (c *Client) DeleteTask(ctx context.Context, taskID string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/tasks/"+taskID, nil, nil, true)
}

// do issues one JSON request and decodes the response into out.
// Non-2xx responses become *APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out any, authed bool) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+c.session.Token())
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var wire struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&wire); err == nil {
			apiErr.Code = wire.Error
			apiErr.Message = wire.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
