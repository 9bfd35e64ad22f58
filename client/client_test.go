package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Login(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/login":
			require.Equal(t, http.MethodPost, r.Method)
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "ada@example.com", body["email"])
			json.NewEncoder(w).Encode(map[string]any{
				"access_token": "token-123",
				"token_type":   "Bearer",
			})
		case "/api/v1/profile":
			assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
			json.NewEncoder(w).Encode(map[string]any{
				"user": map[string]string{"id": "user-1", "name": "Ada", "email": "ada@example.com"},
			})
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})

	session := NewSession()
	c := New(srv.URL, session)

	user, err := c.Login(context.Background(), "ada@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "Ada", user.Name)
	assert.True(t, session.Active())
	assert.Equal(t, "token-123", session.Token())
	assert.Equal(t, "user-1", session.User().ID)

	c.Logout()
	assert.False(t, session.Active())
	assert.Equal(t, User{}, session.User())
}

func TestClient_Login_BadCredentials(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{
			"error":   "unauthorized",
			"message": "Invalid email or password",
		})
	})

	session := NewSession()
	c := New(srv.URL, session)

	_, err := c.Login(context.Background(), "ada@example.com", "wrong")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "unauthorized", apiErr.Code)
	assert.False(t, session.Active())
}

func TestClient_TaskRoundTrip(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/tasks":
			json.NewEncoder(w).Encode(map[string]any{
				"tasks": []map[string]string{
					{"id": "t1", "ownerId": "user-1", "title": "Buy milk", "description": "2%", "status": "pending"},
				},
			})
		case r.Method == http.MethodPost && r.URL.Path == "/api/v1/tasks":
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "Buy milk", body["title"])
			_, hasStatus := body["status"]
			assert.False(t, hasStatus, "empty status should be omitted")
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]any{
				"task":    map[string]string{"id": "t1", "ownerId": "user-1", "title": "Buy milk", "description": "2%", "status": "pending"},
				"message": "Task created successfully",
			})
		case r.Method == http.MethodPut && r.URL.Path == "/api/v1/tasks/t1":
			var body map[string]*string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Nil(t, body["title"])
			require.NotNil(t, body["status"])
			assert.Equal(t, "completed", *body["status"])
			json.NewEncoder(w).Encode(map[string]any{
				"task":    map[string]string{"id": "t1", "ownerId": "user-1", "title": "Buy milk", "description": "2%", "status": "completed"},
				"message": "Task updated successfully",
			})
		case r.Method == http.MethodDelete && r.URL.Path == "/api/v1/tasks/t1":
			json.NewEncoder(w).Encode(map[string]string{"message": "Task deleted successfully"})
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})

	session := NewSession()
	session.begin("token-123", User{ID: "user-1"})
	c := New(srv.URL, session)
	ctx := context.Background()

	tasks, err := c.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Buy milk", tasks[0].Title)

	created, err := c.CreateTask(ctx, "Buy milk", "2%", "")
	require.NoError(t, err)
	assert.Equal(t, "pending", created.Status)

	status := "completed"
	updated, err := c.UpdateTask(ctx, "t1", TaskFields{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "completed", updated.Status)

	require.NoError(t, c.DeleteTask(ctx, "t1"))
}

func TestClient_DeleteNotIdempotent(t *testing.T) {
	deletes := 0
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		deletes++
		if deletes == 1 {
			json.NewEncoder(w).Encode(map[string]string{"message": "Task deleted successfully"})
			return
		}
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{
			"error":   "not_found",
			"message": "Task not found",
		})
	})

	session := NewSession()
	session.begin("token-123", User{ID: "user-1"})
	c := New(srv.URL, session)
	ctx := context.Background()

	require.NoError(t, c.DeleteTask(ctx, "t1"))

	err := c.DeleteTask(ctx, "t1")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}
