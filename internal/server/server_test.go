package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"notestack-be/internal/bootstrap"
	"notestack-be/internal/config"
	"notestack-be/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testServer struct {
	t   *testing.T
	app *fiber.App
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	dir := t.TempDir()
	cfg := &config.Config{
		App: config.AppConfig{
			Port:                "0",
			Environment:         "test",
			LogFilePath:         filepath.Join(dir, "app.log"),
			SocketLogFilePath:   filepath.Join(dir, "websocket.log"),
			CorsAllowedOrigins:  "http://localhost:3000",
			DefaultNotebookName: "NoteStack",
		},
		Auth: config.AuthConfig{
			JwtSecret:  "integration-secret",
			TokenTTL:   time.Hour,
			BcryptCost: bcrypt.MinCost,
		},
	}

	container := bootstrap.NewContainer(testutil.NewTestDB(t), cfg)
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, container.Start(ctx))
	t.Cleanup(func() {
		cancel()
		container.Close()
	})

	return &testServer{t: t, app: New(cfg, container).GetApp()}
}

func (s *testServer) do(method, target, token string, body interface{}) (int, map[string]interface{}) {
	s.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(s.t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	require.NoError(s.t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func (s *testServer) register(name, email string) (string, string) {
	s.t.Helper()
	status, body := s.do(http.MethodPost, "/api/auth/register", "", fiber.Map{
		"name": name, "email": email, "password": "secret123",
	})
	require.Equal(s.t, fiber.StatusCreated, status, body)
	user := body["user"].(map[string]interface{})
	return body["token"].(string), user["id"].(string)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	status, body := s.do(http.MethodGet, "/", "", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Server is working!", body["message"])
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t)
	status, body := s.do(http.MethodGet, "/api/nothing-here", "", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Route not found", body["error"])
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(http.MethodPost, "/api/auth/register", "", fiber.Map{"email": "a@example.com"})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Please provide name, email, and password", body["error"])

	token, userId := s.register("Ada", "ada@example.com")
	assert.NotEmpty(t, token)

	status, body = s.do(http.MethodPost, "/api/auth/register", "", fiber.Map{
		"name": "Ada", "email": "ada@example.com", "password": "secret123",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "User with this email already exists", body["error"])

	status, body = s.do(http.MethodPost, "/api/auth/login", "", fiber.Map{"email": "ada@example.com"})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Please provide email and password", body["error"])

	status, body = s.do(http.MethodPost, "/api/auth/login", "", fiber.Map{"email": "ada@example.com", "password": "wrong-pass"})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Invalid credentials", body["error"])

	status, body = s.do(http.MethodPost, "/api/auth/login", "", fiber.Map{"email": "ada@example.com", "password": "secret123"})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["success"])
	loginToken := body["token"].(string)

	status, body = s.do(http.MethodGet, "/api/auth/me", loginToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, userId, body["user"].(map[string]interface{})["id"])

	// The gate does not distinguish a missing token from a bad one.
	for _, bad := range []string{"", "not-a-token"} {
		status, body = s.do(http.MethodGet, "/api/notes", bad, nil)
		assert.Equal(t, fiber.StatusUnauthorized, status)
		assert.Equal(t, "Please authenticate using a valid token", body["error"])
	}
}

func TestNotebookDefaults(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.register("Ada", "ada@example.com")

	status, body := s.do(http.MethodGet, "/api/notebooks", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(1), body["count"])
	def := body["notebooks"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "NoteStack", def["name"])
	assert.Equal(t, true, def["isDefault"])
	defId := def["_id"].(string)

	status, body = s.do(http.MethodPut, "/api/notebooks/"+defId, token, fiber.Map{"name": "Renamed"})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Cannot rename the default notebook 'NoteStack'", body["error"])

	status, body = s.do(http.MethodDelete, "/api/notebooks/"+defId, token, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Cannot delete the default notebook 'NoteStack'", body["error"])

	status, body = s.do(http.MethodGet, "/api/notebooks/not-a-uuid", token, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Invalid notebook ID", body["error"])

	status, body = s.do(http.MethodPost, "/api/notebooks", token, fiber.Map{"name": "Work"})
	require.Equal(t, fiber.StatusCreated, status)
	work := body["notebook"].(map[string]interface{})
	assert.Equal(t, float64(0), work["noteCount"])

	status, _ = s.do(http.MethodPost, "/api/notes", token, fiber.Map{"title": "Plan", "notebookId": work["_id"]})
	require.Equal(t, fiber.StatusCreated, status)

	status, body = s.do(http.MethodGet, "/api/notebooks/"+work["_id"].(string)+"/notes", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Work", body["notebook"])
	assert.Equal(t, float64(1), body["count"])

	status, body = s.do(http.MethodDelete, "/api/notebooks/"+work["_id"].(string), token, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Notebook deleted successfully. 1 note(s) moved to 'NoteStack'.", body["message"])

	status, body = s.do(http.MethodGet, "/api/notes?notebookId="+defId, token, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(1), body["count"])

	status, body = s.do(http.MethodGet, "/api/notes?notebookId=bogus", token, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Invalid notebook ID", body["error"])
}

func TestNoteOwnershipOverHTTP(t *testing.T) {
	s := newTestServer(t)
	ownerToken, _ := s.register("A", "a@example.com")
	otherToken, _ := s.register("B", "b@example.com")

	status, body := s.do(http.MethodPost, "/api/notes", ownerToken, fiber.Map{"title": "Secret", "content": "s3cr3t"})
	require.Equal(t, fiber.StatusCreated, status)
	noteId := body["note"].(map[string]interface{})["_id"].(string)

	status, body = s.do(http.MethodGet, "/api/notes/"+noteId, otherToken, nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "Not authorized to access this note", body["error"])
	assert.NotContains(t, body, "note")

	status, body = s.do(http.MethodPut, "/api/notes/"+noteId, otherToken, fiber.Map{"title": "Mine"})
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "Not authorized to update this note", body["error"])

	status, body = s.do(http.MethodDelete, "/api/notes/"+noteId, otherToken, nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, body = s.do(http.MethodGet, "/api/notes/not-a-uuid", ownerToken, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Invalid note ID", body["error"])

	status, body = s.do(http.MethodDelete, "/api/notes/"+noteId, ownerToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Note has been deleted successfully", body["message"])
}

func TestCreateNoteRequiresTitle(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.register("A", "a@example.com")

	for _, body := range []interface{}{nil, fiber.Map{"content": "no title"}, fiber.Map{"title": ""}} {
		status, res := s.do(http.MethodPost, "/api/notes", token, body)
		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, "Title is required", res["error"])
		assert.Equal(t, false, res["success"])
	}

	status, res := s.do(http.MethodGet, "/api/notes", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 0, res["count"])
}

func TestGroceriesShareFlow(t *testing.T) {
	s := newTestServer(t)
	aliceToken, aliceId := s.register("Alice", "alice@example.com")
	bobToken, _ := s.register("Bob", "bob@example.com")

	status, body := s.do(http.MethodPost, "/api/notes", aliceToken, fiber.Map{
		"title": "Groceries", "content": "milk, eggs", "tag": "Home",
	})
	require.Equal(t, fiber.StatusCreated, status)
	noteId := body["note"].(map[string]interface{})["_id"].(string)

	status, body = s.do(http.MethodGet, "/api/notes/share/"+noteId, aliceToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	shareData := body["shareData"].(map[string]interface{})
	assert.Equal(t, aliceId, shareData["sharedBy"])
	assert.Equal(t, "Groceries", shareData["title"])

	status, body = s.do(http.MethodPost, "/api/notes/receive", aliceToken, shareData)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "You cannot add your own note", body["error"])

	status, body = s.do(http.MethodPost, "/api/notes/receive", bobToken, shareData)
	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "Note added successfully!", body["message"])
	received := body["note"].(map[string]interface{})
	assert.Equal(t, "Groceries (Shared)", received["title"])
	assert.Equal(t, "NoteStack", received["notebook"].(map[string]interface{})["name"])

	status, body = s.do(http.MethodPost, "/api/notes/receive", bobToken, shareData)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "You already have this note", body["error"])

	status, body = s.do(http.MethodPost, "/api/notes/receive", bobToken, fiber.Map{"content": "x"})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Invalid share data", body["error"])

	status, body = s.do(http.MethodGet, "/api/notes", bobToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(1), body["count"])
}

func TestShareAsQRCode(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.register("Alice", "alice@example.com")

	status, body := s.do(http.MethodPost, "/api/notes", token, fiber.Map{"title": "Groceries", "content": "milk"})
	require.Equal(t, fiber.StatusCreated, status)
	noteId := body["note"].(map[string]interface{})["_id"].(string)

	req := httptest.NewRequest(http.MethodGet, "/api/notes/share/"+noteId+"?format=qr&size=256", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	png, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), png[:4])
}
