// FILE: connect4/internal/server/http/handler_test.go
package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"

	"connect4/internal/server/core"
	"connect4/internal/server/processor"
	"connect4/internal/server/service"
	"connect4/internal/server/storage"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	store, err := storage.NewStore(filepath.Join(t.TempDir(), "test.db"), false)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if err := store.InitDB(); err != nil {
		t.Fatalf("InitDB: %v", err)
	}

	svc, err := service.NewService(store, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	return NewFiberApp(processor.New(svc), svc, true)
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, out any) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("%s %s: decode response: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

func TestUserRegistration(t *testing.T) {
	app := newTestApp(t)

	var user core.UserResponse
	status := doJSON(t, app, http.MethodPost, "/api/v1/users",
		core.CreateUserRequest{Username: "alice", Email: "alice@example.com"}, &user)
	if status != http.StatusCreated {
		t.Fatalf("create user status = %d, want 201", status)
	}
	if user.Username != "alice" || user.UserID == "" {
		t.Errorf("user response = %+v", user)
	}

	var dup core.ErrorResponse
	status = doJSON(t, app, http.MethodPost, "/api/v1/users",
		core.CreateUserRequest{Username: "ALICE"}, &dup)
	if status != http.StatusConflict || dup.Code != core.ErrUserExists {
		t.Errorf("duplicate: status %d code %q, want 409 %s", status, dup.Code, core.ErrUserExists)
	}

	var bad core.ErrorResponse
	status = doJSON(t, app, http.MethodPost, "/api/v1/users",
		core.CreateUserRequest{Username: "not a name!"}, &bad)
	if status != http.StatusBadRequest {
		t.Errorf("invalid username: status = %d, want 400", status)
	}
}

func TestGameEndpoints(t *testing.T) {
	app := newTestApp(t)

	if status := doJSON(t, app, http.MethodPost, "/api/v1/users",
		core.CreateUserRequest{Username: "bob"}, nil); status != http.StatusCreated {
		t.Fatalf("create user status = %d", status)
	}

	// Unknown player cannot start a game
	var notFound core.ErrorResponse
	status := doJSON(t, app, http.MethodPost, "/api/v1/games",
		core.CreateGameRequest{Username: "nobody"}, &notFound)
	if status != http.StatusNotFound || notFound.Code != core.ErrUserNotFound {
		t.Errorf("unknown user: status %d code %q", status, notFound.Code)
	}

	var created core.GameResponse
	status = doJSON(t, app, http.MethodPost, "/api/v1/games",
		core.CreateGameRequest{Username: "bob"}, &created)
	if status != http.StatusCreated {
		t.Fatalf("create game status = %d, want 201", status)
	}
	if created.Status != "active" || created.Rows != 6 || created.Columns != 7 {
		t.Errorf("created game = %+v", created)
	}

	// Column 0 must pass the required check
	zero := 0
	var moved core.GameResponse
	status = doJSON(t, app, http.MethodPost, "/api/v1/games/"+created.GameID+"/moves",
		core.MoveRequest{Column: &zero}, &moved)
	if status != http.StatusOK {
		t.Fatalf("move status = %d, want 200", status)
	}
	if moved.Moves != 1 {
		t.Errorf("moves = %d, want 1", moved.Moves)
	}

	// Missing column is a validation error
	var invalid core.ErrorResponse
	status = doJSON(t, app, http.MethodPost, "/api/v1/games/"+created.GameID+"/moves",
		map[string]any{}, &invalid)
	if status != http.StatusBadRequest || invalid.Code != core.ErrInvalidRequest {
		t.Errorf("missing column: status %d code %q", status, invalid.Code)
	}

	var board core.BoardResponse
	status = doJSON(t, app, http.MethodGet, "/api/v1/games/"+created.GameID+"/board", nil, &board)
	if status != http.StatusOK || board.Board == "" {
		t.Errorf("board: status %d, body %q", status, board.Board)
	}

	var games core.GameListResponse
	status = doJSON(t, app, http.MethodGet, "/api/v1/users/bob/games?active=true", nil, &games)
	if status != http.StatusOK || len(games.Games) != 1 {
		t.Errorf("active games: status %d count %d", status, len(games.Games))
	}

	// Cancel, then confirm the conflict on repeat
	var canceled core.GameResponse
	status = doJSON(t, app, http.MethodPost, "/api/v1/games/"+created.GameID+"/cancel", nil, &canceled)
	if status != http.StatusOK || canceled.Status != "canceled" {
		t.Fatalf("cancel: status %d game %+v", status, canceled)
	}

	var conflict core.ErrorResponse
	status = doJSON(t, app, http.MethodPost, "/api/v1/games/"+created.GameID+"/cancel", nil, &conflict)
	if status != http.StatusConflict || conflict.Code != core.ErrGameCanceled {
		t.Errorf("second cancel: status %d code %q", status, conflict.Code)
	}

	// Malformed game IDs are rejected before lookup
	status = doJSON(t, app, http.MethodGet, "/api/v1/games/not-a-uuid", nil, nil)
	if status != http.StatusBadRequest {
		t.Errorf("malformed id: status = %d, want 400", status)
	}
}

func TestStatsEndpoint(t *testing.T) {
	app := newTestApp(t)

	var stats core.StatsResponse
	status := doJSON(t, app, http.MethodGet, "/api/v1/stats/average-moves-remaining", nil, &stats)
	if status != http.StatusOK {
		t.Fatalf("stats status = %d, want 200", status)
	}
	if stats.ActiveGames != 0 || stats.Cached {
		t.Errorf("stats = %+v, want empty uncached projection", stats)
	}
}

func TestHealthEndpoint(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("health status = %d, want 200", resp.StatusCode)
	}

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if body["storage"] != true {
		t.Errorf("storage health = %v, want true", body["storage"])
	}
}
