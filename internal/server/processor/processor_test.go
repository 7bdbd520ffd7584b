// FILE: connect4/internal/server/processor/processor_test.go
package processor

import (
	"path/filepath"
	"testing"

	"connect4/internal/server/core"
	"connect4/internal/server/service"
	"connect4/internal/server/storage"
)

func newTestProcessor(t *testing.T) *Processor {
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
	if _, err := svc.CreateUser("alice", ""); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	return New(svc)
}

func TestExecuteGameFlow(t *testing.T) {
	p := newTestProcessor(t)

	created := p.Execute(NewCreateGameCommand(core.CreateGameRequest{Username: "alice"}))
	if !created.Success {
		t.Fatalf("create failed: %+v", created.Error)
	}
	game, ok := created.Data.(core.GameResponse)
	if !ok {
		t.Fatalf("create data = %T, want GameResponse", created.Data)
	}
	if game.Status != "active" || game.Message != service.MsgGameCreated {
		t.Errorf("created game = %+v", game)
	}

	column := 3
	moved := p.Execute(NewMakeMoveCommand(game.GameID, core.MoveRequest{Column: &column}))
	if !moved.Success {
		t.Fatalf("move failed: %+v", moved.Error)
	}
	if moved.Data.(core.GameResponse).Moves != 1 {
		t.Errorf("moves = %d, want 1", moved.Data.(core.GameResponse).Moves)
	}

	board := p.Execute(NewGetBoardCommand(game.GameID))
	if !board.Success {
		t.Fatalf("board failed: %+v", board.Error)
	}
	if board.Data.(core.BoardResponse).Board == "" {
		t.Error("board rendering is empty")
	}

	listed := p.Execute(NewListGamesCommand("alice", true))
	if !listed.Success {
		t.Fatalf("list failed: %+v", listed.Error)
	}
	if n := len(listed.Data.(core.GameListResponse).Games); n != 1 {
		t.Errorf("active games = %d, want 1", n)
	}

	canceled := p.Execute(NewCancelGameCommand(game.GameID))
	if !canceled.Success {
		t.Fatalf("cancel failed: %+v", canceled.Error)
	}
	if canceled.Data.(core.GameResponse).Status != "canceled" {
		t.Errorf("status = %q, want canceled", canceled.Data.(core.GameResponse).Status)
	}
}

func TestExecuteErrorCodes(t *testing.T) {
	p := newTestProcessor(t)

	created := p.Execute(NewCreateGameCommand(core.CreateGameRequest{Username: "alice", Rows: 4, Columns: 4}))
	if !created.Success {
		t.Fatalf("create failed: %+v", created.Error)
	}
	gameID := created.Data.(core.GameResponse).GameID

	badColumn := 99
	goodColumn := 0

	cases := []struct {
		name string
		cmd  Command
		code string
	}{
		{"unknown game", NewGetGameCommand("no-such-game"), core.ErrGameNotFound},
		{"unknown user", NewCreateGameCommand(core.CreateGameRequest{Username: "nobody"}), core.ErrUserNotFound},
		{"unknown user list", NewListGamesCommand("nobody", false), core.ErrUserNotFound},
		{"invalid column", NewMakeMoveCommand(gameID, core.MoveRequest{Column: &badColumn}), core.ErrInvalidColumn},
		{"missing column", NewMakeMoveCommand(gameID, core.MoveRequest{}), core.ErrInvalidRequest},
		{"unknown board", NewGetBoardCommand("no-such-game"), core.ErrGameNotFound},
		{"unknown history", NewGetHistoryCommand("no-such-game"), core.ErrGameNotFound},
	}
	for _, tc := range cases {
		resp := p.Execute(tc.cmd)
		if resp.Success {
			t.Errorf("%s: expected failure", tc.name)
			continue
		}
		if resp.Error.Code != tc.code {
			t.Errorf("%s: code = %q, want %q", tc.name, resp.Error.Code, tc.code)
		}
	}

	// Terminal-state codes are distinguishable
	if resp := p.Execute(NewCancelGameCommand(gameID)); !resp.Success {
		t.Fatalf("cancel failed: %+v", resp.Error)
	}
	if resp := p.Execute(NewMakeMoveCommand(gameID, core.MoveRequest{Column: &goodColumn})); resp.Error == nil || resp.Error.Code != core.ErrGameCanceled {
		t.Errorf("move on canceled game: got %+v, want %s", resp.Error, core.ErrGameCanceled)
	}
	if resp := p.Execute(NewCancelGameCommand(gameID)); resp.Error == nil || resp.Error.Code != core.ErrGameCanceled {
		t.Errorf("second cancel: got %+v, want %s", resp.Error, core.ErrGameCanceled)
	}
}
