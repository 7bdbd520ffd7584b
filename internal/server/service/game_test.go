// FILE: connect4/internal/server/service/game_test.go
package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"connect4/internal/server/core"
	"connect4/internal/server/game"
	"connect4/internal/server/storage"
)

func newTestGame(t *testing.T, svc *Service, rows, columns int) (*GameView, *storage.UserRecord) {
	t.Helper()

	user, err := svc.CreateUser("alice", "")
	if err != nil && !errors.Is(err, ErrUserExists) {
		t.Fatalf("CreateUser: %v", err)
	}
	if user == nil {
		if user, err = svc.GetUserByName("alice"); err != nil {
			t.Fatalf("GetUserByName: %v", err)
		}
	}

	view, err := svc.CreateGame("alice", rows, columns)
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	return view, user
}

func countDiscs(t *testing.T, svc *Service, gameID string) (human, computer int) {
	t.Helper()

	discs, err := svc.store.ListDiscs(gameID)
	if err != nil {
		t.Fatalf("ListDiscs: %v", err)
	}
	for _, d := range discs {
		if d.UserID == svc.computerID {
			computer++
		} else {
			human++
		}
	}
	return human, computer
}

// drawGrid seeds the 4x4 no-winner pattern used by the draw tests: columns
// 0-1 alternate starting with the player, columns 2-3 start with the
// computer. Cells listed in skip stay empty.
func drawGrid(humanID, computerID string, skip ...[2]int) []storage.DiscRecord {
	skipped := make(map[[2]int]bool, len(skip))
	for _, cell := range skip {
		skipped[cell] = true
	}

	owners := [2]string{humanID, computerID}
	var discs []storage.DiscRecord
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			if skipped[[2]int{c, r}] {
				continue
			}
			discs = append(discs, storage.DiscRecord{
				UserID: owners[(r+c/2)%2],
				Column: c,
				Row:    r,
			})
		}
	}
	return discs
}

func TestCreateGameDefaults(t *testing.T) {
	svc := newTestService(t)
	view, _ := newTestGame(t, svc, 0, 0)

	g := view.Game
	if g.Rows != game.DefaultRows || g.Columns != game.DefaultColumns {
		t.Errorf("grid = %dx%d, want %dx%d", g.Rows, g.Columns, game.DefaultRows, game.DefaultColumns)
	}
	if g.Status != core.StatusActive {
		t.Errorf("status = %v, want active", g.Status)
	}
	if g.Moves != 0 {
		t.Errorf("moves = %d, want 0", g.Moves)
	}
	if view.Message != MsgGameCreated {
		t.Errorf("message = %q, want %q", view.Message, MsgGameCreated)
	}
	if view.Username != "alice" {
		t.Errorf("username = %q, want alice", view.Username)
	}
}

func TestCreateGameUnknownUser(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.CreateGame("nobody", 0, 0); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("CreateGame for unknown user: got %v, want ErrUserNotFound", err)
	}
}

func TestGetGame(t *testing.T) {
	svc := newTestService(t)
	view, _ := newTestGame(t, svc, 0, 0)

	got, err := svc.GetGame(view.Game.GameID)
	if err != nil {
		t.Fatalf("GetGame: %v", err)
	}
	if got.Message != MsgYourTurn {
		t.Errorf("message = %q, want %q", got.Message, MsgYourTurn)
	}

	if _, err := svc.GetGame("no-such-game"); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("unknown game: got %v, want ErrGameNotFound", err)
	}
}

func TestApplyMoveExchange(t *testing.T) {
	svc := newTestService(t)
	view, _ := newTestGame(t, svc, 0, 0)

	result, err := svc.ApplyMove(view.Game.GameID, 3)
	if err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}
	if result.Game.Status != core.StatusActive {
		t.Fatalf("status = %v, want active", result.Game.Status)
	}
	if result.Message != MsgContinue {
		t.Errorf("message = %q, want %q", result.Message, MsgContinue)
	}
	if result.Game.Moves != 1 {
		t.Errorf("moves = %d, want 1", result.Game.Moves)
	}

	// A full exchange places one disc per side
	human, computer := countDiscs(t, svc, view.Game.GameID)
	if human != 1 || computer != 1 {
		t.Errorf("discs = %d human, %d computer, want 1 and 1", human, computer)
	}
}

func TestMovesCountHumanHalfMovesOnly(t *testing.T) {
	svc := newTestService(t)
	view, _ := newTestGame(t, svc, 0, 0)

	for i := 0; i < 2; i++ {
		if _, err := svc.ApplyMove(view.Game.GameID, 0); err != nil {
			t.Fatalf("ApplyMove %d: %v", i, err)
		}
	}

	got, err := svc.GetGame(view.Game.GameID)
	if err != nil {
		t.Fatalf("GetGame: %v", err)
	}
	if got.Game.Moves != 2 {
		t.Errorf("moves = %d, want 2 (computer replies are not counted)", got.Game.Moves)
	}
	human, computer := countDiscs(t, svc, view.Game.GameID)
	if human+computer != 4 {
		t.Errorf("total discs = %d, want 4", human+computer)
	}
}

func TestApplyMoveWin(t *testing.T) {
	svc := newTestService(t)
	view, user := newTestGame(t, svc, 4, 4)
	gameID := view.Game.GameID

	seedDiscs(t, svc, gameID, []storage.DiscRecord{
		{UserID: user.UserID, Column: 0, Row: 0},
		{UserID: user.UserID, Column: 1, Row: 0},
		{UserID: user.UserID, Column: 2, Row: 0},
	})

	result, err := svc.ApplyMove(gameID, 3)
	if err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}
	if result.Game.Status != core.StatusWon {
		t.Fatalf("status = %v, want won", result.Game.Status)
	}
	if result.Message != MsgWin {
		t.Errorf("message = %q, want %q", result.Message, MsgWin)
	}
	if result.Game.FinishedAt == nil {
		t.Error("finished_at not set on won game")
	}

	// The winning move ends the exchange: the computer must not reply
	human, computer := countDiscs(t, svc, gameID)
	if human != 4 || computer != 0 {
		t.Errorf("discs = %d human, %d computer, want 4 and 0", human, computer)
	}

	scores, err := svc.ListScores("alice")
	if err != nil {
		t.Fatalf("ListScores: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("scores = %d, want 1", len(scores))
	}
	if !scores[0].Score.Won {
		t.Error("score records a loss, want a win")
	}

	// Settled games reject further play and cancellation
	if _, err := svc.ApplyMove(gameID, 0); !errors.Is(err, ErrGameOver) {
		t.Errorf("move on won game: got %v, want ErrGameOver", err)
	}
	if _, err := svc.Cancel(gameID); !errors.Is(err, ErrGameOver) {
		t.Errorf("cancel on won game: got %v, want ErrGameOver", err)
	}
}

func TestApplyMoveLoss(t *testing.T) {
	svc := newTestService(t)
	view, user := newTestGame(t, svc, 4, 4)
	gameID := view.Game.GameID
	x, o := user.UserID, svc.computerID

	// Columns 0-2 full, column 3 half full; the only legal reply lands the
	// computer on (3,3) and completes the rising diagonal from (0,0).
	seedDiscs(t, svc, gameID, []storage.DiscRecord{
		{UserID: o, Column: 0, Row: 0}, {UserID: x, Column: 0, Row: 1},
		{UserID: x, Column: 0, Row: 2}, {UserID: o, Column: 0, Row: 3},
		{UserID: x, Column: 1, Row: 0}, {UserID: o, Column: 1, Row: 1},
		{UserID: x, Column: 1, Row: 2}, {UserID: o, Column: 1, Row: 3},
		{UserID: x, Column: 2, Row: 0}, {UserID: x, Column: 2, Row: 1},
		{UserID: o, Column: 2, Row: 2}, {UserID: x, Column: 2, Row: 3},
		{UserID: x, Column: 3, Row: 0}, {UserID: o, Column: 3, Row: 1},
	})

	result, err := svc.ApplyMove(gameID, 3)
	if err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}
	if result.Game.Status != core.StatusLost {
		t.Fatalf("status = %v, want lost", result.Game.Status)
	}
	if result.Message != MsgLoss {
		t.Errorf("message = %q, want %q", result.Message, MsgLoss)
	}

	scores, err := svc.ListScores("alice")
	if err != nil {
		t.Fatalf("ListScores: %v", err)
	}
	if len(scores) != 1 || scores[0].Score.Won {
		t.Fatalf("scores = %+v, want one losing entry", scores)
	}
}

func TestApplyMoveDrawPlayerLast(t *testing.T) {
	svc := newTestService(t)
	view, user := newTestGame(t, svc, 4, 4)
	gameID := view.Game.GameID

	seedDiscs(t, svc, gameID, drawGrid(user.UserID, svc.computerID, [2]int{3, 3}))

	result, err := svc.ApplyMove(gameID, 3)
	if err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}
	if result.Game.Status != core.StatusDrawn {
		t.Fatalf("status = %v, want drawn", result.Game.Status)
	}
	if result.Message != MsgDrawPlayer {
		t.Errorf("message = %q, want %q", result.Message, MsgDrawPlayer)
	}

	scores, err := svc.ListScores("alice")
	if err != nil {
		t.Fatalf("ListScores: %v", err)
	}
	if len(scores) != 1 || scores[0].Score.Won {
		t.Fatalf("scores = %+v, want one losing entry", scores)
	}
}

func TestApplyMoveDrawComputerLast(t *testing.T) {
	svc := newTestService(t)
	view, user := newTestGame(t, svc, 4, 4)
	gameID := view.Game.GameID

	// Two free cells in column 3: the player takes (3,2), the forced reply
	// fills (3,3) and the board is full with no winner.
	seedDiscs(t, svc, gameID, drawGrid(user.UserID, svc.computerID,
		[2]int{3, 2}, [2]int{3, 3}))

	result, err := svc.ApplyMove(gameID, 3)
	if err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}
	if result.Game.Status != core.StatusDrawn {
		t.Fatalf("status = %v, want drawn", result.Game.Status)
	}
	if result.Message != MsgDrawComputer {
		t.Errorf("message = %q, want %q", result.Message, MsgDrawComputer)
	}
}

func TestApplyMoveInvalidColumn(t *testing.T) {
	svc := newTestService(t)
	view, _ := newTestGame(t, svc, 4, 4)
	gameID := view.Game.GameID

	for _, column := range []int{-1, 4, 99} {
		if _, err := svc.ApplyMove(gameID, column); !errors.Is(err, game.ErrInvalidColumn) {
			t.Errorf("column %d: got %v, want ErrInvalidColumn", column, err)
		}
	}

	// Rejected moves leave no trace
	human, computer := countDiscs(t, svc, gameID)
	if human != 0 || computer != 0 {
		t.Errorf("discs after rejected moves = %d/%d, want none", human, computer)
	}
}

func TestApplyMoveColumnFull(t *testing.T) {
	svc := newTestService(t)
	view, user := newTestGame(t, svc, 4, 4)
	gameID := view.Game.GameID
	x, o := user.UserID, svc.computerID

	seedDiscs(t, svc, gameID, []storage.DiscRecord{
		{UserID: x, Column: 0, Row: 0}, {UserID: o, Column: 0, Row: 1},
		{UserID: x, Column: 0, Row: 2}, {UserID: o, Column: 0, Row: 3},
	})

	if _, err := svc.ApplyMove(gameID, 0); !errors.Is(err, game.ErrColumnFull) {
		t.Fatalf("move into full column: got %v, want ErrColumnFull", err)
	}

	human, computer := countDiscs(t, svc, gameID)
	if human+computer != 4 {
		t.Errorf("discs = %d, want the 4 seeded ones", human+computer)
	}

	got, err := svc.GetGame(gameID)
	if err != nil {
		t.Fatalf("GetGame: %v", err)
	}
	if got.Game.Moves != 0 {
		t.Errorf("moves = %d, want 0 after rejected move", got.Game.Moves)
	}
}

func TestApplyMoveUnknownGame(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.ApplyMove("no-such-game", 0); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("got %v, want ErrGameNotFound", err)
	}
}

func TestCancel(t *testing.T) {
	svc := newTestService(t)
	view, _ := newTestGame(t, svc, 0, 0)
	gameID := view.Game.GameID

	result, err := svc.Cancel(gameID)
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if result.Game.Status != core.StatusCanceled {
		t.Fatalf("status = %v, want canceled", result.Game.Status)
	}
	if result.Game.FinishedAt == nil {
		t.Error("finished_at not set on canceled game")
	}
	if result.Message != MsgCanceled {
		t.Errorf("message = %q, want %q", result.Message, MsgCanceled)
	}

	// Canceled games are distinguishable from finished ones
	if _, err := svc.ApplyMove(gameID, 0); !errors.Is(err, ErrGameCanceled) {
		t.Errorf("move on canceled game: got %v, want ErrGameCanceled", err)
	}
	if _, err := svc.Cancel(gameID); !errors.Is(err, ErrGameCanceled) {
		t.Errorf("second cancel: got %v, want ErrGameCanceled", err)
	}

	// Cancellation does not score
	scores, err := svc.ListScores("alice")
	if err != nil {
		t.Fatalf("ListScores: %v", err)
	}
	if len(scores) != 0 {
		t.Errorf("scores = %d, want none for a canceled game", len(scores))
	}
}

func TestListGamesActiveFilter(t *testing.T) {
	svc := newTestService(t)
	first, _ := newTestGame(t, svc, 0, 0)

	second, err := svc.CreateGame("alice", 0, 0)
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	if _, err := svc.Cancel(second.Game.GameID); err != nil {
		t.Fatalf("Cancel: %v", err)
	}

	active, err := svc.ListGames("alice", true)
	if err != nil {
		t.Fatalf("ListGames(active): %v", err)
	}
	if len(active) != 1 || active[0].Game.GameID != first.Game.GameID {
		t.Fatalf("active games = %d, want only the open one", len(active))
	}

	all, err := svc.ListGames("alice", false)
	if err != nil {
		t.Fatalf("ListGames(all): %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("all games = %d, want 2", len(all))
	}
}

func TestGameHistory(t *testing.T) {
	svc := newTestService(t)
	view, _ := newTestGame(t, svc, 0, 0)
	gameID := view.Game.GameID

	if _, err := svc.ApplyMove(gameID, 2); err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}

	// History goes through the async writer; poll until it lands
	var entries []storage.HistoryRecord
	deadline := time.Now().Add(2 * time.Second)
	for {
		var err error
		entries, err = svc.GameHistory(gameID)
		if err != nil {
			t.Fatalf("GameHistory: %v", err)
		}
		if len(entries) >= 3 || time.Now().After(deadline) {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	if len(entries) != 3 {
		t.Fatalf("history entries = %d, want 3 (created + both half-moves)", len(entries))
	}
	if entries[0].Message != MsgGameCreated {
		t.Errorf("first entry = %q, want %q", entries[0].Message, MsgGameCreated)
	}
	if entries[1].MoveColumn == nil || *entries[1].MoveColumn != 2 {
		t.Errorf("player half-move entry column = %v, want 2", entries[1].MoveColumn)
	}

	if _, err := svc.GameHistory("no-such-game"); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("unknown game history: got %v, want ErrGameNotFound", err)
	}
}

func TestGameBoardASCII(t *testing.T) {
	svc := newTestService(t)
	view, user := newTestGame(t, svc, 4, 4)
	gameID := view.Game.GameID

	seedDiscs(t, svc, gameID, []storage.DiscRecord{
		{UserID: user.UserID, Column: 0, Row: 0},
		{UserID: svc.computerID, Column: 1, Row: 0},
	})

	ascii, err := svc.GameBoard(gameID)
	if err != nil {
		t.Fatalf("GameBoard: %v", err)
	}

	lines := strings.Split(strings.TrimRight(ascii, "\n"), "\n")
	if len(lines) != 6 { // 4 grid rows + separator + column labels
		t.Fatalf("board lines = %d, want 6:\n%s", len(lines), ascii)
	}
	bottom := lines[3]
	if !strings.Contains(bottom, "X") || !strings.Contains(bottom, "O") {
		t.Errorf("bottom row %q should show both players' discs", bottom)
	}

	if _, err := svc.GameBoard("no-such-game"); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("unknown game board: got %v, want ErrGameNotFound", err)
	}
}

func TestPruneLocks(t *testing.T) {
	svc := newTestService(t)
	view, _ := newTestGame(t, svc, 0, 0)
	gameID := view.Game.GameID

	if _, err := svc.ApplyMove(gameID, 0); err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}
	if _, err := svc.Cancel(gameID); err != nil {
		t.Fatalf("Cancel: %v", err)
	}

	svc.PruneLocks()

	svc.mu.Lock()
	_, held := svc.locks[gameID]
	svc.mu.Unlock()
	if held {
		t.Error("lock for canceled game survived pruning")
	}
}
