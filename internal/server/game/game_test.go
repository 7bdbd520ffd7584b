package game

import (
	"errors"
	"testing"

	"connect4/internal/server/core"
)

func TestNewGameDefaults(t *testing.T) {
	tests := []struct {
		name          string
		rows, columns int
		wantRows      int
		wantCols      int
	}{
		{"explicit classic", 6, 7, 6, 7},
		{"zero falls back", 0, 0, 6, 7},
		{"below minimum falls back", 3, 3, 6, 7},
		{"above maximum falls back", 40, 40, 6, 7},
		{"minimum accepted", 4, 4, 4, 4},
		{"maximum accepted", 16, 16, 16, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New("game-1", "user-1", tt.rows, tt.columns)
			if g.Rows != tt.wantRows || g.Columns != tt.wantCols {
				t.Errorf("got %dx%d, want %dx%d", g.Rows, g.Columns, tt.wantRows, tt.wantCols)
			}
			if g.Status != core.StatusActive {
				t.Errorf("new game status = %s, want active", g.Status)
			}
			if g.Moves != 0 {
				t.Errorf("new game moves = %d, want 0", g.Moves)
			}
			if g.FinishedAt != nil {
				t.Error("new game already has a finish time")
			}
		})
	}
}

func TestResolveMove(t *testing.T) {
	g := New("game-1", "user-1", 6, 7)

	tests := []struct {
		name    string
		column  int
		count   int
		wantRow int
		wantErr error
	}{
		{"first disc lands on bottom", 0, 0, 0, nil},
		{"stacks on existing discs", 3, 4, 4, nil},
		{"last free row", 6, 5, 5, nil},
		{"negative column", -1, 0, -1, ErrInvalidColumn},
		{"column beyond grid", 7, 0, -1, ErrInvalidColumn},
		{"column already full", 2, 6, -1, ErrColumnFull},
		{"count past full", 2, 9, -1, ErrColumnFull},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, err := g.ResolveMove(tt.column, tt.count)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if row != tt.wantRow {
				t.Errorf("row = %d, want %d", row, tt.wantRow)
			}
		})
	}
}

func TestFinishSetsTerminalState(t *testing.T) {
	g := New("game-1", "user-1", 6, 7)
	g.Finish(core.StatusWon)

	if g.Status != core.StatusWon {
		t.Errorf("status = %s, want won", g.Status)
	}
	if !g.Status.Terminal() {
		t.Error("won status not reported terminal")
	}
	if g.FinishedAt == nil {
		t.Error("finish time not recorded")
	}
}
