// FILE: connect4/internal/server/core/api.go
package core

import "time"

// Request types

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=1,max=40"`
	Email    string `json:"email,omitempty" validate:"omitempty,email,max=120"`
}

type CreateGameRequest struct {
	Username string `json:"username" validate:"required,min=1,max=40"`
	Rows     int    `json:"rows,omitempty" validate:"omitempty,min=4,max=16"`
	Columns  int    `json:"columns,omitempty" validate:"omitempty,min=4,max=16"`
}

// MoveRequest carries the target column. Column is a pointer so the
// required check does not reject the leftmost column (0).
type MoveRequest struct {
	Column *int `json:"column" validate:"required,min=0,max=15"`
}

// Response types

type UserResponse struct {
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type GameResponse struct {
	GameID   string `json:"gameId"`
	Username string `json:"username"`
	Rows     int    `json:"rows"`
	Columns  int    `json:"columns"`
	Moves    int    `json:"moves"`
	Status   string `json:"status"` // "active", "won", "lost", "drawn", "canceled"
	Message  string `json:"message,omitempty"`
}

type GameListResponse struct {
	Games []GameResponse `json:"games"`
}

type BoardResponse struct {
	GameID string `json:"gameId"`
	Board  string `json:"board"` // ASCII representation
}

type HistoryEntryResponse struct {
	Column    *int      `json:"column,omitempty"`
	Row       *int      `json:"row,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

type HistoryResponse struct {
	GameID  string                 `json:"gameId"`
	Entries []HistoryEntryResponse `json:"entries"`
}

type ScoreResponse struct {
	Username string    `json:"username"`
	Date     time.Time `json:"date"`
	Won      bool      `json:"won"`
	Moves    int       `json:"moves"`
}

type ScoreListResponse struct {
	Scores []ScoreResponse `json:"scores"`
}

type RankingResponse struct {
	Username string  `json:"username"`
	Wins     int     `json:"wins"`
	Games    int     `json:"games"`
	WinRatio float64 `json:"winRatio"`
}

type RankingListResponse struct {
	Rankings []RankingResponse `json:"rankings"`
}

type StatsResponse struct {
	ActiveGames           int     `json:"activeGames"`
	AverageMovesRemaining float64 `json:"averageMovesRemaining"`
	Cached                bool    `json:"cached"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}
