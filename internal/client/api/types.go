// FILE: connect4/internal/client/api/types.go
package api

import "time"

// Request types mirror the server's API contracts

type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

type CreateGameRequest struct {
	Username string `json:"username"`
	Rows     int    `json:"rows,omitempty"`
	Columns  int    `json:"columns,omitempty"`
}

type MoveRequest struct {
	Column *int `json:"column"`
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
	Status   string `json:"status"`
	Message  string `json:"message,omitempty"`
}

type GameListResponse struct {
	Games []GameResponse `json:"games"`
}

type BoardResponse struct {
	GameID string `json:"gameId"`
	Board  string `json:"board"`
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

type HealthResponse struct {
	Status  string `json:"status"`
	Time    int64  `json:"time"`
	Storage bool   `json:"storage"`
}
