package core

// Error codes
const (
	ErrUserNotFound      = "USER_NOT_FOUND"
	ErrUserExists        = "USER_EXISTS"
	ErrGameNotFound      = "GAME_NOT_FOUND"
	ErrInvalidColumn     = "INVALID_COLUMN"
	ErrColumnFull        = "COLUMN_FULL"
	ErrGameOver          = "GAME_OVER"
	ErrGameCanceled      = "GAME_CANCELED"
	ErrNoLegalMove       = "NO_LEGAL_MOVE"
	ErrRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	ErrInvalidContent    = "INVALID_CONTENT_TYPE"
	ErrInvalidRequest    = "INVALID_REQUEST"
	ErrInternalError     = "INTERNAL_ERROR"
)
