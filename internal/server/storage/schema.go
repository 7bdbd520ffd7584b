package storage

import "time"

// UserRecord represents a user account in the database
type UserRecord struct {
	UserID    string    `db:"user_id"`
	Username  string    `db:"username"`
	Email     string    `db:"email"`
	CreatedAt time.Time `db:"created_at"`
}

// GameRecord represents a row in the games table
type GameRecord struct {
	GameID     string     `db:"game_id"`
	UserID     string     `db:"user_id"`
	Rows       int        `db:"rows"`
	Columns    int        `db:"columns"`
	Moves      int        `db:"moves"`
	Status     string     `db:"status"`
	CreatedAt  time.Time  `db:"created_at"`
	FinishedAt *time.Time `db:"finished_at"`
}

// DiscRecord represents a placed piece; rows form a contiguous run from 0
// per (game, column)
type DiscRecord struct {
	DiscID   int64     `db:"disc_id"`
	GameID   string    `db:"game_id"`
	UserID   string    `db:"user_id"`
	Column   int       `db:"col"`
	Row      int       `db:"row"`
	PlacedAt time.Time `db:"placed_at"`
}

// ScoreRecord represents a completed game outcome from the human player's
// perspective
type ScoreRecord struct {
	ScoreID int64     `db:"score_id"`
	UserID  string    `db:"user_id"`
	GameID  string    `db:"game_id"`
	Won     bool      `db:"won"`
	Moves   int       `db:"moves"`
	Date    time.Time `db:"date"`
}

// HistoryRecord is an append-only audit entry, one per half-move or
// terminal outcome
type HistoryRecord struct {
	EntryID    int64     `db:"entry_id"`
	GameID     string    `db:"game_id"`
	MoveColumn *int      `db:"move_col"`
	MoveRow    *int      `db:"move_row"`
	Message    string    `db:"message"`
	CreatedAt  time.Time `db:"created_at"`
}

// Schema defines the SQLite database structure
const Schema = `
CREATE TABLE IF NOT EXISTS users (
	user_id TEXT PRIMARY KEY,
	username TEXT UNIQUE NOT NULL COLLATE NOCASE,
	email TEXT COLLATE NOCASE,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_users_username ON users(username);

CREATE TABLE IF NOT EXISTS games (
	game_id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	rows INTEGER NOT NULL,
	columns INTEGER NOT NULL,
	moves INTEGER NOT NULL DEFAULT 0,
	status TEXT NOT NULL DEFAULT 'active'
		CHECK(status IN ('active', 'won', 'lost', 'drawn', 'canceled')),
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	finished_at DATETIME,
	FOREIGN KEY (user_id) REFERENCES users(user_id)
);

CREATE INDEX IF NOT EXISTS idx_games_user_id ON games(user_id);
CREATE INDEX IF NOT EXISTS idx_games_status ON games(status);

CREATE TABLE IF NOT EXISTS discs (
	disc_id INTEGER PRIMARY KEY AUTOINCREMENT,
	game_id TEXT NOT NULL,
	user_id TEXT NOT NULL,
	col INTEGER NOT NULL,
	row INTEGER NOT NULL,
	placed_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (game_id) REFERENCES games(game_id) ON DELETE CASCADE,
	FOREIGN KEY (user_id) REFERENCES users(user_id),
	UNIQUE(game_id, col, row)
);

CREATE INDEX IF NOT EXISTS idx_discs_game_id ON discs(game_id);
CREATE INDEX IF NOT EXISTS idx_discs_game_col ON discs(game_id, col);

CREATE TABLE IF NOT EXISTS scores (
	score_id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id TEXT NOT NULL,
	game_id TEXT NOT NULL,
	won INTEGER NOT NULL,
	moves INTEGER NOT NULL,
	date DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (user_id) REFERENCES users(user_id),
	FOREIGN KEY (game_id) REFERENCES games(game_id) ON DELETE CASCADE,
	UNIQUE(game_id)
);

CREATE INDEX IF NOT EXISTS idx_scores_user_id ON scores(user_id);

CREATE TABLE IF NOT EXISTS history (
	entry_id INTEGER PRIMARY KEY AUTOINCREMENT,
	game_id TEXT NOT NULL,
	move_col INTEGER,
	move_row INTEGER,
	message TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (game_id) REFERENCES games(game_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_history_game_id ON history(game_id);
`
