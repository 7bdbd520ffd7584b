// FILE: connect4/internal/client/session/session.go
package session

import "connect4/internal/client/api"

// Session holds the interactive client's state between commands.
type Session struct {
	APIBaseURL  string
	Client      *api.Client
	Username    string
	CurrentGame string
	LastStatus  string // status of the current game, for the prompt
	Verbose     bool
}
