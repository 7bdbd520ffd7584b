// FILE: connect4/cmd/connect4-client/main.go
// Package main implements an interactive debugging client for the connect4 server API.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"connect4/internal/client/api"
	"connect4/internal/client/commands"
	"connect4/internal/client/display"
	"connect4/internal/client/session"

	"github.com/chzyer/readline"
)

func main() {
	s := &session.Session{
		APIBaseURL: "http://localhost:8080",
		Client:     api.New("http://localhost:8080"),
		Verbose:    false,
	}

	// Initialize readline
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          display.Prompt("connect4"),
		HistoryFile:     ".connect4_history",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Printf("%s%s%s\n", display.Red, err.Error(), display.Reset)
		os.Exit(1)
	}
	defer rl.Close()

	fmt.Printf("%sConnect4 Debug Client%s\n", display.Cyan, display.Reset)
	fmt.Printf("%sAPI: %s%s\n", display.Cyan, s.APIBaseURL, display.Reset)
	fmt.Printf("Type 'help' for commands\n\n")

	registry := commands.NewRegistry(s)

	for {
		// Build enhanced prompt
		prompt := buildPrompt(s)
		rl.SetPrompt(prompt)

		line, err := rl.Readline()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if line == "exit" || line == "quit" || line == "x" {
			break
		}

		// Check for verbose flag
		if strings.HasSuffix(line, " -v") {
			s.Verbose = true
			line = strings.TrimSuffix(line, " -v")
		} else {
			s.Verbose = false
		}

		registry.Execute(line)
	}
}

func buildPrompt(s *session.Session) string {
	parts := []string{}

	// Base
	base := "connect4"

	// Add user/game context
	if s.Username != "" {
		parts = append(parts, fmt.Sprintf("%s%s%s", display.Magenta, s.Username, display.Reset))
	}
	if s.Username != "" && s.CurrentGame != "" {
		parts = append(parts, fmt.Sprintf("%s - %s", display.Yellow, display.Reset))
	}
	if s.CurrentGame != "" {
		parts = append(parts, fmt.Sprintf("%s%s%s", display.White, s.CurrentGame[:8], display.Reset))
	}

	// Build first part
	promptStr := base
	if len(parts) > 0 {
		promptStr += display.Yellow + " [" + display.Reset + strings.Join(parts, "") + display.Yellow + "]"
	}

	// Add game status if known
	if s.LastStatus != "" {
		promptStr += " - " + display.StatusText(s.LastStatus)
	}

	return display.Prompt(promptStr)
}
