// FILE: connect4/internal/client/commands/game.go
package commands

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"connect4/internal/client/api"
	"connect4/internal/client/display"
	"connect4/internal/client/session"
)

func (r *Registry) registerGameCommands() {
	r.Register(&Command{
		Name:        "new",
		ShortName:   "n",
		Description: "Create a new game",
		Usage:       "new",
		Handler:     newGameHandler,
	})

	r.Register(&Command{
		Name:        "join",
		ShortName:   "j",
		Description: "Join/set current game ID",
		Usage:       "join <gameId>",
		Handler:     joinGameHandler,
	})

	r.Register(&Command{
		Name:        "move",
		ShortName:   "m",
		Description: "Drop a disc into a column",
		Usage:       "move <column>",
		Handler:     moveHandler,
	})

	r.Register(&Command{
		Name:        "show",
		ShortName:   "h",
		Description: "Show the board",
		Usage:       "show",
		Handler:     showBoardHandler,
	})

	r.Register(&Command{
		Name:        "state",
		ShortName:   "s",
		Description: "Show raw game JSON",
		Usage:       "state",
		Handler:     gameStateHandler,
	})

	r.Register(&Command{
		Name:        "history",
		ShortName:   "y",
		Description: "Show the game's move history",
		Usage:       "history",
		Handler:     historyHandler,
	})

	r.Register(&Command{
		Name:        "games",
		ShortName:   "g",
		Description: "List your games",
		Usage:       "games [all]",
		Handler:     listGamesHandler,
	})

	r.Register(&Command{
		Name:        "cancel",
		ShortName:   "d",
		Description: "Cancel a game",
		Usage:       "cancel [gameId]",
		Handler:     cancelGameHandler,
	})
}

func newGameHandler(s *session.Session, args []string) error {
	if s.Username == "" {
		return fmt.Errorf("no user set: use 'register <username>' or 'user <username>' first")
	}

	scanner := bufio.NewScanner(os.Stdin)

	fmt.Println("\n" + display.Cyan + "Creating new game..." + display.Reset)

	fmt.Print(display.Yellow + "Rows (4-16) [6]: " + display.Reset)
	scanner.Scan()
	rows, _ := strconv.Atoi(strings.TrimSpace(scanner.Text()))

	fmt.Print(display.Yellow + "Columns (4-16) [7]: " + display.Reset)
	scanner.Scan()
	columns, _ := strconv.Atoi(strings.TrimSpace(scanner.Text()))

	resp, err := s.Client.CreateGame(&api.CreateGameRequest{
		Username: s.Username,
		Rows:     rows,
		Columns:  columns,
	})
	if err != nil {
		return err
	}

	s.CurrentGame = resp.GameID
	s.LastStatus = resp.Status

	fmt.Printf("%sGame created: %s%s\n", display.Green, resp.GameID, display.Reset)
	fmt.Printf("%s%s%s\n", display.Cyan, resp.Message, display.Reset)
	return nil
}

func joinGameHandler(s *session.Session, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: join <gameId>")
	}

	resp, err := s.Client.GetGame(args[0])
	if err != nil {
		return err
	}

	s.CurrentGame = resp.GameID
	s.LastStatus = resp.Status
	if s.Username == "" {
		s.Username = resp.Username
	}

	fmt.Printf("%sCurrent game set to: %s%s\n", display.Cyan, resp.GameID, display.Reset)
	fmt.Printf("Status: %s, moves: %d\n", display.StatusText(resp.Status), resp.Moves)
	return nil
}

func moveHandler(s *session.Session, args []string) error {
	if s.CurrentGame == "" {
		return fmt.Errorf("no current game: use 'new' or 'join <gameId>'")
	}
	if len(args) == 0 {
		return fmt.Errorf("usage: move <column>")
	}

	column, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("column must be a number: %s", args[0])
	}

	resp, err := s.Client.MakeMove(s.CurrentGame, column)
	if err != nil {
		return err
	}

	s.LastStatus = resp.Status

	fmt.Printf("%s%s%s\n", display.Cyan, resp.Message, display.Reset)
	return showBoardHandler(s, nil)
}

func showBoardHandler(s *session.Session, args []string) error {
	if s.CurrentGame == "" {
		return fmt.Errorf("no current game: use 'new' or 'join <gameId>'")
	}

	resp, err := s.Client.GetBoard(s.CurrentGame)
	if err != nil {
		return err
	}

	fmt.Println()
	display.RenderBoard(resp.Board)
	return nil
}

func gameStateHandler(s *session.Session, args []string) error {
	if s.CurrentGame == "" {
		return fmt.Errorf("no current game: use 'new' or 'join <gameId>'")
	}

	resp, err := s.Client.GetGame(s.CurrentGame)
	if err != nil {
		return err
	}

	s.LastStatus = resp.Status
	display.PrettyPrintJSON(resp)
	return nil
}

func historyHandler(s *session.Session, args []string) error {
	if s.CurrentGame == "" {
		return fmt.Errorf("no current game: use 'new' or 'join <gameId>'")
	}

	resp, err := s.Client.GetHistory(s.CurrentGame)
	if err != nil {
		return err
	}

	if len(resp.Entries) == 0 {
		fmt.Println("No history yet")
		return nil
	}

	fmt.Printf("\n%sGame history:%s\n", display.Cyan, display.Reset)
	for i, entry := range resp.Entries {
		position := ""
		if entry.Column != nil && entry.Row != nil {
			position = fmt.Sprintf(" (column %d, row %d)", *entry.Column, *entry.Row)
		}
		fmt.Printf("  %2d. %s%s\n", i+1, entry.Message, position)
	}
	return nil
}

func listGamesHandler(s *session.Session, args []string) error {
	if s.Username == "" {
		return fmt.Errorf("no user set: use 'register <username>' or 'user <username>' first")
	}

	activeOnly := true
	if len(args) > 0 && args[0] == "all" {
		activeOnly = false
	}

	resp, err := s.Client.ListGames(s.Username, activeOnly)
	if err != nil {
		return err
	}

	if len(resp.Games) == 0 {
		fmt.Println("No games found")
		return nil
	}

	fmt.Printf("\n%sGames for %s:%s\n", display.Cyan, s.Username, display.Reset)
	for _, g := range resp.Games {
		marker := " "
		if g.GameID == s.CurrentGame {
			marker = "*"
		}
		fmt.Printf("  %s %s  %dx%d  moves:%d  %s\n",
			marker, g.GameID[:8], g.Rows, g.Columns, g.Moves, display.StatusText(g.Status))
	}
	return nil
}

func cancelGameHandler(s *session.Session, args []string) error {
	gameID := s.CurrentGame
	if len(args) > 0 {
		gameID = args[0]
	}
	if gameID == "" {
		return fmt.Errorf("usage: cancel [gameId]")
	}

	resp, err := s.Client.CancelGame(gameID)
	if err != nil {
		return err
	}

	if gameID == s.CurrentGame {
		s.LastStatus = resp.Status
	}

	fmt.Printf("%s%s%s\n", display.Yellow, resp.Message, display.Reset)
	return nil
}
