// FILE: connect4/internal/client/commands/user.go
package commands

import (
	"fmt"

	"connect4/internal/client/api"
	"connect4/internal/client/display"
	"connect4/internal/client/session"
)

func (r *Registry) registerUserCommands() {
	r.Register(&Command{
		Name:        "register",
		ShortName:   "r",
		Description: "Register a new user",
		Usage:       "register <username> [email]",
		Handler:     registerHandler,
	})

	r.Register(&Command{
		Name:        "user",
		ShortName:   "u",
		Description: "Set the active username",
		Usage:       "user <username>",
		Handler:     userHandler,
	})

	r.Register(&Command{
		Name:        "scores",
		ShortName:   "c",
		Description: "Show finished-game scores",
		Usage:       "scores [username]",
		Handler:     scoresHandler,
	})

	r.Register(&Command{
		Name:        "rankings",
		ShortName:   "k",
		Description: "Show player rankings by win ratio",
		Usage:       "rankings",
		Handler:     rankingsHandler,
	})

	r.Register(&Command{
		Name:        "stats",
		ShortName:   "t",
		Description: "Show average moves remaining across active games",
		Usage:       "stats",
		Handler:     statsHandler,
	})
}

func registerHandler(s *session.Session, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: register <username> [email]")
	}

	email := ""
	if len(args) > 1 {
		email = args[1]
	}

	resp, err := s.Client.CreateUser(args[0], email)
	if err != nil {
		return err
	}

	s.Username = resp.Username
	fmt.Printf("%sRegistered user: %s%s\n", display.Green, resp.Username, display.Reset)
	return nil
}

func userHandler(s *session.Session, args []string) error {
	if len(args) == 0 {
		if s.Username == "" {
			fmt.Println("No user set")
		} else {
			fmt.Printf("Current user: %s%s%s\n", display.Magenta, s.Username, display.Reset)
		}
		return nil
	}

	s.Username = args[0]
	s.CurrentGame = ""
	s.LastStatus = ""
	fmt.Printf("%sActive user set to: %s%s\n", display.Cyan, s.Username, display.Reset)
	return nil
}

func scoresHandler(s *session.Session, args []string) error {
	var resp *api.ScoreListResponse
	var err error
	title := "All scores"

	if len(args) > 0 {
		resp, err = s.Client.UserScores(args[0])
		title = "Scores for " + args[0]
	} else if s.Username != "" {
		resp, err = s.Client.UserScores(s.Username)
		title = "Scores for " + s.Username
	} else {
		resp, err = s.Client.Scores()
	}
	if err != nil {
		return err
	}

	if len(resp.Scores) == 0 {
		fmt.Println("No scores yet")
		return nil
	}

	fmt.Printf("\n%s%s:%s\n", display.Cyan, title, display.Reset)
	for _, score := range resp.Scores {
		result := display.Red + "lost" + display.Reset
		if score.Won {
			result = display.Green + "won " + display.Reset
		}
		fmt.Printf("  %s  %-16s %s  moves:%d\n",
			score.Date.Format("2006-01-02 15:04"), score.Username, result, score.Moves)
	}
	return nil
}

func rankingsHandler(s *session.Session, args []string) error {
	resp, err := s.Client.Rankings()
	if err != nil {
		return err
	}

	if len(resp.Rankings) == 0 {
		fmt.Println("No rankings yet")
		return nil
	}

	fmt.Printf("\n%sRankings:%s\n", display.Cyan, display.Reset)
	for i, rank := range resp.Rankings {
		fmt.Printf("  %2d. %-16s %d/%d (%.2f)\n",
			i+1, rank.Username, rank.Wins, rank.Games, rank.WinRatio)
	}
	return nil
}

func statsHandler(s *session.Session, args []string) error {
	resp, err := s.Client.Stats()
	if err != nil {
		return err
	}

	source := "computed"
	if resp.Cached {
		source = "cached"
	}
	fmt.Printf("\nActive games: %d\n", resp.ActiveGames)
	fmt.Printf("Average moves remaining: %s%.2f%s (%s)\n",
		display.Cyan, resp.AverageMovesRemaining, display.Reset, source)
	return nil
}
