// FILE: connect4/internal/server/service/score.go
package service

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"time"

	"connect4/internal/server/core"
	"connect4/internal/server/storage"
)

const (
	statsCacheKey = "connect4:stats:average_moves_remaining"
	statsCacheTTL = time.Minute
)

// ScoreView pairs a score row with the scoring player's username.
type ScoreView struct {
	Username string
	Score    storage.ScoreRecord
}

// ListScores returns recorded outcomes, newest first, optionally filtered
// by player.
func (s *Service) ListScores(username string) ([]ScoreView, error) {
	userID := ""
	if username != "" {
		user, err := s.GetUserByName(username)
		if err != nil {
			return nil, err
		}
		userID = user.UserID
	}

	records, err := s.store.ListScores(userID)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string)
	views := make([]ScoreView, 0, len(records))
	for _, rec := range records {
		name, ok := names[rec.UserID]
		if !ok {
			user, err := s.store.GetUserByID(rec.UserID)
			if err != nil {
				return nil, err
			}
			name = user.Username
			names[rec.UserID] = name
		}
		views = append(views, ScoreView{Username: name, Score: rec})
	}
	return views, nil
}

// Rankings orders players by win ratio, highest first. Players with equal
// ratios tie-break on username so the order is deterministic. Players with
// no finished games have no ratio and are omitted.
func (s *Service) Rankings() ([]core.RankingResponse, error) {
	tallies, err := s.store.ScoreTallies()
	if err != nil {
		return nil, err
	}

	rankings := make([]core.RankingResponse, 0, len(tallies))
	for _, t := range tallies {
		if t.Games == 0 {
			continue
		}
		rankings = append(rankings, core.RankingResponse{
			Username: t.Username,
			Wins:     t.Wins,
			Games:    t.Games,
			WinRatio: float64(t.Wins) / float64(t.Games),
		})
	}

	sort.Slice(rankings, func(i, j int) bool {
		if rankings[i].WinRatio != rankings[j].WinRatio {
			return rankings[i].WinRatio > rankings[j].WinRatio
		}
		return rankings[i].Username < rankings[j].Username
	})
	return rankings, nil
}

// AverageMovesRemaining reports how many free cells the average open game
// still has. The figure is a projection over all active games and is served
// from cache when one is configured.
func (s *Service) AverageMovesRemaining(ctx context.Context) (*core.StatsResponse, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, statsCacheKey); err == nil {
			var stats core.StatsResponse
			if err := json.Unmarshal([]byte(cached), &stats); err == nil {
				stats.Cached = true
				return &stats, nil
			}
		}
	}

	capacities, placed, err := s.store.ActiveGameCells()
	if err != nil {
		return nil, err
	}

	stats := &core.StatsResponse{ActiveGames: len(capacities)}
	if len(capacities) > 0 {
		remaining := 0
		for i := range capacities {
			remaining += capacities[i] - placed[i]
		}
		stats.AverageMovesRemaining = float64(remaining) / float64(len(capacities))
	}

	if s.cache != nil {
		payload, err := json.Marshal(stats)
		if err == nil {
			if err := s.cache.Set(ctx, statsCacheKey, string(payload), statsCacheTTL); err != nil {
				log.Printf("Stats cache write failed: %v", err)
			}
		}
	}
	return stats, nil
}
