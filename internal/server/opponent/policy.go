// FILE: connect4/internal/server/opponent/policy.go
package opponent

import (
	"errors"
	"math/rand"
)

// ErrNoLegalMove means every column is full. Callers check for a draw before
// asking for a move, so hitting this indicates a lifecycle bug upstream.
var ErrNoLegalMove = errors.New("no column with free capacity")

// ChooseColumn picks uniformly at random among columns whose disc count is
// below rows. Candidates are enumerated explicitly; rejection-sampling a
// random column until one fits would never terminate on a full board.
func ChooseColumn(counts []int, rows int) (int, error) {
	candidates := make([]int, 0, len(counts))
	for column, count := range counts {
		if count < rows {
			candidates = append(candidates, column)
		}
	}
	if len(candidates) == 0 {
		return -1, ErrNoLegalMove
	}
	return candidates[rand.Intn(len(candidates))], nil
}
