package game

import (
	"math/rand"

	"github.com/ar90n/textual-snake-game/internal/geom"
)

// placeFood picks a uniformly random free cell for the food. It rejection-
// samples random cells first, which is cheap while the board is mostly empty,
// then falls back to enumerating every free cell so termination is guaranteed
// as the snake fills the board. The second return is false when no free cell
// remains (board full).
func placeFood(rng *rand.Rand, board Board, snake *Snake) (geom.Position, bool) {
	if snake.Length() >= board.Cells() {
		return geom.Position{}, false
	}

	for i := 0; i < placementAttempts; i++ {
		p := geom.Position{
			X: rng.Intn(board.Width),
			Y: rng.Intn(board.Height),
		}
		if !snake.Occupies(p) {
			return p, true
		}
	}

	// High occupancy: enumerate the free cells and pick one uniformly.
	free := make([]geom.Position, 0, board.Cells()-snake.Length())
	for y := 0; y < board.Height; y++ {
		for x := 0; x < board.Width; x++ {
			p := geom.Position{X: x, Y: y}
			if !snake.Occupies(p) {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		return geom.Position{}, false
	}
	return free[rng.Intn(len(free))], true
}
