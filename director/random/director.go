package random

import (
	"math/rand"
	"time"

	"github.com/they4kman/minefield/game"
)

// Director plays by revealing random closed cells, one per step. It
// only goes through the public board surface: move the cursor, reveal
// under it.
type Director struct {
	rand *rand.Rand
}

func New(seed int64) *Director {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Director{rand: rand.New(rand.NewSource(seed))}
}

func (director *Director) Cadence() time.Duration {
	return 500 * time.Millisecond
}

func (director *Director) Act(board *game.Board) {
	closed := make([][2]uint, 0, board.NumCells())
	for y := uint(0); y < board.Height(); y++ {
		for x := uint(0); x < board.Width(); x++ {
			if !board.CellAt(x, y).IsOpened() {
				closed = append(closed, [2]uint{x, y})
			}
		}
	}
	if len(closed) == 0 {
		return
	}

	pick := closed[director.rand.Intn(len(closed))]
	board.SetCursor(pick[0], pick[1])
	board.RevealCursor()
}
