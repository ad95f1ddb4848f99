package game

import (
	"github.com/gammazero/deque"

	"github.com/they4kman/minefield/util/collections"
)

type gridPos struct {
	row, col uint
}

// floodOpen opens the target cell and, when it has no adjacent mines,
// cascades through its whole zero-valued region plus the numbered
// border around it. The cascade never reaches a mine: a zero-valued
// cell has no mine neighbors, and numbered cells do not propagate.
//
// The worklist keeps the cascade bounded by grid area instead of call
// stack depth.
func (board *Board) floodOpen(row, col uint) {
	visited := make(collections.Set[gridPos])
	var worklist deque.Deque[gridPos]

	origin := gridPos{row, col}
	visited.Add(origin)
	worklist.PushBack(origin)

	for worklist.Len() > 0 {
		pos := worklist.PopFront()
		cell := &board.cells[pos.row][pos.col]
		if cell.IsOpened() {
			continue
		}

		cell.markOpened(false)
		board.openedCount++

		if cell.Value() != 0 {
			continue
		}

		rowStart, rowEnd, colStart, colEnd := board.neighborRange(pos.row, pos.col)
		for r := rowStart; r <= rowEnd; r++ {
			for c := colStart; c <= colEnd; c++ {
				next := gridPos{r, c}
				if next == pos || visited.Contains(next) {
					continue
				}
				visited.Add(next)
				worklist.PushBack(next)
			}
		}
	}
}
