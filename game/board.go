package game

import (
	"math/rand"
	"time"
)

type BoardState int

const (
	Ongoing BoardState = iota
	Won
	Lost
)

// Config carries the constructor arguments for a Board. The zero Seed
// asks for a time-based seed; any other value makes mine placement
// reproducible.
type Config struct {
	Width, Height uint
	NumMines      uint

	Seed int64

	// BlinkPeriod is the cursor blink cycle length, in ticks.
	BlinkPeriod uint
	// TickIdle is how often the driver should call Tick. The board only
	// stores it; the driver owns the actual timing source.
	TickIdle time.Duration
}

func NewConfig() Config {
	return Config{
		Width:       30,
		Height:      16,
		NumMines:    99,
		BlinkPeriod: 80,
		TickIdle:    10 * time.Millisecond,
	}
}

// Board is the minefield engine: grid state, mine placement, reveal
// cascades, win/loss detection, and the per-cell presentation it feeds
// to its render sink. One Board is one game; there is no in-place
// reset, callers build a fresh Board instead.
//
// The Board is single-owner and synchronous: every operation runs to
// completion, and nothing here is safe for concurrent use.
type Board struct {
	width, height uint
	numMines      uint
	cells         [][]Cell

	state       BoardState
	openedCount uint
	minesPlaced bool

	cursorRow, cursorCol uint

	tickCount   uint
	blinkPeriod uint
	tickIdle    time.Duration

	rand *rand.Rand
	sink CellWriter
}

func NewBoard(config Config, sink CellWriter) *Board {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	board := &Board{
		width:       config.Width,
		height:      config.Height,
		numMines:    config.NumMines,
		cells:       make([][]Cell, config.Height),
		state:       Ongoing,
		blinkPeriod: config.BlinkPeriod,
		tickIdle:    config.TickIdle,
		rand:        rand.New(rand.NewSource(seed)),
		sink:        sink,
	}
	for row := range board.cells {
		board.cells[row] = make([]Cell, config.Width)
	}

	return board
}

func (board *Board) Width() uint {
	return board.width
}

func (board *Board) Height() uint {
	return board.height
}

func (board *Board) NumCells() uint {
	return board.width * board.height
}

func (board *Board) NumMines() uint {
	return board.numMines
}

func (board *Board) State() BoardState {
	return board.state
}

func (board *Board) Exploded() bool {
	return board.state == Lost
}

func (board *Board) Succeeded() bool {
	return board.state == Won
}

func (board *Board) IsEnd() bool {
	return board.state != Ongoing
}

// OpenedCount returns the number of cells revealed by play. Mines and
// end-of-game force-opens are not counted.
func (board *Board) OpenedCount() uint {
	return board.openedCount
}

func (board *Board) Cursor() (row, col uint) {
	return board.cursorRow, board.cursorCol
}

func (board *Board) CellAt(x, y uint) Cell {
	return board.cells[y][x]
}

func (board *Board) TickIdle() time.Duration {
	return board.tickIdle
}

// placeMines populates the grid, at most once per board. Mines land on
// a uniform shuffle of all cell indexes, skipping the excluded cell so
// the first reveal is safe. The one exception is the fill-all board
// (NumMines == NumCells), where the excluded cell is a mine like every
// other: placement stays uniform for the degenerate case, even though
// it guarantees the first click loses.
func (board *Board) placeMines(excludeRow, excludeCol uint) {
	fillAll := board.numMines == board.NumCells()

	indexes := make([]uint, board.NumCells())
	for i := range indexes {
		indexes[i] = uint(i)
	}
	board.rand.Shuffle(len(indexes), func(i, j int) {
		indexes[i], indexes[j] = indexes[j], indexes[i]
	})

	placed := uint(0)
	for _, idx := range indexes {
		if placed >= board.numMines {
			break
		}
		row, col := idx/board.width, idx%board.width
		if !fillAll && row == excludeRow && col == excludeCol {
			continue
		}
		board.cells[row][col].setMine()
		placed++
	}

	for row := uint(0); row < board.height; row++ {
		for col := uint(0); col < board.width; col++ {
			cell := &board.cells[row][col]
			if cell.IsMine() {
				continue
			}
			cell.setValue(board.countMineNeighbors(row, col))
		}
	}

	board.minesPlaced = true
}

// neighborRange clamps the 8-neighborhood of (row, col) to the grid,
// returning inclusive row and column bounds.
func (board *Board) neighborRange(row, col uint) (rowStart, rowEnd, colStart, colEnd uint) {
	rowStart, rowEnd, colStart, colEnd = row, row, col, col
	if row > 0 {
		rowStart = row - 1
	}
	if row < board.height-1 {
		rowEnd = row + 1
	}
	if col > 0 {
		colStart = col - 1
	}
	if col < board.width-1 {
		colEnd = col + 1
	}
	return
}

func (board *Board) countMineNeighbors(row, col uint) uint {
	count := uint(0)
	rowStart, rowEnd, colStart, colEnd := board.neighborRange(row, col)
	for r := rowStart; r <= rowEnd; r++ {
		for c := colStart; c <= colEnd; c++ {
			if r == row && c == col {
				continue
			}
			if board.cells[r][c].IsMine() {
				count++
			}
		}
	}
	return count
}

// Reveal opens the cell at (row, col). The very first reveal for the
// board places the mines, excluding the target. It reports false only
// when this exact call detonated a mine; once the game is over, Reveal
// is an idempotent no-op that reports true.
func (board *Board) Reveal(row, col uint) bool {
	if board.state != Ongoing {
		return true
	}
	if !board.minesPlaced {
		board.placeMines(row, col)
	}

	if board.cells[row][col].IsOpened() {
		return true
	}
	if board.cells[row][col].IsMine() {
		// The mine cell stays closed: its raw value is the signal for
		// the detonated rendering.
		board.state = Lost
		return false
	}

	board.floodOpen(row, col)

	if board.openedCount+board.numMines == board.NumCells() {
		board.state = Won
	}
	return true
}

// RevealCursor reveals the cell under the cursor.
func (board *Board) RevealCursor() bool {
	return board.Reveal(board.cursorRow, board.cursorCol)
}

// RevealAll force-opens every cell and redraws, so the final board can
// be shown after a win or an explosion. Cells that were still closed
// are tagged force-opened for the distinct end-of-game color; the
// opened counter keeps its play-time value.
func (board *Board) RevealAll() error {
	for row := range board.cells {
		for col := range board.cells[row] {
			board.cells[row][col].markOpened(true)
		}
	}
	return board.Refresh()
}

func (board *Board) MoveUp() {
	if board.cursorRow > 0 {
		board.cursorRow--
	}
}

func (board *Board) MoveDown() {
	if board.cursorRow < board.height-1 {
		board.cursorRow++
	}
}

func (board *Board) MoveLeft() {
	if board.cursorCol > 0 {
		board.cursorCol--
	}
}

func (board *Board) MoveRight() {
	if board.cursorCol < board.width-1 {
		board.cursorCol++
	}
}

// SetCursor moves the cursor to an absolute position, for pointer
// input. It reports false and leaves the cursor alone when (x, y) is
// outside the grid.
func (board *Board) SetCursor(x, y uint) bool {
	if x >= board.width || y >= board.height {
		return false
	}
	board.cursorCol, board.cursorRow = x, y
	return true
}
