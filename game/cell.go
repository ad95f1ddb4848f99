package game

import "fmt"

// Cell is one grid position, packed into a single byte.
//
// The lower nibble holds the cell value: 0 for no adjacent mines, 1-8
// for the adjacent mine count, 15 for a mine. Values 9-14 are reserved.
// The upper nibble holds state flags. Callers never touch the raw bits;
// everything goes through the accessors below.
type Cell byte

const (
	cellValueMask Cell = 0x0f
	cellMine      Cell = 0x0f

	flagOpened   Cell = 0x10
	flagQuestion Cell = 0x20 // reserved: question mark, never set
	flagFlag     Cell = 0x40 // reserved: flag mark, never set
	flagEnding   Cell = 0x80 // opened by the end-of-game reveal
)

func (cell Cell) String() string {
	return fmt.Sprintf("Cell(%#02x)", byte(cell))
}

// Value returns the lower nibble: the adjacent mine count, or 15 for a
// mine cell.
func (cell Cell) Value() uint {
	return uint(cell & cellValueMask)
}

func (cell Cell) IsMine() bool {
	return cell&cellValueMask == cellMine
}

func (cell Cell) IsOpened() bool {
	return cell&flagOpened != 0
}

// IsForceOpened reports whether the cell was opened by RevealAll rather
// than by play, which selects the end-of-game color pair.
func (cell Cell) IsForceOpened() bool {
	return cell&flagEnding != 0
}

func (cell *Cell) setMine() {
	*cell = (*cell &^ cellValueMask) | cellMine
}

func (cell *Cell) setValue(count uint) {
	*cell = (*cell &^ cellValueMask) | (Cell(count) & cellValueMask)
}

// markOpened sets the opened flag. Opening is monotonic: the flag never
// clears for the life of the board. With atEnding, a cell that was still
// closed is additionally tagged as force-opened.
func (cell *Cell) markOpened(atEnding bool) {
	if atEnding && !cell.IsOpened() {
		*cell |= flagEnding
	}
	*cell |= flagOpened
}
