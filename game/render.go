package game

// CellWriter is the render sink the Board drives. Write draws a single
// cell's text at grid coordinate (x, y) with the given color-pair
// codes. The style argument is an opaque renderer hint; the Board
// always passes WriteStyle. Palette registration and color-pair lookup
// are renderer-side concerns, invoked by the driver before the first
// refresh, so this is the only capability the engine needs.
type CellWriter interface {
	Write(x, y uint, style, bg, fg uint16, text string) error
}

// WriteStyle is the constant style hint passed with every cell write.
const WriteStyle uint16 = 3

// Color-pair codes handed to the sink: three background/foreground
// pairs for closed, opened, and end-of-game force-opened cells.
const (
	ColorClosedBg uint16 = iota
	ColorClosedFg
	ColorOpenedBg
	ColorOpenedFg
	ColorEndingBg
	ColorEndingFg
)

// Glyph tables. overlayGlyphs is indexed by flag-driven overlay states:
// 0 is the closed placeholder, 1 the detonated mine under the cursor,
// 2-3 the reserved flag/question marks, 15 the blinking cursor. The
// remaining entries are padding kept for the reserved states.
// valueGlyphs is indexed by the cell value nibble; 9-14 are the
// reserved codes no operation produces.
const (
	overlayGlyphs = "L*??PPPP++++++++"
	valueGlyphs   = "_12345678......@"
)

var (
	glyphClosed    = overlayGlyphs[0]
	glyphDetonated = overlayGlyphs[1]
	glyphCursor    = overlayGlyphs[15]
)

// presentation computes the render triple for one cell: glyph plus
// background and foreground color codes.
//
// The base glyph is the closed placeholder, or the value glyph once
// opened. The cursor cell overrides it unless the game was won: on a
// lost game a mine under the cursor shows as detonated; otherwise the
// cursor glyph flashes during the blink-off half period and falls
// through to the base glyph during the other half. Color pairs depend
// only on the raw cell flags, not on the cursor.
func (board *Board) presentation(row, col uint) (glyph byte, bg, fg uint16) {
	cell := board.cells[row][col]

	glyph = glyphClosed
	if cell.IsOpened() {
		glyph = valueGlyphs[cell.Value()]
	}

	if row == board.cursorRow && col == board.cursorCol && board.state != Won {
		if board.state == Lost && cell.IsMine() {
			glyph = glyphDetonated
		} else if board.IsBlinking() {
			glyph = glyphCursor
		}
	}

	switch {
	case cell.IsForceOpened():
		bg, fg = ColorEndingBg, ColorEndingFg
	case cell.IsOpened():
		bg, fg = ColorOpenedBg, ColorOpenedFg
	default:
		bg, fg = ColorClosedBg, ColorClosedFg
	}
	return glyph, bg, fg
}

// Refresh redraws the whole grid, emitting one write per cell in
// row-major order. The grid is never mutated; a sink failure stops the
// sweep and propagates unchanged.
func (board *Board) Refresh() error {
	for row := uint(0); row < board.height; row++ {
		for col := uint(0); col < board.width; col++ {
			glyph, bg, fg := board.presentation(row, col)
			if err := board.sink.Write(col, row, WriteStyle, bg, fg, string(glyph)); err != nil {
				return err
			}
		}
	}
	return nil
}

// IsBlinking reports the blink-off phase: the first half of the blink
// period, during which the cursor cell shows the cursor glyph instead
// of its content.
func (board *Board) IsBlinking() bool {
	return board.tickCount < board.blinkPeriod/2
}

// Tick advances the blink counter. The board redraws itself exactly
// twice per blink period, at the half-period flip and at the wrap back
// to zero; callers only supply the cadence.
func (board *Board) Tick() error {
	board.tickCount++
	if board.tickCount == board.blinkPeriod/2 {
		return board.Refresh()
	}
	if board.tickCount >= board.blinkPeriod {
		board.tickCount = 0
		return board.Refresh()
	}
	return nil
}
