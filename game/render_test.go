package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// glyphAt digs one cell's latest write out of a refresh recording.
func glyphAt(t *testing.T, writes []cellWrite, x, y uint) cellWrite {
	t.Helper()
	for i := len(writes) - 1; i >= 0; i-- {
		if writes[i].x == x && writes[i].y == y {
			return writes[i]
		}
	}
	t.Fatalf("no write recorded for (%d, %d)", x, y)
	return cellWrite{}
}

func TestRefreshWritesEveryCell(t *testing.T) {
	sink := &recordingSink{}
	board := NewBoard(testConfig(4, 3, 1), sink)

	require.NoError(t, board.Refresh())

	require.Len(t, sink.writes, 12)
	// Row-major order, constant style hint.
	assert.Equal(t, cellWrite{0, 0, WriteStyle, ColorClosedBg, ColorClosedFg, "+"}, sink.writes[0])
	assert.Equal(t, uint(1), sink.writes[1].x)
	assert.Equal(t, uint(0), sink.writes[1].y)
	for _, write := range sink.writes {
		assert.Equal(t, WriteStyle, write.style)
	}
}

func TestPresentationClosedAndCursor(t *testing.T) {
	sink := &recordingSink{}
	board := NewBoard(testConfig(3, 3, 1), sink)

	// Tick 0 is the blink-off phase: the cursor cell shows the cursor
	// glyph, every other closed cell the placeholder.
	require.NoError(t, board.Refresh())
	assert.Equal(t, "+", glyphAt(t, sink.writes, 0, 0).text)
	assert.Equal(t, "L", glyphAt(t, sink.writes, 1, 0).text)
	assert.Equal(t, "L", glyphAt(t, sink.writes, 2, 2).text)
}

func TestPresentationBlinkOnPhaseShowsContent(t *testing.T) {
	sink := &recordingSink{}
	board := NewBoard(testConfig(3, 3, 1), sink)
	board.tickCount = 40 // second half-period: the cursor shows its cell's content

	require.NoError(t, board.Refresh())
	assert.Equal(t, "L", glyphAt(t, sink.writes, 0, 0).text)
}

func TestPresentationOpenedValues(t *testing.T) {
	sink := &recordingSink{}
	board := NewBoard(testConfig(3, 3, 1), sink)
	layoutMines(board, gridPos{2, 2})
	require.True(t, board.Reveal(0, 0))
	board.tickCount = 40

	require.NoError(t, board.Refresh())

	assert.Equal(t, "_", glyphAt(t, sink.writes, 0, 0).text)
	assert.Equal(t, "1", glyphAt(t, sink.writes, 1, 1).text)
	assert.Equal(t, "L", glyphAt(t, sink.writes, 2, 2).text, "the mine stayed closed")
}

func TestPresentationMineAfterRevealAll(t *testing.T) {
	sink := &recordingSink{}
	board := NewBoard(testConfig(3, 3, 1), sink)
	layoutMines(board, gridPos{2, 2})
	require.True(t, board.Reveal(0, 0))

	require.NoError(t, board.RevealAll())

	write := glyphAt(t, sink.writes, 2, 2)
	assert.Equal(t, "@", write.text)
	assert.Equal(t, ColorEndingBg, write.bg)
	assert.Equal(t, ColorEndingFg, write.fg)
}

func TestPresentationDetonatedCursor(t *testing.T) {
	sink := &recordingSink{}
	board := NewBoard(testConfig(3, 3, 2), sink)
	layoutMines(board, gridPos{1, 1}, gridPos{2, 2})
	require.True(t, board.SetCursor(1, 1))
	require.False(t, board.RevealCursor())

	require.NoError(t, board.Refresh())

	// The triggering mine renders as detonated regardless of blink
	// phase; it never got the opened flag, so it keeps the closed pair.
	write := glyphAt(t, sink.writes, 1, 1)
	assert.Equal(t, "*", write.text)
	assert.Equal(t, ColorClosedBg, write.bg)
	assert.Equal(t, ColorClosedFg, write.fg)
}

func TestPresentationNoCursorAfterWin(t *testing.T) {
	sink := &recordingSink{}
	board := NewBoard(testConfig(3, 3, 1), sink)
	layoutMines(board, gridPos{2, 2})
	require.True(t, board.Reveal(0, 0))
	require.True(t, board.Succeeded())

	sink.writes = nil
	require.NoError(t, board.Refresh())

	// Cursor sits at (0,0) and tick 0 is the blink phase, but a won
	// game suppresses the overlay entirely.
	assert.Equal(t, "_", glyphAt(t, sink.writes, 0, 0).text)
}

func TestPresentationColorPairs(t *testing.T) {
	sink := &recordingSink{}
	board := NewBoard(testConfig(3, 3, 2), sink)
	layoutMines(board, gridPos{0, 0}, gridPos{2, 2})
	require.True(t, board.Reveal(1, 1))
	require.NoError(t, board.RevealAll())

	sink.writes = nil
	require.NoError(t, board.Refresh())

	opened := glyphAt(t, sink.writes, 1, 1)
	assert.Equal(t, ColorOpenedBg, opened.bg)
	assert.Equal(t, ColorOpenedFg, opened.fg)

	forced := glyphAt(t, sink.writes, 2, 0)
	assert.Equal(t, ColorEndingBg, forced.bg)
	assert.Equal(t, ColorEndingFg, forced.fg)
}

func TestBlinkCycle(t *testing.T) {
	sink := &recordingSink{}
	board := NewBoard(testConfig(2, 2, 1), sink)

	for tick := uint(0); tick < 80; tick++ {
		if tick < 40 {
			assert.True(t, board.IsBlinking(), "tick %d", tick)
		} else {
			assert.False(t, board.IsBlinking(), "tick %d", tick)
		}
		require.NoError(t, board.Tick())
	}

	assert.Equal(t, uint(0), board.tickCount, "counter wraps at the full period")
	assert.True(t, board.IsBlinking())
	// Exactly two refreshes per period, at the flip and at the wrap.
	assert.Len(t, sink.writes, 2*4)
}

func TestRefreshPropagatesSinkError(t *testing.T) {
	sinkErr := errors.New("write failed")
	sink := &recordingSink{err: sinkErr}
	board := NewBoard(testConfig(3, 3, 1), sink)

	assert.ErrorIs(t, board.Refresh(), sinkErr)

	board.tickCount = 39
	assert.ErrorIs(t, board.Tick(), sinkErr)
	assert.Equal(t, uint(40), board.tickCount, "tick state advanced before the failed render")
}

func TestRevealAllPropagatesSinkError(t *testing.T) {
	sinkErr := errors.New("write failed")
	sink := &recordingSink{}
	board := NewBoard(testConfig(3, 3, 1), sink)
	layoutMines(board, gridPos{1, 1})
	require.True(t, board.Reveal(0, 0))

	sink.err = sinkErr
	assert.ErrorIs(t, board.RevealAll(), sinkErr)

	// The grid mutation stands even though the render failed.
	assert.True(t, board.CellAt(1, 1).IsOpened())
}
