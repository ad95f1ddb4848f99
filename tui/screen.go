package tui

import (
	"github.com/gdamore/tcell/v2"
)

type pairKey struct {
	bg, fg uint16
}

// Screen adapts a tcell screen to the board's render sink contract. It
// owns the palette: color-pair codes arrive from the board as opaque
// numbers and resolve to tcell styles registered up front by the
// driver.
type Screen struct {
	screen tcell.Screen
	pairs  map[pairKey]tcell.Style
}

func NewScreen() (*Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	screen.EnableMouse()
	screen.Clear()

	return &Screen{
		screen: screen,
		pairs:  make(map[pairKey]tcell.Style),
	}, nil
}

// newSimulationScreen backs a Screen with tcell's in-memory screen, for
// tests.
func newSimulationScreen() (*Screen, tcell.SimulationScreen, error) {
	sim := tcell.NewSimulationScreen("")
	if err := sim.Init(); err != nil {
		return nil, nil, err
	}
	return &Screen{
		screen: sim,
		pairs:  make(map[pairKey]tcell.Style),
	}, sim, nil
}

// RegisterPair installs one palette entry. Registration happens once,
// before the first refresh.
func (s *Screen) RegisterPair(bg, fg uint16, style tcell.Style) {
	s.pairs[pairKey{bg, fg}] = style
}

// Pair looks up the style registered for a color-pair code. Unknown
// codes resolve to the default style.
func (s *Screen) Pair(bg, fg uint16) tcell.Style {
	if style, ok := s.pairs[pairKey{bg, fg}]; ok {
		return style
	}
	return tcell.StyleDefault
}

// Write draws one cell's text at grid coordinate (x, y). The style
// hint is a passthrough from the board; tcell has no per-write mode to
// map it onto, so only the color pair matters here. tcell writes
// cannot fail, but the sink contract is fallible for renderers that
// can.
func (s *Screen) Write(x, y uint, style, bg, fg uint16, text string) error {
	st := s.Pair(bg, fg)
	col := int(x)
	for _, r := range text {
		s.screen.SetContent(col, int(y), r, nil, st)
		col++
	}
	return nil
}

// Show flushes pending writes to the terminal.
func (s *Screen) Show() {
	s.screen.Show()
}

func (s *Screen) Sync() {
	s.screen.Sync()
}

func (s *Screen) Fini() {
	s.screen.Fini()
}

func (s *Screen) PollEvent() tcell.Event {
	return s.screen.PollEvent()
}
