package tui

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/they4kman/minefield/game"
)

// A Director plays the game instead of the player. The run loop calls
// Act on the director's cadence; the board is single-owner, so
// directors never touch it from their own goroutines.
type Director interface {
	// Act performs a single step of play against the board.
	Act(*game.Board)

	// Cadence returns how often the run loop should call Act.
	Cadence() time.Duration
}

// registerPalette installs the three color pairs the board presents
// with: closed, opened by play, and force-opened at the end of the
// game.
func registerPalette(screen *Screen) {
	screen.RegisterPair(game.ColorClosedBg, game.ColorClosedFg,
		tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite))
	screen.RegisterPair(game.ColorOpenedBg, game.ColorOpenedFg,
		tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorLime))
	screen.RegisterPair(game.ColorEndingBg, game.ColorEndingFg,
		tcell.StyleDefault.Background(tcell.ColorMaroon).Foreground(tcell.ColorYellow))
}

// Run owns the terminal for the life of the process: it creates the
// screen, builds a board, and drives it from a single select loop fed
// by the input goroutine, the tick cadence, and the optional director.
// After a game ends, Enter discards the board and starts a fresh one
// with a new seed.
func Run(config game.Config, director Director, log *logrus.Logger) error {
	screen, err := NewScreen()
	if err != nil {
		return err
	}
	defer screen.Fini()

	registerPalette(screen)

	board := game.NewBoard(config, screen)
	if err := board.Refresh(); err != nil {
		return err
	}
	screen.Show()

	log.WithFields(logrus.Fields{
		"width":  config.Width,
		"height": config.Height,
		"mines":  config.NumMines,
	}).Info("game started")

	events := make(chan tcell.Event)
	go func() {
		for {
			events <- screen.PollEvent()
		}
	}()

	ticker := time.NewTicker(board.TickIdle())
	defer ticker.Stop()

	var directorTick <-chan time.Time
	if director != nil {
		directorTicker := time.NewTicker(director.Cadence())
		defer directorTicker.Stop()
		directorTick = directorTicker.C
	}

	// ending runs the end-of-game sequence once per board.
	ended := false
	ending := func() error {
		if ended || !board.IsEnd() {
			return nil
		}
		ended = true

		if board.Succeeded() {
			log.WithField("opened", board.OpenedCount()).Info("swept clean")
		} else {
			log.WithField("opened", board.OpenedCount()).Info("boom")
		}
		return board.RevealAll()
	}

	newGame := func() error {
		config.Seed = time.Now().UnixNano()
		board = game.NewBoard(config, screen)
		ended = false
		log.Info("new game")
		return board.Refresh()
	}

	// reveal opens the cell under the cursor and runs the ending
	// sequence when that reveal finished the game either way.
	reveal := func() error {
		board.RevealCursor()
		return ending()
	}

	for {
		select {
		case <-ticker.C:
			if err := board.Tick(); err != nil {
				return err
			}

		case <-directorTick:
			if !board.IsEnd() {
				director.Act(board)
				if err := ending(); err != nil {
					return err
				}
				if err := board.Refresh(); err != nil {
					return err
				}
			}

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch ev.Key() {
				case tcell.KeyEscape, tcell.KeyCtrlC:
					return nil
				case tcell.KeyUp:
					board.MoveUp()
				case tcell.KeyDown:
					board.MoveDown()
				case tcell.KeyLeft:
					board.MoveLeft()
				case tcell.KeyRight:
					board.MoveRight()
				case tcell.KeyEnter:
					if board.IsEnd() {
						if err := newGame(); err != nil {
							return err
						}
					} else if err := reveal(); err != nil {
						return err
					}
				case tcell.KeyRune:
					switch ev.Rune() {
					case 'q':
						return nil
					case 'k':
						board.MoveUp()
					case 'j':
						board.MoveDown()
					case 'h':
						board.MoveLeft()
					case 'l':
						board.MoveRight()
					case ' ':
						if err := reveal(); err != nil {
							return err
						}
					}
				}
				if err := board.Refresh(); err != nil {
					return err
				}

			case *tcell.EventMouse:
				if ev.Buttons()&tcell.Button1 == 0 {
					break
				}
				x, y := ev.Position()
				if x < 0 || y < 0 || !board.SetCursor(uint(x), uint(y)) {
					break
				}
				if err := reveal(); err != nil {
					return err
				}
				if err := board.Refresh(); err != nil {
					return err
				}

			case *tcell.EventResize:
				screen.Sync()
				if err := board.Refresh(); err != nil {
					return err
				}
			}
		}

		screen.Show()
	}
}
