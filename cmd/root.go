package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/they4kman/minefield/director/random"
	"github.com/they4kman/minefield/game"
	"github.com/they4kman/minefield/tui"
)

var log = logrus.New()

var (
	gameConfig  = game.NewConfig()
	useDirector = false
	configPath  = ""
	logLevel    = "info"
	logPath     = ""
)

var rootCmd = &cobra.Command{
	Use:   "minefield",
	Short: "Sweep mines in the terminal",
	Long: `minefield is a terminal Minesweeper. Move the cursor with the
arrow keys or hjkl, reveal with Space or Enter, or click a cell.

Run with no arguments for the default board
	minefield

Use the director flag to make the computer play for you
	minefield --director
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if configPath != "" {
			if err := loadConfigFile(cmd, configPath); err != nil {
				return err
			}
		}

		if gameConfig.NumMines > gameConfig.Width*gameConfig.Height {
			return fmt.Errorf(
				"%d mines do not fit on a %dx%d board",
				gameConfig.NumMines, gameConfig.Width, gameConfig.Height,
			)
		}

		if err := setupLogging(); err != nil {
			return err
		}

		var director tui.Director
		if useDirector {
			director = random.New(gameConfig.Seed)
		}

		return tui.Run(gameConfig, director, log)
	},
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// fileConfig is the optional yaml settings file. Values only apply to
// flags the command line left at their defaults.
type fileConfig struct {
	Width       uint   `yaml:"width"`
	Height      uint   `yaml:"height"`
	Mines       uint   `yaml:"mines"`
	Seed        int64  `yaml:"seed"`
	BlinkPeriod uint   `yaml:"blink_period"`
	TickIdle    string `yaml:"tick_idle"`
}

func loadConfigFile(cmd *cobra.Command, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var file fileConfig
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("bad config file %s: %w", path, err)
	}

	apply := func(flag string, set func()) {
		if !cmd.Flags().Changed(flag) {
			set()
		}
	}

	if file.Width != 0 {
		apply("width", func() { gameConfig.Width = file.Width })
	}
	if file.Height != 0 {
		apply("height", func() { gameConfig.Height = file.Height })
	}
	if file.Mines != 0 {
		apply("mines", func() { gameConfig.NumMines = file.Mines })
	}
	if file.Seed != 0 {
		apply("seed", func() { gameConfig.Seed = file.Seed })
	}
	if file.BlinkPeriod != 0 {
		apply("blink", func() { gameConfig.BlinkPeriod = file.BlinkPeriod })
	}
	if file.TickIdle != "" {
		idle, err := time.ParseDuration(file.TickIdle)
		if err != nil {
			return fmt.Errorf("bad tick_idle in %s: %w", path, err)
		}
		apply("tick", func() { gameConfig.TickIdle = idle })
	}

	return nil
}

// setupLogging points logrus at the log file, or discards output: the
// terminal itself belongs to the game.
func setupLogging() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	log.SetLevel(level)

	if logPath == "" {
		log.SetOutput(io.Discard)
		return nil
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	log.SetOutput(file)
	return nil
}

func init() {
	// Define our root --help without a shorthand, as we'll use -h for --height
	// Ref: https://github.com/spf13/cobra/issues/291
	rootCmd.Flags().Bool("help", false, "Help for this command")

	rootCmd.Flags().UintVarP(&gameConfig.Width, "width", "w", gameConfig.Width, "Width of game board, in cells")
	rootCmd.Flags().UintVarP(&gameConfig.Height, "height", "h", gameConfig.Height, "Height of game board, in cells")
	rootCmd.Flags().UintVarP(&gameConfig.NumMines, "mines", "m", gameConfig.NumMines, "Number of mines to place in the game board")
	rootCmd.Flags().Int64Var(&gameConfig.Seed, "seed", 0, "Mine placement seed (0 seeds from the clock)")
	rootCmd.Flags().UintVar(&gameConfig.BlinkPeriod, "blink", gameConfig.BlinkPeriod, "Cursor blink period, in ticks")
	rootCmd.Flags().DurationVar(&gameConfig.TickIdle, "tick", gameConfig.TickIdle, "Idle time between ticks")
	rootCmd.Flags().BoolVarP(&useDirector, "director", "d", false, "Make the computer play")
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to a yaml settings file")
	rootCmd.Flags().StringVar(&logLevel, "log-level", logLevel, "Log level")
	rootCmd.Flags().StringVar(&logPath, "log-file", "", "Append logs to this file (logs are dropped without it)")
}
