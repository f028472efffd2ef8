package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/snake-astar/internal/config"
	"github.com/vovakirdan/snake-astar/internal/core"
	"github.com/vovakirdan/snake-astar/internal/games/snake"
	"github.com/vovakirdan/snake-astar/internal/platform/tui"
	"github.com/vovakirdan/snake-astar/internal/registry"
)

// Terminal rows outside the playfield: HUD, two border rows, help footer.
const chromeRows = 4

var (
	flagMode string
	flagFit  bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play snake",
	Long: `Start a game of snake.

Controls:
  Arrows/WASD/HJKL - Steer
  Space            - Toggle the A* autopilot
  P/Esc            - Pause
  R                - Restart
  ?                - Show all keys
  Q/Ctrl+C         - Quit

The default field is 72x48 cells. Use --fit to size it to the terminal.

Examples:
  snake play
  snake play --mode ai
  snake play --fit --seed 7
  snake play --config ./my-snake.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Watch the A* autopilot play",
	Long: `Start a game steered by the autopilot. Press Space to take over.

Examples:
  snake demo
  snake demo --fit --seed 42`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return launch("snake_ai")
	},
}

func init() {
	playCmd.Flags().StringVar(&flagMode, "mode", "", "Who steers: manual or ai (default from config)")
	for _, cmd := range []*cobra.Command{rootCmd, playCmd, demoCmd} {
		cmd.Flags().BoolVar(&flagFit, "fit", false, "Size the field to the terminal")
	}
}

func runPlay(_ *cobra.Command, _ []string) error {
	mode := flagMode
	if mode == "" {
		mode = string(snake.ModeManual)
		if appConfig.Autopilot {
			mode = string(snake.ModeAI)
		}
	}

	switch snake.Mode(mode) {
	case snake.ModeManual:
		return launch("snake")
	case snake.ModeAI:
		return launch("snake_ai")
	default:
		return fmt.Errorf("unknown mode %q (expected manual or ai)", mode)
	}
}

// runMenu lets the user pick a variant, then plays it.
func runMenu(_ *cobra.Command, _ []string) error {
	width, height := terminalSize()
	gameID, err := tui.RunMenu(width, height)
	if err != nil {
		return err
	}
	if gameID == "" {
		return nil
	}
	return launch(gameID)
}

// launch runs a registered game in the terminal until the player quits.
func launch(gameID string) error {
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'snake list' to see available games", gameID)
	}

	width, height := terminalSize()
	cfg := appConfig
	if flagFit {
		var err error
		if cfg, err = fitConfig(cfg, width, height); err != nil {
			return err
		}
		if err := snake.SetConfig(cfg); err != nil {
			return err
		}
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	logger, closeLog, err := openGameLog()
	if err != nil {
		return err
	}
	defer closeLog()

	return tui.Run(game, core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: cfg.Speed,
		Seed:     flagSeed,
	}, logger)
}

// terminalSize returns the size of stdout, or 80x24 when it is not a
// terminal.
func terminalSize() (width, height int) {
	width, height = 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return width, height
}

// fitConfig sizes the window so the whole field fits a width x height
// terminal at one cell per character.
func fitConfig(cfg config.SnakeConfig, width, height int) (config.SnakeConfig, error) {
	cols, rows := width-2, height-chromeRows
	cfg.Window = config.WindowConfig{
		Width:  max(cols, 0) * cfg.CellSize,
		Height: max(rows, 0) * cfg.CellSize,
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("terminal %dx%d is too small for --fit: %w", width, height, err)
	}
	return cfg, nil
}

// openGameLog returns the logger for a terminal session. Logs go to
// --log-file when set and are discarded otherwise, so they never draw over
// the game.
func openGameLog() (*log.Logger, func(), error) {
	if flagLogFile == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := tea.LogToFile(flagLogFile, "snake")
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return newLogger(f), func() { f.Close() }, nil
}
