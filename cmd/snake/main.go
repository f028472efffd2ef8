// snake is a terminal snake game with an A* autopilot.
//
// Usage:
//
//	snake                    - Pick manual or autopilot from a menu
//	snake play               - Play a game (manual unless --mode ai)
//	snake demo               - Watch the autopilot play
//	snake path               - Print the autopilot's move for a given layout
//	snake bench              - Run headless autopilot games and summarize them
//	snake runs               - Browse recorded autopilot runs
//	snake list               - List game variants
//
// Global flags:
//
//	--config <path>    - Custom snake config YAML
//	--seed <value>     - RNG seed for reproducible food placement
//	--db <path>        - Trace database (default: ~/.snake/trace.db)
//	--log-file <path>  - Write logs to a file while the game runs
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-astar/internal/config"
	"github.com/vovakirdan/snake-astar/internal/games/snake"
)

var (
	// Global flags
	flagConfig  string
	flagSeed    int64
	flagDBPath  string
	flagLogFile string
	flagVerbose bool

	// appConfig is loaded once before any subcommand runs.
	appConfig config.SnakeConfig
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake in your terminal, with an A* autopilot",
	Long: `Snake on a grid, played by you or by an A* autopilot.

The autopilot heads for the food along the shortest safe path. When the
food is walled off it chases its own tail, and when even that fails it
takes any free neighbor.

Examples:
  snake
  snake play --fit
  snake demo --seed 42
  snake path --head 10,5 --food 15,5 --body "10,5;9,5;8,5;7,5"
  snake bench --games 50 --record
  snake runs`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
	RunE:              runMenu,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom snake config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to trace database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Append logs to this file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug output")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(pathCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(runsCmd)
}

// loadConfig reads .env, the YAML config and SNAKE_* overrides, and hands
// the result to the registered games.
func loadConfig(_ *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.LoadSnake(flagConfig)
	if err != nil {
		return err
	}
	if err := snake.SetConfig(cfg); err != nil {
		return err
	}
	appConfig = cfg
	return nil
}

// newLogger builds the CLI logger writing to w.
func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "snake",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// traceDBPath returns --db or the configured trace database.
func traceDBPath() string {
	if flagDBPath != "" {
		return flagDBPath
	}
	return appConfig.TraceDBPath()
}
