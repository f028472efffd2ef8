package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-astar/internal/autoplay"
	"github.com/vovakirdan/snake-astar/internal/storage"
)

var (
	flagGames    int
	flagMaxTicks int
	flagWorkers  int
	flagRecord   bool
	flagQuiet    bool
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run headless autopilot games",
	Long: `Play autopilot games without a terminal and print how they ended.

Game i uses seed --seed+i, so a batch is reproducible. With --record every
decision is written to the trace database for 'snake runs'. Ctrl+C stops
the batch and prints what finished.

Examples:
  snake bench
  snake bench --games 100 --workers 8
  snake bench --games 10 --seed 42 --max-ticks 2000 --record`,
	Args: cobra.NoArgs,
	RunE: runBench,
}

func init() {
	benchCmd.Flags().IntVarP(&flagGames, "games", "n", 20, "Number of games")
	benchCmd.Flags().IntVar(&flagMaxTicks, "max-ticks", autoplay.DefaultMaxTicks, "Tick limit per game")
	benchCmd.Flags().IntVar(&flagWorkers, "workers", 0, "Concurrent games (0 = one per CPU)")
	benchCmd.Flags().BoolVar(&flagRecord, "record", false, "Record decisions to the trace database")
	benchCmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "Print only the summary")
}

func runBench(cmd *cobra.Command, _ []string) error {
	logger := newLogger(os.Stderr)
	if !flagVerbose {
		logger.SetLevel(log.WarnLevel)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var store *storage.Store
	if flagRecord {
		var err error
		if store, err = storage.Open(traceDBPath()); err != nil {
			return err
		}
		defer store.Close()
	}

	started := time.Now()
	results, err := autoplay.Run(ctx, autoplay.Options{
		Config:   appConfig,
		Games:    flagGames,
		Seed:     seed,
		MaxTicks: flagMaxTicks,
		Workers:  flagWorkers,
		Store:    store,
		Logger:   logger,
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.Canceled) {
		logger.Warn("interrupted", "finished", len(results), "requested", flagGames)
	}

	out := cmd.OutOrStdout()
	if !flagQuiet && len(results) > 0 {
		fmt.Fprintln(out, resultsTable(results))
	}

	s := autoplay.Summarize(results)
	fmt.Fprintf(out, "games:   %d (%d failed) in %s\n", s.Games, s.Failed, time.Since(started).Round(time.Millisecond))
	fmt.Fprintf(out, "score:   best %d, mean %.1f\n", s.BestScore, s.MeanScore)
	fmt.Fprintf(out, "length:  mean %.1f\n", s.MeanLength)
	fmt.Fprintf(out, "ticks:   mean %.1f\n", s.MeanTicks)
	fmt.Fprintf(out, "endings: %s\n", formatEndings(s))
	if store != nil {
		fmt.Fprintf(out, "trace:   %s\n", traceDBPath())
	}
	return nil
}

// resultsTable renders one row per game.
func resultsTable(results []autoplay.Result) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("#", "Seed", "Ticks", "Score", "Len", "End", "Food%", "Run").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, r := range results {
		end := string(r.EndReason)
		if r.Err != nil {
			end = "error"
		}
		food := 0.0
		if r.Ticks > 0 {
			food = 100 * float64(r.Sources["food"]) / float64(r.Ticks)
		}
		id := r.RunID
		if len(id) > 8 {
			id = id[:8]
		}
		t.Row(
			strconv.Itoa(r.Index),
			strconv.FormatInt(r.Seed, 10),
			strconv.Itoa(r.Ticks),
			strconv.Itoa(r.Score),
			strconv.Itoa(r.Length),
			end,
			fmt.Sprintf("%.0f", food),
			id,
		)
	}
	return t.Render()
}

// formatEndings lists end reasons by count, most frequent first.
func formatEndings(s autoplay.Summary) string {
	if len(s.EndReasons) == 0 {
		return "none"
	}
	type count struct {
		reason string
		n      int
	}
	counts := make([]count, 0, len(s.EndReasons))
	for r, n := range s.EndReasons {
		counts = append(counts, count{string(r), n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].n != counts[j].n {
			return counts[i].n > counts[j].n
		}
		return counts[i].reason < counts[j].reason
	})

	parts := make([]string, len(counts))
	for i, c := range counts {
		parts[i] = fmt.Sprintf("%s %d", c.reason, c.n)
	}
	return strings.Join(parts, ", ")
}
