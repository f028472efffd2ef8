// Package autoplay runs autopilot games without a terminal, optionally
// recording every decision to the trace store.
package autoplay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snake-astar/internal/config"
	"github.com/vovakirdan/snake-astar/internal/core"
	"github.com/vovakirdan/snake-astar/internal/games/snake"
	"github.com/vovakirdan/snake-astar/internal/storage"
)

// DefaultMaxTicks caps a run when Options.MaxTicks is not set.
const DefaultMaxTicks = 10000

// flushEvery is the number of decisions buffered before a trace write.
const flushEvery = 256

// Options configures a batch of runs.
type Options struct {
	Config   config.SnakeConfig
	Games    int   // Number of games, at least 1
	Seed     int64 // Game i uses Seed+i
	MaxTicks int
	Workers  int            // Concurrent games, defaults to GOMAXPROCS
	Store    *storage.Store // Optional trace store
	Logger   *log.Logger    // Optional
}

// Result is the outcome of one run.
type Result struct {
	Index     int
	RunID     string // Empty when not recorded
	Seed      int64
	Ticks     int
	Score     int
	Length    int
	EndReason snake.EndReason
	Sources   map[string]int
	Expanded  int
	Duration  time.Duration
	Err       error
}

// Summary aggregates a batch.
type Summary struct {
	Games      int
	Failed     int
	BestScore  int
	MeanScore  float64
	MeanLength float64
	MeanTicks  float64
	EndReasons map[snake.EndReason]int
}

// Run plays opts.Games autopilot games concurrently and returns their
// results ordered by index. Cancelling ctx stops every game between ticks;
// the partial results are returned together with ctx.Err().
func Run(ctx context.Context, opts Options) ([]Result, error) {
	if opts.Games <= 0 {
		return nil, fmt.Errorf("autoplay: games must be positive, got %d", opts.Games)
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, opts.Games)
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	jobs := make(chan int)
	results := make(chan Result)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results <- playOne(ctx, opts, i, logger)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := range opts.Games {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var out []Result
	for r := range results {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })

	return out, ctx.Err()
}

// playOne runs a single game to completion or until the tick cap.
func playOne(ctx context.Context, opts Options, index int, logger *log.Logger) Result {
	started := time.Now()
	res := Result{
		Index:   index,
		Seed:    opts.Seed + int64(index),
		Sources: make(map[string]int),
	}
	maxTicks := opts.MaxTicks
	if maxTicks <= 0 {
		maxTicks = DefaultMaxTicks
	}

	g, err := snake.New(opts.Config, snake.ModeAI)
	if err != nil {
		res.Err = err
		return res
	}
	g.Reset(core.RuntimeConfig{Seed: res.Seed})

	rec := newRecorder(opts.Store, g, res.Seed)
	if err := rec.start(ctx); err != nil {
		logger.Warn("trace disabled for run", "seed", res.Seed, "error", err)
		rec = nil
	}
	res.RunID = rec.id()

	input := core.NewInputFrame()
	traceOK := true
	for !g.State().GameOver {
		if err := ctx.Err(); err != nil {
			res.Err = err
			break
		}
		if g.Snapshot().Tick >= uint64(maxTicks) {
			g.End(snake.EndTickLimit)
			break
		}

		before := g.Snapshot()
		g.Step(input)
		after := g.Snapshot()

		d, _ := g.LastDecision()
		res.Sources[d.Source.String()]++
		res.Expanded += d.Expanded

		if !traceOK {
			continue
		}
		if err := rec.add(ctx, storage.DecisionRecord{
			Tick:      int(after.Tick),
			HeadCol:   before.Head.Col,
			HeadRow:   before.Head.Row,
			FoodCol:   before.Food.Col,
			FoodRow:   before.Food.Row,
			Direction: d.Direction.String(),
			Source:    d.Source.String(),
			PathLen:   len(d.Path),
			Expanded:  d.Expanded,
		}); err != nil {
			logger.Warn("trace write failed", "run", res.RunID, "error", err)
			traceOK = false
		}
	}

	snap := g.Snapshot()
	res.Ticks = int(snap.Tick)
	res.Score = snap.Score
	res.Length = snap.SnakeLen
	res.EndReason = snap.EndReason
	res.Duration = time.Since(started)

	if err := rec.finish(ctx, res); err != nil {
		logger.Warn("trace finish failed", "run", res.RunID, "error", err)
	}

	logger.Info("run finished",
		"game", index,
		"seed", res.Seed,
		"ticks", res.Ticks,
		"score", res.Score,
		"length", res.Length,
		"end", res.EndReason,
		"elapsed", res.Duration.Round(time.Millisecond),
	)
	return res
}

// Summarize aggregates results. Failed runs count only toward Failed.
func Summarize(results []Result) Summary {
	s := Summary{EndReasons: make(map[snake.EndReason]int)}
	var scores, lengths, ticks int
	for _, r := range results {
		if r.Err != nil && !errors.Is(r.Err, context.Canceled) {
			s.Failed++
			continue
		}
		s.Games++
		s.BestScore = max(s.BestScore, r.Score)
		scores += r.Score
		lengths += r.Length
		ticks += r.Ticks
		s.EndReasons[r.EndReason]++
	}
	if s.Games > 0 {
		n := float64(s.Games)
		s.MeanScore = float64(scores) / n
		s.MeanLength = float64(lengths) / n
		s.MeanTicks = float64(ticks) / n
	}
	return s
}
