package autoplay

import (
	"context"

	"github.com/vovakirdan/snake-astar/internal/games/snake"
	"github.com/vovakirdan/snake-astar/internal/storage"
)

// recorder buffers decisions of one run and writes them in batches.
// Writes after start ignore cancellation of ctx, so a stopped run still
// gets its finishing row. A nil recorder discards everything.
type recorder struct {
	store   *storage.Store
	run     storage.Run
	pending []storage.DecisionRecord
}

func newRecorder(store *storage.Store, g *snake.Game, seed int64) *recorder {
	if store == nil {
		return nil
	}
	b := g.Mapper().Bounds()
	return &recorder{
		store: store,
		run: storage.Run{
			GameID: g.ID(),
			Seed:   seed,
			Cols:   b.Cols,
			Rows:   b.Rows,
		},
	}
}

func (r *recorder) start(ctx context.Context) error {
	if r == nil {
		return nil
	}
	id, err := r.store.CreateRun(ctx, r.run)
	if err != nil {
		return err
	}
	r.run.ID = id
	return nil
}

func (r *recorder) id() string {
	if r == nil {
		return ""
	}
	return r.run.ID
}

func (r *recorder) add(ctx context.Context, d storage.DecisionRecord) error {
	if r == nil {
		return nil
	}
	r.pending = append(r.pending, d)
	if len(r.pending) < flushEvery {
		return nil
	}
	return r.flush(context.WithoutCancel(ctx))
}

func (r *recorder) flush(ctx context.Context) error {
	if r == nil || len(r.pending) == 0 {
		return nil
	}
	err := r.store.SaveDecisions(ctx, r.run.ID, r.pending)
	r.pending = r.pending[:0]
	return err
}

func (r *recorder) finish(ctx context.Context, res Result) error {
	if r == nil {
		return nil
	}
	ctx = context.WithoutCancel(ctx)
	if err := r.flush(ctx); err != nil {
		return err
	}
	return r.store.FinishRun(ctx, r.run.ID, res.Ticks, res.Length, string(res.EndReason))
}
