package autoplay

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/snake-astar/internal/games/snake"
	"github.com/vovakirdan/snake-astar/internal/storage"
)

func TestRecorderFinishesAfterCancel(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "trace.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	g, err := snake.New(smallConfig(), snake.ModeAI)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	rec := newRecorder(store, g, 7)
	require.NoError(t, rec.start(ctx))
	cancel()

	// The last add crosses the batch size and writes with ctx already done.
	for tick := 1; tick <= flushEvery+1; tick++ {
		require.NoError(t, rec.add(ctx, storage.DecisionRecord{
			Tick:      tick,
			Direction: "Right",
			Source:    "food",
		}))
	}
	require.NoError(t, rec.finish(ctx, Result{
		Ticks:     flushEvery + 1,
		Length:    3,
		EndReason: snake.EndTickLimit,
	}))

	bg := context.Background()
	run, err := store.RunByID(bg, rec.id())
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, string(snake.EndTickLimit), run.EndReason)
	assert.Equal(t, flushEvery+1, run.Ticks)

	decisions, err := store.Decisions(bg, rec.id())
	require.NoError(t, err)
	assert.Len(t, decisions, flushEvery+1)
}

func TestNilRecorderDiscards(t *testing.T) {
	var rec *recorder
	ctx := context.Background()

	require.NoError(t, rec.start(ctx))
	require.NoError(t, rec.add(ctx, storage.DecisionRecord{Tick: 1}))
	require.NoError(t, rec.finish(ctx, Result{}))
	assert.Empty(t, rec.id())
}
