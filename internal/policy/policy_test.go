package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/snake-astar/internal/grid"
)

func newTestPolicy(t *testing.T, widthPx, heightPx int) *Policy {
	t.Helper()
	m, err := grid.NewMapper(widthPx, heightPx, grid.DefaultCellSize)
	require.NoError(t, err)
	return New(m)
}

// px builds pixel positions from cell coordinates on a 10px grid.
func px(cells ...[2]int) []grid.Pixel {
	out := make([]grid.Pixel, len(cells))
	for i, c := range cells {
		out[i] = grid.Pixel{X: c[0] * 10, Y: c[1] * 10}
	}
	return out
}

func TestNextMoveFollowsFood(t *testing.T) {
	p := newTestPolicy(t, 720, 480)
	body := px([2]int{10, 5}, [2]int{9, 5}, [2]int{8, 5}, [2]int{7, 5})

	d, err := p.NextMove(body[0], grid.Pixel{X: 150, Y: 50}, body)
	require.NoError(t, err)
	assert.Equal(t, grid.Right, d.Direction)
	assert.Equal(t, SourceFood, d.Source)
	assert.Len(t, d.Path, 6)
	assert.Equal(t, body[0], d.Path[0])
	assert.Positive(t, d.Expanded)
}

func TestNextMoveChasesTailWhenFoodEnclosed(t *testing.T) {
	p := newTestPolicy(t, 200, 200)
	// The body wraps all four neighbors of the food at (10,10); the tail
	// at (9,9) is not one of them.
	body := px(
		[2]int{8, 10}, [2]int{9, 10}, [2]int{9, 11}, [2]int{10, 11},
		[2]int{11, 11}, [2]int{11, 10}, [2]int{11, 9}, [2]int{10, 9},
		[2]int{9, 9},
	)
	food := grid.Pixel{X: 100, Y: 100}

	d, err := p.NextMove(body[0], food, body)
	require.NoError(t, err)
	assert.Equal(t, SourceTail, d.Source)
	assert.Equal(t, grid.Up, d.Direction)
	assert.Equal(t, px([2]int{8, 10}, [2]int{8, 9}, [2]int{9, 9}), d.Path)
}

func TestNextMoveFoodUnderHeadFallsThroughToTail(t *testing.T) {
	p := newTestPolicy(t, 720, 480)
	body := px([2]int{10, 5}, [2]int{9, 5}, [2]int{8, 5}, [2]int{7, 5})

	d, err := p.NextMove(body[0], body[0], body)
	require.NoError(t, err)
	assert.Equal(t, SourceTail, d.Source)
	assert.Equal(t, body[len(body)-1], d.Path[len(d.Path)-1])
}

func TestNextMoveTailChaseFreesSegmentBeforeTail(t *testing.T) {
	p := newTestPolicy(t, 200, 200)
	body := px([2]int{5, 5}, [2]int{4, 5}, [2]int{3, 5})

	d, err := p.NextMove(body[0], body[0], body)
	require.NoError(t, err)
	assert.Equal(t, SourceTail, d.Source)
	assert.Equal(t, grid.Left, d.Direction)
	assert.Equal(t, body, d.Path)
}

func TestNextMoveScansForFreeNeighbor(t *testing.T) {
	// A one-row grid: the body cuts the head off from both food and tail.
	p := newTestPolicy(t, 50, 10)
	body := px([2]int{1, 0}, [2]int{2, 0}, [2]int{3, 0})
	food := grid.Pixel{X: 40, Y: 0}

	d, err := p.NextMove(body[0], food, body)
	require.NoError(t, err)
	assert.Equal(t, SourceScan, d.Source)
	assert.Equal(t, grid.Left, d.Direction)
	assert.Nil(t, d.Path)
}

func TestNextMoveFallsBackToRight(t *testing.T) {
	p := newTestPolicy(t, 50, 10)
	body := px([2]int{0, 0}, [2]int{1, 0}, [2]int{2, 0}, [2]int{3, 0})
	food := grid.Pixel{X: 40, Y: 0}

	d, err := p.NextMove(body[0], food, body)
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, d.Source)
	assert.Equal(t, grid.Right, d.Direction)
}

func TestNextMoveSingleSegment(t *testing.T) {
	p := newTestPolicy(t, 200, 200)
	body := px([2]int{3, 3})

	d, err := p.NextMove(body[0], grid.Pixel{X: 30, Y: 80}, body)
	require.NoError(t, err)
	assert.Equal(t, SourceFood, d.Source)
	assert.Equal(t, grid.Down, d.Direction)

	// Food on the head of a one-cell snake: no tail to chase, so scan.
	d, err = p.NextMove(body[0], body[0], body)
	require.NoError(t, err)
	assert.Equal(t, SourceScan, d.Source)
	assert.Equal(t, grid.Up, d.Direction)
}

func TestNextMoveIsDeterministic(t *testing.T) {
	p := newTestPolicy(t, 200, 200)
	body := px(
		[2]int{8, 10}, [2]int{9, 10}, [2]int{9, 11}, [2]int{10, 11},
		[2]int{11, 11}, [2]int{11, 10}, [2]int{11, 9}, [2]int{10, 9},
		[2]int{9, 9},
	)
	foods := []grid.Pixel{{X: 100, Y: 100}, {X: 150, Y: 20}, {X: 0, Y: 190}}

	for _, food := range foods {
		first, err := p.NextMove(body[0], food, body)
		require.NoError(t, err)
		for i := 0; i < 10; i++ {
			again, err := p.NextMove(body[0], food, body)
			require.NoError(t, err)
			require.Equal(t, first, again, "food %v", food)
		}
	}
}

func TestNextMoveNeverStepsIntoBody(t *testing.T) {
	p := newTestPolicy(t, 200, 200)
	body := px(
		[2]int{8, 10}, [2]int{9, 10}, [2]int{9, 11}, [2]int{10, 11},
		[2]int{11, 11}, [2]int{11, 10}, [2]int{11, 9}, [2]int{10, 9},
		[2]int{9, 9},
	)
	m := p.Mapper()
	occupied := make(map[grid.Cell]bool)
	for _, seg := range body[:len(body)-1] {
		occupied[m.ToGrid(seg)] = true
	}

	for col := 0; col < 20; col++ {
		for row := 0; row < 20; row++ {
			food := grid.Pixel{X: col * 10, Y: row * 10}
			d, err := p.NextMove(body[0], food, body)
			require.NoError(t, err)
			next := m.ToGrid(body[0]).Step(d.Direction)
			assert.True(t, m.InBounds(next), "food %v: move %v leaves the grid", food, d.Direction)
			if next != m.ToGrid(food) {
				assert.False(t, occupied[next], "food %v: move %v hits the body", food, d.Direction)
			}
		}
	}
}

func TestNextMoveInvalidInput(t *testing.T) {
	p := newTestPolicy(t, 720, 480)
	body := px([2]int{10, 5}, [2]int{9, 5})

	tests := []struct {
		name       string
		head, food grid.Pixel
		body       []grid.Pixel
	}{
		{"empty body", body[0], grid.Pixel{X: 150, Y: 50}, nil},
		{"head off grid", grid.Pixel{X: 720, Y: 50}, grid.Pixel{X: 150, Y: 50}, body},
		{"head negative", grid.Pixel{X: -10, Y: 50}, grid.Pixel{X: 150, Y: 50}, body},
		{"food off grid", body[0], grid.Pixel{X: 150, Y: 480}, body},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := p.NextMove(tc.head, tc.food, tc.body)
			assert.ErrorIs(t, err, grid.ErrInvalidInput)
		})
	}
}

func TestSourceString(t *testing.T) {
	assert.Equal(t, "food", SourceFood.String())
	assert.Equal(t, "tail", SourceTail.String())
	assert.Equal(t, "scan", SourceScan.String())
	assert.Equal(t, "fallback", SourceFallback.String())
}
