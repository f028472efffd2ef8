package pathfind

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/snake-astar/internal/grid"
)

func newTestEngine(t *testing.T, widthPx, heightPx int) *Engine {
	t.Helper()
	m, err := grid.NewMapper(widthPx, heightPx, grid.DefaultCellSize)
	require.NoError(t, err)
	return NewEngine(m)
}

func cell(col, row int) grid.Cell {
	return grid.Cell{Col: col, Row: row}
}

// bfsDistance is a plain breadth-first reference for shortest path lengths.
func bfsDistance(m grid.Mapper, start, goal grid.Cell, blocked ObstacleSet) int {
	dist := map[grid.Cell]int{start: 0}
	queue := []grid.Cell{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == goal {
			return dist[cur]
		}
		for _, d := range grid.ScanOrder {
			next := cur.Step(d)
			if !m.InBounds(next) {
				continue
			}
			if _, seen := dist[next]; seen {
				continue
			}
			if next != goal && blocked.Blocked(next) {
				continue
			}
			dist[next] = dist[cur] + 1
			queue = append(queue, next)
		}
	}
	return -1
}

func assertWellFormed(t *testing.T, e *Engine, path Path, start, goal grid.Cell, blocked ObstacleSet) {
	t.Helper()
	require.NotEmpty(t, path)
	assert.Equal(t, start, path[0], "path must start at the start cell")
	assert.Equal(t, goal, path[len(path)-1], "path must end at the goal cell")
	for i, c := range path {
		assert.True(t, e.Mapper().InBounds(c), "cell %v out of bounds", c)
		if i > 0 {
			assert.Equal(t, 1, path[i-1].Manhattan(c), "cells %v and %v are not adjacent", path[i-1], c)
			if c != goal {
				assert.False(t, blocked.Blocked(c), "path crosses obstacle %v", c)
			}
		}
	}
}

func TestReferenceScenarioStraightRun(t *testing.T) {
	e := newTestEngine(t, 720, 480)
	body := []grid.Pixel{{X: 100, Y: 50}, {X: 90, Y: 50}, {X: 80, Y: 50}, {X: 70, Y: 50}}

	path, err := e.FindPath(grid.Pixel{X: 100, Y: 50}, grid.Pixel{X: 150, Y: 50}, body)
	require.NoError(t, err)
	require.Len(t, path, 6)

	for i, p := range path {
		assert.Equal(t, grid.Pixel{X: 100 + 10*i, Y: 50}, p)
	}

	cells, err := e.Search(cell(10, 5), cell(15, 5), BlockedCells(e.Mapper(), body, true))
	require.NoError(t, err)
	next, ok := cells.Next()
	require.True(t, ok)
	assert.Equal(t, grid.Right, grid.DirectionTo(cells[0], next))
}

func TestOptimalOnEmptyGrid(t *testing.T) {
	e := newTestEngine(t, 720, 480)
	rng := rand.New(rand.NewSource(7))
	b := e.Mapper().Bounds()

	for i := 0; i < 200; i++ {
		start := cell(rng.Intn(b.Cols), rng.Intn(b.Rows))
		goal := cell(rng.Intn(b.Cols), rng.Intn(b.Rows))

		path, err := e.Search(start, goal, nil)
		require.NoError(t, err)
		require.Len(t, path, start.Manhattan(goal)+1, "start %v goal %v", start, goal)
		assertWellFormed(t, e, path, start, goal, nil)
	}
}

func TestOptimalAroundObstacles(t *testing.T) {
	e := newTestEngine(t, 300, 200)
	rng := rand.New(rand.NewSource(42))
	b := e.Mapper().Bounds()

	for i := 0; i < 100; i++ {
		blocked := make(ObstacleSet)
		for j := 0; j < 150; j++ {
			blocked[cell(rng.Intn(b.Cols), rng.Intn(b.Rows))] = struct{}{}
		}
		start := cell(rng.Intn(b.Cols), rng.Intn(b.Rows))
		goal := cell(rng.Intn(b.Cols), rng.Intn(b.Rows))

		path, err := e.Search(start, goal, blocked)
		require.NoError(t, err)

		want := bfsDistance(e.Mapper(), start, goal, blocked)
		if want < 0 {
			assert.Nil(t, path, "start %v goal %v should be unreachable", start, goal)
			continue
		}
		require.Len(t, path, want+1, "start %v goal %v", start, goal)
		assertWellFormed(t, e, path, start, goal, blocked)
	}
}

func TestDetourAroundWall(t *testing.T) {
	e := newTestEngine(t, 200, 200)

	// Vertical wall at column 10 with a single gap at row 18.
	blocked := make(ObstacleSet)
	for row := 0; row < 20; row++ {
		if row != 18 {
			blocked[cell(10, row)] = struct{}{}
		}
	}

	start, goal := cell(5, 2), cell(15, 2)
	path, err := e.Search(start, goal, blocked)
	require.NoError(t, err)
	assertWellFormed(t, e, path, start, goal, blocked)
	assert.Contains(t, path, cell(10, 18))
	assert.Len(t, path, 10+2*16+1)
	assert.Len(t, path, bfsDistance(e.Mapper(), start, goal, blocked)+1)
}

func TestEnclosedGoalHasNoPath(t *testing.T) {
	e := newTestEngine(t, 720, 480)
	food := cell(20, 20)
	blocked := NewObstacleSet(cell(19, 20), cell(21, 20), cell(20, 19), cell(20, 21))

	res, err := e.SearchWithStats(cell(5, 5), food, blocked)
	require.NoError(t, err)
	assert.Nil(t, res.Path)
	// Everything reachable except the four walls and the food got expanded.
	assert.Equal(t, 72*48-5, res.Expanded)
}

func TestOccupiedGoalIsReachable(t *testing.T) {
	e := newTestEngine(t, 200, 200)
	goal := cell(8, 3)
	blocked := NewObstacleSet(goal, cell(7, 4))

	path, err := e.Search(cell(3, 3), goal, blocked)
	require.NoError(t, err)
	require.Len(t, path, 6)
	assert.Equal(t, goal, path[len(path)-1])
}

func TestStartEqualsGoal(t *testing.T) {
	e := newTestEngine(t, 200, 200)

	path, err := e.Search(cell(4, 4), cell(4, 4), nil)
	require.NoError(t, err)
	assert.Equal(t, Path{cell(4, 4)}, path)

	_, ok := path.Next()
	assert.False(t, ok)
}

func TestOutOfBoundsIsInvalidInput(t *testing.T) {
	e := newTestEngine(t, 720, 480)

	_, err := e.Search(cell(-1, 0), cell(5, 5), nil)
	assert.ErrorIs(t, err, grid.ErrInvalidInput)

	_, err = e.Search(cell(5, 5), cell(72, 0), nil)
	assert.ErrorIs(t, err, grid.ErrInvalidInput)

	_, err = e.FindPath(grid.Pixel{X: 100, Y: 50}, grid.Pixel{X: 720, Y: 50}, nil)
	assert.ErrorIs(t, err, grid.ErrInvalidInput)

	_, err = e.FindPath(grid.Pixel{X: -10, Y: 50}, grid.Pixel{X: 100, Y: 50}, nil)
	assert.ErrorIs(t, err, grid.ErrInvalidInput)
}

func TestSearchIsDeterministic(t *testing.T) {
	e := newTestEngine(t, 400, 300)
	blocked := NewObstacleSet(cell(6, 5), cell(6, 6), cell(6, 7), cell(7, 7))

	first, err := e.Search(cell(2, 6), cell(12, 6), blocked)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := e.Search(cell(2, 6), cell(12, 6), blocked)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestFindPathIgnoresTail(t *testing.T) {
	e := newTestEngine(t, 100, 100)
	// The body runs down column 1 and ends with its tail at (1,9).
	// From (0,0) the only way out of column 0 is through the tail cell.
	var body []grid.Pixel
	body = append(body, grid.Pixel{X: 0, Y: 0})
	for row := 0; row < 10; row++ {
		body = append(body, grid.Pixel{X: 10, Y: row * 10})
	}

	path, err := e.FindPath(grid.Pixel{X: 0, Y: 0}, grid.Pixel{X: 50, Y: 90}, body)
	require.NoError(t, err)
	require.NotNil(t, path)
	assert.Contains(t, path, grid.Pixel{X: 10, Y: 90})
}
