// Package pathfind implements A* search over the snake grid: 4-connected,
// unit step cost, Manhattan heuristic, with the body as a dynamic obstacle.
package pathfind

import (
	"container/heap"
	"fmt"

	"github.com/vovakirdan/snake-astar/internal/grid"
)

// neighborOrder is the expansion order of a cell's neighbors.
var neighborOrder = [4]grid.Direction{grid.Left, grid.Right, grid.Up, grid.Down}

// Path is an ordered cell sequence from start to goal, both inclusive.
type Path []grid.Cell

// Next returns the first cell after the start, if the path has one.
func (p Path) Next() (grid.Cell, bool) {
	if len(p) < 2 {
		return grid.Cell{}, false
	}
	return p[1], true
}

// Pixels converts the path to pixel positions on m.
func (p Path) Pixels(m grid.Mapper) []grid.Pixel {
	return m.CellsToPixels(p)
}

// Result carries a search outcome and the number of expanded nodes.
// Path is nil when the goal is unreachable.
type Result struct {
	Path     Path
	Expanded int
}

// Engine runs searches on a fixed grid.
type Engine struct {
	mapper grid.Mapper
}

// NewEngine creates an engine for the grid described by m.
func NewEngine(m grid.Mapper) *Engine {
	return &Engine{mapper: m}
}

// Mapper returns the grid mapper the engine searches on.
func (e *Engine) Mapper() grid.Mapper {
	return e.mapper
}

// Search finds a shortest path from start to goal avoiding blocked cells.
// It returns nil, nil when no path exists.
func (e *Engine) Search(start, goal grid.Cell, blocked ObstacleSet) (Path, error) {
	res, err := e.SearchWithStats(start, goal, blocked)
	if err != nil {
		return nil, err
	}
	return res.Path, nil
}

// SearchWithStats is Search that also reports how many nodes were expanded.
func (e *Engine) SearchWithStats(start, goal grid.Cell, blocked ObstacleSet) (Result, error) {
	if !e.mapper.InBounds(start) {
		return Result{}, fmt.Errorf("pathfind: start %v out of bounds: %w", start, grid.ErrInvalidInput)
	}
	if !e.mapper.InBounds(goal) {
		return Result{}, fmt.Errorf("pathfind: goal %v out of bounds: %w", goal, grid.ErrInvalidInput)
	}

	open := &frontier{}
	nodes := make(map[grid.Cell]*node)
	closed := make(map[grid.Cell]struct{})
	seq := 0

	root := &node{cell: start, h: start.Manhattan(goal)}
	root.f = root.h
	nodes[start] = root
	heap.Push(open, root)

	expanded := 0
	for open.Len() > 0 {
		cur := heap.Pop(open).(*node)
		closed[cur.cell] = struct{}{}
		expanded++

		if cur.cell == goal {
			return Result{Path: reconstruct(cur), Expanded: expanded}, nil
		}

		for _, d := range neighborOrder {
			next := cur.cell.Step(d)
			if !e.mapper.InBounds(next) {
				continue
			}
			if _, done := closed[next]; done {
				continue
			}
			// Food and tail cells are valid targets even when occupied.
			if next != goal && blocked.Blocked(next) {
				continue
			}

			g := cur.g + 1
			n, seen := nodes[next]
			if !seen {
				seq++
				n = &node{cell: next, g: g, h: next.Manhattan(goal), parent: cur, seq: seq}
				n.f = n.g + n.h
				nodes[next] = n
				heap.Push(open, n)
				continue
			}
			if g < n.g {
				n.g = g
				n.f = g + n.h
				n.parent = cur
				heap.Fix(open, n.index)
			}
		}
	}

	return Result{Expanded: expanded}, nil
}

// FindPath searches between two pixel positions with the body as obstacles,
// tail ignored, and returns the path in pixel coordinates. It returns nil, nil
// when no path exists.
func (e *Engine) FindPath(start, goal grid.Pixel, body []grid.Pixel) ([]grid.Pixel, error) {
	if !e.mapper.PixelInBounds(start) {
		return nil, fmt.Errorf("pathfind: start %v out of bounds: %w", start, grid.ErrInvalidInput)
	}
	if !e.mapper.PixelInBounds(goal) {
		return nil, fmt.Errorf("pathfind: goal %v out of bounds: %w", goal, grid.ErrInvalidInput)
	}

	path, err := e.Search(e.mapper.ToGrid(start), e.mapper.ToGrid(goal), BlockedCells(e.mapper, body, true))
	if err != nil {
		return nil, err
	}
	return path.Pixels(e.mapper), nil
}

func reconstruct(goal *node) Path {
	n := 0
	for cur := goal; cur != nil; cur = cur.parent {
		n++
	}
	path := make(Path, n)
	for cur := goal; cur != nil; cur = cur.parent {
		n--
		path[n] = cur.cell
	}
	return path
}
