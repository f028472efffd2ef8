// Package policy turns grid searches into one safe move per tick.
//
// Moves are chosen in a fixed order of preference:
//
//  1. follow the shortest path to the food;
//  2. otherwise chase the tail, which keeps the snake moving through cells
//     that free up as it advances;
//  3. otherwise step onto the first free neighbor in Up, Down, Left, Right
//     order;
//  4. otherwise keep going Right.
//
// A Policy holds no per-tick state: the same inputs always yield the same
// Decision.
package policy

import (
	"fmt"

	"github.com/vovakirdan/snake-astar/internal/grid"
	"github.com/vovakirdan/snake-astar/internal/pathfind"
)

// Source names the rule that produced a decision.
type Source int

const (
	SourceFood Source = iota
	SourceTail
	SourceScan
	SourceFallback
)

func (s Source) String() string {
	switch s {
	case SourceFood:
		return "food"
	case SourceTail:
		return "tail"
	case SourceScan:
		return "scan"
	case SourceFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Decision is the move chosen for one tick.
type Decision struct {
	Direction grid.Direction
	// Path is the route being followed in pixel coordinates, head first.
	// It is nil for scan and fallback moves.
	Path   []grid.Pixel
	Source Source
	// Expanded counts the search nodes expanded while deciding.
	Expanded int
}

// Policy picks moves on a fixed grid.
type Policy struct {
	engine *pathfind.Engine
}

// New creates a policy for the grid described by m.
func New(m grid.Mapper) *Policy {
	return &Policy{engine: pathfind.NewEngine(m)}
}

// Mapper returns the grid the policy plans on.
func (p *Policy) Mapper() grid.Mapper {
	return p.engine.Mapper()
}

// NextMove decides the direction for the next tick. body lists the snake
// segments head first. It fails with grid.ErrInvalidInput when body is
// empty or when head or food lie off the grid.
func (p *Policy) NextMove(head, food grid.Pixel, body []grid.Pixel) (Decision, error) {
	m := p.engine.Mapper()
	if len(body) == 0 {
		return Decision{}, fmt.Errorf("policy: empty body: %w", grid.ErrInvalidInput)
	}
	if !m.PixelInBounds(head) {
		return Decision{}, fmt.Errorf("policy: head %v out of bounds: %w", head, grid.ErrInvalidInput)
	}
	if !m.PixelInBounds(food) {
		return Decision{}, fmt.Errorf("policy: food %v out of bounds: %w", food, grid.ErrInvalidInput)
	}

	start := m.ToGrid(head)
	blocked := pathfind.BlockedCells(m, body, true)
	expanded := 0

	res, err := p.engine.SearchWithStats(start, m.ToGrid(food), blocked)
	if err != nil {
		return Decision{}, err
	}
	expanded += res.Expanded
	if next, ok := res.Path.Next(); ok {
		return Decision{
			Direction: grid.DirectionTo(start, next),
			Path:      res.Path.Pixels(m),
			Source:    SourceFood,
			Expanded:  expanded,
		}, nil
	}

	if len(body) >= 2 {
		tail := body[len(body)-1]
		if m.PixelInBounds(tail) {
			// The tail is dropped from the body before the usual tail
			// exclusion, so the segment ahead of it is free as well.
			tailBlocked := pathfind.BlockedCells(m, body[:len(body)-1], true)
			res, err := p.engine.SearchWithStats(start, m.ToGrid(tail), tailBlocked)
			if err != nil {
				return Decision{}, err
			}
			expanded += res.Expanded
			if next, ok := res.Path.Next(); ok {
				return Decision{
					Direction: grid.DirectionTo(start, next),
					Path:      res.Path.Pixels(m),
					Source:    SourceTail,
					Expanded:  expanded,
				}, nil
			}
		}
	}

	for _, d := range grid.ScanOrder {
		next := start.Step(d)
		if m.InBounds(next) && !blocked.Blocked(next) {
			return Decision{Direction: d, Source: SourceScan, Expanded: expanded}, nil
		}
	}

	return Decision{Direction: grid.Right, Source: SourceFallback, Expanded: expanded}, nil
}
