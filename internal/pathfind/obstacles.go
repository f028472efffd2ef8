package pathfind

import "github.com/vovakirdan/snake-astar/internal/grid"

// ObstacleSet is the set of cells a search may not step on.
// The goal cell is exempt regardless of membership.
type ObstacleSet map[grid.Cell]struct{}

// NewObstacleSet builds a set from explicit cells.
func NewObstacleSet(cells ...grid.Cell) ObstacleSet {
	s := make(ObstacleSet, len(cells))
	for _, c := range cells {
		s[c] = struct{}{}
	}
	return s
}

// BlockedCells maps every body segment to its cell. With ignoreTail set and
// more than one segment, the last segment is left out: it vacates on the
// same tick the head moves.
func BlockedCells(m grid.Mapper, body []grid.Pixel, ignoreTail bool) ObstacleSet {
	segments := body
	if ignoreTail && len(segments) > 1 {
		segments = segments[:len(segments)-1]
	}
	s := make(ObstacleSet, len(segments))
	for _, p := range segments {
		s[m.ToGrid(p)] = struct{}{}
	}
	return s
}

// Blocked reports whether c is an obstacle.
func (s ObstacleSet) Blocked(c grid.Cell) bool {
	_, ok := s[c]
	return ok
}

// Len returns the number of blocked cells.
func (s ObstacleSet) Len() int {
	return len(s)
}
