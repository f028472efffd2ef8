// Package grid maps between pixel positions and discrete grid cells and
// defines the four movement directions on that grid.
package grid

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/snake-astar/internal/core"
)

// ErrInvalidInput reports a caller contract violation: out-of-bounds
// coordinates, an empty body or a degenerate grid.
var ErrInvalidInput = errors.New("invalid input")

// Cell identifies one grid position. It is a plain value and can be used
// directly as a map key.
type Cell struct {
	Col, Row int
}

// Pixel is a position in pixel space, normally the top-left corner of a cell.
type Pixel struct {
	X, Y int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Col, c.Row)
}

func (p Pixel) String() string {
	return fmt.Sprintf("[%d,%d]", p.X, p.Y)
}

// Step returns the neighboring cell in direction d.
func (c Cell) Step(d Direction) Cell {
	dc, dr := d.Delta()
	return Cell{Col: c.Col + dc, Row: c.Row + dr}
}

// Manhattan returns the 4-connected distance between two cells.
func (c Cell) Manhattan(o Cell) int {
	return core.Abs(c.Col-o.Col) + core.Abs(c.Row-o.Row)
}

// Direction is one of the four grid moves.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// ScanOrder is the fixed order in which directions are tried when looking
// for any safe neighbor.
var ScanOrder = [4]Direction{Up, Down, Left, Right}

// Delta returns the column and row offsets of one step in direction d.
func (d Direction) Delta() (dc, dr int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	default:
		return 0, 0
	}
}

// Opposite returns the 180° reversal of d.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "UP"
	case Down:
		return "DOWN"
	case Left:
		return "LEFT"
	case Right:
		return "RIGHT"
	default:
		return "UNKNOWN"
	}
}

// ParseDirection parses a case-insensitive direction name.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	}
	return Right, fmt.Errorf("grid: unknown direction %q: %w", s, ErrInvalidInput)
}

// DirectionTo returns the direction of a single step from one cell toward
// another. A horizontal difference wins over a vertical one; identical cells
// yield Right.
func DirectionTo(from, to Cell) Direction {
	dc := to.Col - from.Col
	dr := to.Row - from.Row
	switch {
	case dc > 0:
		return Right
	case dc < 0:
		return Left
	case dr > 0:
		return Down
	case dr < 0:
		return Up
	}
	return Right
}
