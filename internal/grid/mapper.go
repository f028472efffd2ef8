package grid

import (
	"fmt"

	"github.com/vovakirdan/snake-astar/internal/core"
)

// DefaultCellSize is the pixel size of one cell in the reference layout.
const DefaultCellSize = 10

// Bounds is the fixed rectangle [0, Cols) × [0, Rows) of a session.
type Bounds struct {
	Cols, Rows int
}

// Mapper converts between pixel and cell coordinates for a fixed grid.
type Mapper struct {
	cellSize int
	bounds   Bounds
	rect     core.Rect
}

// NewMapper derives the grid from a window size in pixels and a cell size.
func NewMapper(widthPx, heightPx, cellSize int) (Mapper, error) {
	if cellSize <= 0 {
		return Mapper{}, fmt.Errorf("grid: cell size %d: %w", cellSize, ErrInvalidInput)
	}
	cols, rows := widthPx/cellSize, heightPx/cellSize
	if cols <= 0 || rows <= 0 {
		return Mapper{}, fmt.Errorf("grid: window %dx%d holds no %dpx cells: %w",
			widthPx, heightPx, cellSize, ErrInvalidInput)
	}
	return Mapper{
		cellSize: cellSize,
		bounds:   Bounds{Cols: cols, Rows: rows},
		rect:     core.NewRect(0, 0, cols, rows),
	}, nil
}

// CellSize returns the pixel size of a cell.
func (m Mapper) CellSize() int {
	return m.cellSize
}

// Bounds returns the grid dimensions in cells.
func (m Mapper) Bounds() Bounds {
	return m.bounds
}

// ToGrid converts a pixel position to the cell containing it.
// Coordinates are non-negative by construction, so truncating division
// is floor division here.
func (m Mapper) ToGrid(p Pixel) Cell {
	return Cell{Col: p.X / m.cellSize, Row: p.Y / m.cellSize}
}

// ToPixel converts a cell to the pixel position of its top-left corner.
func (m Mapper) ToPixel(c Cell) Pixel {
	return Pixel{X: c.Col * m.cellSize, Y: c.Row * m.cellSize}
}

// InBounds reports whether c lies on the grid.
func (m Mapper) InBounds(c Cell) bool {
	return m.rect.Contains(c.Col, c.Row)
}

// PixelInBounds reports whether a pixel position falls on the grid.
// Negative pixels are rejected before division so that -5/10 == 0 does
// not sneak in.
func (m Mapper) PixelInBounds(p Pixel) bool {
	if p.X < 0 || p.Y < 0 {
		return false
	}
	return m.InBounds(m.ToGrid(p))
}

// CellsToPixels converts a sequence of cells to pixel positions.
func (m Mapper) CellsToPixels(cells []Cell) []Pixel {
	if cells == nil {
		return nil
	}
	out := make([]Pixel, len(cells))
	for i, c := range cells {
		out[i] = m.ToPixel(c)
	}
	return out
}
