package grid

import (
	"math"

	"github.com/matzehuels/circlet/pkg/pattern"
	"github.com/matzehuels/circlet/pkg/render/layout"
)

// CellSize is the minimum edge of a grid cell.
const CellSize = layout.MaxTileSize

// Geometry is a viewport split into Rows×Cols equal cells.
type Geometry struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Rows   int     `json:"rows"`
	Cols   int     `json:"cols"`
}

// FromViewport fits as many [CellSize] cells as the viewport holds. A
// viewport smaller than one cell still gets a single cell.
func FromViewport(width, height float64) Geometry {
	return Geometry{
		Width:  width,
		Height: height,
		Rows:   max(int(math.Floor(height/CellSize)), 1),
		Cols:   max(int(math.Floor(width/CellSize)), 1),
	}
}

// Len is the number of cells.
func (g Geometry) Len() int { return g.Rows * g.Cols }

// Cell returns the row and column of cell i, in row-major order.
func (g Geometry) Cell(i int) (row, col int) { return i / g.Cols, i % g.Cols }

// CellWidth is the width of one cell.
func (g Geometry) CellWidth() float64 { return g.Width / float64(g.Cols) }

// CellHeight is the height of one cell.
func (g Geometry) CellHeight() float64 { return g.Height / float64(g.Rows) }

// Center returns the centre of cell i in viewport coordinates.
func (g Geometry) Center(i int) (x, y float64) {
	row, col := g.Cell(i)
	return (float64(col) + 0.5) * g.CellWidth(), (float64(row) + 0.5) * g.CellHeight()
}

// At returns the cell under viewport point (x, y), or -1 outside the grid.
func (g Geometry) At(x, y float64) int {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return -1
	}
	col := min(int(x/g.CellWidth()), g.Cols-1)
	row := min(int(y/g.CellHeight()), g.Rows-1)
	return row*g.Cols + col
}

// HoverScale is the zoom applied to a hovered tile. Smaller patterns grow
// more, so every tile reads at a similar size under the pointer.
func HoverScale(diameter int) float64 {
	return 1 + math.Log(float64(pattern.MaxDiameter)/float64(diameter))
}

// ExpandedScale is the zoom of an expanded tile: the largest-diameter
// pattern spans the shorter side of the grid.
func ExpandedScale(diameter int, g Geometry) float64 {
	ratio := float64(pattern.MaxDiameter) / float64(diameter)
	return min(ratio*float64(g.Rows), ratio*float64(g.Cols))
}
