package grid

import (
	"github.com/matzehuels/circlet/pkg/pattern"
)

// Wall is a grid of independently regenerating tiles.
type Wall struct {
	geo      Geometry
	tiles    []pattern.Descriptor
	triggers *Triggers
	gen      *pattern.Generator
}

// NewWall fills every cell of geo with a fresh pattern from gen.
func NewWall(geo Geometry, gen *pattern.Generator) *Wall {
	if gen == nil {
		gen = pattern.NewGenerator(nil)
	}
	w := &Wall{gen: gen, triggers: NewTriggers(0, gen)}
	w.Resize(geo)
	return w
}

// Geometry returns the current geometry.
func (w *Wall) Geometry() Geometry { return w.geo }

// Len is the number of tiles.
func (w *Wall) Len() int { return len(w.tiles) }

// Tile returns tile i.
func (w *Wall) Tile(i int) pattern.Descriptor { return w.tiles[i] }

// Tiles returns the tiles in row-major order. The slice is shared.
func (w *Wall) Tiles() []pattern.Descriptor { return w.tiles }

// Triggers exposes the per-tile counters.
func (w *Wall) Triggers() *Triggers { return w.triggers }

// Tick regenerates the least-triggered tile and returns its index, or -1 for
// an empty wall.
func (w *Wall) Tick() int {
	i := w.triggers.Fire()
	if i >= 0 {
		w.Regenerate(i)
	}
	return i
}

// Regenerate replaces tile i with its successor.
func (w *Wall) Regenerate(i int) pattern.Descriptor {
	w.tiles[i] = w.gen.Next(w.tiles[i])
	return w.tiles[i]
}

// Set replaces tile i.
func (w *Wall) Set(i int, d pattern.Descriptor) { w.tiles[i] = d }

// Resize adopts geo. Tiles that still have a cell keep their pattern; new
// cells get fresh ones. Trigger counters restart from zero.
func (w *Wall) Resize(geo Geometry) {
	n := geo.Len()
	tiles := make([]pattern.Descriptor, n)
	copied := copy(tiles, w.tiles)
	for i := copied; i < n; i++ {
		tiles[i] = w.gen.Generate(pattern.Overrides{})
	}
	w.geo = geo
	w.tiles = tiles
	w.triggers.Reset(n)
}
