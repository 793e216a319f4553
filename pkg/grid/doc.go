// Package grid holds the state of a wall of pattern tiles.
//
// A [Geometry] divides a viewport into rows and columns of cells no smaller
// than the largest tile. Each cell owns one descriptor and one trigger
// counter; [Triggers.Fire] picks the next tile to regenerate uniformly among
// those that have been regenerated the fewest times, so every tile changes
// before any tile changes twice.
//
// [Wall] ties the pieces together:
//
//	w := grid.NewWall(grid.FromViewport(1920, 1080), pattern.NewGenerator(nil))
//	i := w.Tick() // regenerate one tile
//	d := w.Tile(i)
//
// Nothing here is safe for concurrent use. Callers serialize access through
// their own event loop.
package grid
