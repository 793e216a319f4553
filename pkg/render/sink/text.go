package sink

import (
	"strings"

	"github.com/matzehuels/circlet/pkg/render/layout"
)

// DefaultColumns is the default width of text output in terminal cells.
const DefaultColumns = 32

const brailleBase = 0x2800

// brailleBits maps a dot at (col, row) inside a 2×4 cell to its bit.
var brailleBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// TextOption configures text rendering.
type TextOption func(*textRenderer)

type textRenderer struct {
	cols int
}

// WithColumns sets the output width in terminal cells.
func WithColumns(n int) TextOption { return func(r *textRenderer) { r.cols = n } }

// RenderText draws one tile with braille characters, newline terminated.
func RenderText(l layout.Layout, opts ...TextOption) []byte {
	r := textRenderer{cols: DefaultColumns}
	for _, opt := range opts {
		opt(&r)
	}
	return []byte(strings.Join(Braille(l, r.cols), "\n") + "\n")
}

// Braille rasterizes the tile into cols terminal cells per line. Each cell
// holds 2×4 dots and a terminal cell is about twice as tall as it is wide,
// so the square tile takes cols/2 lines.
func Braille(l layout.Layout, cols int) []string {
	cols = max(cols, 1)
	rows := max((cols+1)/2, 1)

	dotsX, dotsY := cols*2, rows*4
	step := l.TileSize / float64(dotsX)
	tol := step / 2
	// Centre the dot field vertically when rounding made it taller.
	offsetY := (float64(dotsY)*step - l.TileSize) / 2

	lines := make([]string, rows)
	var sb strings.Builder
	for row := range rows {
		sb.Reset()
		for col := range cols {
			cell := rune(brailleBase)
			for dy := range 4 {
				for dx := range 2 {
					x := (float64(col*2+dx)+0.5)*step - l.TileSize/2
					y := (float64(row*4+dy)+0.5)*step - l.TileSize/2 - offsetY
					if l.Ink(x, y, tol) {
						cell |= brailleBits[dy][dx]
					}
				}
			}
			sb.WriteRune(cell)
		}
		lines[row] = sb.String()
	}
	return lines
}

// Blank reports whether s contains only empty braille cells and spaces.
func Blank(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool {
		return r != brailleBase && r != ' ' && r != '\n'
	}) < 0
}
