package layout

import (
	"math"

	"github.com/matzehuels/circlet/pkg/pattern"
)

const (
	// Padding is the margin around the outer circle inside a tile.
	Padding = pattern.MaxDiameter / 4

	// MaxTileSize is the edge of the largest possible tile.
	MaxTileSize = pattern.MaxDiameter + Padding

	// MaxDotDiameter bounds the dot drawn on a line.
	MaxDotDiameter = 4

	sizeVariance   = 100
	offsetVariance = 10
)

// Layout is the drawable form of one pattern.
type Layout struct {
	Diameter   float64 `json:"diameter"`
	TileSize   float64 `json:"tile_size"`
	OuterWidth float64 `json:"outer_width"`
	Foreground string  `json:"foreground"`
	Background string  `json:"background"`
	Rings      []Ring  `json:"rings"`
	Lines      []Line  `json:"lines"`
}

// Ring is an inner circle stroke. R is the centreline radius.
type Ring struct {
	CX    float64 `json:"cx"`
	CY    float64 `json:"cy"`
	R     float64 `json:"r"`
	Width float64 `json:"width"`
	Left  bool    `json:"left"` // anchored to the left edge, else the right
	Top   bool    `json:"top"`  // anchored to the top edge, else the bottom
}

// Line is a horizontal stroke across the circle, rotated about the centre.
// Y and the dot position are given in the unrotated frame.
type Line struct {
	Angle        float64 `json:"angle"`
	Y            float64 `json:"y"`
	Width        float64 `json:"width"`
	BottomOffset float64 `json:"bottom_offset"`
	Dot          *Dot    `json:"dot,omitempty"`
}

// Dot sits on a line. Diameter excludes the hollow dot's stroke; Inner is
// the diameter of the filled centre, zero when there is none.
type Dot struct {
	CX       float64 `json:"cx"`
	CY       float64 `json:"cy"`
	Diameter float64 `json:"diameter"`
	Hollow   bool    `json:"hollow"`
	Inner    float64 `json:"inner"`
}

// Build derives the layout of d using palette p. d must be valid.
func Build(d pattern.Descriptor, p pattern.Palette) Layout {
	diameter := float64(d.Diameter)
	fg, bg := p.Colors(d.Inverse)

	l := Layout{
		Diameter:   diameter,
		TileSize:   diameter + Padding,
		OuterWidth: math.Ceil(diameter / (pattern.MaxDiameter / 4)),
		Foreground: fg,
		Background: bg,
		Rings:      make([]Ring, 0, d.NumCircles),
		Lines:      make([]Line, 0, d.NumLines),
	}
	for i := range d.NumCircles {
		l.Rings = append(l.Rings, buildRing(diameter, d.CircleRow(i)))
	}
	for j := range d.NumLines {
		l.Lines = append(l.Lines, buildLine(diameter, d.LineRow(j), j))
	}
	return l
}

// Radius is the radius of the outer circle's interior, the clip region.
func (l Layout) Radius() float64 { return l.Diameter / 2 }

// OuterR is the centreline radius of the outer stroke.
func (l Layout) OuterR() float64 { return l.Diameter/2 + l.OuterWidth/2 }

// Rotate returns (x, y) rotated clockwise by l's angle, from the unrotated
// frame into tile coordinates.
func (ln Line) Rotate(x, y float64) (float64, float64) {
	s, c := math.Sincos(ln.Angle * math.Pi / 180)
	return x*c - y*s, x*s + y*c
}

// Unrotate maps a tile coordinate into l's unrotated frame.
func (ln Line) Unrotate(x, y float64) (float64, float64) {
	s, c := math.Sincos(-ln.Angle * math.Pi / 180)
	return x*c - y*s, x*s + y*c
}

// OuterR is the radius of the dot's painted disc, stroke included.
func (d Dot) OuterR(lineWidth float64) float64 {
	if d.Hollow {
		return d.Diameter/2 + lineWidth
	}
	return d.Diameter / 2
}

func buildRing(diameter float64, r []float64) Ring {
	size := diameter + r[0]*sizeVariance

	width := 0.5
	if diameter >= 80 {
		width = max(r[5]*2, 1)
	}

	box := size + 2*width
	ring := Ring{
		R:     size/2 + width/2,
		Width: width,
		Left:  pattern.FractionToBool(r[1]),
		Top:   pattern.FractionToBool(r[2]),
	}

	// Positions are computed against the circle's D×D box, then recentred.
	if ring.Left {
		ring.CX = r[3]*offsetVariance + box/2
	} else {
		ring.CX = diameter - r[3]*offsetVariance - box/2
	}
	if ring.Top {
		ring.CY = r[4]*offsetVariance + box/2
	} else {
		ring.CY = diameter - r[4]*offsetVariance - box/2
	}
	ring.CX -= diameter / 2
	ring.CY -= diameter / 2
	return ring
}

func buildLine(diameter float64, r []float64, j int) Line {
	width := 1.0
	if diameter/2 >= 50 {
		width = math.Floor(r[j]*2) + 0.5
	}

	start := r[6] * diameter
	line := Line{
		Angle:        r[5] * 360,
		Y:            start + width/2,
		Width:        width,
		BottomOffset: r[4] * diameter,
	}

	if pattern.FractionToBool(r[2]) {
		dot := &Dot{
			Diameter: math.Floor(r[0]*MaxDotDiameter) + 1,
			Hollow:   pattern.FractionToBool(r[1]),
			CY:       line.Y,
		}
		box := dot.Diameter
		if dot.Hollow {
			box += 2 * width
		}
		dot.CX = start + box/2 - diameter/2
		// The has-dot fraction doubles as the inner-dot selector.
		if pattern.FractionToBool(r[2]) && dot.Diameter > 2 {
			dot.Inner = dot.Diameter - 2
		}
		line.Dot = dot
	}
	return line
}
