package pattern

import (
	"slices"

	cerrors "github.com/matzehuels/circlet/pkg/errors"
)

// Descriptor bounds.
const (
	MinDiameter   = 30
	MaxDiameter   = 200
	MaxNumCircles = 12 // exclusive
	MaxNumLines   = 4  // exclusive
)

// Descriptor is the complete state of one pattern tile.
//
// RArrs holds one row of RowWidth fractions per inner circle followed by one
// per line; rows past NumCircles+NumLines are spare and ignored by the
// renderer. A descriptor is treated as immutable once handed to a renderer.
type Descriptor struct {
	Inverse    bool        `json:"inverse"`
	Diameter   int         `json:"diameter"`
	NumCircles int         `json:"numCircles"`
	NumLines   int         `json:"numLines"`
	RArrs      [][]float64 `json:"rArrs"`
}

// Overrides pins descriptor fields during generation. Nil fields are drawn
// at random; non-nil fields are used as given, including false and 0.
type Overrides struct {
	Inverse    *bool
	Diameter   *int
	NumCircles *int
	NumLines   *int
	RArrs      [][]float64
}

// Bool returns a pointer to b, for building Overrides.
func Bool(b bool) *bool { return &b }

// Int returns a pointer to n, for building Overrides.
func Int(n int) *int { return &n }

// Generate builds a descriptor, drawing every field o does not pin.
// A freshly drawn RArrs carries one spare row beyond NumCircles+NumLines.
func (g *Generator) Generate(o Overrides) Descriptor {
	var d Descriptor

	if o.Inverse != nil {
		d.Inverse = *o.Inverse
	} else {
		d.Inverse = g.Bool()
	}
	if o.Diameter != nil {
		d.Diameter = *o.Diameter
	} else {
		d.Diameter = g.Int(MaxDiameter, MinDiameter)
	}
	if o.NumCircles != nil {
		d.NumCircles = *o.NumCircles
	} else {
		d.NumCircles = g.Int(MaxNumCircles, 0)
	}
	if o.NumLines != nil {
		d.NumLines = *o.NumLines
	} else {
		d.NumLines = g.Int(MaxNumLines, 0)
	}
	if o.RArrs != nil {
		d.RArrs = cloneRows(o.RArrs)
	} else {
		d.RArrs = g.FractionMatrix(d.NumCircles + d.NumLines + 1)
	}
	return d
}

// Next builds the successor of prev for an animation tick: the polarity
// flips and everything else is redrawn, with exactly one row per shape.
func (g *Generator) Next(prev Descriptor) Descriptor {
	d := Descriptor{
		Inverse:    !prev.Inverse,
		NumCircles: g.Int(MaxNumCircles, 0),
		NumLines:   g.Int(MaxNumLines, 0),
	}
	d.RArrs = g.FractionMatrix(d.NumCircles + d.NumLines)
	d.Diameter = g.Int(MaxDiameter, MinDiameter)
	return d
}

// Generate builds a descriptor from the global source.
func Generate(o Overrides) Descriptor { return defaultGenerator.Generate(o) }

// Next builds the successor of prev from the global source.
func Next(prev Descriptor) Descriptor { return defaultGenerator.Next(prev) }

// Shapes returns the number of rArrs rows the renderer reads.
func (d Descriptor) Shapes() int {
	return d.NumCircles + d.NumLines
}

// CircleRow returns the fraction row driving inner circle i.
func (d Descriptor) CircleRow(i int) []float64 {
	return d.RArrs[i]
}

// LineRow returns the fraction row driving line j. Line rows follow the
// circle rows.
func (d Descriptor) LineRow(j int) []float64 {
	return d.RArrs[d.NumCircles+j]
}

// Clone returns a deep copy of d.
func (d Descriptor) Clone() Descriptor {
	d.RArrs = cloneRows(d.RArrs)
	return d
}

// Equal reports whether d and o describe the same pattern, spare rows included.
func (d Descriptor) Equal(o Descriptor) bool {
	if d.Inverse != o.Inverse || d.Diameter != o.Diameter ||
		d.NumCircles != o.NumCircles || d.NumLines != o.NumLines {
		return false
	}
	return slices.EqualFunc(d.RArrs, o.RArrs, slices.Equal[[]float64])
}

// Validate checks every descriptor invariant. It returns an
// errors.ErrCodeInvalidPattern error describing the first violation.
func (d Descriptor) Validate() error {
	if d.Diameter < MinDiameter || d.Diameter > MaxDiameter {
		return cerrors.New(cerrors.ErrCodeInvalidPattern, "diameter %d outside [%d, %d]", d.Diameter, MinDiameter, MaxDiameter)
	}
	if d.NumCircles < 0 || d.NumCircles >= MaxNumCircles {
		return cerrors.New(cerrors.ErrCodeInvalidPattern, "numCircles %d outside [0, %d)", d.NumCircles, MaxNumCircles)
	}
	if d.NumLines < 0 || d.NumLines >= MaxNumLines {
		return cerrors.New(cerrors.ErrCodeInvalidPattern, "numLines %d outside [0, %d)", d.NumLines, MaxNumLines)
	}
	if len(d.RArrs) < d.Shapes() {
		return cerrors.New(cerrors.ErrCodeInvalidPattern, "rArrs has %d rows, need at least %d", len(d.RArrs), d.Shapes())
	}
	for i, row := range d.RArrs {
		if len(row) != RowWidth {
			return cerrors.New(cerrors.ErrCodeInvalidPattern, "rArrs[%d] has %d values, want %d", i, len(row), RowWidth)
		}
		for k, x := range row {
			if x < 0 || x > 1 {
				return cerrors.New(cerrors.ErrCodeInvalidPattern, "rArrs[%d][%d] = %v outside [0, 1]", i, k, x)
			}
			if RoundFraction(x) != x {
				return cerrors.New(cerrors.ErrCodeInvalidPattern, "rArrs[%d][%d] = %v has more than two decimals", i, k, x)
			}
		}
	}
	return nil
}

func cloneRows(rows [][]float64) [][]float64 {
	if rows == nil {
		return nil
	}
	out := make([][]float64, len(rows))
	for i, r := range rows {
		out[i] = slices.Clone(r)
	}
	return out
}
