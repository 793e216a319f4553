package layout

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/matzehuels/circlet/pkg/pattern"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestBuildOuterCircle(t *testing.T) {
	tests := []struct {
		diameter  int
		wantWidth float64
	}{
		{30, 1},
		{50, 1},
		{51, 2},
		{100, 2},
		{199, 4},
		{200, 4},
	}

	for _, tt := range tests {
		l := Build(pattern.Descriptor{Diameter: tt.diameter}, pattern.DefaultPalette)
		if l.OuterWidth != tt.wantWidth {
			t.Errorf("diameter %d: OuterWidth = %v, want %v", tt.diameter, l.OuterWidth, tt.wantWidth)
		}
		if l.TileSize != float64(tt.diameter+Padding) {
			t.Errorf("diameter %d: TileSize = %v, want %v", tt.diameter, l.TileSize, tt.diameter+Padding)
		}
	}
}

func TestBuildColors(t *testing.T) {
	l := Build(pattern.Descriptor{Diameter: 50, Inverse: true}, pattern.DefaultPalette)
	if l.Foreground != "#bbb" || l.Background != "#555" {
		t.Errorf("inverse colours = (%s, %s)", l.Foreground, l.Background)
	}
}

func TestBuildRing(t *testing.T) {
	d := pattern.Descriptor{
		Diameter:   100,
		NumCircles: 2,
		RArrs: [][]float64{
			{0.5, 0.2, 0.7, 0.3, 0.4, 0.75, 0},
			{0, 0.6, 0.1, 0, 1, 0.1, 0.99},
		},
	}

	got := Build(d, pattern.DefaultPalette).Rings
	want := []Ring{
		// size 150, width 1.5, box 153: left edge at 3, bottom edge at 4.
		{CX: 3 + 76.5 - 50, CY: 100 - 4 - 76.5 - 50, R: 75.75, Width: 1.5, Left: true, Top: false},
		// size 100, width max(0.2, 1) = 1, box 102: right edge at 0, top edge at 10.
		{CX: 100 - 0 - 51 - 50, CY: 10 + 51 - 50, R: 50.5, Width: 1, Left: false, Top: true},
	}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("rings mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildRingSmallDiameter(t *testing.T) {
	d := pattern.Descriptor{
		Diameter:   79,
		NumCircles: 1,
		RArrs:      [][]float64{{0, 0, 0, 0, 0, 1, 0}},
	}
	if w := Build(d, pattern.DefaultPalette).Rings[0].Width; w != 0.5 {
		t.Errorf("Width = %v, want fixed 0.5 below diameter 80", w)
	}
}

func TestBuildLine(t *testing.T) {
	d := pattern.Descriptor{
		Diameter: 100,
		NumLines: 1,
		RArrs:    [][]float64{{0.8, 0.3, 0.1, 0, 0.6, 0.25, 0.2}},
	}

	got := Build(d, pattern.DefaultPalette).Lines
	want := []Line{{
		Angle:        90,
		Y:            20 + 0.75,
		Width:        1.5,
		BottomOffset: 60,
		Dot: &Dot{
			// hollow: box = 4 + 2*1.5 = 7, left edge at 20
			CX:       20 + 3.5 - 50,
			CY:       20.75,
			Diameter: 4,
			Hollow:   true,
			Inner:    2,
		},
	}}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildLineWithoutDot(t *testing.T) {
	d := pattern.Descriptor{
		Diameter: 60,
		NumLines: 1,
		RArrs:    [][]float64{{0.8, 0.3, 0.5, 0, 0, 0, 0}},
	}

	ln := Build(d, pattern.DefaultPalette).Lines[0]
	if ln.Dot != nil {
		t.Errorf("Dot = %+v, want none when rArrs[2] >= 0.5", ln.Dot)
	}
	if ln.Width != 1 {
		t.Errorf("Width = %v, want fixed 1 below diameter 100", ln.Width)
	}
}

func TestBuildLineWidthReadsOwnIndex(t *testing.T) {
	d := pattern.Descriptor{
		Diameter: 100,
		NumLines: 2,
		RArrs: [][]float64{
			{0, 0, 0.9, 0, 0, 0, 0},
			{0, 0.9, 0.9, 0, 0, 0, 0},
		},
	}

	lines := Build(d, pattern.DefaultPalette).Lines
	if lines[0].Width != 0.5 {
		t.Errorf("line 0 Width = %v, want 0.5 from rArrs[0][0]", lines[0].Width)
	}
	if lines[1].Width != 1.5 {
		t.Errorf("line 1 Width = %v, want 1.5 from rArrs[1][1]", lines[1].Width)
	}
}

func TestBuildIgnoresSpareRows(t *testing.T) {
	d := pattern.NewSeededGenerator(21).Generate(pattern.Overrides{NumCircles: pattern.Int(3), NumLines: pattern.Int(2)})
	l := Build(d, pattern.DefaultPalette)
	if len(l.Rings) != 3 || len(l.Lines) != 2 {
		t.Errorf("got %d rings and %d lines, want 3 and 2", len(l.Rings), len(l.Lines))
	}
}

func TestLineRotateRoundTrip(t *testing.T) {
	ln := Line{Angle: 37}
	x, y := ln.Rotate(12, -5)
	ux, uy := ln.Unrotate(x, y)
	if diff := cmp.Diff([]float64{12, -5}, []float64{ux, uy}, approx); diff != "" {
		t.Errorf("Unrotate(Rotate(p)) mismatch:\n%s", diff)
	}

	// Clockwise in y-down coordinates: +x turns towards +y.
	x, y = Line{Angle: 90}.Rotate(1, 0)
	if diff := cmp.Diff([]float64{0, 1}, []float64{x, y}, approx); diff != "" {
		t.Errorf("Rotate(90) mismatch:\n%s", diff)
	}
}

func TestInk(t *testing.T) {
	d := pattern.Descriptor{
		Diameter: 100,
		NumLines: 1,
		// Horizontal line 10px below centre, no dot.
		RArrs: [][]float64{{0, 0, 0.9, 0, 0, 0, 0.1}},
	}
	l := Build(d, pattern.DefaultPalette)
	ln := l.Lines[0]

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"centre", 0, 0, false},
		{"on line", 0, ln.Y, true},
		{"on line near edge", 45, ln.Y, true},
		{"outer stroke", 51, 0, true},
		{"outside tile circle", 60, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.Ink(tt.x, tt.y, 0.25); got != tt.want {
				t.Errorf("Ink(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestInkHollowDotCoversLine(t *testing.T) {
	l := Layout{
		Diameter:   100,
		OuterWidth: 2,
		Lines: []Line{{
			Y:     0,
			Width: 1,
			Dot:   &Dot{CX: 0, CY: 0, Diameter: 4, Hollow: true},
		}},
	}

	if l.Ink(0, 0, 0.1) {
		t.Error("hollow dot centre should show background over the line")
	}
	if !l.Ink(2.5, 0, 0.1) {
		t.Error("hollow dot stroke should be inked")
	}
	if !l.Ink(10, 0, 0.1) {
		t.Error("line beyond the dot should be inked")
	}

	l.Lines[0].Dot.Inner = 2
	if !l.Ink(0, 0, 0.1) {
		t.Error("inner dot should be inked")
	}
}
