// Package layout turns a pattern descriptor into drawing geometry.
//
// Every renderer (SVG, PNG, terminal) draws from the same [Layout], so the
// mapping from rArrs fractions to sizes, offsets and rotations lives here and
// only here.
//
// # Coordinates
//
// All values are in pixels at scale 1, with the origin at the tile centre and
// y growing downwards. The outer circle's interior has radius Diameter/2 and
// clips every ring and line; the outer stroke sits just outside it.
//
// # Fraction contract
//
// Circle row (rArrs[i], i < numCircles):
//
//	[0] size variance    diameter + r*100
//	[1] x anchor         left edge if r < 0.5, else right edge
//	[2] y anchor         top edge if r < 0.5, else bottom edge
//	[3] x offset         r*10 from the anchor edge
//	[4] y offset         r*10 from the anchor edge
//	[5] border width     max(r*2, 1), fixed 0.5 below diameter 80
//
// Line row (rArrs[numCircles+j]):
//
//	[0] dot diameter     floor(r*4)+1
//	[1] hollow dot       r < 0.5
//	[2] has dot          r < 0.5, and the same value selects the inner dot
//	[4] bottom offset    r*diameter
//	[5] rotation         r*360 degrees clockwise
//	[6] start offset     r*diameter, shared by the line and its dot
//
// A line's stroke width reads rArrs[numCircles+j][j], the line's own index
// into its own row.
package layout
