package layout

import "math"

// Ink reports whether the point (x, y), in tile coordinates, is painted in
// the foreground colour. tol widens every stroke to at least 2*tol so thin
// strokes survive coarse sampling. Shapes are tested topmost first: lines in
// reverse order, then rings, since a hollow dot's background covers what
// lies beneath it.
func (l Layout) Ink(x, y, tol float64) bool {
	dist := math.Hypot(x, y)
	radius := l.Radius()

	if dist > radius {
		return dist <= radius+l.OuterWidth+tol
	}
	if dist >= radius-tol {
		return true
	}

	for i := len(l.Lines) - 1; i >= 0; i-- {
		ln := l.Lines[i]
		ux, uy := ln.Unrotate(x, y)

		if d := ln.Dot; d != nil {
			dd := math.Hypot(ux-d.CX, uy-d.CY)
			if dd <= d.OuterR(ln.Width)+tol {
				return d.ink(dd, tol)
			}
		}
		if math.Abs(uy-ln.Y) <= max(ln.Width/2, tol) && math.Abs(ux) <= radius {
			return true
		}
	}

	for _, r := range l.Rings {
		if math.Abs(math.Hypot(x-r.CX, y-r.CY)-r.R) <= max(r.Width/2, tol) {
			return true
		}
	}
	return false
}

func (d Dot) ink(dist, tol float64) bool {
	if !d.Hollow {
		return true
	}
	if d.Inner > 0 && dist <= d.Inner/2+tol {
		return true
	}
	return dist >= d.Diameter/2-tol
}
