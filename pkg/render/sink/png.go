package sink

import (
	"bytes"
	"fmt"
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/circlet/pkg/grid"
	"github.com/matzehuels/circlet/pkg/render/layout"
)

// MaxScale bounds the PNG scale factor.
const MaxScale = 16

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale       float64
	transparent bool
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithPNGTransparent leaves backgrounds unpainted.
func WithPNGTransparent() PNGOption {
	return func(r *pngRenderer) { r.transparent = true }
}

func newPNGRenderer(opts ...PNGOption) (pngRenderer, error) {
	r := pngRenderer{scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 || r.scale > MaxScale {
		return r, fmt.Errorf("png scale %.2f out of range (0, %d]", r.scale, MaxScale)
	}
	return r, nil
}

// RenderPNG rasterizes one tile.
func RenderPNG(l layout.Layout, opts ...PNGOption) ([]byte, error) {
	r, err := newPNGRenderer(opts...)
	if err != nil {
		return nil, err
	}

	dc := r.context(l.TileSize, l.TileSize)
	r.drawTile(dc, l, l.TileSize/2, l.TileSize/2)
	return encodePNG(dc)
}

// RenderGridPNG rasterizes a wall of tiles, laid out as [RenderGridSVG] does.
func RenderGridPNG(geo grid.Geometry, tiles []layout.Layout, page string, opts ...PNGOption) ([]byte, error) {
	r, err := newPNGRenderer(opts...)
	if err != nil {
		return nil, err
	}

	dc := r.context(geo.Width, geo.Height)
	if !r.transparent {
		dc.SetHexColor(page)
		dc.Clear()
	}
	for i, l := range tiles {
		if i >= geo.Len() {
			break
		}
		cx, cy := geo.Center(i)
		r.drawTile(dc, l, cx, cy)
	}
	return encodePNG(dc)
}

func (r pngRenderer) context(w, h float64) *gg.Context {
	dc := gg.NewContext(pixels(w*r.scale), pixels(h*r.scale))
	dc.Scale(r.scale, r.scale)
	return dc
}

func (r pngRenderer) drawTile(dc *gg.Context, l layout.Layout, cx, cy float64) {
	dc.Push()
	defer dc.Pop()

	dc.Translate(cx, cy)
	if !r.transparent {
		half := l.TileSize / 2
		dc.SetHexColor(l.Background)
		dc.DrawRectangle(-half, -half, l.TileSize, l.TileSize)
		dc.Fill()
	}

	dc.SetHexColor(l.Foreground)
	dc.SetLineWidth(l.OuterWidth)
	dc.DrawCircle(0, 0, l.OuterR())
	dc.Stroke()

	dc.DrawCircle(0, 0, l.Radius())
	dc.Clip()

	for _, ring := range l.Rings {
		dc.SetLineWidth(ring.Width)
		dc.DrawCircle(ring.CX, ring.CY, ring.R)
		dc.Stroke()
	}
	for _, ln := range l.Lines {
		drawLine(dc, ln, l.Radius(), l.Foreground, l.Background)
	}
}

func drawLine(dc *gg.Context, ln layout.Line, radius float64, fg, bg string) {
	dc.Push()
	defer dc.Pop()

	dc.Rotate(gg.Radians(ln.Angle))
	dc.SetHexColor(fg)
	dc.SetLineWidth(ln.Width)
	dc.DrawLine(-radius, ln.Y, radius, ln.Y)
	dc.Stroke()

	d := ln.Dot
	if d == nil {
		return
	}
	if !d.Hollow {
		dc.DrawCircle(d.CX, d.CY, d.Diameter/2)
		dc.Fill()
		return
	}
	dc.DrawCircle(d.CX, d.CY, d.Diameter/2+ln.Width/2)
	dc.SetHexColor(bg)
	dc.FillPreserve()
	dc.SetHexColor(fg)
	dc.Stroke()
	if d.Inner > 0 {
		dc.DrawCircle(d.CX, d.CY, d.Inner/2)
		dc.Fill()
	}
}

func encodePNG(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func pixels(v float64) int { return max(int(math.Ceil(v)), 1) }
