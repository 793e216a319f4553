package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/google/uuid"

	"github.com/matzehuels/circlet/pkg/grid"
	"github.com/matzehuels/circlet/pkg/render/layout"
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	transparent bool
	link        string
	title       string
	newID       func() string
}

// WithTransparent omits tile and page backgrounds.
func WithTransparent() SVGOption { return func(r *svgRenderer) { r.transparent = true } }

// WithLink wraps a single tile in a link, usually its share URL.
func WithLink(url string) SVGOption { return func(r *svgRenderer) { r.link = url } }

// WithTitle sets the document title.
func WithTitle(s string) SVGOption { return func(r *svgRenderer) { r.title = s } }

// WithIDs replaces the generator of element ids. Output is deterministic
// when fn is.
func WithIDs(fn func() string) SVGOption { return func(r *svgRenderer) { r.newID = fn } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{newID: uuid.NewString}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG renders one tile, its pattern centred in a square of l.TileSize.
func RenderSVG(l layout.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	size := l.TileSize

	var buf bytes.Buffer
	writeHeader(&buf, size, size)
	r.writeTitle(&buf)
	if r.link != "" {
		fmt.Fprintf(&buf, `<a href="%s" target="_blank">`+"\n", escapeXML(r.link))
	}
	r.writeTile(&buf, l, size/2, size/2, "")
	if r.link != "" {
		buf.WriteString("</a>\n")
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// RenderGridSVG renders a wall of tiles on a page coloured page. tiles are in
// row-major order; each is centred in its cell of geo.
func RenderGridSVG(geo grid.Geometry, tiles []layout.Layout, page string, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	var buf bytes.Buffer
	writeHeader(&buf, geo.Width, geo.Height)
	r.writeTitle(&buf)
	if !r.transparent {
		fmt.Fprintf(&buf, `<rect width="%.2f" height="%.2f" fill="%s"/>`+"\n", geo.Width, geo.Height, page)
	}
	for i, l := range tiles {
		if i >= geo.Len() {
			break
		}
		cx, cy := geo.Center(i)
		r.writeTile(&buf, l, cx, cy, fmt.Sprintf(` id="tile-%s" data-index="%d"`, r.newID(), i))
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func writeHeader(buf *bytes.Buffer, w, h float64) {
	fmt.Fprintf(buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
}

func (r *svgRenderer) writeTitle(buf *bytes.Buffer) {
	if r.title != "" {
		fmt.Fprintf(buf, "<title>%s</title>\n", escapeXML(r.title))
	}
}

// writeTile draws l centred on (cx, cy). attrs is appended to the group tag.
func (r *svgRenderer) writeTile(buf *bytes.Buffer, l layout.Layout, cx, cy float64, attrs string) {
	clip := "clip-" + r.newID()
	fg, bg := l.Foreground, l.Background

	fmt.Fprintf(buf, `<g class="tile"%s transform="translate(%.2f %.2f)">`+"\n", attrs, cx, cy)
	fmt.Fprintf(buf, `  <defs><clipPath id="%s"><circle r="%.2f"/></clipPath></defs>`+"\n", clip, l.Radius())
	if !r.transparent {
		half := l.TileSize / 2
		fmt.Fprintf(buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`+"\n",
			-half, -half, l.TileSize, l.TileSize, bg)
	}
	fmt.Fprintf(buf, `  <circle class="outer" r="%.2f" fill="none" stroke="%s" stroke-width="%.2f"/>`+"\n",
		l.OuterR(), fg, l.OuterWidth)

	fmt.Fprintf(buf, `  <g clip-path="url(#%s)">`+"\n", clip)
	for _, ring := range l.Rings {
		fmt.Fprintf(buf, `    <circle class="ring" cx="%.2f" cy="%.2f" r="%.2f" fill="none" stroke="%s" stroke-width="%.2f"/>`+"\n",
			ring.CX, ring.CY, ring.R, fg, ring.Width)
	}
	for _, ln := range l.Lines {
		writeLine(buf, ln, l.Radius(), fg, bg)
	}
	buf.WriteString("  </g>\n")
	buf.WriteString("</g>\n")
}

func writeLine(buf *bytes.Buffer, ln layout.Line, radius float64, fg, bg string) {
	fmt.Fprintf(buf, `    <g class="line" transform="rotate(%.2f)">`+"\n", ln.Angle)
	fmt.Fprintf(buf, `      <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.2f"/>`+"\n",
		-radius, ln.Y, radius, ln.Y, fg, ln.Width)

	if d := ln.Dot; d != nil {
		if d.Hollow {
			fmt.Fprintf(buf, `      <circle class="dot" cx="%.2f" cy="%.2f" r="%.2f" fill="%s" stroke="%s" stroke-width="%.2f"/>`+"\n",
				d.CX, d.CY, d.Diameter/2+ln.Width/2, bg, fg, ln.Width)
			if d.Inner > 0 {
				fmt.Fprintf(buf, `      <circle class="dot-inner" cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>`+"\n",
					d.CX, d.CY, d.Inner/2, fg)
			}
		} else {
			fmt.Fprintf(buf, `      <circle class="dot" cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>`+"\n",
				d.CX, d.CY, d.Diameter/2, fg)
		}
	}
	buf.WriteString("    </g>\n")
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
