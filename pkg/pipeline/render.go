package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/circlet/pkg/grid"
	"github.com/matzehuels/circlet/pkg/pattern"
	"github.com/matzehuels/circlet/pkg/render"
	"github.com/matzehuels/circlet/pkg/render/layout"
	"github.com/matzehuels/circlet/pkg/render/sink"
)

// Render writes one pattern in every format of opts. token and url are
// embedded where the format has room for them.
func Render(ctx context.Context, d pattern.Descriptor, token, url string, opts Options) (map[string][]byte, error) {
	l := layout.Build(d, opts.Palette)
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(l, svgOptions(token, url, opts)...)
		case FormatPNG:
			data, err = sink.RenderPNG(l, pngOptions(opts)...)
		case FormatPDF:
			data, err = sink.RenderPDF(ctx, l, sink.WithPDFSVGOptions(svgOptions(token, url, opts)...))
		case FormatJSON:
			data, err = sink.RenderJSON(d, l,
				sink.WithJSONToken(token),
				sink.WithJSONShareURL(url),
				sink.WithJSONLayout(),
			)
		case FormatText:
			data = sink.RenderText(l, sink.WithColumns(opts.Columns))
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderGrid writes a whole wall in every format of opts.
func RenderGrid(ctx context.Context, w *grid.Wall, opts Options) (map[string][]byte, error) {
	if err := ValidateGridFormats(opts.Formats); err != nil {
		return nil, err
	}

	geo := w.Geometry()
	tiles := make([]layout.Layout, w.Len())
	for i, d := range w.Tiles() {
		tiles[i] = layout.Build(d, opts.Palette)
	}
	page := opts.Palette.Page()

	var svgOpts []sink.SVGOption
	if opts.Transparent {
		svgOpts = append(svgOpts, sink.WithTransparent())
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderGridSVG(geo, tiles, page, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderGridPNG(geo, tiles, page, pngOptions(opts)...)
		case FormatPDF:
			data, err = render.ToPDF(ctx, sink.RenderGridSVG(geo, tiles, page, svgOpts...))
		}

		if err != nil {
			return nil, fmt.Errorf("render grid %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func svgOptions(token, url string, opts Options) []sink.SVGOption {
	var out []sink.SVGOption
	if token != "" {
		out = append(out, sink.WithTitle(token))
	}
	if url != "" {
		out = append(out, sink.WithLink(url))
	}
	if opts.Transparent {
		out = append(out, sink.WithTransparent())
	}
	return out
}

func pngOptions(opts Options) []sink.PNGOption {
	out := []sink.PNGOption{sink.WithScale(opts.Scale)}
	if opts.Transparent {
		out = append(out, sink.WithPNGTransparent())
	}
	return out
}
