// Package render converts rendered patterns between output formats.
//
// # Overview
//
// Pattern geometry lives in the [layout] subpackage and the output writers in
// [sink]. This package holds the one piece both need from outside Go: [ToPDF],
// which shells out to rsvg-convert (librsvg).
//
//	svg := sink.RenderSVG(l)
//	pdf, err := render.ToPDF(ctx, svg)
//
// PNG output does not need the converter; [sink.RenderPNG] rasterizes
// natively.
//
// [layout]: github.com/matzehuels/circlet/pkg/render/layout
// [sink]: github.com/matzehuels/circlet/pkg/render/sink
// [sink.RenderPNG]: github.com/matzehuels/circlet/pkg/render/sink.RenderPNG
package render
