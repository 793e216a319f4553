// Package sink writes pattern layouts in concrete output formats.
//
// # Overview
//
// A "sink" turns a computed [layout.Layout] into bytes:
//
//   - SVG: vector output of one tile ([RenderSVG]) or a whole wall ([RenderGridSVG])
//   - PNG: native raster output via fogleman/gg ([RenderPNG], [RenderGridPNG])
//   - PDF: print output, SVG converted by rsvg-convert ([RenderPDF])
//   - JSON: descriptor, token and geometry for external tools ([RenderJSON])
//   - Text: braille-dot rendering for terminals ([RenderText])
//
// All sinks draw from the same layout, so a pattern looks the same in every
// format. Options follow the functional-option style:
//
//	svg := sink.RenderSVG(l, sink.WithLink(shareURL), sink.WithTitle(token))
//	png, err := sink.RenderPNG(l, sink.WithScale(2))
//
// [layout.Layout]: github.com/matzehuels/circlet/pkg/render/layout.Layout
package sink
