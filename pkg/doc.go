// Package pkg provides the core libraries for circlet pattern generation.
//
// # Overview
//
// Circlet draws small geometric patterns: an outer circle holding a few
// partial inner circles and rotated lines. Every pattern is fully described
// by a compact [pattern.Descriptor], which round-trips losslessly through a
// URL-safe token carried in the "t" query field of a share link.
//
// # Architecture
//
// The typical data flow:
//
//	token / share URL / seed
//	         ↓
//	    [pattern] package (generate or decode a Descriptor)
//	         ↓
//	    [render/layout] package (derive drawable geometry)
//	         ↓
//	    [render/sink] package (SVG, PNG, PDF, JSON, braille text)
//
// A wall of tiles adds [grid] (viewport cells and fair regeneration) and
// [animate] (the gated regeneration timer).
//
// # Quick Start
//
//	d := pattern.Generate(pattern.Overrides{})
//	token, _ := pattern.Encode(d)
//	url, _ := location.ShareTokenURL(location.DefaultBaseURL, token)
//
//	l := layout.Build(d, pattern.DefaultPalette)
//	svg := sink.RenderSVG(l, sink.WithLink(url))
//
// # Main Packages
//
// [pattern] - Descriptor model, random generation with overrides, and the
// token codec. Decoding is strict: any malformed token is a decode error.
//
// [location] - Reading and writing the token in a URL's query string.
//
// [render/layout] - Turns a descriptor into rings, lines and dots with final
// coordinates and stroke widths.
//
// [render/sink] - Output formats. SVG is written directly, PNG is rasterized
// with gg, PDF goes through rsvg-convert.
//
// [grid] - Viewport geometry and the wall of tiles with least-triggered
// regeneration.
//
// [animate] - Periodic regeneration that pauses while hidden, hovered,
// expanded or disabled, with exactly one live timer.
//
// [pipeline] - Resolve → layout → render, with an artifact cache. Shared by
// every CLI command.
//
// [cache] - Artifact cache (file and no-op) keyed by token and render options.
//
// [config] - TOML settings for palette, animation, share links and defaults.
//
// [observability] - Hooks for pipeline, codec and cache events.
//
// [errors] - Structured error codes and input validation.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/pattern/...    # Specific package
//	go test -run Example ./...   # Examples only
//
// [pattern]: https://pkg.go.dev/github.com/matzehuels/circlet/pkg/pattern
// [location]: https://pkg.go.dev/github.com/matzehuels/circlet/pkg/location
// [render/layout]: https://pkg.go.dev/github.com/matzehuels/circlet/pkg/render/layout
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/circlet/pkg/render/sink
// [grid]: https://pkg.go.dev/github.com/matzehuels/circlet/pkg/grid
// [animate]: https://pkg.go.dev/github.com/matzehuels/circlet/pkg/animate
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/circlet/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/circlet/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/circlet/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/circlet/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/circlet/pkg/errors
package pkg
