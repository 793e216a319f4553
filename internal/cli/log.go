// Package cli implements the circlet command-line interface.
//
// This package provides commands for generating circle patterns, converting
// them to and from share tokens, rendering single patterns and whole walls,
// and browsing a live wall in the terminal. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - generate: Draw a random (or seeded, or pinned) pattern and print it
//   - encode, decode: Convert between descriptor JSON and share tokens
//   - render: Write one pattern as SVG, PNG, PDF, JSON or braille text
//   - grid: Write a wall of patterns sized to a viewport
//   - view: Interactive animated wall in the terminal
//   - cache: Manage the render cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// routes pipeline, codec and cache events to the log.
//
// # Example
//
//	import "github.com/matzehuels/circlet/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/circlet/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Rendered 3 formats (12ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// =============================================================================
// Debug hooks
// =============================================================================

// logHooks reports pipeline, codec and cache events at debug level.
type logHooks struct {
	logger *log.Logger
}

func installLogHooks(l *log.Logger) {
	h := logHooks{logger: l}
	observability.SetPipelineHooks(h)
	observability.SetCodecHooks(h)
	observability.SetCacheHooks(h)
}

func (h logHooks) OnResolve(_ context.Context, source string, shapes int, err error) {
	h.logger.Debug("resolve", "source", source, "shapes", shapes, "err", err)
}

func (h logHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render start", "formats", formats)
}

func (h logHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.logger.Debug("render done", "formats", formats, "duration", d, "err", err)
}

func (h logHooks) OnEncode(_ context.Context, tokenLen int, err error) {
	h.logger.Debug("encode", "token_len", tokenLen, "err", err)
}

func (h logHooks) OnDecode(_ context.Context, tokenLen int, err error) {
	h.logger.Debug("decode", "token_len", tokenLen, "err", err)
}

func (h logHooks) OnCacheHit(_ context.Context, key string) {
	h.logger.Debug("cache hit", "key", key)
}

func (h logHooks) OnCacheMiss(_ context.Context, key string) {
	h.logger.Debug("cache miss", "key", key)
}

func (h logHooks) OnCacheSet(_ context.Context, key string, size int) {
	h.logger.Debug("cache set", "key", key, "bytes", size)
}
