package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/circlet/pkg/cache"
	"github.com/matzehuels/circlet/pkg/grid"
	"github.com/matzehuels/circlet/pkg/location"
	"github.com/matzehuels/circlet/pkg/observability"
	"github.com/matzehuels/circlet/pkg/pattern"
	"github.com/matzehuels/circlet/pkg/render/layout"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete resolve → layout → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	resolveStart := time.Now()
	d, source, err := Resolve(ctx, opts)
	observability.Pipeline().OnResolve(ctx, source, d.Shapes(), err)
	if err != nil {
		return nil, fmt.Errorf("resolve: %w", err)
	}

	token, err := pattern.Encode(d)
	observability.Codec().OnEncode(ctx, len(token), err)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	url, err := location.ShareTokenURL(opts.BaseURL, token)
	if err != nil {
		return nil, fmt.Errorf("share url: %w", err)
	}

	result := &Result{
		Descriptor: d,
		Token:      token,
		URL:        url,
		Source:     source,
		Layout:     layout.Build(d, opts.Palette),
	}
	result.Stats.ResolveTime = time.Since(resolveStart)

	r.Logger.Info("resolved pattern",
		"source", source,
		"diameter", d.Diameter,
		"circles", d.NumCircles,
		"lines", d.NumLines)

	renderStart := time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, d, token, url, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = hit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// RenderWithCacheInfo renders d with caching and reports whether every
// artifact came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, d pattern.Descriptor, token, url string, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(token, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			artifacts[format] = data
			continue
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, true, nil
	}

	renderOpts := opts
	renderOpts.Formats = missing

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, missing)
	rendered, err := Render(ctx, d, token, url, renderOpts)
	observability.Pipeline().OnRenderComplete(ctx, missing, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(token, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, 0); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "error", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	for format, data := range rendered {
		artifacts[format] = data
	}
	return artifacts, false, nil
}

// RenderGrid renders a wall. Walls are random, so nothing is cached.
func (r *Runner) RenderGrid(ctx context.Context, w *grid.Wall, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	artifacts, err := RenderGrid(ctx, w, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	geo := w.Geometry()
	r.Logger.Info("rendered grid",
		"rows", geo.Rows,
		"cols", geo.Cols,
		"formats", opts.Formats,
		"duration", time.Since(start))
	return artifacts, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
