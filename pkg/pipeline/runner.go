package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/waiteperspectives/eml/pkg/cache"
	"github.com/waiteperspectives/eml/pkg/diagram"
	"github.com/waiteperspectives/eml/pkg/observability"
)

// cacheKeyType labels artifact entries in cache hooks.
const cacheKeyType = "artifact"

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is the expiry of stored artifacts. Zero means cache.TTLArtifact.
	TTL time.Duration
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

// Execute runs the complete parse → layout → render pipeline on source.
//
// Parse and layout always run, so a broken document is reported even when
// its artifacts are cached. Artifacts are looked up per format under the
// hash of source and the options that affect that format.
func (r *Runner) Execute(ctx context.Context, source []byte, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		SourceHash: cache.Hash(source),
		Artifacts:  make(map[string][]byte),
	}
	hooks := observability.Pipeline()

	// Stage 1: Parse
	parseStart := time.Now()
	hooks.OnParseStart(ctx, len(source))
	doc, err := Parse(source)
	result.Stats.ParseTime = time.Since(parseStart)
	hooks.OnParseComplete(ctx, len(doc), result.Stats.ParseTime, err)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	result.Document = doc

	r.Logger.Debug("parsed document",
		"entries", len(doc),
		"bytes", len(source),
		"duration", result.Stats.ParseTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	hooks.OnLayoutStart(ctx, opts.VizType, len(doc))
	d, err := Layout(doc)
	result.Stats.LayoutTime = time.Since(layoutStart)
	if err != nil {
		hooks.OnLayoutComplete(ctx, opts.VizType, 0, 0, result.Stats.LayoutTime, err)
		return nil, fmt.Errorf("layout: %w", err)
	}
	hooks.OnLayoutComplete(ctx, opts.VizType, d.NodeCount(), d.ArrowCount(), result.Stats.LayoutTime, nil)
	result.Diagram = d
	result.Stats.NodeCount = d.NodeCount()
	result.Stats.ArrowCount = d.ArrowCount()

	r.Logger.Info("computed layout",
		"nodes", d.NodeCount(),
		"arrows", d.ArrowCount(),
		"width", d.Width,
		"height", d.Height,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)
	artifacts, info, err := r.RenderWithCacheInfo(ctx, d, result.SourceHash, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.CacheInfo = info

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", len(info.Hits),
		"duration", result.Stats.RenderTime)

	return result, nil
}

// RenderWithCacheInfo renders d in every requested format, serving what it
// can from the cache and storing what it had to render. sourceHash
// identifies the document d was built from.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, d *diagram.Diagram, sourceHash string, opts Options) (map[string][]byte, CacheInfo, error) {
	var info CacheInfo
	if err := opts.Validate(); err != nil {
		return nil, info, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string

	for _, format := range opts.Formats {
		if opts.NoCache {
			missing = append(missing, format)
			continue
		}
		if data, ok := r.lookup(ctx, r.artifactKey(sourceHash, opts, format)); ok {
			artifacts[format] = data
			info.Hits = append(info.Hits, format)
			continue
		}
		missing = append(missing, format)
	}

	if len(missing) == 0 {
		info.RenderHit = true
		return artifacts, info, nil
	}

	rendered, err := RenderFormats(ctx, d, opts, missing)
	if err != nil {
		return nil, info, err
	}

	for format, data := range rendered {
		artifacts[format] = data
		if opts.NoCache {
			continue
		}
		key := r.artifactKey(sourceHash, opts, format)
		if err := r.Cache.Set(ctx, key, data, r.ttl()); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "error", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, cacheKeyType, len(data))
	}

	return artifacts, info, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) ttl() time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return cache.TTLArtifact
}

func (r *Runner) artifactKey(sourceHash string, opts Options, format string) string {
	return r.Keyer.ArtifactKey(sourceHash, opts.ArtifactKeyOpts(format))
}

// lookup reads key from the cache. Backend failures count as misses.
func (r *Runner) lookup(ctx context.Context, key string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "error", err)
		hit = false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, cacheKeyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, cacheKeyType)
	return data, true
}
