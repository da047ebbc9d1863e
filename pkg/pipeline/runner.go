package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/seqdiag/pkg/cache"
	"github.com/matzehuels/seqdiag/pkg/observability"
	"github.com/matzehuels/seqdiag/pkg/seq/diagram"
	"github.com/matzehuels/seqdiag/pkg/seq/layout"
)

// Key types reported to [observability.CacheHooks].
const (
	keyTypeLayout   = "layout"
	keyTypeArtifact = "artifact"
)

// Runner executes the pipeline against a cache. It keeps no per-run
// state, so one Runner serves concurrent requests.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner returns a Runner. A nil cache disables caching, a nil keyer
// means [cache.DefaultKeyer] and a nil logger means log.Default.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute parses source, then lays it out and renders every requested
// format, consulting the cache for the last two stages.
func (r *Runner) Execute(ctx context.Context, source string, opts Options) (*Result, error) {
	r.useLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	res := &Result{SourceHash: cache.Hash([]byte(source))}

	start := time.Now()
	d, err := Parse(ctx, source, opts)
	if err != nil {
		return nil, err
	}
	res.Diagram = d
	res.Stats = Stats{
		Participants: d.Participants.Len(),
		Events:       len(d.Events),
		Warnings:     len(d.Warnings),
		ParseTime:    time.Since(start),
	}

	start = time.Now()
	g, hit, err := r.GenerateLayoutWithCacheInfo(ctx, res.SourceHash, d, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	res.Geometry, res.CacheInfo.LayoutHit = g, hit
	res.Stats.LayoutTime = time.Since(start)

	start = time.Now()
	if res.GeometryHash, err = cache.HashJSON(g); err != nil {
		return nil, fmt.Errorf("hash geometry: %w", err)
	}
	res.Artifacts, res.CacheInfo.RenderHit, err = r.RenderWithCacheInfo(ctx, res.GeometryHash, g, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	res.Stats.RenderTime = time.Since(start)

	r.Logger.Info("diagram rendered",
		"participants", res.Stats.Participants,
		"events", res.Stats.Events,
		"warnings", res.Stats.Warnings,
		"formats", opts.Formats,
		"layout_cached", res.CacheInfo.LayoutHit,
		"render_cached", res.CacheInfo.RenderHit,
		"duration", res.Stats.ParseTime+res.Stats.LayoutTime+res.Stats.RenderTime)
	return res, nil
}

// GenerateLayoutWithCacheInfo returns the geometry of d and whether it
// came from the cache. A cached entry that no longer decodes is
// recomputed and overwritten.
func (r *Runner) GenerateLayoutWithCacheInfo(ctx context.Context, sourceHash string, d *diagram.Diagram, opts Options) (layout.Geometry, bool, error) {
	r.useLogger(&opts)
	keyOpts, err := opts.LayoutKeyOpts()
	if err != nil {
		return layout.Geometry{}, false, err
	}
	key := r.Keyer.LayoutKey(sourceHash, keyOpts)

	if data, ok := r.lookup(ctx, key, keyTypeLayout, opts.Refresh); ok {
		var g layout.Geometry
		if err := json.Unmarshal(data, &g); err == nil {
			return g, true, nil
		}
		r.Logger.Debug("discarding unreadable cached layout", "key", key)
	}

	g := GenerateLayout(ctx, d, opts)
	if data, err := json.Marshal(g); err == nil {
		r.store(ctx, key, keyTypeLayout, data, cache.TTLLayout)
	}
	return g, false, nil
}

// RenderWithCacheInfo returns one artifact per requested format. Only
// the formats missing from the cache are rendered. The boolean is true
// when nothing had to be rendered.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, geomHash string, g layout.Geometry, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.useLogger(&opts)

	artifacts := make(map[string][]byte, len(opts.Formats))
	keys := make(map[string]string, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		keys[format] = r.Keyer.ArtifactKey(geomHash, opts.ArtifactKeyOpts(format))
		if data, ok := r.lookup(ctx, keys[format], keyTypeArtifact, opts.Refresh); ok {
			artifacts[format] = data
			continue
		}
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, true, nil
	}

	partial := opts
	partial.Formats = missing
	rendered, err := Render(ctx, g, partial)
	if err != nil {
		return nil, false, err
	}
	for _, format := range missing {
		artifacts[format] = rendered[format]
		r.store(ctx, keys[format], keyTypeArtifact, rendered[format], cache.TTLArtifact)
	}
	return artifacts, false, nil
}

// Close closes the cache.
func (r *Runner) Close() error {
	if r.Cache == nil {
		return nil
	}
	return r.Cache.Close()
}

// lookup reads key unless refresh is set. Read errors count as misses.
func (r *Runner) lookup(ctx context.Context, key, keyType string, refresh bool) ([]byte, bool) {
	if refresh {
		return nil, false
	}
	hooks := observability.Cache()
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key", key, "error", err)
	}
	if err != nil || !hit {
		hooks.OnCacheMiss(ctx, keyType)
		return nil, false
	}
	hooks.OnCacheHit(ctx, keyType)
	return data, true
}

// store writes data under key. Failures are logged, not returned.
func (r *Runner) store(ctx context.Context, key, keyType string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

func (r *Runner) useLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
