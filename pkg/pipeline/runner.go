package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/dwthomas77/dropgrid/pkg/cache"
	"github.com/dwthomas77/dropgrid/pkg/observability"
	"github.com/dwthomas77/dropgrid/pkg/region"
)

// Runner executes pipeline stages with caching.
// Both CLI and API use it so caching behaves the same everywhere.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL, when positive, replaces the per-stage default lifetimes.
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

// Execute rebuilds opts.Region with opts.Action and renders the result in
// opts.Formats. With no formats only the rebuild runs.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	result := &Result{Artifacts: make(map[string][]byte)}

	start := time.Now()
	rebuilt, hit, err := r.RebuildWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("rebuild: %w", err)
	}
	result.Region = rebuilt
	result.Stats.RebuildTime = time.Since(start)
	result.Stats.ItemCount = rebuilt.Len()
	result.Stats.RowCount = len(rebuilt)
	result.CacheInfo.RebuildHit = hit
	if h, err := cache.HashJSON(rebuilt); err == nil {
		result.RegionHash = h
	}

	r.Logger.Info("rebuilt region",
		"action", opts.Action.Kind,
		"rows", result.Stats.RowCount,
		"items", result.Stats.ItemCount,
		"cached", hit,
		"duration", result.Stats.RebuildTime)

	if len(opts.Formats) == 0 {
		return result, nil
	}

	start = time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, rebuilt, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(start)
	result.CacheInfo.RenderHit = hit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// RebuildWithCacheInfo applies opts.Action to opts.Region and reports
// whether the result came from cache.
func (r *Runner) RebuildWithCacheInfo(ctx context.Context, opts Options) (region.Region, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRebuild(); err != nil {
		return nil, false, err
	}
	kind := string(opts.Action.Kind)

	regionHash, err := cache.HashJSON(opts.Region)
	if err != nil {
		return nil, false, fmt.Errorf("hash region: %w", err)
	}
	keyOpts, err := opts.RebuildKeyOpts()
	if err != nil {
		return nil, false, err
	}
	key := r.Keyer.RebuildKey(regionHash, keyOpts)

	if !opts.Refresh {
		if cached, ok := r.lookup(ctx, key, "rebuild"); ok {
			opts.Logger.Debug("rebuild cache hit", "key", key)
			return cached, true, nil
		}
	}

	cfg, err := opts.PackingConfig()
	if err != nil {
		return nil, false, err
	}

	observability.Pipeline().OnRebuildStart(ctx, kind, opts.Region.Len())
	start := time.Now()
	rebuilt := region.Rebuild(opts.Region, opts.Action, cfg)
	observability.Pipeline().OnRebuildComplete(ctx, kind, len(rebuilt), time.Since(start), nil)

	r.store(ctx, key, "rebuild", rebuilt, r.ttl(cache.TTLRebuild))
	return rebuilt, false, nil
}

// Rebuild is a convenience wrapper that discards the cache hit info.
func (r *Runner) Rebuild(ctx context.Context, opts Options) (region.Region, error) {
	out, _, err := r.RebuildWithCacheInfo(ctx, opts)
	return out, err
}

// PackWithCacheInfo packs opts.Items into a new region and reports whether
// the result came from cache.
func (r *Runner) PackWithCacheInfo(ctx context.Context, opts Options) (region.Region, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForPack(); err != nil {
		return nil, false, err
	}

	itemsHash, err := cache.HashJSON(opts.Items)
	if err != nil {
		return nil, false, fmt.Errorf("hash items: %w", err)
	}
	key := r.Keyer.PackKey(itemsHash, opts.PackKeyOpts())

	if !opts.Refresh {
		if cached, ok := r.lookup(ctx, key, "pack"); ok {
			return cached, true, nil
		}
	}

	cfg, err := opts.PackingConfig()
	if err != nil {
		return nil, false, err
	}

	observability.Pipeline().OnPackStart(ctx, len(opts.Items))
	start := time.Now()
	packed := region.Pack(opts.Items, cfg)
	observability.Pipeline().OnPackComplete(ctx, len(packed), time.Since(start), nil)

	r.store(ctx, key, "pack", packed, r.ttl(cache.TTLPack))
	return packed, false, nil
}

// Pack is a convenience wrapper that discards the cache hit info.
func (r *Runner) Pack(ctx context.Context, opts Options) (region.Region, error) {
	out, _, err := r.PackWithCacheInfo(ctx, opts)
	return out, err
}

// RenderWithCacheInfo renders reg in every requested format and reports
// whether all of them came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, reg region.Region, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	regionHash, err := cache.HashJSON(reg)
	if err != nil {
		return nil, false, fmt.Errorf("hash region: %w", err)
	}

	keys := make(map[string]string, len(opts.Formats))
	for _, format := range opts.Formats {
		k, err := opts.ArtifactKeyOpts(format)
		if err != nil {
			return nil, false, err
		}
		keys[format] = r.Keyer.ArtifactKey(regionHash, k)
	}

	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(keys))
		for format, key := range keys {
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				observability.Cache().OnCacheMiss(ctx, "artifact")
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(keys) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
	}

	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := Render(ctx, reg, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		if err := r.Cache.Set(ctx, keys[format], data, r.ttl(cache.TTLArtifact)); err != nil {
			opts.Logger.Warn("cache write failed", "format", format, "error", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return rendered, false, nil
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, reg region.Region, opts Options) (map[string][]byte, error) {
	out, _, err := r.RenderWithCacheInfo(ctx, reg, opts)
	return out, err
}

// Batch runs Execute for every job with at most limit jobs in flight.
// Results keep the order of jobs. The first failure cancels the rest.
func (r *Runner) Batch(ctx context.Context, jobs []Options, limit int) ([]*Result, error) {
	if limit <= 0 {
		limit = DefaultBatchLimit
	}
	results := make([]*Result, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := r.Execute(ctx, job)
			if err != nil {
				return fmt.Errorf("job %d: %w", i+1, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// lookup reads a cached region. Undecodable entries count as misses.
func (r *Runner) lookup(ctx context.Context, key, keyType string) (region.Region, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	var reg region.Region
	if err := json.Unmarshal(data, &reg); err != nil {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return reg, true
}

func (r *Runner) store(ctx context.Context, key, keyType string, reg region.Region, ttl time.Duration) {
	data, err := json.Marshal(reg)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "key", keyType, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
