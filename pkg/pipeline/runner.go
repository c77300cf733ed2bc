package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/commitgraph/pkg/cache"
	"github.com/matzehuels/commitgraph/pkg/observability"
	"github.com/matzehuels/commitgraph/pkg/script"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different scripts.
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

// Execute runs the replay → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, s *script.Script, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	t, err := ResolveTemplate(s, opts)
	if err != nil {
		return nil, err
	}
	result := &Result{
		Template:   t,
		ScriptHash: Hash(s),
	}

	tplHash := cache.HashJSON(t)
	keys := make(map[string]string, len(opts.Formats))
	for _, format := range opts.Formats {
		keys[format] = r.Keyer.ArtifactKey(result.ScriptHash, opts.ArtifactKeyOpts(format, tplHash))
	}

	cacheable := !importsFiles(s)
	if cacheable && !opts.Refresh {
		if artifacts, ok := r.lookup(ctx, keys); ok {
			result.Artifacts = artifacts
			result.CacheInfo.RenderHit = true
			opts.Logger.Debug("artifacts cached", "formats", opts.Formats, "script", result.ScriptHash[:12])
			return result, nil
		}
	}

	// Stage 1: Replay
	replayStart := time.Now()
	g, err := Replay(ctx, s, opts)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	result.Graph = g
	result.Stats.ReplayTime = time.Since(replayStart)
	result.Stats.Commits = g.Len()
	result.Stats.Branches = len(g.Branches())

	opts.Logger.Info("replayed script",
		"steps", len(s.Steps),
		"commits", result.Stats.Commits,
		"branches", result.Stats.Branches,
		"duration", result.Stats.ReplayTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	result.Data = GenerateLayout(ctx, g, t)
	result.Stats.LayoutTime = time.Since(layoutStart)

	opts.Logger.Info("computed layout",
		"rows", result.Data.Rows,
		"columns", result.Data.Columns,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, err := Render(ctx, result.Data, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	if cacheable {
		r.store(ctx, keys, artifacts, opts)
	}
	return result, nil
}

// importsFiles reports whether s reads files, whose content the script hash
// does not cover.
func importsFiles(s *script.Script) bool {
	for _, step := range s.Steps {
		if step.Import != nil && step.Import.File != "" {
			return true
		}
	}
	return false
}

// lookup returns every artifact from the cache, or false on any miss.
func (r *Runner) lookup(ctx context.Context, keys map[string]string) (map[string][]byte, bool) {
	hooks := observability.Cache()
	artifacts := make(map[string][]byte, len(keys))
	for format, key := range keys {
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			r.Logger.Warn("cache read failed", "format", format, "err", err)
		}
		if err != nil || !hit {
			hooks.OnCacheMiss(ctx, format)
			return nil, false
		}
		hooks.OnCacheHit(ctx, format)
		artifacts[format] = data
	}
	return artifacts, true
}

func (r *Runner) store(ctx context.Context, keys map[string]string, artifacts map[string][]byte, opts Options) {
	hooks := observability.Cache()
	for format, data := range artifacts {
		if err := r.Cache.Set(ctx, keys[format], data, opts.TTL); err != nil {
			opts.Logger.Warn("cache write failed", "format", format, "err", err)
			continue
		}
		hooks.OnCacheSet(ctx, format, len(data))
	}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
