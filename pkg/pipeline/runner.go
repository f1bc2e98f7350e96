package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/barnframe/pkg/beams"
	"github.com/matzehuels/barnframe/pkg/building"
	"github.com/matzehuels/barnframe/pkg/cache"
	"github.com/matzehuels/barnframe/pkg/design"
	"github.com/matzehuels/barnframe/pkg/export"
	"github.com/matzehuels/barnframe/pkg/observability"
	"github.com/matzehuels/barnframe/pkg/space"
)

// Cache key types reported to observability hooks.
const (
	keyTypeBeams    = "beams"
	keyTypeSnapshot = "snapshot"
	keyTypeExport   = "export"
)

// Runner encapsulates engine execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger; it doesn't store
// results. Multiple goroutines can safely share one Runner as long as the
// policy fields are not modified concurrently.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	BeamPolicy  beams.Policy
	SpacePolicy space.Policy

	// Clock stamps snapshots. Nil means time.Now.
	Clock func() time.Time
}

// NewRunner creates a runner with the given cache and keyer and the default
// policies.
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
		Cache:       c,
		Keyer:       keyer,
		Logger:      logger,
		BeamPolicy:  beams.DefaultPolicy(),
		SpacePolicy: space.DefaultPolicy(),
	}
}

// Analyze runs the beam and snapshot stages concurrently.
func (r *Runner) Analyze(ctx context.Context, d *design.Design) (*Result, error) {
	p, err := prepare(d)
	if err != nil {
		return nil, err
	}

	result := &Result{DesignHash: p.hash}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		start := time.Now()
		res, hit, err := r.beams(gctx, p)
		if err != nil {
			return fmt.Errorf("beams: %w", err)
		}
		result.Beams = res
		result.Stats.BeamTime = time.Since(start)
		result.CacheInfo.BeamsHit = hit
		return nil
	})
	g.Go(func() error {
		start := time.Now()
		snap, hit, err := r.snapshot(gctx, p)
		if err != nil {
			return fmt.Errorf("snapshot: %w", err)
		}
		result.Snapshot = snap
		result.Stats.SnapshotTime = time.Since(start)
		result.CacheInfo.SnapshotHit = hit
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result.Stats.Walls = len(result.Beams.Walls)
	result.Stats.Warnings = len(result.Beams.Warnings())
	result.Stats.Openings = len(result.Snapshot.DetectedOpenings)
	result.Stats.Constraints = len(result.Snapshot.LayoutConstraints)

	r.Logger.Info("analyzed design",
		"name", p.design.Name,
		"openings", result.Stats.Openings,
		"constraints", result.Stats.Constraints,
		"warnings", result.Stats.Warnings)
	return result, nil
}

// BeamsWithCacheInfo plans all four walls with caching and returns cache hit info.
func (r *Runner) BeamsWithCacheInfo(ctx context.Context, d *design.Design) (*BeamResult, bool, error) {
	p, err := prepare(d)
	if err != nil {
		return nil, false, err
	}
	return r.beams(ctx, p)
}

// Beams is a convenience wrapper that calls BeamsWithCacheInfo and discards the cache hit info.
func (r *Runner) Beams(ctx context.Context, d *design.Design) (*BeamResult, error) {
	res, _, err := r.BeamsWithCacheInfo(ctx, d)
	return res, err
}

func (r *Runner) beams(ctx context.Context, p prepared) (*BeamResult, bool, error) {
	policyHash, err := cache.HashJSON(r.BeamPolicy)
	if err != nil {
		return nil, false, fmt.Errorf("hash beam policy: %w", err)
	}
	key := r.Keyer.BeamKey(p.hash, cache.BeamKeyOpts{PolicyHash: policyHash})

	var res BeamResult
	if r.lookup(ctx, keyTypeBeams, key, &res) {
		return &res, true, nil
	}

	start := time.Now()
	walls, err := r.planWalls(ctx, p.design)
	res = BeamResult{DesignHash: p.hash, Walls: walls}
	observability.Engine().OnBeamLayout(ctx, len(walls), len(res.Warnings()), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	r.Logger.Debug("planned beams",
		"walls", len(walls),
		"warnings", len(res.Warnings()),
		"duration", time.Since(start))
	r.store(ctx, keyTypeBeams, key, res, cache.TTLBeams)
	return &res, false, nil
}

// planWalls runs the planner for every wall concurrently. Layouts are
// returned in building.Walls order regardless of completion order.
func (r *Runner) planWalls(ctx context.Context, d design.Design) ([]beams.WallLayout, error) {
	opts := []beams.Option{beams.WithPolicy(r.BeamPolicy), beams.WithLogger(r.Logger)}
	layouts := make([]beams.WallLayout, len(building.Walls))

	g, gctx := errgroup.WithContext(ctx)
	for i, w := range building.Walls {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			layouts[i] = beams.PlanWall(d.Dimensions, w, d.Openings, opts...)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return layouts, nil
}

// SnapshotWithCacheInfo analyzes the space around a design's openings with
// caching and returns cache hit info.
func (r *Runner) SnapshotWithCacheInfo(ctx context.Context, d *design.Design) (space.Snapshot, bool, error) {
	p, err := prepare(d)
	if err != nil {
		return space.Snapshot{}, false, err
	}
	return r.snapshot(ctx, p)
}

// Snapshot is a convenience wrapper that calls SnapshotWithCacheInfo and discards the cache hit info.
func (r *Runner) Snapshot(ctx context.Context, d *design.Design) (space.Snapshot, error) {
	snap, _, err := r.SnapshotWithCacheInfo(ctx, d)
	return snap, err
}

func (r *Runner) snapshot(ctx context.Context, p prepared) (space.Snapshot, bool, error) {
	if err := ctx.Err(); err != nil {
		return space.Snapshot{}, false, err
	}
	policyHash, err := cache.HashJSON(r.SpacePolicy)
	if err != nil {
		return space.Snapshot{}, false, fmt.Errorf("hash space policy: %w", err)
	}
	key := r.Keyer.SnapshotKey(p.hash, cache.SnapshotKeyOpts{PolicyHash: policyHash})

	var snap space.Snapshot
	if r.lookup(ctx, keyTypeSnapshot, key, &snap) {
		return snap, true, nil
	}

	start := time.Now()
	snap = space.Analyze(p.design.Dimensions, p.design.Openings, r.spaceOptions()...)
	observability.Engine().OnSnapshot(ctx, len(snap.DetectedOpenings), len(snap.LayoutConstraints), time.Since(start), nil)

	r.store(ctx, keyTypeSnapshot, key, snap, cache.TTLSnapshot)
	return snap, false, nil
}

// Validate checks a proposed dimension change against the design's
// snapshot. The snapshot itself may come from cache.
func (r *Runner) Validate(ctx context.Context, d *design.Design, change space.DimensionChange) (space.ModificationResult, error) {
	if err := change.Validate(); err != nil {
		return space.ModificationResult{}, err
	}
	p, err := prepare(d)
	if err != nil {
		return space.ModificationResult{}, err
	}
	snap, _, err := r.snapshot(ctx, p)
	if err != nil {
		return space.ModificationResult{}, err
	}

	start := time.Now()
	res := space.ValidateModification(snap, p.design.Dimensions, change, r.spaceOptions()...)
	observability.Engine().OnValidate(ctx, res.CanModify, len(res.Violations), time.Since(start))

	r.Logger.Debug("validated modification",
		"can_modify", res.CanModify,
		"violations", len(res.Violations))
	return res, nil
}

// Protection returns the per-wall protection summary of a design.
func (r *Runner) Protection(ctx context.Context, d *design.Design) (map[building.Wall]space.Protection, error) {
	snap, err := r.Snapshot(ctx, d)
	if err != nil {
		return nil, err
	}
	return snap.WallProtection, nil
}

// AccessGraphWithCacheInfo exports the design's access-path graph with
// caching and returns cache hit info.
func (r *Runner) AccessGraphWithCacheInfo(ctx context.Context, d *design.Design, f export.Format, opts export.Options) ([]byte, bool, error) {
	snap, err := r.Snapshot(ctx, d)
	if err != nil {
		return nil, false, err
	}

	// ComputedAt is left out so equal graphs share a key.
	graphHash, err := cache.HashJSON(export.Graph{Nodes: snap.DetectedOpenings, Edges: snap.AccessPaths})
	if err != nil {
		return nil, false, fmt.Errorf("hash access graph: %w", err)
	}
	variant := string(f)
	if opts.Detailed {
		variant += "+detailed"
	}
	key := r.Keyer.ExportKey(graphHash, variant)

	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, keyTypeExport)
		return data, true, nil
	} else if err != nil {
		observability.Cache().OnCacheError(ctx, keyTypeExport, "get", err)
	}
	observability.Cache().OnCacheMiss(ctx, keyTypeExport)

	data, err := export.Render(ctx, snap, f, opts)
	if err != nil {
		return nil, false, err
	}
	r.set(ctx, keyTypeExport, key, data, cache.TTLExport)
	return data, false, nil
}

// AccessGraph is a convenience wrapper that calls AccessGraphWithCacheInfo and discards the cache hit info.
func (r *Runner) AccessGraph(ctx context.Context, d *design.Design, f export.Format, opts export.Options) ([]byte, error) {
	data, _, err := r.AccessGraphWithCacheInfo(ctx, d, f, opts)
	return data, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) spaceOptions() []space.Option {
	opts := []space.Option{space.WithPolicy(r.SpacePolicy), space.WithLogger(r.Logger)}
	if r.Clock != nil {
		opts = append(opts, space.WithClock(r.Clock))
	}
	return opts
}

// =============================================================================
// Cache helpers
// =============================================================================

// lookup decodes a cached JSON value into dst. Backend and decode failures
// count as misses so a broken cache never fails a request.
func (r *Runner) lookup(ctx context.Context, keyType, key string, dst any) bool {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		observability.Cache().OnCacheError(ctx, keyType, "get", err)
		r.Logger.Warn("cache get failed", "type", keyType, "error", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		observability.Cache().OnCacheError(ctx, keyType, "decode", err)
		observability.Cache().OnCacheMiss(ctx, keyType)
		return false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return true
}

// store encodes v as JSON and writes it to the cache.
func (r *Runner) store(ctx context.Context, keyType, key string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		observability.Cache().OnCacheError(ctx, keyType, "encode", err)
		return
	}
	r.set(ctx, keyType, key, data, ttl)
}

func (r *Runner) set(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		observability.Cache().OnCacheError(ctx, keyType, "set", err)
		r.Logger.Warn("cache set failed", "type", keyType, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}
