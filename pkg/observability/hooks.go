// Package observability lets a host process observe barnframe without the
// library importing a metrics backend.
//
// There is one hook interface per event source (engines, cache, API). Each
// has a no-op implementation that is active until something else is
// installed. Install hooks once at startup:
//
//	func main() {
//	    observability.SetEngineHooks(&myEngineHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    ...
//	}
//
// The pipeline runner and API middleware emit events, for example after
// planning every wall of a building:
//
//	start := time.Now()
//	walls := beams.PlanBuilding(d.Dimensions, d.Openings)
//	observability.Engine().OnBeamLayout(ctx, len(walls), 0, time.Since(start), nil)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Engine Hooks
// =============================================================================

// EngineHooks receives events from the beam and space engines.
type EngineHooks interface {
	// OnBeamLayout records a framing run over one or more walls.
	OnBeamLayout(ctx context.Context, walls, warnings int, duration time.Duration, err error)

	// OnSnapshot records a space analysis.
	OnSnapshot(ctx context.Context, openings, constraints int, duration time.Duration, err error)

	// OnValidate records a dimension change check.
	OnValidate(ctx context.Context, canModify bool, violations int, duration time.Duration)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)

	// OnCacheError records a backend failure. Cache errors never fail a
	// computation; the result is recomputed instead.
	OnCacheError(ctx context.Context, keyType, op string, err error)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the API server.
type HTTPHooks interface {
	// OnRequest records an incoming request.
	OnRequest(ctx context.Context, method, route string)

	// OnResponse records the response sent for a request.
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopEngineHooks is a no-op implementation of EngineHooks.
type NoopEngineHooks struct{}

func (NoopEngineHooks) OnBeamLayout(context.Context, int, int, time.Duration, error) {}
func (NoopEngineHooks) OnSnapshot(context.Context, int, int, time.Duration, error)   {}
func (NoopEngineHooks) OnValidate(context.Context, bool, int, time.Duration)         {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)                  {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)                 {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int)             {}
func (NoopCacheHooks) OnCacheError(context.Context, string, string, error) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                       {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Registry
// =============================================================================

// slot holds one registered hook set and its no-op fallback.
type slot[T any] struct {
	mu   sync.RWMutex
	cur  T
	noop T
}

func newSlot[T any](noop T) *slot[T] {
	return &slot[T]{cur: noop, noop: noop}
}

func (s *slot[T]) get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

func (s *slot[T]) set(h T, ok bool) {
	if !ok {
		return
	}
	s.mu.Lock()
	s.cur = h
	s.mu.Unlock()
}

func (s *slot[T]) reset() {
	s.mu.Lock()
	s.cur = s.noop
	s.mu.Unlock()
}

var (
	engineSlot = newSlot[EngineHooks](NoopEngineHooks{})
	cacheSlot  = newSlot[CacheHooks](NoopCacheHooks{})
	httpSlot   = newSlot[HTTPHooks](NoopHTTPHooks{})
)

// SetEngineHooks installs h for all later engine events. Nil is ignored.
func SetEngineHooks(h EngineHooks) { engineSlot.set(h, h != nil) }

// SetCacheHooks installs h for all later cache events. Nil is ignored.
func SetCacheHooks(h CacheHooks) { cacheSlot.set(h, h != nil) }

// SetHTTPHooks installs h for all later API events. Nil is ignored.
func SetHTTPHooks(h HTTPHooks) { httpSlot.set(h, h != nil) }

// Engine returns the installed engine hooks.
func Engine() EngineHooks { return engineSlot.get() }

// Cache returns the installed cache hooks.
func Cache() CacheHooks { return cacheSlot.get() }

// HTTP returns the installed API hooks.
func HTTP() HTTPHooks { return httpSlot.get() }

// Reset puts every hook set back to its no-op. Tests call it in Cleanup.
func Reset() {
	engineSlot.reset()
	cacheSlot.reset()
	httpSlot.reset()
}
