package pipeline

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/barnframe/pkg/building"
	"github.com/matzehuels/barnframe/pkg/cache"
	"github.com/matzehuels/barnframe/pkg/design"
	bferrors "github.com/matzehuels/barnframe/pkg/errors"
	"github.com/matzehuels/barnframe/pkg/export"
	"github.com/matzehuels/barnframe/pkg/observability"
	"github.com/matzehuels/barnframe/pkg/space"
)

func fixedClock() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

func sampleDesign() *design.Design {
	return &design.Design{
		Name:       "shop",
		Dimensions: building.Dimensions{Width: 40, Length: 30, Height: 14},
		Openings: []building.Opening{
			{ID: "bay", Kind: building.KindRollupDoor, Wall: building.WallFront, Width: 30, Height: 10},
			{ID: "walk", Kind: building.KindWalkDoor, Wall: building.WallLeft, Align: building.AlignLeft, XOffset: 4, Width: 3, Height: 7},
			{ID: "win", Kind: building.KindWindow, Wall: building.WallBack, YOffset: 4, Width: 4, Height: 3},
		},
	}
}

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewMemoryCache(64)
	if err != nil {
		t.Fatalf("NewMemoryCache() error: %v", err)
	}
	r := NewRunner(c, nil, log.New(&bytes.Buffer{}))
	r.Clock = fixedClock
	t.Cleanup(func() { r.Close() })
	return r
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if _, ok := r.Cache.(*cache.NullCache); !ok {
		t.Errorf("Cache = %T, want *cache.NullCache", r.Cache)
	}
	if r.Keyer == nil || r.Logger == nil {
		t.Error("NewRunner() left Keyer or Logger nil")
	}
	if r.BeamPolicy.MaxSpacing == 0 || r.SpacePolicy.EngineeringRatio == 0 {
		t.Error("NewRunner() did not set default policies")
	}
}

func TestBeamsCaching(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()

	first, hit, err := r.BeamsWithCacheInfo(ctx, sampleDesign())
	if err != nil {
		t.Fatalf("BeamsWithCacheInfo() error: %v", err)
	}
	if hit {
		t.Error("first call should miss")
	}
	if len(first.Walls) != len(building.Walls) {
		t.Fatalf("got %d walls, want %d", len(first.Walls), len(building.Walls))
	}
	for i, w := range building.Walls {
		if first.Walls[i].Wall != w {
			t.Errorf("Walls[%d] = %s, want %s", i, first.Walls[i].Wall, w)
		}
	}

	second, hit, err := r.BeamsWithCacheInfo(ctx, sampleDesign())
	if err != nil {
		t.Fatalf("BeamsWithCacheInfo() error: %v", err)
	}
	if !hit {
		t.Error("second call should hit")
	}
	if second.DesignHash != first.DesignHash || len(second.Walls[0].Vertical.Beams) != len(first.Walls[0].Vertical.Beams) {
		t.Error("cached result differs from computed result")
	}
}

func TestBeamsPolicyChangesKey(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()

	if _, _, err := r.BeamsWithCacheInfo(ctx, sampleDesign()); err != nil {
		t.Fatal(err)
	}
	r.BeamPolicy.MaxSpacing = 5
	_, hit, err := r.BeamsWithCacheInfo(ctx, sampleDesign())
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("changed policy should not hit the old entry")
	}
}

func TestBeamsCanceled(t *testing.T) {
	r := NewRunner(nil, nil, log.New(&bytes.Buffer{}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := r.Beams(ctx, sampleDesign()); !errors.Is(err, context.Canceled) {
		t.Errorf("Beams() error = %v, want context.Canceled", err)
	}
}

func TestInvalidDesign(t *testing.T) {
	r := newTestRunner(t)
	d := sampleDesign()
	d.Dimensions.Width = 0

	_, err := r.Snapshot(context.Background(), d)
	if !bferrors.Is(err, bferrors.ErrCodeInvalidDimensions) {
		t.Errorf("Snapshot() error = %v, want INVALID_DIMENSIONS", err)
	}
}

func TestPrepareDoesNotMutate(t *testing.T) {
	d := sampleDesign()
	d.Openings[0].ID = ""
	d.Openings[0].Align = ""

	p, err := prepare(d)
	if err != nil {
		t.Fatalf("prepare() error: %v", err)
	}
	if d.Openings[0].ID != "" || d.Openings[0].Align != "" {
		t.Error("prepare() modified the caller's design")
	}
	if p.design.Openings[0].ID == "" || p.design.Openings[0].Align != building.AlignCenter {
		t.Error("prepare() did not normalize the copy")
	}

	again, _ := prepare(d)
	if again.hash != p.hash {
		t.Error("design hash is not stable")
	}
}

func TestSnapshotCaching(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()

	first, hit, err := r.SnapshotWithCacheInfo(ctx, sampleDesign())
	if err != nil || hit {
		t.Fatalf("first SnapshotWithCacheInfo() = hit %v, err %v", hit, err)
	}
	if !first.ComputedAt.Equal(fixedClock()) {
		t.Errorf("ComputedAt = %v, want %v", first.ComputedAt, fixedClock())
	}

	second, hit, err := r.SnapshotWithCacheInfo(ctx, sampleDesign())
	if err != nil || !hit {
		t.Fatalf("second SnapshotWithCacheInfo() = hit %v, err %v", hit, err)
	}
	if len(second.LayoutConstraints) != len(first.LayoutConstraints) {
		t.Errorf("cached snapshot has %d constraints, want %d", len(second.LayoutConstraints), len(first.LayoutConstraints))
	}
	if !second.ComputedAt.Equal(first.ComputedAt) {
		t.Error("cached snapshot lost ComputedAt")
	}
}

func TestValidate(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()

	tests := []struct {
		width float64
		want  bool
	}{
		{35, true},
		{12, false},
	}
	for _, tt := range tests {
		res, err := r.Validate(ctx, sampleDesign(), space.DimensionChange{Width: &tt.width})
		if err != nil {
			t.Fatalf("Validate() error: %v", err)
		}
		if res.CanModify != tt.want {
			t.Errorf("Validate(width=%g).CanModify = %v, want %v (violations %v)", tt.width, res.CanModify, tt.want, res.Violations)
		}
	}
}

func TestProtection(t *testing.T) {
	r := newTestRunner(t)

	prot, err := r.Protection(context.Background(), sampleDesign())
	if err != nil {
		t.Fatalf("Protection() error: %v", err)
	}
	if len(prot) != len(building.Walls) {
		t.Errorf("got %d walls, want %d", len(prot), len(building.Walls))
	}
	if !prot[building.WallFront].Locked {
		t.Error("front wall should be locked")
	}
	if prot[building.WallRight].Locked {
		t.Error("right wall has no openings and should not be locked")
	}
}

func TestAccessGraph(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()

	dot, hit, err := r.AccessGraphWithCacheInfo(ctx, sampleDesign(), export.FormatDOT, export.Options{})
	if err != nil || hit {
		t.Fatalf("first AccessGraphWithCacheInfo() = hit %v, err %v", hit, err)
	}
	if !strings.Contains(string(dot), `"bay" -- "walk"`) {
		t.Errorf("DOT missing bay-walk edge:\n%s", dot)
	}

	if _, hit, _ = r.AccessGraphWithCacheInfo(ctx, sampleDesign(), export.FormatDOT, export.Options{}); !hit {
		t.Error("second call should hit")
	}
	if _, hit, _ = r.AccessGraphWithCacheInfo(ctx, sampleDesign(), export.FormatDOT, export.Options{Detailed: true}); hit {
		t.Error("detailed graph should not share the plain graph's entry")
	}
}

func TestAnalyze(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()

	res, err := r.Analyze(ctx, sampleDesign())
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	if res.Stats.Walls != 4 || res.Stats.Openings != 3 {
		t.Errorf("Stats = %+v", res.Stats)
	}
	if res.Stats.Constraints != len(res.Snapshot.LayoutConstraints) {
		t.Error("Stats.Constraints does not match the snapshot")
	}
	if res.Beams.DesignHash != res.DesignHash {
		t.Error("beam result and analysis disagree on the design hash")
	}
	if res.CacheInfo.BeamsHit || res.CacheInfo.SnapshotHit {
		t.Error("first analysis should miss")
	}

	res, err = r.Analyze(ctx, sampleDesign())
	if err != nil {
		t.Fatal(err)
	}
	if !res.CacheInfo.BeamsHit || !res.CacheInfo.SnapshotHit {
		t.Errorf("second analysis CacheInfo = %+v, want both hits", res.CacheInfo)
	}
}

// failingCache errors on every call.
type failingCache struct{}

var errBackend = errors.New("backend down")

func (failingCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, errBackend }
func (failingCache) Set(context.Context, string, []byte, time.Duration) error {
	return errBackend
}
func (failingCache) Delete(context.Context, string) error { return errBackend }
func (failingCache) Close() error                         { return nil }

func TestBrokenCacheFallsBack(t *testing.T) {
	var logs bytes.Buffer
	r := NewRunner(failingCache{}, nil, log.New(&logs))

	if _, err := r.Analyze(context.Background(), sampleDesign()); err != nil {
		t.Fatalf("Analyze() with failing cache error: %v", err)
	}
	if !strings.Contains(logs.String(), "cache get failed") {
		t.Errorf("expected cache warning in logs, got:\n%s", logs.String())
	}
}

type recordingHooks struct {
	observability.NoopEngineHooks
	observability.NoopCacheHooks

	mu        sync.Mutex
	layouts   int
	snapshots int
	validates int
	hits      map[string]int
	sets      map[string]int
}

func (h *recordingHooks) OnBeamLayout(context.Context, int, int, time.Duration, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.layouts++
}

func (h *recordingHooks) OnSnapshot(context.Context, int, int, time.Duration, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.snapshots++
}

func (h *recordingHooks) OnValidate(context.Context, bool, int, time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.validates++
}

func (h *recordingHooks) OnCacheHit(_ context.Context, keyType string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hits[keyType]++
}

func (h *recordingHooks) OnCacheSet(_ context.Context, keyType string, _ int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sets[keyType]++
}

func TestHooks(t *testing.T) {
	h := &recordingHooks{hits: map[string]int{}, sets: map[string]int{}}
	observability.SetEngineHooks(h)
	observability.SetCacheHooks(h)
	t.Cleanup(observability.Reset)

	r := newTestRunner(t)
	ctx := context.Background()
	width := 35.0

	for range 2 {
		if _, err := r.Analyze(ctx, sampleDesign()); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := r.Validate(ctx, sampleDesign(), space.DimensionChange{Width: &width}); err != nil {
		t.Fatal(err)
	}

	if h.layouts != 1 || h.snapshots != 1 || h.validates != 1 {
		t.Errorf("engine hooks = %d layouts, %d snapshots, %d validates; want 1 each", h.layouts, h.snapshots, h.validates)
	}
	if h.sets[keyTypeBeams] != 1 || h.sets[keyTypeSnapshot] != 1 {
		t.Errorf("cache sets = %v", h.sets)
	}
	if h.hits[keyTypeBeams] != 1 || h.hits[keyTypeSnapshot] != 2 {
		t.Errorf("cache hits = %v", h.hits)
	}
}
