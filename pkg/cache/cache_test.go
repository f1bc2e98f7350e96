package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullCacheStoresNothing(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	t.Cleanup(func() { _ = c.Close() })

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Hour))
	data, hit, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, data)
	assert.NoError(t, c.Delete(ctx, "k"))
}

func TestHash(t *testing.T) {
	a := Hash([]byte("shop"))
	assert.Len(t, a, 64)
	assert.Equal(t, a, Hash([]byte("shop")))
	assert.NotEqual(t, a, Hash([]byte("barn")))

	type policy struct {
		Gap float64 `json:"gap"`
	}
	p1, err := HashJSON(policy{Gap: 0.5})
	require.NoError(t, err)
	p2, err := HashJSON(policy{Gap: 0.25})
	require.NoError(t, err)
	assert.NotEqual(t, p1, p2)

	_, err = HashJSON(func() {})
	assert.Error(t, err, "functions cannot be encoded")
}

func TestKeyers(t *testing.T) {
	def := NewDefaultKeyer()
	scoped := NewScopedKeyer(nil, "api:")

	tests := []struct {
		name   string
		key    func(Keyer) string
		prefix string
	}{
		{"beams", func(k Keyer) string { return k.BeamKey("d1", BeamKeyOpts{PolicyHash: "p"}) }, "beams:"},
		{"snapshot", func(k Keyer) string { return k.SnapshotKey("d1", SnapshotKeyOpts{PolicyHash: "p"}) }, "snapshot:"},
		{"export", func(k Keyer) string { return k.ExportKey("s1", "svg") }, "export:svg:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plain := tt.key(def)
			assert.True(t, len(plain) > len(tt.prefix) && plain[:len(tt.prefix)] == tt.prefix, plain)
			assert.Equal(t, "api:"+plain, tt.key(scoped))
		})
	}
}

func TestKeysSeparateInputs(t *testing.T) {
	k := NewDefaultKeyer()
	base := k.BeamKey("d1", BeamKeyOpts{PolicyHash: "p1"})

	assert.NotEqual(t, base, k.BeamKey("d1", BeamKeyOpts{PolicyHash: "p2"}), "policy")
	assert.NotEqual(t, base, k.BeamKey("d2", BeamKeyOpts{PolicyHash: "p1"}), "design")
	assert.NotEqual(t, base, k.BeamKey("d1", BeamKeyOpts{PolicyHash: "p1", Walls: []string{"front"}}), "wall filter")
	assert.NotEqual(t, k.ExportKey("s", "svg"), k.ExportKey("s", "dot"), "format")
}

func TestRetryable(t *testing.T) {
	assert.NoError(t, Retryable(nil))

	err := Retryable(ErrNetwork)
	assert.True(t, IsRetryable(err))
	assert.ErrorIs(t, err, ErrNetwork)
	assert.EqualError(t, err, ErrNetwork.Error())
	assert.False(t, IsRetryable(ErrUnknownBackend))
}

func TestBackoff(t *testing.T) {
	fast := Backoff{Attempts: 4, Initial: time.Millisecond, Max: 2 * time.Millisecond}

	tests := []struct {
		name      string
		backoff   Backoff
		failFirst int
		fail      error
		wantCalls int
		wantErr   error
	}{
		{"success", fast, 0, nil, 1, nil},
		{"recovers", fast, 2, Retryable(ErrNetwork), 3, nil},
		{"permanent error", fast, 3, ErrUnknownBackend, 1, ErrUnknownBackend},
		{"exhausted", fast, 10, Retryable(ErrNetwork), 4, ErrNetwork},
		{"zero attempts still tries once", Backoff{}, 10, Retryable(ErrNetwork), 1, ErrNetwork},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := tt.backoff.Do(context.Background(), func() error {
				calls++
				if calls <= tt.failFirst {
					return tt.fail
				}
				return nil
			})
			assert.Equal(t, tt.wantCalls, calls)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestBackoffStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, func() error { return Retryable(ErrNetwork) })
	assert.ErrorIs(t, err, context.Canceled)
}
