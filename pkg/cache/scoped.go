package cache

// ScopedKeyer prefixes every key from an inner keyer. The API server uses
// it to keep its entries apart from the CLI's when both share a backend.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// BeamKey returns the prefixed beam key.
func (k *ScopedKeyer) BeamKey(designHash string, opts BeamKeyOpts) string {
	return k.prefix + k.inner.BeamKey(designHash, opts)
}

// SnapshotKey returns the prefixed snapshot key.
func (k *ScopedKeyer) SnapshotKey(designHash string, opts SnapshotKeyOpts) string {
	return k.prefix + k.inner.SnapshotKey(designHash, opts)
}

// ExportKey returns the prefixed export key.
func (k *ScopedKeyer) ExportKey(snapshotHash, format string) string {
	return k.prefix + k.inner.ExportKey(snapshotHash, format)
}
