package cache

// Keyer builds cache keys for engine results.
type Keyer interface {
	// BeamKey keys a beam layout for a design under a framing policy.
	BeamKey(designHash string, opts BeamKeyOpts) string
	// SnapshotKey keys a space snapshot for a design under a space policy.
	SnapshotKey(designHash string, opts SnapshotKeyOpts) string
	// ExportKey keys a rendered access graph.
	ExportKey(snapshotHash, format string) string
}

// BeamKeyOpts are the inputs besides the design that change a beam layout.
type BeamKeyOpts struct {
	PolicyHash string   `json:"policy"`
	Walls      []string `json:"walls,omitempty"`
}

// SnapshotKeyOpts are the inputs besides the design that change a snapshot.
type SnapshotKeyOpts struct {
	PolicyHash string `json:"policy"`
}

// DefaultKeyer hashes every input into a fixed-length key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// BeamKey returns "beams:<sha256>".
func (DefaultKeyer) BeamKey(designHash string, opts BeamKeyOpts) string {
	return hashKey("beams", designHash, opts)
}

// SnapshotKey returns "snapshot:<sha256>".
func (DefaultKeyer) SnapshotKey(designHash string, opts SnapshotKeyOpts) string {
	return hashKey("snapshot", designHash, opts)
}

// ExportKey returns "export:<format>:<sha256>".
func (DefaultKeyer) ExportKey(snapshotHash, format string) string {
	return hashKey("export:"+format, snapshotHash)
}
