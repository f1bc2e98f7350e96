// Package pipeline runs the barnframe engines behind a cache.
//
// The CLI and the HTTP API both go through a [Runner] so that a design is
// analyzed the same way whichever entry point received it.
//
// # Stages
//
//  1. Beams: plan posts and girts for all four walls (walls run concurrently)
//  2. Snapshot: detect opening requirements and derive the space model
//  3. Validate / Protection / AccessGraph: answer questions from the snapshot
//
// Each stage can be run on its own. Results are keyed by a content hash of
// the normalized design and the policy in force, so a changed policy never
// returns a stale layout.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	defer runner.Close()
//
//	result, err := runner.Analyze(ctx, d)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(len(result.Snapshot.LayoutConstraints))
package pipeline

import (
	"slices"
	"time"

	"github.com/matzehuels/barnframe/pkg/beams"
	"github.com/matzehuels/barnframe/pkg/cache"
	"github.com/matzehuels/barnframe/pkg/design"
	"github.com/matzehuels/barnframe/pkg/space"
)

// BeamResult is the framing plan for a design.
type BeamResult struct {
	DesignHash string             `json:"design_hash"`
	Walls      []beams.WallLayout `json:"walls"`
}

// Warnings collects the coverage warnings of every wall in wall order.
func (r BeamResult) Warnings() []string {
	var out []string
	for _, w := range r.Walls {
		out = append(out, w.Warnings()...)
	}
	return out
}

// Result contains the outputs of a full analysis.
type Result struct {
	// DesignHash is the content hash of the normalized design.
	DesignHash string `json:"design_hash"`

	Beams    *BeamResult    `json:"beams"`
	Snapshot space.Snapshot `json:"snapshot"`

	// Stats contains timing and size information.
	Stats Stats `json:"-"`

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo `json:"-"`
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Walls        int
	Warnings     int
	Openings     int
	Constraints  int
	BeamTime     time.Duration
	SnapshotTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	BeamsHit    bool // Whether the beam plan came from cache
	SnapshotHit bool // Whether the snapshot came from cache
}

// prepared is a validated, normalized copy of a design and its hash.
type prepared struct {
	design design.Design
	hash   string
}

// prepare normalizes a copy of d, validates it and hashes its canonical
// JSON. The caller's design is not modified.
func prepare(d *design.Design) (prepared, error) {
	work := *d
	work.Openings = slices.Clone(d.Openings)
	work.Normalize()
	if err := work.Validate(); err != nil {
		return prepared{}, err
	}
	data, err := design.Marshal(&work)
	if err != nil {
		return prepared{}, err
	}
	return prepared{design: work, hash: cache.Hash(data)}, nil
}
