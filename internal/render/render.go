// Package render turns an assembled snapshot and a per-frame projection
// into scene elements. Nothing here writes to the snapshot or to the
// controller state it is given.
package render

import (
	"time"

	"github.com/msalah0e/helix/internal/graph"
	"github.com/msalah0e/helix/internal/helix"
)

// Focus is the interaction focus for a frame.
type Focus struct {
	HoveredID  string
	SelectedID string
}

// Active is the id cross-links are gated on: hover wins over selection.
func (f Focus) Active() string {
	if f.HoveredID != "" {
		return f.HoveredID
	}
	return f.SelectedID
}

// Frame is everything a visual system reads for one tick.
type Frame struct {
	Snapshot   *graph.Snapshot
	Projection helix.Projection
	Focus      Focus
	Now        time.Time
}

// NodePoint projects a node's slot for this frame.
func (f Frame) NodePoint(n *graph.Node) helix.Point {
	return f.Projection.At(n.Rank, n.Strand)
}
