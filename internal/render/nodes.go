package render

import (
	"sort"

	"github.com/msalah0e/helix/internal/graph"
	"github.com/msalah0e/helix/internal/helix"
	"github.com/msalah0e/helix/internal/scene"
)

const (
	// HitRadius is the unscaled pointer target around a node.
	HitRadius = 20.0

	labelMax  = 15
	labelKeep = 12
)

// NodeVisual is the computed look of one node for one frame.
type NodeVisual struct {
	ID           string
	Strand       helix.Strand
	Rank         int
	Ghost        bool
	Point        helix.Point
	Scale        float64
	Opacity      float64
	Ramp         string
	Emphasis     bool
	Hovered      bool
	Label        string
	LabelOpacity float64
}

// HitRadius is the scaled pointer target.
func (v NodeVisual) HitRadius() float64 {
	return HitRadius * v.Scale
}

// NodeSystem computes node visuals and keeps the set of nodes it has
// drawn, pruned to the latest snapshot.
type NodeSystem struct {
	tracked map[string]int
	order   []NodeVisual
}

// NewNodeSystem creates an empty node system.
func NewNodeSystem() *NodeSystem {
	return &NodeSystem{tracked: make(map[string]int)}
}

// Render computes every node for the frame, orders them back to front
// by depth and draws them on the node layer.
func (ns *NodeSystem) Render(sc *scene.Scene, f Frame) []NodeVisual {
	ns.order = ns.order[:0]
	clear(ns.tracked)
	if f.Snapshot == nil {
		return nil
	}

	for i := range f.Snapshot.Nodes {
		n := &f.Snapshot.Nodes[i]
		ns.order = append(ns.order, ComputeNode(n, f.NodePoint(n), f))
	}
	sort.SliceStable(ns.order, func(i, j int) bool {
		return ns.order[i].Point.Depth < ns.order[j].Point.Depth
	})
	for i, v := range ns.order {
		ns.tracked[v.ID] = i
		if sc != nil {
			sc.Add(scene.Nodes, glyph(sc, v))
		}
	}
	return ns.order
}

// Visuals returns the last frame's visuals in draw order.
func (ns *NodeSystem) Visuals() []NodeVisual {
	return ns.order
}

// Tracked looks up a node drawn in the last frame.
func (ns *NodeSystem) Tracked(id string) (NodeVisual, bool) {
	i, ok := ns.tracked[id]
	if !ok {
		return NodeVisual{}, false
	}
	return ns.order[i], true
}

// Len is the number of tracked nodes.
func (ns *NodeSystem) Len() int {
	return len(ns.tracked)
}

// HitTest returns the front-most non-ghost node under (x, y).
func (ns *NodeSystem) HitTest(x, y float64) (NodeVisual, bool) {
	for i := len(ns.order) - 1; i >= 0; i-- {
		v := ns.order[i]
		if v.Ghost {
			continue
		}
		dx, dy := x-v.Point.X, y-v.Point.Y
		r := v.HitRadius()
		if dx*dx+dy*dy <= r*r {
			return v, true
		}
	}
	return NodeVisual{}, false
}

// ComputeNode derives the visual state of n at projected point p.
func ComputeNode(n *graph.Node, p helix.Point, f Frame) NodeVisual {
	z := helix.DepthNorm(p.Depth)
	v := NodeVisual{
		ID:     n.ID,
		Strand: n.Strand,
		Rank:   n.Rank,
		Ghost:  n.Ghost,
		Point:  p,
		Scale:  0.4 + z*0.8,
	}
	if n.Ghost {
		v.Opacity = 0.1
		return v
	}

	hovered := n.ID == f.Focus.HoveredID
	selected := n.ID == f.Focus.SelectedID
	recent := f.Snapshot.IsRecent(n.ID)
	v.Emphasis = hovered || selected || n.Crystallized
	v.Hovered = hovered

	switch {
	case v.Emphasis:
		v.Opacity = 1
	default:
		v.Opacity = (0.1 + 0.9*z) * Entropy(n.LastUpdated, f.Now)
	}

	switch {
	case n.Crystallized:
		v.Ramp = scene.RampCrystal
	case hovered || selected || recent:
		v.Ramp = strandRamp(n.Strand)
	default:
		v.Ramp = scene.RampDim
	}

	v.Label = TruncateLabel(n.Label)
	switch {
	case hovered || selected:
		v.LabelOpacity = 1
	case n.Crystallized && p.Depth > -0.2:
		v.LabelOpacity = 0.9
	case recent && p.Depth > -0.5:
		v.LabelOpacity = 0.8
	}
	return v
}

func strandRamp(s helix.Strand) string {
	switch s {
	case helix.StrandA:
		return scene.RampWarm
	case helix.StrandB:
		return scene.RampCool
	}
	return scene.RampDim
}

// TruncateLabel shortens long titles to twelve runes and an ellipsis.
func TruncateLabel(s string) string {
	r := []rune(s)
	if len(r) <= labelMax {
		return s
	}
	return string(r[:labelKeep]) + "..."
}

func glyph(sc *scene.Scene, v NodeVisual) scene.Glyph {
	p := sc.Palette
	g := scene.Glyph{
		Key:       v.ID,
		X:         v.Point.X,
		Y:         v.Point.Y,
		Scale:     v.Scale,
		Opacity:   v.Opacity,
		HitRadius: HitRadius,
		Pointer:   !v.Ghost,
	}
	if v.Ghost {
		g.Halo = scene.Circle{R: 3, Fill: "none", Stroke: p.Ghost, StrokeWidth: 1, Opacity: 0.2}
		return g
	}

	bright := v.Emphasis || v.Ramp != scene.RampDim
	halo := scene.Circle{R: 8, Fill: sc.Fill(v.Ramp), Stroke: p.DimCore, StrokeWidth: 0.5, Opacity: 0.5}
	core := scene.Circle{R: 2.5, Fill: p.CoreA, Opacity: 1}
	if v.Strand == helix.StrandB {
		core.Fill = p.CoreB
	}
	switch {
	case v.Ramp == scene.RampCrystal:
		halo.Stroke, halo.StrokeWidth, halo.Opacity = p.Crystal, 1.5, 1
		core.Fill = p.Crystal
	case bright:
		halo.Stroke, halo.StrokeWidth, halo.Opacity = "#FFFFFF", 1.5, 0.9
	}
	if v.Hovered {
		halo.R, halo.Opacity = 14, 1
		core.R = 4
	}
	if v.Emphasis {
		g.Filter = sc.Filter(scene.GlowFilter)
	}
	g.Halo, g.Core = halo, core
	g.Label = scene.Label{Text: v.Label, Color: p.Label, Opacity: v.LabelOpacity, Bold: v.Hovered}
	return g
}
