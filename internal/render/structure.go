package render

import (
	"strconv"

	"github.com/msalah0e/helix/internal/graph"
	"github.com/msalah0e/helix/internal/helix"
	"github.com/msalah0e/helix/internal/scene"
)

const (
	rungBow       = 0.3
	structuralBow = 0.15
	syntheticBow  = 0.25

	structuralDash = "2 4"
	syntheticDash  = "1 4"
)

// StructureSystem draws the rungs, cross-links and strand backbones.
type StructureSystem struct {
	// SamplesPerStep is the strand sampling resolution.
	SamplesPerStep int
	// Tension is the cardinal spline tension for the strands.
	Tension float64
}

// NewStructureSystem uses four samples per step and tension 0.
func NewStructureSystem() *StructureSystem {
	return &StructureSystem{SamplesPerStep: 4}
}

// Render draws every structural element of the frame.
func (ss *StructureSystem) Render(sc *scene.Scene, f Frame) {
	ss.renderStrands(sc, f)
	if f.Snapshot == nil {
		return
	}
	ss.renderRungs(sc, f)
	ss.renderLinks(sc, f)
}

func (ss *StructureSystem) renderRungs(sc *scene.Scene, f Frame) {
	snap := f.Snapshot
	p := sc.Palette
	for _, step := range snap.Steps {
		a := snap.SlotNode(step, helix.StrandA)
		b := snap.SlotNode(step, helix.StrandB)
		if !isReal(a) && !isReal(b) {
			continue
		}

		pa := f.Projection.At(step.Rank, helix.StrandA)
		pb := f.Projection.At(step.Rank, helix.StrandB)
		z := helix.DepthNorm(pa.Depth)

		path := scene.Path{
			Key:    "rung-" + strconv.Itoa(step.Rank),
			D:      Quad(pa, pb, rungBow),
			Stroke: p.RungDim,
			Width:  0.5 + 2*z,
		}
		if bright(snap, a) || bright(snap, b) {
			path.Stroke = p.RungBright
			path.Opacity = 0.3 + 0.7*z
		} else {
			path.Opacity = 0.1 + 0.4*z
		}
		sc.Add(scene.Intervals, path)
	}
}

func isReal(n *graph.Node) bool {
	return n != nil && !n.Ghost
}

func bright(snap *graph.Snapshot, n *graph.Node) bool {
	return isReal(n) && (n.Crystallized || snap.IsRecent(n.ID))
}

// renderLinks resolves endpoints through the snapshot index. A link whose
// endpoint is gone is skipped.
func (ss *StructureSystem) renderLinks(sc *scene.Scene, f Frame) {
	snap := f.Snapshot
	p := sc.Palette
	focus := f.Focus.Active()
	for _, l := range snap.Links {
		src, ok := snap.Lookup(l.SourceID)
		if !ok {
			continue
		}
		dst, ok := snap.Lookup(l.TargetID)
		if !ok {
			continue
		}

		ps, pt := f.NodePoint(src), f.NodePoint(dst)
		key := "link-" + l.SourceID + "-" + l.TargetID
		switch l.Kind {
		case graph.Synthetic:
			sc.Add(scene.CrossLinks, scene.Path{
				Key: key, D: Quad(ps, pt, syntheticBow), Stroke: p.LinkSynthetic,
				Width: 1.5, Opacity: 0.6, Dash: syntheticDash,
			})
		case graph.Structural:
			if focus == "" || (focus != l.SourceID && focus != l.TargetID) {
				continue
			}
			sc.Add(scene.CrossLinks, scene.Path{
				Key: key, D: Quad(ps, pt, structuralBow), Stroke: p.LinkStructural,
				Width: 1.5, Opacity: 0.9, Dash: structuralDash,
			})
		}
	}
}

// StrandPoints samples one strand across the stepped extent.
func (ss *StructureSystem) StrandPoints(proj helix.Projection, s helix.Strand) []helix.Point {
	per := ss.SamplesPerStep
	if per < 1 {
		per = 1
	}
	samples := proj.Steps * per
	if samples < 1 {
		samples = 1
	}
	pts := make([]helix.Point, 0, samples+1)
	for i := 0; i <= samples; i++ {
		pts = append(pts, proj.Along(float64(i)/float64(samples), s))
	}
	return pts
}

// renderStrands draws each backbone twice: a wide glowing pass behind
// everything and a crisp pass in front.
func (ss *StructureSystem) renderStrands(sc *scene.Scene, f Frame) {
	if f.Projection.Steps < 1 {
		return
	}
	p := sc.Palette
	for _, s := range helix.Strands {
		d := Cardinal(ss.StrandPoints(f.Projection, s), ss.Tension)
		if d == "" {
			continue
		}
		color := p.StrandA
		if s == helix.StrandB {
			color = p.StrandB
		}
		sc.Add(scene.BackStrands, scene.Path{
			Key: "strand-" + s.String() + "-back", D: d, Stroke: color,
			Width: 6, Opacity: 0.2, Filter: sc.Filter(scene.GlowFilter),
		})
		sc.Add(scene.FrontStrands, scene.Path{
			Key: "strand-" + s.String() + "-front", D: d, Stroke: color,
			Width: 2.5, Opacity: 0.9,
		})
	}
}
