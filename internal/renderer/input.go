package renderer

import (
	"github.com/msalah0e/helix/internal/graph"
	"github.com/msalah0e/helix/internal/physics"
)

type hoverEvent struct {
	node *graph.Node
	x, y float64
}

// PointerDown starts a drag.
func (r *Renderer) PointerDown(x, y float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctrl.PointerDown(x)
}

// PointerMove drags the helix and updates hover from the last frame's
// hit test.
func (r *Renderer) PointerMove(x, y float64) {
	r.mu.Lock()
	r.ctrl.PointerMove(x)
	ev, fire := r.hoverAt(x, y)
	r.mu.Unlock()

	if fire {
		r.emitHover(ev)
	}
}

// PointerUp releases a drag.
func (r *Renderer) PointerUp(x, y float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctrl.PointerUp()
}

// PointerLeave releases a drag and any hover.
func (r *Renderer) PointerLeave() {
	r.mu.Lock()
	r.ctrl.PointerLeave()
	fire := r.ctrl.HoverLeave()
	r.mu.Unlock()

	if fire {
		r.emitHover(hoverEvent{})
	}
}

// Scroll adds twist momentum.
func (r *Renderer) Scroll(delta float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctrl.Scroll(delta)
}

// Click hit-tests (x, y) against the last frame and dispatches select or
// delete. A miss is a background click. Ghosts are never hit.
func (r *Renderer) Click(x, y float64, modifier bool) physics.Intent {
	r.mu.Lock()
	var in physics.Intent
	if n := r.nodeAt(x, y); n != nil {
		in = r.ctrl.Click(n, modifier)
	} else {
		in = r.ctrl.BackgroundClick()
	}
	r.mu.Unlock()

	r.dispatch(in)
	return in
}

// HoverNode focuses the node with id directly, as a host without
// pointer coordinates would.
func (r *Renderer) HoverNode(id string) bool {
	r.mu.Lock()
	n, ok := r.snap.Lookup(id)
	if !ok || n.Ghost {
		r.mu.Unlock()
		return false
	}
	fire := r.ctrl.HoverEnter(n)
	p := r.frame.NodePoint(n)
	r.mu.Unlock()

	if fire {
		r.emitHover(hoverEvent{node: n, x: p.X, y: p.Y})
	}
	return fire
}

// nodeAt resolves a hit on the last frame. Callers hold mu.
func (r *Renderer) nodeAt(x, y float64) *graph.Node {
	v, ok := r.nodes.HitTest(x, y)
	if !ok {
		return nil
	}
	n, ok := r.snap.Lookup(v.ID)
	if !ok {
		return nil
	}
	return n
}

// hoverAt updates hover focus for a pointer at (x, y). Callers hold mu.
func (r *Renderer) hoverAt(x, y float64) (hoverEvent, bool) {
	st := r.ctrl.State()
	if st.Dragging {
		return hoverEvent{}, false
	}
	n := r.nodeAt(x, y)
	switch {
	case n == nil:
		return hoverEvent{}, r.ctrl.HoverLeave()
	case n.ID == st.HoveredID:
		return hoverEvent{}, false
	}
	return hoverEvent{node: n, x: x, y: y}, r.ctrl.HoverEnter(n)
}

func (r *Renderer) emitHover(ev hoverEvent) {
	if r.opts.OnHover != nil {
		r.opts.OnHover(ev.node, ev.x, ev.y)
	}
}

func (r *Renderer) dispatch(in physics.Intent) {
	r.opts.Metrics.ObserveIntent(in.Kind.String())
	switch in.Kind {
	case physics.IntentSelect:
		if r.opts.OnSelect != nil {
			r.opts.OnSelect(in.ID, in.Strand)
		}
	case physics.IntentDelete:
		if r.opts.OnDelete != nil {
			r.opts.OnDelete(in.ID, in.Strand)
		}
	case physics.IntentClear:
		if r.opts.OnClear != nil {
			r.opts.OnClear()
		}
	}
}
