// Package renderer drives the helix: it owns the controller, the current
// snapshot and the scene, runs the frame loop and routes pointer input.
// All methods are safe for concurrent use.
package renderer

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/msalah0e/helix/internal/graph"
	"github.com/msalah0e/helix/internal/helix"
	"github.com/msalah0e/helix/internal/metrics"
	"github.com/msalah0e/helix/internal/physics"
	"github.com/msalah0e/helix/internal/record"
	"github.com/msalah0e/helix/internal/render"
	"github.com/msalah0e/helix/internal/scene"
)

// Options configures a Renderer. Zero values fall back to defaults.
type Options struct {
	Width, Height float64
	// FrameInterval is the loop period.
	FrameInterval time.Duration
	Physics       physics.Params
	Graph         graph.Options
	Palette       scene.Palette
	Logger        *zap.Logger
	// Metrics is optional.
	Metrics *metrics.Collector
	// Clock supplies "now" for decay. Defaults to time.Now.
	Clock func() time.Time

	OnSelect func(id string, s helix.Strand)
	OnDelete func(id string, s helix.Strand)
	OnClear  func()
	// OnHover receives the hovered node, or nil on leave.
	OnHover func(n *graph.Node, x, y float64)
	// OnFrame runs after every tick while the renderer is locked. It
	// must not call back into the Renderer.
	OnFrame func(sc *scene.Scene)
}

// Renderer is the animation engine.
type Renderer struct {
	runMu  sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}

	mu        sync.Mutex
	opts      Options
	log       *zap.Logger
	ctrl      *physics.Controller
	snap      *graph.Snapshot
	sc        *scene.Scene
	nodes     *render.NodeSystem
	structure *render.StructureSystem
	frame     render.Frame
	frames    uint64
}

// New builds a renderer with an empty snapshot.
func New(opts Options) *Renderer {
	if opts.Width <= 0 {
		opts.Width = 800
	}
	if opts.Height <= 0 {
		opts.Height = 600
	}
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = physics.FrameDuration
	}
	if opts.Physics == (physics.Params{}) {
		opts.Physics = physics.DefaultParams()
	}
	if opts.Graph.MinSlots <= 0 {
		ro := opts.Graph.Rand
		opts.Graph = graph.DefaultOptions()
		opts.Graph.Rand = ro
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	r := &Renderer{
		opts:      opts,
		log:       opts.Logger.Named("renderer"),
		ctrl:      physics.New(opts.Physics, physics.Callbacks{}),
		sc:        scene.New(opts.Width, opts.Height, opts.Palette),
		nodes:     render.NewNodeSystem(),
		structure: render.NewStructureSystem(),
	}
	r.snap = graph.Assemble(nil, nil, opts.Graph)
	r.draw()
	return r
}

// Start runs the frame loop until ctx is done or Stop is called. A
// running loop is stopped first.
func (r *Renderer) Start(ctx context.Context) {
	r.runMu.Lock()
	defer r.runMu.Unlock()
	r.stopLocked()

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	r.cancel, r.done = cancel, done

	r.mu.Lock()
	interval := r.opts.FrameInterval
	r.mu.Unlock()

	r.log.Debug("loop started", zap.Duration("interval", interval))
	go r.loop(ctx, interval, done)
}

// Stop halts the loop and waits for it to exit. It is a no-op when the
// loop is not running.
func (r *Renderer) Stop() {
	r.runMu.Lock()
	defer r.runMu.Unlock()
	r.stopLocked()
}

func (r *Renderer) stopLocked() {
	if r.cancel == nil {
		return
	}
	r.cancel()
	<-r.done
	r.cancel, r.done = nil, nil
	r.log.Debug("loop stopped")
}

// Running reports whether the loop is active.
func (r *Renderer) Running() bool {
	r.runMu.Lock()
	defer r.runMu.Unlock()
	return r.cancel != nil
}

func (r *Renderer) loop(ctx context.Context, interval time.Duration, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C:
			r.Tick(t.Sub(last))
			last = t
		}
	}
}

// Tick advances physics by dt and redraws. Tick(0) redraws in place.
func (r *Renderer) Tick(dt time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	began := time.Now()
	r.ctrl.Advance(dt)
	r.draw()
	r.frames++
	r.opts.Metrics.ObserveFrame(time.Since(began), r.ctrl.Rotation())
	if r.opts.OnFrame != nil {
		r.opts.OnFrame(r.sc)
	}
}

// draw re-projects everything. Callers hold mu.
func (r *Renderer) draw() {
	st := r.ctrl.State()
	r.frame = render.Frame{
		Snapshot:   r.snap,
		Projection: helix.NewProjection(st.Rotation, r.opts.Width, r.opts.Height, len(r.snap.Steps)),
		Focus:      render.Focus{HoveredID: st.HoveredID, SelectedID: st.SelectedID},
		Now:        r.opts.Clock(),
	}
	r.sc.Clear()
	r.structure.Render(r.sc, r.frame)
	r.nodes.Render(r.sc, r.frame)
}

// UpdateViewportSize resizes the surface. The loop keeps running.
func (r *Renderer) UpdateViewportSize(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.opts.Width, r.opts.Height = width, height
	r.sc.Resize(width, height)
	r.draw()
}

// UpdateData reassembles the snapshot from both record collections. A
// hover on a node that no longer exists is dropped.
func (r *Renderer) UpdateData(questions, objectives []record.Record) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.snap = graph.Assemble(questions, objectives, r.opts.Graph)
	if id := r.ctrl.State().HoveredID; id != "" {
		if _, ok := r.snap.Lookup(id); !ok {
			r.ctrl.HoverLeave()
		}
	}
	r.draw()

	st := r.snap.Stats()
	r.opts.Metrics.SetNodes(st.Questions, st.Objectives, st.Ghosts)
	r.log.Debug("data updated",
		zap.Int("steps", st.Steps),
		zap.Int("questions", st.Questions),
		zap.Int("objectives", st.Objectives),
		zap.Int("ghosts", st.Ghosts),
		zap.Int("links", st.Structural+st.Synthetic),
	)
}

// SetInteractionFocus sets the selected node from outside.
func (r *Renderer) SetInteractionFocus(selectedID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctrl.SetSelected(selectedID)
}

// SetRotation places the helix at rot, clearing momentum.
func (r *Renderer) SetRotation(rot float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctrl.SetRotation(rot)
}

// SetPalette swaps the colours used from the next frame.
func (r *Renderer) SetPalette(p scene.Palette) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sc.SetPalette(p)
}

// Frame is the last drawn frame.
func (r *Renderer) Frame() render.Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frame
}

// SVG encodes the last drawn frame.
func (r *Renderer) SVG() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sc.SVG()
}

// State is the controller state.
func (r *Renderer) State() physics.State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ctrl.State()
}

// Snapshot is the current assembled graph. It must be treated as
// read-only.
func (r *Renderer) Snapshot() *graph.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snap
}

// Visuals copies the last frame's node visuals in draw order.
func (r *Renderer) Visuals() []render.NodeVisual {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]render.NodeVisual(nil), r.nodes.Visuals()...)
}

// Frames counts ticks since New.
func (r *Renderer) Frames() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}
