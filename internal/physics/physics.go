// Package physics owns the helix rotation: ambient drift, drag with throw
// momentum, scroll twist and friction decay. It also turns pointer focus
// and clicks into select and delete intents.
//
// A Controller is not safe for concurrent use; the renderer serializes
// access to it.
package physics

import (
	"math"
	"time"

	"github.com/msalah0e/helix/internal/graph"
	"github.com/msalah0e/helix/internal/helix"
)

// FrameDuration is the reference frame the gains are tuned for.
const FrameDuration = time.Second / 60

const momentumEpsilon = 1e-5

// Params tunes the controller. Gains are per 60 Hz frame.
type Params struct {
	Drift       float64 `toml:"drift" yaml:"drift" validate:"gte=0"`
	DragGain    float64 `toml:"drag_gain" yaml:"drag_gain" validate:"gte=0"`
	ThrowGain   float64 `toml:"throw_gain" yaml:"throw_gain" validate:"gte=0"`
	Friction    float64 `toml:"friction" yaml:"friction" validate:"gte=0,lte=1"`
	ScrollGain  float64 `toml:"scroll_gain" yaml:"scroll_gain" validate:"gte=0"`
	MaxMomentum float64 `toml:"max_momentum" yaml:"max_momentum" validate:"gte=0"`
	// DragThreshold is the horizontal travel in pixels after which the
	// click that ends a drag is swallowed.
	DragThreshold float64 `toml:"drag_threshold" yaml:"drag_threshold" validate:"gte=0"`
}

// DefaultParams returns the stock tuning.
func DefaultParams() Params {
	return Params{
		Drift:         0.005,
		DragGain:      0.005,
		ThrowGain:     0.001,
		Friction:      0.95,
		ScrollGain:    0.0005,
		MaxMomentum:   0.12,
		DragThreshold: 3,
	}
}

// State is a read-only view of the controller.
type State struct {
	Rotation   float64
	Momentum   float64
	Dragging   bool
	Paused     bool
	HoveredID  string
	SelectedID string
}

// IntentKind says what a click asked for.
type IntentKind uint8

const (
	IntentNone IntentKind = iota
	IntentSelect
	IntentDelete
	IntentClear
)

func (k IntentKind) String() string {
	switch k {
	case IntentSelect:
		return "select"
	case IntentDelete:
		return "delete"
	case IntentClear:
		return "clear"
	}
	return "none"
}

// Intent is a dispatched click.
type Intent struct {
	Kind   IntentKind
	ID     string
	Strand helix.Strand
}

// Callbacks receive intents. Any of them may be nil.
type Callbacks struct {
	OnSelect func(id string, s helix.Strand)
	OnDelete func(id string, s helix.Strand)
	OnClear  func()
}

// Controller integrates rotation and tracks focus.
type Controller struct {
	params    Params
	callbacks Callbacks
	state     State

	lastX        float64
	travel       float64
	swallowClick bool
}

// New returns a controller at rotation zero.
func New(p Params, cb Callbacks) *Controller {
	return &Controller{params: p, callbacks: cb}
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	return c.state
}

// Rotation is the current rotation in radians.
func (c *Controller) Rotation() float64 {
	return c.state.Rotation
}

// Params returns the tuning in use.
func (c *Controller) Params() Params {
	return c.params
}

// SetParams swaps the tuning without touching state.
func (c *Controller) SetParams(p Params) {
	c.params = p
}

// SetCallbacks replaces the intent receivers.
func (c *Controller) SetCallbacks(cb Callbacks) {
	c.callbacks = cb
}

// SetRotation places the helix at r with no momentum.
func (c *Controller) SetRotation(r float64) {
	c.state.Rotation = r
	c.state.Momentum = 0
}

// Advance integrates dt of wall time. Dragging or a hover pause freezes
// rotation and momentum.
func (c *Controller) Advance(dt time.Duration) {
	if dt <= 0 || c.state.Dragging || c.state.Paused {
		return
	}
	frames := float64(dt) / float64(FrameDuration)
	c.state.Rotation += (c.params.Drift + c.state.Momentum) * frames
	c.state.Momentum *= math.Pow(c.params.Friction, frames)
	if math.Abs(c.state.Momentum) < momentumEpsilon {
		c.state.Momentum = 0
	}
}

// PointerDown starts a drag at x.
func (c *Controller) PointerDown(x float64) {
	c.state.Dragging = true
	c.lastX = x
	c.travel = 0
	c.swallowClick = false
}

// PointerMove tracks the pointer 1:1 while dragging and records throw
// momentum from the latest delta.
func (c *Controller) PointerMove(x float64) {
	if !c.state.Dragging {
		return
	}
	delta := x - c.lastX
	c.lastX = x
	c.travel += math.Abs(delta)
	c.state.Rotation += delta * c.params.DragGain
	c.state.Momentum = delta * c.params.ThrowGain
}

// PointerUp releases a drag. The throw momentum carries.
func (c *Controller) PointerUp() {
	if !c.state.Dragging {
		return
	}
	c.state.Dragging = false
	c.swallowClick = c.travel > c.params.DragThreshold
	c.travel = 0
}

// PointerLeave releases a drag when the pointer leaves the surface.
func (c *Controller) PointerLeave() {
	c.state.Dragging = false
	c.travel = 0
}

// Scroll adds twist momentum, capped at MaxMomentum either way.
func (c *Controller) Scroll(delta float64) {
	m := c.state.Momentum + delta*c.params.ScrollGain
	limit := c.params.MaxMomentum
	c.state.Momentum = math.Max(-limit, math.Min(limit, m))
}

// HoverEnter pauses rotation on n. It is ignored while dragging and
// reports whether focus changed.
func (c *Controller) HoverEnter(n *graph.Node) bool {
	if c.state.Dragging || n == nil {
		return false
	}
	changed := c.state.HoveredID != n.ID || !c.state.Paused
	c.state.Paused = true
	c.state.HoveredID = n.ID
	return changed
}

// HoverLeave resumes rotation and reports whether a hover was cleared.
func (c *Controller) HoverLeave() bool {
	changed := c.state.Paused || c.state.HoveredID != ""
	c.state.Paused = false
	c.state.HoveredID = ""
	return changed
}

// SetSelected forces the selection, without dispatching.
func (c *Controller) SetSelected(id string) {
	c.state.SelectedID = id
}

// Click handles a click on n, with modifier held for delete. Ghosts and
// clicks ending a drag yield IntentNone.
func (c *Controller) Click(n *graph.Node, modifier bool) Intent {
	if c.consumeSwallow() || n == nil || n.Ghost {
		return Intent{}
	}
	if c.state.SelectedID == n.ID {
		c.state.SelectedID = ""
	} else {
		c.state.SelectedID = n.ID
	}

	in := Intent{Kind: IntentSelect, ID: n.ID, Strand: n.Strand}
	if modifier {
		in.Kind = IntentDelete
	}
	c.dispatch(in)
	return in
}

// BackgroundClick clears the selection and notifies.
func (c *Controller) BackgroundClick() Intent {
	if c.consumeSwallow() {
		return Intent{}
	}
	c.state.SelectedID = ""
	in := Intent{Kind: IntentClear}
	c.dispatch(in)
	return in
}

func (c *Controller) consumeSwallow() bool {
	s := c.swallowClick
	c.swallowClick = false
	return s
}

func (c *Controller) dispatch(in Intent) {
	switch in.Kind {
	case IntentSelect:
		if c.callbacks.OnSelect != nil {
			c.callbacks.OnSelect(in.ID, in.Strand)
		}
	case IntentDelete:
		if c.callbacks.OnDelete != nil {
			c.callbacks.OnDelete(in.ID, in.Strand)
		}
	case IntentClear:
		if c.callbacks.OnClear != nil {
			c.callbacks.OnClear()
		}
	}
}
