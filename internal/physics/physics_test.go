package physics

import (
	"math"
	"testing"
	"time"

	"github.com/msalah0e/helix/internal/graph"
	"github.com/msalah0e/helix/internal/helix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	selects []string
	deletes []string
	clears  int
}

func (r *recorder) callbacks() Callbacks {
	return Callbacks{
		OnSelect: func(id string, s helix.Strand) { r.selects = append(r.selects, id+"/"+s.String()) },
		OnDelete: func(id string, s helix.Strand) { r.deletes = append(r.deletes, id+"/"+s.String()) },
		OnClear:  func() { r.clears++ },
	}
}

func TestAdvance_Drift(t *testing.T) {
	c := New(DefaultParams(), Callbacks{})
	c.Advance(FrameDuration)
	assert.InDelta(t, 0.005, c.Rotation(), 1e-9)

	c.Advance(10 * FrameDuration)
	assert.InDelta(t, 0.055, c.Rotation(), 1e-9)

	c.Advance(0)
	c.Advance(-time.Second)
	assert.InDelta(t, 0.055, c.Rotation(), 1e-9)
}

func TestAdvance_FrictionDecay(t *testing.T) {
	c := New(DefaultParams(), Callbacks{})
	c.state.Momentum = 0.1

	c.Advance(FrameDuration)
	st := c.State()
	assert.InDelta(t, 0.105, st.Rotation, 1e-9)
	assert.InDelta(t, 0.095, st.Momentum, 1e-9)

	// Decay is framerate independent: two half frames match one frame.
	a := New(DefaultParams(), Callbacks{})
	a.state.Momentum = 0.1
	a.Advance(2 * FrameDuration)
	b := New(DefaultParams(), Callbacks{})
	b.state.Momentum = 0.1
	b.Advance(FrameDuration)
	b.Advance(FrameDuration)
	assert.InDelta(t, a.State().Momentum, b.State().Momentum, 1e-9)
}

func TestAdvance_MomentumSnapsToZero(t *testing.T) {
	c := New(DefaultParams(), Callbacks{})
	c.state.Momentum = 0.01
	for i := 0; i < 400; i++ {
		c.Advance(FrameDuration)
	}
	assert.Zero(t, c.State().Momentum)
}

func TestAdvance_FrozenWhileDraggingOrPaused(t *testing.T) {
	c := New(DefaultParams(), Callbacks{})
	c.state.Momentum = 0.05

	c.PointerDown(100)
	c.Advance(time.Second)
	assert.Zero(t, c.Rotation())
	c.PointerUp()

	c.HoverEnter(&graph.Node{ID: "q1"})
	c.Advance(time.Second)
	assert.Zero(t, c.Rotation())
	assert.Equal(t, 0.05, c.State().Momentum)

	c.HoverLeave()
	c.Advance(FrameDuration)
	assert.InDelta(t, 0.055, c.Rotation(), 1e-9)
}

func TestDragAndThrow(t *testing.T) {
	c := New(DefaultParams(), Callbacks{})
	c.PointerMove(50)
	assert.Zero(t, c.Rotation(), "moves without a drag are ignored")

	c.PointerDown(100)
	c.PointerMove(120)
	c.PointerMove(130)
	st := c.State()
	assert.True(t, st.Dragging)
	assert.InDelta(t, 30*0.005, st.Rotation, 1e-9)
	assert.InDelta(t, 10*0.001, st.Momentum, 1e-9)

	c.PointerUp()
	st = c.State()
	assert.False(t, st.Dragging)
	assert.InDelta(t, 0.01, st.Momentum, 1e-9)

	before := c.Rotation()
	c.Advance(FrameDuration)
	assert.InDelta(t, before+0.005+0.01, c.Rotation(), 1e-9)
}

func TestPointerLeaveReleasesDrag(t *testing.T) {
	c := New(DefaultParams(), Callbacks{})
	c.PointerDown(0)
	c.PointerLeave()
	assert.False(t, c.State().Dragging)
	c.PointerMove(100)
	assert.Zero(t, c.Rotation())
}

func TestScroll_Capped(t *testing.T) {
	c := New(DefaultParams(), Callbacks{})
	c.Scroll(100)
	assert.InDelta(t, 0.05, c.State().Momentum, 1e-9)

	for i := 0; i < 20; i++ {
		c.Scroll(1000)
	}
	assert.Equal(t, 0.12, c.State().Momentum)

	for i := 0; i < 20; i++ {
		c.Scroll(-1000)
	}
	assert.Equal(t, -0.12, c.State().Momentum)
}

func TestHover(t *testing.T) {
	c := New(DefaultParams(), Callbacks{})
	n := &graph.Node{ID: "q1"}

	assert.True(t, c.HoverEnter(n))
	assert.False(t, c.HoverEnter(n))
	st := c.State()
	assert.True(t, st.Paused)
	assert.Equal(t, "q1", st.HoveredID)

	assert.True(t, c.HoverLeave())
	assert.False(t, c.HoverLeave())
	st = c.State()
	assert.False(t, st.Paused)
	assert.Empty(t, st.HoveredID)

	c.PointerDown(0)
	assert.False(t, c.HoverEnter(n), "hover is ignored mid-drag")
	assert.Empty(t, c.State().HoveredID)
	assert.False(t, c.HoverEnter(nil))
}

func TestClick_SelectToggleAndDelete(t *testing.T) {
	var rec recorder
	c := New(DefaultParams(), rec.callbacks())
	q := &graph.Node{ID: "q1", Strand: helix.StrandA}
	o := &graph.Node{ID: "o1", Strand: helix.StrandB}

	in := c.Click(q, false)
	assert.Equal(t, Intent{Kind: IntentSelect, ID: "q1", Strand: helix.StrandA}, in)
	assert.Equal(t, "q1", c.State().SelectedID)

	c.Click(q, false)
	assert.Empty(t, c.State().SelectedID)

	in = c.Click(o, true)
	assert.Equal(t, IntentDelete, in.Kind)
	assert.Equal(t, "o1", c.State().SelectedID)

	assert.Equal(t, []string{"q1/A", "q1/A"}, rec.selects)
	assert.Equal(t, []string{"o1/B"}, rec.deletes)
}

func TestClick_GhostNeverDispatches(t *testing.T) {
	var rec recorder
	c := New(DefaultParams(), rec.callbacks())
	ghost := &graph.Node{ID: graph.GhostID(helix.StrandB, 2), Strand: helix.StrandB, Ghost: true}

	require.NotPanics(t, func() {
		assert.Equal(t, IntentNone, c.Click(ghost, false).Kind)
		assert.Equal(t, IntentNone, c.Click(ghost, true).Kind)
		assert.Equal(t, IntentNone, c.Click(nil, false).Kind)
	})
	assert.Empty(t, rec.selects)
	assert.Empty(t, rec.deletes)
	assert.Empty(t, c.State().SelectedID)

	// Nil callbacks are fine too.
	bare := New(DefaultParams(), Callbacks{})
	assert.NotPanics(t, func() {
		bare.Click(&graph.Node{ID: "q"}, false)
		bare.BackgroundClick()
	})
}

func TestClick_SwallowedAfterDrag(t *testing.T) {
	var rec recorder
	c := New(DefaultParams(), rec.callbacks())
	q := &graph.Node{ID: "q1"}

	c.PointerDown(0)
	c.PointerMove(40)
	c.PointerUp()
	assert.Equal(t, IntentNone, c.Click(q, false).Kind)
	assert.Empty(t, rec.selects)

	// Only the click ending the drag is swallowed.
	assert.Equal(t, IntentSelect, c.Click(q, false).Kind)

	// A jitter below the threshold still clicks.
	c.PointerDown(0)
	c.PointerMove(2)
	c.PointerUp()
	assert.Equal(t, IntentSelect, c.Click(q, false).Kind)
	assert.Len(t, rec.selects, 2)
}

func TestBackgroundClick(t *testing.T) {
	var rec recorder
	c := New(DefaultParams(), rec.callbacks())
	c.SetSelected("q1")

	in := c.BackgroundClick()
	assert.Equal(t, IntentClear, in.Kind)
	assert.Empty(t, c.State().SelectedID)
	assert.Equal(t, 1, rec.clears)
}

func TestSetRotation(t *testing.T) {
	c := New(DefaultParams(), Callbacks{})
	c.Scroll(50)
	c.SetRotation(math.Pi)
	st := c.State()
	assert.Equal(t, math.Pi, st.Rotation)
	assert.Zero(t, st.Momentum)
}

func TestIntentKindString(t *testing.T) {
	assert.Equal(t, "select", IntentSelect.String())
	assert.Equal(t, "delete", IntentDelete.String())
	assert.Equal(t, "clear", IntentClear.String())
	assert.Equal(t, "none", IntentNone.String())
}
