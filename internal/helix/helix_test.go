package helix

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProject_AntiPhase(t *testing.T) {
	const width, start, length = 800.0, -40.0, 720.0
	for _, r := range []float64{0, 0.3, math.Pi / 2, 2.9, -7.5, 100} {
		for _, pos := range []float64{start, 0, 120.5, start + length} {
			a := Project(pos, StrandA, r, width, start, length)
			b := Project(pos, StrandB, r, width, start, length)

			assert.InDelta(t, math.Pi, b.Angle-a.Angle, 1e-9, "rotation %v pos %v", r, pos)
			assert.InDelta(t, -a.Depth, b.Depth, 1e-9)
			assert.InDelta(t, width/2-(a.X-width/2), b.X, 1e-9)
		}
	}
}

func TestProject_DepthInRange(t *testing.T) {
	for i := 0; i < 500; i++ {
		p := Project(float64(i)*3.7, Strands[i%2], float64(i)*0.11, 1024, 10, 900)
		assert.GreaterOrEqual(t, p.Depth, -1.0)
		assert.LessOrEqual(t, p.Depth, 1.0)
	}
}

func TestProject_Values(t *testing.T) {
	// At the curve start with no rotation strand A faces the viewer.
	p := Project(100, StrandA, 0, 800, 100, 600)
	assert.InDelta(t, 400, p.X, 1e-9)
	assert.InDelta(t, 1, p.Depth, 1e-9)
	// amp = min(160, 140) = 140; tilt shifts y by 140 * 0.3.
	assert.InDelta(t, 100+140*Tilt, p.Y, 1e-9)

	// Narrow viewports scale the amplitude with width.
	q := Project(0, StrandA, math.Pi/2, 200, 0, 600)
	assert.InDelta(t, 100+40, q.X, 1e-9)
}

func TestProject_ZeroLength(t *testing.T) {
	p := Project(5, StrandA, 0, 800, 0, 0)
	require.False(t, math.IsNaN(p.X))
	require.False(t, math.IsNaN(p.Y))
	require.False(t, math.IsNaN(p.Depth))
}

func TestDimensions(t *testing.T) {
	d := Dimensions(1000, 5)
	assert.Equal(t, 800.0, d.Length)
	assert.Equal(t, 100.0, d.Start)

	// More items than fit: the curve grows past the viewport.
	d = Dimensions(600, 20)
	assert.Equal(t, 1200.0, d.Length)
	assert.Equal(t, -300.0, d.Start)

	d = Dimensions(0, 0)
	assert.Equal(t, 0.0, d.Length)
}

func TestProjection_At(t *testing.T) {
	p := NewProjection(0, 800, 1000, 10)
	assert.InDelta(t, 80, p.StepSpacing(), 1e-9)

	first := p.At(0, StrandA)
	direct := Project(p.Dims.Start, StrandA, 0, 800, p.Dims.Start, p.Dims.Length)
	assert.Equal(t, direct, first)

	last := p.Along(1, StrandB)
	assert.Equal(t, Project(p.Dims.Start+p.Dims.Length, StrandB, 0, 800, p.Dims.Start, p.Dims.Length), last)
}

func TestProjection_NoSteps(t *testing.T) {
	p := NewProjection(0.4, 800, 600, 0)
	assert.Equal(t, p.Dims.Length, p.StepSpacing())
	pt := p.At(0, StrandB)
	assert.False(t, math.IsNaN(pt.X))
}

func TestDepthNorm(t *testing.T) {
	assert.Equal(t, 0.0, DepthNorm(-1))
	assert.Equal(t, 0.5, DepthNorm(0))
	assert.Equal(t, 1.0, DepthNorm(1))
	assert.Equal(t, 1.0, DepthNorm(3))
	assert.Equal(t, 0.0, DepthNorm(math.NaN()))
}

func TestStrand(t *testing.T) {
	assert.Equal(t, "A", StrandA.String())
	assert.Equal(t, "B", StrandB.String())
	assert.Equal(t, StrandB, StrandA.Opposite())
	assert.Equal(t, math.Pi, StrandB.Phase())

	s, err := ParseStrand(" Objective ")
	require.NoError(t, err)
	assert.Equal(t, StrandB, s)

	_, err = ParseStrand("c")
	assert.Error(t, err)
}
