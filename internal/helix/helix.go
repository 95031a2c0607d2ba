// Package helix holds the pure geometry of the double helix: projecting
// a linear position on a strand to screen space, and sizing the curve
// for a viewport.
package helix

import "math"

const (
	// Tilt bows near and far points vertically so the helix reads as 3D.
	Tilt = 0.3
	// AmpLimit caps the horizontal radius in pixels.
	AmpLimit = 140.0
	// Twists is the number of full turns visible along the curve.
	Twists = 2.5
	// NodeSpacing is the minimum vertical room per step in pixels.
	NodeSpacing = 60.0
)

// Point is a projected position. Depth is cos(angle) and lies in [-1, 1];
// 1 faces the viewer.
type Point struct {
	X     float64
	Y     float64
	Depth float64
	Angle float64
}

// Project maps a linear position on a strand to screen space.
func Project(pos float64, s Strand, rotation, width, start, length float64) Point {
	if length == 0 {
		length = 1
	}
	freq := (2 * Twists * math.Pi) / length
	amp := math.Min(width*0.2, AmpLimit)

	angle := (pos-start)*freq + rotation + s.Phase()
	depth := math.Cos(angle)

	return Point{
		X:     width/2 + amp*math.Sin(angle),
		Y:     pos + depth*amp*Tilt,
		Depth: depth,
		Angle: angle,
	}
}

// Dims is the vertical extent of the curve. Start may be negative when
// the curve is taller than the viewport.
type Dims struct {
	Length float64
	Start  float64
}

// Dimensions sizes the curve so each item keeps at least NodeSpacing.
func Dimensions(height float64, count int) Dims {
	length := math.Max(height*0.8, float64(count)*NodeSpacing)
	return Dims{Length: length, Start: (height - length) / 2}
}

// Projection binds rotation and viewport for one frame.
type Projection struct {
	Rotation float64
	Width    float64
	Height   float64
	Steps    int
	Dims     Dims
}

// NewProjection sizes the curve for steps and binds it to the viewport.
func NewProjection(rotation, width, height float64, steps int) Projection {
	return Projection{
		Rotation: rotation,
		Width:    width,
		Height:   height,
		Steps:    steps,
		Dims:     Dimensions(height, steps),
	}
}

// StepSpacing is the vertical distance between adjacent ranks.
func (p Projection) StepSpacing() float64 {
	n := p.Steps
	if n < 1 {
		n = 1
	}
	return p.Dims.Length / float64(n)
}

// At projects the slot at rank on strand s.
func (p Projection) At(rank int, s Strand) Point {
	y := p.Dims.Start + float64(rank)*p.StepSpacing()
	return Project(y, s, p.Rotation, p.Width, p.Dims.Start, p.Dims.Length)
}

// Along projects the point at fraction t in [0, 1] of the stepped extent.
func (p Projection) Along(t float64, s Strand) Point {
	y := p.Dims.Start + t*float64(p.Steps)*p.StepSpacing()
	return Project(y, s, p.Rotation, p.Width, p.Dims.Start, p.Dims.Length)
}

// DepthNorm maps depth from [-1, 1] to [0, 1], clamping stray values.
func DepthNorm(depth float64) float64 {
	z := (depth + 1) / 2
	switch {
	case z < 0 || math.IsNaN(z):
		return 0
	case z > 1:
		return 1
	}
	return z
}
