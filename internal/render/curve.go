package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/msalah0e/helix/internal/helix"
)

// Cardinal smooths points into a cubic bezier path, matching
// d3.curveCardinal. Tension 0 is a Catmull-Rom style curve; 1 gives
// straight segments.
func Cardinal(pts []helix.Point, tension float64) string {
	n := len(pts)
	switch n {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf("M%s,%s", coord(pts[0].X), coord(pts[0].Y))
	case 2:
		return fmt.Sprintf("M%s,%sL%s,%s", coord(pts[0].X), coord(pts[0].Y), coord(pts[1].X), coord(pts[1].Y))
	}

	k := (1 - tension) / 6
	// Endpoints reflect their neighbour so the curve leaves and enters
	// them without overshoot.
	at := func(i int) helix.Point {
		switch {
		case i < 0:
			return pts[1]
		case i >= n:
			return pts[n-2]
		}
		return pts[i]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "M%s,%s", coord(pts[0].X), coord(pts[0].Y))
	for i := 0; i < n-1; i++ {
		p0, p1, p2, p3 := at(i-1), pts[i], pts[i+1], at(i+2)
		c1x, c1y := p1.X+k*(p2.X-p0.X), p1.Y+k*(p2.Y-p0.Y)
		c2x, c2y := p2.X-k*(p3.X-p1.X), p2.Y-k*(p3.Y-p1.Y)
		fmt.Fprintf(&b, "C%s,%s,%s,%s,%s,%s",
			coord(c1x), coord(c1y), coord(c2x), coord(c2y), coord(p2.X), coord(p2.Y))
	}
	return b.String()
}

// BowControl returns the control point for a quadratic curve from a to
// b, pushed perpendicular to the chord by bow times its length. The bow
// always lifts toward negative y; a vertical chord bows to the left.
func BowControl(a, b helix.Point, bow float64) (float64, float64) {
	mx, my := (a.X+b.X)/2, (a.Y+b.Y)/2
	dx, dy := b.X-a.X, b.Y-a.Y
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return mx, my
	}
	nx, ny := dy/dist, -dx/dist
	if ny > 0 || (ny == 0 && nx > 0) {
		nx, ny = -nx, -ny
	}
	return mx + nx*bow*dist, my + ny*bow*dist
}

// Quad is the path of a bowed quadratic curve from a to b.
func Quad(a, b helix.Point, bow float64) string {
	cx, cy := BowControl(a, b, bow)
	return fmt.Sprintf("M%s,%sQ%s,%s,%s,%s",
		coord(a.X), coord(a.Y), coord(cx), coord(cy), coord(b.X), coord(b.Y))
}

func coord(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	return fmt.Sprintf("%.2f", v)
}
