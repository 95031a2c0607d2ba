// Package scene owns the paint order of the helix and the shared visual
// resources (glow filter, radial ramps) that layers reference by name.
// It does not compute positions.
package scene

import (
	"fmt"
	"io"
	"strings"
)

// Layer is a drawing layer, declared back to front.
type Layer int

const (
	BackStrands Layer = iota
	Intervals
	CrossLinks
	Nodes
	FrontStrands

	layerCount
)

// Layers lists every layer in paint order.
var Layers = [layerCount]Layer{BackStrands, Intervals, CrossLinks, Nodes, FrontStrands}

func (l Layer) String() string {
	switch l {
	case BackStrands:
		return "back-strands"
	case Intervals:
		return "intervals"
	case CrossLinks:
		return "cross-links"
	case Nodes:
		return "nodes"
	case FrontStrands:
		return "front-strands"
	}
	return fmt.Sprintf("layer-%d", int(l))
}

// Element is anything a layer can hold.
type Element interface {
	writeSVG(b *strings.Builder)
}

// Scene is the layered frame being drawn.
type Scene struct {
	Width   float64
	Height  float64
	Palette Palette

	ramps  map[string]bool
	layers [layerCount][]Element
}

// New creates an empty scene for the palette.
func New(width, height float64, p Palette) *Scene {
	s := &Scene{Width: width, Height: height}
	s.SetPalette(p)
	return s
}

// SetPalette swaps the colors used by every layer.
func (s *Scene) SetPalette(p Palette) {
	s.Palette = p.Merge(DefaultPalette())
	s.ramps = make(map[string]bool)
	for _, r := range s.Palette.Ramps() {
		s.ramps[r.ID] = true
	}
}

// Resize updates the surface size.
func (s *Scene) Resize(width, height float64) {
	s.Width, s.Height = width, height
}

// Clear drops every element, keeping resources.
func (s *Scene) Clear() {
	for i := range s.layers {
		s.layers[i] = s.layers[i][:0]
	}
}

// Add appends an element to a layer.
func (s *Scene) Add(l Layer, e Element) {
	if l < 0 || l >= layerCount || e == nil {
		return
	}
	s.layers[l] = append(s.layers[l], e)
}

// Elements returns the contents of a layer in draw order.
func (s *Scene) Elements(l Layer) []Element {
	if l < 0 || l >= layerCount {
		return nil
	}
	return s.layers[l]
}

// Fill returns the paint reference for a named ramp, or "none" when the
// ramp is unknown.
func (s *Scene) Fill(ramp string) string {
	if !s.ramps[ramp] {
		return "none"
	}
	return "url(#" + ramp + ")"
}

// Filter returns the reference for a named filter.
func (s *Scene) Filter(name string) string {
	if name != GlowFilter {
		return ""
	}
	return "url(#" + name + ")"
}

// SVG encodes the scene as a standalone SVG document.
func (s *Scene) SVG() string {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s" style="overflow:visible">`,
		num(s.Width), num(s.Height), num(s.Width), num(s.Height))
	b.WriteString("\n")
	fmt.Fprintf(&b, `<rect width="100%%" height="100%%" fill="%s"/>`, s.Palette.Background)
	b.WriteString("\n")
	s.writeDefs(&b)
	b.WriteString(`<g class="helix-scene">`)
	b.WriteString("\n")
	for _, l := range Layers {
		fmt.Fprintf(&b, `<g class="layer-%s">`, l)
		b.WriteString("\n")
		for _, e := range s.layers[l] {
			e.writeSVG(&b)
			b.WriteString("\n")
		}
		b.WriteString("</g>\n")
	}
	b.WriteString("</g>\n</svg>\n")
	return b.String()
}

// WriteSVG writes the encoded scene to w.
func (s *Scene) WriteSVG(w io.Writer) error {
	_, err := io.WriteString(w, s.SVG())
	return err
}

func (s *Scene) writeDefs(b *strings.Builder) {
	b.WriteString("<defs>\n")
	fmt.Fprintf(b, `<filter id="%s" x="-50%%" y="-50%%" width="200%%" height="200%%">`, GlowFilter)
	b.WriteString(`<feGaussianBlur in="SourceGraphic" stdDeviation="4" result="blur"/>`)
	b.WriteString(`<feMerge><feMergeNode in="blur"/><feMergeNode in="SourceGraphic"/></feMerge>`)
	b.WriteString("</filter>\n")
	for _, r := range s.Palette.Ramps() {
		fmt.Fprintf(b, `<radialGradient id="%s" cx="50%%" cy="50%%" r="50%%">`, r.ID)
		for _, st := range r.Stops {
			fmt.Fprintf(b, `<stop offset="%s%%" stop-color="%s" stop-opacity="%s"/>`,
				num(st.Offset*100), attr(st.Color), num(st.Opacity))
		}
		b.WriteString("</radialGradient>\n")
	}
	b.WriteString("</defs>\n")
}
