package scene

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Path is a stroked, unfilled curve.
type Path struct {
	Key     string
	D       string
	Stroke  string
	Width   float64
	Opacity float64
	Dash    string
	Filter  string
}

func (p Path) writeSVG(b *strings.Builder) {
	b.WriteString("<path")
	if p.Key != "" {
		fmt.Fprintf(b, ` data-key="%s"`, attr(p.Key))
	}
	fmt.Fprintf(b, ` d="%s" fill="none" stroke="%s" stroke-width="%s" stroke-linecap="round" opacity="%s"`,
		p.D, attr(p.Stroke), num(p.Width), num(p.Opacity))
	if p.Dash != "" {
		fmt.Fprintf(b, ` stroke-dasharray="%s"`, attr(p.Dash))
	}
	if p.Filter != "" {
		fmt.Fprintf(b, ` filter="%s"`, attr(p.Filter))
	}
	b.WriteString("/>")
}

// Circle is a filled disc, optionally outlined.
type Circle struct {
	R           float64
	Fill        string
	Stroke      string
	StrokeWidth float64
	Opacity     float64
}

func (c Circle) writeSVG(b *strings.Builder, class string) {
	if c.R <= 0 {
		return
	}
	fmt.Fprintf(b, `<circle class="%s" r="%s" fill="%s"`, class, num(c.R), attr(c.Fill))
	if c.Stroke != "" {
		fmt.Fprintf(b, ` stroke="%s" stroke-width="%s"`, attr(c.Stroke), num(c.StrokeWidth))
	}
	if c.Opacity < 1 {
		fmt.Fprintf(b, ` opacity="%s"`, num(c.Opacity))
	}
	b.WriteString("/>")
}

// Label is the text drawn above a node.
type Label struct {
	Text    string
	Color   string
	Opacity float64
	Bold    bool
}

// Glyph is a node: a transparent hit area, halo, core and label, all
// positioned and scaled by one transform.
type Glyph struct {
	Key       string
	X, Y      float64
	Scale     float64
	Opacity   float64
	HitRadius float64
	Pointer   bool
	Filter    string
	Halo      Circle
	Core      Circle
	Label     Label
}

func (g Glyph) writeSVG(b *strings.Builder) {
	cursor := "default"
	if g.Pointer {
		cursor = "pointer"
	}
	fmt.Fprintf(b, `<g class="node-group" data-key="%s" transform="translate(%s,%s) scale(%s)" opacity="%s" style="cursor:%s">`,
		attr(g.Key), num(g.X), num(g.Y), num(g.Scale), num(g.Opacity), cursor)
	if g.HitRadius > 0 {
		fmt.Fprintf(b, `<circle class="hit-area" r="%s" fill="transparent"/>`, num(g.HitRadius))
	}
	halo := g.Halo
	if g.Filter != "" && halo.R > 0 {
		fmt.Fprintf(b, `<g filter="%s">`, attr(g.Filter))
		halo.writeSVG(b, "halo")
		b.WriteString("</g>")
	} else {
		halo.writeSVG(b, "halo")
	}
	g.Core.writeSVG(b, "core")
	if g.Label.Text != "" && g.Label.Opacity > 0 {
		weight := "normal"
		if g.Label.Bold {
			weight = "bold"
		}
		fmt.Fprintf(b, `<text class="label" dy="-15" text-anchor="middle" fill="%s" opacity="%s" font-size="10" font-family="JetBrains Mono, monospace" font-weight="%s">%s</text>`,
			attr(g.Label.Color), num(g.Label.Opacity), weight, attr(g.Label.Text))
	}
	b.WriteString("</g>")
}

// num formats a coordinate with at most two decimals.
func num(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}

func attr(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
