package scene

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSVG_LayerOrder(t *testing.T) {
	s := New(800, 600, DefaultPalette())
	s.Add(FrontStrands, Path{Key: "front", D: "M0,0L1,1", Stroke: "#fff", Width: 2, Opacity: 1})
	s.Add(BackStrands, Path{Key: "back", D: "M0,0L1,1", Stroke: "#fff", Width: 2, Opacity: 0.2})
	s.Add(Nodes, Glyph{Key: "n1", Scale: 1, Opacity: 1, Core: Circle{R: 2, Fill: "#fff", Opacity: 1}})

	svg := s.SVG()
	var last int
	for _, l := range Layers {
		idx := strings.Index(svg, `<g class="layer-`+l.String()+`">`)
		require.Greater(t, idx, last, "layer %s out of order", l)
		last = idx
	}
	assert.Less(t, strings.Index(svg, `data-key="back"`), strings.Index(svg, `data-key="n1"`))
	assert.Less(t, strings.Index(svg, `data-key="n1"`), strings.Index(svg, `data-key="front"`))
	assert.Less(t, strings.Index(svg, "<defs>"), strings.Index(svg, `class="helix-scene"`))
}

func TestSVG_Resources(t *testing.T) {
	s := New(400, 300, DefaultPalette())
	svg := s.SVG()

	assert.Contains(t, svg, `<filter id="glow"`)
	for _, id := range []string{RampWarm, RampCool, RampDim, RampCrystal} {
		assert.Contains(t, svg, `<radialGradient id="`+id+`"`)
		assert.Equal(t, "url(#"+id+")", s.Fill(id))
	}
	assert.Equal(t, "none", s.Fill("ramp-missing"))
	assert.Equal(t, "url(#glow)", s.Filter(GlowFilter))
	assert.Empty(t, s.Filter("bloom"))
}

func TestSetPalette(t *testing.T) {
	s := New(10, 10, Palette{Warm: "#FF0000"})
	assert.Equal(t, "#FF0000", s.Palette.Warm)
	assert.Equal(t, DefaultPalette().Cool, s.Palette.Cool)
	assert.Contains(t, s.SVG(), `stop-color="#FF0000"`)
}

func TestClear(t *testing.T) {
	s := New(10, 10, DefaultPalette())
	s.Add(Intervals, Path{D: "M0,0"})
	s.Add(Layer(42), Path{D: "M0,0"})
	s.Add(Nodes, nil)
	require.Len(t, s.Elements(Intervals), 1)
	assert.Empty(t, s.Elements(Nodes))
	assert.Nil(t, s.Elements(Layer(-1)))

	s.Clear()
	assert.Empty(t, s.Elements(Intervals))
}

func TestGlyph_Label(t *testing.T) {
	s := New(10, 10, DefaultPalette())
	s.Add(Nodes, Glyph{
		Key: "q1", X: 12.346, Y: 6, Scale: 1.2, Opacity: 0.5, HitRadius: 20, Pointer: true,
		Halo:  Circle{R: 8, Fill: s.Fill(RampWarm), Stroke: "#FFFFFF", StrokeWidth: 1.5, Opacity: 0.9},
		Core:  Circle{R: 2.5, Fill: "#FFF", Opacity: 1},
		Label: Label{Text: "a < b & c", Color: "#FFF", Opacity: 1, Bold: true},
	})
	s.Add(Nodes, Glyph{Key: "hidden", Scale: 1, Opacity: 1, Label: Label{Text: "nope", Opacity: 0}})

	svg := s.SVG()
	assert.Contains(t, svg, `transform="translate(12.35,6) scale(1.2)"`)
	assert.Contains(t, svg, `cursor:pointer`)
	assert.Contains(t, svg, "a &lt; b &amp; c")
	assert.Contains(t, svg, `font-weight="bold"`)
	assert.NotContains(t, svg, "nope")
}

func TestPath_Attributes(t *testing.T) {
	s := New(10, 10, DefaultPalette())
	s.Add(CrossLinks, Path{D: "M0,0Q1,1 2,2", Stroke: "#FF2E5B", Width: 1.5, Opacity: 0.6, Dash: "1 4", Filter: s.Filter(GlowFilter)})

	var buf bytes.Buffer
	require.NoError(t, s.WriteSVG(&buf))
	out := buf.String()
	assert.Contains(t, out, `stroke-dasharray="1 4"`)
	assert.Contains(t, out, `filter="url(#glow)"`)
	assert.Contains(t, out, `opacity="0.6"`)
}

func TestNum(t *testing.T) {
	assert.Equal(t, "100", num(100))
	assert.Equal(t, "10.5", num(10.5))
	assert.Equal(t, "0", num(-0.001))
	assert.Equal(t, "-3.14", num(-3.14159))
	assert.Equal(t, "0", num(0))
}
