package scene

// Names of the shared resources layers may reference.
const (
	GlowFilter  = "glow"
	RampWarm    = "ramp-warm"
	RampCool    = "ramp-cool"
	RampDim     = "ramp-dim"
	RampCrystal = "ramp-crystal"
)

// Palette is every color the scene draws with. Re-skinning the helix
// means swapping the palette.
type Palette struct {
	Background     string `toml:"background"`
	StrandA        string `toml:"strand_a"`
	StrandB        string `toml:"strand_b"`
	Warm           string `toml:"warm"`
	Cool           string `toml:"cool"`
	CoolEdge       string `toml:"cool_edge"`
	DimCore        string `toml:"dim_core"`
	DimEdge        string `toml:"dim_edge"`
	Crystal        string `toml:"crystal"`
	Ghost          string `toml:"ghost"`
	RungBright     string `toml:"rung_bright"`
	RungDim        string `toml:"rung_dim"`
	LinkStructural string `toml:"link_structural"`
	LinkSynthetic  string `toml:"link_synthetic"`
	CoreA          string `toml:"core_a"`
	CoreB          string `toml:"core_b"`
	Label          string `toml:"label"`
}

// DefaultPalette is the cosmic gold/purple theme.
func DefaultPalette() Palette {
	return Palette{
		Background:     "#05050A",
		StrandA:        "#FFE580",
		StrandB:        "#7B2EFF",
		Warm:           "#FFE580",
		Cool:           "#D8B4FE",
		CoolEdge:       "#7B2EFF",
		DimCore:        "#888899",
		DimEdge:        "#222233",
		Crystal:        "#FFD040",
		Ghost:          "#333333",
		RungBright:     "#FFE580",
		RungDim:        "#555566",
		LinkStructural: "#AACCFF",
		LinkSynthetic:  "#FF2E5B",
		CoreA:          "#FFFFFF",
		CoreB:          "#E0E0FF",
		Label:          "#FFFFFF",
	}
}

// Merge fills empty fields of p from d.
func (p Palette) Merge(d Palette) Palette {
	pick := func(v, def string) string {
		if v == "" {
			return def
		}
		return v
	}
	return Palette{
		Background:     pick(p.Background, d.Background),
		StrandA:        pick(p.StrandA, d.StrandA),
		StrandB:        pick(p.StrandB, d.StrandB),
		Warm:           pick(p.Warm, d.Warm),
		Cool:           pick(p.Cool, d.Cool),
		CoolEdge:       pick(p.CoolEdge, d.CoolEdge),
		DimCore:        pick(p.DimCore, d.DimCore),
		DimEdge:        pick(p.DimEdge, d.DimEdge),
		Crystal:        pick(p.Crystal, d.Crystal),
		Ghost:          pick(p.Ghost, d.Ghost),
		RungBright:     pick(p.RungBright, d.RungBright),
		RungDim:        pick(p.RungDim, d.RungDim),
		LinkStructural: pick(p.LinkStructural, d.LinkStructural),
		LinkSynthetic:  pick(p.LinkSynthetic, d.LinkSynthetic),
		CoreA:          pick(p.CoreA, d.CoreA),
		CoreB:          pick(p.CoreB, d.CoreB),
		Label:          pick(p.Label, d.Label),
	}
}

// GradientStop is one stop of a radial ramp.
type GradientStop struct {
	Offset  float64
	Color   string
	Opacity float64
}

// Ramp is a named radial gradient.
type Ramp struct {
	ID    string
	Stops []GradientStop
}

// orb is a white-hot center fading out through color to transparent edge.
func orb(id, color, edge string) Ramp {
	return Ramp{ID: id, Stops: []GradientStop{
		{Offset: 0, Color: "#FFFFFF", Opacity: 1},
		{Offset: 0.4, Color: color, Opacity: 1},
		{Offset: 0.7, Color: edge, Opacity: 0.5},
		{Offset: 1, Color: edge, Opacity: 0},
	}}
}

// Ramps builds the radial ramps for the palette.
func (p Palette) Ramps() []Ramp {
	return []Ramp{
		orb(RampWarm, p.Warm, p.Warm),
		orb(RampCool, p.Cool, p.CoolEdge),
		orb(RampCrystal, p.Crystal, p.Warm),
		{ID: RampDim, Stops: []GradientStop{
			{Offset: 0, Color: p.DimCore, Opacity: 1},
			{Offset: 0.5, Color: p.DimEdge, Opacity: 1},
			{Offset: 1, Color: "#000000", Opacity: 0},
		}},
	}
}
