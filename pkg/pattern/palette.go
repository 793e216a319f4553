package pattern

// Palette holds the three colours a pattern wall is drawn with.
type Palette struct {
	Light   string `toml:"light" json:"light"`
	Lighter string `toml:"lighter" json:"lighter"`
	Dark    string `toml:"dark" json:"dark"`
}

// DefaultPalette is the stock grey palette.
var DefaultPalette = Palette{
	Light:   "#bbb",
	Lighter: "#999",
	Dark:    "#555",
}

// Colors returns the stroke and background colours for a polarity:
// light on dark when inverse, dark on light otherwise.
func (p Palette) Colors(inverse bool) (fg, bg string) {
	if inverse {
		return p.Light, p.Dark
	}
	return p.Dark, p.Light
}

// Page returns the colour behind the tiles.
func (p Palette) Page() string {
	return p.Lighter
}
