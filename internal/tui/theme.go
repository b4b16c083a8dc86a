package tui

import "github.com/charmbracelet/lipgloss"

// Theme is the editor color palette.
type Theme struct {
	Base     lipgloss.Color // pane background
	Surface0 lipgloss.Color // focused background
	Surface1 lipgloss.Color // borders
	Overlay  lipgloss.Color // secondary text
	Text     lipgloss.Color
	Primary  lipgloss.Color // focused borders, playhead
	Accent   lipgloss.Color // segments
	Marker   lipgloss.Color // timestamps
	Locked   lipgloss.Color
	Red      lipgloss.Color
	Green    lipgloss.Color
}

// DarkTheme is the default palette.
func DarkTheme() Theme {
	return Theme{
		Base:     lipgloss.Color("#1e1e2e"),
		Surface0: lipgloss.Color("#313244"),
		Surface1: lipgloss.Color("#45475a"),
		Overlay:  lipgloss.Color("#6c7086"),
		Text:     lipgloss.Color("#cdd6f4"),
		Primary:  lipgloss.Color("#89b4fa"),
		Accent:   lipgloss.Color("#a6e3a1"),
		Marker:   lipgloss.Color("#f9e2af"),
		Locked:   lipgloss.Color("#585b70"),
		Red:      lipgloss.Color("#f38ba8"),
		Green:    lipgloss.Color("#a6e3a1"),
	}
}

// LightTheme is the light palette.
func LightTheme() Theme {
	return Theme{
		Base:     lipgloss.Color("#eff1f5"),
		Surface0: lipgloss.Color("#ccd0da"),
		Surface1: lipgloss.Color("#bcc0cc"),
		Overlay:  lipgloss.Color("#8c8fa1"),
		Text:     lipgloss.Color("#4c4f69"),
		Primary:  lipgloss.Color("#1e66f5"),
		Accent:   lipgloss.Color("#40a02b"),
		Marker:   lipgloss.Color("#df8e1d"),
		Locked:   lipgloss.Color("#9ca0b0"),
		Red:      lipgloss.Color("#d20f39"),
		Green:    lipgloss.Color("#40a02b"),
	}
}

// ThemeByName resolves a config theme name.
func ThemeByName(name string) Theme {
	if name == "light" {
		return LightTheme()
	}
	return DarkTheme()
}

// segmentPalette colors segments by their label group so related marks read
// as one family across tracks.
var segmentPalette = []lipgloss.Color{
	lipgloss.Color("#a6e3a1"),
	lipgloss.Color("#89b4fa"),
	lipgloss.Color("#f9e2af"),
	lipgloss.Color("#cba6f7"),
	lipgloss.Color("#fab387"),
	lipgloss.Color("#94e2d5"),
}

func labelColor(label string) lipgloss.Color {
	var h uint32
	for _, r := range label {
		h = h*31 + uint32(r)
	}
	return segmentPalette[int(h)%len(segmentPalette)]
}
