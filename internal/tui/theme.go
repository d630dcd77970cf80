package tui

import (
	_ "embed"
	"log"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

//go:embed themes.yaml
var themesRawYAML []byte

// Palette is one screen theme, in the console's four-color spirit.
type Palette struct {
	ID        string `yaml:"id"`
	Screen    string `yaml:"screen"`
	Ink       string `yaml:"ink"`
	Accent    string `yaml:"accent"`
	Highlight string `yaml:"highlight"`
}

type themeCatalog struct {
	Themes []Palette `yaml:"themes"`
}

// DefaultTheme is applied when no theme has been persisted yet.
const DefaultTheme = "clear"

func loadPalettes() []Palette {
	var catalog themeCatalog
	if err := yaml.Unmarshal(themesRawYAML, &catalog); err != nil {
		log.Printf("parse embedded themes failed: %v", err)
	}
	if len(catalog.Themes) == 0 {
		catalog.Themes = []Palette{{
			ID: DefaultTheme, Screen: "#9bbc0f", Ink: "#0f380f",
			Accent: "#306230", Highlight: "#8bac0f",
		}}
	}
	return catalog.Themes
}

// NextTheme cycles to the theme after current, wrapping around.
func NextTheme(palettes []Palette, current string) string {
	for i, p := range palettes {
		if p.ID == current {
			return palettes[(i+1)%len(palettes)].ID
		}
	}
	return palettes[0].ID
}

func paletteByID(palettes []Palette, id string) Palette {
	for _, p := range palettes {
		if p.ID == id {
			return p
		}
	}
	return palettes[0]
}

// Styles are the lipgloss styles derived from the active palette.
type Styles struct {
	Title    lipgloss.Style
	Text     lipgloss.Style
	Faint    lipgloss.Style
	Selected lipgloss.Style
	Panel    lipgloss.Style
	Alert    lipgloss.Style
}

func newStyles(p Palette) Styles {
	ink := lipgloss.Color(p.Ink)
	screen := lipgloss.Color(p.Screen)
	accent := lipgloss.Color(p.Accent)
	highlight := lipgloss.Color(p.Highlight)
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(ink).Background(screen).Padding(0, 1),
		Text:     lipgloss.NewStyle().Foreground(ink),
		Faint:    lipgloss.NewStyle().Foreground(accent),
		Selected: lipgloss.NewStyle().Foreground(highlight).Background(accent).Bold(true),
		Panel:    lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(ink).Padding(0, 1),
		Alert:    lipgloss.NewStyle().Foreground(ink).Bold(true).Blink(false),
	}
}
