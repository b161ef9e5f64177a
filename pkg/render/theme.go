package render

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrUnknownTheme is returned when a theme name matches neither a built-in
// theme nor a readable TOML file.
var ErrUnknownTheme = errors.New("unknown theme")

// Stroke describes how one class of geometry is drawn.
type Stroke struct {
	Color   string  `toml:"color"`
	Width   float64 `toml:"width"`
	Dash    string  `toml:"dash"`
	Linecap string  `toml:"linecap"`
}

// Visible reports whether the stroke draws anything.
func (s Stroke) Visible() bool {
	return s.Width > 0 && s.Color != "" && s.Color != "none"
}

// Theme bundles the visual treatment of every edge class plus the solution
// overlay. Themes load from TOML, so users can ship their own.
type Theme struct {
	Name       string  `toml:"name"`
	Background string  `toml:"background"`
	Outline    Stroke  `toml:"outline"`
	Wall       Stroke  `toml:"wall"`
	Passage    Stroke  `toml:"passage"`
	Path       Stroke  `toml:"path"`
	Marker     Markers `toml:"marker"`
}

// Markers styles the start and end dots of a solution overlay.
type Markers struct {
	Start  string  `toml:"start"`
	End    string  `toml:"end"`
	Radius float64 `toml:"radius"`
}

// Validate checks that the theme can be rendered at all.
func (t Theme) Validate() error {
	if !t.Outline.Visible() && !t.Wall.Visible() && !t.Passage.Visible() {
		return fmt.Errorf("theme %q draws nothing: all strokes invisible", t.Name)
	}
	return nil
}

// Simple is the default theme: black lines on white.
func Simple() Theme {
	return Theme{
		Name:       "simple",
		Background: "#ffffff",
		Outline:    Stroke{Color: "#000000", Width: 0.12, Linecap: "round"},
		Wall:       Stroke{Color: "#000000", Width: 0.08, Linecap: "round"},
		Path:       Stroke{Color: "#d62828", Width: 0.1, Linecap: "round"},
		Marker:     Markers{Start: "#2a9d8f", End: "#d62828", Radius: 0.18},
	}
}

// Blueprint is white linework on a drafting-blue background with dashed
// interior walls.
func Blueprint() Theme {
	return Theme{
		Name:       "blueprint",
		Background: "#16324f",
		Outline:    Stroke{Color: "#e8f1f2", Width: 0.14, Linecap: "square"},
		Wall:       Stroke{Color: "#9db4c0", Width: 0.06, Dash: "0.18 0.1", Linecap: "butt"},
		Path:       Stroke{Color: "#ffd166", Width: 0.1, Linecap: "round"},
		Marker:     Markers{Start: "#ffd166", End: "#ef476f", Radius: 0.18},
	}
}

// builtins maps theme names to constructors.
var builtins = map[string]func() Theme{
	"simple":    Simple,
	"blueprint": Blueprint,
}

// ThemeNames lists the built-in themes in a stable order.
func ThemeNames() []string {
	return []string{"simple", "blueprint"}
}

// LoadThemeFile decodes a TOML theme file.
func LoadThemeFile(path string) (Theme, error) {
	var t Theme
	meta, err := toml.DecodeFile(path, &t)
	if err != nil {
		return Theme{}, fmt.Errorf("theme %s: %w", path, err)
	}
	if undec := meta.Undecoded(); len(undec) > 0 {
		return Theme{}, fmt.Errorf("theme %s: unknown key %q", path, undec[0].String())
	}
	if t.Name == "" {
		t.Name = strings.TrimSuffix(path, ".toml")
	}
	if err := t.Validate(); err != nil {
		return Theme{}, err
	}
	return t, nil
}

// ResolveTheme turns a name into a theme: built-in names first, then TOML
// file paths.
func ResolveTheme(name string) (Theme, error) {
	if ctor, ok := builtins[name]; ok {
		return ctor(), nil
	}
	if _, err := os.Stat(name); err == nil {
		return LoadThemeFile(name)
	}
	return Theme{}, fmt.Errorf("%w: %q (built-in: %s)", ErrUnknownTheme, name, strings.Join(ThemeNames(), ", "))
}
