package console

import (
	"fmt"
	"strings"
)

// ColorScheme defines the colors the console paints with: the prompt prefix
// (including continuation prompts) and the editable input text. Masked input
// renders in the input color.
type ColorScheme struct {
	Name   string `json:"name"`
	Prefix Color  `json:"prefix"`
	Input  Color  `json:"input"`
}

// Color represents an RGB color with optional bold formatting.
type Color struct {
	R    uint8 `json:"r"`
	G    uint8 `json:"g"`
	B    uint8 `json:"b"`
	Bold bool  `json:"bold"`
}

// ThemeDefault is the default color scheme with green prefix and white text
var ThemeDefault = &ColorScheme{
	Name:   "default",
	Prefix: Color{R: 0, G: 255, B: 0, Bold: true},
	Input:  Color{R: 255, G: 255, B: 255, Bold: true},
}

// ThemeDark is a dark theme with light blue prefix and off-white text
var ThemeDark = &ColorScheme{
	Name:   "Dark",
	Prefix: Color{R: 102, G: 217, B: 239, Bold: true},
	Input:  Color{R: 248, G: 248, B: 242, Bold: false},
}

// ThemeLight is a light theme with blue prefix and dark gray text
var ThemeLight = &ColorScheme{
	Name:   "Light",
	Prefix: Color{R: 0, G: 119, B: 187, Bold: true},
	Input:  Color{R: 36, G: 41, B: 46, Bold: false},
}

// ThemeSolarizedDark is the Solarized Dark color scheme
var ThemeSolarizedDark = &ColorScheme{
	Name:   "Solarized Dark",
	Prefix: Color{R: 133, G: 153, B: 0, Bold: true},
	Input:  Color{R: 147, G: 161, B: 161, Bold: false},
}

// ThemeAccessible is a colorblind-safe theme with high contrast
var ThemeAccessible = &ColorScheme{
	Name:   "Accessible",
	Prefix: Color{R: 0, G: 114, B: 178, Bold: true},
	Input:  Color{R: 255, G: 255, B: 255, Bold: false},
}

// ThemeDracula is the Dracula color scheme
var ThemeDracula = &ColorScheme{
	Name:   "Dracula",
	Prefix: Color{R: 255, G: 121, B: 198, Bold: true},
	Input:  Color{R: 248, G: 248, B: 242, Bold: false},
}

// ThemeMonokai is the Monokai color scheme
var ThemeMonokai = &ColorScheme{
	Name:   "Monokai",
	Prefix: Color{R: 249, G: 38, B: 114, Bold: true},
	Input:  Color{R: 248, G: 248, B: 242, Bold: false},
}

// ToANSI converts a Color to an ANSI escape sequence.
func (c Color) ToANSI() string {
	var codes []string

	// Bold formatting comes first
	if c.Bold {
		codes = append(codes, "1")
	}

	// RGB color (true color support)
	codes = append(codes, fmt.Sprintf("38;2;%d;%d;%d", c.R, c.G, c.B))

	return fmt.Sprintf("\x1b[%sm", strings.Join(codes, ";"))
}

// Reset returns the ANSI reset sequence.
func Reset() string {
	return "\x1b[0m"
}
