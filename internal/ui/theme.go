package ui

import "strings"

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Name                                   string
	Title, Muted, Accent, Success, Error   string
	Highlight                              string
	CornerTL, CornerTR, CornerBL, CornerBR string
	H, V                                   string
	SymTopic, SymDraw, SymResult           string
}

var current = themeFor("classic")

// SetTheme switches the theme; unknown names fall back to classic.
func SetTheme(name string) {
	current = themeFor(name)
	if current.Name == "mono" {
		disableColor = true
	}
}

func themeFor(name string) Theme {
	switch strings.ToLower(name) {
	case "neon":
		return Theme{
			Name:  "neon",
			Title: "\033[95m", // bright magenta
			Muted: fgGray, Accent: "\033[96m",
			Success: fgGreen, Error: fgRed, Highlight: "\033[93m",
			CornerTL: "╭", CornerTR: "╮", CornerBL: "╰", CornerBR: "╯",
			H: "─", V: "│",
			SymTopic: "◆", SymDraw: "🎲", SymResult: "✨",
		}
	case "mono":
		return Theme{
			Name:     "mono",
			CornerTL: "+", CornerTR: "+", CornerBL: "+", CornerBR: "+",
			H: "-", V: "|",
			SymTopic: "-", SymDraw: "*", SymResult: "=>",
		}
	default:
		return Theme{
			Name:  "classic",
			Title: bold, Muted: fgGray, Accent: fgBlue,
			Success: fgGreen, Error: fgRed, Highlight: fgYellow,
			CornerTL: "┌", CornerTR: "┐", CornerBL: "└", CornerBR: "┘",
			H: "─", V: "│",
			SymTopic: "•", SymDraw: "🎰", SymResult: "✨",
		}
	}
}

// Current exposes what renderers need.
func Current() Theme { return current }

// Dim is the faint style used for index columns.
func Dim() string { return dim }

// Magenta is used for the result ordinal.
func Magenta() string { return fgMagenta }

// Pending is the color for in-progress states.
func Pending() string { return fgYellow }
