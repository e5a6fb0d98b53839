package tui

import (
	"math/rand/v2"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var confettiColors = []lipgloss.Color{
	"#FF6B9D", "#4ECDC4", "#45B7D1", "#F9CA24", "#F0932B",
	"#EB4D4B", "#6C5CE7", "#A29BFE", "#FD79A8", "#FDCB6E",
}

var confettiGlyphs = []rune{'✦', '✧', '•', '*', '+', '·', '❖'}

type confettiPiece struct {
	glyph rune
	color lipgloss.Color
}

// confetti is a fixed grid of pieces; blanks are zero glyphs.
type confetti struct {
	rows [][]confettiPiece
}

func newConfetti(width, rows int) confetti {
	if width < 1 {
		width = 1
	}
	c := confetti{rows: make([][]confettiPiece, rows)}
	for r := range c.rows {
		row := make([]confettiPiece, width)
		for i := range row {
			if rand.IntN(4) != 0 {
				continue
			}
			row[i] = confettiPiece{
				glyph: confettiGlyphs[rand.IntN(len(confettiGlyphs))],
				color: confettiColors[rand.IntN(len(confettiColors))],
			}
		}
		c.rows[r] = row
	}
	return c
}

func (c confetti) View() string {
	lines := make([]string, 0, len(c.rows))
	for _, row := range c.rows {
		var b strings.Builder
		for _, p := range row {
			if p.glyph == 0 {
				b.WriteByte(' ')
				continue
			}
			b.WriteString(lipgloss.NewStyle().Foreground(p.color).Render(string(p.glyph)))
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}
