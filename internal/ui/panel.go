package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/idilsaglam/gacha/internal/model"
)

// Panel draws a framed box using the current theme.
func Panel(w io.Writer, lines []string) {
	t := Current()
	maxw := 0
	for _, ln := range lines {
		if vis := lipgloss.Width(ln); vis > maxw {
			maxw = vis
		}
	}
	pad := func(s string) string {
		if vis := lipgloss.Width(s); vis < maxw {
			s += strings.Repeat(" ", maxw-vis)
		}
		return s
	}
	fmt.Fprintln(w, t.CornerTL+strings.Repeat(t.H, maxw+2)+t.CornerTR)
	for _, ln := range lines {
		fmt.Fprintln(w, t.V+" "+pad(ln)+" "+t.V)
	}
	fmt.Fprintln(w, t.CornerBL+strings.Repeat(t.H, maxw+2)+t.CornerBR)
}

// TopicLines renders a numbered topic list.
func TopicLines(list model.TopicList, maxWidth int) []string {
	if len(list) == 0 {
		return []string{C(Current().Muted, "no topics yet, add one with `gacha add`")}
	}
	out := make([]string, 0, len(list))
	width := len(fmt.Sprint(len(list)))
	for i, text := range list {
		idx := fmt.Sprintf("%*d.", width, i+1)
		out = append(out, fmt.Sprintf("%s %s %s",
			C(Dim(), idx), C(Current().Accent, Current().SymTopic), Truncate(text, maxWidth)))
	}
	return out
}

// ResultLines renders a draw result.
func ResultLines(r model.DrawResult) []string {
	t := Current()
	return []string{
		C(t.Title, t.SymResult+" Result "+t.SymResult),
		"",
		C(Magenta(), fmt.Sprintf("#%d", r.Ordinal)),
		C(t.Highlight, r.Text),
	}
}

// Truncate shortens s to max display cells, adding "...". max <= 0 disables it.
func Truncate(s string, max int) string {
	if max <= 0 || lipgloss.Width(s) <= max {
		return s
	}
	if max <= 3 {
		return strings.Repeat(".", max)
	}
	rs := []rune(s)
	for len(rs) > 0 && lipgloss.Width(string(rs))+3 > max {
		rs = rs[:len(rs)-1]
	}
	return string(rs) + "..."
}
