package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/idilsaglam/gacha/internal/draw"
	"github.com/idilsaglam/gacha/internal/model"
	"github.com/idilsaglam/gacha/internal/store"
)

// drawDoneMsg reveals a result once the draw delay has passed.
type drawDoneMsg struct{ result model.DrawResult }

// celebrationEndMsg stops the confetti of draw number seq.
type celebrationEndMsg struct{ seq int }

// rouletteModel reads the list and draws from it. It never writes.
type rouletteModel struct {
	ctx    context.Context
	store  *store.Store
	engine *draw.Engine

	topics      model.TopicList
	drawing     bool
	result      *model.DrawResult
	celebrating bool
	celebration time.Duration
	seq         int
	confetti    confetti

	spinner       spinner.Model
	width, height int
}

func newRouletteModel(ctx context.Context, s *store.Store, e *draw.Engine, celebration time.Duration) rouletteModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = pendingStyle
	return rouletteModel{
		ctx:         ctx,
		store:       s,
		engine:      e,
		topics:      s.Load(ctx),
		celebration: celebration,
		spinner:     sp,
		width:       80,
		height:      24,
	}
}

// mount reloads from the store, as on entering the view.
func (m *rouletteModel) mount() {
	m.topics = m.store.Load(m.ctx)
}

// setTopics replaces the local copy with a snapshot from the watcher.
// A result on screen keeps the text it was drawn with.
func (m *rouletteModel) setTopics(l model.TopicList) {
	m.topics = l.Clone()
}

func (m rouletteModel) canDraw() bool {
	return !m.drawing && len(m.topics) > 0
}

func (m rouletteModel) startDraw() (rouletteModel, tea.Cmd) {
	res, ok := m.engine.Begin(m.topics)
	if !ok {
		return m, nil
	}
	m.drawing = true
	m.result = nil
	m.celebrating = false
	reveal := tea.Tick(m.engine.Delay(), func(time.Time) tea.Msg {
		return drawDoneMsg{result: res}
	})
	return m, tea.Batch(m.spinner.Tick, reveal)
}

func (m rouletteModel) Update(msg tea.Msg) (rouletteModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case " ", "space":
			return m.startDraw()
		case "enter":
			if m.result != nil {
				m.result = nil
				m.celebrating = false
				return m, nil
			}
			return m.startDraw()
		case "esc", "backspace":
			m.result = nil
			m.celebrating = false
			return m, nil
		}

	case drawDoneMsg:
		m.engine.Complete()
		m.drawing = false
		res := msg.result
		m.result = &res
		m.seq++
		if m.celebration <= 0 {
			return m, nil
		}
		m.celebrating = true
		m.confetti = newConfetti(m.width-4, 3)
		seq := m.seq
		return m, tea.Tick(m.celebration, func(time.Time) tea.Msg {
			return celebrationEndMsg{seq: seq}
		})

	case celebrationEndMsg:
		if msg.seq == m.seq {
			m.celebrating = false
		}
		return m, nil

	case spinner.TickMsg:
		if !m.drawing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m rouletteModel) View() string {
	width := max(m.width-4, 20)
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString(center.Render(titleStyle.Render("🎰 Topic Gacha 🎰")) + "\n")
	b.WriteString(center.Render(mutedStyle.Render(fmt.Sprintf("%d topics in the machine", len(m.topics)))) + "\n\n")

	var button string
	switch {
	case m.drawing:
		button = buttonBusyStyle.Render(m.spinner.View() + " Drawing...")
	case len(m.topics) == 0:
		button = buttonOffStyle.Render("🎲 Draw!")
	default:
		button = buttonStyle.Render("🎲 Draw!")
	}
	b.WriteString(center.Render(button) + "\n\n")

	if m.celebrating {
		b.WriteString(center.Render(m.confetti.View()) + "\n")
	}

	if m.result != nil {
		body := titleStyle.Render("✨ Result ✨") + "\n\n" +
			resultNumberStyle.Render(fmt.Sprintf("#%d", m.result.Ordinal)) + "\n" +
			resultTextStyle.Render(m.result.Text)
		box := resultBoxStyle.MaxWidth(width).Render(body)
		b.WriteString(center.Render(box) + "\n")
		b.WriteString(center.Render(helpStyle.Render("enter/esc dismiss")) + "\n")
	}

	if len(m.topics) == 0 {
		b.WriteString(center.Render(mutedStyle.Render("No topics yet. Press tab and add some!")) + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("space draw · tab manage topics · q quit"))
	return b.String()
}
