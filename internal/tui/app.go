// Package tui is the full-screen terminal UI: a roulette view that draws
// topics and an editor view that changes them.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/idilsaglam/gacha/internal/draw"
	"github.com/idilsaglam/gacha/internal/model"
	"github.com/idilsaglam/gacha/internal/store"
	"github.com/idilsaglam/gacha/internal/watch"
	"go.uber.org/zap"
)

type view int

const (
	viewRoulette view = iota
	viewManage
)

// snapshotMsg carries a changed list from the watcher.
type snapshotMsg struct{ topics model.TopicList }

// Options wires the TUI. Editor and Reader are separate stores over the
// same slot: the roulette only learns about edits through Watcher.
type Options struct {
	Editor      *store.Store
	Reader      *store.Store
	Engine      *draw.Engine
	Watcher     *watch.Watcher
	Celebration time.Duration
	Logger      *zap.Logger
}

type appModel struct {
	active    view
	roulette  rouletteModel
	manage    manageModel
	snapshots <-chan model.TopicList
	logger    *zap.Logger

	width, height int
}

func newAppModel(ctx context.Context, opts Options) appModel {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return appModel{
		active:   viewRoulette,
		roulette: newRouletteModel(ctx, opts.Reader, opts.Engine, opts.Celebration),
		manage:   newManageModel(ctx, opts.Editor),
		logger:   logger,
		width:    80,
		height:   24,
	}
}

// Run starts the TUI and blocks until the user quits or ctx ends.
func Run(ctx context.Context, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := newAppModel(ctx, opts)
	if opts.Watcher != nil {
		m.snapshots = opts.Watcher.Run(ctx, m.roulette.topics)
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// waitForSnapshot blocks on the watcher channel; the app re-arms it after
// every message so only one wait is ever outstanding.
func waitForSnapshot(ch <-chan model.TopicList) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		l, ok := <-ch
		if !ok {
			return nil
		}
		return snapshotMsg{topics: l}
	}
}

func (m appModel) Init() tea.Cmd {
	return waitForSnapshot(m.snapshots)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		inner := msg.Height - 4 // tabs + border
		m.roulette.width, m.roulette.height = msg.Width, inner
		m.manage.setSize(msg.Width, inner)
		return m, nil

	case snapshotMsg:
		m.logger.Debug("roulette list refreshed", zap.Int("topics", len(msg.topics)))
		m.roulette.setTopics(msg.topics)
		return m, waitForSnapshot(m.snapshots)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if !(m.active == viewManage && m.manage.capturesKeys()) {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "tab", "shift+tab":
				return m.switchView(), nil
			}
		}
	}

	// roulette timers must reach it even while the editor is showing
	switch msg.(type) {
	case drawDoneMsg, celebrationEndMsg, spinner.TickMsg:
		var cmd tea.Cmd
		m.roulette, cmd = m.roulette.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	if m.active == viewRoulette {
		m.roulette, cmd = m.roulette.Update(msg)
	} else {
		m.manage, cmd = m.manage.Update(msg)
	}
	return m, cmd
}

func (m appModel) switchView() appModel {
	if m.active == viewRoulette {
		m.active = viewManage
		m.manage.mount()
	} else {
		m.active = viewRoulette
		m.roulette.mount()
	}
	return m
}

func (m appModel) View() string {
	rouletteTab, manageTab := activeTabStyle, tabStyle
	if m.active == viewManage {
		rouletteTab, manageTab = tabStyle, activeTabStyle
	}
	tabs := lipgloss.JoinHorizontal(lipgloss.Top,
		rouletteTab.Render("🎰 Draw"),
		manageTab.Render("📝 Topics"),
	)

	var content string
	if m.active == viewRoulette {
		content = m.roulette.View()
	} else {
		content = m.manage.View()
	}
	return tabs + "\n" + panelString(content)
}
