package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/idilsaglam/gacha/internal/errors"
	"github.com/idilsaglam/gacha/internal/model"
	"github.com/idilsaglam/gacha/internal/store"
)

// topicItem adapts a topic to bubbles/list.Item
type topicItem struct {
	Index int
	Text  string
}

func (i topicItem) Title() string       { return i.Text }
func (i topicItem) Description() string { return "" }
func (i topicItem) FilterValue() string { return i.Text }

// Custom delegate to control how items render (single line)
type topicDelegate struct{}

func (d topicDelegate) Height() int                               { return 1 }
func (d topicDelegate) Spacing() int                              { return 0 }
func (d topicDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d topicDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, _ := item.(topicItem)
	num := mutedStyle.Render(fmt.Sprintf("%3d.", it.Index+1))
	prefix := "  "
	text := it.Text
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
		text = accentStyle.Render(text)
	}
	fmt.Fprintln(w, prefix+num+" "+text)
}

// manageModel is the list editor: inline add / edit, delete with confirmation.
// Every change goes straight through the store.
type manageModel struct {
	ctx   context.Context
	store *store.Store
	list  list.Model
	ti    textinput.Model

	// Inline add / edit share ti
	adding    bool
	editing   bool
	editIndex int
	inputErr  string

	// Delete confirmation
	confirming   bool
	confirmIndex int

	status    string
	statusErr bool

	width, height int
}

var (
	addBind    = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	editBind   = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	deleteBind = key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "delete"))
	switchBind = key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "roulette"))
)

func newManageModel(ctx context.Context, s *store.Store) manageModel {
	l := list.New(nil, topicDelegate{}, 80, 20)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	// Filtering would make the visible index differ from the stored one.
	l.SetFilteringEnabled(false)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.SetStatusBarItemName("topic", "topics")
	l.AdditionalShortHelpKeys = func() []key.Binding { return []key.Binding{addBind, editBind, deleteBind, switchBind} }
	l.AdditionalFullHelpKeys = func() []key.Binding { return []key.Binding{addBind, editBind, deleteBind, switchBind} }
	// q is handled by the app
	l.KeyMap.Quit.SetEnabled(false)

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "New topic..."
	ti.CharLimit = 200

	m := manageModel{ctx: ctx, store: s, list: l, ti: ti, width: 80, height: 24}
	m.setTopics(s.Load(ctx))
	return m
}

// mount reloads from the store, as on entering the view.
func (m *manageModel) mount() {
	m.setTopics(m.store.Load(m.ctx))
	m.status, m.statusErr = "", false
}

func (m *manageModel) setTopics(l model.TopicList) {
	items := make([]list.Item, 0, len(l))
	for i, t := range l {
		items = append(items, topicItem{Index: i, Text: t})
	}
	sel := m.list.Index()
	m.list.SetItems(items)
	m.list.Title = fmt.Sprintf("%s  %s", titleStyle.Render("Topics"), accentStyle.Render(fmt.Sprintf("(%d)", len(l))))
	if sel >= len(items) {
		sel = len(items) - 1
	}
	if sel >= 0 {
		m.list.Select(sel)
	}
}

func (m *manageModel) setSize(w, h int) {
	m.width, m.height = w, h
	listHeight := h - 4
	if m.inputActive() || m.confirming {
		listHeight = h - 7
	}
	if listHeight < 3 {
		listHeight = 3
	}
	m.list.SetSize(max(w-4, 10), listHeight)
}

func (m manageModel) inputActive() bool { return m.adding || m.editing }

// capturesKeys reports whether the view needs every key (typing or confirming).
func (m manageModel) capturesKeys() bool { return m.inputActive() || m.confirming }

func (m manageModel) selected() (topicItem, bool) {
	i := m.list.Index()
	items := m.list.Items()
	if i < 0 || i >= len(items) {
		return topicItem{}, false
	}
	it, ok := items[i].(topicItem)
	return it, ok
}

// apply records the outcome of a store call. ok is false when the input
// should stay open (validation failure).
func (m *manageModel) apply(l model.TopicList, err error, verb string) (ok bool) {
	switch {
	case err == nil:
		m.setTopics(l)
		m.status, m.statusErr = verb, false
		if p := m.store.LastExport(); p != "" {
			m.status += " · exported to " + p
		}
		return true
	case errors.IsCode(err, errors.ErrValidation):
		m.inputErr = errors.Short(err)
		return false
	case errors.IsCode(err, errors.ErrPersist):
		// the in-memory change stands, but it may not be durable
		m.setTopics(l)
		m.status, m.statusErr = errors.Short(err), true
		return true
	default:
		m.setTopics(l)
		m.status, m.statusErr = errors.Short(err), true
		return true
	}
}

func (m *manageModel) closeInput() {
	m.adding, m.editing = false, false
	m.inputErr = ""
	m.ti.SetValue("")
	m.ti.Blur()
	m.setSize(m.width, m.height)
}

func (m manageModel) Update(msg tea.Msg) (manageModel, tea.Cmd) {
	// add / edit mode
	if m.inputActive() {
		if x, ok := msg.(tea.KeyMsg); ok {
			switch x.String() {
			case "enter":
				var (
					l   model.TopicList
					err error
				)
				if m.adding {
					l, err = m.store.Append(m.ctx, m.ti.Value())
				} else {
					l, err = m.store.UpdateAt(m.ctx, m.editIndex, m.ti.Value())
				}
				verb := "added"
				if m.editing {
					verb = "updated"
				}
				if m.apply(l, err, verb) {
					if m.adding && err == nil {
						m.list.Select(len(l) - 1)
					}
					m.closeInput()
				}
				return m, nil
			case "esc":
				m.closeInput()
				return m, nil
			}
		}
		var cmd tea.Cmd
		m.ti, cmd = m.ti.Update(msg)
		return m, cmd
	}

	// delete confirmation
	if m.confirming {
		if x, ok := msg.(tea.KeyMsg); ok {
			switch x.String() {
			case "y", "Y":
				l, err := m.store.DeleteAt(m.ctx, m.confirmIndex)
				m.apply(l, err, "deleted")
				m.confirming = false
				m.setSize(m.width, m.height)
			case "n", "N", "esc", "q":
				m.confirming = false
				m.status, m.statusErr = "delete cancelled", false
				m.setSize(m.width, m.height)
			}
		}
		return m, nil
	}

	if x, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(x, addBind):
			m.adding = true
			m.inputErr = ""
			m.ti.SetValue("")
			m.ti.Placeholder = "New topic..."
			m.setSize(m.width, m.height)
			cmd := m.ti.Focus()
			return m, cmd
		case key.Matches(x, editBind):
			if it, ok := m.selected(); ok {
				m.editing = true
				m.editIndex = it.Index
				m.inputErr = ""
				m.ti.SetValue(it.Text)
				m.ti.CursorEnd()
				m.ti.Placeholder = "Edit topic..."
				m.setSize(m.width, m.height)
				cmd := m.ti.Focus()
				return m, cmd
			}
			return m, nil
		case key.Matches(x, deleteBind):
			if it, ok := m.selected(); ok {
				m.confirming = true
				m.confirmIndex = it.Index
				m.setSize(m.width, m.height)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m manageModel) View() string {
	var b strings.Builder
	if len(m.list.Items()) == 0 && !m.inputActive() {
		b.WriteString(titleStyle.Render("Topics") + "\n\n")
		b.WriteString(mutedStyle.Render("No topics yet. Press a to add one.") + "\n")
	} else {
		b.WriteString(m.list.View())
	}

	if m.inputActive() {
		title := "Add topic"
		if m.editing {
			title = fmt.Sprintf("Edit topic #%d", m.editIndex+1)
		}
		if m.inputErr != "" {
			title += "  " + errorStyle.Render(m.inputErr)
		}
		b.WriteString("\n" + inputBox(title+"\n"+m.ti.View()))
	}

	if m.confirming {
		text := ""
		if items := m.list.Items(); m.confirmIndex < len(items) {
			if it, ok := items[m.confirmIndex].(topicItem); ok {
				text = it.Text
			}
		}
		b.WriteString("\n" + inputBox(errorStyle.Render("Delete this topic?")+"\n"+
			text+"\n"+helpStyle.Render("y delete · n cancel")))
	}

	if m.status != "" {
		style := successStyle
		if m.statusErr {
			style = errorStyle
		}
		b.WriteString("\n" + style.Render(m.status))
	}
	return b.String()
}
