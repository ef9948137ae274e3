// Package tui is an interactive list over the remote todo service. Every
// change goes through the action dispatcher and the list is reloaded from
// the service afterwards; nothing is kept locally.
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

	"github.com/idilsaglam/todo/internal/action"
	"github.com/idilsaglam/todo/internal/ident"
	"github.com/idilsaglam/todo/internal/model"
)

// Actions is the part of the dispatcher the list drives.
type Actions interface {
	Load(ctx context.Context) action.Result
	Dispatch(ctx context.Context, name string, fields action.Fields) action.Result
}

// Run shows the list until the user quits or ctx is done.
func Run(ctx context.Context, actions Actions) error {
	p := tea.NewProgram(newModel(ctx, actions), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// listItem adapts model.Item to bubbles/list.Item
type listItem struct {
	item model.Item
}

func (i listItem) Title() string       { return i.item.Title }
func (i listItem) Description() string { return i.item.Description }
func (i listItem) FilterValue() string { return i.item.Title }

type itemDelegate struct{}

func (d itemDelegate) Height() int                         { return 1 }
func (d itemDelegate) Spacing() int                        { return 0 }
func (d itemDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, _ := item.(listItem)
	text := it.item.Title
	if it.item.Done() {
		text = doneStyle.Render(text)
	}
	line := fmt.Sprintf("%s %s %s", mutedStyle.Render(fmt.Sprintf("%4d", it.item.ID)), statusBox(it.item.Status), text)
	if it.item.Description != "" {
		line += mutedStyle.Render(" - " + it.item.Description)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+line)
}

type loadedMsg struct{ res action.Result }

type appliedMsg struct {
	verb string
	res  action.Result
}

type modelTUI struct {
	ctx     context.Context
	actions Actions

	list  list.Model
	items []model.Item

	adding bool
	ti     textinput.Model

	notice string
	err    string
	busy   bool
	width  int
	height int
}

var (
	addBind     = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	toggleBind  = key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "done/open"))
	progBind    = key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "in progress"))
	deleteBind  = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	refreshBind = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh"))
)

func newModel(ctx context.Context, actions Actions) modelTUI {
	l := list.New(nil, itemDelegate{}, 0, 0)
	l.Title = titleStyle.Render("Todos")
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("item", "items")
	extra := func() []key.Binding {
		return []key.Binding{addBind, toggleBind, progBind, deleteBind, refreshBind}
	}
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "New item title..."
	ti.CharLimit = 200

	return modelTUI{ctx: ctx, actions: actions, list: l, ti: ti, width: 80, height: 24}
}

func (m modelTUI) Init() tea.Cmd { return m.load() }

func (m modelTUI) load() tea.Cmd {
	ctx, actions := m.ctx, m.actions
	return func() tea.Msg { return loadedMsg{res: actions.Load(ctx)} }
}

func (m modelTUI) apply(verb, name string, fields action.Fields) tea.Cmd {
	ctx, actions := m.ctx, m.actions
	return func() tea.Msg {
		return appliedMsg{verb: verb, res: actions.Dispatch(ctx, name, fields)}
	}
}

func (m modelTUI) selected() (model.Item, bool) {
	li, ok := m.list.SelectedItem().(listItem)
	return li.item, ok
}

func (m modelTUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case loadedMsg:
		m.busy = false
		if msg.res.Failed() {
			m.err = msg.res.Message
			return m, nil
		}
		m.err = ""
		m.items = msg.res.Items
		li := make([]list.Item, 0, len(m.items))
		for _, it := range m.items {
			li = append(li, listItem{item: it})
		}
		m.list.Title = m.header()
		return m, m.list.SetItems(li)

	case appliedMsg:
		if msg.res.Failed() {
			m.busy = false
			m.err = msg.res.Message
			return m, nil
		}
		m.notice = msg.verb
		return m, m.load()
	}

	if m.adding {
		return m.updateAdding(msg)
	}

	if k, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch k.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "r":
			m.busy = true
			return m, m.load()
		case "a":
			m.adding = true
			m.err = ""
			m.ti.SetValue("")
			m.ti.Focus()
			return m, textinput.Blink
		case " ":
			it, ok := m.selected()
			if !ok {
				return m, nil
			}
			next := model.StatusDone
			if it.Done() {
				next = model.StatusOpen
			}
			return m.updateStatus(it, next)
		case "p":
			it, ok := m.selected()
			if !ok {
				return m, nil
			}
			return m.updateStatus(it, model.StatusInProgress)
		case "d":
			it, ok := m.selected()
			if !ok {
				return m, nil
			}
			m.busy = true
			return m, m.apply("deleted", action.ActionDelete, action.Fields{"id": ident.Decode(it.ID)})
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m modelTUI) updateStatus(it model.Item, s model.Status) (tea.Model, tea.Cmd) {
	m.busy = true
	return m, m.apply("marked "+s.Label(), action.ActionUpdateStatus, action.Fields{
		"id":     ident.Decode(it.ID),
		"status": s.String(),
	})
}

func (m modelTUI) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "enter":
			title := strings.TrimSpace(m.ti.Value())
			if title == "" {
				m.err = "Title cannot be empty"
				return m, nil
			}
			m.adding = false
			m.ti.Blur()
			m.busy = true
			return m, m.apply("added", action.ActionCreate, action.Fields{
				"title":  title,
				"status": model.StatusOpen.String(),
			})
		case "esc":
			m.adding = false
			m.err = ""
			m.ti.Blur()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m modelTUI) header() string {
	var done, active, open int
	for _, it := range m.items {
		switch it.Status {
		case model.StatusDone:
			done++
		case model.StatusInProgress:
			active++
		default:
			open++
		}
	}
	return fmt.Sprintf("%s   %s %d  %s %d  %s %d  %s %d",
		titleStyle.Render("Todos"),
		successStyle.Render("✔"), done,
		activeStyle.Render(boxActive), active,
		pendingStyle.Render("•"), open,
		accentStyle.Render("Total"), len(m.items),
	)
}

func (m modelTUI) View() string {
	listHeight := m.height - 5
	if m.adding {
		listHeight -= 3
	}
	m.list.SetSize(m.width-4, max(listHeight, 3))

	content := m.list.View()
	if m.adding {
		inputLine := "Add new item\n" + m.ti.View()
		content += "\n" + frameStyle.Render(inputLine)
	}
	status := m.notice
	if m.busy {
		status = "working..."
	}
	if m.err != "" {
		status = errorStyle.Render(m.err)
	}
	content += "\n" + helpStyle.Render(status)
	return frameStyle.Render(content)
}
