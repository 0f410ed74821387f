package tui

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/idilsaglam/duedo/internal/config"
	"github.com/idilsaglam/duedo/internal/duedate"
	"github.com/idilsaglam/duedo/internal/model"
	"github.com/idilsaglam/duedo/internal/store"
	"github.com/idilsaglam/duedo/internal/ui"
)

const dueHint = "use YYYY-MM-DD, today, tomorrow, +3d or a weekday"

type mode int

const (
	modeBrowse mode = iota
	modeAdd
	modeEdit
)

// ConfigChangedMsg carries a reloaded config into the running program.
type ConfigChangedMsg struct {
	Config *config.Config
}

type Options struct {
	CharLimit  int
	DefaultDue string
	Now        func() time.Time
	Logger     *log.Logger
}

func (o Options) withDefaults() Options {
	if o.CharLimit <= 0 {
		o.CharLimit = config.DefaultCharLimit
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return o
}

// OptionsFrom maps the config fields the TUI cares about.
func OptionsFrom(cfg *config.Config) Options {
	return Options{
		CharLimit:  cfg.List.CharLimit,
		DefaultDue: cfg.List.DefaultDue,
	}
}

type removal struct {
	item model.Item
	at   int
}

type Model struct {
	store *store.Store
	opts  Options
	keys  keyMap
	help  help.Model

	list          list.Model
	width, height int

	mode    mode
	text    textinput.Model // shared text input (add & edit)
	due     textinput.Model
	onDue   bool   // due input has focus in add mode
	formErr string // last validation error in the form

	editID   uuid.UUID
	editOrig string

	undo   *removal
	status string
}

func New(st *store.Store, opts Options) Model {
	opts = opts.withDefaults()
	keys := defaultKeys()

	l := list.New(nil, itemDelegate{now: opts.Now}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("item", "items")
	l.AdditionalShortHelpKeys = keys.ShortHelp
	l.AdditionalFullHelpKeys = keys.ShortHelp

	m := Model{
		store:  st,
		opts:   opts,
		keys:   keys,
		help:   help.New(),
		list:   l,
		width:  80,
		height: 24,
	}

	m.text = textinput.New()
	m.text.Prompt = "> "
	m.text.CharLimit = opts.CharLimit
	m.due = textinput.New()
	m.due.Prompt = "Due: "
	m.due.Placeholder = "YYYY-MM-DD"
	m.due.CharLimit = 16

	m.applyTheme()
	m.sync()
	return m
}

// NewProgram wires the model into a Bubble Tea program.
func NewProgram(ctx context.Context, m Model, altScreen bool, extra ...tea.ProgramOption) *tea.Program {
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if altScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	opts = append(opts, extra...)
	return tea.NewProgram(m, opts...)
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(m.width-4, m.height-4)
		return m, nil

	case ConfigChangedMsg:
		m.reconfigure(msg.Config)
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeAdd:
			return m.updateAdd(msg)
		case modeEdit:
			return m.updateEdit(msg)
		}
		if !m.list.SettingFilter() {
			if next, cmd, handled := m.updateBrowse(msg); handled {
				return next, cmd
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateBrowse(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	m.status = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit, true

	case key.Matches(msg, m.keys.Add):
		m.mode = modeAdd
		m.formErr = ""
		m.text.SetValue("")
		m.text.Placeholder = "New todo..."
		m.due.SetValue(m.prefillDue())
		m.onDue = false
		m.due.Blur()
		return m, m.text.Focus(), true

	case key.Matches(msg, m.keys.Toggle):
		it, ok := m.selected()
		if !ok {
			return m, nil, true
		}
		if !it.CanToggle() {
			m.status = "finish editing first"
			return m, nil, true
		}
		if err := m.store.ToggleComplete(it.ID); err != nil {
			m.status = err.Error()
			return m, nil, true
		}
		return m, m.sync(), true

	case key.Matches(msg, m.keys.Edit):
		it, ok := m.selected()
		if !ok || !it.CanEdit() {
			return m, nil, true
		}
		if err := m.store.BeginEdit(it.ID); err != nil {
			m.status = err.Error()
			return m, nil, true
		}
		m.mode = modeEdit
		m.formErr = ""
		m.editID, m.editOrig = it.ID, it.Text
		m.text.SetValue(it.Text)
		m.text.CursorEnd()
		m.text.Placeholder = "Edit todo..."
		return m, tea.Batch(m.sync(), m.text.Focus()), true

	case key.Matches(msg, m.keys.Remove):
		it, ok := m.selected()
		if !ok || !it.CanRemove() {
			return m, nil, true
		}
		removed, at, err := m.store.Remove(it.ID)
		if err != nil {
			m.status = err.Error()
			return m, nil, true
		}
		m.undo = &removal{item: removed, at: at}
		m.status = "removed, u to undo"
		return m, m.sync(), true

	case key.Matches(msg, m.keys.Undo):
		if m.undo == nil {
			return m, nil, true
		}
		if err := m.store.Restore(m.undo.item, m.undo.at); err != nil {
			m.status = err.Error()
		}
		id := m.undo.item.ID
		m.undo = nil
		cmd := m.sync()
		m.selectID(id)
		return m, cmd, true
	}
	return m, nil, false
}

func (m Model) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		due, err := duedate.Normalize(m.due.Value(), m.opts.Now())
		if err != nil {
			m.formErr = "Due date: " + dueHint
			return m, nil
		}
		it, err := m.store.Add(strings.TrimSpace(m.text.Value()), due)
		switch {
		case errors.Is(err, store.ErrEmptyText):
			m.formErr = "Text cannot be empty"
			return m, nil
		case errors.Is(err, store.ErrEmptyDueDate):
			m.formErr = "Due date cannot be empty"
			return m, nil
		case err != nil:
			m.formErr = err.Error()
			return m, nil
		}
		m.closeForm()
		cmd := m.sync()
		m.selectID(it.ID)
		return m, cmd

	case key.Matches(msg, m.keys.Cancel):
		m.closeForm()
		return m, nil

	case key.Matches(msg, m.keys.Next):
		m.onDue = !m.onDue
		if m.onDue {
			m.text.Blur()
			return m, m.due.Focus()
		}
		m.due.Blur()
		return m, m.text.Focus()
	}

	var cmd tea.Cmd
	if m.onDue {
		m.due, cmd = m.due.Update(msg)
	} else {
		m.text, cmd = m.text.Update(msg)
	}
	return m, cmd
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		text := strings.TrimSpace(m.text.Value())
		if text == "" {
			m.formErr = "Text cannot be empty"
			return m, nil
		}
		if err := m.store.SaveEdit(m.editID, text); err != nil {
			m.status = err.Error()
		}
		m.closeForm()
		return m, m.sync()

	case key.Matches(msg, m.keys.Cancel):
		if err := m.store.SaveEdit(m.editID, m.editOrig); err != nil {
			m.status = err.Error()
		}
		m.closeForm()
		return m, m.sync()
	}

	before := m.text.Value()
	var cmd tea.Cmd
	m.text, cmd = m.text.Update(msg)
	if v := m.text.Value(); v != before {
		if err := m.store.UpdateText(m.editID, v); err != nil {
			m.status = err.Error()
		}
		return m, tea.Batch(cmd, m.sync())
	}
	return m, cmd
}

func (m *Model) closeForm() {
	m.mode = modeBrowse
	m.formErr = ""
	m.onDue = false
	m.editID = uuid.Nil
	m.editOrig = ""
	m.text.SetValue("")
	m.text.Blur()
	m.due.SetValue("")
	m.due.Blur()
}

func (m Model) prefillDue() string {
	if m.opts.DefaultDue == "" {
		return ""
	}
	due, err := duedate.Normalize(m.opts.DefaultDue, m.opts.Now())
	if err != nil {
		return ""
	}
	return due
}

func (m Model) selected() (model.Item, bool) {
	li, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return model.Item{}, false
	}
	it, err := m.store.Get(li.ID)
	if err != nil {
		return model.Item{}, false
	}
	return it, true
}

// sync copies the store into the list rows and refreshes the header.
func (m *Model) sync() tea.Cmd {
	items := m.store.Items()
	rows := make([]list.Item, len(items))
	for i, it := range items {
		rows[i] = listItem{Item: it}
	}
	m.list.Title = ui.Header(m.store.Stats())
	return m.list.SetItems(rows)
}

func (m *Model) selectID(id uuid.UUID) {
	if m.list.FilterState() != list.Unfiltered {
		return
	}
	if i := m.store.IndexOf(id); i >= 0 {
		m.list.Select(i)
	}
}

func (m *Model) reconfigure(cfg *config.Config) {
	if cfg == nil {
		return
	}
	ui.SetTheme(cfg.Theme)
	m.opts.CharLimit = cfg.List.CharLimit
	m.opts.DefaultDue = cfg.List.DefaultDue
	m.text.CharLimit = cfg.List.CharLimit
	m.applyTheme()
	m.sync()
	m.opts.Logger.Info("config reloaded", "theme", cfg.Theme, "path", cfg.Path)
}

func (m *Model) applyTheme() {
	t := ui.Current()
	m.list.Styles.Title = lipgloss.NewStyle()
	m.list.Styles.HelpStyle = t.Help
	m.list.Styles.PaginationStyle = t.Help
	m.help.Styles.ShortKey = t.Help
	m.help.Styles.ShortDesc = t.Help
}

func (m Model) View() string {
	t := ui.Current()
	w, h := m.width, m.height

	var form string
	if m.mode != modeBrowse {
		form = m.formView()
	}
	var status string
	if m.status != "" {
		status = t.Muted.Render(m.status)
	}

	var content string
	if m.store.Len() == 0 {
		parts := []string{
			m.list.Title,
			t.Progress(0, 0, 28),
			"",
			t.Muted.Render(ui.EmptyMessage),
			"",
			m.help.ShortHelpView(m.keys.ShortHelp()),
		}
		content = strings.Join(parts, "\n")
	} else {
		listHeight := h - 4 - lipgloss.Height(form)
		if form == "" {
			listHeight = h - 4
		}
		if status != "" {
			listHeight--
		}
		m.list.SetSize(w-4, listHeight)
		content = m.list.View()
	}
	if form != "" {
		content += "\n" + form
	}
	if status != "" {
		content += "\n" + status
	}
	return t.PanelStyle().Render(content)
}

func (m Model) formView() string {
	t := ui.Current()
	title := "Add new todo"
	lines := []string{}
	if m.mode == modeEdit {
		title = "Edit todo"
	}
	if m.formErr != "" {
		title += " " + t.Error.Render("("+m.formErr+")")
	}
	lines = append(lines, title, m.text.View())
	if m.mode == modeAdd {
		lines = append(lines, m.due.View())
	}
	lines = append(lines, m.help.ShortHelpView(m.keys.formHelp(m.mode == modeAdd)))

	bar := lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1)
	return bar.Render(strings.Join(lines, "\n"))
}
