package ui

import (
	"reflect"
	"strconv"
	"time"

	"github.com/atomicstack/tmux-tab-rename/internal/backend"
	"github.com/atomicstack/tmux-tab-rename/internal/data/dispatcher"
	"github.com/atomicstack/tmux-tab-rename/internal/state"
	"github.com/atomicstack/tmux-tab-rename/internal/theme"
	uistate "github.com/atomicstack/tmux-tab-rename/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options configures the inspector.
type Options struct {
	Session string
	Width   int
	Height  int
	Watcher *backend.Watcher
}

// Model implements the Bubble Tea model for the pane index inspector.
type Model struct {
	list    *uistate.List
	rows    []Row
	columns string
	filter  textinput.Model

	loading     bool
	infoMsg     string
	infoExpire  time.Time
	backendErr  string
	session     string
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool

	handlers map[reflect.Type]msgHandler

	backend    *backend.Watcher
	tabs       state.TabStore
	panes      state.PaneStore
	index      state.IndexStore
	dispatcher *dispatcher.Dispatcher
}

// NewModel initialises the inspector with an empty index.
func NewModel(opts Options) *Model {
	tabs := state.NewTabStore()
	tabs.SetSession(opts.Session)
	panes := state.NewPaneStore()
	index := state.NewIndexStore()
	m := &Model{
		list:       uistate.NewList(nil),
		loading:    true,
		session:    opts.Session,
		backend:    opts.Watcher,
		tabs:       tabs,
		panes:      panes,
		index:      index,
		dispatcher: dispatcher.New(tabs, panes, index),
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.filter = newFilterInput()
	m.filter.Focus()
	m.columns, _ = rowItems(nil)
	m.registerHandlers()
	return m
}

func newFilterInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = "» "
	ti.Placeholder = "type to filter"
	ti.CharLimit = 128
	if styles.FilterPrompt != nil {
		ti.PromptStyle = *styles.FilterPrompt
	}
	if styles.Filter != nil {
		ti.TextStyle = *styles.Filter
	}
	if styles.FilterPlaceholder != nil {
		ti.PlaceholderStyle = *styles.FilterPlaceholder
	}
	if styles.Cursor != nil {
		ti.Cursor.Style = *styles.Cursor
	}
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	return m, cmd
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// Rows returns the rows currently shown, after filtering.
func (m *Model) Rows() []Row {
	byID := make(map[string]Row, len(m.rows))
	for _, r := range m.rows {
		byID[strconv.FormatUint(uint64(r.PaneID), 10)] = r
	}
	out := make([]Row, 0, len(m.list.Items))
	for _, item := range m.list.Items {
		if r, ok := byID[item.ID]; ok {
			out = append(out, r)
		}
	}
	return out
}

func (m *Model) currentRow() (Row, bool) {
	item, ok := m.list.Current()
	if !ok {
		return Row{}, false
	}
	for _, r := range m.rows {
		if strconv.FormatUint(uint64(r.PaneID), 10) == item.ID {
			return r, true
		}
	}
	return Row{}, false
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}
