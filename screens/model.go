package screens

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/reusee/e5"
	"github.com/reusee/starconsole/consoles"
)

var wrap = e5.Wrap.With(e5.WrapStacktrace)

type changedMsg struct{}

type evaluatedMsg struct{}

// Model is a full-screen host for a console.
type Model struct {
	ctx      context.Context
	console  *consoles.Console
	keys     KeyMap
	styles   Styles
	help     help.Model
	viewport viewport.Model
	filename textinput.Model
	changes  chan struct{}
	openURL  func(string) error

	saving     bool
	evaluating bool
	notice     string
	lastSee    int
}

var _ tea.Model = new(Model)

type Option func(*Model)

func WithKeyMap(keys KeyMap) Option {
	return func(m *Model) {
		m.keys = keys
	}
}

func WithStyles(styles Styles) Option {
	return func(m *Model) {
		m.styles = styles
	}
}

// WithOpenURL replaces the function used to show the help page.
func WithOpenURL(fn func(string) error) Option {
	return func(m *Model) {
		m.openURL = fn
	}
}

func New(ctx context.Context, console *consoles.Console, options ...Option) *Model {
	filename := textinput.New()
	filename.Prompt = "save as: "
	filename.CharLimit = 4096
	m := &Model{
		ctx:      ctx,
		console:  console,
		keys:     DefaultKeyMap(),
		styles:   DefaultStyles(),
		help:     help.New(),
		viewport: viewport.New(80, 23),
		filename: filename,
		changes:  make(chan struct{}, 1),
		openURL:  OpenURL,
		lastSee:  -1,
	}
	// arrow keys belong to the console
	m.viewport.KeyMap = viewport.KeyMap{}
	for _, option := range options {
		option(m)
	}
	console.OnChange(m.notify)
	m.refresh()
	return m
}

// notify never blocks, so the console may change from inside Update.
func (m *Model) notify() {
	select {
	case m.changes <- struct{}{}:
	default:
	}
}

func (m *Model) waitChange() tea.Msg {
	<-m.changes
	return changedMsg{}
}

func (m *Model) Init() tea.Cmd {
	return m.waitChange
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = max(1, msg.Height-1)
		m.help.Width = msg.Width
		m.lastSee = -1
		m.refresh()
		return m, nil

	case changedMsg:
		m.refresh()
		return m, m.waitChange

	case evaluatedMsg:
		m.evaluating = false
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if m.saving {
		return m.handleSaveKey(msg)
	}
	if m.evaluating {
		return m, nil
	}
	m.notice = ""

	c := m.console
	switch {
	case key.Matches(msg, m.keys.Submit):
		m.evaluating = true
		ctx := m.ctx
		return m, func() tea.Msg {
			c.Return(ctx)
			return evaluatedMsg{}
		}
	case key.Matches(msg, m.keys.Complete):
		c.Tab()
	case key.Matches(msg, m.keys.Backspace):
		c.Backspace()
	case key.Matches(msg, m.keys.Delete):
		c.Delete()
	case key.Matches(msg, m.keys.ExtendLeft):
		c.ExtendSelection(-1)
	case key.Matches(msg, m.keys.ExtendRight):
		c.ExtendSelection(1)
	case key.Matches(msg, m.keys.Left):
		c.Left()
	case key.Matches(msg, m.keys.Right):
		c.Right()
	case key.Matches(msg, m.keys.Up):
		c.Up()
	case key.Matches(msg, m.keys.Down):
		c.Down()
	case key.Matches(msg, m.keys.Home):
		c.Home()
	case key.Matches(msg, m.keys.End):
		c.End()
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.ViewUp()
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.ViewDown()
	case key.Matches(msg, m.keys.Clear):
		c.Clear()
	case key.Matches(msg, m.keys.SelectAll):
		c.SelectAll()
	case key.Matches(msg, m.keys.Copy):
		if err := c.Copy(); err != nil {
			m.notice = err.Error()
		}
	case key.Matches(msg, m.keys.Save):
		m.saving = true
		m.filename.Reset()
		return m, m.filename.Focus()
	case key.Matches(msg, m.keys.Help):
		m.notice = c.HelpURL()
		if err := m.openURL(c.HelpURL()); err != nil {
			m.notice = "help: " + c.HelpURL()
		}
	case key.Matches(msg, m.keys.About):
		m.notice = c.About()
	case msg.Type == tea.KeySpace:
		c.TypeText(" ")
	case msg.Type == tea.KeyRunes && !msg.Alt:
		c.TypeText(string(msg.Runes))
	}
	return m, nil
}

func (m *Model) handleSaveKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.saving = false
		m.filename.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		m.saving = false
		m.filename.Blur()
		path := strings.TrimSpace(m.filename.Value())
		if path == "" {
			return m, nil
		}
		if err := m.console.SaveAsFile(path); err != nil {
			m.notice = err.Error()
		} else {
			m.notice = "saved to " + path
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.filename, cmd = m.filename.Update(msg)
	return m, cmd
}

// refresh redraws the transcript, scrolling only when the position to show moved.
func (m *Model) refresh() {
	snapshot := m.console.Snapshot()
	content, seeLine := m.styles.Render(snapshot)
	m.viewport.SetContent(content)
	if snapshot.See == m.lastSee {
		return
	}
	m.lastSee = snapshot.See
	if seeLine < m.viewport.YOffset {
		m.viewport.SetYOffset(seeLine)
	} else if seeLine >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(seeLine - m.viewport.Height + 1)
	}
}

func (m *Model) status() string {
	switch {
	case m.saving:
		return m.filename.View()
	case m.notice != "":
		return m.styles.Status.Render(runewidth.Truncate(firstLine(m.notice), m.viewport.Width, "…"))
	case m.evaluating:
		return m.styles.Status.Render("evaluating...")
	}
	return m.help.ShortHelpView(m.keys.ShortHelp())
}

func (m *Model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.viewport.View(),
		m.status(),
	)
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
