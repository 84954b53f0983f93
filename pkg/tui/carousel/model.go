// Package carousel is the swipeable page strip of the tend UI.
package carousel

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/key"
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"go.uber.org/zap"

	"tableflip.dev/tend/pkg/app"
	"tableflip.dev/tend/pkg/completion"
	"tableflip.dev/tend/pkg/navigator"
	"tableflip.dev/tend/pkg/page"
	"tableflip.dev/tend/pkg/stage"
	"tableflip.dev/tend/pkg/store"
	"tableflip.dev/tend/pkg/tracker"
	"tableflip.dev/tend/pkg/tui/theme"
)

const toastTTL = 3 * time.Second

// Options configure a Model.
type Options struct {
	// Events, when set, are store changes made by other processes.
	Events <-chan store.Event
	Logger *zap.Logger
}

type storeEventMsg struct {
	event store.Event
	ok    bool
}

type toastExpiredMsg struct{ seq int }

// Model renders the visible pages of a session as a horizontal strip that
// follows mouse drags and arrow keys.
type Model struct {
	session *app.Session
	nav     *navigator.Navigator
	bridge  *Bridge
	events  <-chan store.Event
	log     *zap.Logger

	keys  keyMap
	theme theme.Theme

	width  int
	height int

	prompting bool
	input     textinput.Model

	toast      string
	toastLevel completion.Level
	toastSeq   int
}

// New returns a carousel over session. bridge must be the one whose
// Schedule, Notify and Saved the session was built with.
func New(session *app.Session, bridge *Bridge, opts Options) *Model {
	in := textinput.New()
	in.Prompt = ""
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Model{
		session: session,
		nav:     session.Navigator(),
		bridge:  bridge,
		events:  opts.Events,
		log:     log,
		keys:    defaultKeys(),
		theme:   theme.Default(),
		input:   in,
		width:   80,
		height:  24,
	}
}

// Run launches the Bubble Tea program.
func Run(m *Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.bridge.waitSaved}
	if m.events != nil {
		cmds = append(cmds, m.waitEvent)
	}
	return tea.Batch(cmds...)
}

func (m *Model) waitEvent() tea.Msg {
	ev, ok := <-m.events
	return storeEventMsg{event: ev, ok: ok}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyPressMsg:
		if cmd := m.handleKey(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case tea.MouseClickMsg:
		if msg.Button == tea.MouseLeft && !m.prompting {
			m.nav.PointerDown(float64(msg.X), float64(m.width))
		}
	case tea.MouseMotionMsg:
		if m.nav.State().Dragging {
			if msg.X < 0 || msg.X >= m.width {
				m.nav.PointerLeave()
			} else {
				m.nav.PointerMove(float64(msg.X))
			}
		}
	case tea.MouseReleaseMsg:
		if out := m.nav.PointerUp(); out != navigator.Ignored {
			m.log.Debug("carousel: drag ended", zap.Stringer("outcome", out), zap.String("page", string(m.nav.Current())))
		}
	case settleMsg:
		msg.fn()
	case savedMsg:
		if msg.err != nil {
			m.log.Warn("carousel: checklist not saved", zap.Error(msg.err))
			cmds = append(cmds, m.setToast(completion.Warn, "Medicine checklist could not be written to disk"))
		}
		cmds = append(cmds, m.bridge.waitSaved)
	case storeEventMsg:
		if !msg.ok {
			break
		}
		if m.session.Reload(msg.event.Key) {
			m.log.Debug("carousel: reloaded", zap.String("key", msg.event.Key))
		}
		cmds = append(cmds, m.waitEvent)
	case toastExpiredMsg:
		if msg.seq == m.toastSeq {
			m.toast = ""
		}
	}

	pending, notices := m.bridge.drain()
	cmds = append(cmds, pending...)
	for _, n := range notices {
		cmds = append(cmds, m.setToast(n.Level, n.Message))
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if m.prompting {
		switch {
		case key.Matches(msg, m.keys.Submit):
			value := m.input.Value()
			m.closePrompt()
			m.submit(value)
			return nil
		case key.Matches(msg, m.keys.Cancel):
			m.closePrompt()
			return nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Next):
		m.nav.Next()
	case key.Matches(msg, m.keys.Prev):
		m.nav.Prev()
	case key.Matches(msg, m.keys.Back):
		m.session.Router().Back()
	case key.Matches(msg, m.keys.Planning):
		return m.setStage(stage.Planning)
	case key.Matches(msg, m.keys.Treatment):
		return m.setStage(stage.Treatment)
	case key.Matches(msg, m.keys.Aftercare):
		return m.setStage(stage.Aftercare)
	case key.Matches(msg, m.keys.Complete):
		return m.openPrompt()
	}
	return nil
}

func (m *Model) setStage(s stage.Stage) tea.Cmd {
	if err := m.session.SetStage(s); err != nil {
		return m.setToast(completion.Warn, "Stage changed for this session only")
	}
	return nil
}

func (m *Model) openPrompt() tea.Cmd {
	p, ok := m.session.Catalog().Lookup(m.nav.Current())
	if !ok {
		return nil
	}
	m.prompting = true
	m.input.Reset()
	if p.DataCollecting {
		m.input.Placeholder = strings.Join(p.Required, "=… ") + "=…"
	} else {
		m.input.Placeholder = "item to check or uncheck, empty to finish"
	}
	return m.input.Focus()
}

func (m *Model) closePrompt() {
	m.prompting = false
	m.input.Blur()
}

// submit records value against the current page. Checklist pages toggle
// the named item; an empty value finishes the page.
func (m *Model) submit(value string) {
	id := m.nav.Current()
	p, ok := m.session.Catalog().Lookup(id)
	if !ok {
		return
	}
	value = strings.TrimSpace(value)

	if !p.DataCollecting {
		if list := m.session.Checklist(); list != nil && value != "" {
			list.Toggle(value)
			return
		}
		_, _ = m.session.Complete(id, nil)
		return
	}

	payload, err := tracker.ParsePayload(tracker.SplitPairs(value))
	if err != nil {
		m.bridge.Notify(completion.Notice{Level: completion.Warn, Message: err.Error()})
		return
	}
	if _, err := m.session.Complete(id, payload); err != nil {
		var verr *completion.ValidationError
		if !errors.As(err, &verr) {
			m.log.Warn("carousel: complete failed", zap.String("page", string(id)), zap.Error(err))
		}
	}
}

func (m *Model) setToast(level completion.Level, message string) tea.Cmd {
	m.toastSeq++
	m.toast = message
	m.toastLevel = level
	seq := m.toastSeq
	return tea.Tick(toastTTL, func(time.Time) tea.Msg { return toastExpiredMsg{seq: seq} })
}

// View implements tea.Model.
func (m *Model) View() string {
	frame := m.theme.Panel.Frame
	inner := max(m.width-frame.GetHorizontalFrameSize(), 1)
	height := max(m.height-frame.GetVerticalFrameSize()-5, 3)

	ids := m.nav.Pages()
	pages := make([][]string, len(ids))
	for i, id := range ids {
		pages[i] = block(m.body(id, inner), inner, height)
	}
	strip := window(pages, m.nav.State().DragOffset, inner)

	lines := []string{
		m.header(),
		frame.Width(m.width).Render(strings.Join(strip, "\n")),
		m.dots(),
		m.promptLine(),
		m.toastLine(),
		m.helpLine(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) header() string {
	t := m.theme.Panel
	title := t.Title.Render("tend") + "  " + t.Stage.Render(m.session.CurrentStage().String())
	if m.session.ExtraPanel() {
		title += "  " + t.Extra.Render("treatment panel")
	}
	return title
}

func (m *Model) body(id page.ID, width int) string {
	p, ok := m.session.Catalog().Lookup(id)
	if !ok {
		return string(id)
	}
	var b strings.Builder
	if p.Render != nil {
		b.WriteString(p.Render.Render(width))
	} else {
		b.WriteString(p.Label)
	}
	b.WriteString("\n\n")

	if l, ok := m.session.Log(id); ok {
		week := l.QueryByWeek(0)
		fmt.Fprintf(&b, "%d this week\n", len(week))
		if len(week) > 0 {
			fmt.Fprintf(&b, "latest: %s (%s)\n", week[0].Title, week[0].DateKey)
		}
	}
	if id == page.Medicine {
		if list := m.session.Checklist(); list != nil {
			items := list.Items()
			if len(items) == 0 {
				b.WriteString("nothing checked today\n")
			}
			for _, item := range items {
				fmt.Fprintf(&b, "✓ %s\n", item)
			}
		}
	}
	return b.String()
}

func (m *Model) dots() string {
	var b strings.Builder
	for i := range m.nav.PageCount() {
		if i > 0 {
			b.WriteString(" ")
		}
		if i == m.nav.Index() {
			b.WriteString(m.theme.Dots.Current.Render("●"))
		} else {
			b.WriteString(m.theme.Dots.Other.Render("○"))
		}
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, b.String())
}

func (m *Model) promptLine() string {
	if !m.prompting {
		return ""
	}
	return m.theme.Footer.Prompt.Render("> ") + m.input.View()
}

func (m *Model) toastLine() string {
	if m.toast == "" {
		return ""
	}
	if m.toastLevel == completion.Warn {
		return m.theme.Toast.Warn.Render(m.toast)
	}
	return m.theme.Toast.Info.Render(m.toast)
}

func (m *Model) helpLine() string {
	var parts []string
	for _, b := range m.keys.help() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return m.theme.Footer.Help.Render(strings.Join(parts, " · "))
}
