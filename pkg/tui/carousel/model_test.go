package carousel

import (
	"regexp"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/tend/pkg/app"
	"tableflip.dev/tend/pkg/completion"
	"tableflip.dev/tend/pkg/page"
	"tableflip.dev/tend/pkg/stage"
	"tableflip.dev/tend/pkg/store"
)

func newModel(t *testing.T, s stage.Stage) (*Model, *app.Session) {
	t.Helper()
	b := NewBridge()
	session, err := app.NewSession(store.NewMemory(), app.Options{
		Stage:            s,
		Scheduler:        b.Schedule,
		Notifier:         b,
		OnChecklistSaved: b.Saved,
		SaveDelay:        time.Hour,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })

	m := New(session, b, Options{})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 20})
	return m, session
}

func run(m *Model, msg tea.Msg) {
	_, _ = m.Update(msg)
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;:]*[A-Za-z~]`)

func plain(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func press(code rune, text string) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code, Text: text}
}

func TestMouseDragCommits(t *testing.T) {
	m, session := newModel(t, stage.Treatment)

	run(m, tea.MouseClickMsg{X: 80, Button: tea.MouseLeft})
	run(m, tea.MouseMotionMsg{X: 40, Button: tea.MouseLeft})
	assert.Equal(t, -40.0, m.nav.State().DragOffset)
	run(m, tea.MouseReleaseMsg{X: 40})

	assert.Equal(t, page.Sleep, session.Router().Current())
	assert.Equal(t, 1, m.nav.Index())
	assert.False(t, m.nav.State().Dragging)
}

func TestMouseDragSnapsBack(t *testing.T) {
	m, session := newModel(t, stage.Treatment)

	run(m, tea.MouseClickMsg{X: 50, Button: tea.MouseLeft})
	run(m, tea.MouseMotionMsg{X: 40, Button: tea.MouseLeft})
	run(m, tea.MouseReleaseMsg{X: 40})

	assert.Equal(t, page.Mood, session.Router().Current())
	assert.Equal(t, 0.0, m.nav.State().DragOffset)
}

func TestPointerLeavingResolvesDrag(t *testing.T) {
	m, session := newModel(t, stage.Treatment)

	run(m, tea.MouseClickMsg{X: 90, Button: tea.MouseLeft})
	run(m, tea.MouseMotionMsg{X: 30, Button: tea.MouseLeft})
	run(m, tea.MouseMotionMsg{X: -1, Button: tea.MouseLeft})

	assert.Equal(t, page.Sleep, session.Router().Current())
	assert.False(t, m.nav.State().Dragging)
}

func TestArrowKeys(t *testing.T) {
	m, session := newModel(t, stage.Planning)

	run(m, press(tea.KeyLeft, ""))
	assert.Equal(t, page.Mood, session.Router().Current(), "no-op on the first page")

	run(m, press(tea.KeyRight, ""))
	run(m, press('l', "l"))
	assert.Equal(t, page.Symptoms, session.Router().Current())

	run(m, press('b', "b"))
	assert.Equal(t, page.Sleep, session.Router().Current())
}

func TestStageKeys(t *testing.T) {
	m, session := newModel(t, stage.Planning)
	assert.Equal(t, 4, m.nav.PageCount())

	run(m, press('2', "2"))
	assert.Equal(t, stage.Treatment, session.CurrentStage())
	assert.Equal(t, 7, m.nav.PageCount())
	assert.Contains(t, plain(m.View()), "treatment panel")
}

func TestSubmitRecordsAndReturns(t *testing.T) {
	m, session := newModel(t, stage.Planning)
	run(m, press(tea.KeyRight, ""))
	require.Equal(t, page.Sleep, session.Router().Current())

	m.submit("bedtime=22:30 wakeTime=06:45")

	l, ok := session.Log(page.Sleep)
	require.True(t, ok)
	assert.Equal(t, 1, l.Len())

	// The confirmation waits for the settle tick.
	assert.Equal(t, page.Sleep, session.Router().Current())
	cmds, _ := m.bridge.drain()
	require.Len(t, cmds, 1)
	run(m, cmds[0]())

	assert.Equal(t, page.Mood, session.Router().Current())
	assert.Equal(t, "Sleep saved", m.toast)
}

func TestSubmitKeepsSpacesInValues(t *testing.T) {
	m, session := newModel(t, stage.Planning)

	m.submit("mood=quietly hopeful note=long day")

	l, _ := session.Log(page.Mood)
	require.Equal(t, 1, l.Len())
	got := l.Entries()[0].Payload
	assert.Equal(t, "quietly hopeful", got["mood"])
	assert.Equal(t, "long day", got["note"])
}

func TestSubmitMissingFieldsWarns(t *testing.T) {
	m, session := newModel(t, stage.Planning)

	m.submit("note=hello")
	run(m, toastExpiredMsg{seq: -1})

	l, _ := session.Log(page.Mood)
	assert.Equal(t, 0, l.Len())
	assert.Equal(t, completion.Warn, m.toastLevel)
	assert.Contains(t, m.toast, "mood")
}

func TestChecklistPrompt(t *testing.T) {
	m, session := newModel(t, stage.Aftercare)
	for m.nav.Current() != page.Medicine {
		run(m, press(tea.KeyRight, ""))
	}

	m.submit("aspirin")
	assert.Equal(t, []string{"aspirin"}, session.Checklist().Items())
	assert.Contains(t, plain(m.View()), "✓ aspirin")
}

func TestViewShowsDots(t *testing.T) {
	m, _ := newModel(t, stage.Aftercare)
	run(m, press(tea.KeyRight, ""))

	view := plain(m.View())
	assert.Contains(t, view, "○ ● ○ ○ ○")
	assert.Contains(t, view, "Sleep")
	assert.True(t, strings.HasPrefix(view, "tend"))
}

func TestToastExpires(t *testing.T) {
	m, _ := newModel(t, stage.Planning)
	m.setToast(completion.Info, "hello")
	seq := m.toastSeq

	run(m, toastExpiredMsg{seq: seq - 1})
	assert.Equal(t, "hello", m.toast)
	run(m, toastExpiredMsg{seq: seq})
	assert.Empty(t, m.toast)
}

func TestStoreEventReloads(t *testing.T) {
	events := make(chan store.Event, 1)
	b := NewBridge()
	kv := store.NewMemory()
	session, err := app.NewSession(kv, app.Options{Scheduler: b.Schedule, Notifier: b})
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	m := New(session, b, Options{Events: events})

	require.NoError(t, kv.Set(stage.Key, []byte("aftercare")))
	run(m, storeEventMsg{event: store.Event{Key: stage.Key}, ok: true})

	assert.Equal(t, stage.Aftercare, session.CurrentStage())
	assert.Equal(t, 5, m.nav.PageCount())
}
