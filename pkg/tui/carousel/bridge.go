package carousel

import (
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/tend/pkg/completion"
)

// Bridge carries callbacks from the session into the Bubble Tea loop.
// Schedule and Notify are called from inside Update, so they only queue;
// Saved runs on the checklist's timer goroutine and goes through a channel.
type Bridge struct {
	cmds    []tea.Cmd
	notices []completion.Notice
	saved   chan error
}

// NewBridge returns an empty bridge.
func NewBridge() *Bridge {
	return &Bridge{saved: make(chan error, 1)}
}

type settleMsg struct{ fn func() }

type savedMsg struct{ err error }

// Schedule implements completion.Scheduler by turning the delay into a tick.
func (b *Bridge) Schedule(d time.Duration, fn func()) {
	b.cmds = append(b.cmds, tea.Tick(d, func(time.Time) tea.Msg {
		return settleMsg{fn: fn}
	}))
}

// Notify implements completion.Notifier.
func (b *Bridge) Notify(n completion.Notice) {
	b.notices = append(b.notices, n)
}

// Saved reports a checklist write. A result that arrives while the previous
// one is still unread is dropped; only failures matter to the UI and the
// next write reports again.
func (b *Bridge) Saved(err error) {
	select {
	case b.saved <- err:
	default:
	}
}

func (b *Bridge) drain() ([]tea.Cmd, []completion.Notice) {
	cmds, notices := b.cmds, b.notices
	b.cmds, b.notices = nil, nil
	return cmds, notices
}

func (b *Bridge) waitSaved() tea.Msg {
	return savedMsg{err: <-b.saved}
}
