// Package navigator turns pointer drags over a horizontal strip of pages
// into page changes.
//
// The navigator never owns the current page. It mirrors the id reported by
// the router through Sync and only ever asks the router to move; the index
// changes when the router reports back.
package navigator

import (
	"math"

	"go.uber.org/zap"

	"tableflip.dev/tend/pkg/page"
	"tableflip.dev/tend/pkg/route"
)

// DefaultThreshold is the drag distance, in percent of one page width,
// needed to commit a page change.
const DefaultThreshold = 25.0

// State is the observable navigator state. Offsets are percentages of one
// page width; 0 shows the first page, -100 the second.
type State struct {
	CurrentIndex    int
	DragOffset      float64
	Dragging        bool
	PointerOrigin   float64
	CommittedOffset float64
}

// Outcome describes how a gesture ended.
type Outcome int

const (
	// Ignored means there was no gesture in progress.
	Ignored Outcome = iota
	// Cancelled means the strip snapped back without navigating.
	Cancelled
	// Committed means a navigation request was sent to the router.
	Committed
)

func (o Outcome) String() string {
	switch o {
	case Cancelled:
		return "cancelled"
	case Committed:
		return "committed"
	default:
		return "ignored"
	}
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithThreshold overrides DefaultThreshold. Non-positive values are ignored.
func WithThreshold(percent float64) Option {
	return func(n *Navigator) {
		if percent > 0 {
			n.threshold = percent
		}
	}
}

// WithLogger sets the logger used for desync reports.
func WithLogger(l *zap.Logger) Option {
	return func(n *Navigator) {
		if l != nil {
			n.log = l
		}
	}
}

// Navigator is not safe for concurrent use; it is driven from a single UI
// event loop.
type Navigator struct {
	pages     []page.ID
	router    route.Router
	threshold float64
	log       *zap.Logger

	state    State
	viewport float64
}

// New returns a navigator over pages positioned at current.
func New(pages []page.ID, current page.ID, router route.Router, opts ...Option) *Navigator {
	n := &Navigator{
		router:    router,
		threshold: DefaultThreshold,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(n)
	}
	n.SetPages(pages, current)
	return n
}

// State returns a copy of the current state.
func (n *Navigator) State() State { return n.state }

// Pages returns the visible pages in order.
func (n *Navigator) Pages() []page.ID {
	return append([]page.ID(nil), n.pages...)
}

// PageCount returns the number of visible pages.
func (n *Navigator) PageCount() int { return len(n.pages) }

// Index returns the current page index.
func (n *Navigator) Index() int { return n.state.CurrentIndex }

// Current returns the id of the current page, or "" when there are none.
func (n *Navigator) Current() page.ID {
	if len(n.pages) == 0 {
		return ""
	}
	return n.pages[n.state.CurrentIndex]
}

// Threshold returns the commit threshold in percent.
func (n *Navigator) Threshold() float64 { return n.threshold }

// SetPages replaces the page list, typically after a stage change, and
// resyncs to current.
func (n *Navigator) SetPages(pages []page.ID, current page.ID) {
	n.pages = append([]page.ID(nil), pages...)
	n.Sync(current)
}

// Sync adopts the router's current page. Any gesture in progress ends. An
// id that is not visible falls back to the first page and asks the router to
// replace the current history slot with it.
func (n *Navigator) Sync(current page.ID) {
	idx := n.indexOf(current)
	if idx < 0 {
		n.rest(0)
		if len(n.pages) == 0 {
			return
		}
		fallback := n.pages[0]
		n.log.Debug("navigator: current page not visible, falling back",
			zap.String("current", string(current)),
			zap.String("fallback", string(fallback)))
		if n.router != nil {
			n.router.Navigate(fallback, route.Options{ReplaceHistory: true})
		}
		return
	}
	n.rest(idx)
}

// PointerDown starts a drag at x within a viewport of the given width.
func (n *Navigator) PointerDown(x, width float64) {
	if width <= 0 || len(n.pages) == 0 {
		return
	}
	n.viewport = width
	n.state.Dragging = true
	n.state.PointerOrigin = x / width * 100
	n.state.CommittedOffset = restOffset(n.state.CurrentIndex)
	n.state.DragOffset = n.state.CommittedOffset
}

// PointerMove updates the visual offset while dragging. The offset never
// moves past the first or last page.
func (n *Navigator) PointerMove(x float64) {
	if !n.state.Dragging {
		return
	}
	delta := x/n.viewport*100 - n.state.PointerOrigin
	n.state.DragOffset = n.clamp(n.state.CommittedOffset + delta)
}

// PointerUp ends the drag. A drag further than the threshold asks the
// router for the neighbouring page; anything else snaps back.
func (n *Navigator) PointerUp() Outcome {
	if !n.state.Dragging {
		return Ignored
	}
	diff := n.state.DragOffset - n.state.CommittedOffset
	target := n.state.CurrentIndex
	switch {
	case diff < -n.threshold:
		target++
	case diff > n.threshold:
		target--
	}

	// Back to rest before calling out: the router may report the new page
	// synchronously.
	n.rest(n.state.CurrentIndex)
	if target == n.state.CurrentIndex || target < 0 || target >= len(n.pages) {
		return Cancelled
	}
	n.request(target)
	return Committed
}

// PointerLeave treats the pointer leaving the strip as a release.
func (n *Navigator) PointerLeave() Outcome {
	return n.PointerUp()
}

// Next asks for the following page. It is a no-op on the last page.
func (n *Navigator) Next() bool {
	return n.step(1)
}

// Prev asks for the preceding page. It is a no-op on the first page.
func (n *Navigator) Prev() bool {
	return n.step(-1)
}

func (n *Navigator) step(dir int) bool {
	if n.state.Dragging {
		n.rest(n.state.CurrentIndex)
	}
	target := n.state.CurrentIndex + dir
	if target < 0 || target >= len(n.pages) {
		return false
	}
	n.request(target)
	return true
}

func (n *Navigator) request(idx int) {
	if n.router == nil {
		return
	}
	n.router.Navigate(n.pages[idx], route.Options{})
}

func (n *Navigator) rest(idx int) {
	n.state = State{
		CurrentIndex:    idx,
		DragOffset:      restOffset(idx),
		CommittedOffset: restOffset(idx),
	}
}

func (n *Navigator) clamp(offset float64) float64 {
	lo := -float64(max(len(n.pages)-1, 0)) * 100
	return math.Max(lo, math.Min(0, offset))
}

func (n *Navigator) indexOf(id page.ID) int {
	for i, p := range n.pages {
		if p == id {
			return i
		}
	}
	return -1
}

func restOffset(idx int) float64 {
	if idx == 0 {
		return 0
	}
	return -float64(idx) * 100
}
