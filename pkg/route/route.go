// Package route owns the authoritative "current page" and its history.
package route

import (
	"sync"

	"tableflip.dev/tend/pkg/page"
)

// Options modify a navigation request.
type Options struct {
	// ReplaceHistory swaps the current history slot instead of pushing.
	ReplaceHistory bool
}

// Router accepts navigation requests. Implementations decide when, and
// whether, the current page actually changes.
type Router interface {
	Navigate(id page.ID, opts Options)
}

// Memory is an in-process router with a back stack. Observers are told
// about every change of the current page.
type Memory struct {
	mu        sync.Mutex
	stack     []page.ID
	observers map[int]func(page.ID)
	nextID    int
}

// NewMemory starts at initial.
func NewMemory(initial page.ID) *Memory {
	return &Memory{
		stack:     []page.ID{initial},
		observers: make(map[int]func(page.ID)),
	}
}

// Current returns the current page id.
func (m *Memory) Current() page.ID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stack[len(m.stack)-1]
}

// Navigate moves to id and notifies observers. Navigating to the current
// page is a no-op.
func (m *Memory) Navigate(id page.ID, opts Options) {
	m.mu.Lock()
	top := len(m.stack) - 1
	if m.stack[top] == id {
		m.mu.Unlock()
		return
	}
	if opts.ReplaceHistory {
		m.stack[top] = id
	} else {
		m.stack = append(m.stack, id)
	}
	observers := m.snapshot()
	m.mu.Unlock()

	for _, fn := range observers {
		fn(id)
	}
}

// Back pops the history stack. It reports false when there is nowhere to go.
func (m *Memory) Back() bool {
	m.mu.Lock()
	if len(m.stack) < 2 {
		m.mu.Unlock()
		return false
	}
	m.stack = m.stack[:len(m.stack)-1]
	id := m.stack[len(m.stack)-1]
	observers := m.snapshot()
	m.mu.Unlock()

	for _, fn := range observers {
		fn(id)
	}
	return true
}

// Depth returns the number of history slots.
func (m *Memory) Depth() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.stack)
}

// Subscribe registers fn for page changes.
func (m *Memory) Subscribe(fn func(page.ID)) (cancel func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	m.observers[id] = fn
	return func() {
		m.mu.Lock()
		delete(m.observers, id)
		m.mu.Unlock()
	}
}

func (m *Memory) snapshot() []func(page.ID) {
	out := make([]func(page.ID), 0, len(m.observers))
	for _, fn := range m.observers {
		out = append(out, fn)
	}
	return out
}

// Recorder is a Router that only records requests.
type Recorder struct {
	Requests []Request
}

// Request is one recorded navigation.
type Request struct {
	ID      page.ID
	Options Options
}

func (r *Recorder) Navigate(id page.ID, opts Options) {
	r.Requests = append(r.Requests, Request{ID: id, Options: opts})
}

// Last returns the most recent request.
func (r *Recorder) Last() (Request, bool) {
	if len(r.Requests) == 0 {
		return Request{}, false
	}
	return r.Requests[len(r.Requests)-1], true
}
