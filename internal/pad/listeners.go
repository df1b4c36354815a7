package pad

import (
	"slices"
	"sync"

	"SketchPad/internal/state"
)

// EventKind names a pointer event.
type EventKind int

const (
	PointerDown EventKind = iota
	PointerMove
	PointerUp
)

func (k EventKind) String() string {
	switch k {
	case PointerDown:
		return "pointerdown"
	case PointerMove:
		return "pointermove"
	case PointerUp:
		return "pointerup"
	default:
		return "unknown"
	}
}

// Handler receives a pointer position in viewport coordinates.
type Handler func(p state.Point)

// EventSource is anything pointer handlers can be attached to.
// The returned func detaches the handler; calling it again does nothing.
type EventSource interface {
	On(kind EventKind, h Handler) (detach func())
}

// Listeners is an EventSource that the owner feeds through Dispatch.
type Listeners struct {
	mu       sync.RWMutex
	next     int
	handlers map[EventKind]map[int]Handler
}

var _ EventSource = (*Listeners)(nil)

func NewListeners() *Listeners {
	return &Listeners{handlers: make(map[EventKind]map[int]Handler)}
}

func (l *Listeners) On(kind EventKind, h Handler) func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	id := l.next
	l.next++
	if l.handlers[kind] == nil {
		l.handlers[kind] = make(map[int]Handler)
	}
	l.handlers[kind][id] = h

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			defer l.mu.Unlock()
			delete(l.handlers[kind], id)
		})
	}
}

// Dispatch calls every handler attached for kind, in attach order.
// Handlers run outside the lock and may detach themselves.
func (l *Listeners) Dispatch(kind EventKind, p state.Point) {
	l.mu.RLock()
	byID := l.handlers[kind]
	ids := make([]int, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	l.mu.RUnlock()

	slices.Sort(ids)
	for _, id := range ids {
		l.mu.RLock()
		h, ok := l.handlers[kind][id]
		l.mu.RUnlock()
		if ok {
			h(p)
		}
	}
}

// Count is the number of attached handlers across all kinds.
func (l *Listeners) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	n := 0
	for _, byID := range l.handlers {
		n += len(byID)
	}
	return n
}
