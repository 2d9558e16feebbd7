package event

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"categoryassign/internal/logging"
)

// Listener handles one event. Returning false vetoes the event.
type Listener func(ctx context.Context, e Event) bool

// Subscriber declares listeners keyed by event name.
type Subscriber interface {
	SubscribedEvents() map[string]Listener
}

// Dispatcher delivers events to registered listeners.
type Dispatcher struct {
	mu        sync.RWMutex
	listeners map[string][]Listener
	logger    *slog.Logger
}

// NewDispatcher returns an empty dispatcher.
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		listeners: map[string][]Listener{},
		logger:    logging.NewComponentLogger(logger, "dispatcher"),
	}
}

// AddListener registers fn for the named event.
func (d *Dispatcher) AddListener(name string, fn Listener) {
	name = strings.TrimSpace(name)
	if name == "" || fn == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners[name] = append(d.listeners[name], fn)
}

// Subscribe registers every listener a subscriber declares.
func (d *Dispatcher) Subscribe(sub Subscriber) {
	if sub == nil {
		return
	}
	for name, fn := range sub.SubscribedEvents() {
		d.AddListener(name, fn)
	}
}

// HasListeners reports whether any listener is registered for name.
func (d *Dispatcher) HasListeners(name string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.listeners[name]) > 0
}

// Dispatch calls the listeners for e in registration order. It returns false
// as soon as a listener vetoes; remaining listeners are not called.
func (d *Dispatcher) Dispatch(ctx context.Context, e Event) bool {
	if e == nil {
		return true
	}
	d.mu.RLock()
	listeners := append([]Listener(nil), d.listeners[e.Name()]...)
	d.mu.RUnlock()

	for idx, fn := range listeners {
		if !fn(ctx, e) {
			logging.WithContext(ctx, d.logger).Debug("event vetoed",
				logging.String("event", e.Name()),
				logging.Int("listener", idx),
			)
			return false
		}
	}
	return true
}
