// Package session broadcasts "session no longer valid" events from the RPC
// layer to whoever renders them (the CLI alert, tests).
package session

import (
	"log/slog"
	"reflect"
	"sync"
)

// Event describes an authentication failure that requires a new login
type Event struct {
	// From is the location the user was at when the session died
	From      string
	Message   string
	LoginPath string
	Scope     string
}

// Handler receives unauthorized events
type Handler interface {
	HandleUnauthorized(Event)
}

// HandlerFunc adapts a function to Handler.
// Функции в Go несравнимы, поэтому каждая подписка HandlerFunc - отдельная запись.
type HandlerFunc func(Event)

// HandleUnauthorized calls f(e)
func (f HandlerFunc) HandleUnauthorized(e Event) {
	f(e)
}

type subscription struct {
	handler Handler
}

// Bus is a synchronous publish/subscribe channel for Event.
// Subscribing the same comparable handler twice keeps a single entry.
type Bus struct {
	logger *slog.Logger
	subs   map[any]*subscription
	mu     sync.RWMutex
}

// NewBus creates an empty bus
func NewBus(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		logger: logger,
		subs:   make(map[any]*subscription),
	}
}

// Subscribe registers h and returns a function removing it.
// The returned function is idempotent.
func (b *Bus) Subscribe(h Handler) func() {
	if h == nil {
		return func() {}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	var key any
	// Проверяется значение, а не тип: интерфейсное поле с функцией несравнимо
	if reflect.ValueOf(h).Comparable() {
		key = h
		if _, ok := b.subs[key]; ok {
			return b.unsubscribeFunc(key)
		}
	}

	sub := &subscription{handler: h}
	if key == nil {
		key = sub
	}
	b.subs[key] = sub

	return b.unsubscribeFunc(key)
}

func (b *Bus) unsubscribeFunc(key any) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, key)
			b.mu.Unlock()
		})
	}
}

// Publish delivers e to every handler registered at call time.
// Handlers run synchronously, in unspecified order, outside the lock.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	if len(b.subs) == 0 {
		b.mu.RUnlock()
		return
	}
	handlers := make([]Handler, 0, len(b.subs))
	for _, sub := range b.subs {
		handlers = append(handlers, sub.handler)
	}
	b.mu.RUnlock()

	b.logger.Debug("publishing unauthorized event",
		"scope", e.Scope,
		"login_path", e.LoginPath,
		"handlers", len(handlers),
	)

	for _, h := range handlers {
		h.HandleUnauthorized(e)
	}
}

// Len returns the number of registered handlers
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
