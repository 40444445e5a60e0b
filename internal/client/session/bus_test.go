package session

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recorder struct {
	events []Event
	mu     sync.Mutex
}

func (r *recorder) HandleUnauthorized(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func TestBus_PublishWithoutSubscribers(t *testing.T) {
	bus := NewBus(nil)
	assert.NotPanics(t, func() {
		bus.Publish(Event{Message: "nobody listens"})
	})
	assert.Equal(t, 0, bus.Len())
}

func TestBus_DeliversToAllSubscribers(t *testing.T) {
	bus := NewBus(nil)
	a, b := &recorder{}, &recorder{}
	bus.Subscribe(a)
	bus.Subscribe(b)

	e := Event{From: "/users", Message: "please log in again", LoginPath: "/admin-login", Scope: "admin"}
	bus.Publish(e)

	require.Len(t, a.events, 1)
	require.Len(t, b.events, 1)
	assert.Equal(t, e, a.events[0])
	assert.Equal(t, e, b.events[0])
}

func TestBus_SameHandlerSubscribedOnce(t *testing.T) {
	bus := NewBus(nil)
	r := &recorder{}

	unsub1 := bus.Subscribe(r)
	unsub2 := bus.Subscribe(r)
	assert.Equal(t, 1, bus.Len())

	bus.Publish(Event{})
	assert.Equal(t, 1, r.count())

	unsub1()
	unsub2()
	assert.Equal(t, 0, bus.Len())
}

// callbackHandler has a comparable type, but its value is not when cb holds a func
type callbackHandler struct {
	cb any
}

func (h callbackHandler) HandleUnauthorized(e Event) {
	if fn, ok := h.cb.(func(Event)); ok {
		fn(e)
	}
}

func TestBus_HandlerWithUncomparableValue(t *testing.T) {
	bus := NewBus(nil)
	var calls atomic.Int32
	h := callbackHandler{cb: func(Event) { calls.Add(1) }}

	var unsub1, unsub2 func()
	require.NotPanics(t, func() {
		unsub1 = bus.Subscribe(h)
		unsub2 = bus.Subscribe(h)
	})
	assert.Equal(t, 2, bus.Len())

	bus.Publish(Event{})
	assert.Equal(t, int32(2), calls.Load())

	unsub1()
	assert.Equal(t, 1, bus.Len())
	unsub2()
	assert.Equal(t, 0, bus.Len())
}

func TestBus_ComparableStructHandlerSubscribedOnce(t *testing.T) {
	bus := NewBus(nil)
	h := callbackHandler{cb: "not a func"}

	bus.Subscribe(h)
	bus.Subscribe(h)
	assert.Equal(t, 1, bus.Len())
}

func TestBus_HandlerFuncsAreDistinct(t *testing.T) {
	bus := NewBus(nil)
	var calls atomic.Int32
	fn := HandlerFunc(func(Event) { calls.Add(1) })

	bus.Subscribe(fn)
	bus.Subscribe(fn)
	bus.Publish(Event{})

	assert.Equal(t, int32(2), calls.Load())
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus(nil)
	r := &recorder{}
	var calls atomic.Int32

	unsubRecorder := bus.Subscribe(r)
	unsubFunc := bus.Subscribe(HandlerFunc(func(Event) { calls.Add(1) }))

	unsubRecorder()
	unsubRecorder()
	bus.Publish(Event{})
	assert.Equal(t, 0, r.count())
	assert.Equal(t, int32(1), calls.Load())

	unsubFunc()
	bus.Publish(Event{})
	assert.Equal(t, int32(1), calls.Load())
}

func TestBus_SubscribeNil(t *testing.T) {
	bus := NewBus(nil)
	unsub := bus.Subscribe(nil)
	unsub()
	assert.Equal(t, 0, bus.Len())
}

func TestBus_SnapshotAtPublishTime(t *testing.T) {
	bus := NewBus(nil)
	late := &recorder{}
	var unsubSelf func()
	var first atomic.Int32

	// Обработчик, подписывающий нового и отписывающий себя во время publish
	unsubSelf = bus.Subscribe(HandlerFunc(func(Event) {
		first.Add(1)
		bus.Subscribe(late)
		unsubSelf()
	}))

	bus.Publish(Event{})
	assert.Equal(t, int32(1), first.Load())
	assert.Equal(t, 0, late.count())

	bus.Publish(Event{})
	assert.Equal(t, int32(1), first.Load())
	assert.Equal(t, 1, late.count())
}

func TestBus_ConcurrentUse(t *testing.T) {
	bus := NewBus(nil)
	r := &recorder{}
	bus.Subscribe(r)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unsub := bus.Subscribe(HandlerFunc(func(Event) {}))
			bus.Publish(Event{Scope: "user"})
			unsub()
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, r.count())
	assert.Equal(t, 1, bus.Len())
}
