package logger

import (
	"sync/atomic"
	"time"
)

// Default is the Hub shared by Loggers constructed with New.
var Default = NewHub()

// A Hub is the context Loggers log through.
// It holds the minimum Level, the TimeFunc and the Registry of Appenders
// every Logger constructed from it shares.
//
// A Hub is safe for concurrent use.
type Hub struct {
	// level is the minimum Level, treated as a sync/atomic int32.
	level int32

	// timeFn holds a timeSource.
	timeFn atomic.Value

	tail     TailPolicy
	registry *Registry
}

// timeSource wraps a TimeFunc so atomic.Value always stores the same concrete type.
type timeSource struct{ fn TimeFunc }

// NewHub constructs a *Hub.
//
// By default, the minimum Level is LevelDebug,
// the time is the milliseconds since NewHub was called,
// and messages copy placeholders left without arguments.
func NewHub(opts ...HubOptFn) *Hub {
	h := &Hub{
		level:    int32(LevelDebug),
		registry: NewRegistry(),
	}
	h.timeFn.Store(timeSource{Uptime(time.Now())})

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Level returns the minimum Level messages must be logged at to reach Appenders.
func (h *Hub) Level() Level { return Level(atomic.LoadInt32(&h.level)) }

// SetLevel replaces the minimum Level for every Logger of the Hub.
// Setting LevelOff silences them.
func (h *Hub) SetLevel(l Level) error {
	if err := l.Valid(); err != nil {
		return err
	}

	atomic.StoreInt32(&h.level, int32(l))
	return nil
}

// Enabled asserts whether a message logged at l reaches Appenders.
func (h *Hub) Enabled(l Level) bool {
	return l >= h.Level() && l < LevelOff
}

// SetTimeFunc replaces the TimeFunc for every Logger of the Hub.
// A nil fn omits the time.
func (h *Hub) SetTimeFunc(fn TimeFunc) {
	if fn == nil {
		fn = NoTime
	}

	h.timeFn.Store(timeSource{fn})
}

// Time calls the current TimeFunc.
func (h *Hub) Time() string {
	return h.timeFn.Load().(timeSource).fn()
}

// TailPolicy returns the TailPolicy messages are built with.
func (h *Hub) TailPolicy() TailPolicy { return h.tail }

// AddAppender registers a with the Hub, returning its ID.
//
// The Hub does not own a.
// Prefer [*Base.Attach] for Appenders embedding Base, so they can unregister themselves.
func (h *Hub) AddAppender(a Appender) ID { return h.registry.Add(a) }

// RemoveAppender unregisters the Appender paired to id.
// Removing an unknown ID does nothing.
func (h *Hub) RemoveAppender(id ID) { h.registry.Remove(id) }

// Appender retrieves the Appender registered under id.
func (h *Hub) Appender(id ID) (Appender, bool) { return h.registry.Get(id) }

// Appenders lists the registered Appenders in registration order.
func (h *Hub) Appenders() []Registered { return h.registry.Snapshot() }

// Logger constructs a *Logger labeling its messages with ctx.
func (h *Hub) Logger(ctx string) *Logger {
	return &Logger{hub: h, ctx: ctx}
}
