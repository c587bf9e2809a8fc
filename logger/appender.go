package logger

import "sync"

//go:generate mockgen -destination=mock/appender.go -package=mock . Appender

// An Appender is a destination for rendered log messages.
//
// Append is called synchronously by a Logger with the message rendered through the Appender's format.
// Append must not return until it is done with text;
// an Appender deals with its own failures.
type Appender interface {
	Append(level Level, text string)
	Format() string
	SetFormat(format string)
}

// Base provides the bookkeeping every Appender needs:
// the format string and the registration with a Hub.
//
// Embed Base in an Appender and call Attach from its constructor:
//
//	func NewMine(hub *logger.Hub) *Mine {
//		m := new(Mine)
//		m.SetFormat(logger.DefaultFormat)
//		m.Attach(hub, m)
//		return m
//	}
type Base struct {
	mu     sync.RWMutex
	format string
	hub    *Hub
	id     ID
}

// Attach registers a, the Appender embedding b, with hub.
// An Appender already attached is first unregistered.
// Attaching to a nil hub leaves a detached.
func (b *Base) Attach(hub *Hub, a Appender) ID {
	b.Unregister()
	if hub == nil || a == nil {
		return NoID
	}

	id := hub.AddAppender(a)

	b.mu.Lock()
	b.hub, b.id = hub, id
	b.mu.Unlock()

	return id
}

// Unregister removes the Appender from the Hub it is attached to.
// Calling Unregister on a detached Appender does nothing.
func (b *Base) Unregister() {
	b.mu.Lock()
	hub, id := b.hub, b.id
	b.hub, b.id = nil, NoID
	b.mu.Unlock()

	if hub != nil {
		hub.RemoveAppender(id)
	}
}

// ID returns the ID the Appender is registered under, or NoID.
func (b *Base) ID() ID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.id
}

// Hub returns the Hub the Appender is attached to, or nil.
func (b *Base) Hub() *Hub {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.hub
}

// Format returns the format messages are rendered with for the Appender.
func (b *Base) Format() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.format
}

// SetFormat replaces the format messages are rendered with for the Appender.
func (b *Base) SetFormat(format string) {
	b.mu.Lock()
	b.format = format
	b.mu.Unlock()
}
