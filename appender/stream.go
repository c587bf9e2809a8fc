package appender

import (
	"sync"
	"sync/atomic"

	"github.com/xy-planning-network/lumber/logger"
)

const defaultStreamBuffer = 64

// A Line is a message delivered to Stream subscribers.
type Line struct {
	Level logger.Level
	Text  string
}

// A Stream fans messages out to subscribers.
// A subscriber whose buffer is full misses the message.
type Stream struct {
	logger.Base

	buffer  int
	dropped uint64

	mu     sync.RWMutex
	subs   map[chan Line]struct{}
	closed bool
}

// NewStream constructs a *Stream giving each subscriber a buffer of buffer Lines and attaches it to hub.
// A buffer of zero or less uses defaultStreamBuffer.
func NewStream(hub *logger.Hub, buffer int) *Stream {
	if buffer <= 0 {
		buffer = defaultStreamBuffer
	}

	s := &Stream{buffer: buffer, subs: make(map[chan Line]struct{})}
	s.SetFormat(logger.DefaultFormat)
	s.Attach(hub, s)
	return s
}

// Subscribe returns a channel receiving every message from now on
// and a func ending the subscription, closing the channel.
func (s *Stream) Subscribe() (<-chan Line, func()) {
	ch := make(chan Line, s.buffer)

	s.mu.Lock()
	if s.closed {
		close(ch)
	} else {
		s.subs[ch] = struct{}{}
	}
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()

			if _, ok := s.subs[ch]; ok {
				delete(s.subs, ch)
				close(ch)
			}
		})
	}

	return ch, cancel
}

// Subscribers returns the number of current subscriptions.
func (s *Stream) Subscribers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}

// Dropped returns the number of deliveries missed by slow subscribers.
func (s *Stream) Dropped() uint64 { return atomic.LoadUint64(&s.dropped) }

// Append delivers text to every subscriber without blocking.
func (s *Stream) Append(level logger.Level, text string) {
	line := Line{Level: level, Text: text}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for ch := range s.subs {
		select {
		case ch <- line:
		default:
			atomic.AddUint64(&s.dropped, 1)
		}
	}
}

// Close unregisters the Stream and ends every subscription.
func (s *Stream) Close() {
	s.Unregister()

	s.mu.Lock()
	defer s.mu.Unlock()

	for ch := range s.subs {
		delete(s.subs, ch)
		close(ch)
	}

	s.closed = true
}
