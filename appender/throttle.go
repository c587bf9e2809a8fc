package appender

import (
	"sync/atomic"

	"github.com/xy-planning-network/lumber/logger"
	"golang.org/x/time/rate"
)

// A Throttle forwards messages to another Appender while its limiter allows,
// dropping the rest.
//
// The inner Appender should be detached, otherwise it receives every message twice.
type Throttle struct {
	logger.Base

	limiter *rate.Limiter
	next    logger.Appender
	dropped uint64
}

// NewThrottle constructs a *Throttle forwarding to next and attaches it to hub.
func NewThrottle(hub *logger.Hub, limiter *rate.Limiter, next logger.Appender) *Throttle {
	t := &Throttle{limiter: limiter, next: next}
	t.SetFormat(next.Format())
	t.Attach(hub, t)
	return t
}

// A thresholder ignores messages below its Threshold.
type thresholder interface {
	Threshold() logger.Level
}

// Append forwards text when the limiter allows.
// Messages below the Threshold of an inner Sentry are discarded without spending the limiter.
func (t *Throttle) Append(level logger.Level, text string) {
	if th, ok := t.next.(thresholder); ok && level < th.Threshold() {
		return
	}

	if !t.limiter.Allow() {
		atomic.AddUint64(&t.dropped, 1)
		return
	}

	t.next.Append(level, text)
}

// SetFormat changes the format of the Throttle and the Appender it forwards to.
func (t *Throttle) SetFormat(format string) {
	t.Base.SetFormat(format)
	t.next.SetFormat(format)
}

// Dropped returns the number of messages dropped so far.
func (t *Throttle) Dropped() uint64 { return atomic.LoadUint64(&t.dropped) }

// Next returns the Appender messages are forwarded to.
func (t *Throttle) Next() logger.Appender { return t.next }
