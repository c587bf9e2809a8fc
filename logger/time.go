package logger

import (
	"strconv"
	"time"
)

// A TimeFunc produces the text substituted for the %t directive.
// Returning an empty string omits the time.
type TimeFunc func() string

// Uptime returns a TimeFunc rendering the milliseconds elapsed since start.
// It reads the monotonic clock, so wall clock adjustments do not affect it.
func Uptime(start time.Time) TimeFunc {
	return func() string {
		return strconv.FormatInt(time.Since(start).Milliseconds(), 10)
	}
}

// Clock returns a TimeFunc rendering the wall clock with layout.
// See [time.Layout] for how to write one.
func Clock(layout string) TimeFunc {
	return func() string {
		return time.Now().Format(layout)
	}
}

// Static returns a TimeFunc that always renders s.
func Static(s string) TimeFunc {
	return func() string { return s }
}

// NoTime is a TimeFunc omitting the time.
func NoTime() string { return "" }
