package appender

import (
	"context"
	"fmt"
	"os"

	"github.com/xy-planning-network/lumber/logger"
)

var (
	_ Flusher = (*Topic)(nil)
	_ Flusher = (*Store)(nil)
	_ Flusher = (*Sentry)(nil)
)

// An ErrorHandler deals with failures an Appender cannot return to its caller.
type ErrorHandler func(error)

// Stderr is the default ErrorHandler. It prints err to os.Stderr.
func Stderr(err error) {
	fmt.Fprintln(os.Stderr, err)
}

// A Flusher is an Appender delivering buffered messages only when flushed.
type Flusher interface {
	logger.Appender
	Flush(ctx context.Context) error
}
