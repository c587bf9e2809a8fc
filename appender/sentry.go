package appender

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/xy-planning-network/lumber"
	"github.com/xy-planning-network/lumber/logger"
)

// defaultSentryFlush bounds Flush when ctx carries no deadline.
const defaultSentryFlush = 2 * time.Second

var errSentryFlush = errors.New("sentry: flush timed out")

// sentryLevels maps each Level, indexed by rank, to its Sentry counterpart.
var sentryLevels = [...]sentry.Level{
	logger.LevelTrace:   sentry.LevelDebug,
	logger.LevelDebug:   sentry.LevelDebug,
	logger.LevelInfo:    sentry.LevelInfo,
	logger.LevelWarning: sentry.LevelWarning,
	logger.LevelError:   sentry.LevelError,
	logger.LevelFatal:   sentry.LevelFatal,
	logger.LevelOff:     sentry.LevelFatal,
}

// A Sentry captures messages at or above a threshold Level as Sentry events.
type Sentry struct {
	logger.Base

	sh *sentry.Hub

	mu        sync.RWMutex
	threshold logger.Level
}

// A SentryOptFn configures a *Sentry.
type SentryOptFn func(*Sentry)

// WithThreshold sets the lowest Level captured; default: ERROR.
// An invalid Level is ignored.
func WithThreshold(level logger.Level) SentryOptFn {
	return func(s *Sentry) {
		if level.Valid() == nil {
			s.threshold = level
		}
	}
}

// NewSentryHub constructs a *sentry.Hub reporting to dsn, tagged with env.
func NewSentryHub(dsn string, env lumber.Environment) (*sentry.Hub, error) {
	if dsn == "" {
		return nil, fmt.Errorf("%w: sentry: dsn", lumber.ErrMissingData)
	}

	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: env.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: sentry: %s", lumber.ErrBadConfig, err)
	}

	return sentry.NewHub(client, sentry.NewScope()), nil
}

// NewSentry constructs a *Sentry capturing with sh and attaches it to hub.
func NewSentry(hub *logger.Hub, sh *sentry.Hub, opts ...SentryOptFn) *Sentry {
	s := &Sentry{sh: sh, threshold: logger.LevelError}
	for _, opt := range opts {
		opt(s)
	}

	s.SetFormat(logger.DefaultFormat)
	s.Attach(hub, s)
	return s
}

// Threshold returns the lowest Level captured.
func (s *Sentry) Threshold() logger.Level {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.threshold
}

// SetThreshold changes the lowest Level captured.
func (s *Sentry) SetThreshold(level logger.Level) error {
	if err := level.Valid(); err != nil {
		return err
	}

	s.mu.Lock()
	s.threshold = level
	s.mu.Unlock()
	return nil
}

// Append captures text as a Sentry message when level reaches the threshold.
func (s *Sentry) Append(level logger.Level, text string) {
	if s.sh == nil || level.Valid() != nil || level < s.Threshold() {
		return
	}

	// NOTE: a clone keeps concurrent Appends from sharing a scope.
	local := s.sh.Clone()
	scope := local.Scope()
	scope.SetLevel(sentryLevels[level.Int()])
	scope.SetTag("level", strings.TrimSpace(level.String()))
	local.CaptureMessage(text)
}

// Flush waits for captured events to be delivered, until ctx's deadline.
func (s *Sentry) Flush(ctx context.Context) error {
	if s.sh == nil {
		return nil
	}

	timeout := defaultSentryFlush
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}

	if !s.sh.Flush(timeout) {
		return errSentryFlush
	}

	return nil
}

// Close unregisters the Sentry and flushes pending events.
func (s *Sentry) Close(ctx context.Context) error {
	s.Unregister()
	return s.Flush(ctx)
}
