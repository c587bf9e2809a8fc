package appender_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/lumber"
	"github.com/xy-planning-network/lumber/appender"
	"github.com/xy-planning-network/lumber/logger"
)

type transport struct {
	mu     sync.Mutex
	events []*sentry.Event
}

func (t *transport) Configure(sentry.ClientOptions) {}

func (t *transport) Flush(time.Duration) bool { return true }

func (t *transport) SendEvent(e *sentry.Event) {
	t.mu.Lock()
	t.events = append(t.events, e)
	t.mu.Unlock()
}

func newSentryHub(t *testing.T) (*sentry.Hub, *transport) {
	tr := new(transport)
	client, err := sentry.NewClient(sentry.ClientOptions{Transport: tr})
	require.Nil(t, err)
	return sentry.NewHub(client, sentry.NewScope()), tr
}

func TestSentry(t *testing.T) {
	// Arrange
	hub := newTestHub()
	sh, tr := newSentryHub(t)
	s := appender.NewSentry(hub, sh)
	s.SetFormat("[%c] %m")
	l := hub.Logger("payments")

	// Act
	l.Info("skipped")
	l.Warn("skipped")
	l.Error("charge % failed", 42)
	l.Fatal("down")

	// Assert
	require.Len(t, tr.events, 2)
	require.Equal(t, "[payments] charge 42 failed", tr.events[0].Message)
	require.Equal(t, sentry.LevelError, tr.events[0].Level)
	require.Equal(t, "ERROR", tr.events[0].Tags["level"])
	require.Equal(t, sentry.LevelFatal, tr.events[1].Level)
	require.Nil(t, s.Flush(context.Background()))
}

func TestSentry_Threshold(t *testing.T) {
	// Arrange
	hub := newTestHub()
	sh, tr := newSentryHub(t)
	s := appender.NewSentry(hub, sh, appender.WithThreshold(logger.LevelWarning))
	l := hub.Logger("")

	// Act
	l.Warn("one")
	require.ErrorIs(t, s.SetThreshold(logger.Level(9)), logger.ErrInvalidLevel)
	require.Nil(t, s.SetThreshold(logger.LevelFatal))
	l.Error("two")

	// Assert
	require.Len(t, tr.events, 1)
	require.Equal(t, sentry.LevelWarning, tr.events[0].Level)
	require.Equal(t, logger.LevelFatal, s.Threshold())
}

func TestNewSentryHub_MissingDSN(t *testing.T) {
	// Act
	sh, err := appender.NewSentryHub("", lumber.Testing)

	// Assert
	require.ErrorIs(t, err, lumber.ErrMissingData)
	require.Nil(t, sh)
}
