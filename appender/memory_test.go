package appender_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/lumber/appender"
)

func TestMemory(t *testing.T) {
	// Arrange
	hub := newTestHub()
	m := appender.NewMemory(hub, 2)
	m.SetFormat("%l %m")
	l := hub.Logger("")

	// Act
	l.Info("one")
	l.Warn("two")
	l.Error("three")

	// Assert
	require.Equal(t, []string{"WARN  two", "ERROR three"}, m.Lines())

	m.Reset()
	require.Empty(t, m.Lines())
}
