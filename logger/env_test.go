package logger_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/lumber"
	"github.com/xy-planning-network/lumber/logger"
)

func TestEnvVarOrLevel(t *testing.T) {
	tcs := []struct {
		name     string
		val      string
		expected logger.Level
	}{
		{"Unset", "", logger.LevelInfo},
		{"Name", "debug", logger.LevelDebug},
		{"Rank", "4", logger.LevelError},
		{"Unknown", "LOUD", logger.LevelInfo},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			t.Setenv("LUMBER_TEST_LEVEL", tc.val)

			// Act
			actual := logger.EnvVarOrLevel("LUMBER_TEST_LEVEL", logger.LevelInfo)

			// Assert
			require.Equal(t, tc.expected, actual)
		})
	}
}

func TestParseTailPolicy(t *testing.T) {
	// Act
	truncate, err := logger.ParseTailPolicy(" Truncate ")
	require.Nil(t, err)
	cp, err := logger.ParseTailPolicy("copy")
	require.Nil(t, err)
	_, err = logger.ParseTailPolicy("drop")

	// Assert
	require.Equal(t, logger.TruncateTail, truncate)
	require.Equal(t, logger.CopyTail, cp)
	require.ErrorIs(t, err, lumber.ErrNotValid)
}

func TestEnvVarOrTailPolicy(t *testing.T) {
	// Arrange
	t.Setenv("LUMBER_TEST_TAIL", "truncate")

	// Act
	set := logger.EnvVarOrTailPolicy("LUMBER_TEST_TAIL", logger.CopyTail)
	unset := logger.EnvVarOrTailPolicy("LUMBER_TEST_TAIL_UNSET", logger.CopyTail)

	// Assert
	require.Equal(t, logger.TruncateTail, set)
	require.Equal(t, logger.CopyTail, unset)
}
