package logger_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/lumber"
	"github.com/xy-planning-network/lumber/logger"
)

func TestLevelString(t *testing.T) {
	for _, tc := range []struct {
		level    logger.Level
		expected string
	}{
		{logger.LevelTrace, "TRACE"},
		{logger.LevelDebug, "DEBUG"},
		{logger.LevelInfo, "INFO "},
		{logger.LevelWarning, "WARN "},
		{logger.LevelError, "ERROR"},
		{logger.LevelFatal, "FATAL"},
		{logger.LevelOff, "OFF  "},
		{logger.Level(-1), "UNK  "},
		{logger.Level(7), "UNK  "},
	} {
		t.Run(tc.expected, func(t *testing.T) {
			require.Equal(t, tc.expected, tc.level.String())
			require.Len(t, tc.level.String(), 5)
		})
	}
}

func TestLevelOrder(t *testing.T) {
	levels := append(logger.Levels(), logger.LevelOff)
	for i := 1; i < len(levels); i++ {
		require.Less(t, levels[i-1].Int(), levels[i].Int())
		require.True(t, levels[i-1] < levels[i])
	}
}

func TestNewLevel(t *testing.T) {
	for _, tc := range []struct {
		name     string
		input    int
		expected logger.Level
		valid    bool
	}{
		{"Trace", 0, logger.LevelTrace, true},
		{"Warning", 3, logger.LevelWarning, true},
		{"Off", 6, logger.LevelOff, true},
		{"Negative", -1, logger.LevelOff, false},
		{"Too-Large", 7, logger.LevelOff, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			actual, err := logger.NewLevel(tc.input)

			// Assert
			require.Equal(t, tc.expected, actual)
			if tc.valid {
				require.Nil(t, err)
				return
			}

			require.ErrorIs(t, err, logger.ErrInvalidLevel)
			require.ErrorIs(t, err, lumber.ErrNotValid)
		})
	}
}

func TestParseLevel(t *testing.T) {
	for _, tc := range []struct {
		input    string
		expected logger.Level
		valid    bool
	}{
		{"trace", logger.LevelTrace, true},
		{"DEBUG", logger.LevelDebug, true},
		{"INFO ", logger.LevelInfo, true},
		{"warn", logger.LevelWarning, true},
		{"Warning", logger.LevelWarning, true},
		{"error", logger.LevelError, true},
		{"fatal", logger.LevelFatal, true},
		{"off", logger.LevelOff, true},
		{"1", logger.LevelDebug, true},
		{"9", logger.LevelOff, false},
		{"Foobar", logger.LevelOff, false},
		{"", logger.LevelOff, false},
	} {
		t.Run(tc.input, func(t *testing.T) {
			actual, err := logger.ParseLevel(tc.input)
			require.Equal(t, tc.expected, actual)
			if tc.valid {
				require.Nil(t, err)
			} else {
				require.ErrorIs(t, err, logger.ErrInvalidLevel)
			}
		})
	}
}

func TestLevelText(t *testing.T) {
	// Arrange
	v := struct {
		Level logger.Level `json:"level"`
	}{logger.LevelInfo}

	// Act
	b, err := json.Marshal(v)

	// Assert
	require.Nil(t, err)
	require.Equal(t, `{"level":"INFO"}`, string(b))

	// Act
	err = json.Unmarshal([]byte(`{"level":"fatal"}`), &v)

	// Assert
	require.Nil(t, err)
	require.Equal(t, logger.LevelFatal, v.Level)

	// Act
	err = json.Unmarshal([]byte(`{"level":"loud"}`), &v)

	// Assert
	require.ErrorIs(t, err, logger.ErrInvalidLevel)
}
