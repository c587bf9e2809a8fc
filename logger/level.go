package logger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xy-planning-network/lumber"
)

var (
	_ lumber.Enumerable = Level(0)

	// ErrInvalidLevel is returned when a Level is constructed from a value outside [LevelTrace, LevelOff].
	ErrInvalidLevel = fmt.Errorf("%w: level", lumber.ErrNotValid)
)

// A Level ranks the severity of a log message.
// Levels compare by rank: LevelTrace is the least severe,
// LevelOff is a sentinel nothing passes.
type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarning
	LevelError
	LevelFatal
	LevelOff
)

// Every name has the same width so columns line up in rendered output.
var levelNames = [...]string{
	LevelTrace:   "TRACE",
	LevelDebug:   "DEBUG",
	LevelInfo:    "INFO ",
	LevelWarning: "WARN ",
	LevelError:   "ERROR",
	LevelFatal:   "FATAL",
	LevelOff:     "OFF  ",
}

// NewLevel converts the rank i into a Level.
// Values outside of [LevelTrace, LevelOff] are rejected with ErrInvalidLevel.
func NewLevel(i int) (Level, error) {
	l := Level(i)
	if err := l.Valid(); err != nil {
		return LevelOff, fmt.Errorf("%w: %d", err, i)
	}

	return l, nil
}

// ParseLevel reads a Level from its name, case-insensitively, or from its decimal rank.
// Surrounding whitespace and the padding in fixed-width names are ignored.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return LevelTrace, nil
	case "DEBUG":
		return LevelDebug, nil
	case "INFO":
		return LevelInfo, nil
	case "WARN", "WARNING":
		return LevelWarning, nil
	case "ERROR":
		return LevelError, nil
	case "FATAL":
		return LevelFatal, nil
	case "OFF":
		return LevelOff, nil
	}

	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return LevelOff, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}

	return NewLevel(i)
}

// Levels lists every Level a message can be logged at, from least to most severe.
func Levels() []Level {
	return []Level{LevelTrace, LevelDebug, LevelInfo, LevelWarning, LevelError, LevelFatal}
}

// Int returns the rank of the Level, suitable for indexing tables ordered by Level.
func (l Level) Int() int { return int(l) }

// String returns the fixed-width display name of the Level.
func (l Level) String() string {
	if l.Valid() != nil {
		return "UNK  "
	}

	return levelNames[l]
}

// Valid asserts the Level is one of the enumerated constants.
func (l Level) Valid() error {
	if l < LevelTrace || l > LevelOff {
		return ErrInvalidLevel
	}

	return nil
}

// MarshalText renders the Level's name without padding.
//
// MarshalText implements [encoding.TextMarshaler].
func (l Level) MarshalText() ([]byte, error) {
	if err := l.Valid(); err != nil {
		return nil, err
	}

	return []byte(strings.TrimSpace(l.String())), nil
}

// UnmarshalText parses a Level with ParseLevel.
//
// UnmarshalText implements [encoding.TextUnmarshaler].
func (l *Level) UnmarshalText(b []byte) error {
	parsed, err := ParseLevel(string(b))
	if err != nil {
		return err
	}

	*l = parsed
	return nil
}
