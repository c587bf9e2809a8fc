package logger

import (
	"fmt"
	"os"
	"strings"

	"github.com/xy-planning-network/lumber"
)

// ParseTailPolicy reads a TailPolicy from its name, "copy" or "truncate", case-insensitively.
func ParseTailPolicy(s string) (TailPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "copy":
		return CopyTail, nil
	case "truncate":
		return TruncateTail, nil
	default:
		return CopyTail, fmt.Errorf("%w: tail policy %q", lumber.ErrNotValid, s)
	}
}

// EnvVarOrLevel gets the environment variable for the provided key,
// parses it with ParseLevel,
// or returns the provided default Level if the value is not a Level.
func EnvVarOrLevel(key string, def Level) Level {
	val := os.Getenv(key)
	if val == "" {
		return def
	}

	l, err := ParseLevel(val)
	if err != nil {
		return def
	}

	return l
}

// EnvVarOrTailPolicy gets the environment variable for the provided key,
// parses it with ParseTailPolicy,
// or returns the provided default TailPolicy if the value is not a TailPolicy.
func EnvVarOrTailPolicy(key string, def TailPolicy) TailPolicy {
	p, err := ParseTailPolicy(os.Getenv(key))
	if err != nil {
		return def
	}

	return p
}
