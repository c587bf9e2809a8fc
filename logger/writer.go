package logger

import (
	"bytes"
	"io"
)

// Writer adapts the Logger to an [io.Writer] logging at level.
// Each line written becomes one message, without its trailing newline.
// Lines are logged as is; '%' in them is never a placeholder.
func (l *Logger) Writer(level Level) io.Writer {
	return &lineWriter{l: l, level: level}
}

type lineWriter struct {
	l     *Logger
	level Level
}

// Write implements the io.Writer interface.
func (w *lineWriter) Write(p []byte) (int, error) {
	if !w.l.Enabled(w.level) {
		return len(p), nil
	}

	trimmed := bytes.TrimRight(p, "\r\n")
	if len(trimmed) == 0 {
		return len(p), nil
	}

	for _, line := range bytes.Split(trimmed, []byte("\n")) {
		w.l.Log(w.level, string(bytes.TrimRight(line, "\r")))
	}

	return len(p), nil
}
