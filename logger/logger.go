package logger

// A Logger labels the messages it logs with a context and dispatches them
// to every Appender registered with its Hub.
type Logger struct {
	hub *Hub
	ctx string
}

// New constructs a *Logger on the Default Hub labeling its messages with ctx.
func New(ctx string) *Logger { return Default.Logger(ctx) }

// Context returns the label the Logger substitutes for the %c directive.
func (l *Logger) Context() string { return l.ctx }

// Hub returns the Hub the Logger dispatches through.
func (l *Logger) Hub() *Hub { return l.hub }

// WithContext constructs a *Logger on the same Hub labeling its messages with ctx.
func (l *Logger) WithContext(ctx string) *Logger {
	return &Logger{hub: l.hub, ctx: ctx}
}

// Enabled asserts whether a message logged at level reaches Appenders.
func (l *Logger) Enabled(level Level) bool { return l.hub.Enabled(level) }

// Log renders template against args and dispatches the result to every Appender.
//
// Nothing happens, args are not even rendered, when level is below the Hub's minimum Level or not below LevelOff.
// Otherwise, each Appender registered when Log is called receives the message rendered through its own format,
// in the order the Appenders were registered.
// The message and the time are computed at most once per call, and only if a format asks for them.
func (l *Logger) Log(level Level, template string, args ...any) {
	if !l.hub.Enabled(level) {
		return
	}

	appenders := l.hub.registry.Snapshot()
	if len(appenders) == 0 {
		return
	}

	var (
		msg, ts      string
		built, timed bool
	)
	e := Entry{
		Level:   level,
		Context: l.ctx,
		Time: func() string {
			if !timed {
				ts, timed = l.hub.Time(), true
			}
			return ts
		},
		Message: func() string {
			if !built {
				msg, built = BuildMessage(l.hub.tail, template, args...), true
			}
			return msg
		},
	}

	for _, r := range appenders {
		r.Appender.Append(level, Render(r.Appender.Format(), e))
	}
}

// Trace logs a trace message.
func (l *Logger) Trace(template string, args ...any) { l.Log(LevelTrace, template, args...) }

// Debug logs a debug message.
func (l *Logger) Debug(template string, args ...any) { l.Log(LevelDebug, template, args...) }

// Info logs an info message.
func (l *Logger) Info(template string, args ...any) { l.Log(LevelInfo, template, args...) }

// Warn logs a warning message.
func (l *Logger) Warn(template string, args ...any) { l.Log(LevelWarning, template, args...) }

// Error logs an error message.
func (l *Logger) Error(template string, args ...any) { l.Log(LevelError, template, args...) }

// Fatal logs a fatal message.
// Fatal does not stop the program; that is left to the caller.
func (l *Logger) Fatal(template string, args ...any) { l.Log(LevelFatal, template, args...) }
