package middleware

import (
	"fmt"

	"github.com/gorilla/handlers"
	"github.com/xy-planning-network/lumber/logger"
)

// Recover responds with 500 Internal Server Error when a handler panics,
// logging the panic at ERROR using l.
//
// if l is nil, panics are recovered silently.
func Recover(l *logger.Logger) Adapter {
	return handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{l}),
		handlers.PrintRecoveryStack(false),
	)
}

// recoveryLogger implements handlers.RecoveryHandlerLogger.
type recoveryLogger struct{ l *logger.Logger }

func (rl recoveryLogger) Println(v ...interface{}) {
	if rl.l == nil {
		return
	}

	rl.l.Error("recovered from panic: " + fmt.Sprint(v...))
}
