package appender_test

import (
	"github.com/xy-planning-network/lumber/logger"
)

// newTestHub returns a Hub at TRACE whose timestamps are always 123456789.
func newTestHub() *logger.Hub {
	return logger.NewHub(
		logger.WithLevel(logger.LevelTrace),
		logger.WithTimeFunc(logger.Static("123456789")),
	)
}

// stamp is what the default format renders the time of newTestHub as.
const stamp = "00000000000123456789"
