package appender

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/xy-planning-network/lumber/logger"
)

// levelAttrs colors each Level, indexed by rank.
var levelAttrs = [...][]color.Attribute{
	logger.LevelTrace:   {color.Bold, color.FgWhite},
	logger.LevelDebug:   {color.Bold, color.FgWhite},
	logger.LevelInfo:    {color.Bold, color.FgGreen},
	logger.LevelWarning: {color.Bold, color.FgYellow},
	logger.LevelError:   {color.Bold, color.FgRed},
	logger.LevelFatal:   {color.Bold, color.FgRed},
	logger.LevelOff:     {color.Bold, color.FgRed},
}

// A Console writes one line per message to an io.Writer,
// optionally colored by Level with ANSI escape codes.
type Console struct {
	logger.Base

	mu     sync.Mutex
	w      io.Writer
	colors []*color.Color
	onErr  ErrorHandler
}

// NewConsole constructs a *Console writing to w and attaches it to hub.
//
// When colored is true, messages are colored regardless of whether w is a terminal.
func NewConsole(hub *logger.Hub, w io.Writer, colored bool) *Console {
	c := &Console{w: w, onErr: Stderr}
	if colored {
		c.colors = make([]*color.Color, len(levelAttrs))
		for i, attrs := range levelAttrs {
			c.colors[i] = color.New(attrs...)
			c.colors[i].EnableColor()
		}
	}

	c.SetFormat(logger.DefaultFormat)
	c.Attach(hub, c)
	return c
}

// Begin writes an empty line, separating what follows from earlier output.
func (c *Console) Begin() {
	c.write("\n")
}

// Append writes text on its own line.
func (c *Console) Append(level logger.Level, text string) {
	if c.colors != nil && level.Valid() == nil {
		text = c.colors[level.Int()].Sprint(text)
	}

	c.write(text + "\n")
}

// SetErrorHandler replaces the ErrorHandler write failures are reported to.
func (c *Console) SetErrorHandler(h ErrorHandler) {
	c.mu.Lock()
	c.onErr = h
	c.mu.Unlock()
}

func (c *Console) write(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := io.WriteString(c.w, s); err != nil && c.onErr != nil {
		c.onErr(fmt.Errorf("console: failed to write message: %w", err))
	}
}
