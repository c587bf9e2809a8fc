package appender

import (
	"sync"

	"github.com/xy-planning-network/lumber/logger"
)

const defaultMemorySize = 100

// A Memory keeps the most recent messages in memory.
type Memory struct {
	logger.Base

	size int

	mu    sync.Mutex
	lines []string
}

// NewMemory constructs a *Memory keeping at most size messages and attaches it to hub.
// A size of zero or less keeps defaultMemorySize messages.
func NewMemory(hub *logger.Hub, size int) *Memory {
	if size <= 0 {
		size = defaultMemorySize
	}

	m := &Memory{size: size}
	m.SetFormat(logger.DefaultFormat)
	m.Attach(hub, m)
	return m
}

// Append keeps text, forgetting the oldest message when full.
func (m *Memory) Append(_ logger.Level, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lines = append(m.lines, text)
	if over := len(m.lines) - m.size; over > 0 {
		m.lines = m.lines[over:]
	}
}

// Lines returns the kept messages, oldest first.
func (m *Memory) Lines() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.lines...)
}

// Reset forgets every kept message.
func (m *Memory) Reset() {
	m.mu.Lock()
	m.lines = nil
	m.mu.Unlock()
}
