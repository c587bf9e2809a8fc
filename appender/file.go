package appender

import (
	"fmt"
	"io"
	"sync"

	"github.com/xy-planning-network/lumber"
	"github.com/xy-planning-network/lumber/logger"
	"gopkg.in/natefinch/lumberjack.v2"
)

// A FileConfig describes the file a File appends to and when it is rotated.
type FileConfig struct {
	// Filename is the file to write to. It is required.
	Filename string

	// MaxSize is the size in megabytes the file may reach before it is rotated; default: 100.
	MaxSize int

	// MaxBackups is the number of rotated files kept; default: all of them.
	MaxBackups int

	// MaxAge is the number of days rotated files are kept; default: forever.
	MaxAge int

	// Compress gzips rotated files.
	Compress bool
}

// A File appends one line per message to a file, rotating it as it grows.
type File struct {
	logger.Base

	mu    sync.Mutex
	w     *lumberjack.Logger
	onErr ErrorHandler
}

// NewFile constructs a *File from cfg and attaches it to hub.
// The file is opened on the first message.
func NewFile(hub *logger.Hub, cfg FileConfig) (*File, error) {
	if cfg.Filename == "" {
		return nil, fmt.Errorf("%w: file: filename", lumber.ErrMissingData)
	}

	f := &File{
		w: &lumberjack.Logger{
			Filename:   cfg.Filename,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
			LocalTime:  true,
		},
		onErr: Stderr,
	}

	f.SetFormat(logger.DefaultFormat)
	f.Attach(hub, f)
	return f, nil
}

// Filename returns the file the File writes to.
func (f *File) Filename() string { return f.w.Filename }

// Append writes text on its own line.
func (f *File) Append(_ logger.Level, text string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, err := io.WriteString(f.w, text+"\n"); err != nil && f.onErr != nil {
		f.onErr(fmt.Errorf("file %s: failed to write message: %w", f.w.Filename, err))
	}
}

// Rotate moves the current file aside and starts a new one.
func (f *File) Rotate() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.w.Rotate()
}

// SetErrorHandler replaces the ErrorHandler write failures are reported to.
func (f *File) SetErrorHandler(h ErrorHandler) {
	f.mu.Lock()
	f.onErr = h
	f.mu.Unlock()
}

// Close unregisters the File and closes the file.
func (f *File) Close() error {
	f.Unregister()

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.w.Close()
}
