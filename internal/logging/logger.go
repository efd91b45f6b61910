// Package logging provides the leveled logger used across srindex. Log lines
// go to stderr so stdout stays free for index output; an optional log file
// receives the same lines without colors.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/backmassage/srindex/internal/config"
	"github.com/backmassage/srindex/internal/term"
)

const timestampFormat = "2006-01-02 15:04:05"

// Logger provides leveled, optionally colored logging with optional file sink.
type Logger struct {
	log  *logrus.Logger
	file *os.File
}

// NewLogger configures colors from cfg and optionally opens cfg.LogFile in
// append mode. Call Close when done.
func NewLogger(cfg *config.Config) (*Logger, error) {
	return newLogger(cfg, os.Stderr, term.Resolve(cfg.ColorMode, os.Stderr))
}

func newLogger(cfg *config.Config, out io.Writer, color bool) (*Logger, error) {
	lg := logrus.New()
	lg.SetOutput(out)
	lg.SetFormatter(&logrus.TextFormatter{
		ForceColors:     color,
		DisableColors:   !color,
		FullTimestamp:   true,
		TimestampFormat: timestampFormat,
	})
	lg.SetLevel(logrus.InfoLevel)
	if cfg.Verbose {
		lg.SetLevel(logrus.DebugLevel)
	}

	l := &Logger{log: lg}
	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		l.file = f
		lg.AddHook(newFileHook(f))
	}
	return l, nil
}

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// Info logs at INFO level.
func (l *Logger) Info(format string, args ...interface{}) {
	l.log.Infof(format, args...)
}

// Success logs at INFO level tagged ok=true.
func (l *Logger) Success(format string, args ...interface{}) {
	l.log.WithField("ok", true).Infof(format, args...)
}

// Warn logs at WARN level.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log.Warnf(format, args...)
}

// Error logs at ERROR level.
func (l *Logger) Error(format string, args ...interface{}) {
	l.log.Errorf(format, args...)
}

// Debug logs at DEBUG level; dropped unless the config was verbose.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log.Debugf(format, args...)
}

// WithFields logs msg at INFO level with structured fields.
func (l *Logger) WithFields(fields map[string]interface{}, msg string) {
	l.log.WithFields(logrus.Fields(fields)).Info(msg)
}

// fileHook mirrors every entry to a file with an uncolored formatter.
type fileHook struct {
	mu        sync.Mutex
	w         io.Writer
	formatter logrus.Formatter
}

func newFileHook(w io.Writer) *fileHook {
	return &fileHook{
		w: w,
		formatter: &logrus.TextFormatter{
			DisableColors:   true,
			FullTimestamp:   true,
			TimestampFormat: timestampFormat,
		},
	}
}

func (h *fileHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h *fileHook) Fire(e *logrus.Entry) error {
	b, err := h.formatter.Format(e)
	if err != nil {
		return fmt.Errorf("format log entry: %w", err)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	_, err = h.w.Write(b)
	return err
}
