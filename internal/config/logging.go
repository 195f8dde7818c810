package config

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// NewLogger builds the structured logger described by l. When File is set
// the log is appended there and the returned closer releases it; otherwise
// output goes to fallback.
func (l Log) NewLogger(fallback io.Writer, prefix string) (*log.Logger, io.Closer, error) {
	level := log.InfoLevel
	if l.Level != "" {
		lv, err := log.ParseLevel(l.Level)
		if err != nil {
			return nil, nil, fmt.Errorf("log level: %w", err)
		}
		level = lv
	}

	w, closer := fallback, io.Closer(nopCloser{})
	if l.File != "" {
		f, err := os.OpenFile(l.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, closer = f, f
	}
	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          prefix,
		ReportTimestamp: true,
	})
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
