// Package logging builds the application logger: leveled, timestamped
// output to stderr, mirrored into an append-only log file under the user
// config directory. A missing or unwritable log file degrades to
// stderr-only; logging never fails the caller.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// New creates the app logger. When logPath is non-empty the parent
// directory is created and the file opened append-only; open failures are
// ignored and output goes to stderr alone.
func New(logPath string, level log.Level) *log.Logger {
	var w io.Writer = os.Stderr

	if logPath != "" {
		if err := os.MkdirAll(filepath.Dir(logPath), 0755); err == nil {
			if f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644); err == nil {
				w = io.MultiWriter(os.Stderr, f)
			}
		}
	}

	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}
