// Package logs routes the standard logger into a file, so that command output
// stays clean.
package logs

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

var Output *os.File

// InitializeFileLogger appends all further output of the standard logger to the file at path.
func InitializeFileLogger(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, "couldn't create log directory for %s", path)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Wrap(err, "couldn't open logs file")
	}
	Output = f
	log.SetOutput(Output)
	return nil
}

// Discard drops all output of the standard logger.
func Discard() {
	log.SetOutput(io.Discard)
}

// NewStatementLogger returns a logger for memtable.WithLogger which writes
// wherever the standard logger currently does.
func NewStatementLogger(table string) *log.Logger {
	return log.New(log.Writer(), "["+table+"] ", log.LstdFlags)
}

func CloseLogger() {
	if Output == nil {
		return
	}
	log.SetOutput(os.Stderr)
	Output.Close()
	Output = nil
}
