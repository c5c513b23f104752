/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package logger provides the process-wide logger. It can be silenced for
// machine-readable output.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var log = newLogger(os.Stderr)

func newLogger(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp:       true,
		DisableLevelTruncation: true,
	})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// SetOutput configures the logger output destination.
// Use io.Discard to silence all logging.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

// SetLevel sets the minimum level: debug, info, warn, or error.
func SetLevel(level string) error {
	switch strings.ToLower(level) {
	case "debug":
		log.SetLevel(logrus.DebugLevel)
	case "info", "":
		log.SetLevel(logrus.InfoLevel)
	case "warning", "warn":
		log.SetLevel(logrus.WarnLevel)
	case "error":
		log.SetLevel(logrus.ErrorLevel)
	default:
		return fmt.Errorf("unknown log level %q (valid: debug, info, warn, error)", level)
	}
	return nil
}

// Error logs an error message.
func Error(format string, args ...any) {
	log.Errorf(format, args...)
}

// Warn logs a warning message.
func Warn(format string, args ...any) {
	log.Warnf(format, args...)
}

// Info logs an informational message.
func Info(format string, args ...any) {
	log.Infof(format, args...)
}

// Debug logs a debug message.
func Debug(format string, args ...any) {
	log.Debugf(format, args...)
}
