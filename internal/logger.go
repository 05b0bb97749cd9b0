package internal

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// LogLevel represents the logging level
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

var (
	logLevel = LogLevelInfo
	logger   = log.New(os.Stderr, "", log.LstdFlags)
)

// SetLogLevel sets the global log level
func SetLogLevel(level LogLevel) {
	logLevel = level
}

// SetVerbose enables verbose (debug) logging
func SetVerbose(verbose bool) {
	if verbose {
		SetLogLevel(LogLevelDebug)
	} else {
		SetLogLevel(LogLevelInfo)
	}
}

// LogError logs an error message
func LogError(format string, args ...interface{}) {
	if logLevel >= LogLevelError {
		logger.Printf("[ERROR] "+format, args...)
	}
}

// LogWarn logs a warning message
func LogWarn(format string, args ...interface{}) {
	if logLevel >= LogLevelWarn {
		logger.Printf("[WARN] "+format, args...)
	}
}

// LogInfo logs an info message
func LogInfo(format string, args ...interface{}) {
	if logLevel >= LogLevelInfo {
		logger.Printf("[INFO] "+format, args...)
	}
}

// LogDebug logs a debug message
func LogDebug(format string, args ...interface{}) {
	if logLevel >= LogLevelDebug {
		logger.Printf("[DEBUG] "+format, args...)
	}
}

// SessionLog tees the process logger into a local file for the lifetime of
// one crawl session. The file is later persisted under the session's storage
// prefix and removed locally.
type SessionLog struct {
	file *os.File
	path string
}

// StartSessionLog creates the log file and attaches it to the logger.
// The filename carries the session's compact timestamp, e.g.
// crawler_20250707_210032.log.
func StartSessionLog(dir, compactTimestamp string) (*SessionLog, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, fmt.Sprintf("crawler_%s.log", compactTimestamp))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	logger.SetOutput(io.MultiWriter(os.Stderr, f))
	return &SessionLog{file: f, path: path}, nil
}

// Path returns the local path of the log file
func (sl *SessionLog) Path() string {
	return sl.path
}

// Close detaches the file sink and closes the file
func (sl *SessionLog) Close() error {
	logger.SetOutput(os.Stderr)
	return sl.file.Close()
}

// Remove deletes the local log file. Call after the file has been persisted.
func (sl *SessionLog) Remove() error {
	return os.Remove(sl.path)
}
