package config

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the global zerolog logger instance.
//
//nolint:gochecknoglobals // Intentionally global for application-wide structured logging.
var Logger zerolog.Logger

// logFileHandle tracks the current log file for cleanup.
//
//nolint:gochecknoglobals // Tracks the global logger's file handle.
var logFileHandle *os.File

// logMu protects Logger and logFileHandle.
//
//nolint:gochecknoglobals // Guards the global logger state.
var logMu sync.RWMutex

// InitLogger configures the package-level Logger from the logging config.
// The level string is parsed into a zerolog level and defaults to InfoLevel
// on parse error. When cfg.File is non-empty, logs are additionally written
// to that file. Returns an error only if the log file cannot be opened.
func InitLogger(cfg LoggingConfig) error {
	logMu.Lock()
	defer logMu.Unlock()

	lvl, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	writers := []io.Writer{zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}}

	// Close any previously opened log file to prevent file handle leaks.
	closeLogFileLocked()

	if cfg.File != "" {
		logFile, fileErr := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if fileErr != nil {
			return fileErr
		}
		logFileHandle = logFile
		writers = append(writers, logFile)
	}

	Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(lvl).
		With().
		Timestamp().
		Logger()

	return nil
}

// GetLogger returns the global logger instance.
func GetLogger() zerolog.Logger {
	logMu.RLock()
	defer logMu.RUnlock()
	return Logger
}

// CloseLogFile closes the current log file handle, if any, and resets the
// Logger to console-only output so later writes never hit a closed file.
func CloseLogFile() {
	logMu.Lock()
	defer logMu.Unlock()
	closeLogFileLocked()
}

// closeLogFileLocked must be called with logMu held.
func closeLogFileLocked() {
	if logFileHandle == nil {
		return
	}
	_ = logFileHandle.Close()
	logFileHandle = nil
	Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).Level(Logger.GetLevel()).With().Timestamp().Logger()
}

// init gives the package a usable console logger before any configuration
// is loaded.
//
//nolint:gochecknoinits // the logger must exist before configuration runs
func init() {
	_ = InitLogger(LoggingConfig{Level: DefaultLogLevel})
}
