package logging

import (
	"log"
	"os"
	"strings"
	"sync"
)

// LogLevel represents the logging level
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Logger provides leveled logging functionality
type Logger struct {
	level  LogLevel
	logger *log.Logger
}

var (
	globalLogger *Logger
	loggerOnce   sync.Once
)

// NewLogger creates a new logger with the specified level. When logFile is
// empty, output goes to stderr.
func NewLogger(levelStr string, logFile string) *Logger {
	level := parseLogLevel(levelStr)

	out := os.Stderr
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err == nil {
			out = file
		}
	}

	return &Logger{
		level:  level,
		logger: log.New(out, "", log.LstdFlags),
	}
}

// parseLogLevel parses a log level string
func parseLogLevel(levelStr string) LogLevel {
	switch strings.ToLower(levelStr) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Debugf logs a formatted debug message
func (l *Logger) Debugf(format string, args ...interface{}) {
	if l.level <= LevelDebug {
		l.logger.Printf("[DEBUG] "+format, args...)
	}
}

// Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	if l.level <= LevelInfo {
		l.logger.Printf("[INFO] "+format, args...)
	}
}

// Warnf logs a formatted warning message
func (l *Logger) Warnf(format string, args ...interface{}) {
	if l.level <= LevelWarn {
		l.logger.Printf("[WARN] "+format, args...)
	}
}

// Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	if l.level <= LevelError {
		l.logger.Printf("[ERROR] "+format, args...)
	}
}

// InitLogger initializes the global logger instance. Debug mode forces the
// debug level regardless of the configured one.
func InitLogger(logLevel, logFile string, debug bool) {
	loggerOnce.Do(func() {
		if debug {
			logLevel = "debug"
		}
		globalLogger = NewLogger(logLevel, logFile)
	})
}

// GetLogger returns the global logger, initializing a stderr default when
// InitLogger has not been called yet.
func GetLogger() *Logger {
	if globalLogger == nil {
		InitLogger("info", "", false)
	}
	return globalLogger
}

// Global convenience functions for logging
func LogDebugf(format string, args ...interface{}) {
	GetLogger().Debugf(format, args...)
}

func LogInfof(format string, args ...interface{}) {
	GetLogger().Infof(format, args...)
}

func LogWarnf(format string, args ...interface{}) {
	GetLogger().Warnf(format, args...)
}

func LogErrorf(format string, args ...interface{}) {
	GetLogger().Errorf(format, args...)
}
