// Package logging configures the global logrus logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// RotationConfig contains log file rotation settings.
type RotationConfig struct {
	MaxSizeMB  int  `yaml:"max_size_mb"`
	MaxBackups int  `yaml:"max_backups"`
	MaxAgeDays int  `yaml:"max_age_days"`
	Compress   bool `yaml:"compress"`
}

// logFile holds the rotating writer for cleanup
var (
	logFile   *lumberjack.Logger
	logFileMu sync.Mutex
)

// Setup sets level, formatter and output of the global logger. Logs go to
// stderr, and additionally to a rotated file when filePath is set.
func Setup(level, filePath string, rotation RotationConfig) error {
	return setup(logrus.StandardLogger(), os.Stderr, level, filePath, rotation)
}

func setup(logger *logrus.Logger, console io.Writer, level, filePath string, rotation RotationConfig) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	logger.SetLevel(lvl)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	logFileMu.Lock()
	defer logFileMu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}

	if filePath == "" {
		logger.SetOutput(console)
		return nil
	}

	logFile = &lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    rotation.MaxSizeMB,
		MaxBackups: rotation.MaxBackups,
		MaxAge:     rotation.MaxAgeDays,
		Compress:   rotation.Compress,
	}
	logger.SetOutput(io.MultiWriter(console, logFile))

	logger.WithFields(logrus.Fields{
		"level":       lvl.String(),
		"log_file":    filePath,
		"max_size":    fmt.Sprintf("%dMB", rotation.MaxSizeMB),
		"max_backups": rotation.MaxBackups,
		"max_age":     fmt.Sprintf("%d days", rotation.MaxAgeDays),
	}).Debug("Logger initialized with file output")

	return nil
}

// Close closes the log file, if one is open.
func Close() error {
	logFileMu.Lock()
	defer logFileMu.Unlock()

	if logFile != nil {
		err := logFile.Close()
		logFile = nil
		return err
	}
	return nil
}

// ParseLevel converts a level name to a logrus.Level. Empty means warn.
func ParseLevel(level string) (logrus.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return logrus.DebugLevel, nil
	case "INFO":
		return logrus.InfoLevel, nil
	case "", "WARNING", "WARN":
		return logrus.WarnLevel, nil
	case "ERROR":
		return logrus.ErrorLevel, nil
	default:
		return logrus.WarnLevel, fmt.Errorf("unknown log level: %s", level)
	}
}
