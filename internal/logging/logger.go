// Package logging configures the global zerolog logger for commiter.
//
// User-facing output goes to the terminal; this log is a rotating debug
// trace of state transitions and git invocations under the XDG data dir.
package logging

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/commiterdev/commiter/internal/storage"
)

const (
	maxLogSizeMB  = 10 // Maximum size in MB before rotation
	maxLogBackups = 3  // Number of old files to keep
	maxLogAgeDays = 30 // Maximum age in days before deletion
)

// createLumberjackLogger creates a lumberjack.Logger with standard configuration
func createLumberjackLogger(logFile string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    maxLogSizeMB,
		MaxBackups: maxLogBackups,
		MaxAge:     maxLogAgeDays,
	}
}

// Init initializes the global logger with lumberjack rotation at the
// XDG data path. The filesystem is injected so tests stay on a MemMapFs.
func Init(fs afero.Fs) error {
	storageManager := storage.New(fs)
	logFile, err := storageManager.LogPath()
	if err != nil {
		return fmt.Errorf("failed to get log path: %w", err)
	}

	lj := createLumberjackLogger(logFile)
	log.Logger = zerolog.New(lj).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	return nil
}

// InitTest initializes logger for testing (outputs to discard)
func InitTest() {
	log.Logger = zerolog.New(io.Discard)
}
