package sfmodel

import (
	"sync"

	"github.com/rs/zerolog"
)

var (
	loggerMu sync.RWMutex
	logger   = zerolog.Nop()
)

// SetLogger replaces the package logger. The default discards everything.
func SetLogger(l zerolog.Logger) {
	loggerMu.Lock()
	logger = l.With().Str("component", "sfmodel").Logger()
	loggerMu.Unlock()
}

func log() *zerolog.Logger {
	loggerMu.RLock()
	l := logger
	loggerMu.RUnlock()
	return &l
}
