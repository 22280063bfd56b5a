package debug

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerMu   sync.Mutex
	loggerOnce sync.Once
)

// Logger returns the shared logger. It is a no-op logger unless
// SetLogger was called or one of the LUAMAP_DEBUG_* variables is set,
// in which case a development logger writing to stderr is used.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		loggerMu.Lock()
		defer loggerMu.Unlock()
		if logger != nil {
			return
		}
		if enabled() {
			if l, err := zap.NewDevelopment(); err == nil {
				logger = l
				return
			}
		}
		logger = zap.NewNop()
	})
	loggerMu.Lock()
	defer loggerMu.Unlock()
	return logger
}

// SetLogger replaces the shared logger. A nil logger restores the
// no-op logger.
func SetLogger(l *zap.Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}
