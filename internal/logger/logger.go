package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	log  *zap.Logger
	once sync.Once
)

// Init builds the process-wide logger. Production gets JSON output at info
// level; every other environment gets the human readable development encoder.
func Init(production bool) error {
	var err error
	once.Do(func() {
		var l *zap.Logger
		if production {
			l, err = zap.NewProduction()
		} else {
			l, err = zap.NewDevelopment()
		}
		if err == nil {
			log = l
		}
	})
	return err
}

// L returns the process-wide logger, or a no-op logger when Init was never called.
func L() *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}

// Named returns a child logger tagged with the component name.
func Named(component string) *zap.Logger {
	return L().Named(component)
}

// Sync flushes buffered entries.
func Sync() {
	if log != nil {
		_ = log.Sync()
	}
}
