// Package logger provides structured logging using Zap.
package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	mu    sync.RWMutex
	sugar *zap.SugaredLogger
	once  sync.Once
)

// Init initializes the global logger for the given environment.
// "production" uses a JSON encoder; anything else a console encoder.
func Init(env string) {
	once.Do(func() {
		var base *zap.Logger
		var err error

		if env == "production" {
			base, err = zap.NewProduction()
		} else {
			base, err = zap.NewDevelopment()
		}

		if err != nil {
			base = zap.NewNop()
		}

		mu.Lock()
		sugar = base.Sugar().Named("budgetlens")
		mu.Unlock()
	})
}

// Get returns the global sugared logger.
// If Init has not been called, it initializes a development logger.
func Get() *zap.SugaredLogger {
	mu.RLock()
	s := sugar
	mu.RUnlock()
	if s == nil {
		Init("development")
		mu.RLock()
		s = sugar
		mu.RUnlock()
	}
	return s
}

// Replace swaps the global logger and returns a function restoring the previous one.
// Tests use it with zaptest/observer to assert on emitted entries.
func Replace(l *zap.Logger) func() {
	Init("development")
	mu.Lock()
	prev := sugar
	sugar = l.Sugar()
	mu.Unlock()
	return func() {
		mu.Lock()
		sugar = prev
		mu.Unlock()
	}
}

// Sync flushes any buffered log entries. Call this before application exit.
func Sync() {
	if s := Get(); s != nil {
		_ = s.Sync()
	}
}
