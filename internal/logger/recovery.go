package logger

import (
	"context"
)

// Recover traps panics in background goroutines and reports them as fatal
// errors with a stack trace. Usage: defer logger.Recover(ctx)
func Recover(ctx context.Context) {
	if r := recover(); r != nil {
		// Suppress further panics during recovery
		defer func() { _ = recover() }()

		if _, ok := r.(FatalError); ok {
			return
		}

		// Skip Recover and runtime.gopanic
		fatalWithStackSkip(ctx, 3, "panic: %v", r)
	}
}
