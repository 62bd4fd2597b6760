package logger

import "context"

// Sink routes leveled messages to the package helpers. It satisfies the
// logging capability expected by workflow packages such as dbupdate.
type Sink struct{}

func (Sink) Debug(ctx context.Context, msg string, args ...any)  { Debug(ctx, msg, args...) }
func (Sink) Info(ctx context.Context, msg string, args ...any)   { Info(ctx, msg, args...) }
func (Sink) Notice(ctx context.Context, msg string, args ...any) { Notice(ctx, msg, args...) }
func (Sink) Warn(ctx context.Context, msg string, args ...any)   { Warn(ctx, msg, args...) }
func (Sink) Error(ctx context.Context, msg string, args ...any)  { Error(ctx, msg, args...) }
