package console

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

type commandIDKey struct{}

// CommandID returns the ID assigned to the running command, if any.
func CommandID(ctx context.Context) string {
	id, _ := ctx.Value(commandIDKey{}).(string)
	return id
}

// WithCommandID tags each command with a fresh UUID for log correlation.
func WithCommandID(name string, next HandlerFunc) HandlerFunc {
	return func(ctx context.Context, args []string) error {
		return next(context.WithValue(ctx, commandIDKey{}, uuid.New().String()), args)
	}
}

// Recovery turns a panicking handler into an error so the loop keeps running.
func Recovery(name string, next HandlerFunc) HandlerFunc {
	return func(ctx context.Context, args []string) (err error) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("panic recovered", "command", name, "error", rec, "commandId", CommandID(ctx))
				err = fmt.Errorf("%s: an unexpected error occurred", name)
			}
		}()
		return next(ctx, args)
	}
}

// Logging logs each command at debug level with its duration and outcome.
func Logging(name string, next HandlerFunc) HandlerFunc {
	return func(ctx context.Context, args []string) error {
		start := time.Now()
		err := next(ctx, args)
		attrs := []any{"command", name, "args", len(args), "duration", time.Since(start).String(), "commandId", CommandID(ctx)}
		if err != nil && err != ErrQuit {
			slog.Debug("command failed", append(attrs, "error", err)...)
			return err
		}
		slog.Debug("command completed", attrs...)
		return err
	}
}
