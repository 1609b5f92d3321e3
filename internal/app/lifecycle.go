package app

import (
	"context"
	"os/signal"
	"syscall"
)

// lifecycle bounds ctx by the configured timeout and cancels it on SIGINT
// or SIGTERM. The returned function releases both.
func (a *Application) lifecycle(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	return ctx, func() {
		stopSignals()
		cancelTimeout()
	}
}
