package shutdown

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func WithSignals(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(ch)
		select {
		case <-ctx.Done():
			return
		case <-ch:
			cancel()
		}
	}()

	return ctx, cancel
}

// Graceful runs stop and falls back to force when it does not return within timeout.
// It reports whether the graceful path finished in time.
func Graceful(timeout time.Duration, stop func(ctx context.Context), force func()) bool {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	stopped := make(chan struct{})
	go func() {
		stop(ctx)
		close(stopped)
	}()

	select {
	case <-stopped:
		return true
	case <-ctx.Done():
		if force != nil {
			force()
		}
		return false
	}
}
