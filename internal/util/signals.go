package util

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// SetupSignalHandler returns a context that is cancelled on SIGINT or SIGTERM.
// The cancellation cause wraps ErrCancelled and names the signal, so running
// batches see why they were interrupted. A second signal forces immediate exit.
func SetupSignalHandler() context.Context {
	ctx, cancel := context.WithCancelCause(context.Background())

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		slog.Info("received shutdown signal, cancelling running jobs", "signal", sig.String())
		cancel(fmt.Errorf("%w: received %s", ErrCancelled, sig))

		// Jobs that ignore cancellation can be interrupted by a second signal
		sig = <-sigCh
		slog.Warn("received second shutdown signal, forcing exit", "signal", sig.String())
		os.Exit(1)
	}()

	return ctx
}
