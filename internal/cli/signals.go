package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// exit is swapped out by tests.
var exit = os.Exit

// SetupSignalHandler returns a context that is cancelled on the first SIGINT
// or SIGTERM, so an open transaction rolls back. A second signal exits at once.
// The returned stop func releases the handler.
func SetupSignalHandler(parent context.Context, w io.Writer) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigChan := make(chan os.Signal, 2)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		select {
		case sig := <-sigChan:
			_, _ = fmt.Fprintf(w, "\nReceived %s, rolling back and exiting...\n", sig)
			cancel()
		case <-done:
			return
		}

		// Second signal forces immediate exit
		select {
		case sig := <-sigChan:
			_, _ = fmt.Fprintf(w, "Received %s again, forcing exit\n", sig)
			exit(130)
		case <-done:
		}
	}()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			signal.Stop(sigChan)
			close(done)
			cancel()
		})
	}
	return ctx, stop
}
