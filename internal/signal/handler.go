// Package signal provides graceful shutdown handling for the attestd node.
// A long-running serve command wraps its context in a Handler so that SIGINT
// or SIGTERM drains in-flight signing requests instead of killing them
// mid-signature.
package signal

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// Handler cancels a wrapped context when SIGINT or SIGTERM is received.
type Handler struct {
	ctx         context.Context //nolint:containedctx // handler manages context lifecycle
	cancel      context.CancelFunc
	interrupted chan struct{}
	done        chan struct{}
	once        sync.Once
	stopOnce    sync.Once
	sigChan     chan os.Signal
}

// NewHandler creates a handler listening for SIGINT and SIGTERM. The first
// signal cancels the context and closes the Interrupted channel.
//
//	h := signal.NewHandler(ctx)
//	defer h.Stop()
//	err := server.Run(h.Context())
func NewHandler(parent context.Context) *Handler {
	ctx, cancel := context.WithCancel(parent)
	h := &Handler{
		ctx:         ctx,
		cancel:      cancel,
		interrupted: make(chan struct{}),
		done:        make(chan struct{}),
		// Buffer of 1 so signal.Notify never drops a signal while the
		// handler is busy.
		sigChan: make(chan os.Signal, 1),
	}

	signal.Notify(h.sigChan, syscall.SIGINT, syscall.SIGTERM)
	go h.listen()

	return h
}

// Context returns the cancellable context. All interruptible work under the
// handler runs on this context.
func (h *Handler) Context() context.Context {
	return h.ctx
}

// Interrupted returns a channel that closes when an interrupt was received,
// letting callers distinguish an operator Ctrl+C from other shutdown causes.
func (h *Handler) Interrupted() <-chan struct{} {
	return h.interrupted
}

// Stop detaches from the signal set and cancels the context. Always call it
// when the command finishes.
func (h *Handler) Stop() {
	h.stopOnce.Do(func() {
		signal.Stop(h.sigChan)
		close(h.done)
		h.cancel()
	})
}

// handleSignal reacts to the first received signal; later ones are drained
// without effect.
func (h *Handler) handleSignal() {
	h.once.Do(func() {
		h.cancel()
		close(h.interrupted)
	})
}

func (h *Handler) listen() {
	for {
		select {
		case <-h.ctx.Done():
			return
		case <-h.done:
			return
		case <-h.sigChan:
			h.handleSignal()
		}
	}
}
