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

// InterruptHandler cancels the command context on SIGINT or SIGTERM and tells
// the user what happened to their data.
type InterruptHandler struct {
	out         io.Writer
	hint        string
	mu          sync.Mutex
	interrupted bool
}

// NewInterruptHandler creates a handler that reports to out, or stderr when out is nil.
func NewInterruptHandler(out io.Writer) *InterruptHandler {
	if out == nil {
		out = os.Stderr
	}
	return &InterruptHandler{out: out}
}

// HandleInterrupts returns a context canceled by the first interrupt. Signal
// delivery stops once the returned context is done. hint, when set, is
// printed under the notice.
func (h *InterruptHandler) HandleInterrupts(ctx context.Context, hint string) context.Context {
	ctx, cancel := context.WithCancel(ctx)
	h.hint = hint

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer signal.Stop(signals)
		select {
		case <-signals:
			h.markInterrupted()
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx
}

func (h *InterruptHandler) markInterrupted() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.interrupted {
		return
	}
	h.interrupted = true
	h.notify()
}

func (h *InterruptHandler) notify() {
	notice := "\n" + FormatWarning("Interrupted!") + "\n"
	if h.hint != "" {
		notice += FormatInfo(h.hint) + "\n"
	}
	if _, err := io.WriteString(h.out, notice); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write interrupt notice: %v\n", err)
	}
}

// WasInterrupted reports whether an interrupt was received.
func (h *InterruptHandler) WasInterrupted() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.interrupted
}
