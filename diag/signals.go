package diag

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

var (
	signalMu   sync.Mutex
	signalCh   chan os.Signal
	signalDone chan struct{}
)

// StartCatchingSignals installs a best-effort handler for the signals
// that indicate the process is dying abnormally (SIGSEGV, SIGBUS,
// SIGILL, SIGFPE) alongside the ordinary termination signals, printing
// a short diagnostic line before the process exits. It is idempotent:
// calling it twice without an intervening StopCatchingSignals is a
// no-op.
func StartCatchingSignals() {
	signalMu.Lock()
	defer signalMu.Unlock()
	if signalCh != nil {
		return
	}
	signalCh = make(chan os.Signal, 1)
	signalDone = make(chan struct{})
	signal.Notify(signalCh,
		syscall.SIGSEGV, syscall.SIGBUS, syscall.SIGILL, syscall.SIGFPE,
		syscall.SIGTERM, os.Interrupt,
	)
	ch, done := signalCh, signalDone
	go func() {
		select {
		case sig := <-ch:
			fmt.Fprintf(os.Stderr, "INTERNAL ERROR: caught signal %v, exiting\n", sig)
			os.Exit(2)
		case <-done:
		}
	}()
}

// StopCatchingSignals tears down the handler installed by
// StartCatchingSignals. Safe to call when no handler is installed.
func StopCatchingSignals() {
	signalMu.Lock()
	defer signalMu.Unlock()
	if signalCh == nil {
		return
	}
	signal.Stop(signalCh)
	close(signalDone)
	signalCh = nil
	signalDone = nil
}
