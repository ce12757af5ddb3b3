package app

import (
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/sonemaro/btrls/pkg/logger"
)

// signalState tracks the state of signal handling
type signalState struct {
	shutdownInitiated atomic.Bool
}

// setupSignalHandling cancels running walks on the first interrupt and
// exits on the second.
func (a *App) setupSignalHandling() {
	a.log.Debug("Initializing signal handlers")

	signal.Notify(a.signals, syscall.SIGINT, syscall.SIGTERM)
	go a.handleSignals(&signalState{})
}

func (a *App) stopSignalHandling() {
	signal.Stop(a.signals)
}

// handleSignals processes incoming system signals
func (a *App) handleSignals(state *signalState) {
	for {
		select {
		case <-a.done:
			return
		case sig := <-a.signals:
			a.log.WithFields(logger.Fields{
				"signal": sig.String(),
			}).Debug("Received system signal")

			if state.shutdownInitiated.CompareAndSwap(false, true) {
				a.log.Warn("Interrupted, stopping")
				a.cancel()
				continue
			}

			a.log.Warn("Received second interrupt, exiting")
			a.exit(130)
			return
		}
	}
}
