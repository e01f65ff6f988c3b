// Package worker implements the block window lifecycle for the node. A
// single goroutine seals a block every window interval; a seal can also be
// signaled out of band.
package worker

import (
	"sync"
	"time"

	"github.com/rustchain/blockchain/foundation/antiquity/state"
)

// Worker manages the block sealing workflow for the node.
type Worker struct {
	state     *state.State
	wg        sync.WaitGroup
	ticker    *time.Ticker
	shut      chan struct{}
	sealBlock chan bool
	evHandler state.EventHandler
}

// Run creates a worker, registers the worker with the state package, and
// starts up all the background processes.
func Run(st *state.State, interval time.Duration, evHandler state.EventHandler) {
	w := Worker{
		state:     st,
		ticker:    time.NewTicker(interval),
		shut:      make(chan struct{}),
		sealBlock: make(chan bool, 1),
		evHandler: evHandler,
	}

	// Register this worker with the state package.
	st.Worker = &w

	// Load the set of operations we need to run.
	operations := []func(){
		w.sealingOperations,
	}

	// Set waitgroup to match the number of G's we need for the set
	// of operations we have.
	g := len(operations)
	w.wg.Add(g)

	// We don't want to return until we know all the G's are up and running.
	hasStarted := make(chan bool)

	// Start all the operational G's.
	for _, op := range operations {
		go func(op func()) {
			defer w.wg.Done()
			hasStarted <- true
			op()
		}(op)
	}

	// Wait for the G's to report they are running.
	for i := 0; i < g; i++ {
		<-hasStarted
	}
}

// =============================================================================
// These methods implement the state.Worker interface.

// Shutdown terminates the goroutine performing work.
func (w *Worker) Shutdown() {
	w.evHandler("worker: shutdown: started")
	defer w.evHandler("worker: shutdown: completed")

	w.evHandler("worker: shutdown: stop ticker")
	w.ticker.Stop()

	w.evHandler("worker: shutdown: terminate goroutines")
	close(w.shut)
	w.wg.Wait()
}

// SignalSealBlock seals the current window without waiting for the ticker.
// If there is already a signal pending in the channel, just return since a
// sealing operation will happen.
func (w *Worker) SignalSealBlock() {
	select {
	case w.sealBlock <- true:
	default:
	}
	w.evHandler("worker: SignalSealBlock: sealing signaled")
}

// =============================================================================

// isShutdown is used to test if a shutdown has been signaled.
func (w *Worker) isShutdown() bool {
	select {
	case <-w.shut:
		return true
	default:
		return false
	}
}

// sealingOperations handles sealing a block every window interval.
func (w *Worker) sealingOperations() {
	w.evHandler("worker: sealingOperations: G started")
	defer w.evHandler("worker: sealingOperations: G completed")

	for {
		select {
		case <-w.ticker.C:
			if !w.isShutdown() {
				w.runSealingOperation()
			}
		case <-w.sealBlock:
			if !w.isShutdown() {
				w.runSealingOperation()
			}
		case <-w.shut:
			w.evHandler("worker: sealingOperations: received shut signal")
			return
		}
	}
}

// runSealingOperation closes the current window into a block.
func (w *Worker) runSealingOperation() {
	w.evHandler("worker: runSealingOperation: SEALING: started")
	defer w.evHandler("worker: runSealingOperation: SEALING: completed")

	block, sealed, err := w.state.SealBlock()
	if err != nil {
		w.evHandler("worker: runSealingOperation: SEALING: ERROR: %s", err)
		return
	}

	if !sealed {
		w.evHandler("worker: runSealingOperation: SEALING: no proofs in window")
		return
	}

	w.evHandler("worker: runSealingOperation: SEALING: sealed block: height[%d] miners[%d]", block.Height, len(block.Miners))
}
