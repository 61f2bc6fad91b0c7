// Package worker implements background mining for the blockchain. A single
// goroutine performs mining so only one mining operation runs at a time.
package worker

import (
	"sync"

	"github.com/ardanlabs/minichain/foundation/blockchain/chain"
	"github.com/ardanlabs/minichain/foundation/blockchain/database"
)

// Worker manages the POW workflows for the blockchain.
type Worker struct {
	chain        *chain.Chain
	minerAccount database.Account
	wg           sync.WaitGroup
	shutOnce     sync.Once
	shut         chan struct{}
	startMining  chan bool
	cancelMining chan chan struct{}
	evHandler    chain.EventHandler
}

// Run creates a worker, registers the worker with the chain, and
// starts up all the background processes.
func Run(ch *chain.Chain, minerAccount database.Account, evHandler chain.EventHandler) {
	if evHandler == nil {
		evHandler = func(v string, args ...any) {}
	}

	w := Worker{
		chain:        ch,
		minerAccount: minerAccount,
		shut:         make(chan struct{}),
		startMining:  make(chan bool, 1),
		cancelMining: make(chan chan struct{}, 1),
		evHandler:    evHandler,
	}

	// Register this worker with the chain.
	ch.Worker = &w

	// Load the set of operations we need to run.
	operations := []func(){
		w.miningOperations,
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
// These methods implement the chain.Worker interface.

// Shutdown terminates the goroutine performing work. A mining operation in
// progress is cancelled. Calling Shutdown more than once is safe.
func (w *Worker) Shutdown() {
	w.shutOnce.Do(func() {
		w.evHandler("worker: shutdown: started")
		defer w.evHandler("worker: shutdown: completed")

		w.evHandler("worker: shutdown: signal cancel mining")
		done := w.SignalCancelMining()
		done()

		w.evHandler("worker: shutdown: terminate goroutines")
		close(w.shut)
	})

	w.wg.Wait()
}

// SignalStartMining starts a mining operation. If there is already a signal
// pending in the channel, just return since a mining operation will start.
func (w *Worker) SignalStartMining() {
	select {
	case w.startMining <- true:
	default:
	}
	w.evHandler("worker: SignalStartMining: mining signaled")
}

// SignalCancelMining signals the G executing the runMiningOperation function
// to stop immediately. That G will not return from the function until done
// is called. This allows the caller to complete any state changes before a new
// mining operation takes place.
func (w *Worker) SignalCancelMining() (done func()) {
	wait := make(chan struct{})

	select {
	case w.cancelMining <- wait:
	default:
	}
	w.evHandler("worker: SignalCancelMining: MINING: CANCEL: signaled")

	return func() { close(wait) }
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
