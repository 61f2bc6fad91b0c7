// Package chain is the core API for the blockchain. It owns the sequence of
// blocks and the pending transactions, orchestrates mining, and validates
// the whole chain.
package chain

import (
	"errors"
	"sync"
	"time"

	"github.com/ardanlabs/minichain/foundation/blockchain/accounts"
	"github.com/ardanlabs/minichain/foundation/blockchain/database"
	"github.com/ardanlabs/minichain/foundation/blockchain/genesis"
	"github.com/ardanlabs/minichain/foundation/blockchain/mempool"
)

// Set of error variables for chain operations.
var (
	ErrUninitializedChain = errors.New("chain is not initialized")
	ErrAlreadyInitialized = errors.New("chain is already initialized")
	ErrEmptyChain         = errors.New("chain has no blocks")
	ErrBlockNotFound      = errors.New("block not found")
)

// =============================================================================

// EventHandler defines a function that is called when events
// occur in the processing of the chain.
type EventHandler func(v string, args ...any)

// Worker interface represents the behavior required to be implemented by any
// package providing support for background mining.
type Worker interface {
	Shutdown()
	SignalStartMining()
	SignalCancelMining() (done func())
}

// =============================================================================

// Config represents the configuration required to construct a chain.
type Config struct {
	Genesis     genesis.Genesis
	MaxAttempts uint64 // Nonce attempts per mining operation, 0 is unbounded.
	EvHandler   EventHandler
}

// Chain manages the blocks and pending transactions for a single writer.
// Blocks are never handed out by reference, every read returns a copy so
// a mined block can't be changed from outside the chain.
type Chain struct {
	genesis     genesis.Genesis
	maxAttempts uint64
	evHandler   EventHandler

	mu          sync.RWMutex
	initialized bool
	blocks      []database.Block

	miningMu sync.Mutex

	mempool  *mempool.Mempool
	accounts *accounts.Accounts

	Worker Worker
}

// New constructs an empty chain. Initialize must be called before the chain
// can be used.
func New(cfg Config) (*Chain, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	if err := cfg.Genesis.Validate(); err != nil {
		return nil, err
	}

	ch := Chain{
		genesis:     cfg.Genesis,
		maxAttempts: cfg.MaxAttempts,
		evHandler:   ev,
		mempool:     mempool.New(),
		accounts:    accounts.New(cfg.Genesis),
	}

	// The Worker is not set here. The call to worker.Run will assign itself
	// and start the background mining.

	return &ch, nil
}

// Initialize creates the genesis block. It can only be called once.
func (c *Chain) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return ErrAlreadyInitialized
	}

	block := database.NewGenesisBlock(uint64(time.Now().UTC().UnixMilli()))

	c.blocks = append(c.blocks, block)
	c.initialized = true

	c.evHandler("chain: Initialize: genesis: blk[%s]", block.Hash)
	c.evHandler("viewer: genesis: blk[%d]: hash[%s]", block.Index, block.Hash)

	return nil
}

// Shutdown cleanly brings the chain down by stopping any background mining.
func (c *Chain) Shutdown() {
	c.evHandler("chain: Shutdown: started")
	defer c.evHandler("chain: Shutdown: completed")

	if c.Worker != nil {
		c.Worker.Shutdown()
	}
}

// =============================================================================

// isInitialized reports whether the genesis block has been created.
func (c *Chain) isInitialized() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.initialized
}
