// Package mempool maintains the pending transactions for the blockchain.
package mempool

import (
	"errors"
	"sync"

	"github.com/ardanlabs/minichain/foundation/blockchain/database"
)

// Mempool represents a cache of transactions waiting to be mined. The order
// transactions are added is preserved since it is part of a block's digest.
// Transactions are only ever appended, a duplicate is another transaction.
type Mempool struct {
	mu   sync.RWMutex
	pool []database.Tx
}

// New constructs a new mempool.
func New() *Mempool {
	return &Mempool{}
}

// Count returns the current number of transaction in the pool.
func (mp *Mempool) Count() int {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	return len(mp.pool)
}

// Add appends a transaction to the end of the pool and returns the number
// of pending transactions.
func (mp *Mempool) Add(tx database.Tx) (int, error) {
	if tx.ID == "" {
		return 0, errors.New("transaction is missing an id")
	}

	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = append(mp.pool, tx)

	return len(mp.pool), nil
}

// RemoveFirst removes the n oldest transactions from the pool. The pool
// only grows at the end, so after a snapshot taken with Copy the first n
// entries are exactly the snapshot.
func (mp *Mempool) RemoveFirst(n int) {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	n = min(max(n, 0), len(mp.pool))

	pool := make([]database.Tx, len(mp.pool)-n)
	copy(pool, mp.pool[n:])
	mp.pool = pool
}

// Copy returns the transactions in the pool in the order they were added.
func (mp *Mempool) Copy() []database.Tx {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	cpy := make([]database.Tx, len(mp.pool))
	copy(cpy, mp.pool)

	return cpy
}
