package chain

import (
	"fmt"

	"github.com/ardanlabs/minichain/foundation/blockchain/accounts"
	"github.com/ardanlabs/minichain/foundation/blockchain/database"
	"github.com/ardanlabs/minichain/foundation/blockchain/genesis"
)

// LatestBlock returns a copy of the last block in the chain.
func (c *Chain) LatestBlock() (database.Block, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.initialized {
		return database.Block{}, ErrUninitializedChain
	}

	if len(c.blocks) == 0 {
		return database.Block{}, ErrEmptyChain
	}

	return c.blocks[len(c.blocks)-1].Clone(), nil
}

// QueryBlock returns a copy of the block at the specified index.
func (c *Chain) QueryBlock(index uint64) (database.Block, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.initialized {
		return database.Block{}, ErrUninitializedChain
	}

	if index >= uint64(len(c.blocks)) {
		return database.Block{}, fmt.Errorf("%w: index %d", ErrBlockNotFound, index)
	}

	return c.blocks[index].Clone(), nil
}

// Blocks returns a copy of every block in the chain. An uninitialized chain
// has no blocks.
func (c *Chain) Blocks() []database.Block {
	c.mu.RLock()
	defer c.mu.RUnlock()

	blocks := make([]database.Block, len(c.blocks))
	for i, block := range c.blocks {
		blocks[i] = block.Clone()
	}

	return blocks
}

// Length returns the number of blocks in the chain.
func (c *Chain) Length() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.blocks)
}

// Pending returns a copy of the transactions waiting to be mined.
func (c *Chain) Pending() []database.Tx {
	return c.mempool.Copy()
}

// PendingCount returns the number of transactions waiting to be mined.
func (c *Chain) PendingCount() int {
	return c.mempool.Count()
}

// Difficulty returns the number of leading zeros a block hash needs.
func (c *Chain) Difficulty() uint {
	return uint(c.genesis.Difficulty)
}

// MiningReward returns the amount credited for mining a block.
func (c *Chain) MiningReward() float64 {
	return c.genesis.MiningReward
}

// Genesis returns the genesis information the chain was built with.
func (c *Chain) Genesis() genesis.Genesis {
	gen := c.genesis
	gen.Balances = make(map[string]float64, len(c.genesis.Balances))
	for account, balance := range c.genesis.Balances {
		gen.Balances[account] = balance
	}

	return gen
}

// Balances returns the current information for every account.
func (c *Chain) Balances() map[database.Account]accounts.Info {
	return c.accounts.Copy()
}

// QueryBalance returns the current information for the specified account.
func (c *Chain) QueryBalance(account database.Account) (accounts.Info, bool) {
	return c.accounts.Query(account)
}

// TransPerBlock returns the number of pending transactions that triggers
// background mining. A value of 0 means mining only happens on request.
func (c *Chain) TransPerBlock() int {
	return int(c.genesis.TransPerBlock)
}
