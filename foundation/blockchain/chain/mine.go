package chain

import (
	"context"
	"time"

	"github.com/ardanlabs/minichain/foundation/blockchain/database"
	"github.com/google/uuid"
)

// SubmitTransaction appends a transaction to the pending pool. There is no
// balance or signature checking and duplicates are kept. A transaction
// without an id is assigned one.
func (c *Chain) SubmitTransaction(tx database.Tx) error {
	if !c.isInitialized() {
		return ErrUninitializedChain
	}

	if err := tx.Validate(); err != nil {
		return err
	}

	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}

	n, err := c.mempool.Add(tx)
	if err != nil {
		return err
	}

	c.evHandler("chain: SubmitTransaction: tx[%s]: pending[%d]", tx, n)
	c.evHandler("viewer: tx: added: %s", tx)

	// Let the background miner know there is enough work.
	if c.Worker != nil && c.genesis.TransPerBlock > 0 && n >= int(c.genesis.TransPerBlock) {
		c.Worker.SignalStartMining()
	}

	return nil
}

// Mine packages the pending transactions and a reward for the specified
// account into a new block, performs the proof of work and appends the block
// to the chain. Only one mining operation runs at a time.
//
// The pending transactions are captured when mining starts. Transactions
// submitted while the block is being mined remain pending. If mining fails
// or the context is cancelled, the chain and the pending pool are unchanged.
func (c *Chain) Mine(ctx context.Context, rewardAccount database.Account) (database.Block, error) {
	if !c.isInitialized() {
		return database.Block{}, ErrUninitializedChain
	}

	reward, err := database.NewRewardTx(rewardAccount, c.genesis.MiningReward)
	if err != nil {
		return database.Block{}, err
	}

	c.miningMu.Lock()
	defer c.miningMu.Unlock()

	c.evHandler("chain: Mine: MINING: started: reward[%s]", rewardAccount)
	defer c.evHandler("chain: Mine: MINING: completed")

	prevBlock, err := c.LatestBlock()
	if err != nil {
		return database.Block{}, err
	}

	// Capture the set of transactions for this block. The reward is only
	// part of this snapshot, never the pending pool.
	pending := c.mempool.Copy()
	trans := make([]database.Tx, 0, len(pending)+1)
	trans = append(trans, pending...)
	trans = append(trans, reward)

	c.evHandler("chain: Mine: MINING: perform POW: trans[%d]: difficulty[%d]", len(trans), c.genesis.Difficulty)
	c.evHandler("viewer: mining: started: blk[%d]", prevBlock.Index+1)

	start := time.Now()

	// Attempt to create a new block by solving the POW puzzle. This can be cancelled.
	block, err := database.POW(ctx, database.POWArgs{
		Difficulty:  uint(c.genesis.Difficulty),
		MaxAttempts: c.maxAttempts,
		PrevBlock:   prevBlock,
		Trans:       trans,
		EvHandler:   c.evHandler,
	})
	if err != nil {
		c.evHandler("viewer: mining: stopped: blk[%d]: %s", prevBlock.Index+1, err)
		return database.Block{}, err
	}

	// Just check one more time we were not cancelled.
	if ctx.Err() != nil {
		return database.Block{}, ctx.Err()
	}

	c.evHandler("chain: Mine: MINING: update local state: duration[%v]", time.Since(start))

	c.updateLocalState(block, pending)

	return block.Clone(), nil
}

// =============================================================================

// updateLocalState appends the mined block, removes the transactions it
// recorded from the front of the pending pool and applies it to the accounts.
// Mining is serialized and the pool is append only, so the snapshot is
// still the oldest part of the pool.
func (c *Chain) updateLocalState(block database.Block, pending []database.Tx) {
	c.mu.Lock()
	{
		c.blocks = append(c.blocks, block)
	}
	c.mu.Unlock()

	c.evHandler("chain: updateLocalState: remove from mempool: trans[%d]", len(pending))
	c.mempool.RemoveFirst(len(pending))

	c.evHandler("chain: updateLocalState: apply block to accounts")
	c.accounts.ApplyBlock(block)

	c.evHandler("viewer: block: added: blk[%d]: hash[%s]: nonce[%d]", block.Index, block.Hash, block.Nonce)
}
