// Package accounts maintains account balances derived from the genesis
// balances and the transactions recorded in mined blocks.
package accounts

import (
	"sync"

	"github.com/ardanlabs/minichain/foundation/blockchain/database"
	"github.com/ardanlabs/minichain/foundation/blockchain/genesis"
)

// Info represents information stored for an individual account.
type Info struct {
	Balance float64 `json:"balance"`
	Trans   uint64  `json:"trans"`
}

// Accounts manages data related to accounts who have transacted on
// the blockchain. No balance checks are performed, an account that
// sends more than it holds carries a negative balance.
type Accounts struct {
	info map[database.Account]Info
	mu   sync.RWMutex
}

// New constructs the accounts with the genesis balances applied.
func New(genesis genesis.Genesis) *Accounts {
	accts := Accounts{
		info: make(map[database.Account]Info),
	}

	for account, balance := range genesis.Balances {
		accts.info[database.Account(account)] = Info{Balance: balance}
	}

	return &accts
}

// Copy makes a copy of the current information for all accounts.
func (act *Accounts) Copy() map[database.Account]Info {
	act.mu.RLock()
	defer act.mu.RUnlock()

	accounts := make(map[database.Account]Info, len(act.info))
	for account, info := range act.info {
		accounts[account] = info
	}
	return accounts
}

// Query returns the information for the specified account.
func (act *Accounts) Query(account database.Account) (Info, bool) {
	act.mu.RLock()
	defer act.mu.RUnlock()

	info, exists := act.info[account]
	return info, exists
}

// ApplyBlock applies every transaction in the block in order.
func (act *Accounts) ApplyBlock(block database.Block) {
	act.mu.Lock()
	defer act.mu.Unlock()

	for _, tx := range block.Trans {
		act.applyTransaction(tx)
	}
}

// applyTransaction credits the recipient and, unless the transaction is a
// reward, debits the sender. The caller must hold the write lock.
func (act *Accounts) applyTransaction(tx database.Tx) {
	if !tx.IsReward() {
		fromInfo := act.info[tx.From]
		fromInfo.Balance -= tx.Value
		fromInfo.Trans++
		act.info[tx.From] = fromInfo
	}

	toInfo := act.info[tx.To]
	toInfo.Balance += tx.Value
	toInfo.Trans++
	act.info[tx.To] = toInfo
}
