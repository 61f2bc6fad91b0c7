// Package database provides the block and transaction types the chain is
// built from, along with the proof of work used to seal a block.
package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ardanlabs/minichain/foundation/blockchain/signature"
)

var (
	// ErrMiningExhausted is returned when the proof of work search runs out
	// of its attempt budget before a solution is found.
	ErrMiningExhausted = errors.New("mining attempts exhausted")

	// ErrInvalidDifficulty is returned when the difficulty asks for more
	// leading zeros than a hash has characters.
	ErrInvalidDifficulty = errors.New("invalid difficulty")
)

// cancelCheckInterval is the number of nonce attempts between checks of the
// mining context.
const cancelCheckInterval = 1024

// =============================================================================

// Block represents a group of transactions batched together and linked to
// the block before it by hash.
type Block struct {
	Index     uint64 `json:"index"`     // Position in the chain, the genesis block is 0.
	TimeStamp uint64 `json:"timestamp"` // Unix milliseconds the block was created.
	PrevHash  string `json:"prev_hash"` // Hash of the previous block in the chain.
	Nonce     uint64 `json:"nonce"`     // Value identified to solve the hash solution.
	Hash      string `json:"hash"`      // Digest of the block, empty until computed.
	Trans     []Tx   `json:"trans"`     // Transactions in the order they are recorded.
}

// NewBlock constructs an unmined block. The transactions are copied so the
// caller's slice can't change the block after the fact.
func NewBlock(index uint64, timeStamp uint64, prevHash string, trans []Tx) Block {
	return Block{
		Index:     index,
		TimeStamp: timeStamp,
		PrevHash:  prevHash,
		Trans:     copyTrans(trans),
	}
}

// NewGenesisBlock constructs the first block of a chain. The genesis block
// has no transactions and no predecessor. Its digest is computed and stored
// but it is not mined.
func NewGenesisBlock(timeStamp uint64) Block {
	b := NewBlock(0, timeStamp, signature.ZeroHash, []Tx{})
	b.Hash = b.Digest()

	return b
}

// blockDigest is the canonical form of the fields that make up the digest.
type blockDigest struct {
	Index     uint64 `json:"index"`
	PrevHash  string `json:"prev_hash"`
	TimeStamp uint64 `json:"timestamp"`
	Trans     []Tx   `json:"trans"`
	Nonce     uint64 `json:"nonce"`
}

// Digest computes the hash of the block from its current field values. The
// stored Hash is not part of the computation.
func (b Block) Digest() string {
	trans := b.Trans
	if trans == nil {
		trans = []Tx{}
	}

	return signature.Hash(blockDigest{
		Index:     b.Index,
		PrevHash:  b.PrevHash,
		TimeStamp: b.TimeStamp,
		Trans:     trans,
		Nonce:     b.Nonce,
	})
}

// IsSolved reports whether the stored hash meets the proof of work target
// for the specified difficulty.
func (b Block) IsSolved(difficulty uint) bool {
	return isHashSolved(difficulty, b.Hash)
}

// Clone returns a deep copy of the block.
func (b Block) Clone() Block {
	b.Trans = copyTrans(b.Trans)
	return b
}

// Mine performs the proof of work search. The nonce is incremented from its
// current value until the digest has difficulty leading zeros, at which point
// the digest is stored as the block hash. Pointer semantics are being used
// since a nonce is being discovered.
//
// The search is unbounded when maxAttempts is 0. The context is checked
// every cancelCheckInterval attempts.
func (b *Block) Mine(ctx context.Context, difficulty uint, maxAttempts uint64, ev func(v string, args ...any)) error {
	if difficulty > signature.HashLength {
		return fmt.Errorf("%w: %d, max %d", ErrInvalidDifficulty, difficulty, signature.HashLength)
	}

	if ev == nil {
		ev = func(v string, args ...any) {}
	}

	ev("database: Mine: MINING: started: blk[%d]", b.Index)
	defer ev("database: Mine: MINING: completed: blk[%d]", b.Index)

	// Log the transactions that are a part of this potential block.
	for _, tx := range b.Trans {
		ev("database: Mine: MINING: tx[%s]", tx)
	}

	b.Hash = ""
	start := time.Now()

	var attempts uint64
	for {
		if attempts%cancelCheckInterval == 0 && ctx.Err() != nil {
			ev("database: Mine: MINING: CANCELLED: attempts[%d]", attempts)
			return ctx.Err()
		}

		if maxAttempts > 0 && attempts >= maxAttempts {
			ev("database: Mine: MINING: EXHAUSTED: attempts[%d]", attempts)
			return fmt.Errorf("%w: attempts[%d]", ErrMiningExhausted, attempts)
		}

		attempts++
		if attempts%1_000_000 == 0 {
			ev("database: Mine: MINING: attempts[%d]", attempts)
		}

		// Hash the block and check if we have solved the puzzle.
		hash := b.Digest()
		if !isHashSolved(difficulty, hash) {
			b.Nonce++
			continue
		}

		b.Hash = hash

		ev("database: Mine: MINING: SOLVED: prevBlk[%s]: newBlk[%s]", b.PrevHash, hash)
		ev("database: Mine: MINING: attempts[%d]: nonce[%d]: duration[%v]", attempts, b.Nonce, time.Since(start))

		return nil
	}
}

// =============================================================================

// POWArgs represents the set of arguments required to run POW.
type POWArgs struct {
	Difficulty  uint
	MaxAttempts uint64
	PrevBlock   Block
	Trans       []Tx
	EvHandler   func(v string, args ...any)
}

// POW constructs the block that follows the previous block and performs the
// work to find a nonce that solves the cryptographic POW puzzle.
func POW(ctx context.Context, args POWArgs) (Block, error) {

	// Keep timestamps from moving backwards if the clock does.
	timeStamp := uint64(time.Now().UTC().UnixMilli())
	if timeStamp < args.PrevBlock.TimeStamp {
		timeStamp = args.PrevBlock.TimeStamp
	}

	nb := NewBlock(args.PrevBlock.Index+1, timeStamp, args.PrevBlock.Hash, args.Trans)

	if err := nb.Mine(ctx, args.Difficulty, args.MaxAttempts, args.EvHandler); err != nil {
		return Block{}, err
	}

	return nb, nil
}

// =============================================================================

// isHashSolved checks the hash to make sure it complies with
// the POW rules. We need to match a difficulty number of 0's.
func isHashSolved(difficulty uint, hash string) bool {
	if len(hash) != signature.HashLength || difficulty > signature.HashLength {
		return false
	}

	for i := uint(0); i < difficulty; i++ {
		if hash[i] != '0' {
			return false
		}
	}

	return true
}

// copyTrans makes a copy of the transactions, keeping a nil slice nil.
func copyTrans(trans []Tx) []Tx {
	if trans == nil {
		return nil
	}

	cpy := make([]Tx, len(trans))
	copy(cpy, trans)

	return cpy
}
