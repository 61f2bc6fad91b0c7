package chain

import (
	"fmt"

	"github.com/ardanlabs/minichain/foundation/blockchain/signature"
)

// ViolationKind identifies which rule a block breaks.
type ViolationKind string

// Set of rules a block can break.
const (
	ViolationGenesis ViolationKind = "genesis" // Genesis block isn't at index 0 or isn't linked to the zero hash.
	ViolationDigest  ViolationKind = "digest"  // Stored hash doesn't match the recomputed digest.
	ViolationLink    ViolationKind = "link"    // Previous hash doesn't match the hash of the block before it.
	ViolationWork    ViolationKind = "work"    // Stored hash doesn't meet the chain difficulty.
	ViolationIndex   ViolationKind = "index"   // Index doesn't match the position in the chain.
)

// Violation describes a broken rule found while validating the chain.
type Violation struct {
	Position int           `json:"position"`
	Kind     ViolationKind `json:"kind"`
	Detail   string        `json:"detail"`
}

// String implements the fmt.Stringer interface for logging.
func (v Violation) String() string {
	return fmt.Sprintf("blk[%d]: %s: %s", v.Position, v.Kind, v.Detail)
}

// =============================================================================

// IsValid reports whether every block in the chain passes validation.
func (c *Chain) IsValid() (bool, error) {
	violations, err := c.Verify()
	if err != nil {
		return false, err
	}

	return len(violations) == 0, nil
}

// Verify walks the chain from the genesis block forward and reports every
// broken rule it finds. All blocks are checked so the report is complete.
// Nothing is changed by this call.
//
// The genesis block must sit at index 0, link to the zero hash, and carry
// its own digest. Every block after that must carry its own digest, link
// to the hash of the block before it, meet the chain difficulty, and have
// an index matching its position.
func (c *Chain) Verify() ([]Violation, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.initialized {
		return nil, ErrUninitializedChain
	}

	if len(c.blocks) == 0 {
		return nil, ErrEmptyChain
	}

	var violations []Violation
	add := func(position int, kind ViolationKind, format string, args ...any) {
		v := Violation{
			Position: position,
			Kind:     kind,
			Detail:   fmt.Sprintf(format, args...),
		}
		violations = append(violations, v)
		c.evHandler("chain: Verify: VIOLATION: %s", v)
	}

	genesis := c.blocks[0]
	if genesis.Index != 0 {
		add(0, ViolationGenesis, "index is %d, exp 0", genesis.Index)
	}
	if genesis.PrevHash != signature.ZeroHash {
		add(0, ViolationGenesis, "previous hash is %s, exp zero hash", genesis.PrevHash)
	}
	if digest := genesis.Digest(); genesis.Hash != digest {
		add(0, ViolationDigest, "hash is %s, recomputed %s", genesis.Hash, digest)
	}

	difficulty := uint(c.genesis.Difficulty)
	for i := 1; i < len(c.blocks); i++ {
		block := c.blocks[i]
		prev := c.blocks[i-1]

		if block.Index != uint64(i) {
			add(i, ViolationIndex, "index is %d, exp %d", block.Index, i)
		}

		if digest := block.Digest(); block.Hash != digest {
			add(i, ViolationDigest, "hash is %s, recomputed %s", block.Hash, digest)
		}

		if block.PrevHash != prev.Hash {
			add(i, ViolationLink, "previous hash is %s, exp %s", block.PrevHash, prev.Hash)
		}

		if !block.IsSolved(difficulty) {
			add(i, ViolationWork, "hash %s doesn't have %d leading zeros", block.Hash, difficulty)
		}
	}

	c.evHandler("chain: Verify: blocks[%d]: violations[%d]", len(c.blocks), len(violations))

	return violations, nil
}
