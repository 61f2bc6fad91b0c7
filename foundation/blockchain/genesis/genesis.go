// Package genesis maintains access to the genesis file.
package genesis

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"time"
)

// maxDifficulty is the number of hex characters in a block hash.
const maxDifficulty = 64

// Genesis represents the genesis file.
type Genesis struct {
	Date          time.Time          `json:"date"`
	ChainID       uint16             `json:"chain_id"`        // The chain id represents an unique id for this running instance.
	TransPerBlock uint16             `json:"trans_per_block"` // Number of pending transactions that triggers background mining, 0 disables it.
	Difficulty    uint16             `json:"difficulty"`      // How difficult it needs to be to solve the work problem.
	MiningReward  float64            `json:"mining_reward"`   // Reward for mining a block.
	Balances      map[string]float64 `json:"balances"`
}

// Default returns the genesis values used when no genesis file is provided.
func Default() Genesis {
	return Genesis{
		Date:         time.Now().UTC(),
		ChainID:      1,
		Difficulty:   3,
		MiningReward: 0.0001,
		Balances:     map[string]float64{},
	}
}

// =============================================================================

// Load opens and consumes the genesis file.
func Load(path string) (Genesis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, err
	}

	var genesis Genesis
	err = json.Unmarshal(content, &genesis)
	if err != nil {
		return Genesis{}, fmt.Errorf("decoding genesis %q: %w", path, err)
	}

	if err := genesis.Validate(); err != nil {
		return Genesis{}, err
	}

	return genesis, nil
}

// Validate checks the genesis values can drive a chain.
func (g Genesis) Validate() error {
	if g.Difficulty > maxDifficulty {
		return fmt.Errorf("difficulty %d is larger than %d", g.Difficulty, maxDifficulty)
	}

	if math.IsNaN(g.MiningReward) || math.IsInf(g.MiningReward, 0) || g.MiningReward < 0 {
		return fmt.Errorf("mining reward %v must be a non-negative number", g.MiningReward)
	}

	for account, balance := range g.Balances {
		if account == "" {
			return errors.New("balance provided for an empty account")
		}

		if math.IsNaN(balance) || math.IsInf(balance, 0) {
			return fmt.Errorf("balance for %s is not a number", account)
		}
	}

	return nil
}
