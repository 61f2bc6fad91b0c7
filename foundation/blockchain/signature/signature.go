// Package signature provides the hashing support the blockchain uses to
// produce self-certifying digests.
package signature

import (
	"crypto/sha256"
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
)

// ZeroHash represents a hash code of zeros. It is used as the previous hash
// of the genesis block and can never collide with a real digest since it
// carries the 0x prefix and digests do not.
const ZeroHash string = "0x0000000000000000000000000000000000000000000000000000000000000000"

// HashLength is the number of hex characters in a digest.
const HashLength = 2 * sha256.Size

// =============================================================================

// Hash returns a unique string for the value. The value is marshaled to JSON
// so struct field order defines the canonical form. If the value can't be
// marshaled the ZeroHash is returned, which no proof of work check accepts.
func Hash(value any) string {
	data, err := json.Marshal(value)
	if err != nil {
		return ZeroHash
	}

	hash := sha256.Sum256(data)
	return common.Bytes2Hex(hash[:])
}
