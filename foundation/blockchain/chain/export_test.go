package chain

import "github.com/ardanlabs/minichain/foundation/blockchain/database"

// Tamper applies fn to the stored block at the specified position, going
// around the copies the chain hands out. Tests use it to corrupt a chain.
func (c *Chain) Tamper(position int, fn func(b *database.Block)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fn(&c.blocks[position])
}

// TamperReset removes every block so the empty chain guard can be reached.
func (c *Chain) TamperReset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.blocks = nil
}
