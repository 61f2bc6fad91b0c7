package database

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
)

// ErrInvalidTransaction is returned when a transaction is missing a
// recipient or carries an amount that can't be recorded.
var ErrInvalidTransaction = errors.New("invalid transaction")

// =============================================================================

// Tx is the transactional information between two parties. A transaction
// without a From account is a reward issued by the system.
type Tx struct {
	ID    string  `json:"id"`
	From  Account `json:"from,omitempty"`
	To    Account `json:"to"`
	Value float64 `json:"value"`
}

// NewTx constructs a new transaction with a unique id.
func NewTx(from Account, to Account, value float64) (Tx, error) {
	tx := Tx{
		ID:    uuid.NewString(),
		From:  from,
		To:    to,
		Value: value,
	}

	if err := tx.Validate(); err != nil {
		return Tx{}, err
	}

	return tx, nil
}

// NewRewardTx constructs the transaction that credits the account
// responsible for mining a block.
func NewRewardTx(to Account, value float64) (Tx, error) {
	return NewTx("", to, value)
}

// Validate checks the transaction has a recipient and a non-negative
// finite value.
func (tx Tx) Validate() error {
	if tx.To == "" {
		return fmt.Errorf("%w: recipient is empty", ErrInvalidTransaction)
	}

	switch {
	case math.IsNaN(tx.Value), math.IsInf(tx.Value, 0):
		return fmt.Errorf("%w: value %v is not a finite number", ErrInvalidTransaction, tx.Value)
	case tx.Value < 0:
		return fmt.Errorf("%w: value %v is negative", ErrInvalidTransaction, tx.Value)
	}

	return nil
}

// IsReward tests if the transaction is associated with a mining reward.
func (tx Tx) IsReward() bool {
	return tx.From == ""
}

// String implements the fmt.Stringer interface for logging.
func (tx Tx) String() string {
	from := string(tx.From)
	if tx.IsReward() {
		from = "reward"
	}

	return fmt.Sprintf("%s->%s:%v", from, tx.To, tx.Value)
}
