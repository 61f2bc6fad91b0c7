package public

import (
	"github.com/ardanlabs/minichain/foundation/blockchain/chain"
	"github.com/ardanlabs/minichain/foundation/blockchain/database"
	"github.com/ardanlabs/minichain/foundation/nameservice"
)

type submitTx struct {
	From  string  `json:"from"`
	To    string  `json:"to" validate:"required"`
	Value float64 `json:"value" validate:"gte=0"`
}

type tx struct {
	ID       string           `json:"id"`
	From     database.Account `json:"from,omitempty"`
	FromName string           `json:"from_name,omitempty"`
	To       database.Account `json:"to"`
	ToName   string           `json:"to_name"`
	Value    float64          `json:"value"`
	Reward   bool             `json:"reward,omitempty"`
}

type block struct {
	Index     uint64 `json:"index"`
	TimeStamp uint64 `json:"timestamp"`
	PrevHash  string `json:"prev_hash"`
	Nonce     uint64 `json:"nonce"`
	Hash      string `json:"hash"`
	Trans     []tx   `json:"trans"`
}

type info struct {
	Account database.Account `json:"account"`
	Name    string           `json:"name"`
	Balance float64          `json:"balance"`
	Trans   uint64           `json:"trans"`
}

type actInfo struct {
	LatestBlock string `json:"latest_block"`
	Uncommitted int    `json:"uncommitted"`
	Accounts    []info `json:"accounts"`
}

type status struct {
	Length        int     `json:"length"`
	Difficulty    uint    `json:"difficulty"`
	MiningReward  float64 `json:"mining_reward"`
	TransPerBlock int     `json:"trans_per_block"`
	Uncommitted   int     `json:"uncommitted"`
	LatestBlock   string  `json:"latest_block"`
}

type violation struct {
	Position int    `json:"position"`
	Kind     string `json:"kind"`
	Detail   string `json:"detail"`
}

type validation struct {
	Valid      bool        `json:"valid"`
	Violations []violation `json:"violations"`
}

// =============================================================================

func toTx(ns *nameservice.NameService, tran database.Tx) tx {
	t := tx{
		ID:     tran.ID,
		From:   tran.From,
		To:     tran.To,
		ToName: ns.Lookup(tran.To),
		Value:  tran.Value,
		Reward: tran.IsReward(),
	}
	if !t.Reward {
		t.FromName = ns.Lookup(tran.From)
	}

	return t
}

func toTrans(ns *nameservice.NameService, trans []database.Tx) []tx {
	txs := make([]tx, len(trans))
	for i, tran := range trans {
		txs[i] = toTx(ns, tran)
	}

	return txs
}

func toBlock(ns *nameservice.NameService, blk database.Block) block {
	return block{
		Index:     blk.Index,
		TimeStamp: blk.TimeStamp,
		PrevHash:  blk.PrevHash,
		Nonce:     blk.Nonce,
		Hash:      blk.Hash,
		Trans:     toTrans(ns, blk.Trans),
	}
}

func toValidation(violations []chain.Violation) validation {
	v := validation{
		Valid:      len(violations) == 0,
		Violations: make([]violation, len(violations)),
	}
	for i, vio := range violations {
		v.Violations[i] = violation{
			Position: vio.Position,
			Kind:     string(vio.Kind),
			Detail:   vio.Detail,
		}
	}

	return v
}
