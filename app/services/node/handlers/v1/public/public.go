// Package public maintains the group of handlers for public access.
package public

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	v1 "github.com/ardanlabs/minichain/business/web/v1"
	"github.com/ardanlabs/minichain/business/sys/validate"
	"github.com/ardanlabs/minichain/foundation/blockchain/chain"
	"github.com/ardanlabs/minichain/foundation/blockchain/database"
	"github.com/ardanlabs/minichain/foundation/events"
	"github.com/ardanlabs/minichain/foundation/nameservice"
	"github.com/ardanlabs/minichain/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handlers manages the set of node endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	Chain *chain.Chain
	NS    *nameservice.NameService
	WS    websocket.Upgrader
	Evts  *events.Events
}

// Events handles a web socket to provide events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	// Need this to handle CORS on the websocket.
	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	// This upgrades the HTTP connection to a websocket connection.
	// A failed upgrade has already been answered with an HTTP error.
	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		h.Log.Infow("events", "traceid", v.TraceID, "status", "upgrade failed", "ERROR", err)
		return nil
	}
	defer c.Close()

	// This provides a channel for receiving events from the chain.
	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, wd := <-ch:

			// If the channel is closed, release the websocket.
			if !wd {
				return nil
			}

			// The connection is hijacked, a failed write means the viewer
			// went away and there is nothing left to respond to.
			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				h.Log.Infow("events", "traceid", v.TraceID, "status", "viewer disconnected", "ERROR", err)
				return nil
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// Genesis returns the genesis information.
func (h Handlers) Genesis(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.Chain.Genesis(), http.StatusOK)
}

// Status returns a summary of the chain.
func (h Handlers) Status(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	latest, err := h.Chain.LatestBlock()
	if err != nil {
		return chainError(err)
	}

	st := status{
		Length:        h.Chain.Length(),
		Difficulty:    h.Chain.Difficulty(),
		MiningReward:  h.Chain.MiningReward(),
		TransPerBlock: h.Chain.TransPerBlock(),
		Uncommitted:   h.Chain.PendingCount(),
		LatestBlock:   latest.Hash,
	}

	return web.Respond(ctx, w, st, http.StatusOK)
}

// Validate walks the chain and reports every broken rule.
func (h Handlers) Validate(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	violations, err := h.Chain.Verify()
	if err != nil {
		return chainError(err)
	}

	return web.Respond(ctx, w, toValidation(violations), http.StatusOK)
}

// Blocks returns all the blocks or the block at the specified index.
func (h Handlers) Blocks(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	idx := web.Param(r, "index")

	if idx == "" {
		dbBlocks := h.Chain.Blocks()

		blocks := make([]block, len(dbBlocks))
		for i, blk := range dbBlocks {
			blocks[i] = toBlock(h.NS, blk)
		}

		return web.Respond(ctx, w, blocks, http.StatusOK)
	}

	index, err := strconv.ParseUint(idx, 10, 64)
	if err != nil {
		return v1.NewRequestError(fmt.Errorf("invalid block index %q", idx), http.StatusBadRequest)
	}

	blk, err := h.Chain.QueryBlock(index)
	if err != nil {
		return chainError(err)
	}

	return web.Respond(ctx, w, toBlock(h.NS, blk), http.StatusOK)
}

// Mempool returns the set of uncommitted transactions.
func (h Handlers) Mempool(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, toTrans(h.NS, h.Chain.Pending()), http.StatusOK)
}

// SubmitTransaction adds a new transaction to the pending pool. The from
// and to values can be account names known to the name service.
func (h Handlers) SubmitTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var stx submitTx
	if err := web.Decode(r, &stx); err != nil {
		return v1.NewRequestError(fmt.Errorf("unable to decode payload: %w", err), http.StatusBadRequest)
	}

	if err := validate.Check(stx); err != nil {
		return err
	}

	to, err := h.NS.Resolve(stx.To)
	if err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	var from database.Account
	if stx.From != "" {
		if from, err = h.NS.Resolve(stx.From); err != nil {
			return v1.NewRequestError(err, http.StatusBadRequest)
		}
	}

	tran, err := database.NewTx(from, to, stx.Value)
	if err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	h.Log.Infow("submit tran", "traceid", v.TraceID, "id", tran.ID, "from", tran.From, "to", tran.To, "value", tran.Value)
	if err := h.Chain.SubmitTransaction(tran); err != nil {
		return chainError(err)
	}

	resp := struct {
		Status string `json:"status"`
		ID     string `json:"id"`
	}{
		Status: "transaction added to pending pool",
		ID:     tran.ID,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Mine mines the pending transactions into a new block with the reward going
// to the specified account. The operation is bound to the request.
func (h Handlers) Mine(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	account, err := h.NS.Resolve(web.Param(r, "account"))
	if err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	blk, err := h.Chain.Mine(ctx, account)
	if err != nil {
		return chainError(err)
	}

	return web.Respond(ctx, w, toBlock(h.NS, blk), http.StatusOK)
}

// SignalMining signals the background worker to mine the pending transactions.
func (h Handlers) SignalMining(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if h.Chain.Worker == nil {
		return v1.NewRequestError(errors.New("background mining is not running"), http.StatusServiceUnavailable)
	}

	h.Chain.Worker.SignalStartMining()

	resp := struct {
		Status string `json:"status"`
	}{
		Status: "mining signalled",
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// CancelMining cancels any mining the background worker is performing.
func (h Handlers) CancelMining(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if h.Chain.Worker == nil {
		return v1.NewRequestError(errors.New("background mining is not running"), http.StatusServiceUnavailable)
	}

	done := h.Chain.Worker.SignalCancelMining()
	done()

	resp := struct {
		Status string `json:"status"`
	}{
		Status: "mining cancelled",
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Balances returns the current balances for all accounts or the
// specified account.
func (h Handlers) Balances(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	latest, err := h.Chain.LatestBlock()
	if err != nil {
		return chainError(err)
	}

	var acts []info
	switch acct := web.Param(r, "account"); acct {
	case "":
		for account, blkInfo := range h.Chain.Balances() {
			acts = append(acts, info{
				Account: account,
				Name:    h.NS.Lookup(account),
				Balance: blkInfo.Balance,
				Trans:   blkInfo.Trans,
			})
		}
		sort.Slice(acts, func(i, j int) bool { return acts[i].Account < acts[j].Account })

	default:
		account, err := h.NS.Resolve(acct)
		if err != nil {
			return v1.NewRequestError(err, http.StatusBadRequest)
		}

		blkInfo, exists := h.Chain.QueryBalance(account)
		if !exists {
			return v1.NewRequestError(fmt.Errorf("account %q not found", account), http.StatusNotFound)
		}

		acts = append(acts, info{
			Account: account,
			Name:    h.NS.Lookup(account),
			Balance: blkInfo.Balance,
			Trans:   blkInfo.Trans,
		})
	}

	ai := actInfo{
		LatestBlock: latest.Hash,
		Uncommitted: h.Chain.PendingCount(),
		Accounts:    acts,
	}

	return web.Respond(ctx, w, ai, http.StatusOK)
}

// =============================================================================

// chainError converts the expected chain errors into trusted request errors.
func chainError(err error) error {
	switch {
	case errors.Is(err, database.ErrInvalidTransaction):
		return v1.NewRequestError(err, http.StatusBadRequest)

	case errors.Is(err, chain.ErrBlockNotFound):
		return v1.NewRequestError(err, http.StatusNotFound)

	case errors.Is(err, chain.ErrUninitializedChain), errors.Is(err, chain.ErrEmptyChain):
		return v1.NewRequestError(err, http.StatusServiceUnavailable)

	case errors.Is(err, database.ErrMiningExhausted), errors.Is(err, context.Canceled):
		return v1.NewRequestError(err, http.StatusConflict)

	case errors.Is(err, context.DeadlineExceeded):
		return v1.NewRequestError(err, http.StatusRequestTimeout)
	}

	return err
}
