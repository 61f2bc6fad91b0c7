package worker_test

import (
	"strings"
	"testing"
	"time"

	"github.com/ardanlabs/minichain/foundation/blockchain/chain"
	"github.com/ardanlabs/minichain/foundation/blockchain/database"
	"github.com/ardanlabs/minichain/foundation/blockchain/genesis"
	"github.com/ardanlabs/minichain/foundation/blockchain/worker"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

const miner = database.Account("miner@example.com")

func newChain(t *testing.T, difficulty uint16, transPerBlock uint16, ev chain.EventHandler) *chain.Chain {
	ch, err := chain.New(chain.Config{
		Genesis: genesis.Genesis{
			Difficulty:    difficulty,
			TransPerBlock: transPerBlock,
			MiningReward:  1,
		},
		EvHandler: ev,
	})
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct the chain: %v", failed, err)
	}

	if err := ch.Initialize(); err != nil {
		t.Fatalf("\t%s\tShould be able to initialize the chain: %v", failed, err)
	}

	return ch
}

func submit(t *testing.T, ch *chain.Chain) {
	tx, err := database.NewTx("bill", "jill", 1)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct a transaction: %v", failed, err)
	}

	if err := ch.SubmitTransaction(tx); err != nil {
		t.Fatalf("\t%s\tShould be able to submit a transaction: %v", failed, err)
	}
}

func waitFor(cond func() bool) bool {
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

// =============================================================================

func Test_MineOnSignal(t *testing.T) {
	t.Log("Given the need to mine in the background.")
	{
		t.Logf("\tTest 0:\tWhen mining is signaled.")
		{
			ch := newChain(t, 1, 0, nil)
			worker.Run(ch, miner, nil)
			defer ch.Shutdown()

			submit(t, ch)
			ch.Worker.SignalStartMining()

			if !waitFor(func() bool { return ch.Length() == 2 }) {
				t.Fatalf("\t%s\tTest 0:\tShould mine a block, got %d blocks.", failed, ch.Length())
			}
			t.Logf("\t%s\tTest 0:\tShould mine a block.", success)

			if ch.PendingCount() != 0 {
				t.Fatalf("\t%s\tTest 0:\tShould have no pending transactions.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould have no pending transactions.", success)

			info, _ := ch.QueryBalance(miner)
			if info.Balance != 1 {
				t.Fatalf("\t%s\tTest 0:\tShould credit the miner, got %v.", failed, info.Balance)
			}
			t.Logf("\t%s\tTest 0:\tShould credit the miner.", success)
		}
	}
}

func Test_MineOnThreshold(t *testing.T) {
	t.Log("Given the need to mine once enough transactions are pending.")
	{
		t.Logf("\tTest 0:\tWhen the pending pool reaches the threshold.")
		{
			ch := newChain(t, 1, 2, nil)
			worker.Run(ch, miner, nil)
			defer ch.Shutdown()

			submit(t, ch)

			time.Sleep(50 * time.Millisecond)
			if ch.Length() != 1 {
				t.Fatalf("\t%s\tTest 0:\tShould not mine below the threshold.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould not mine below the threshold.", success)

			submit(t, ch)

			if !waitFor(func() bool { return ch.Length() == 2 }) {
				t.Fatalf("\t%s\tTest 0:\tShould mine a block at the threshold, got %d blocks.", failed, ch.Length())
			}
			t.Logf("\t%s\tTest 0:\tShould mine a block at the threshold.", success)

			b, _ := ch.LatestBlock()
			if len(b.Trans) != 3 {
				t.Fatalf("\t%s\tTest 0:\tShould mine both transactions and the reward, got %d.", failed, len(b.Trans))
			}
			t.Logf("\t%s\tTest 0:\tShould mine both transactions and the reward.", success)
		}
	}
}

func Test_ShutdownCancelsMining(t *testing.T) {
	t.Log("Given the need to stop a mining operation that won't finish.")
	{
		t.Logf("\tTest 0:\tWhen shutting down during mining.")
		{
			started := make(chan struct{}, 1)
			ev := func(v string, args ...any) {
				if strings.HasPrefix(v, "viewer: mining: started") {
					select {
					case started <- struct{}{}:
					default:
					}
				}
			}

			ch := newChain(t, 64, 0, ev)
			worker.Run(ch, miner, nil)

			submit(t, ch)
			ch.Worker.SignalStartMining()

			select {
			case <-started:
				t.Logf("\t%s\tTest 0:\tShould start mining.", success)
			case <-time.After(10 * time.Second):
				t.Fatalf("\t%s\tTest 0:\tShould start mining.", failed)
			}

			done := make(chan struct{})
			go func() {
				ch.Shutdown()
				close(done)
			}()

			select {
			case <-done:
				t.Logf("\t%s\tTest 0:\tShould shut down.", success)
			case <-time.After(10 * time.Second):
				t.Fatalf("\t%s\tTest 0:\tShould shut down.", failed)
			}

			if ch.Length() != 1 || ch.PendingCount() != 1 {
				t.Fatalf("\t%s\tTest 0:\tShould leave the chain alone: blocks[%d] pending[%d]", failed, ch.Length(), ch.PendingCount())
			}
			t.Logf("\t%s\tTest 0:\tShould leave the chain alone.", success)

			ch.Shutdown()
			t.Logf("\t%s\tTest 0:\tShould be able to shut down again.", success)
		}
	}
}
