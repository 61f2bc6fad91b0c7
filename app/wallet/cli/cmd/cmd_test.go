package cmd

import (
	"bytes"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/ardanlabs/minichain/app/services/node/handlers"
	"github.com/ardanlabs/minichain/foundation/blockchain/chain"
	"github.com/ardanlabs/minichain/foundation/blockchain/genesis"
	"github.com/ardanlabs/minichain/foundation/events"
	"github.com/ardanlabs/minichain/foundation/logger"
	"github.com/ardanlabs/minichain/foundation/nameservice"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func newNode(t *testing.T, keys string) *httptest.Server {
	log, err := logger.New("TEST", os.DevNull)
	if err != nil {
		t.Fatalf("unable to construct logger: %v", err)
	}

	gen := genesis.Default()
	gen.Difficulty = 1
	gen.MiningReward = 5

	ch, err := chain.New(chain.Config{Genesis: gen})
	if err != nil {
		t.Fatalf("unable to construct chain: %v", err)
	}
	if err := ch.Initialize(); err != nil {
		t.Fatalf("unable to initialize chain: %v", err)
	}

	ns, err := nameservice.New(keys)
	if err != nil {
		t.Fatalf("unable to construct name service: %v", err)
	}

	mux := handlers.PublicMux(handlers.MuxConfig{
		Shutdown: make(chan os.Signal, 1),
		Log:      log,
		Chain:    ch,
		NS:       ns,
		Evts:     events.New("viewer:"),
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv
}

func execute(t *testing.T, args ...string) (string, error) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func Test_Wallet(t *testing.T) {
	t.Log("Given the need to use the wallet against a node.")
	{
		keys := t.TempDir()

		out, err := execute(t, "generate", "-a", "bill", "-p", keys)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to generate a key: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to generate a key.", success)

		fields := strings.Fields(out)
		if len(fields) != 2 {
			t.Fatalf("\t%s\tShould print the path and account: %q", failed, out)
		}
		account := fields[1]

		out, err = execute(t, "account", "-a", "bill", "-p", keys)
		if err != nil || strings.TrimSpace(out) != account {
			t.Fatalf("\t%s\tShould print the account for the key: %q %v", failed, out, err)
		}
		t.Logf("\t%s\tShould print the account for the key.", success)

		srv := newNode(t, keys)

		out, err = execute(t, "send", "-a", "bill", "-p", keys, "-u", srv.URL, "--to", "jill", "--value", "10")
		if err != nil || !strings.Contains(out, "pending pool") {
			t.Fatalf("\t%s\tShould be able to send a transaction: %q %v", failed, out, err)
		}
		t.Logf("\t%s\tShould be able to send a transaction.", success)

		_, err = execute(t, "send", "-a", "bill", "-p", keys, "-u", srv.URL, "--to", "jill", "--value", "-1")
		if err == nil {
			t.Fatalf("\t%s\tShould not be able to send a negative value.", failed)
		}
		t.Logf("\t%s\tShould not be able to send a negative value.", success)

		out, err = execute(t, "mine", "-a", "bill", "-p", keys, "-u", srv.URL)
		if err != nil || !strings.Contains(out, "mined block 1") || !strings.Contains(out, "trans[2]") {
			t.Fatalf("\t%s\tShould be able to mine a block: %q %v", failed, out, err)
		}
		t.Logf("\t%s\tShould be able to mine a block.", success)

		out, err = execute(t, "balance", "-a", "bill", "-p", keys, "-u", srv.URL)
		if err != nil || !strings.HasSuffix(strings.TrimSpace(out), "-5") {
			t.Fatalf("\t%s\tShould print the balance after the reward: %q %v", failed, out, err)
		}
		t.Logf("\t%s\tShould print the balance after the reward.", success)

		out, err = execute(t, "validate", "-u", srv.URL)
		if err != nil || !strings.Contains(out, "valid: true") {
			t.Fatalf("\t%s\tShould report a valid chain: %q %v", failed, out, err)
		}
		t.Logf("\t%s\tShould report a valid chain.", success)

		out, err = execute(t, "blocks", "-u", srv.URL)
		if err != nil || !strings.Contains(out, "blk[0]") || !strings.Contains(out, "blk[1]") || !strings.Contains(out, "reward") {
			t.Fatalf("\t%s\tShould print every block: %q %v", failed, out, err)
		}
		t.Logf("\t%s\tShould print every block.", success)
	}
}
