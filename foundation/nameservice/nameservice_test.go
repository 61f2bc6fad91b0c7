package nameservice_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ardanlabs/minichain/foundation/blockchain/database"
	"github.com/ardanlabs/minichain/foundation/nameservice"
	"github.com/ethereum/go-ethereum/crypto"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_NameService(t *testing.T) {
	t.Log("Given the need to name accounts from key files.")
	{
		root := t.TempDir()

		const hexKey = "fae85851bdf5c9f49923722ce38f3c1defcfd3619ef5453230a58ad805499959"
		pk, err := crypto.HexToECDSA(hexKey)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to load the key: %v", failed, err)
		}
		if err := crypto.SaveECDSA(filepath.Join(root, "bill.ecdsa"), pk); err != nil {
			t.Fatalf("\t%s\tShould be able to save the key: %v", failed, err)
		}
		if err := os.WriteFile(filepath.Join(root, "README"), []byte("not a key"), 0600); err != nil {
			t.Fatalf("\t%s\tShould be able to write a non key file: %v", failed, err)
		}

		ns, err := nameservice.New(root)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct the name service: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to construct the name service.", success)

		const address = database.Account("0xdd6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4")

		if name := ns.Lookup(address); name != "bill" {
			t.Fatalf("\t%s\tShould find the name for the key address: %q", failed, name)
		}
		t.Logf("\t%s\tShould find the name for the key address.", success)

		if name := ns.Lookup("jill"); name != "jill" {
			t.Fatalf("\t%s\tShould return an unknown account as the name: %q", failed, name)
		}
		t.Logf("\t%s\tShould return an unknown account as the name.", success)

		account, err := ns.Resolve("bill")
		if err != nil || account != address {
			t.Fatalf("\t%s\tShould resolve a name to its address: %q %v", failed, account, err)
		}
		account, err = ns.Resolve("jill")
		if err != nil || account != "jill" {
			t.Fatalf("\t%s\tShould resolve an unknown name to itself: %q %v", failed, account, err)
		}
		for _, s := range []string{"0xdd6b972ffcc631a62cae1bb9d80b7ff429c8eba4", "dd6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4"} {
			account, err = ns.Resolve(s)
			if err != nil || account != address {
				t.Fatalf("\t%s\tShould resolve %q to the checksummed address: %q %v", failed, s, account, err)
			}
		}
		if _, err := ns.Resolve("  "); err == nil {
			t.Fatalf("\t%s\tShould not resolve a blank name.", failed)
		}
		t.Logf("\t%s\tShould resolve names to accounts.", success)

		if len(ns.Copy()) != 1 {
			t.Fatalf("\t%s\tShould only load key files: %v", failed, ns.Copy())
		}
		t.Logf("\t%s\tShould only load key files.", success)
	}
}
