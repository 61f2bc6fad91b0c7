// Package nameservice reads a folder of wallet key files and creates a name
// service lookup for their accounts.
package nameservice

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/ardanlabs/minichain/foundation/blockchain/database"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// keyExt is the file extension of a wallet key file.
const keyExt = ".ecdsa"

// NameService maintains a map of accounts for name lookup.
type NameService struct {
	accounts map[database.Account]string
	names    map[string]database.Account
}

// New constructs a name service with the accounts found in the root folder.
// The file name of each key, without extension, is the account name.
func New(root string) (*NameService, error) {
	ns := NameService{
		accounts: make(map[database.Account]string),
		names:    make(map[string]database.Account),
	}

	fn := func(fileName string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walkdir failure: %w", err)
		}

		if d.IsDir() || filepath.Ext(fileName) != keyExt {
			return nil
		}

		privateKey, err := crypto.LoadECDSA(fileName)
		if err != nil {
			return fmt.Errorf("loading %s: %w", fileName, err)
		}

		name := strings.TrimSuffix(filepath.Base(fileName), keyExt)
		account := database.PublicKeyToAccount(privateKey.PublicKey)

		ns.accounts[account] = name
		ns.names[name] = account

		return nil
	}

	if err := filepath.WalkDir(root, fn); err != nil {
		return nil, fmt.Errorf("walking directory: %w", err)
	}

	return &ns, nil
}

// Lookup returns the name for the specified account. The account itself is
// returned when it has no name.
func (ns *NameService) Lookup(account database.Account) string {
	name, exists := ns.accounts[account]
	if !exists {
		return string(account)
	}
	return name
}

// Resolve converts a name or account string into an account. Names known
// to the service resolve to their key address. An address in any letter
// case resolves to the checksummed form key accounts are recorded under.
// Anything else is taken as the account itself.
func (ns *NameService) Resolve(s string) (database.Account, error) {
	if account, exists := ns.names[strings.TrimSpace(s)]; exists {
		return account, nil
	}

	account, err := database.ToAccount(s)
	if err != nil {
		return "", err
	}

	if account.IsAddress() {
		return database.Account(common.HexToAddress(string(account)).Hex()), nil
	}

	return account, nil
}

// Copy returns a copy of the map of names and accounts.
func (ns *NameService) Copy() map[database.Account]string {
	cpy := make(map[database.Account]string, len(ns.accounts))
	for account, name := range ns.accounts {
		cpy[account] = name
	}
	return cpy
}
