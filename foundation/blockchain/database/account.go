package database

import (
	"crypto/ecdsa"
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
)

// Account represents an identifier that can send or receive value on the
// blockchain. Any non-empty string is accepted, key-backed wallets use the
// hex encoded address of their public key.
type Account string

// ToAccount converts a string to an account and validates it is not blank.
func ToAccount(s string) (Account, error) {
	a := Account(strings.TrimSpace(s))
	if a == "" {
		return "", errors.New("account is empty")
	}

	return a, nil
}

// PublicKeyToAccount converts the public key to an account value.
func PublicKeyToAccount(pk ecdsa.PublicKey) Account {
	return Account(crypto.PubkeyToAddress(pk).String())
}

// IsAddress reports whether the account is a hex encoded 20 byte address
// as produced by PublicKeyToAccount.
func (a Account) IsAddress() bool {
	const addressLength = 20

	s := string(a)
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}

	if len(s) != 2*addressLength {
		return false
	}

	for _, c := range []byte(s) {
		if !isHexCharacter(c) {
			return false
		}
	}

	return true
}

// isHexCharacter returns bool of c being a valid hexadecimal.
func isHexCharacter(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
