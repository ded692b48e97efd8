// internal/utils/crypto.go
package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"math/big"
)

const randomCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateRandomString returns a crypto-random alphanumeric string of the
// given length. Used for the one-time admin password on first boot.
func GenerateRandomString(length int) (string, error) {
	max := big.NewInt(int64(len(randomCharset)))
	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = randomCharset[n.Int64()]
	}
	return string(b), nil
}

// HashString fingerprints a value for use as a storage key; the token
// denylist stores hashed JTIs instead of raw token identifiers.
func HashString(input string) string {
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}
