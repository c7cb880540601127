package util

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateUniqueID returns a random hex identifier of the given byte
// length, used for seeded fleet rows.
func GenerateUniqueID(byteLen int) (string, error) {
	buf := make([]byte, byteLen)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
