package util

import (
	"crypto/rand"
	"math/big"

	"github.com/pkg/errors"
)

// idAlphabet is the fixed alphabet entity identifiers are drawn from.
// Identifiers double as file names in the document store, so the set is
// restricted to lowercase alphanumerics.
const idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// RandomID returns a random identifier of the given length drawn from the
// fixed lowercase-alphanumeric alphabet.
func RandomID(length int) (string, error) {
	if length <= 0 {
		return "", errors.Errorf("invalid identifier length: %d", length)
	}

	buf := make([]byte, length)
	max := big.NewInt(int64(len(idAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", errors.Wrap(err, "failed to read random bytes")
		}
		buf[i] = idAlphabet[n.Int64()]
	}

	return string(buf), nil
}
