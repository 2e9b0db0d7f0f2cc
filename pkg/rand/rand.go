package rand

import (
	"crypto/rand"
	"math/big"

	"github.com/sirupsen/logrus"
)

const allLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// StringWithAll returns a random alphanumeric string of length n, suitable
// for secrets. Uses crypto/rand.
func StringWithAll(n int) string {
	max := big.NewInt(int64(len(allLetters)))

	result := make([]byte, n)
	for i := range result {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			logrus.Fatal("Unable to generate random bytes")
		}
		result[i] = allLetters[idx.Int64()]
	}

	return string(result)
}
