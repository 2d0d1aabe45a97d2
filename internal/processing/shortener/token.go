package shortener

import (
	"crypto/rand"
)

const tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// CryptoTokenGenerator draws fixed-length tokens from the uppercase alphabet.
// It makes no uniqueness guarantee; callers resolve collisions against the
// registry's unique constraint.
type CryptoTokenGenerator struct {
	length int
}

func NewCryptoTokenGenerator(length int) *CryptoTokenGenerator {
	if length <= 0 {
		length = 6
	}
	return &CryptoTokenGenerator{length: length}
}

func (g *CryptoTokenGenerator) Generate() (string, error) {
	buf := make([]byte, g.length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	out := make([]byte, g.length)
	for i := range buf {
		out[i] = tokenAlphabet[int(buf[i])%len(tokenAlphabet)]
	}

	return string(out), nil
}
