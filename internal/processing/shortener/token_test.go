package shortener

import (
	"strings"
	"testing"
)

func TestCryptoTokenGenerator_Length(t *testing.T) {
	for _, length := range []int{4, 6, 12} {
		g := NewCryptoTokenGenerator(length)
		token, err := g.Generate()
		if err != nil {
			t.Fatal(err)
		}
		if len(token) != length {
			t.Errorf("length %d: got %q (%d chars)", length, token, len(token))
		}
	}
}

func TestCryptoTokenGenerator_DefaultsLength(t *testing.T) {
	g := NewCryptoTokenGenerator(0)
	token, err := g.Generate()
	if err != nil {
		t.Fatal(err)
	}
	if len(token) != 6 {
		t.Errorf("got %q (%d chars), want 6 chars", token, len(token))
	}
}

func TestCryptoTokenGenerator_Alphabet(t *testing.T) {
	g := NewCryptoTokenGenerator(6)
	for range 100 {
		token, err := g.Generate()
		if err != nil {
			t.Fatal(err)
		}
		for _, c := range token {
			if !strings.ContainsRune(tokenAlphabet, c) {
				t.Fatalf("token %q contains %q outside the uppercase alphabet", token, c)
			}
		}
	}
}

func TestCryptoTokenGenerator_Varies(t *testing.T) {
	g := NewCryptoTokenGenerator(6)
	seen := make(map[string]bool)
	for range 50 {
		token, err := g.Generate()
		if err != nil {
			t.Fatal(err)
		}
		seen[token] = true
	}
	// 26^6 combinations make 50 identical draws vanishingly unlikely.
	if len(seen) < 2 {
		t.Error("expected distinct tokens across draws")
	}
}
