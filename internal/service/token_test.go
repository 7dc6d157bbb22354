package service

import (
	"strings"
	"testing"
)

func TestGenerateSubscriptionToken_Shape(t *testing.T) {
	token, err := GenerateSubscriptionToken()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(token) != 25 {
		t.Fatalf("expected 25 characters, got %d", len(token))
	}
	for _, r := range token {
		if !strings.ContainsRune(tokenAlphabet, r) {
			t.Fatalf("token contains character outside alphabet: %q", r)
		}
	}
}

func TestGenerateSubscriptionToken_NoTrivialRepeats(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := GenerateSubscriptionToken()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if seen[token] {
			t.Fatalf("token repeated within 100 generations: %s", token)
		}
		seen[token] = true
	}
}
