package id

import (
	"encoding/hex"
	"testing"
)

func TestNewID32_Shape(t *testing.T) {
	got := NewID32()

	if len(got) != 32 {
		t.Fatalf("length = %d, want 32 (got=%q)", len(got), got)
	}
	for _, r := range got {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			t.Fatalf("identifier is not lowercase hex: %q", got)
		}
	}
	b, err := hex.DecodeString(got)
	if err != nil {
		t.Fatalf("hex.DecodeString error: %v", err)
	}
	if len(b) != 16 {
		t.Fatalf("decoded bytes = %d, want 16", len(b))
	}
}

func TestNewID32_Distinct(t *testing.T) {
	const n = 500
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		got := NewID32()
		if _, dup := seen[got]; dup {
			t.Fatalf("duplicate identifier after %d draws: %q", i, got)
		}
		seen[got] = struct{}{}
	}
}
