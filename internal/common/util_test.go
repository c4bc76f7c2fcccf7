package common

import (
	"testing"
)

// ---------- WipeByteArray ----------

func TestWipeByteArray(t *testing.T) {
	b := []byte{1, 2, 3, 4}
	WipeByteArray(b)
	for i, v := range b {
		if v != 0 {
			t.Fatalf("byte %d not wiped: %d", i, v)
		}
	}
}

// ---------- GenerateRandByteArray ----------

func TestGenerateRandByteArray_Size(t *testing.T) {
	b := GenerateRandByteArray(32)
	if len(b) != 32 {
		t.Fatalf("expected 32 bytes, got %d", len(b))
	}
}
