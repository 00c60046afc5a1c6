package randutil

import (
	"testing"
)

func TestNewDeterministic(t *testing.T) {
	t.Parallel()

	a := New(42)
	b := New(42)
	for i := 0; i < 100; i++ {
		if a.Uint64() != b.Uint64() {
			t.Fatalf("same seed diverged at draw %d", i)
		}
	}
}

func TestNewSeedsDiffer(t *testing.T) {
	t.Parallel()

	a := New(1)
	b := New(2)
	same := 0
	for i := 0; i < 10; i++ {
		if a.Uint64() == b.Uint64() {
			same++
		}
	}
	if same == 10 {
		t.Fatal("different seeds produced identical sequences")
	}
}
