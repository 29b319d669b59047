package entropy

import "testing"

func TestSeededIsDeterministic(t *testing.T) {
	a, b := NewSeeded(42), NewSeeded(42)
	for i := range 100 {
		x, y := a.Float64(), b.Float64()
		if x != y {
			t.Fatalf("draw %d: %v != %v", i, x, y)
		}
		if x < 0 || x >= 1 {
			t.Fatalf("draw %d = %v, want [0, 1)", i, x)
		}
	}
	if a.Seed() != 42 {
		t.Errorf("Seed = %d, want 42", a.Seed())
	}
}

func TestZeroSeedIsReplaced(t *testing.T) {
	if s := NewSeeded(0); s.Seed() == 0 {
		t.Error("seed 0 was kept")
	}
	if CryptoSeed() <= 0 {
		t.Error("CryptoSeed must be positive")
	}
}

func TestSequence(t *testing.T) {
	s := NewSequence(0.1, 0.2)
	want := []float64{0.1, 0.2, 0.1}
	for i, w := range want {
		if got := s.Float64(); got != w {
			t.Errorf("draw %d = %v, want %v", i, got, w)
		}
	}
	if s.Draws() != 3 {
		t.Errorf("Draws = %d, want 3", s.Draws())
	}
	if got := NewSequence().Float64(); got != 0 {
		t.Errorf("empty sequence = %v, want 0", got)
	}
}
