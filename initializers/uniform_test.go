package initializers

import (
	"math/rand"
	"testing"
)

func TestUniformBounds(t *testing.T) {
	u := Uniform(rand.New(rand.NewSource(3))).Bounds(-0.2, 0.2)

	ws := make([]float64, 1000)
	u.Set(ws)

	for i, w := range ws {
		if w < -0.2 || w >= 0.2 {
			t.Fatalf("Value %d out of bounds: %v", i, w)
		}
	}
}

func TestUniformSwapsBounds(t *testing.T) {
	u := Uniform(rand.New(rand.NewSource(3))).Bounds(0.1, -0.1)

	for i := 0; i < 100; i++ {
		if v := u.Gen(); v < -0.1 || v >= 0.1 {
			t.Fatalf("Value out of bounds: %v", v)
		}
	}
}

func TestUniformSeeded(t *testing.T) {
	a := make([]float64, 16)
	b := make([]float64, 16)

	Uniform(rand.New(rand.NewSource(42))).Set(a)
	Uniform(rand.New(rand.NewSource(42))).Set(b)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Same seed gave different values at %d: %v != %v", i, a[i], b[i])
		}
	}
}

func TestUniformNilSource(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for nil source")
		}
	}()

	Uniform(nil)
}

func TestUniformFillsInOrder(t *testing.T) {
	var in Initializer = Uniform(rand.New(rand.NewSource(9))).Bounds(-0.5, 0.5)

	first, second := make([]float64, 4), make([]float64, 4)
	in.Set(first)
	in.Set(second)
	got := append(first, second...)

	all := make([]float64, 8)
	Uniform(rand.New(rand.NewSource(9))).Bounds(-0.5, 0.5).Set(all)

	for i := range all {
		if got[i] != all[i] {
			t.Fatalf("Value %d = %v, want %v", i, got[i], all[i])
		}
	}
}
