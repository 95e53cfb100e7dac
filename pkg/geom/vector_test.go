package geom

import (
	"errors"
	"math"
	"testing"
)

func TestVectorArithmetic(t *testing.T) {
	a := V(1, 2, 3)
	b := V(-4, 0.5, 2)

	if got := a.Add(b); got != V(-3, 2.5, 5) {
		t.Fatalf("Add: %v", got)
	}
	if got := a.Sub(b); got != V(5, 1.5, 1) {
		t.Fatalf("Sub: %v", got)
	}
	if got := a.Mul(2); got != V(2, 4, 6) {
		t.Fatalf("Mul: %v", got)
	}
	if got := a.Dot(b); got != -4+1+6 {
		t.Fatalf("Dot: %v", got)
	}
	// operands are values, never mutated
	if a != V(1, 2, 3) || b != V(-4, 0.5, 2) {
		t.Fatalf("operands changed: %v %v", a, b)
	}
}

func TestNormalize(t *testing.T) {
	n, err := V(3, 0, 4).Normalize()
	if err != nil {
		t.Fatal(err)
	}
	if !n.ApproxEqual(V(0.6, 0, 0.8), 1e-15) {
		t.Fatalf("normalize: %v", n)
	}
	if math.Abs(n.Length()-1) > 1e-15 {
		t.Fatalf("length %.17g", n.Length())
	}

	if _, err := (Vector3{}).Normalize(); !errors.Is(err, ErrZeroLengthVector) {
		t.Fatalf("expected ErrZeroLengthVector, got %v", err)
	}
}

func TestMustNormalizePanicsOnZero(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	_ = Vector3{}.MustNormalize()
}

func TestNewRay(t *testing.T) {
	r, err := NewRay(V(0, -2, 0), V(0, 5, 0))
	if err != nil {
		t.Fatal(err)
	}
	if r.Direction != V(0, 1, 0) {
		t.Fatalf("direction not unit: %v", r.Direction)
	}
	if got := r.At(1.5); got != V(0, -0.5, 0) {
		t.Fatalf("At: %v", got)
	}

	if _, err := NewRay(V(1, 1, 1), Vector3{}); !errors.Is(err, ErrZeroLengthVector) {
		t.Fatalf("expected wrapped ErrZeroLengthVector, got %v", err)
	}
}
