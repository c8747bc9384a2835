package gfpoly

import (
	"crypto/rand"
	"testing"
)

func TestEvalConstant(t *testing.T) {
	if got := Eval([]byte{0x42}, 5); got != 0x42 {
		t.Fatalf("Eval of constant poly = %#x, want 0x42", got)
	}
}

func TestInterpolateRoundTrip(t *testing.T) {
	coeffs := make([]byte, 4)
	_, _ = rand.Read(coeffs)

	points := make([]Point, len(coeffs)+2)
	for i := range points {
		x := byte(i + 1)
		points[i] = Point{X: x, Y: Eval(coeffs, x)}
	}

	for _, atX := range []byte{0, 1, 7, 250} {
		want := Eval(coeffs, atX)
		got, err := Interpolate(points, atX)
		if err != nil {
			t.Fatalf("Interpolate: %v", err)
		}
		if got != want {
			t.Fatalf("Interpolate(%d) = %#x, want %#x", atX, got, want)
		}
	}
}

func TestInterpolateRejectsDegenerateInput(t *testing.T) {
	if _, err := Interpolate([]Point{{X: 1, Y: 2}}, 0); err != ErrTooFewPoints {
		t.Fatalf("expected ErrTooFewPoints, got %v", err)
	}
	dup := []Point{{X: 1, Y: 2}, {X: 1, Y: 3}}
	if _, err := Interpolate(dup, 0); err != ErrDuplicateX {
		t.Fatalf("expected ErrDuplicateX, got %v", err)
	}
}

func TestWeightsMatchDirectInterpolation(t *testing.T) {
	xs := []byte{1, 2, 3, 4}
	weights, err := Weights(xs)
	if err != nil {
		t.Fatalf("Weights: %v", err)
	}

	ys := []byte{10, 20, 30, 40}
	points := make([]Point, len(xs))
	for i := range xs {
		points[i] = Point{X: xs[i], Y: ys[i]}
	}

	want, err := Interpolate(points, 0)
	if err != nil {
		t.Fatalf("Interpolate: %v", err)
	}
	got := InterpolateAtZeroWithWeights(ys, weights)
	if got != want {
		t.Fatalf("weight-based interpolation = %#x, want %#x", got, want)
	}
}
