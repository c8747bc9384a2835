// Package gfpoly implements polynomial evaluation and Lagrange
// interpolation over GF(2^8), shared by the Shamir secret sharing and
// Reed-Solomon-style ECC layers.
package gfpoly

import (
	"errors"

	"github.com/sbkvault/sbk/internal/gf256"
)

// ErrDuplicateX is returned when two points share an x-coordinate.
var ErrDuplicateX = errors.New("gfpoly: duplicate x-coordinate")

// ErrTooFewPoints is returned when interpolation is attempted with
// fewer than 2 points.
var ErrTooFewPoints = errors.New("gfpoly: at least 2 points are required")

// Point is a single (x, y) sample of a polynomial over GF(2^8).
type Point struct {
	X byte
	Y byte
}

// Eval evaluates the polynomial with coefficients coeffs (c0..c_{t-1},
// c0 is the constant term) at x using Horner's rule.
func Eval(coeffs []byte, x byte) byte {
	var y byte
	for i := len(coeffs) - 1; i >= 0; i-- {
		y = gf256.Add(gf256.Mul(y, x), coeffs[i])
	}
	return y
}

// checkPoints validates that points has at least 2 entries and no
// duplicate x-coordinates.
func checkPoints(points []Point) error {
	if len(points) < 2 {
		return ErrTooFewPoints
	}
	seen := make(map[byte]struct{}, len(points))
	for _, p := range points {
		if _, ok := seen[p.X]; ok {
			return ErrDuplicateX
		}
		seen[p.X] = struct{}{}
	}
	return nil
}

// Interpolate returns y(atX) for the unique polynomial of degree
// len(points)-1 passing through points, using the Lagrange form.
func Interpolate(points []Point, atX byte) (byte, error) {
	if err := checkPoints(points); err != nil {
		return 0, err
	}

	var result byte
	for i, pi := range points {
		term := pi.Y
		for j, pj := range points {
			if i == j {
				continue
			}
			num := gf256.Sub(atX, pj.X)
			den := gf256.Sub(pi.X, pj.X)
			term = gf256.Mul(term, gf256.Div(num, den))
		}
		result = gf256.Add(result, term)
	}
	return result, nil
}

// Weights returns the Lagrange basis weights for interpolating at x=0
// from the given x-coordinates, i.e. weight[i] = prod_{j != i} xs[j] /
// (xs[j] - xs[i]). Precomputing these lets a caller reuse the same
// weights across many parallel interpolations at x=0 that share
// x-coordinates (as Shamir reconstruction does across secret bytes).
func Weights(xs []byte) ([]byte, error) {
	points := make([]Point, len(xs))
	for i, x := range xs {
		points[i] = Point{X: x}
	}
	if err := checkPoints(points); err != nil {
		return nil, err
	}

	weights := make([]byte, len(xs))
	for i, xi := range xs {
		w := byte(1)
		for j, xj := range xs {
			if i == j {
				continue
			}
			num := xj
			den := gf256.Sub(xj, xi)
			w = gf256.Mul(w, gf256.Div(num, den))
		}
		weights[i] = w
	}
	return weights, nil
}

// InterpolateAtZeroWithWeights evaluates y(0) given y-values paired
// one-to-one with precomputed Weights.
func InterpolateAtZeroWithWeights(ys, weights []byte) byte {
	var acc byte
	for i, y := range ys {
		acc = gf256.Add(acc, gf256.Mul(y, weights[i]))
	}
	return acc
}
