// Package shamir implements Shamir's Secret Sharing over GF(2^8),
// applied byte-wise to an arbitrary-length secret.
package shamir

import (
	"io"
	"math/big"
	"math/rand/v2"

	"github.com/sbkvault/sbk/internal/gfpoly"
)

// Share is one output of Split: an x-coordinate and the corresponding
// y-value for every byte of the secret.
type Share struct {
	X byte
	Y []byte
}

// exhaustiveSelfCheckLimit bounds the self-check subset search the
// same way the Reed-Solomon decoder bounds its majority-vote search:
// below this many combinations, check exhaustively; above it, sample.
const exhaustiveSelfCheckLimit = 1000

// Split divides secret into one share per x-coordinate in xs, such
// that any t of the resulting shares reconstruct secret exactly and
// fewer than t do not. Coefficients for the degree-(t-1) polynomials
// are drawn from rnd, which must be a cryptographically secure or, for
// reproducible "backup" share sets, a deterministically seeded CSPRNG.
//
// Before returning, Split re-joins every size-t subset of the shares
// it produced (exhaustively for small n, otherwise a bounded random
// sample) and fails with ErrSelfCheckFailed if any subset disagrees
// with secret, per the generation-time invariant check in the spec.
func Split(rnd io.Reader, secret []byte, xs []byte, t int) ([]Share, error) {
	if t < 2 {
		return nil, ErrThresholdInvalid
	}
	if len(xs) < t {
		return nil, ErrTooFewShares
	}
	if len(secret) == 0 {
		return nil, ErrSecretEmpty
	}
	if err := checkDistinctNonZero(xs); err != nil {
		return nil, err
	}

	coeffs, err := randomCoefficients(rnd, len(secret), t)
	if err != nil {
		return nil, err
	}

	shares := make([]Share, len(xs))
	for si, x := range xs {
		y := make([]byte, len(secret))
		for i, secretByte := range secret {
			poly := make([]byte, t)
			poly[0] = secretByte
			copy(poly[1:], coeffs[i*(t-1):(i+1)*(t-1)])
			y[i] = gfpoly.Eval(poly, x)
		}
		shares[si] = Share{X: x, Y: y}
	}

	if err := selfCheck(shares, t, secret); err != nil {
		return nil, err
	}

	return shares, nil
}

func checkDistinctNonZero(xs []byte) error {
	seen := make(map[byte]struct{}, len(xs))
	for _, x := range xs {
		if x == 0 {
			return ErrDuplicateX
		}
		if _, ok := seen[x]; ok {
			return ErrDuplicateX
		}
		seen[x] = struct{}{}
	}
	return nil
}

func randomCoefficients(rnd io.Reader, secretLen, t int) ([]byte, error) {
	coeffs := make([]byte, secretLen*(t-1))
	if _, err := io.ReadFull(rnd, coeffs); err != nil {
		return nil, err
	}
	return coeffs, nil
}

// Join reconstructs the secret from shares. It requires all shares to
// have equal-length bodies and distinct x-coordinates. Join has no
// notion of threshold beyond "use every share given"; the pipeline
// layer is responsible for collecting exactly t shares before calling
// Join, and for treating fewer than t as a recoverable-but-incomplete
// state rather than calling Join prematurely.
func Join(shares []Share) ([]byte, error) {
	if len(shares) == 0 {
		return nil, ErrNoShares
	}

	secretLen := len(shares[0].Y)
	xs := make([]byte, len(shares))
	for i, s := range shares {
		if len(s.Y) != secretLen {
			return nil, ErrLengthMismatch
		}
		xs[i] = s.X
	}
	if err := checkDistinctNonZero(xs); err != nil {
		return nil, err
	}

	weights, err := gfpoly.Weights(xs)
	if err != nil {
		return nil, ErrNotEnoughShares
	}

	secret := make([]byte, secretLen)
	ys := make([]byte, len(shares))
	for i := 0; i < secretLen; i++ {
		for j, s := range shares {
			ys[j] = s.Y[i]
		}
		secret[i] = gfpoly.InterpolateAtZeroWithWeights(ys, weights)
	}
	return secret, nil
}

// selfCheck verifies that every size-t subset of shares reconstructs
// want, exhaustively when the number of combinations is small and via
// a bounded random sample otherwise.
func selfCheck(shares []Share, t int, want []byte) error {
	n := len(shares)
	if n == t {
		got, err := Join(shares)
		if err != nil || !bytesEqual(got, want) {
			return ErrSelfCheckFailed
		}
		return nil
	}

	combos := nCr(n, t)
	if combos.Cmp(big.NewInt(exhaustiveSelfCheckLimit)) < 0 {
		return selfCheckExhaustive(shares, t, want)
	}
	return selfCheckSampled(shares, t, want, combos)
}

func selfCheckExhaustive(shares []Share, t int, want []byte) error {
	n := len(shares)
	indexes := make([]int, t)
	for i := range indexes {
		indexes[i] = i
	}

	for {
		if err := checkSubset(shares, indexes, want); err != nil {
			return err
		}
		if !nextCombination(indexes, n) {
			return nil
		}
	}
}

func selfCheckSampled(shares []Share, t int, want []byte, combos *big.Int) error {
	limit := new(big.Int).Div(combos, big.NewInt(3)).Int64()
	if limit < 1 {
		limit = 1
	}

	seen := make(map[string]struct{})
	n := len(shares)
	for int64(len(seen)) < limit {
		indexes := randomSubset(n, t)
		key := subsetKey(indexes)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		if err := checkSubset(shares, indexes, want); err != nil {
			return err
		}
	}
	return nil
}

func checkSubset(shares []Share, indexes []int, want []byte) error {
	subset := make([]Share, len(indexes))
	for i, idx := range indexes {
		subset[i] = shares[idx]
	}
	got, err := Join(subset)
	if err != nil || !bytesEqual(got, want) {
		return ErrSelfCheckFailed
	}
	return nil
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func nCr(n, r int) *big.Int {
	num := big.NewInt(1)
	den := big.NewInt(1)
	for i := 0; i < r; i++ {
		num.Mul(num, big.NewInt(int64(n-i)))
		den.Mul(den, big.NewInt(int64(i+1)))
	}
	return num.Div(num, den)
}

// nextCombination advances indexes (a strictly increasing r-subset of
// [0,n)) to the lexicographically next one. Returns false once the
// last combination has been produced.
func nextCombination(indexes []int, n int) bool {
	r := len(indexes)
	i := r - 1
	for i >= 0 && indexes[i] == n-r+i {
		i--
	}
	if i < 0 {
		return false
	}
	indexes[i]++
	for j := i + 1; j < r; j++ {
		indexes[j] = indexes[j-1] + 1
	}
	return true
}

func randomSubset(n, r int) []int {
	perm := rand.Perm(n)
	indexes := append([]int(nil), perm[:r]...)
	return sortInts(indexes)
}

func sortInts(xs []int) []int {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1] > xs[j]; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
	return xs
}

func subsetKey(indexes []int) string {
	b := make([]byte, len(indexes))
	for i, idx := range indexes {
		b[i] = byte(idx)
	}
	return string(b)
}
