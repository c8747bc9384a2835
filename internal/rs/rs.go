// Package rs implements a Reed-Solomon-style forward error correcting
// code over GF(2^8): a message is treated as y-values of a polynomial
// at x = 0, 1, ..., len(msg)-1, and redundant "ecc" bytes are produced
// by evaluating that same polynomial at further x-coordinates. Decoding
// recovers the message from any msgLen of the resulting points, even
// when some are missing (erasures) and some subsets, if corrupted
// in-band rather than erased, disagree.
//
// This does not implement algebraic syndrome decoding; it trades
// theoretical optimality for simplicity, which is acceptable given the
// short (tens of bytes) inputs this is used for.
package rs

import (
	"math/big"
	"math/rand/v2"

	"github.com/sbkvault/sbk/internal/gfpoly"
)

// exhaustiveSearchLimit is the combinatorial cutoff below which Decode
// searches every size-msgLen subset of the present points rather than
// sampling.
const exhaustiveSearchLimit = 1000

// voteCheckInterval is how often (in subsets examined) Decode checks
// whether the leading candidate already dominates enough to return
// early.
const voteCheckInterval = 20

// decisiveMargin is the vote-count ratio between the leading and
// second-place candidate that allows Decode to return before
// exhausting the subset search.
const decisiveMargin = 10

// minimumMargin is the vote-count ratio required of the leading
// candidate once the subset search is exhausted; below this, Decode
// reports ErrCorrupt rather than guessing.
const minimumMargin = 2

// Encode returns msg with ecc_len redundant bytes appended, computed
// by extrapolating the polynomial whose y-values at x=0..len(msg)-1
// are the bytes of msg. The result is systematic: it always starts
// with msg. Inputs shorter than 2 bytes are padded (by duplication)
// before fitting a polynomial, since interpolation needs at least two
// points; the padding is internal and does not appear in the output
// beyond what ecc_len bytes are requested.
func Encode(msg []byte, eccLen int) []byte {
	if eccLen == 0 {
		return append([]byte(nil), msg...)
	}

	fitMsg := msg
	switch len(fitMsg) {
	case 0:
		fitMsg = []byte{0, 0}
	case 1:
		fitMsg = []byte{fitMsg[0], fitMsg[0]}
	}

	points := make([]gfpoly.Point, len(fitMsg))
	for i, b := range fitMsg {
		points[i] = gfpoly.Point{X: byte(i), Y: b}
	}

	block := make([]byte, len(msg)+eccLen)
	copy(block, msg)
	for i := 0; i < eccLen; i++ {
		x := byte(len(fitMsg) + i)
		y, err := gfpoly.Interpolate(points, x)
		if err != nil {
			// points always has >= 2 distinct x-coordinates (0..len-1)
			// by construction, so this cannot happen.
			panic("rs: encode interpolation failed: " + err.Error())
		}
		block[len(msg)+i] = y
	}
	return block
}

// Decode recovers a msgLen-byte message from packets, a sequence whose
// position implies its x-coordinate and whose nil entries mark
// erasures. If exactly msgLen packets are present, the unique
// polynomial through them is interpolated directly. If more are
// present, Decode performs majority-vote recovery over subsets of size
// msgLen, to tolerate a bounded number of corrupted (not merely
// erased) packets.
func Decode(packets []*byte, msgLen int) ([]byte, error) {
	points := presentPoints(packets)
	if len(points) < msgLen {
		return nil, ErrNotEnoughData
	}
	if len(points) == msgLen {
		return interpolateMessage(points, msgLen)
	}
	return decodeByVote(points, msgLen)
}

func presentPoints(packets []*byte) []gfpoly.Point {
	points := make([]gfpoly.Point, 0, len(packets))
	for i, p := range packets {
		if p != nil {
			points = append(points, gfpoly.Point{X: byte(i), Y: *p})
		}
	}
	return points
}

func interpolateMessage(points []gfpoly.Point, msgLen int) ([]byte, error) {
	msg := make([]byte, msgLen)
	for x := 0; x < msgLen; x++ {
		y, err := gfpoly.Interpolate(points, byte(x))
		if err != nil {
			return nil, err
		}
		msg[x] = y
	}
	return msg, nil
}

func decodeByVote(points []gfpoly.Point, msgLen int) ([]byte, error) {
	tally := make(map[string]int)
	order := make([]string, 0, exhaustiveSearchLimit)

	sampleNum := 0
	for indexes := range subsetIndexes(len(points), msgLen) {
		sample := make([]gfpoly.Point, msgLen)
		for i, idx := range indexes {
			sample[i] = points[idx]
		}

		candidate, err := interpolateMessage(sample, msgLen)
		if err != nil {
			continue
		}
		key := string(candidate)
		if _, ok := tally[key]; !ok {
			order = append(order, key)
		}
		tally[key]++
		sampleNum++

		if sampleNum%voteCheckInterval == 0 {
			if msg, ok := decisiveWinner(tally, order, decisiveMargin); ok {
				return msg, nil
			}
		}
	}

	if msg, ok := decisiveWinner(tally, order, minimumMargin); ok {
		return msg, nil
	}
	return nil, ErrCorrupt
}

// decisiveWinner returns the top-tallied candidate if it either is the
// sole candidate seen so far, or beats the runner-up by at least
// margin, matching the spec's "top candidate outnumbers the runner-up
// by a decisive margin" rule at two different thresholds (a strict one
// for the early exit during the search, and a looser one once the
// search is exhausted).
func decisiveWinner(tally map[string]int, order []string, margin int) ([]byte, bool) {
	if len(tally) == 0 {
		return nil, false
	}
	if len(tally) == 1 {
		return []byte(order[0]), true
	}

	topKey, top, second := "", -1, -1
	for _, key := range order {
		n := tally[key]
		if n > top {
			second = top
			top = n
			topKey = key
		} else if n > second {
			second = n
		}
	}
	if second < 0 {
		second = 0
	}
	if top > second*margin {
		return []byte(topKey), true
	}
	return nil, false
}

// subsetIndexes yields successive size-r subsets of [0,n), exhaustively
// (in random order) when C(n,r) is small, or a bounded random sample
// of distinct subsets otherwise.
func subsetIndexes(n, r int) func(func([]int) bool) {
	combos := nCr(n, r)
	if combos.Cmp(big.NewInt(exhaustiveSearchLimit)) < 0 {
		return exhaustiveSubsets(n, r)
	}
	limit := new(big.Int).Div(combos, big.NewInt(3)).Int64()
	if limit < 1 {
		limit = 1
	}
	return sampledSubsets(n, r, limit)
}

func exhaustiveSubsets(n, r int) func(func([]int) bool) {
	all := allCombinations(n, r)
	rand.Shuffle(len(all), func(i, j int) { all[i], all[j] = all[j], all[i] })
	return func(yield func([]int) bool) {
		for _, combo := range all {
			if !yield(combo) {
				return
			}
		}
	}
}

func sampledSubsets(n, r int, limit int64) func(func([]int) bool) {
	return func(yield func([]int) bool) {
		seen := make(map[string]struct{})
		for int64(len(seen)) < limit {
			combo := randomCombination(n, r)
			key := subsetKey(combo)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			if !yield(combo) {
				return
			}
		}
	}
}

func allCombinations(n, r int) [][]int {
	var out [][]int
	indexes := make([]int, r)
	for i := range indexes {
		indexes[i] = i
	}
	for {
		out = append(out, append([]int(nil), indexes...))
		if !nextCombination(indexes, n) {
			break
		}
	}
	return out
}

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

func randomCombination(n, r int) []int {
	perm := rand.Perm(n)
	combo := append([]int(nil), perm[:r]...)
	for i := 1; i < len(combo); i++ {
		for j := i; j > 0 && combo[j-1] > combo[j]; j-- {
			combo[j-1], combo[j] = combo[j], combo[j-1]
		}
	}
	return combo
}

func subsetKey(indexes []int) string {
	b := make([]byte, len(indexes))
	for i, idx := range indexes {
		b[i] = byte(idx)
	}
	return string(b)
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
