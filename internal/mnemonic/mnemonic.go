// Package mnemonic maps bytes to and from words drawn from a fixed
// 256-word list, one word per byte. The word codec (BytesToWords,
// WordsToBytes) is length-agnostic; BytesToPhrase additionally pairs
// the words two to a line for display and needs an even length.
package mnemonic

import (
	"fmt"
	"strings"
)

// maxCorrectableDistance is the Damerau-Levenshtein distance at or
// above which a token is rejected as unrecognizable rather than
// corrected to its nearest wordlist neighbor.
const maxCorrectableDistance = 4

// WordForByte returns the wordlist entry for b.
func WordForByte(b byte) string {
	return wordlist[b]
}

// ByteForWord returns the byte a known wordlist entry decodes to, and
// false if word (after exact, case-sensitive lookup) is not in the
// list.
func ByteForWord(word string) (byte, bool) {
	b, ok := wordIndex[word]
	return b, ok
}

// BytesToWords renders data as one lowercase word per byte, in order.
func BytesToWords(data []byte) []string {
	words := make([]string, len(data))
	for i, b := range data {
		words[i] = wordlist[b]
	}
	return words
}

// WordsToBytes decodes words back to bytes, one byte per word. Any
// token not found verbatim in the wordlist is corrected to its
// nearest neighbor by Damerau-Levenshtein distance; a token with no
// neighbor within maxCorrectableDistance fails the whole decode with
// ErrUnknownWord, wrapped with the offending token's index and text.
func WordsToBytes(words []string) ([]byte, error) {
	out := make([]byte, len(words))
	for i, w := range words {
		word := strings.ToLower(strings.TrimSpace(w))
		b, ok := wordIndex[word]
		if !ok {
			corrected, err := fuzzyMatch(word)
			if err != nil {
				return nil, fmt.Errorf("mnemonic: token %d (%q): %w", i, w, err)
			}
			b = corrected
		}
		out[i] = b
	}
	return out, nil
}

// BytesToPhrase renders data as a newline-separated sequence of
// two-word lines, matching the conventional display pairing (data is
// shown two bytes/words at a time). len(data) must be even.
func BytesToPhrase(data []byte) (string, error) {
	if len(data)%2 != 0 {
		return "", fmt.Errorf("mnemonic: data length must be even, got %d", len(data))
	}
	words := BytesToWords(data)
	lines := make([]string, 0, len(words)/2)
	for i := 0; i < len(words); i += 2 {
		lines = append(lines, words[i]+" "+words[i+1])
	}
	return strings.Join(lines, "\n"), nil
}

// PhraseToBytes parses a whitespace-delimited phrase (produced by
// BytesToPhrase or entered by a user across any number of lines) back
// to bytes.
func PhraseToBytes(phrase string) ([]byte, error) {
	return WordsToBytes(strings.Fields(phrase))
}

// fuzzyMatch finds the wordlist entry nearest to word by
// Damerau-Levenshtein distance, returning ErrUnknownWord if the
// nearest entry is not within maxCorrectableDistance.
func fuzzyMatch(word string) (byte, error) {
	bestDist := maxCorrectableDistance + 1
	bestIdx := -1
	for i, candidate := range wordlist {
		d := damerauLevenshtein(word, candidate)
		if d < bestDist {
			bestDist = d
			bestIdx = i
			if d == 0 {
				break
			}
		}
	}
	if bestIdx < 0 || bestDist >= maxCorrectableDistance {
		return 0, ErrUnknownWord
	}
	return byte(bestIdx), nil
}

// damerauLevenshtein computes the optimal string alignment distance
// between a and b: insertions, deletions, substitutions, and
// transpositions of adjacent characters each cost 1. This is the
// restricted (OSA) variant, not the full Damerau-Levenshtein distance
// with unbounded transpositions, which is the variant the wordlist's
// pairwise-distance guarantee was built against.
func damerauLevenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)

	d := make([][]int, la+1)
	for i := range d {
		d[i] = make([]int, lb+1)
		d[i][0] = i
	}
	for j := 0; j <= lb; j++ {
		d[0][j] = j
	}

	for i := 1; i <= la; i++ {
		for j := 1; j <= lb; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			del := d[i-1][j] + 1
			ins := d[i][j-1] + 1
			sub := d[i-1][j-1] + cost
			best := del
			if ins < best {
				best = ins
			}
			if sub < best {
				best = sub
			}
			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] {
				if trans := d[i-2][j-2] + cost; trans < best {
					best = trans
				}
			}
			d[i][j] = best
		}
	}
	return d[la][lb]
}
