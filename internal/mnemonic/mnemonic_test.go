package mnemonic

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"
)

func TestBytesToWordsWordsToBytesRoundTrip(t *testing.T) {
	data := []byte{0, 1, 127, 128, 255, 42}
	words := BytesToWords(data)
	got, err := WordsToBytes(words)
	if err != nil {
		t.Fatalf("WordsToBytes: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("got %x, want %x", got, data)
	}
}

func TestBytesToPhraseRequiresEvenLength(t *testing.T) {
	if _, err := BytesToPhrase([]byte{1, 2, 3}); err == nil {
		t.Fatalf("expected error for odd-length input")
	}
}

func TestPhraseRoundTrip(t *testing.T) {
	data := []byte{10, 20, 30, 40}
	phrase, err := BytesToPhrase(data)
	if err != nil {
		t.Fatalf("BytesToPhrase: %v", err)
	}
	got, err := PhraseToBytes(phrase)
	if err != nil {
		t.Fatalf("PhraseToBytes: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("got %x, want %x", got, data)
	}
}

// TestTypoCorrection mirrors scenario S6: a one-character deletion of
// a valid word decodes to that word's byte, and a token with no
// plausible neighbor fails with ErrUnknownWord.
func TestTypoCorrection(t *testing.T) {
	want, ok := ByteForWord("abraham")
	if !ok {
		t.Fatalf("abraham missing from wordlist")
	}
	got, err := WordsToBytes([]string{"abrham"})
	if err != nil {
		t.Fatalf("WordsToBytes(abrham): %v", err)
	}
	if got[0] != want {
		t.Fatalf("got %d, want %d", got[0], want)
	}

	if _, err := WordsToBytes([]string{"xxxxxxx"}); !errors.Is(err, ErrUnknownWord) {
		t.Fatalf("expected ErrUnknownWord, got %v", err)
	}
}

// TestOneCharSubstitutionAlwaysRoundTrips exercises testable property
// 6: every word in the list, with any single character changed to any
// other lowercase letter, must still decode (via fuzzy correction) to
// its original byte.
func TestOneCharSubstitutionAlwaysRoundTrips(t *testing.T) {
	const alphabet = "abcdefghijklmnopqrstuvwxyz"
	for idx, word := range wordlist {
		for pos := range word {
			for _, r := range alphabet {
				if byte(r) == word[pos] {
					continue
				}
				mutated := word[:pos] + string(r) + word[pos+1:]
				got, err := WordsToBytes([]string{mutated})
				if err != nil {
					t.Fatalf("word %q (idx %d) mutated to %q: %v", word, idx, mutated, err)
				}
				if got[0] != byte(idx) {
					t.Fatalf("word %q mutated to %q decoded to %d, want %d", word, mutated, got[0], idx)
				}
			}
		}
	}
}

// TestTwoCharSubstitutionMostlyRoundTrips exercises the probabilistic
// half of testable property 6: a random two-character substitution
// round-trips to the original word at least 90% of the time.
func TestTwoCharSubstitutionMostlyRoundTrips(t *testing.T) {
	const alphabet = "abcdefghijklmnopqrstuvwxyz"
	rng := rand.New(rand.NewSource(1))

	total, ok := 0, 0
	for idx, word := range wordlist {
		if len(word) < 2 {
			continue
		}
		for trial := 0; trial < 4; trial++ {
			i := rng.Intn(len(word))
			j := rng.Intn(len(word))
			for j == i {
				j = rng.Intn(len(word))
			}
			mutated := []byte(word)
			mutated[i] = alphabet[rng.Intn(len(alphabet))]
			mutated[j] = alphabet[rng.Intn(len(alphabet))]

			total++
			got, err := WordsToBytes([]string{string(mutated)})
			if err == nil && got[0] == byte(idx) {
				ok++
			}
		}
	}

	rate := float64(ok) / float64(total)
	if rate < 0.90 {
		t.Fatalf("two-char substitution round trip rate = %.3f, want >= 0.90", rate)
	}
}

func TestDamerauLevenshteinTransposition(t *testing.T) {
	if d := damerauLevenshtein("ab", "ba"); d != 1 {
		t.Fatalf("transposition distance = %d, want 1", d)
	}
}

func TestWordlistInvariants(t *testing.T) {
	if len(wordlist) != 256 {
		t.Fatalf("wordlist has %d entries, want 256", len(wordlist))
	}
	seenWord := make(map[string]bool, 256)
	seenPrefix := make(map[string]bool, 256)
	for _, w := range wordlist {
		if len(w) < 5 || len(w) > 8 {
			t.Fatalf("word %q outside 5-8 letter bound", w)
		}
		if seenWord[w] {
			t.Fatalf("duplicate word %q", w)
		}
		seenWord[w] = true
		prefix := w[:3]
		if seenPrefix[prefix] {
			t.Fatalf("duplicate 3-letter prefix %q (word %q)", prefix, w)
		}
		seenPrefix[prefix] = true
	}

	for i, a := range wordlist {
		for _, b := range wordlist[i+1:] {
			if damerauLevenshtein(a, b) < 4 {
				t.Fatalf("words %q and %q are within distance 4", a, b)
			}
		}
	}
}
