// Package kdf drives Argon2id to derive wallet seeds and, separately,
// to calibrate how many iterations fit a target duration on the
// current machine.
package kdf

import (
	"context"
	"math"
	"time"

	"golang.org/x/crypto/argon2"
	"golang.org/x/sync/errgroup"

	"github.com/sbkvault/sbk/internal/header"
)

// internalHashLen is the width of every intermediate digest step; only
// the final step is truncated down to the caller's requested hash
// length. Argon2's cost scales with input size far less than with
// time/memory cost, so using a generous fixed width for the
// intermediate chaining value does not materially affect calibration.
const internalHashLen = 128

// DigestSteps is how many Argon2id calls Derive splits kdf_t
// iterations across, each one a natural checkpoint for progress
// reporting.
const DigestSteps = 10

// MeasurementSignificanceThreshold is the single-measurement duration
// above which ParamsForDuration treats that measurement as reliable
// enough to extrapolate from, without looping further.
const MeasurementSignificanceThreshold = 2 * time.Second

// DefaultMaxMeasurementTime bounds how long ParamsForDuration's
// calibration loop may run in total before it settles for its best
// estimate so far.
const DefaultMaxMeasurementTime = 5 * time.Second

// Params is the cost triple Argon2id is driven with.
type Params struct {
	Parallelism int
	MemoryMiB   int
	TimeIters   int
}

func rawDigest(data []byte, p Params, hashLen int) []byte {
	memoryKiB := uint32(p.MemoryMiB) * 1024
	return argon2.IDKey(data, data, uint32(p.TimeIters), memoryKiB, uint8(p.Parallelism), uint32(hashLen))
}

// Derive computes the Argon2id digest of data under params, split
// across DigestSteps chained calls so progress can be reported
// between them, and truncated to hashLen bytes. If progress is
// non-nil, Derive runs the computation on a worker goroutine and a
// separate smoothing goroutine concurrently (via errgroup), emitting
// smoothed 0-100 progress values to progress until the derivation
// completes or ctx is cancelled.
func Derive(ctx context.Context, data []byte, params Params, hashLen int, progress func(float64)) ([]byte, error) {
	if progress == nil {
		return deriveSteps(ctx, data, params, hashLen, nil)
	}

	g, gctx := errgroup.WithContext(ctx)
	smoother := newProgressSmoother()

	g.Go(func() error {
		smoother.run(gctx, progress)
		return nil
	})

	var result []byte
	g.Go(func() error {
		defer smoother.close()
		r, err := deriveSteps(gctx, data, params, hashLen, smoother)
		if err != nil {
			return err
		}
		result = r
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

func deriveSteps(ctx context.Context, data []byte, params Params, hashLen int, smoother *progressSmoother) ([]byte, error) {
	remainingIters := params.TimeIters
	remainingSteps := DigestSteps
	if remainingIters < remainingSteps {
		remainingSteps = remainingIters
	}
	if remainingSteps == 0 {
		remainingSteps = 1
	}
	progressPerIter := 100.0 / float64(params.TimeIters)

	result := data
	for remainingIters > 0 {
		if err := ctx.Err(); err != nil {
			return nil, ErrCancelled
		}

		stepIters := int(math.Round(float64(remainingIters) / float64(remainingSteps)))
		if stepIters < 1 {
			stepIters = 1
		}

		stepHashLen := internalHashLen
		if remainingIters == stepIters {
			stepHashLen = hashLen
		}
		result = rawDigest(result, Params{Parallelism: params.Parallelism, MemoryMiB: params.MemoryMiB, TimeIters: stepIters}, stepHashLen)

		if smoother != nil {
			smoother.record(float64(stepIters) * progressPerIter)
		}

		remainingIters -= stepIters
		remainingSteps--
	}

	if len(result) < hashLen {
		// Only reachable if params.TimeIters is 0, which callers must
		// not do; guard rather than silently return a short key.
		return nil, ErrCancelled
	}
	return result[:hashLen], nil
}

// DeriveSeed derives the wallet seed from raw salt, raw brainkey, and
// a wallet name, per the fixed construction: secret = salt = raw_salt
// || raw_brainkey || wallet_name, hash_len = 16.
func DeriveSeed(ctx context.Context, rawSalt, rawBrainkey []byte, walletName string, params Params, progress func(float64)) ([]byte, error) {
	data := make([]byte, 0, len(rawSalt)+len(rawBrainkey)+len(walletName))
	data = append(data, rawSalt...)
	data = append(data, rawBrainkey...)
	data = append(data, walletName...)
	return Derive(ctx, data, params, 16, progress)
}

// saltPhraseParallelism, saltPhraseMemoryMiB, and saltPhraseTimeIters
// are pinned so that a memorized salt phrase always reproduces the
// same raw salt: see the design notes on the source's save/load
// salt-phrase flow, whose fixed Argon2id parameters were not
// otherwise documented.
const (
	saltPhraseParallelism = 16
	saltPhraseMemoryMiB   = 512
	saltPhraseTimeIters   = 10
)

// DeriveSaltFromPhrase derives rawSaltLen bytes of raw salt from a
// memorized passphrase, with fixed Argon2id parameters (not the
// calibrated Parameters used for seed derivation), so that the same
// phrase always reproduces the same salt.
func DeriveSaltFromPhrase(phrase string, rawSaltLen int) []byte {
	data := []byte(phrase)
	params := Params{Parallelism: saltPhraseParallelism, MemoryMiB: saltPhraseMemoryMiB, TimeIters: saltPhraseTimeIters}
	return rawDigest(data, params, rawSaltLen)
}

// ParamsForDuration measures Argon2id's throughput at the given
// memory cost on the current machine and returns a Params whose
// kdf_t is calibrated so that a full Derive call takes approximately
// targetDuration. It probes with increasing time_cost values until a
// measurement is long enough to extrapolate from, or maxMeasurement
// total measurement time has elapsed.
func ParamsForDuration(ctx context.Context, baselineMemoryMiB int, targetDuration, maxMeasurement time.Duration) (Params, error) {
	testM, testT := header.SnapKDFParams(baselineMemoryMiB, 1)
	tgtStepDuration := targetDuration / DigestSteps

	probe := []byte{0, 0, 0, 0, 0, 0, 0, 0, 0}
	var totalTime time.Duration

	for {
		if err := ctx.Err(); err != nil {
			return Params{}, ErrCancelled
		}

		start := time.Now()
		rawDigest(probe, Params{Parallelism: header.KDFParallelism, MemoryMiB: testM, TimeIters: testT}, internalHashLen)
		duration := time.Since(start)
		totalTime += duration

		itersPerSec := float64(testT) / duration.Seconds()
		stepIters := tgtStepDuration.Seconds() * itersPerSec

		isTargetExceeded := duration > tgtStepDuration
		isSignificant := duration > MeasurementSignificanceThreshold
		isEnoughAlready := totalTime > maxMeasurement

		if isTargetExceeded || isSignificant || isEnoughAlready {
			newT := int(math.Ceil(stepIters * float64(DigestSteps)))
			snappedM, snappedT := header.SnapKDFParams(testM, newT)
			return Params{Parallelism: header.KDFParallelism, MemoryMiB: snappedM, TimeIters: snappedT}, nil
		}

		minIters := int(math.Ceil(float64(testT) * 1.25))
		minT := int(math.Round(1.25 * MeasurementSignificanceThreshold.Seconds() * itersPerSec))
		newT := minIters
		if minT > newT {
			newT = minT
		}
		testM, testT = header.SnapKDFParams(testM, newT)
	}
}
