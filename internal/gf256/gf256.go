// Package gf256 implements arithmetic over GF(2^8), the Rijndael finite
// field used by both the Shamir secret sharing and Reed-Solomon-style
// ECC layers.
package gf256

import "sync"

// The field is GF(2^8) with reducing polynomial x^8 + x^4 + x^3 + x + 1
// (0x11b), generated by 3. Many SSS and RS implementations use this
// same construction because it matches AES's field.
const (
	primitivePolynomial = 0x11b
	fieldSize           = 256
)

var (
	//nolint:gochecknoglobals // precomputed table, built once
	expTable [fieldSize]byte
	//nolint:gochecknoglobals // precomputed table, built once
	logTable [fieldSize]byte
	//nolint:gochecknoglobals // precomputed table, built once
	invTable [fieldSize]byte

	//nolint:gochecknoglobals // sync.Once guarding table construction
	tablesInit sync.Once
)

func initTables() {
	tablesInit.Do(func() {
		var x uint16 = 1
		for i := 0; i < fieldSize-1; i++ {
			expTable[i] = byte(x)
			logTable[x] = byte(i)

			// Multiply by the generator 3 = x + 1: (x << 1) ^ x.
			x = (x << 1) ^ x
			if x >= fieldSize {
				x ^= primitivePolynomial
			}
		}
		expTable[fieldSize-1] = expTable[0]

		invTable[0] = 0
		for a := 1; a < fieldSize; a++ {
			// a * inv(a) = 1  =>  log(a) + log(inv(a)) == 0 (mod 255)
			invLog := (fieldSize - 1 - int(logTable[a])) % (fieldSize - 1)
			invTable[a] = expTable[invLog]
		}
	})
}

// Add returns a + b in GF(2^8), which is XOR.
func Add(a, b byte) byte { return a ^ b }

// Sub returns a - b in GF(2^8); identical to Add since -x == x here.
func Sub(a, b byte) byte { return a ^ b }

// Mul returns a * b in GF(2^8) using the precomputed log/exp tables.
func Mul(a, b byte) byte {
	initTables()
	if a == 0 || b == 0 {
		return 0
	}
	logA := int(logTable[a])
	logB := int(logTable[b])
	return expTable[(logA+logB)%(fieldSize-1)]
}

// Div returns a / b in GF(2^8). Panics if b == 0: callers in this module
// never divide by a zero denominator (distinct x-coordinates are
// enforced before any division is attempted).
func Div(a, b byte) byte {
	initTables()
	if b == 0 {
		panic("gf256: division by zero")
	}
	if a == 0 {
		return 0
	}
	logA := int(logTable[a])
	logB := int(logTable[b])
	diff := (logA - logB) % (fieldSize - 1)
	if diff < 0 {
		diff += fieldSize - 1
	}
	return expTable[diff]
}

// Inv returns the multiplicative inverse of a. By convention Inv(0) == 0,
// which is never a mathematically meaningful inverse but is convenient
// at call sites that would otherwise need to special-case zero.
func Inv(a byte) byte {
	initTables()
	return invTable[a]
}

// Exp returns a raised to the n-th power (n >= 0) in GF(2^8).
func Exp(a byte, n int) byte {
	initTables()
	if n == 0 {
		return 1
	}
	if a == 0 {
		return 0
	}
	logA := int(logTable[a])
	e := (logA * n) % (fieldSize - 1)
	if e < 0 {
		e += fieldSize - 1
	}
	return expTable[e]
}
