// Package modmath is the modular arithmetic kernel: fixed-width
// exponentiation and Legendre symbols over prime moduli. All routines use
// 128-bit intermediate products, so they stay exact for any modulus below
// 2^63 even though the primes used in practice are tiny.
package modmath

import (
	"fmt"
	"math/bits"
)

// Mod bundles operations modulo a fixed P.
type Mod struct{ P uint64 }

func (m Mod) Add(a, b uint64) uint64 {
	c := a + b
	if c >= m.P || c < a {
		c -= m.P
	}
	return c
}

func (m Mod) Mul(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	_, r := bits.Div64(hi, lo, m.P)
	return r
}

// Pow is square-and-multiply: a^e mod P, with a reduced first.
// Pow(a, 0) == 1 for P > 1 by the usual convention.
func (m Mod) Pow(a, e uint64) uint64 {
	res := uint64(1)
	base := a % m.P
	for e > 0 {
		if e&1 == 1 {
			res = m.Mul(res, base)
		}
		base = m.Mul(base, base)
		e >>= 1
	}
	return res
}

// Reduce maps a signed value into [0, p).
func Reduce(a int64, p uint64) uint64 {
	r := a % int64(p)
	if r < 0 {
		r += int64(p)
	}
	return uint64(r)
}

// PowMod computes base^exp mod modulus with the base reduced into
// [0, modulus) first, including negative bases.
func PowMod(base int64, exp, modulus uint64) uint64 {
	return Mod{modulus}.Pow(Reduce(base, modulus), exp)
}

// Legendre evaluates the Legendre symbol (a|p) for prime p via Euler's
// criterion: 0 when p divides a, else a^((p-1)/2) with p-1 read as -1.
// The p-1 case is checked before the 1 case so that p=2 (where p-1 == 1)
// resolves to -1, matching the accumulation semantics of the signature.
//
// For a prime modulus the criterion can only produce {0, 1, p-1}; any
// other value means the modulus was not prime or an intermediate product
// overflowed, and that is an unrecoverable internal fault.
func Legendre(a, p uint64) int {
	a %= p
	if a == 0 {
		return 0
	}
	v := Mod{p}.Pow(a, (p-1)/2)
	switch v {
	case p - 1:
		return -1
	case 1:
		return 1
	}
	panic(fmt.Sprintf("modmath: euler criterion gave %d mod %d, modulus is not prime", v, p))
}
