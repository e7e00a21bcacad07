// Package signature computes the two numeric signatures of a curve
// y^2 = x^3 + Ax + B: the analytic score (a log2-weighted sum of local
// traces over a fixed prime table) and the dynamic resistance (the worst
// Collatz glide among the local group orders).
package signature

import (
	"math/big"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"horizon/internal/modmath"
	"horizon/internal/primes"
)

// Result is the sole output of an analysis. For a fixed curve, table and
// glide cap it is a pure deterministic function of (A, B).
type Result struct {
	// Score is the running total of ap*log2(p)/p over the table,
	// accumulated in ascending prime order.
	Score float64
	// Glide is the maximum glide value over all primes in the table.
	Glide int
}

// Analyzer holds the read-only prime table and the glide iteration cap.
// It has no other state and is safe for concurrent use.
type Analyzer struct {
	table    *primes.Table
	glideCap int
}

func NewAnalyzer(t *primes.Table, glideCap int) *Analyzer {
	return &Analyzer{table: t, glideCap: glideCap}
}

// Analyze is the sequential reference path: primes are processed strictly
// in table order and the score accumulates in that order, so results are
// bit-for-bit reproducible.
func (an *Analyzer) Analyze(a, b int64) Result {
	n := an.table.Len()
	contribs := make([]float64, n)
	maxGlide := 0
	for i := 0; i < n; i++ {
		c, g := an.primeTerm(i, a, b)
		contribs[i] = c
		if g > maxGlide {
			maxGlide = g
		}
	}
	// floats.Sum walks the slice front to back, so the accumulation
	// order is the ascending prime order regardless of how the
	// contributions were produced.
	return Result{Score: floats.Sum(contribs), Glide: maxGlide}
}

// AnalyzeParallel fans the per-prime work out over at most workers
// goroutines. Contributions land in a slice indexed by prime position and
// are reduced in the same order as Analyze, so the result is bit-identical
// to the sequential path.
func (an *Analyzer) AnalyzeParallel(a, b int64, workers int) Result {
	if workers <= 1 {
		return an.Analyze(a, b)
	}
	n := an.table.Len()
	contribs := make([]float64, n)
	glides := make([]int, n)

	var g errgroup.Group
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			contribs[i], glides[i] = an.primeTerm(i, a, b)
			return nil
		})
	}
	_ = g.Wait() // primeTerm cannot fail

	maxGlide := 0
	for _, gl := range glides {
		if gl > maxGlide {
			maxGlide = gl
		}
	}
	return Result{Score: floats.Sum(contribs), Glide: maxGlide}
}

// primeTerm computes one prime's contribution: the score term
// ap*log2(p)/p and the glide of the local group order Np = p+1-ap.
//
// A and B are reduced mod p up front; every product below involves values
// < p, so nothing can overflow no matter how large the raw coefficients
// are.
func (an *Analyzer) primeTerm(i int, a, b int64) (float64, int) {
	p := an.table.Prime(i)
	m := modmath.Mod{P: p}
	ar := modmath.Reduce(a, p)
	br := modmath.Reduce(b, p)

	var lsSum int64
	for x := uint64(0); x < p; x++ {
		fx := m.Add(m.Add(m.Mul(m.Mul(x, x), x), m.Mul(ar, x)), br)
		lsSum += int64(modmath.Legendre(fx, p))
	}
	ap := -lsSum

	contrib := float64(ap) * an.table.Log2(i) / float64(p)

	np := int64(p) + 1 - ap
	steps, _ := glideSteps(np, an.glideCap)
	return contrib, steps
}

// Discriminant returns 4A^3 + 27B^2 exactly. With |A|,|B| up to 10^12 the
// cube overflows int64, so this is big.Int territory.
func Discriminant(a, b int64) *big.Int {
	A := big.NewInt(a)
	B := big.NewInt(b)
	a3 := new(big.Int).Mul(A, A)
	a3.Mul(a3, A)
	a3.Mul(a3, big.NewInt(4))
	b2 := new(big.Int).Mul(B, B)
	b2.Mul(b2, big.NewInt(27))
	return a3.Add(a3, b2)
}

// IsSingular reports whether 4A^3 + 27B^2 == 0, i.e. the cubic has a
// repeated root and the curve has no valid signature. The check belongs
// to callers; Analyze itself never refuses a singular pair.
func IsSingular(a, b int64) bool {
	return Discriminant(a, b).Sign() == 0
}
