package signature

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"horizon/internal/primes"
)

func smallTable(t *testing.T, count int) *primes.Table {
	t.Helper()
	tab, err := primes.New(count, 3000)
	require.NoError(t, err)
	return tab
}

func TestPrimeTermKnownCurve(t *testing.T) {
	// y^2 = x^3 + 1 over the first five primes. Local traces worked out
	// by hand: ap = 1, 0, 0, -4, 0 for p = 2, 3, 5, 7, 11, so every
	// Np = p+1-ap is even and glides in one step.
	an := NewAnalyzer(smallTable(t, 5), 300)
	wantAp := []int64{1, 0, 0, -4, 0}
	for i, ap := range wantAp {
		p := an.table.Prime(i)
		contrib, glide := an.primeTerm(i, 0, 1)
		assert.Equal(t, float64(ap)*math.Log2(float64(p))/float64(p), contrib, "p=%d", p)
		assert.Equal(t, 1, glide, "p=%d", p)
	}
}

func TestAnalyzeSmallCurve(t *testing.T) {
	an := NewAnalyzer(smallTable(t, 5), 300)
	res := an.Analyze(0, 1)
	require.InDelta(t, -1.1042028126043453, res.Score, 1e-12)
	require.Equal(t, 1, res.Glide)

	res = an.Analyze(2, 3)
	require.InDelta(t, 0.52322200381221862, res.Score, 1e-12)
	require.Equal(t, 11, res.Glide)
}

func TestAnalyzeReferenceTable(t *testing.T) {
	// Full reference configuration, 400 primes.
	an := NewAnalyzer(smallTable(t, 400), 300)
	res := an.Analyze(0, 1)
	require.InDelta(t, 3.0323560737715396, res.Score, 1e-9)
	require.Equal(t, 1, res.Glide)
}

func TestAnalyzeDeterministic(t *testing.T) {
	an := NewAnalyzer(smallTable(t, 50), 300)
	first := an.Analyze(123456789012, -987654321098)
	for i := 0; i < 3; i++ {
		require.Equal(t, first, an.Analyze(123456789012, -987654321098))
	}
}

func TestAnalyzeParallelBitIdentical(t *testing.T) {
	an := NewAnalyzer(smallTable(t, 400), 300)
	curves := []struct{ a, b int64 }{
		{0, 1},
		{2, 3},
		{-3, 2}, // singular; the analyzer must not special-case it
		{123456789012, -987654321098},
		{-1_000_000_000_000, 1_000_000_000_000},
	}
	for _, c := range curves {
		seq := an.Analyze(c.a, c.b)
		for _, workers := range []int{2, 4, 8} {
			par := an.AnalyzeParallel(c.a, c.b, workers)
			require.Equal(t, seq, par, "a=%d b=%d workers=%d", c.a, c.b, workers)
		}
	}
}

func TestAnalyzeSingularStillDeterministic(t *testing.T) {
	// Singular input is the caller's problem; Analyze just computes.
	an := NewAnalyzer(smallTable(t, 5), 300)
	res := an.Analyze(-3, 2)
	require.InDelta(t, -0.55094253861607723, res.Score, 1e-12)
	require.Equal(t, 11, res.Glide)
}

func TestAnalyzeLargeCoefficientsNoOverflow(t *testing.T) {
	// Coefficients at the edge of the mining range: the per-prime
	// reduction must keep everything exact. A naive x^3+Ax+B would
	// overflow long before the reduction.
	an := NewAnalyzer(smallTable(t, 50), 300)
	res := an.Analyze(999_999_999_999, -999_999_999_999)
	res2 := an.Analyze(999_999_999_999, -999_999_999_999)
	require.Equal(t, res, res2)
	require.False(t, math.IsNaN(res.Score))
	require.False(t, math.IsInf(res.Score, 0))
}

func TestGlideStepsKnownOrbits(t *testing.T) {
	cases := []struct {
		np    int64
		steps int
		end   glideEnd
	}{
		{1, 0, endReachedOne},
		{2, 1, endGlided},
		{3, 6, endGlided},
		{5, 3, endGlided},
		{7, 11, endGlided},
		{9, 3, endGlided},
		{27, 96, endGlided},
		{2742, 1, endGlided}, // even: halves below start immediately
	}
	for _, c := range cases {
		steps, end := glideSteps(c.np, 300)
		assert.Equal(t, c.steps, steps, "np=%d", c.np)
		assert.Equal(t, c.end, end, "np=%d", c.np)
	}
}

func TestGlideStepsCap(t *testing.T) {
	// With a tiny cap the orbit is cut off before it can glide.
	steps, end := glideSteps(3, 4)
	assert.Equal(t, 4, steps)
	assert.Equal(t, endCapped, end)

	steps, end = glideSteps(7, 2)
	assert.Equal(t, 2, steps)
	assert.Equal(t, endCapped, end)
}

func TestGlideStepsNeverExceedsCap(t *testing.T) {
	for np := int64(1); np <= 5000; np++ {
		steps, _ := glideSteps(np, 300)
		require.LessOrEqual(t, steps, 300, "np=%d", np)
	}
}

func TestDiscriminant(t *testing.T) {
	assert.Equal(t, "27", Discriminant(0, 1).String())
	assert.Equal(t, "0", Discriminant(-3, 2).String())
	assert.Equal(t, "0", Discriminant(0, 0).String())
}

func TestIsSingularFamily(t *testing.T) {
	// (A, B) = (-3k^2, 2k^3) is singular for every k.
	for k := int64(-5); k <= 5; k++ {
		assert.True(t, IsSingular(-3*k*k, 2*k*k*k), "k=%d", k)
	}
	assert.False(t, IsSingular(0, 1))
	assert.False(t, IsSingular(2, 3))
	// Range-edge coefficients: the cube overflows int64, big.Int must not.
	assert.False(t, IsSingular(1_000_000_000_000, 1_000_000_000_000))
}
