// Package primes builds the fixed prime table shared by every analysis:
// the first N primes in ascending order together with their base-2
// logarithms, precomputed once so the per-curve hot loop never touches
// math.Log2.
package primes

import (
	"fmt"
	"math"
)

// Table is immutable after New returns and safe for concurrent readers.
type Table struct {
	ps   []uint64
	logs []float64
}

// New sieves [2, bound] and keeps the first count primes. The bound is a
// configuration value, not a heuristic: asking for more primes than the
// bound contains is a fatal setup error, never a short table.
func New(count, bound int) (*Table, error) {
	if count <= 0 {
		return nil, fmt.Errorf("primes: count must be positive, got %d", count)
	}
	if bound < 2 {
		return nil, fmt.Errorf("primes: bound must be >= 2, got %d", bound)
	}

	composite := make([]bool, bound+1)
	for i := 2; i*i <= bound; i++ {
		if composite[i] {
			continue
		}
		for j := i * i; j <= bound; j += i {
			composite[j] = true
		}
	}

	t := &Table{
		ps:   make([]uint64, 0, count),
		logs: make([]float64, 0, count),
	}
	for n := 2; n <= bound && len(t.ps) < count; n++ {
		if composite[n] {
			continue
		}
		t.ps = append(t.ps, uint64(n))
		t.logs = append(t.logs, math.Log2(float64(n)))
	}
	if len(t.ps) < count {
		return nil, fmt.Errorf("primes: only %d primes below %d, need %d (raise the bound)",
			len(t.ps), bound, count)
	}
	return t, nil
}

func (t *Table) Len() int { return len(t.ps) }

// Prime returns the i-th prime (ascending, 0-based).
func (t *Table) Prime(i int) uint64 { return t.ps[i] }

// Log2 returns log2 of the i-th prime.
func (t *Table) Log2(i int) float64 { return t.logs[i] }

// Max is the largest prime in the table.
func (t *Table) Max() uint64 { return t.ps[len(t.ps)-1] }
